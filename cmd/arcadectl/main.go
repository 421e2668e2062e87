package main

import (
	"github.com/tirehaus/arcade/internal/cli"
)

func main() {
	cli.Execute()
}
