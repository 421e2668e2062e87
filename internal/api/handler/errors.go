package handler

import (
	"net/http"

	"github.com/tirehaus/arcade/internal/api/apierr"
)

// WriteError writes an error response using the shared error mapping
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}
