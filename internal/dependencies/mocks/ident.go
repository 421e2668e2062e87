package mocks

import (
	"fmt"

	"github.com/tirehaus/arcade/internal/dependencies/ident"
)

// MockGenerator is a mock implementation of ident.Generator for testing
type MockGenerator struct {
	// Results is a queue of identifiers to return from NewID
	Results []string
	index   int
	serial  int
}

// Ensure MockGenerator implements Generator
var _ ident.Generator = (*MockGenerator)(nil)

// NewMockGenerator creates a new MockGenerator
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// NewID returns the next queued identifier, or a sequential fallback
// ("id-1", "id-2", ...) once the queue is exhausted
func (g *MockGenerator) NewID() string {
	if g.index < len(g.Results) {
		result := g.Results[g.index]
		g.index++
		return result
	}
	g.serial++
	return fmt.Sprintf("id-%d", g.serial)
}

// Queue adds identifiers to the result queue
func (g *MockGenerator) Queue(ids ...string) {
	g.Results = append(g.Results, ids...)
}

// Reset clears all queued identifiers and the sequential counter
func (g *MockGenerator) Reset() {
	g.Results = nil
	g.index = 0
	g.serial = 0
}
