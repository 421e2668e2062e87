package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/tirehaus/arcade/internal/blob"
	"github.com/tirehaus/arcade/internal/dependencies/mocks"
	"github.com/tirehaus/arcade/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockIdent  *mocks.MockGenerator
	MockPhotos *blob.MemoryStore
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp(cfg Config) *TestApp {
	store := memory.New()
	photos := blob.NewMemoryStore()
	mockClock := mocks.NewMockClock(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	mockIdent := mocks.NewMockGenerator()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	app := newWithDependencies(store, photos, mockClock, mockIdent, cfg, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockIdent:  mockIdent,
		MockPhotos: photos,
	}
}
