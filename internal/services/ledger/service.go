// Package ledger provides the append-only score submission store.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/storage"
)

// Service wraps the score ledger store
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new ledger service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Append writes a submission record to the ledger. Records are
// immutable once written.
func (s *Service) Append(ctx context.Context, record *model.ScoreRecord) error {
	if err := s.storage.AppendScore(ctx, record); err != nil {
		return fmt.Errorf("%w: %v", model.ErrBackendUnavailable, err)
	}
	s.logger.Info("score recorded",
		slog.String("employee_id", string(record.EmployeeID)),
		slog.String("game", record.Game),
		slog.Int("score", record.Score),
	)
	return nil
}

// List returns the full ledger, newest submissions first
func (s *Service) List(ctx context.Context) ([]*model.ScoreRecord, error) {
	records, err := s.storage.ListScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrBackendUnavailable, err)
	}
	return records, nil
}
