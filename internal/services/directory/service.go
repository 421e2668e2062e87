// Package directory provides read access to the employee directory
// and the bulk upsert path used by badge sync.
package directory

import (
	"context"
	"log/slog"

	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/storage"
)

// Service wraps the employee directory store
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new directory service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Lookup resolves an employee identifier against the directory.
// This is the only point where scanned client data is cross-checked
// against server-held truth.
func (s *Service) Lookup(ctx context.Context, id model.EmployeeID) (*model.Employee, error) {
	return s.storage.GetEmployee(ctx, id)
}

// List returns all directory records
func (s *Service) List(ctx context.Context) ([]*model.Employee, error) {
	return s.storage.ListEmployees(ctx)
}

// BulkUpsert writes employee records by identifier, replacing any
// existing record with the same ID
func (s *Service) BulkUpsert(ctx context.Context, employees []model.Employee) error {
	if err := s.storage.SaveEmployees(ctx, employees); err != nil {
		return err
	}
	s.logger.Info("directory upsert", slog.Int("count", len(employees)))
	return nil
}
