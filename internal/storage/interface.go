package storage

import (
	"context"

	"github.com/tirehaus/arcade/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Employee directory operations
	SaveEmployee(ctx context.Context, employee *model.Employee) error
	SaveEmployees(ctx context.Context, employees []model.Employee) error
	GetEmployee(ctx context.Context, id model.EmployeeID) (*model.Employee, error)
	ListEmployees(ctx context.Context) ([]*model.Employee, error)

	// Score ledger operations. AppendScore is append-only; ListScores
	// returns the full ledger newest-first.
	AppendScore(ctx context.Context, record *model.ScoreRecord) error
	ListScores(ctx context.Context) ([]*model.ScoreRecord, error)

	// Entry session operations
	SaveSession(ctx context.Context, session *model.EntrySession) error
	GetSession(ctx context.Context, id model.SessionID) (*model.EntrySession, error)
	DeleteSession(ctx context.Context, id model.SessionID) error

	// Badge batch operations
	SaveBatch(ctx context.Context, batch *model.BadgeBatch) error
	GetBatch(ctx context.Context, id model.BatchID) (*model.BadgeBatch, error)
	DeleteBatch(ctx context.Context, id model.BatchID) error
}
