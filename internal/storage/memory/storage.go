package memory

import (
	"context"
	"sync"

	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	employees map[model.EmployeeID]*model.Employee
	scores    []*model.ScoreRecord // newest first
	sessions  map[model.SessionID]*model.EntrySession
	batches   map[model.BatchID]*model.BadgeBatch
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		employees: make(map[model.EmployeeID]*model.Employee),
		sessions:  make(map[model.SessionID]*model.EntrySession),
		batches:   make(map[model.BatchID]*model.BadgeBatch),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Employee directory operations

func (s *Storage) SaveEmployee(ctx context.Context, employee *model.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[employee.ID] = employee
	return nil
}

func (s *Storage) SaveEmployees(ctx context.Context, employees []model.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range employees {
		e := employees[i]
		s.employees[e.ID] = &e
	}
	return nil
}

func (s *Storage) GetEmployee(ctx context.Context, id model.EmployeeID) (*model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	employee, ok := s.employees[id]
	if !ok {
		return nil, model.ErrEmployeeNotFound
	}
	return employee, nil
}

func (s *Storage) ListEmployees(ctx context.Context) ([]*model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	employees := make([]*model.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		employees = append(employees, e)
	}
	return employees, nil
}

// Score ledger operations

func (s *Storage) AppendScore(ctx context.Context, record *model.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = append([]*model.ScoreRecord{record}, s.scores...)
	return nil
}

func (s *Storage) ListScores(ctx context.Context) ([]*model.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scores := make([]*model.ScoreRecord, len(s.scores))
	copy(scores, s.scores)
	return scores, nil
}

// Entry session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.EntrySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.EntrySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Badge batch operations

func (s *Storage) SaveBatch(ctx context.Context, batch *model.BadgeBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[batch.ID] = batch
	return nil
}

func (s *Storage) GetBatch(ctx context.Context, id model.BatchID) (*model.BadgeBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch, ok := s.batches[id]
	if !ok {
		return nil, model.ErrBatchNotFound
	}
	return batch, nil
}

func (s *Storage) DeleteBatch(ctx context.Context, id model.BatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.batches, id)
	return nil
}
