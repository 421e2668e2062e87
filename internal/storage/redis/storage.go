package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Employee directory operations

func (s *Storage) SaveEmployee(ctx context.Context, employee *model.Employee) error {
	data, err := json.Marshal(employee)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, employeeKey(employee.ID), data, 0)
	pipe.SAdd(ctx, employeeIndexKey(), string(employee.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) SaveEmployees(ctx context.Context, employees []model.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for i := range employees {
		data, err := json.Marshal(&employees[i])
		if err != nil {
			return err
		}
		pipe.Set(ctx, employeeKey(employees[i].ID), data, 0)
		pipe.SAdd(ctx, employeeIndexKey(), string(employees[i].ID))
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetEmployee(ctx context.Context, id model.EmployeeID) (*model.Employee, error) {
	data, err := s.client.Get(ctx, employeeKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrEmployeeNotFound
		}
		return nil, err
	}

	var employee model.Employee
	if err := json.Unmarshal(data, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (s *Storage) ListEmployees(ctx context.Context) ([]*model.Employee, error) {
	ids, err := s.client.SMembers(ctx, employeeIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.Employee{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = employeeKey(model.EmployeeID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	employees := make([]*model.Employee, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var employee model.Employee
		if err := json.Unmarshal([]byte(val.(string)), &employee); err != nil {
			continue // Skip invalid data
		}
		employees = append(employees, &employee)
	}

	return employees, nil
}

// Score ledger operations

func (s *Storage) AppendScore(ctx context.Context, record *model.ScoreRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	// LPUSH keeps the ledger newest-first for full reads
	return s.client.LPush(ctx, scoresKey(), data).Err()
}

func (s *Storage) ListScores(ctx context.Context) ([]*model.ScoreRecord, error) {
	values, err := s.client.LRange(ctx, scoresKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.ScoreRecord, 0, len(values))
	for _, val := range values {
		var record model.ScoreRecord
		if err := json.Unmarshal([]byte(val), &record); err != nil {
			continue // Skip invalid data
		}
		records = append(records, &record)
	}

	return records, nil
}

// Entry session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.EntrySession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, sessionKey(session.ID), data, s.cfg.SessionTTL).Err()
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.EntrySession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.EntrySession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

// Badge batch operations

func (s *Storage) SaveBatch(ctx context.Context, batch *model.BadgeBatch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, batchKey(batch.ID), data, s.cfg.BatchTTL).Err()
}

func (s *Storage) GetBatch(ctx context.Context, id model.BatchID) (*model.BadgeBatch, error) {
	data, err := s.client.Get(ctx, batchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrBatchNotFound
		}
		return nil, err
	}

	var batch model.BadgeBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

func (s *Storage) DeleteBatch(ctx context.Context, id model.BatchID) error {
	return s.client.Del(ctx, batchKey(id)).Err()
}
