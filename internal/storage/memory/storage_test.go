package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tirehaus/arcade/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Employee directory tests

func (s *StorageSuite) TestSaveAndGetEmployee() {
	employee := &model.Employee{ID: "emp-1", Name: "Jane Doe"}

	err := s.storage.SaveEmployee(s.ctx, employee)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetEmployee(s.ctx, "emp-1")
	s.Require().NoError(err)
	s.Equal("Jane Doe", retrieved.Name)
}

func (s *StorageSuite) TestGetEmployeeNotFound() {
	_, err := s.storage.GetEmployee(s.ctx, "nope")
	s.ErrorIs(err, model.ErrEmployeeNotFound)
}

func (s *StorageSuite) TestSaveEmployeesBulkUpsert() {
	err := s.storage.SaveEmployee(s.ctx, &model.Employee{ID: "emp-1", Name: "Old Name"})
	s.Require().NoError(err)

	err = s.storage.SaveEmployees(s.ctx, []model.Employee{
		{ID: "emp-1", Name: "New Name"},
		{ID: "emp-2", Name: "Avi"},
	})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetEmployee(s.ctx, "emp-1")
	s.Require().NoError(err)
	s.Equal("New Name", retrieved.Name)

	employees, err := s.storage.ListEmployees(s.ctx)
	s.Require().NoError(err)
	s.Len(employees, 2)
}

// Score ledger tests

func (s *StorageSuite) TestScoresListNewestFirst() {
	for _, score := range []int{100, 200, 300} {
		err := s.storage.AppendScore(s.ctx, &model.ScoreRecord{Score: score})
		s.Require().NoError(err)
	}

	records, err := s.storage.ListScores(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal(300, records[0].Score)
	s.Equal(100, records[2].Score)
}

func (s *StorageSuite) TestListScoresReturnsACopy() {
	err := s.storage.AppendScore(s.ctx, &model.ScoreRecord{Score: 100})
	s.Require().NoError(err)

	records, err := s.storage.ListScores(s.ctx)
	s.Require().NoError(err)
	records[0] = &model.ScoreRecord{Score: 999}

	fresh, err := s.storage.ListScores(s.ctx)
	s.Require().NoError(err)
	s.Equal(100, fresh[0].Score)
}

// Entry session tests

func (s *StorageSuite) TestSaveGetDeleteSession() {
	session := &model.EntrySession{ID: "session-1", Step: model.StepScan}

	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(model.StepScan, retrieved.Step)

	s.Require().NoError(s.storage.DeleteSession(s.ctx, "session-1"))
	_, err = s.storage.GetSession(s.ctx, "session-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Badge batch tests

func (s *StorageSuite) TestSaveGetDeleteBatch() {
	batch := &model.BadgeBatch{ID: "batch-1"}

	s.Require().NoError(s.storage.SaveBatch(s.ctx, batch))

	retrieved, err := s.storage.GetBatch(s.ctx, "batch-1")
	s.Require().NoError(err)
	s.Equal(model.BatchID("batch-1"), retrieved.ID)

	s.Require().NoError(s.storage.DeleteBatch(s.ctx, "batch-1"))
	_, err = s.storage.GetBatch(s.ctx, "batch-1")
	s.ErrorIs(err, model.ErrBatchNotFound)
}
