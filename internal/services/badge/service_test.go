package badge

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tirehaus/arcade/internal/dependencies/mocks"
	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/qr"
	"github.com/tirehaus/arcade/internal/services/directory"
	"github.com/tirehaus/arcade/internal/storage/memory"
	"github.com/tirehaus/arcade/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage   *memory.Storage
	directory *directory.Service
	clock     *mocks.MockClock
	ident     *mocks.MockGenerator
	service   *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.storage = memory.New()
	s.directory = directory.New(s.storage, logger)
	s.clock = mocks.NewMockClock(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	s.ident = mocks.NewMockGenerator()
	s.service = New(s.storage, s.directory, s.clock, s.ident, logger)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestCreateBatchIsEmptyAndUnsynced() {
	s.ident.Queue("batch-1")

	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)

	s.Equal(model.BatchID("batch-1"), batch.ID)
	s.Empty(batch.Employees)
	s.False(batch.Synced)
}

func (s *ServiceSuite) TestGetBatchUnknownID() {
	_, err := s.service.GetBatch(s.ctx, "nope")
	s.ErrorIs(err, model.ErrBatchNotFound)
}

func (s *ServiceSuite) TestDeleteBatchRemovesIt() {
	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteBatch(s.ctx, batch.ID))

	_, err = s.service.GetBatch(s.ctx, batch.ID)
	s.ErrorIs(err, model.ErrBatchNotFound)
}

func (s *ServiceSuite) TestDeleteBatchUnknownID() {
	err := s.service.DeleteBatch(s.ctx, "nope")
	s.ErrorIs(err, model.ErrBatchNotFound)
}

func (s *ServiceSuite) TestDeleteBatchKeepsSyncedEmployees() {
	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)

	s.ident.Queue("emp-keep")
	employee, err := s.service.AddEmployee(s.ctx, batch.ID, "Jane Doe", "", "")
	s.Require().NoError(err)

	_, err = s.service.Sync(s.ctx, batch.ID)
	s.Require().NoError(err)
	s.Require().NoError(s.service.DeleteBatch(s.ctx, batch.ID))

	resolved, err := s.directory.Lookup(s.ctx, employee.ID)
	s.Require().NoError(err)
	s.Equal("Jane Doe", resolved.Name)
}

func (s *ServiceSuite) TestAddEmployeeGeneratesIdentifier() {
	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)

	s.ident.Queue("emp-uuid-1")
	employee, err := s.service.AddEmployee(s.ctx, batch.ID, "  Jane Doe ", "E-42", "0501234567")
	s.Require().NoError(err)

	s.Equal(model.EmployeeID("emp-uuid-1"), employee.ID)
	s.Equal("Jane Doe", employee.Name)
	s.Equal("E-42", employee.EmployeeCode)

	retrieved, err := s.service.GetBatch(s.ctx, batch.ID)
	s.Require().NoError(err)
	s.Require().Len(retrieved.Employees, 1)
	s.Equal(employee.ID, retrieved.Employees[0].ID)
}

func (s *ServiceSuite) TestAddEmployeeRequiresName() {
	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)

	_, err = s.service.AddEmployee(s.ctx, batch.ID, "   ", "", "")
	s.ErrorIs(err, model.ErrNameRequired)
}

func (s *ServiceSuite) TestImportCSVStagesRowsWithNames() {
	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)

	input := strings.Join([]string{
		"name,employee_id,phone",
		"Jane Doe,E-1,0501111111",
		",E-2,0502222222",
		"Avi Cohen,,",
	}, "\n")

	staged, err := s.service.ImportCSV(s.ctx, batch.ID, strings.NewReader(input))
	s.Require().NoError(err)
	s.Equal(2, staged)

	retrieved, err := s.service.GetBatch(s.ctx, batch.ID)
	s.Require().NoError(err)
	s.Require().Len(retrieved.Employees, 2)
	s.Equal("Jane Doe", retrieved.Employees[0].Name)
	s.Equal("E-1", retrieved.Employees[0].EmployeeCode)
	s.Equal("Avi Cohen", retrieved.Employees[1].Name)
	s.NotEqual(retrieved.Employees[0].ID, retrieved.Employees[1].ID)
}

func (s *ServiceSuite) TestImportCSVIgnoresColumnOrder() {
	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)

	input := "phone,name\n0501111111,Jane Doe\n"
	staged, err := s.service.ImportCSV(s.ctx, batch.ID, strings.NewReader(input))
	s.Require().NoError(err)
	s.Equal(1, staged)

	retrieved, err := s.service.GetBatch(s.ctx, batch.ID)
	s.Require().NoError(err)
	s.Equal("0501111111", retrieved.Employees[0].Phone)
}

func (s *ServiceSuite) TestImportCSVRequiresNameColumn() {
	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)

	_, err = s.service.ImportCSV(s.ctx, batch.ID, strings.NewReader("phone\n0501111111\n"))
	s.Error(err)
}

func (s *ServiceSuite) TestRemoveEmployee() {
	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)
	employee, err := s.service.AddEmployee(s.ctx, batch.ID, "Jane Doe", "", "")
	s.Require().NoError(err)

	s.Require().NoError(s.service.RemoveEmployee(s.ctx, batch.ID, employee.ID))

	retrieved, err := s.service.GetBatch(s.ctx, batch.ID)
	s.Require().NoError(err)
	s.Empty(retrieved.Employees)
}

func (s *ServiceSuite) TestRemoveEmployeeNotInBatch() {
	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)

	err = s.service.RemoveEmployee(s.ctx, batch.ID, "ghost")
	s.ErrorIs(err, model.ErrEmployeeNotInBatch)
}

func (s *ServiceSuite) TestRenderBadgeRoundTrips() {
	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)
	employee, err := s.service.AddEmployee(s.ctx, batch.ID, "Jane Doe", "E-42", "")
	s.Require().NoError(err)

	png, err := s.service.RenderBadge(s.ctx, batch.ID, employee.ID)
	s.Require().NoError(err)

	text, err := qr.DecodeImage(png)
	s.Require().NoError(err)
	payload, err := qr.ParsePayload(text)
	s.Require().NoError(err)

	s.Equal(string(employee.ID), payload.UUID)
	s.Equal("Jane Doe", payload.Name)
	s.Equal("E-42", payload.EmpID)
}

func (s *ServiceSuite) TestExportMapping() {
	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)
	_, err = s.service.AddEmployee(s.ctx, batch.ID, "Jane Doe", "E-1", "")
	s.Require().NoError(err)
	_, err = s.service.AddEmployee(s.ctx, batch.ID, "Avi Cohen", "", "")
	s.Require().NoError(err)

	data, err := s.service.ExportMapping(s.ctx, batch.ID)
	s.Require().NoError(err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(rows, 3)
	s.Equal([]string{"uuid", "name", "employee_id"}, rows[0])
	s.Equal("Jane Doe", rows[1][1])
	s.Equal("E-1", rows[1][2])
	s.Equal("Avi Cohen", rows[2][1])
}

func (s *ServiceSuite) TestExportArchiveNamesFilesByEmployee() {
	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)
	_, err = s.service.AddEmployee(s.ctx, batch.ID, "Jane Doe", "", "")
	s.Require().NoError(err)

	data, err := s.service.ExportArchive(s.ctx, batch.ID)
	s.Require().NoError(err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	s.Require().NoError(err)
	s.Require().Len(zr.File, 1)
	s.Equal("Jane_Doe_QR.png", zr.File[0].Name)
}

func (s *ServiceSuite) TestStagedEmployeesNotVisibleBeforeSync() {
	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)
	employee, err := s.service.AddEmployee(s.ctx, batch.ID, "Jane Doe", "", "")
	s.Require().NoError(err)

	_, err = s.directory.Lookup(s.ctx, employee.ID)
	s.ErrorIs(err, model.ErrEmployeeNotFound)
}

func (s *ServiceSuite) TestSyncWritesBatchToDirectory() {
	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)
	first, err := s.service.AddEmployee(s.ctx, batch.ID, "Jane Doe", "", "")
	s.Require().NoError(err)
	second, err := s.service.AddEmployee(s.ctx, batch.ID, "Avi Cohen", "", "")
	s.Require().NoError(err)

	count, err := s.service.Sync(s.ctx, batch.ID)
	s.Require().NoError(err)
	s.Equal(2, count)

	for _, id := range []model.EmployeeID{first.ID, second.ID} {
		_, err := s.directory.Lookup(s.ctx, id)
		s.NoError(err)
	}

	retrieved, err := s.service.GetBatch(s.ctx, batch.ID)
	s.Require().NoError(err)
	s.True(retrieved.Synced)
	s.NotNil(retrieved.SyncedAt)
}

func (s *ServiceSuite) TestSyncIsIdempotent() {
	batch, err := s.service.CreateBatch(s.ctx)
	s.Require().NoError(err)
	employee, err := s.service.AddEmployee(s.ctx, batch.ID, "Jane Doe", "", "")
	s.Require().NoError(err)

	_, err = s.service.Sync(s.ctx, batch.ID)
	s.Require().NoError(err)
	_, err = s.service.Sync(s.ctx, batch.ID)
	s.Require().NoError(err)

	employees, err := s.directory.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(employees, 1)
	s.Equal(employee.ID, employees[0].ID)
}
