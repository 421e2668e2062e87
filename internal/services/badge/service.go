// Package badge stages employee badge batches, renders their QR
// images, and syncs reviewed batches to the employee directory.
package badge

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tirehaus/arcade/internal/dependencies/clock"
	"github.com/tirehaus/arcade/internal/dependencies/ident"
	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/qr"
	"github.com/tirehaus/arcade/internal/services/directory"
	"github.com/tirehaus/arcade/internal/storage"
)

// CSV column headers recognized by bulk import
const (
	headerName         = "name"
	headerEmployeeCode = "employee_id"
	headerPhone        = "phone"
)

// Service manages staged badge batches. Batches are local until an
// explicit Sync persists them to the directory, so an operator can
// review the generated identifiers before they are printed.
type Service struct {
	storage   storage.Storage
	directory *directory.Service
	clock     clock.Clock
	ident     ident.Generator
	logger    *slog.Logger
}

// New creates a new badge service
func New(storage storage.Storage, directory *directory.Service, clock clock.Clock, ident ident.Generator, logger *slog.Logger) *Service {
	return &Service{
		storage:   storage,
		directory: directory,
		clock:     clock,
		ident:     ident,
		logger:    logger,
	}
}

// CreateBatch creates a new empty staged batch
func (s *Service) CreateBatch(ctx context.Context) (*model.BadgeBatch, error) {
	now := s.clock.Now()
	batch := &model.BadgeBatch{
		ID:        model.BatchID(s.ident.NewID()),
		Employees: []model.Employee{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveBatch(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// GetBatch retrieves a staged batch
func (s *Service) GetBatch(ctx context.Context, id model.BatchID) (*model.BadgeBatch, error) {
	return s.storage.GetBatch(ctx, id)
}

// DeleteBatch discards a staged batch. Employees already synced to
// the directory are not removed, only the batch record itself.
func (s *Service) DeleteBatch(ctx context.Context, id model.BatchID) error {
	if _, err := s.storage.GetBatch(ctx, id); err != nil {
		return err
	}

	if err := s.storage.DeleteBatch(ctx, id); err != nil {
		return err
	}

	s.logger.Info("deleted badge batch", slog.String("batch_id", string(id)))
	return nil
}

// AddEmployee stages one employee with a newly generated identifier
func (s *Service) AddEmployee(ctx context.Context, batchID model.BatchID, name, code, phone string) (*model.Employee, error) {
	if strings.TrimSpace(name) == "" {
		return nil, model.ErrNameRequired
	}

	batch, err := s.storage.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	employee := model.Employee{
		ID:           model.EmployeeID(s.ident.NewID()),
		Name:         strings.TrimSpace(name),
		EmployeeCode: strings.TrimSpace(code),
		Phone:        strings.TrimSpace(phone),
		CreatedAt:    s.clock.Now(),
	}

	batch.Employees = append(batch.Employees, employee)
	batch.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveBatch(ctx, batch); err != nil {
		return nil, err
	}
	return &employee, nil
}

// ImportCSV stages employees from delimited text. The first row is a
// header; name is required, employee_id and phone are optional. Rows
// without a name are skipped. Returns the number staged.
func (s *Service) ImportCSV(ctx context.Context, batchID model.BatchID, r io.Reader) (int, error) {
	batch, err := s.storage.GetBatch(ctx, batchID)
	if err != nil {
		return 0, err
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("reading CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	nameCol, ok := columns[headerName]
	if !ok {
		return 0, fmt.Errorf("CSV is missing the %q column", headerName)
	}

	now := s.clock.Now()
	staged := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return staged, fmt.Errorf("reading CSV row: %w", err)
		}

		name := field(row, nameCol)
		if name == "" {
			s.logger.Warn("skipping CSV row with no name", slog.Int("row", staged+2))
			continue
		}

		employee := model.Employee{
			ID:        model.EmployeeID(s.ident.NewID()),
			Name:      name,
			CreatedAt: now,
		}
		if col, ok := columns[headerEmployeeCode]; ok {
			employee.EmployeeCode = field(row, col)
		}
		if col, ok := columns[headerPhone]; ok {
			employee.Phone = field(row, col)
		}

		batch.Employees = append(batch.Employees, employee)
		staged++
	}

	batch.UpdatedAt = now
	if err := s.storage.SaveBatch(ctx, batch); err != nil {
		return 0, err
	}

	s.logger.Info("CSV import staged", slog.Int("count", staged), slog.String("batch", string(batchID)))
	return staged, nil
}

// RemoveEmployee drops a staged employee from the batch
func (s *Service) RemoveEmployee(ctx context.Context, batchID model.BatchID, employeeID model.EmployeeID) error {
	batch, err := s.storage.GetBatch(ctx, batchID)
	if err != nil {
		return err
	}

	for i := range batch.Employees {
		if batch.Employees[i].ID == employeeID {
			batch.Employees = append(batch.Employees[:i], batch.Employees[i+1:]...)
			batch.UpdatedAt = s.clock.Now()
			return s.storage.SaveBatch(ctx, batch)
		}
	}
	return model.ErrEmployeeNotInBatch
}

// RenderBadge produces the scannable PNG for one staged employee
func (s *Service) RenderBadge(ctx context.Context, batchID model.BatchID, employeeID model.EmployeeID) ([]byte, error) {
	batch, err := s.storage.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	employee := batch.GetEmployee(employeeID)
	if employee == nil {
		return nil, model.ErrEmployeeNotInBatch
	}

	return qr.EncodePNG(qr.PayloadForEmployee(employee))
}

// ExportMapping produces the uuid -> name CSV for a batch
func (s *Service) ExportMapping(ctx context.Context, batchID model.BatchID) ([]byte, error) {
	batch, err := s.storage.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"uuid", headerName, headerEmployeeCode}); err != nil {
		return nil, err
	}
	for _, e := range batch.Employees {
		if err := w.Write([]string{string(e.ID), e.Name, e.EmployeeCode}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportArchive produces a zip of every badge PNG in the batch
func (s *Service) ExportArchive(ctx context.Context, batchID model.BatchID) ([]byte, error) {
	batch, err := s.storage.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i := range batch.Employees {
		e := &batch.Employees[i]
		png, err := qr.EncodePNG(qr.PayloadForEmployee(e))
		if err != nil {
			return nil, fmt.Errorf("rendering badge for %s: %w", e.ID, err)
		}

		f, err := zw.Create(badgeFilename(e))
		if err != nil {
			return nil, err
		}
		if _, err := f.Write(png); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Sync persists the batch to the employee directory. This is the
// only write path into the directory, and it is deliberately a manual
// step rather than an automatic save on staging.
func (s *Service) Sync(ctx context.Context, batchID model.BatchID) (int, error) {
	batch, err := s.storage.GetBatch(ctx, batchID)
	if err != nil {
		return 0, err
	}

	if err := s.directory.BulkUpsert(ctx, batch.Employees); err != nil {
		return 0, err
	}

	now := s.clock.Now()
	batch.Synced = true
	batch.SyncedAt = &now
	batch.UpdatedAt = now
	if err := s.storage.SaveBatch(ctx, batch); err != nil {
		return 0, err
	}

	return len(batch.Employees), nil
}

func badgeFilename(e *model.Employee) string {
	return strings.ReplaceAll(e.Name, " ", "_") + "_QR.png"
}

func field(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
