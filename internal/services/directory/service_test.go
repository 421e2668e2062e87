package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/storage/memory"
	"github.com/tirehaus/arcade/internal/testutil"
)

func newService() *Service {
	return New(memory.New(), testutil.NopLogger())
}

func TestLookupKnownEmployee(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	require.NoError(t, svc.BulkUpsert(ctx, []model.Employee{{ID: "emp-1", Name: "Jane Doe"}}))

	employee, err := svc.Lookup(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", employee.Name)
}

func TestLookupUnknownEmployee(t *testing.T) {
	svc := newService()

	_, err := svc.Lookup(context.Background(), "ghost")
	assert.ErrorIs(t, err, model.ErrEmployeeNotFound)
}

func TestBulkUpsertReplacesByID(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	require.NoError(t, svc.BulkUpsert(ctx, []model.Employee{{ID: "emp-1", Name: "Old"}}))
	require.NoError(t, svc.BulkUpsert(ctx, []model.Employee{
		{ID: "emp-1", Name: "New"},
		{ID: "emp-2", Name: "Other"},
	}))

	employee, err := svc.Lookup(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "New", employee.Name)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
