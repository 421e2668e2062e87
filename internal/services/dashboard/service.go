// Package dashboard provides the read-only leaderboard view: the
// full ledger filtered and sorted in memory.
package dashboard

import (
	"context"
	"sort"
	"strings"

	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/services/ledger"
)

// SortField identifies a sortable dashboard column
type SortField string

// Sortable columns
const (
	SortByName  SortField = "employeeName"
	SortByGame  SortField = "game"
	SortByScore SortField = "score"
)

// SortOrder is the sort direction
type SortOrder string

// Sort directions
const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Query selects and orders dashboard rows. An empty or "all" Game
// means no filter; an empty Field keeps submission-time order
// (newest first).
type Query struct {
	Game  string
	Field SortField
	Order SortOrder
}

// Result is a filtered, sorted view over the ledger
type Result struct {
	Entries []*model.ScoreRecord
	Total   int
	// Empty is set when a filter matched nothing, so the caller can
	// render an explicit empty-state message instead of a bare table
	Empty bool
}

// SortState models the dashboard's three-way column toggle
type SortState struct {
	Field SortField
	Order SortOrder
}

// Toggle applies a column click: the same column reverses order, a
// new column resets to descending
func (s SortState) Toggle(field SortField) SortState {
	if s.Field == field {
		if s.Order == Ascending {
			return SortState{Field: field, Order: Descending}
		}
		return SortState{Field: field, Order: Ascending}
	}
	return SortState{Field: field, Order: Descending}
}

// Service reads the score ledger for display
type Service struct {
	ledger *ledger.Service
}

// New creates a new dashboard service
func New(ledger *ledger.Service) *Service {
	return &Service{ledger: ledger}
}

// Scores fetches the full ledger and applies the query. The whole
// result set is held in memory; there is no pagination.
func (s *Service) Scores(ctx context.Context, q Query) (*Result, error) {
	records, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := filterByGame(records, q.Game)
	sortRecords(filtered, q.Field, q.Order)

	return &Result{
		Entries: filtered,
		Total:   len(filtered),
		Empty:   len(filtered) == 0,
	}, nil
}

// filterByGame keeps records with an exact game-label match, or all
// records for the "all" wildcard
func filterByGame(records []*model.ScoreRecord, game string) []*model.ScoreRecord {
	if game == "" || game == model.GameFilterAll {
		return records
	}

	filtered := make([]*model.ScoreRecord, 0, len(records))
	for _, r := range records {
		if r.Game == game {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// sortRecords orders records in place. The stable sort makes a
// repeated toggle back to the same field and order a no-op.
func sortRecords(records []*model.ScoreRecord, field SortField, order SortOrder) {
	if field == "" {
		return
	}
	if order == "" {
		order = Descending
	}

	less := lessFunc(field)
	sort.SliceStable(records, func(i, j int) bool {
		if order == Ascending {
			return less(records[i], records[j])
		}
		return less(records[j], records[i])
	})
}

func lessFunc(field SortField) func(a, b *model.ScoreRecord) bool {
	switch field {
	case SortByName:
		return func(a, b *model.ScoreRecord) bool {
			return strings.ToLower(a.EmployeeName) < strings.ToLower(b.EmployeeName)
		}
	case SortByGame:
		return func(a, b *model.ScoreRecord) bool {
			return strings.ToLower(a.Game) < strings.ToLower(b.Game)
		}
	default:
		return func(a, b *model.ScoreRecord) bool {
			return a.Score < b.Score
		}
	}
}
