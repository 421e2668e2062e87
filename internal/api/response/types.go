package response

import (
	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/services/dashboard"
)

// SessionResponse is the API shape of an entry session
type SessionResponse struct {
	ID           string          `json:"id"`
	Step         string          `json:"step"`
	Employee     *model.Employee `json:"employee,omitempty"`
	SelectedGame string          `json:"selected_game,omitempty"`
	LastError    string          `json:"last_error,omitempty"`
	Closed       bool            `json:"closed"`
}

// SessionFromModel converts a session for API output
func SessionFromModel(s *model.EntrySession, closed bool) SessionResponse {
	return SessionResponse{
		ID:           string(s.ID),
		Step:         string(s.Step),
		Employee:     s.Employee,
		SelectedGame: s.SelectedGame,
		LastError:    s.LastError,
		Closed:       closed,
	}
}

// GamesResponse lists the fixed game enumeration
type GamesResponse struct {
	Games []string `json:"games"`
}

// ScoreResponse is one ledger row. HasPhoto tells clients whether
// PhotoURL is retrievable or one of the sentinel values.
type ScoreResponse struct {
	*model.ScoreRecord
	HasPhoto bool `json:"has_photo"`
}

// ScoresResponse is the dashboard view over the ledger. Message is
// set when a filter matched nothing so clients can show an explicit
// empty state.
type ScoresResponse struct {
	Scores  []ScoreResponse `json:"scores"`
	Total   int             `json:"total"`
	Message string          `json:"message,omitempty"`
}

// ScoresFromResult converts a dashboard result for API output
func ScoresFromResult(r *dashboard.Result) ScoresResponse {
	scores := make([]ScoreResponse, len(r.Entries))
	for i, record := range r.Entries {
		scores[i] = ScoreResponse{ScoreRecord: record, HasPhoto: record.HasPhoto()}
	}

	resp := ScoresResponse{
		Scores: scores,
		Total:  r.Total,
	}
	if r.Empty {
		resp.Message = "No scores found"
	}
	return resp
}

// BatchResponse is the API shape of a staged badge batch
type BatchResponse struct {
	ID        string           `json:"id"`
	Employees []model.Employee `json:"employees"`
	Synced    bool             `json:"synced"`
}

// BatchFromModel converts a batch for API output
func BatchFromModel(b *model.BadgeBatch) BatchResponse {
	return BatchResponse{
		ID:        string(b.ID),
		Employees: b.Employees,
		Synced:    b.Synced,
	}
}

// SyncResponse reports the result of a badge batch sync
type SyncResponse struct {
	Synced int `json:"synced"`
}

// ImportResponse reports the result of a CSV import
type ImportResponse struct {
	Staged int `json:"staged"`
}
