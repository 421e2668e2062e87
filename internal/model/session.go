package model

import "time"

// SessionID uniquely identifies an entry-flow session
type SessionID string

// Step is the current position in the entry flow
type Step string

// Entry flow steps, in order
const (
	StepScan    Step = "scan"
	StepWelcome Step = "welcome"
	StepGame    Step = "game"
	StepScore   Step = "score"
	StepSuccess Step = "success"
)

// EntrySession holds the state of one participant's journey from
// badge scan to submission confirmation. It is bounded to one
// browser session and discarded on reset.
type EntrySession struct {
	ID           SessionID  `json:"id"`
	Step         Step       `json:"step"`
	Employee     *Employee  `json:"employee,omitempty"`
	SelectedGame string     `json:"selected_game,omitempty"`
	LastError    string     `json:"last_error,omitempty"` // error code surfaced inline on the current step
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"` // set when the flow reaches success
}

// Reset returns the session to the initial scan step, clearing all
// progress accumulated during the flow.
func (s *EntrySession) Reset(now time.Time) {
	s.Step = StepScan
	s.Employee = nil
	s.SelectedGame = ""
	s.LastError = ""
	s.CompletedAt = nil
	s.UpdatedAt = now
}
