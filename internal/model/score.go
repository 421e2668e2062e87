package model

import "time"

// Photo URL sentinels. These distinguish "never attempted" from
// "attempted and failed" on persisted score records.
const (
	PhotoMissing      = "no-image"
	PhotoUploadFailed = "upload-error"
)

// ScoreRecord is one score submission in the append-only ledger.
// Records are immutable once written and never deleted by this system.
type ScoreRecord struct {
	ID           string     `json:"id"`
	EmployeeID   EmployeeID `json:"employee_id"`
	EmployeeName string     `json:"employee_name"` // denormalized at submission time
	Game         string     `json:"game"`
	Score        int        `json:"score"`
	PhotoURL     string     `json:"photo_url"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	EventDate    string     `json:"event_date"` // calendar date of submission, YYYY-MM-DD
}

// HasPhoto reports whether the record carries a retrievable photo URL
// rather than one of the sentinels.
func (r *ScoreRecord) HasPhoto() bool {
	return r.PhotoURL != "" && r.PhotoURL != PhotoMissing && r.PhotoURL != PhotoUploadFailed
}
