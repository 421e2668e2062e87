package model

import "time"

// BatchID uniquely identifies a staged badge batch
type BatchID string

// BadgeBatch is a staged set of employees awaiting badge generation.
// Employees in a batch are local to the batch until an explicit sync
// persists them to the directory, so an operator can review before
// committing identifiers that will be printed on physical badges.
type BadgeBatch struct {
	ID        BatchID    `json:"id"`
	Employees []Employee `json:"employees"`
	Synced    bool       `json:"synced"`
	SyncedAt  *time.Time `json:"synced_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// GetEmployee returns the staged employee with the given ID, or nil
func (b *BadgeBatch) GetEmployee(id EmployeeID) *Employee {
	for i := range b.Employees {
		if b.Employees[i].ID == id {
			return &b.Employees[i]
		}
	}
	return nil
}
