package redis

import (
	"fmt"

	"github.com/tirehaus/arcade/internal/model"
)

// Key prefix for all competition data
const keyPrefix = "arcade"

// employeeKey returns the Redis key for an Employee
func employeeKey(id model.EmployeeID) string {
	return fmt.Sprintf("%s:employee:%s", keyPrefix, id)
}

// employeeIndexKey returns the Redis key for the SET of employee IDs
func employeeIndexKey() string {
	return fmt.Sprintf("%s:idx:employees", keyPrefix)
}

// scoresKey returns the Redis key for the score ledger LIST.
// Records are LPUSHed so a full range read is already newest-first.
func scoresKey() string {
	return fmt.Sprintf("%s:scores", keyPrefix)
}

// sessionKey returns the Redis key for an EntrySession
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// batchKey returns the Redis key for a BadgeBatch
func batchKey(id model.BatchID) string {
	return fmt.Sprintf("%s:batch:%s", keyPrefix, id)
}
