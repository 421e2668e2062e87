package model

import "errors"

// Common errors used across the application
var (
	// Entry flow errors
	ErrMalformedPayload  = errors.New("badge payload is malformed")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrCompetitionClosed = errors.New("competition is closed")
	ErrSessionNotFound   = errors.New("entry session not found")
	ErrInvalidStep       = errors.New("operation not valid for current step")
	ErrUnknownGame       = errors.New("game is not in the competition list")
	ErrInvalidScore      = errors.New("score must be a non-negative integer")
	ErrPhotoRequired     = errors.New("a score photo is required")

	// Backend errors
	ErrBackendUnavailable = errors.New("backend service unavailable")

	// Badge batch errors
	ErrBatchNotFound      = errors.New("badge batch not found")
	ErrEmployeeNotInBatch = errors.New("employee not in batch")
	ErrNameRequired       = errors.New("employee name is required")
)
