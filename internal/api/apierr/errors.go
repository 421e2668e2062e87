package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/services/auth"
	"github.com/tirehaus/arcade/internal/services/contact"
)

// APIError represents an API error response
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeMalformedPayload   = "MALFORMED_PAYLOAD"
	CodeEmployeeNotFound   = "EMPLOYEE_NOT_FOUND"
	CodeCompetitionClosed  = "COMPETITION_CLOSED"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeInvalidStep        = "INVALID_STEP"
	CodeUnknownGame        = "UNKNOWN_GAME"
	CodeInvalidScore       = "INVALID_SCORE"
	CodePhotoRequired      = "PHOTO_REQUIRED"
	CodeBatchNotFound      = "BATCH_NOT_FOUND"
	CodeEmployeeNotInBatch = "EMPLOYEE_NOT_IN_BATCH"
	CodeNameRequired       = "NAME_REQUIRED"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Contact form validation carries per-field messages
	var verr *contact.ValidationError
	if errors.As(err, &verr) {
		return &httpError{http.StatusUnprocessableEntity, APIError{
			Code:    CodeValidationFailed,
			Message: "One or more fields are invalid",
			Fields:  verr.Fields,
		}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrMalformedPayload):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeMalformedPayload, Message: "Invalid QR code"}}
	case errors.Is(err, model.ErrEmployeeNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeEmployeeNotFound, Message: "Employee not found in system"}}
	case errors.Is(err, model.ErrCompetitionClosed):
		return &httpError{http.StatusForbidden, APIError{Code: CodeCompetitionClosed, Message: "The competition is closed"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeSessionNotFound, Message: "Entry session not found"}}
	case errors.Is(err, model.ErrInvalidStep):
		return &httpError{http.StatusConflict, APIError{Code: CodeInvalidStep, Message: "Not available at this step"}}
	case errors.Is(err, model.ErrUnknownGame):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeUnknownGame, Message: "Pick a game from the list"}}
	case errors.Is(err, model.ErrInvalidScore):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidScore, Message: "Score must be a non-negative number"}}
	case errors.Is(err, model.ErrPhotoRequired):
		return &httpError{http.StatusBadRequest, APIError{Code: CodePhotoRequired, Message: "A photo of the score is required"}}
	case errors.Is(err, model.ErrBatchNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeBatchNotFound, Message: "Badge batch not found"}}
	case errors.Is(err, model.ErrEmployeeNotInBatch):
		return &httpError{http.StatusNotFound, APIError{Code: CodeEmployeeNotInBatch, Message: "Employee is not in this batch"}}
	case errors.Is(err, model.ErrNameRequired):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeNameRequired, Message: "Employee name is required"}}
	case errors.Is(err, model.ErrBackendUnavailable):
		return &httpError{http.StatusBadGateway, APIError{Code: CodeBackendUnavailable, Message: "Error submitting. Please try again."}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidAdminKey), errors.Is(err, auth.ErrAdminDisabled):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Invalid admin key"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
