package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/expotrack/expotrack/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeDuplicateID       = "DUPLICATE_ID"
	CodeDuplicateEmail    = "DUPLICATE_EMAIL"
	CodeNoActiveSession   = "NO_ACTIVE_SESSION"
	CodeUnknownStation    = "UNKNOWN_STATION"
	CodeNotStarted        = "NOT_STARTED"
	CodeVisitorNotFound   = "VISITOR_NOT_FOUND"
	CodeAggregateNotFound = "AGGREGATE_NOT_FOUND"
	CodeStoreUnavailable  = "STORE_UNAVAILABLE"
	CodeInternalError     = "INTERNAL_ERROR"
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

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidInput, err.Error()}}
	case errors.Is(err, model.ErrDuplicateID):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateID, "This visitor ID has already been registered"}}
	case errors.Is(err, model.ErrDuplicateEmail):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateEmail, "This email has already been registered"}}
	case errors.Is(err, model.ErrNoActiveSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeNoActiveSession, "No active session"}}
	case errors.Is(err, model.ErrUnknownStation):
		return &httpError{http.StatusNotFound, APIError{CodeUnknownStation, "Unknown station"}}
	case errors.Is(err, model.ErrStationNotStarted):
		return &httpError{http.StatusConflict, APIError{CodeNotStarted, "Station timer has not been started"}}
	case errors.Is(err, model.ErrVisitorNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeVisitorNotFound, "Visitor not found"}}
	case errors.Is(err, model.ErrAggregateNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAggregateNotFound, "No recorded visits for this visitor"}}
	case errors.Is(err, model.ErrStoreUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStoreUnavailable, "Storage is unavailable, please retry"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeNoActiveSession, "Session token required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
