package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nkessler/guessgame-go/internal/model"
	"github.com/nkessler/guessgame-go/internal/services/auth"
	"github.com/nkessler/guessgame-go/internal/services/credential"
	"github.com/nkessler/guessgame-go/internal/services/game"
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
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeDuplicateUser      = "DUPLICATE_USER"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeNoActiveRound      = "NO_ACTIVE_ROUND"
	CodeInvalidGuess       = "INVALID_GUESS"
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
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var invalidGuess *game.InvalidGuessError
	if errors.As(err, &invalidGuess) {
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGuess, "Guess must be a whole number"}}
	}

	switch {
	// Credential errors
	case errors.Is(err, credential.ErrMissingFields),
		errors.Is(err, credential.ErrPasswordMismatch):
		return &httpError{http.StatusBadRequest, APIError{CodeValidationFailed, err.Error()}}
	case errors.Is(err, model.ErrDuplicateUser):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateUser, "Username or email already registered"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}

	// Auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrNotAuthenticated):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}

	// Game errors
	case errors.Is(err, game.ErrNoActiveRound):
		return &httpError{http.StatusConflict, APIError{CodeNoActiveRound, "No round in progress"}}

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
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}
