package httpx

import (
	"fmt"
	"net/http"
)

// API error codes used across the service.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeAccountDisabled    = "account_disabled"
	ErrorCodeConflict           = "conflict"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeServerError        = "server_error"
)

// APIError is the JSON error body returned by every endpoint. It implements
// the error interface so handlers and tests can use it both ways.
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is a stable machine-readable error code.
	Code string `json:"error"`

	// Detail is a human-readable description. It deliberately avoids
	// exposing internals such as which of email/password was wrong or why a
	// token failed verification.
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Write serializes this error to an HTTP response.
func (e *APIError) Write(w http.ResponseWriter) {
	NoCache(w)
	WriteJSON(w, e.StatusCode, e)
}

var (
	// ErrInvalidBody is returned when the request body cannot be parsed or
	// fails validation.
	ErrInvalidBody = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Detail:     "the request is malformed or missing required fields",
	}

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the response cannot be used for account enumeration.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredentials,
		Detail:     "email or password is incorrect",
	}

	// ErrUnauthorized covers missing, malformed, tampered and expired bearer
	// tokens with one indistinguishable message.
	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Detail:     "could not validate credentials",
	}

	// ErrAccountDisabled is deliberately distinct from ErrUnauthorized: the
	// token was valid but the account has been deactivated.
	ErrAccountDisabled = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeAccountDisabled,
		Detail:     "account is disabled",
	}

	// ErrNotFound is returned when the addressed resource does not exist.
	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Detail:     "resource not found",
	}

	// ErrServerError hides internal failures from clients.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Detail:     "internal server error",
	}
)

// Conflict returns a 409 naming the field that violated a uniqueness
// constraint (e.g. "email", "username", "slug").
func Conflict(field string) *APIError {
	return &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeConflict,
		Detail:     field + " is already registered",
	}
}
