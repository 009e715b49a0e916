package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden access")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict") // e.g., email or slug already exists
	ErrValidation       = errors.New("validation failed")
	ErrSelfModification = errors.New("self modification denied")
)

// Error pairs a sentinel kind with the message shown to API clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NewError returns an error that matches kind with errors.Is and renders message to clients.
func NewError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Validationf is shorthand for a user-facing validation failure.
func Validationf(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) || errors.Is(err, ErrSelfModification) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // Unique violation
			return http.StatusConflict
		}
	}

	return http.StatusInternalServerError
}

// PublicMessage returns the text that may be sent to a client for err.
// Anything that maps to a 500 collapses to the generic message.
func PublicMessage(err error) string {
	status := HTTPStatusFromError(err)
	if status == http.StatusInternalServerError {
		return "Internal server error"
	}
	var pubErr *Error
	if errors.As(err, &pubErr) {
		return pubErr.Message
	}
	switch status {
	case http.StatusUnauthorized:
		return "Not authenticated"
	case http.StatusForbidden:
		return "Superuser access required"
	case http.StatusNotFound:
		return "Not found"
	case http.StatusConflict:
		return "Resource already exists"
	}
	return "Bad request"
}

// IsUniqueViolation reports whether err came from a Postgres unique constraint.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
