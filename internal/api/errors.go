package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes the backend is known to emit. Anything unrecognized is
// preserved verbatim in Error.Code.
const (
	CodeUnknownError = "UNKNOWN_ERROR"
	CodeConflict     = "CONFLICT"
)

// FieldDetail is one field-level entry from a structured error body.
type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the uniform failure every caller above the gateway sees. The
// gateway is the only layer that inspects HTTP status; everyone else works
// with this type via errors.As.
type Error struct {
	Status  int
	Code    string
	Message string
	Details []FieldDetail
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (%s, status %d)", e.Message, e.Code, e.Status)
}

// FieldMessages flattens Details into a field -> message map for forms.
func (e *Error) FieldMessages() map[string]string {
	if len(e.Details) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.Details))
	for _, d := range e.Details {
		out[d.Field] = d.Message
	}
	return out
}

// IsUnauthorized reports whether err is an API failure with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsConflict reports whether err is an API failure carrying the CONFLICT
// code (duplicate email on registration).
func IsConflict(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == CodeConflict
}

// Message extracts the user-facing message from an error, falling back to a
// generic one for non-API failures (network errors, timeouts).
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "An unexpected error occurred. Please try again."
}
