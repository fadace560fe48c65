package paapi

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNoItemIDs      = errors.New("at least one item id is required")
	ErrTooManyItemIDs = fmt.Errorf("at most %d item ids per request", MaxItemIDs)
)

// HTTPError is a non-200 reply from PA-API. Signature mismatches from bad
// credentials arrive here too.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Envelope is the dashboard-facing error shape.
func (e *HTTPError) Envelope() map[string]any {
	return map[string]any{
		"error":       e.Error(),
		"message":     e.Message,
		"status_code": e.StatusCode,
	}
}

// UnexpectedError covers transport failures and unreadable responses.
type UnexpectedError struct {
	Message string
	Type    string
	Err     error
}

func newUnexpectedError(err error) *UnexpectedError {
	return &UnexpectedError{
		Message: err.Error(),
		Type:    typeName(err),
		Err:     err,
	}
}

func (e *UnexpectedError) Error() string {
	return "Unexpected error: " + e.Message
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

func (e *UnexpectedError) Envelope() map[string]any {
	return map[string]any{
		"error":   "Unexpected error",
		"message": e.Message,
		"type":    e.Type,
	}
}

// Enveloper is implemented by both client error kinds.
type Enveloper interface {
	error
	Envelope() map[string]any
}

// ErrorEnvelope returns the dashboard error shape for any client error.
func ErrorEnvelope(err error) map[string]any {
	var env Enveloper
	if errors.As(err, &env) {
		return env.Envelope()
	}
	return newUnexpectedError(err).Envelope()
}

func typeName(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}
