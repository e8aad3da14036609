package dashboard

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	ErrMissingBackend  = errors.New("dashboard: backend not configured")
	ErrProjectRequired = errors.New("dashboard: project id is required")
	ErrEmptyValue      = errors.New("dashboard: value is empty")
	ErrNoChanges       = errors.New("dashboard: no pending changes")
	ErrCSVEmpty        = errors.New("dashboard: csv has no header columns")
	ErrNoColumns       = errors.New("dashboard: no recognized columns")
	ErrQueueFinished   = errors.New("dashboard: focus queue finished")
	ErrValidation      = errors.New("dashboard: validation failed")
	ErrFocusNotFound   = errors.New("dashboard: focus session not found")
)

// APIError is returned when the remote API answers with a non-success status.
type APIError struct {
	Status  int
	Message string
	Body    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("dashboard: api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("dashboard: api error %d", e.Status)
}

// ErrorMessage returns the server-provided message carried by err, or fallback
// when err has none. It is the text shown in inline error banners.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return fallback
}

// ValidationError reports a form payload that failed schema validation.
type ValidationError struct {
	Form   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Form, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func logError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}
