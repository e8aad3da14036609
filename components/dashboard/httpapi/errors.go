package httpapi

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

// ErrorResponse is the JSON body of every failed request. Error is the text
// shown in the page's inline banner.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// StatusFor maps err onto an HTTP status. Client errors reported by the API
// keep their status; other API failures become 502.
func StatusFor(err error) int {
	var apiErr *dashboard.APIError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &apiErr):
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	case errors.Is(err, dashboard.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dashboard.ErrFocusNotFound):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrNoChanges),
		errors.Is(err, dashboard.ErrQueueFinished):
		return http.StatusConflict
	case errors.Is(err, dashboard.ErrProjectRequired),
		errors.Is(err, dashboard.ErrEmptyValue),
		errors.Is(err, dashboard.ErrCSVEmpty),
		errors.Is(err, dashboard.ErrNoColumns):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrMissingBackend):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse builds the body for err. Messages from the API and from
// validation are shown verbatim; anything else shows fallback, or the status
// text when fallback is empty.
func NewErrorResponse(err error, fallback string) ErrorResponse {
	status := StatusFor(err)
	message := dashboard.ErrorMessage(err, fallback)
	if message == "" {
		message = http.StatusText(status)
	}
	return ErrorResponse{Error: message, Status: status}
}
