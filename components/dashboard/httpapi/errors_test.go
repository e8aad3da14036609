package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&dashboard.APIError{Status: http.StatusConflict}, http.StatusConflict},
		{&dashboard.APIError{Status: http.StatusInternalServerError}, http.StatusBadGateway},
		{&dashboard.ValidationError{Form: "f", Reason: "r"}, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrap: %w", dashboard.ErrFocusNotFound), http.StatusNotFound},
		{dashboard.ErrCSVEmpty, http.StatusBadRequest},
		{dashboard.ErrMissingBackend, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusFor(tc.err); got != tc.want {
			t.Fatalf("StatusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestNewErrorResponseFallback(t *testing.T) {
	body := NewErrorResponse(errors.New("connection reset"), dashboard.UploadFailedMessage)
	if body.Error != dashboard.UploadFailedMessage {
		t.Fatalf("expected fallback message, got %q", body.Error)
	}
	body = NewErrorResponse(&dashboard.APIError{Status: 409, Message: "Key exists"}, "x")
	if body.Error != "Key exists" || body.Status != 409 {
		t.Fatalf("expected server message, got %+v", body)
	}
}
