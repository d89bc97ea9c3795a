package apierr

import (
	"errors"
	"net/http"
	"testing"

	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domainagg.NotFound("op", "missing"), http.StatusNotFound},
		{domainagg.InvalidOperation("op", "same"), http.StatusBadRequest},
		{domainagg.Validation("op", "bad"), http.StatusBadRequest},
		{domainagg.InsufficientData("op", "few"), http.StatusUnprocessableEntity},
		{domainagg.NewError(domainagg.CodeConflict, "op", "raced", nil), http.StatusConflict},
		{domainagg.NewError(domainagg.CodeRetryable, "op", "busy", nil), http.StatusServiceUnavailable},
		{errors.New("plain"), http.StatusInternalServerError},
		{New(http.StatusTeapot, "teapot", nil), http.StatusTeapot},
	}
	for _, tc := range cases {
		got := FromError(tc.err)
		if got == nil || got.Status != tc.want {
			t.Fatalf("FromError(%v): want %d, got %+v", tc.err, tc.want, got)
		}
	}
	if FromError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}
