package aggregates

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
)

func TestMapError_Conflict(t *testing.T) {
	err := MapError("op", ConflictError("stale"))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_NotFound(t *testing.T) {
	err := MapError("op", gorm.ErrRecordNotFound)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_PgCodes(t *testing.T) {
	cases := map[string]domainagg.ErrorCode{
		"23505": domainagg.CodeConflict,
		"23503": domainagg.CodeInvalidOperation,
		"40001": domainagg.CodeRetryable,
	}
	for code, want := range cases {
		err := MapError("op", &pgconn.PgError{Code: code})
		if !domainagg.IsCode(err, want) {
			t.Fatalf("pg %s: expected %q, got %q", code, want, domainagg.CodeOf(err))
		}
	}
}

func TestMapError_Canceled(t *testing.T) {
	if err := MapError("op", context.Canceled); !domainagg.IsCode(err, domainagg.CodeRetryable) {
		t.Fatalf("expected retryable, got %q", domainagg.CodeOf(err))
	}
}

func TestMapError_PassthroughCodedError(t *testing.T) {
	in := domainagg.NewError(domainagg.CodeInsufficientData, "op", "too few", errors.New("boom"))
	out := MapError("other", in)
	if out != in {
		t.Fatalf("expected passthrough coded error")
	}
}

func TestMapError_Default(t *testing.T) {
	if err := MapError("op", errors.New("disk on fire")); !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("expected internal, got %q", domainagg.CodeOf(err))
	}
	if MapError("op", nil) != nil {
		t.Fatalf("expected nil")
	}
}
