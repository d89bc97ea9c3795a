package aggregates

import (
	"context"
	"errors"
	"testing"

	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

type spyTxRunner struct {
	calls int
}

func (s *spyTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	s.calls++
	return fn(dbctx.Context{Ctx: ctx})
}

func TestWriteSuccess(t *testing.T) {
	runner := &spyTxRunner{}
	if err := Write(context.Background(), runner, logger.Nop(), "aggregate.test.success", func(_ dbctx.Context) error { return nil }); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if runner.calls != 1 {
		t.Fatalf("runner calls: want=1 got=%d", runner.calls)
	}
}

func TestWriteKeepsDomainCode(t *testing.T) {
	err := Write(context.Background(), &spyTxRunner{}, logger.Nop(), "aggregate.test.invalid", func(_ dbctx.Context) error {
		return domainagg.InvalidOperation("workspace.merge", "same item")
	})
	if !domainagg.IsCode(err, domainagg.CodeInvalidOperation) {
		t.Fatalf("expected invalid_operation, got %v", err)
	}
}

func TestWriteMapsInfraErrors(t *testing.T) {
	err := Write(context.Background(), &spyTxRunner{}, nil, "", func(_ dbctx.Context) error {
		return errors.New("boom")
	})
	if !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("expected internal, got %v", err)
	}
}
