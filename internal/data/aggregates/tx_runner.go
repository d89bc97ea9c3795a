package aggregates

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
)

// TxRunner provides the shared transaction boundary for workspace writes.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db       *gorm.DB
	attempts int
	backoff  time.Duration
}

type TxOption func(*gormTxRunner)

// WithRetries re-runs the whole transaction up to n extra times when the store reports
// a transient failure (serialization, deadlock, "database is locked").
func WithRetries(n int, backoff time.Duration) TxOption {
	return func(r *gormTxRunner) {
		if n > 0 {
			r.attempts = n + 1
		}
		r.backoff = backoff
	}
}

// NewGormTxRunner returns a transaction runner backed by GORM transactions.
func NewGormTxRunner(db *gorm.DB, opts ...TxOption) TxRunner {
	r := &gormTxRunner{db: db, attempts: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return domainagg.NewError(domainagg.CodeInternal, "aggregate.tx", "transaction runner has nil db", nil)
	}
	var err error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(dbctx.Context{Ctx: ctx, Tx: tx})
		})
		if err == nil || attempt == r.attempts || !transient(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(r.backoff * time.Duration(attempt)):
		}
	}
	return err
}

// transient reports storage contention. Caller cancellation and coded domain errors
// never retry.
func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var coded *domainagg.Error
	if errors.As(err, &coded) {
		return false
	}
	return domainagg.IsCode(MapError("aggregate.tx", err), domainagg.CodeRetryable)
}
