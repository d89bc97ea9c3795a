package testutil

import (
	"context"
	"sync"

	"github.com/Roblokonha/StudyVault/internal/data/aggregates"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
)

// InjectedTxRunner wraps a real runner and lets tests fail the commit after the
// body has run, which must roll every write in the body back.
type InjectedTxRunner struct {
	mu sync.Mutex

	Inner      aggregates.TxRunner
	FailBegin  error
	FailCommit error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin, failCommit := r.FailBegin, r.FailCommit
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	body := func(dbc dbctx.Context) error {
		if fn != nil {
			if err := fn(dbc); err != nil {
				return err
			}
		}
		// returning an error from the body makes the inner runner roll back
		return failCommit
	}
	var err error
	if r.Inner != nil {
		err = r.Inner.InTx(ctx, body)
	} else {
		err = body(dbctx.Context{Ctx: ctx})
	}
	r.mu.Lock()
	if err != nil {
		r.RollbackCalls++
	} else {
		r.CommitCalls++
	}
	r.mu.Unlock()
	return err
}
