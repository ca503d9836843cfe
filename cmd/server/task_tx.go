package main

import (
	"context"
	"database/sql"
	"time"

	"dokdig/pkg/domainerr"
	"dokdig/pkg/tx"
)

const defaultTaskTxTimeout = 5 * time.Second

type taskPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newTaskPostgresTx(db *sql.DB) *taskPostgresTx {
	return &taskPostgresTx{db: db}
}

// RunInTx starts a transaction and threads it through the context so store
// calls made inside fn join it.
func (t *taskPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return domainerr.Wrap(err, domainerr.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTaskTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	dbTx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = dbTx.Rollback()
	}()

	if err := fn(tx.WithTx(ctx, dbTx)); err != nil {
		return err
	}

	return dbTx.Commit()
}
