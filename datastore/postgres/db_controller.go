package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rqa-security/guardhouse/pkg/logger"
)

type querier interface {
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
}

var (
	_ querier = &sql.DB{}
	_ querier = &sql.Tx{}
)

// dbController routes statements either to the pool or, once bound by Begin, to a
// single transaction. A controller bound to a transaction must not be shared between
// goroutines; the pool-backed controller can be.
type dbController struct {
	base *sql.DB
	tx   *sql.Tx
	lggr logger.Logger
}

func newDbController(db *sql.DB, lggr logger.Logger) *dbController {
	return &dbController{base: db, lggr: lggr}
}

func (d *dbController) conn() querier {
	if d.tx != nil {
		return d.tx
	}

	return d.base
}

func (d *dbController) Query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	d.lggr.Debugw("Executing query", "query", q, "args", args, "tx", d.tx != nil)
	return d.conn().QueryContext(ctx, q, args...)
}

func (d *dbController) QueryRow(ctx context.Context, q string, args ...any) *sql.Row {
	d.lggr.Debugw("Executing query", "query", q, "args", args, "tx", d.tx != nil)
	return d.conn().QueryRowContext(ctx, q, args...)
}

func (d *dbController) Exec(ctx context.Context, q string, args ...any) (sql.Result, error) {
	d.lggr.Debugw("Executing statement", "query", q, "args", args, "tx", d.tx != nil)
	return d.conn().ExecContext(ctx, q, args...)
}

// Fixture performs an Exec but ignores the result, and is intended for schema setup
// and test fixtures.
func (d *dbController) Fixture(ctx context.Context, q string, args ...any) error {
	_, err := d.Exec(ctx, q, args...)
	return err
}

// InTx reports whether the controller is bound to a transaction.
func (d *dbController) InTx() bool {
	return d.tx != nil
}

// Begin starts a transaction and returns a controller bound to it.
func (d *dbController) Begin(ctx context.Context) (*dbController, error) {
	if d.tx != nil {
		return nil, errors.New("transaction already started")
	}
	tx, err := d.base.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &dbController{base: d.base, tx: tx, lggr: d.lggr}, nil
}

func (d *dbController) Commit() error {
	if d.tx == nil {
		return errors.New("no transaction to commit")
	}
	defer func() {
		d.tx = nil
	}()

	return d.tx.Commit()
}

func (d *dbController) Rollback() error {
	if d.tx == nil {
		return errors.New("no transaction to roll back")
	}
	defer func() {
		d.tx = nil
	}()

	return d.tx.Rollback()
}

// inTx runs fn in a transaction. When the controller is already bound to one, fn joins
// it and the outer caller decides whether to commit.
func (d *dbController) inTx(ctx context.Context, fn func(tx *dbController) error) (err error) {
	if d.tx != nil {
		return fn(d)
	}

	tx, err := d.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var txerr error
	defer func() {
		if r := recover(); r != nil {
			// rollback before re-panicking
			_ = tx.Rollback()
			panic(r)
		} else if txerr != nil {
			err = errors.Join(txerr, tx.Rollback())
		} else {
			err = tx.Commit()
		}
	}()

	txerr = fn(tx)

	return txerr
}
