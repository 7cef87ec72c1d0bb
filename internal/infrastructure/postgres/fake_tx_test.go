package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de pgx para tests sin base de datos.
// fakeTx embebe pgx.Tx: los métodos no implementados entran en pánico si se usan.
// ──────────────────────────────────────────────────────────────────────────────

type execCall struct {
	sql  string
	args []any
}

type copyCall struct {
	table   pgx.Identifier
	columns []string
	rows    [][]any
}

type fakeTx struct {
	pgx.Tx

	ops        []string // "exec: <sql>", "query: <sql>", "copy: <tabla>" en orden de llegada
	execs      []execCall
	queries    []execCall
	copies     []copyCall
	committed  bool
	rolledBack bool

	failExec  map[string]error // subcadena de SQL -> error
	commitErr error
	exists    map[string]bool // subcadena de SQL -> resultado de EXISTS
	copyShort int
}

func newFakeTx() *fakeTx {
	return &fakeTx{failExec: map[string]error{}, exists: map[string]bool{}}
}

func (tx *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	for frag, err := range tx.failExec {
		if strings.Contains(sql, frag) {
			return pgconn.CommandTag{}, err
		}
	}
	tx.ops = append(tx.ops, "exec: "+sql)
	tx.execs = append(tx.execs, execCall{sql: sql, args: args})
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (tx *fakeTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	tx.ops = append(tx.ops, "query: "+sql)
	tx.queries = append(tx.queries, execCall{sql: sql, args: args})
	for frag, v := range tx.exists {
		if strings.Contains(sql, frag) {
			return boolRow{v: v}
		}
	}
	return boolRow{}
}

func (tx *fakeTx) CopyFrom(_ context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	tx.ops = append(tx.ops, "copy: "+table.Sanitize())
	c := copyCall{table: table, columns: columns}
	for src.Next() {
		vals, err := src.Values()
		if err != nil {
			return 0, err
		}
		c.rows = append(c.rows, vals)
	}
	tx.copies = append(tx.copies, c)
	return int64(len(c.rows) - tx.copyShort), nil
}

func (tx *fakeTx) Commit(context.Context) error {
	if tx.commitErr != nil {
		return tx.commitErr
	}
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if tx.committed {
		return pgx.ErrTxClosed
	}
	tx.rolledBack = true
	return nil
}

func (tx *fakeTx) execsMatching(frag string) []execCall {
	var out []execCall
	for _, e := range tx.execs {
		if strings.Contains(e.sql, frag) {
			out = append(out, e)
		}
	}
	return out
}

type boolRow struct {
	v   bool
	err error
}

func (r boolRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != 1 {
		return errors.New("boolRow: se esperaba un destino")
	}
	p, ok := dest[0].(*bool)
	if !ok {
		return errors.New("boolRow: destino no es *bool")
	}
	*p = r.v
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	err      error
	lastOpts pgx.TxOptions
	begins   int
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	b.begins++
	b.lastOpts = opts
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}
