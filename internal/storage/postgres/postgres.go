// Package postgres provides a PostgreSQL-backed implementation of the storage
// interfaces on a pgx connection pool.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmynk/gymdesk/internal/storage"
)

// Ensure Store implements the storage interfaces.
var (
	_ storage.Store      = (*Store)(nil)
	_ storage.Transactor = (*Store)(nil)
)

// Store implements storage.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// querier is the subset of *pgxpool.Pool and pgx.Tx the row operations need.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// New connects to databaseURL and verifies the connection.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Get returns the rows of table matching filter.
func (s *Store) Get(ctx context.Context, table string, filter storage.Filter) ([]storage.Row, error) {
	return get(ctx, s.pool, table, filter)
}

// Insert persists row, generating its id when missing.
func (s *Store) Insert(ctx context.Context, table string, row storage.Row) (storage.Row, error) {
	return insert(ctx, s.pool, table, row)
}

// Update applies patch to the rows matching filter.
func (s *Store) Update(ctx context.Context, table string, filter storage.Filter, patch storage.Row) error {
	return exec(ctx, s.pool, "update", table, func() (string, []any, error) {
		return storage.UpdateSQL(table, filter, patch, storage.Dollar)
	})
}

// Delete removes the rows matching filter.
func (s *Store) Delete(ctx context.Context, table string, filter storage.Filter) error {
	return exec(ctx, s.pool, "delete", table, func() (string, []any, error) {
		return storage.DeleteSQL(table, filter, storage.Dollar)
	})
}

// InTx runs fn inside a database transaction.
func (s *Store) InTx(ctx context.Context, fn func(tx storage.RowStore) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return storage.Wrap("begin", "", fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	if err := fn(&txStore{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return storage.Wrap("commit", "", fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

type txStore struct {
	tx pgx.Tx
}

func (t *txStore) Get(ctx context.Context, table string, filter storage.Filter) ([]storage.Row, error) {
	return get(ctx, t.tx, table, filter)
}

func (t *txStore) Insert(ctx context.Context, table string, row storage.Row) (storage.Row, error) {
	return insert(ctx, t.tx, table, row)
}

func (t *txStore) Update(ctx context.Context, table string, filter storage.Filter, patch storage.Row) error {
	return exec(ctx, t.tx, "update", table, func() (string, []any, error) {
		return storage.UpdateSQL(table, filter, patch, storage.Dollar)
	})
}

func (t *txStore) Delete(ctx context.Context, table string, filter storage.Filter) error {
	return exec(ctx, t.tx, "delete", table, func() (string, []any, error) {
		return storage.DeleteSQL(table, filter, storage.Dollar)
	})
}

func get(ctx context.Context, q querier, table string, filter storage.Filter) ([]storage.Row, error) {
	query, args, err := storage.SelectSQL(table, filter, storage.Dollar)
	if err != nil {
		return nil, storage.Wrap("get", table, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, storage.Wrap("get", table, fmt.Errorf("failed to query: %w", err))
	}
	defer rows.Close()

	cols := storage.Schema[table]
	var out []storage.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, storage.Wrap("get", table, fmt.Errorf("failed to read row: %w", err))
		}
		row := make(storage.Row, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Wrap("get", table, fmt.Errorf("failed to iterate rows: %w", err))
	}
	return out, nil
}

func insert(ctx context.Context, q querier, table string, row storage.Row) (storage.Row, error) {
	stored := storage.PrepareInsert(row)
	query, args, err := storage.InsertSQL(table, stored, storage.Dollar)
	if err != nil {
		return nil, storage.Wrap("insert", table, err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return nil, storage.Wrap("insert", table, fmt.Errorf("failed to insert: %w", err))
	}
	return stored, nil
}

func exec(ctx context.Context, q querier, op, table string, build func() (string, []any, error)) error {
	query, args, err := build()
	if err != nil {
		return storage.Wrap(op, table, err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return storage.Wrap(op, table, fmt.Errorf("failed to %s: %w", op, err))
	}
	return nil
}
