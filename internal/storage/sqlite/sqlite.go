// Package sqlite provides a SQLite-backed implementation of the storage interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/gymdesk/internal/storage"
)

// Ensure SQLiteStore implements the storage interfaces.
var (
	_ storage.Store      = (*SQLiteStore)(nil)
	_ storage.Transactor = (*SQLiteStore)(nil)
)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// querier is the subset of *sql.DB and *sql.Tx the row operations need.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: SQLite serializes writers anyway, and ":memory:"
	// databases are per connection.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys = ON"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run %q: %w", pragma, err)
		}
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get returns the rows of table matching filter.
func (s *SQLiteStore) Get(ctx context.Context, table string, filter storage.Filter) ([]storage.Row, error) {
	return get(ctx, s.db, table, filter)
}

// Insert persists row, generating its id when missing.
func (s *SQLiteStore) Insert(ctx context.Context, table string, row storage.Row) (storage.Row, error) {
	return insert(ctx, s.db, table, row)
}

// Update applies patch to the rows matching filter.
func (s *SQLiteStore) Update(ctx context.Context, table string, filter storage.Filter, patch storage.Row) error {
	return update(ctx, s.db, table, filter, patch)
}

// Delete removes the rows matching filter.
func (s *SQLiteStore) Delete(ctx context.Context, table string, filter storage.Filter) error {
	return del(ctx, s.db, table, filter)
}

// InTx runs fn inside a database transaction.
func (s *SQLiteStore) InTx(ctx context.Context, fn func(tx storage.RowStore) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storage.Wrap("begin", "", fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	if err := fn(&txStore{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storage.Wrap("commit", "", fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// txStore runs row operations inside a transaction.
type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Get(ctx context.Context, table string, filter storage.Filter) ([]storage.Row, error) {
	return get(ctx, t.tx, table, filter)
}

func (t *txStore) Insert(ctx context.Context, table string, row storage.Row) (storage.Row, error) {
	return insert(ctx, t.tx, table, row)
}

func (t *txStore) Update(ctx context.Context, table string, filter storage.Filter, patch storage.Row) error {
	return update(ctx, t.tx, table, filter, patch)
}

func (t *txStore) Delete(ctx context.Context, table string, filter storage.Filter) error {
	return del(ctx, t.tx, table, filter)
}

func get(ctx context.Context, q querier, table string, filter storage.Filter) ([]storage.Row, error) {
	query, args, err := storage.SelectSQL(table, filter, storage.QuestionMark)
	if err != nil {
		return nil, storage.Wrap("get", table, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storage.Wrap("get", table, fmt.Errorf("failed to query: %w", err))
	}
	defer rows.Close()

	cols := storage.Schema[table]
	var out []storage.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, storage.Wrap("get", table, fmt.Errorf("failed to scan row: %w", err))
		}
		row := make(storage.Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
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
	query, args, err := storage.InsertSQL(table, stored, storage.QuestionMark)
	if err != nil {
		return nil, storage.Wrap("insert", table, err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return nil, storage.Wrap("insert", table, fmt.Errorf("failed to insert: %w", err))
	}
	return stored, nil
}

func update(ctx context.Context, q querier, table string, filter storage.Filter, patch storage.Row) error {
	query, args, err := storage.UpdateSQL(table, filter, patch, storage.QuestionMark)
	if err != nil {
		return storage.Wrap("update", table, err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return storage.Wrap("update", table, fmt.Errorf("failed to update: %w", err))
	}
	return nil
}

func del(ctx context.Context, q querier, table string, filter storage.Filter) error {
	query, args, err := storage.DeleteSQL(table, filter, storage.QuestionMark)
	if err != nil {
		return storage.Wrap("delete", table, err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return storage.Wrap("delete", table, fmt.Errorf("failed to delete: %w", err))
	}
	return nil
}
