// Package memory provides an in-memory implementation of the storage
// interfaces. It backs tests and the "memory" storage driver.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmynk/gymdesk/internal/storage"
)

// Ensure Store implements the storage interfaces.
var (
	_ storage.Store      = (*Store)(nil)
	_ storage.Transactor = (*Store)(nil)
)

type fault struct {
	op    string
	table string
	err   error
}

// Store keeps rows in insertion order per table. It is safe for concurrent
// use; a transaction holds the store lock until it commits or rolls back.
type Store struct {
	mu     sync.Mutex
	tables map[string][]storage.Row
	faults []fault
}

// New creates an empty Store with every schema table present.
func New() *Store {
	tables := make(map[string][]storage.Row, len(storage.Schema))
	for name := range storage.Schema {
		tables[name] = nil
	}
	return &Store{tables: tables}
}

// InjectFault makes the next op ("get", "insert", "update", "delete") on
// table fail with err. Each injected fault fires once.
func (s *Store) InjectFault(op, table string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, fault{op: op, table: table, err: err})
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// Get returns copies of the matching rows.
func (s *Store) Get(ctx context.Context, table string, filter storage.Filter) ([]storage.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().Get(ctx, table, filter)
}

// Insert stores a copy of row.
func (s *Store) Insert(ctx context.Context, table string, row storage.Row) (storage.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().Insert(ctx, table, row)
}

// Update patches the matching rows.
func (s *Store) Update(ctx context.Context, table string, filter storage.Filter, patch storage.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().Update(ctx, table, filter, patch)
}

// Delete removes the matching rows.
func (s *Store) Delete(ctx context.Context, table string, filter storage.Filter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().Delete(ctx, table, filter)
}

// InTx runs fn against a copy of the tables and swaps the copy in only when
// fn succeeds.
func (s *Store) InTx(ctx context.Context, fn func(tx storage.RowStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string][]storage.Row, len(s.tables))
	for name, rows := range s.tables {
		copied := make([]storage.Row, len(rows))
		for i, r := range rows {
			copied[i] = r.Clone()
		}
		snapshot[name] = copied
	}

	tx := &view{store: s, tables: snapshot}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return storage.Wrap("commit", "", err)
	}
	s.tables = snapshot
	return nil
}

func (s *Store) view() *view {
	return &view{store: s, tables: s.tables}
}

// takeFault pops the first fault registered for op on table. Callers hold s.mu.
func (s *Store) takeFault(op, table string) error {
	for i, f := range s.faults {
		if f.op == op && f.table == table {
			s.faults = append(s.faults[:i], s.faults[i+1:]...)
			return f.err
		}
	}
	return nil
}

// view performs row operations on a table set without locking.
type view struct {
	store  *Store
	tables map[string][]storage.Row
}

func (v *view) check(ctx context.Context, op, table string) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap(op, table, err)
	}
	if _, ok := v.tables[table]; !ok {
		return storage.Wrap(op, table, fmt.Errorf("%w: %s", storage.ErrUnknownTable, table))
	}
	if err := v.store.takeFault(op, table); err != nil {
		return storage.Wrap(op, table, err)
	}
	return nil
}

func (v *view) Get(ctx context.Context, table string, filter storage.Filter) ([]storage.Row, error) {
	if err := v.check(ctx, "get", table); err != nil {
		return nil, err
	}
	if err := storage.CheckFilter(table, filter); err != nil {
		return nil, storage.Wrap("get", table, err)
	}
	var out []storage.Row
	for _, r := range v.tables[table] {
		if filter.Match(r) {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (v *view) Insert(ctx context.Context, table string, row storage.Row) (storage.Row, error) {
	if err := v.check(ctx, "insert", table); err != nil {
		return nil, err
	}
	if err := storage.CheckColumns(table, row); err != nil {
		return nil, storage.Wrap("insert", table, err)
	}
	stored := storage.PrepareInsert(row)
	for _, r := range v.tables[table] {
		if r.String("id") == stored.String("id") {
			return nil, storage.Wrap("insert", table, fmt.Errorf("duplicate id %s", stored.String("id")))
		}
	}
	v.tables[table] = append(v.tables[table], stored)
	return stored.Clone(), nil
}

func (v *view) Update(ctx context.Context, table string, filter storage.Filter, patch storage.Row) error {
	if err := v.check(ctx, "update", table); err != nil {
		return err
	}
	if err := storage.CheckColumns(table, patch); err != nil {
		return storage.Wrap("update", table, err)
	}
	if err := storage.CheckFilter(table, filter); err != nil {
		return storage.Wrap("update", table, err)
	}
	for _, r := range v.tables[table] {
		if !filter.Match(r) {
			continue
		}
		for col, val := range patch {
			r[col] = val
		}
	}
	return nil
}

func (v *view) Delete(ctx context.Context, table string, filter storage.Filter) error {
	if err := v.check(ctx, "delete", table); err != nil {
		return err
	}
	if err := storage.CheckFilter(table, filter); err != nil {
		return storage.Wrap("delete", table, err)
	}
	kept := v.tables[table][:0:0]
	for _, r := range v.tables[table] {
		if !filter.Match(r) {
			kept = append(kept, r)
		}
	}
	v.tables[table] = kept
	return nil
}
