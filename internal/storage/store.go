// Package storage provides abstractions for persistent data storage.
//
// The subsystem talks to its backend through a generic row store: rows are
// column maps, filters are conjunctions of simple conditions. Backends that
// support multi-statement transactions also implement Transactor.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Tables.
const (
	TableClients         = "clients"
	TableGroups          = "groups"
	TableMembershipPlans = "membership_plans"
	TablePayments        = "payments"
	TableTransactions    = "transactions"
)

// Schema lists the columns of every table, in select order.
// Only these tables and columns are accepted by the stores.
var Schema = map[string][]string{
	TableClients: {
		"id", "name", "membership_plan_id", "membership_name", "membership_modality",
		"start_date", "end_date", "status", "group_id",
	},
	TableGroups: {
		"id", "name", "leader_id", "created_at",
	},
	TableMembershipPlans: {
		"id", "name", "price", "type", "modality", "duration_months", "monthly",
	},
	TablePayments: {
		"id", "client_id", "membership_plan_id", "total_amount", "paid_amount",
		"membership_name", "installment_count", "status", "notes", "created_at",
	},
	TableTransactions: {
		"id", "payment_id", "client_id", "amount", "kind", "installment_number",
		"payment_method", "timestamp", "notes",
	},
}

var (
	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownColumn = errors.New("unknown column")
)

// RowStore defines the row-level operations the core needs.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// memory) without changing the registry or the ledger.
type RowStore interface {
	// Get returns every row of table matching filter. A nil filter matches all
	// rows. No match is an empty result, not an error.
	Get(ctx context.Context, table string, filter Filter) ([]Row, error)

	// Insert persists row and returns it as stored.
	// A missing "id" is generated by the store.
	Insert(ctx context.Context, table string, row Row) (Row, error)

	// Update applies patch to every row matching filter.
	Update(ctx context.Context, table string, filter Filter, patch Row) error

	// Delete removes every row matching filter.
	Delete(ctx context.Context, table string, filter Filter) error
}

// Transactor is implemented by stores that can run several operations as one
// committed unit. fn's error rolls the unit back and is returned unchanged.
type Transactor interface {
	InTx(ctx context.Context, fn func(tx RowStore) error) error
}

// Store is a RowStore with a lifecycle.
type Store interface {
	RowStore

	// Close releases any resources held by the store.
	Close() error
}

// Atomically runs fn inside a transaction when rs supports one, otherwise
// directly against rs. Callers without transactions must compensate themselves.
func Atomically(ctx context.Context, rs RowStore, fn func(tx RowStore) error) error {
	if t, ok := rs.(Transactor); ok {
		return t.InTx(ctx, fn)
	}
	return fn(rs)
}

// Error is the StoreError of the taxonomy: the backend failed or was unavailable.
type Error struct {
	Op    string
	Table string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns err as a *Error unless it already is one.
func Wrap(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Table: table, Err: err}
}

// CheckColumns verifies table exists and every column of row belongs to it.
func CheckColumns(table string, row Row) error {
	cols, ok := Schema[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	for name := range row {
		if !contains(cols, name) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, table, name)
		}
	}
	return nil
}

// CheckFilter verifies every condition names a column of table.
func CheckFilter(table string, filter Filter) error {
	cols, ok := Schema[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	for _, c := range filter {
		if !contains(cols, c.Column) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, table, c.Column)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
