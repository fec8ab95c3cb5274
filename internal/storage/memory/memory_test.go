package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/gymdesk/internal/storage"
)

func TestStoreCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()

	row, err := s.Insert(ctx, storage.TableGroups, storage.Row{"name": "Familia", "leader_id": "c-1", "created_at": int64(1)})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	id := row.String("id")
	if id == "" {
		t.Fatal("Expected generated id")
	}

	// Returned rows are copies.
	row["name"] = "changed"
	rows, err := s.Get(ctx, storage.TableGroups, storage.Where(storage.Eq("id", id)))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(rows) != 1 || rows[0].String("name") != "Familia" {
		t.Fatalf("Expected stored name Familia, got %v", rows)
	}

	if err := s.Update(ctx, storage.TableGroups, storage.Where(storage.Eq("id", id)), storage.Row{"name": "Amigos"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	rows, _ = s.Get(ctx, storage.TableGroups, nil)
	if rows[0].String("name") != "Amigos" {
		t.Errorf("Expected updated name, got %q", rows[0].String("name"))
	}

	if _, err := s.Insert(ctx, storage.TableGroups, storage.Row{"id": id, "name": "Dup"}); err == nil {
		t.Error("Expected duplicate id to fail")
	}

	if err := s.Delete(ctx, storage.TableGroups, storage.Where(storage.Eq("id", id))); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	rows, _ = s.Get(ctx, storage.TableGroups, nil)
	if len(rows) != 0 {
		t.Errorf("Expected empty table, got %d rows", len(rows))
	}
}

func TestStoreErrors(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Get(ctx, "users", nil)
	if !errors.Is(err, storage.ErrUnknownTable) {
		t.Errorf("Expected ErrUnknownTable, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Get(cancelled, storage.TableClients, nil)
	var se *storage.Error
	if !errors.As(err, &se) || !errors.Is(err, context.Canceled) {
		t.Errorf("Expected wrapped context.Canceled, got %v", err)
	}
}

func TestInjectFaultFiresOnce(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("disk full")
	s.InjectFault("insert", storage.TablePayments, boom)

	if _, err := s.Insert(ctx, storage.TableClients, storage.Row{"name": "Ana"}); err != nil {
		t.Fatalf("Expected fault to be scoped to payments, got %v", err)
	}

	_, err := s.Insert(ctx, storage.TablePayments, storage.Row{"status": "pending"})
	var se *storage.Error
	if !errors.As(err, &se) || !errors.Is(err, boom) {
		t.Fatalf("Expected injected fault, got %v", err)
	}
	if se.Op != "insert" || se.Table != storage.TablePayments {
		t.Errorf("Unexpected error fields %+v", se)
	}

	if _, err := s.Insert(ctx, storage.TablePayments, storage.Row{"status": "pending"}); err != nil {
		t.Errorf("Expected second insert to succeed, got %v", err)
	}
}

func TestInTxRollsBack(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.InTx(ctx, func(tx storage.RowStore) error {
		if _, err := tx.Insert(ctx, storage.TableClients, storage.Row{"id": "c-1", "name": "Ana"}); err != nil {
			return err
		}
		rows, err := tx.Get(ctx, storage.TableClients, nil)
		if err != nil {
			return err
		}
		if len(rows) != 1 {
			t.Errorf("Expected insert to be visible inside the transaction, got %d rows", len(rows))
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}

	rows, _ := s.Get(ctx, storage.TableClients, nil)
	if len(rows) != 0 {
		t.Errorf("Expected rollback, got %d rows", len(rows))
	}

	err = s.InTx(ctx, func(tx storage.RowStore) error {
		_, err := tx.Insert(ctx, storage.TableClients, storage.Row{"id": "c-2", "name": "Luis"})
		return err
	})
	if err != nil {
		t.Fatalf("InTx failed: %v", err)
	}
	rows, _ = s.Get(ctx, storage.TableClients, nil)
	if len(rows) != 1 {
		t.Errorf("Expected committed row, got %d rows", len(rows))
	}
}

func TestAtomicallyUsesTransaction(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")

	_ = storage.Atomically(ctx, s, func(tx storage.RowStore) error {
		if _, err := tx.Insert(ctx, storage.TableClients, storage.Row{"name": "Ana"}); err != nil {
			return err
		}
		return boom
	})

	rows, _ := s.Get(ctx, storage.TableClients, nil)
	if len(rows) != 0 {
		t.Errorf("Expected Atomically to roll back through InTx, got %d rows", len(rows))
	}
}
