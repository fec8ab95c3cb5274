package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/gymdesk/internal/models"
	"github.com/mmynk/gymdesk/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("Insert generates ID", func(t *testing.T) {
		row, err := store.Insert(ctx, storage.TableClients, storage.ClientToRow(models.Client{
			Name:   "Ana",
			Status: models.ClientStatusInactive,
		}))
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if row.String("id") == "" {
			t.Error("Expected client ID to be generated")
		}
	})

	t.Run("Get round-trips a client", func(t *testing.T) {
		in := models.Client{
			ID:               "c-luis",
			Name:             "Luis",
			MembershipPlanID: "plan-1",
			MembershipName:   "Mensual Full",
			StartDate:        "2025-01-31",
			EndDate:          "2025-02-28",
			Status:           models.ClientStatusActive,
		}
		if _, err := store.Insert(ctx, storage.TableClients, storage.ClientToRow(in)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}

		rows, err := store.Get(ctx, storage.TableClients, storage.Where(storage.Eq("id", "c-luis")))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("Expected 1 row, got %d", len(rows))
		}
		got := storage.ClientFromRow(rows[0])
		if got != in {
			t.Errorf("Expected %+v, got %+v", in, got)
		}
		if !rows[0].IsNull("group_id") {
			t.Error("Expected empty group_id to be stored as NULL")
		}
	})

	t.Run("Get with no match returns empty", func(t *testing.T) {
		rows, err := store.Get(ctx, storage.TableClients, storage.Where(storage.Eq("id", "missing")))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("Expected no rows, got %d", len(rows))
		}
	})

	t.Run("Update and IsNull filter", func(t *testing.T) {
		if err := store.Update(ctx, storage.TableClients,
			storage.Where(storage.Eq("id", "c-luis")),
			storage.Row{"group_id": "g-1"},
		); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		rows, err := store.Get(ctx, storage.TableClients, storage.Where(storage.IsNull("group_id")))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		for _, r := range rows {
			if r.String("id") == "c-luis" {
				t.Error("Expected grouped client to be excluded by IsNull")
			}
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, storage.TableClients, storage.Where(storage.Eq("id", "c-luis"))); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		rows, err := store.Get(ctx, storage.TableClients, storage.Where(storage.Eq("id", "c-luis")))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("Expected client to be deleted, got %d rows", len(rows))
		}
	})

	t.Run("Unknown column is a store error", func(t *testing.T) {
		_, err := store.Insert(ctx, storage.TableClients, storage.Row{"nickname": "x"})
		var se *storage.Error
		if !errors.As(err, &se) {
			t.Fatalf("Expected *storage.Error, got %v", err)
		}
		if !errors.Is(err, storage.ErrUnknownColumn) {
			t.Errorf("Expected ErrUnknownColumn, got %v", err)
		}
	})
}

func TestPlanMonthlyFlag(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	monthly := true
	plans := []models.MembershipPlan{
		{ID: "flagged", Name: "Flagged", Price: 100, DurationMonths: 1, Monthly: &monthly},
		{ID: "unflagged", Name: "Unflagged", Price: 80, Modality: "Mensual", DurationMonths: 1},
	}
	for _, p := range plans {
		if _, err := store.Insert(ctx, storage.TableMembershipPlans, storage.PlanToRow(p)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	rows, err := store.Get(ctx, storage.TableMembershipPlans, nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	byID := make(map[string]models.MembershipPlan)
	for _, r := range rows {
		p := storage.PlanFromRow(r)
		byID[p.ID] = p
	}

	if f := byID["flagged"].Monthly; f == nil || !*f {
		t.Errorf("Expected flagged plan to read back Monthly=true, got %v", f)
	}
	if f := byID["unflagged"].Monthly; f != nil {
		t.Errorf("Expected unflagged plan to read back nil, got %v", *f)
	}
	if byID["unflagged"].Price != 80 {
		t.Errorf("Expected price 80, got %v", byID["unflagged"].Price)
	}
}

func TestTimeRangeFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Insert(ctx, storage.TablePayments, storage.PaymentToRow(models.Payment{
		ID: "p-1", ClientID: "c-1", MembershipPlanID: "plan-1", MembershipName: "Mensual",
		TotalAmount: 100, Status: models.PaymentStatusPending, CreatedAt: 1000,
	})); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	for i, ts := range []int64{900, 1000, 1500, 2000} {
		if _, err := store.Insert(ctx, storage.TableTransactions, storage.TransactionToRow(models.Transaction{
			PaymentID:         "p-1",
			ClientID:          "c-1",
			Amount:            10,
			Kind:              models.TransactionKindInstallment,
			InstallmentNumber: i + 1,
			PaymentMethod:     models.PaymentMethodCash,
			Timestamp:         ts,
		})); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	rows, err := store.Get(ctx, storage.TableTransactions, storage.Where(
		storage.Gte("timestamp", int64(1000)),
		storage.Lt("timestamp", int64(2000)),
	))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 transactions in [1000, 2000), got %d", len(rows))
	}
	for _, r := range rows {
		tx := storage.TransactionFromRow(r)
		if tx.Timestamp < 1000 || tx.Timestamp >= 2000 {
			t.Errorf("Unexpected timestamp %d", tx.Timestamp)
		}
		if tx.InstallmentNumber == 0 {
			t.Error("Expected installment number to be stored")
		}
	}
}

func TestInTx(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("Commit", func(t *testing.T) {
		err := store.InTx(ctx, func(tx storage.RowStore) error {
			_, err := tx.Insert(ctx, storage.TableGroups, storage.GroupToRow(models.Group{
				ID: "g-commit", Name: "Familia", LeaderID: "c-1", CreatedAt: 1,
			}))
			return err
		})
		if err != nil {
			t.Fatalf("InTx failed: %v", err)
		}
		rows, _ := store.Get(ctx, storage.TableGroups, storage.Where(storage.Eq("id", "g-commit")))
		if len(rows) != 1 {
			t.Errorf("Expected committed group, got %d rows", len(rows))
		}
	})

	t.Run("Rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.InTx(ctx, func(tx storage.RowStore) error {
			if _, err := tx.Insert(ctx, storage.TableGroups, storage.GroupToRow(models.Group{
				ID: "g-rollback", Name: "Amigos", LeaderID: "c-2", CreatedAt: 1,
			})); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("Expected boom, got %v", err)
		}
		rows, _ := store.Get(ctx, storage.TableGroups, storage.Where(storage.Eq("id", "g-rollback")))
		if len(rows) != 0 {
			t.Errorf("Expected rolled back group to be absent, got %d rows", len(rows))
		}
	})

	t.Run("Unique leader", func(t *testing.T) {
		_, err := store.Insert(ctx, storage.TableGroups, storage.GroupToRow(models.Group{
			Name: "Duplicate", LeaderID: "c-1", CreatedAt: 2,
		}))
		var se *storage.Error
		if !errors.As(err, &se) {
			t.Errorf("Expected *storage.Error for a second group led by c-1, got %v", err)
		}
	})
}
