package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/mmynk/gymdesk/internal/models"
)

func TestBucketMonthlyIncome(t *testing.T) {
	loc := time.FixedZone("PET", -5*60*60)
	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, loc)
	at := func(y int, m time.Month, d int) int64 {
		return time.Date(y, m, d, 9, 0, 0, 0, loc).Unix()
	}

	entries := []IncomeEntry{
		{Amount: 100, Timestamp: at(2026, time.February, 1)},
		{Amount: 50.5, Timestamp: at(2026, time.February, 9)},
		{Amount: 264, Timestamp: at(2025, time.December, 31)},
		{Amount: 80, Timestamp: at(2025, time.September, 3)},
		{Amount: 999, Timestamp: at(2025, time.August, 31)}, // outside the window
		{Amount: 10, Timestamp: at(2024, time.February, 5)},  // same month, other year
	}

	got := BucketMonthlyIncome(entries, now, 6)

	want := []MonthlyTotal{
		{MonthKey: "2025-09", Total: 80},
		{MonthKey: "2025-10", Total: 0},
		{MonthKey: "2025-11", Total: 0},
		{MonthKey: "2025-12", Total: 264},
		{MonthKey: "2026-01", Total: 0},
		{MonthKey: "2026-02", Total: 150.5},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d buckets, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].MonthKey != want[i].MonthKey {
			t.Errorf("bucket %d key = %s, want %s", i, got[i].MonthKey, want[i].MonthKey)
		}
		if math.Abs(got[i].Total-want[i].Total) > 0.001 {
			t.Errorf("bucket %s total = %v, want %v", got[i].MonthKey, got[i].Total, want[i].Total)
		}
	}
}

func TestBucketMonthlyIncome_UsesNowLocation(t *testing.T) {
	loc := time.FixedZone("PET", -5*60*60)
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, loc)
	// 2026-03-01 02:00 UTC is still February in Lima.
	ts := time.Date(2026, time.March, 1, 2, 0, 0, 0, time.UTC).Unix()

	got := BucketMonthlyIncome([]IncomeEntry{{Amount: 40, Timestamp: ts}}, now, 2)
	if got[0].MonthKey != "2026-02" || got[0].Total != 40 {
		t.Errorf("expected the entry in 2026-02, got %+v", got)
	}
	if got[1].Total != 0 {
		t.Errorf("expected 2026-03 to be empty, got %+v", got[1])
	}
}

func TestBucketMonthlyIncome_InvalidWindow(t *testing.T) {
	if got := BucketMonthlyIncome(nil, time.Now(), 0); got != nil {
		t.Errorf("expected nil for a zero window, got %+v", got)
	}
}

func TestSummarize(t *testing.T) {
	payments := []models.Payment{
		{ClientID: "ana", TotalAmount: 264, PaidAmount: 100, Status: models.PaymentStatusPartial},
		{ClientID: "ana", TotalAmount: 50, PaidAmount: 0, Status: models.PaymentStatusPending},
		{ClientID: "luis", TotalAmount: 100, PaidAmount: 100, Status: models.PaymentStatusPaid},
		{ClientID: "rosa", TotalAmount: 80, PaidAmount: 20, Status: models.PaymentStatusPartial},
	}

	got := Summarize(payments)
	if math.Abs(got.TotalPending-274) > 0.001 {
		t.Errorf("TotalPending = %v, want 274", got.TotalPending)
	}
	if math.Abs(got.TotalCollected-220) > 0.001 {
		t.Errorf("TotalCollected = %v, want 220", got.TotalCollected)
	}
	if got.ClientsWithDebt != 2 {
		t.Errorf("ClientsWithDebt = %d, want 2", got.ClientsWithDebt)
	}
	if got.PaidCount != 1 {
		t.Errorf("PaidCount = %d, want 1", got.PaidCount)
	}
}

func TestOutstandingByClient(t *testing.T) {
	payments := []models.Payment{
		{ClientID: "ana", TotalAmount: 264, PaidAmount: 100},
		{ClientID: "ana", TotalAmount: 50, PaidAmount: 0},
		{ClientID: "luis", TotalAmount: 100, PaidAmount: 100},
		{ClientID: "rosa", TotalAmount: 300, PaidAmount: 20},
	}

	got := OutstandingByClient(payments)
	if len(got) != 2 {
		t.Fatalf("expected 2 clients with balance, got %+v", got)
	}
	if got[0].ClientID != "rosa" || math.Abs(got[0].Outstanding-280) > 0.001 {
		t.Errorf("first balance = %+v, want rosa 280", got[0])
	}
	if got[1].ClientID != "ana" || math.Abs(got[1].Outstanding-214) > 0.001 || got[1].Payments != 2 {
		t.Errorf("second balance = %+v, want ana 214 over 2 payments", got[1])
	}
}
