package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmynk/gymdesk/internal/calculator"
	"github.com/mmynk/gymdesk/internal/models"
	"github.com/mmynk/gymdesk/internal/storage"
)

func TestAggregateMonthlyIncome(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	entries := []struct {
		at     time.Time
		amount float64
	}{
		{time.Date(2024, time.September, 30, 23, 0, 0, 0, lima), 999},
		{time.Date(2024, time.October, 1, 0, 0, 0, 0, lima), 50},
		{time.Date(2024, time.December, 31, 23, 30, 0, 0, lima), 80},
		{time.Date(2025, time.March, 10, 9, 0, 0, 0, lima), 100},
		{time.Date(2025, time.March, 14, 18, 0, 0, 0, lima), 64.5},
	}
	for _, e := range entries {
		_, err := f.mem.Insert(ctx, storage.TableTransactions, storage.TransactionToRow(models.Transaction{
			PaymentID:     "p",
			ClientID:      "c",
			Amount:        e.amount,
			Kind:          models.TransactionKindFullPayment,
			PaymentMethod: models.PaymentMethodCash,
			Timestamp:     e.at.Unix(),
		}))
		if err != nil {
			t.Fatalf("failed to seed transaction: %v", err)
		}
	}

	got, err := f.ledger.AggregateMonthlyIncome(ctx, 6)
	if err != nil {
		t.Fatalf("AggregateMonthlyIncome failed: %v", err)
	}
	want := []calculator.MonthlyTotal{
		{MonthKey: "2024-10", Total: 50},
		{MonthKey: "2024-11", Total: 0},
		{MonthKey: "2024-12", Total: 80},
		{MonthKey: "2025-01", Total: 0},
		{MonthKey: "2025-02", Total: 0},
		{MonthKey: "2025-03", Total: 164.5},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}

	var ve *models.ValidationError
	if _, err := f.ledger.AggregateMonthlyIncome(ctx, 0); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for empty window, got %v", err)
	}
}

func TestListPayments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true, "Ana Torres", "Luis Vega")
	plan := monthlyPlan()
	quarterly := models.MembershipPlan{ID: "p3", Name: "Trimestral", Price: 270, Modality: "Trimestral", DurationMonths: 3}

	f.now = time.Date(2025, time.February, 10, 12, 0, 0, 0, lima)
	luis, err := f.ledger.InitiateRenewal(ctx, RenewalRequest{
		PayerID:        f.clients[1].ID,
		ParticipantIDs: []string{f.clients[1].ID},
		Plan:           quarterly,
		Price:          calculator.ComputePrice(quarterly, 1, false),
		Installments:   &InstallmentPlan{InitialAmount: 70, Count: 2},
	})
	if err != nil {
		t.Fatalf("InitiateRenewal failed: %v", err)
	}

	f.now = time.Date(2025, time.March, 15, 10, 0, 0, 0, lima)
	ana, err := f.ledger.InitiateRenewal(ctx, RenewalRequest{
		PayerID:        f.clients[0].ID,
		ParticipantIDs: []string{f.clients[0].ID},
		Plan:           plan,
		Price:          calculator.ComputePrice(plan, 1, false),
	})
	if err != nil {
		t.Fatalf("InitiateRenewal failed: %v", err)
	}

	_, err = f.mem.Insert(ctx, storage.TablePayments, storage.PaymentToRow(models.Payment{
		ClientID:         "deleted-client",
		MembershipPlanID: plan.ID,
		MembershipName:   plan.Name,
		TotalAmount:      100,
		Status:           models.PaymentStatusPending,
		CreatedAt:        time.Date(2025, time.January, 5, 0, 0, 0, 0, lima).Unix(),
	}))
	if err != nil {
		t.Fatalf("failed to seed orphan payment: %v", err)
	}

	all, err := f.ledger.ListPayments(ctx, PaymentFilter{})
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 payments, got %d", len(all))
	}
	if all[0].ID != ana.ID || all[1].ID != luis.ID || all[2].ClientName != NoClientName {
		t.Errorf("expected newest first with orphan last, got %+v", all)
	}

	from, to := MonthRange(time.Date(2025, time.February, 20, 0, 0, 0, 0, lima))
	tests := []struct {
		name   string
		filter PaymentFilter
		want   []string
	}{
		{"client name", PaymentFilter{Query: "ANA"}, []string{ana.ID}},
		{"membership name", PaymentFilter{Query: "trimes"}, []string{luis.ID}},
		{"status", PaymentFilter{Status: models.PaymentStatusPartial}, []string{luis.ID}},
		{"month", PaymentFilter{From: from, To: to}, []string{luis.ID}},
		{"no name", PaymentFilter{Query: "no name"}, []string{all[2].ID}},
		{"no match", PaymentFilter{Query: "zzz"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.ledger.ListPayments(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListPayments failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d payments, got %d", len(tt.want), len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("payment %d: expected %s, got %s", i, id, got[i].ID)
				}
			}
		})
	}

	var ve *models.ValidationError
	if _, err := f.ledger.ListPayments(ctx, PaymentFilter{Status: "overdue"}); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for unknown status, got %v", err)
	}

	summary := calculator.Summarize(Payments(all))
	if summary.TotalCollected != 170 || summary.TotalPending != 300 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if summary.ClientsWithDebt != 2 || summary.PaidCount != 1 {
		t.Errorf("unexpected summary counts %+v", summary)
	}
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(time.Date(2024, time.February, 10, 15, 0, 0, 0, lima))
	if !from.Equal(time.Date(2024, time.February, 1, 0, 0, 0, 0, lima)) {
		t.Errorf("unexpected from %v", from)
	}
	if !to.Equal(time.Date(2024, time.February, 29, 23, 59, 59, 0, lima)) {
		t.Errorf("unexpected to %v", to)
	}
}
