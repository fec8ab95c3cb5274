package ledger

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/mmynk/gymdesk/internal/calculator"
	"github.com/mmynk/gymdesk/internal/models"
	"github.com/mmynk/gymdesk/internal/storage"
)

// NoClientName is shown for payments whose payer no longer exists.
const NoClientName = "No name"

// PaymentFilter narrows ListPayments. Zero fields do not filter.
type PaymentFilter struct {
	// Query matches the payer's name or the membership name, case-insensitively.
	Query  string
	Status string

	// From and To bound CreatedAt, both inclusive.
	From time.Time
	To   time.Time
}

// PaymentView is a payment joined with its payer's name.
type PaymentView struct {
	models.Payment
	ClientName string
}

// MonthRange returns the first and last second of t's calendar month.
func MonthRange(t time.Time) (from, to time.Time) {
	y, m, _ := t.Date()
	from = time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 1, 0).Add(-time.Second)
}

// ListPayments returns the payments matching f, newest first.
func (l *Ledger) ListPayments(ctx context.Context, f PaymentFilter) ([]PaymentView, error) {
	var filter storage.Filter
	if f.Status != "" {
		if !lo.Contains([]string{models.PaymentStatusPending, models.PaymentStatusPartial, models.PaymentStatusPaid}, f.Status) {
			return nil, models.NewValidationError("unknown payment status %q", f.Status)
		}
		filter = append(filter, storage.Eq("status", f.Status))
	}
	if !f.From.IsZero() {
		filter = append(filter, storage.Gte("created_at", f.From.Unix()))
	}
	if !f.To.IsZero() {
		filter = append(filter, storage.Lt("created_at", f.To.Unix()+1))
	}

	rows, err := l.store.Get(ctx, storage.TablePayments, filter)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []PaymentView{}, nil
	}

	clients, err := l.store.Get(ctx, storage.TableClients, nil)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.String("id")] = c.String("name")
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]PaymentView, 0, len(rows))
	for _, row := range rows {
		p := storage.PaymentFromRow(row)
		name := names[p.ClientID]
		if name == "" {
			name = NoClientName
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(name), query) &&
			!strings.Contains(strings.ToLower(p.MembershipName), query) {
			continue
		}
		out = append(out, PaymentView{Payment: p, ClientName: name})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

// Payments unwraps views for the calculator's summaries.
func Payments(views []PaymentView) []models.Payment {
	return lo.Map(views, func(v PaymentView, _ int) models.Payment { return v.Payment })
}

// AggregateMonthlyIncome sums transaction amounts into windowMonths calendar
// months ending with the current one, oldest first, zero months included.
func (l *Ledger) AggregateMonthlyIncome(ctx context.Context, windowMonths int) ([]calculator.MonthlyTotal, error) {
	if windowMonths < 1 {
		return nil, models.NewValidationError("window must be at least one month")
	}
	now := l.clock()
	start := calculator.MonthWindowStart(now, windowMonths)

	rows, err := l.store.Get(ctx, storage.TableTransactions, storage.Where(storage.Gte("timestamp", start.Unix())))
	if err != nil {
		return nil, err
	}
	entries := lo.Map(rows, func(r storage.Row, _ int) calculator.IncomeEntry {
		return calculator.IncomeEntry{Amount: r.Float("amount"), Timestamp: r.Int64("timestamp")}
	})
	return calculator.BucketMonthlyIncome(entries, now, windowMonths), nil
}
