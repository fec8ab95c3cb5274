package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/gymdesk/internal/models"
)

// MonthKeyLayout is the canonical, locale-independent month bucket key.
const MonthKeyLayout = "2006-01"

// IncomeEntry is the minimal transaction information needed for income reports.
type IncomeEntry struct {
	Amount    float64
	Timestamp int64 // Unix seconds
}

// MonthlyTotal is the income received in one calendar month.
type MonthlyTotal struct {
	MonthKey string // YYYY-MM
	Total    float64
}

// PaymentSummary aggregates a list of payments.
type PaymentSummary struct {
	TotalPending    float64 // sum of outstanding balances
	TotalCollected  float64 // sum of paid amounts
	ClientsWithDebt int     // distinct payers with a payment that is not paid
	PaidCount       int     // payments fully paid
}

// ClientBalance is the outstanding balance of one payer.
type ClientBalance struct {
	ClientID    string
	Outstanding float64
	Payments    int // payments with a balance
}

// MonthWindowStart returns the first instant of the oldest month in a window
// of months ending with now's month, in now's location.
func MonthWindowStart(now time.Time, windowMonths int) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m-time.Month(windowMonths-1), 1, 0, 0, 0, 0, now.Location())
}

// BucketMonthlyIncome sums entries into windowMonths calendar-month buckets
// ending with now's month. Every month of the window is present, zero or
// not, oldest first. Entries outside the window are ignored.
func BucketMonthlyIncome(entries []IncomeEntry, now time.Time, windowMonths int) []MonthlyTotal {
	if windowMonths < 1 {
		return nil
	}
	loc := now.Location()
	start := MonthWindowStart(now, windowMonths)

	keys := make([]string, windowMonths)
	sums := make(map[string]decimal.Decimal, windowMonths)
	for i := 0; i < windowMonths; i++ {
		key := start.AddDate(0, i, 0).Format(MonthKeyLayout)
		keys[i] = key
		sums[key] = decimal.Zero
	}

	for _, e := range entries {
		key := time.Unix(e.Timestamp, 0).In(loc).Format(MonthKeyLayout)
		if sum, ok := sums[key]; ok {
			sums[key] = sum.Add(decimal.NewFromFloat(e.Amount))
		}
	}

	out := make([]MonthlyTotal, windowMonths)
	for i, key := range keys {
		out[i] = MonthlyTotal{MonthKey: key, Total: sums[key].InexactFloat64()}
	}
	return out
}

// Summarize computes the payments page summary over payments.
func Summarize(payments []models.Payment) PaymentSummary {
	pending := decimal.Zero
	collected := decimal.Zero
	debtors := make(map[string]bool)
	var s PaymentSummary
	for _, p := range payments {
		pending = pending.Add(Outstanding(p.PaidAmount, p.TotalAmount))
		collected = collected.Add(decimal.NewFromFloat(p.PaidAmount))
		if p.Status == models.PaymentStatusPaid {
			s.PaidCount++
		} else {
			debtors[p.ClientID] = true
		}
	}
	s.TotalPending = pending.InexactFloat64()
	s.TotalCollected = collected.InexactFloat64()
	s.ClientsWithDebt = len(debtors)
	return s
}

// OutstandingByClient groups unpaid balances by payer, largest first.
func OutstandingByClient(payments []models.Payment) []ClientBalance {
	byClient := make(map[string]*ClientBalance)
	sums := make(map[string]decimal.Decimal)
	for _, p := range payments {
		left := Outstanding(p.PaidAmount, p.TotalAmount)
		if !left.IsPositive() {
			continue
		}
		if _, exists := byClient[p.ClientID]; !exists {
			byClient[p.ClientID] = &ClientBalance{ClientID: p.ClientID}
			sums[p.ClientID] = decimal.Zero
		}
		byClient[p.ClientID].Payments++
		sums[p.ClientID] = sums[p.ClientID].Add(left)
	}

	out := make([]ClientBalance, 0, len(byClient))
	for id, b := range byClient {
		b.Outstanding = sums[id].InexactFloat64()
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Outstanding != out[j].Outstanding {
			return out[i].Outstanding > out[j].Outstanding
		}
		return out[i].ClientID < out[j].ClientID
	})
	return out
}
