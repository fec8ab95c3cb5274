package calculator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/gymdesk/internal/models"
)

// MaxInstallments caps how many installments the balance of a renewal may be
// split into.
const MaxInstallments = 2

// installmentSpacingDays separates consecutive installment due dates.
const installmentSpacingDays = 7

// ScheduledInstallment is one planned installment of an outstanding balance.
type ScheduledInstallment struct {
	Number  int
	Amount  float64
	DueDate time.Time
}

// InstallmentSchedule splits outstanding into count weekly installments, the
// first due seven days after from. Amounts are rounded to cents and the last
// installment absorbs the remainder so they add up to outstanding.
// Nothing is scheduled when outstanding is not positive or count < 1.
func InstallmentSchedule(outstanding float64, count int, from time.Time) []ScheduledInstallment {
	left := decimal.NewFromFloat(outstanding)
	if count < 1 || !left.IsPositive() {
		return nil
	}
	share := left.Div(decimal.NewFromInt(int64(count))).Round(2)

	out := make([]ScheduledInstallment, count)
	for i := 0; i < count; i++ {
		amount := share
		if i == count-1 {
			amount = left
		}
		left = left.Sub(amount)
		out[i] = ScheduledInstallment{
			Number:  i + 1,
			Amount:  amount.InexactFloat64(),
			DueDate: from.AddDate(0, 0, (i+1)*installmentSpacingDays),
		}
	}
	return out
}

// DeriveStatus computes a payment status from its amounts.
// It is the only source of Payment.Status.
func DeriveStatus(paid, total float64) string {
	p := decimal.NewFromFloat(paid)
	switch {
	case p.GreaterThanOrEqual(decimal.NewFromFloat(total)):
		return models.PaymentStatusPaid
	case p.IsPositive():
		return models.PaymentStatusPartial
	default:
		return models.PaymentStatusPending
	}
}

// Outstanding returns total - paid using decimal arithmetic.
func Outstanding(paid, total float64) decimal.Decimal {
	return decimal.NewFromFloat(total).Sub(decimal.NewFromFloat(paid))
}

// ExceedsOutstanding reports whether amount is more than what is left to pay.
func ExceedsOutstanding(amount, paid, total float64) bool {
	return decimal.NewFromFloat(amount).GreaterThan(Outstanding(paid, total))
}

// AddAmounts sums two amounts without accumulating binary rounding error.
func AddAmounts(a, b float64) float64 {
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).InexactFloat64()
}

// AddCalendarMonths adds months to t keeping the day of month, clamped to the
// last day of the target month (Jan 31 + 1 month = Feb 28 or 29).
func AddCalendarMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}
