package calculator

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/gymdesk/internal/models"
)

// monthlyToken marks a plan as monthly when the catalog has no explicit flag.
const monthlyToken = "mensual"

// AdvisoryNonMonthlyGroup is returned when a group renewal selects a plan that
// is not eligible for the group discount.
const AdvisoryNonMonthlyGroup = "group discount applies only to monthly plans; no discount was applied"

// PriceBreakdown is the result of pricing one renewal.
type PriceBreakdown struct {
	Subtotal       float64
	DiscountRate   float64
	DiscountAmount float64
	Total          float64

	// Advisory is a caller-visible warning, never an error.
	Advisory string
}

// DiscountRate returns the group discount for n participants.
func DiscountRate(n int) float64 {
	switch {
	case n >= 4:
		return 0.16
	case n == 3:
		return 0.12
	case n == 2:
		return 0.08
	default:
		return 0
	}
}

// IsMonthlyEligible reports whether plan qualifies for the group discount.
// The explicit catalog flag wins; otherwise the plan is monthly when its
// modality or type contains "mensual", case-insensitively.
func IsMonthlyEligible(plan models.MembershipPlan) bool {
	if plan.Monthly != nil {
		return *plan.Monthly
	}
	return strings.Contains(strings.ToLower(plan.Modality), monthlyToken) ||
		strings.Contains(strings.ToLower(plan.Type), monthlyToken)
}

// ComputePrice prices a renewal of plan for participantCount clients.
//
// In group mode the subtotal is price × participants; the tiered discount
// applies only to monthly-eligible plans. Solo renewals pay the plan price.
// Nothing is rounded here; see FormatAmount.
func ComputePrice(plan models.MembershipPlan, participantCount int, groupMode bool) PriceBreakdown {
	subtotal := plan.Price
	if groupMode {
		subtotal = plan.Price * float64(participantCount)
	}

	monthly := IsMonthlyEligible(plan)
	rate := 0.0
	if groupMode && monthly {
		rate = DiscountRate(participantCount)
	}

	discount := subtotal * rate
	b := PriceBreakdown{
		Subtotal:       subtotal,
		DiscountRate:   rate,
		DiscountAmount: discount,
		Total:          subtotal - discount,
	}
	if groupMode && !monthly && participantCount >= 2 {
		b.Advisory = AdvisoryNonMonthlyGroup
	}
	return b
}

// FormatAmount renders an amount with two decimals for display.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatPercent renders a rate such as 0.12 as "12".
func FormatPercent(rate float64) string {
	return decimal.NewFromFloat(rate).Shift(2).Round(0).String()
}
