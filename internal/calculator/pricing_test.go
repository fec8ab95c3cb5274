package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/gymdesk/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func TestDiscountRate(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{0, 0},
		{1, 0},
		{2, 0.08},
		{3, 0.12},
		{4, 0.16},
		{7, 0.16},
	}
	for _, tt := range tests {
		if got := DiscountRate(tt.n); got != tt.want {
			t.Errorf("DiscountRate(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestIsMonthlyEligible(t *testing.T) {
	tests := []struct {
		name string
		plan models.MembershipPlan
		want bool
	}{
		{"modality contains token", models.MembershipPlan{Modality: "Mensual"}, true},
		{"type contains token, mixed case", models.MembershipPlan{Type: "Plan MENSUAL libre"}, true},
		{"quarterly", models.MembershipPlan{Type: "Trimestral", Modality: "Presencial"}, false},
		{"explicit flag overrides text", models.MembershipPlan{Modality: "Mensual", Monthly: boolPtr(false)}, false},
		{"explicit flag without text", models.MembershipPlan{Type: "Monthly", Monthly: boolPtr(true)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMonthlyEligible(tt.plan); got != tt.want {
				t.Errorf("IsMonthlyEligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputePrice(t *testing.T) {
	monthly := models.MembershipPlan{ID: "m", Name: "Mensual", Price: 100, Modality: "mensual", DurationMonths: 1}
	quarterly := models.MembershipPlan{ID: "q", Name: "Trimestral", Price: 100, Modality: "trimestral", DurationMonths: 3}

	tests := []struct {
		name         string
		plan         models.MembershipPlan
		participants int
		groupMode    bool
		wantSubtotal float64
		wantRate     float64
		wantDiscount float64
		wantTotal    float64
		wantAdvisory bool
	}{
		{
			name: "solo renewal pays plan price", plan: monthly, participants: 1, groupMode: false,
			wantSubtotal: 100, wantRate: 0, wantDiscount: 0, wantTotal: 100,
		},
		{
			name: "solo mode ignores participant count", plan: monthly, participants: 3, groupMode: false,
			wantSubtotal: 100, wantRate: 0, wantDiscount: 0, wantTotal: 100,
		},
		{
			name: "group of one has no discount", plan: monthly, participants: 1, groupMode: true,
			wantSubtotal: 100, wantRate: 0, wantDiscount: 0, wantTotal: 100,
		},
		{
			name: "group of two", plan: monthly, participants: 2, groupMode: true,
			wantSubtotal: 200, wantRate: 0.08, wantDiscount: 16, wantTotal: 184,
		},
		{
			name: "group of three monthly", plan: monthly, participants: 3, groupMode: true,
			wantSubtotal: 300, wantRate: 0.12, wantDiscount: 36, wantTotal: 264,
		},
		{
			name: "group of five", plan: monthly, participants: 5, groupMode: true,
			wantSubtotal: 500, wantRate: 0.16, wantDiscount: 80, wantTotal: 420,
		},
		{
			name: "non-monthly group gets advisory, no discount", plan: quarterly, participants: 3, groupMode: true,
			wantSubtotal: 300, wantRate: 0, wantDiscount: 0, wantTotal: 300, wantAdvisory: true,
		},
		{
			name: "non-monthly group of one has no advisory", plan: quarterly, participants: 1, groupMode: true,
			wantSubtotal: 100, wantRate: 0, wantDiscount: 0, wantTotal: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePrice(tt.plan, tt.participants, tt.groupMode)
			if math.Abs(got.Subtotal-tt.wantSubtotal) > 0.001 {
				t.Errorf("Subtotal = %v, want %v", got.Subtotal, tt.wantSubtotal)
			}
			if got.DiscountRate != tt.wantRate {
				t.Errorf("DiscountRate = %v, want %v", got.DiscountRate, tt.wantRate)
			}
			if math.Abs(got.DiscountAmount-tt.wantDiscount) > 0.001 {
				t.Errorf("DiscountAmount = %v, want %v", got.DiscountAmount, tt.wantDiscount)
			}
			if math.Abs(got.Total-tt.wantTotal) > 0.001 {
				t.Errorf("Total = %v, want %v", got.Total, tt.wantTotal)
			}
			if (got.Advisory != "") != tt.wantAdvisory {
				t.Errorf("Advisory = %q, want advisory %v", got.Advisory, tt.wantAdvisory)
			}
		})
	}
}

func TestComputePrice_TotalMatchesRate(t *testing.T) {
	plan := models.MembershipPlan{Price: 87.35, Modality: "Mensual"}
	for n := 1; n <= 6; n++ {
		got := ComputePrice(plan, n, true)
		want := got.Subtotal * (1 - got.DiscountRate)
		if math.Abs(got.Total-want) > 1e-9 {
			t.Errorf("n=%d: Total = %v, want subtotal*(1-rate) = %v", n, got.Total, want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{264, "264.00"},
		{0.1 + 0.2, "0.30"},
		{10.005, "10.01"},
		{87.35 * 3 * 0.88, "230.60"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := FormatPercent(0.12); got != "12" {
		t.Errorf("FormatPercent(0.12) = %q, want 12", got)
	}
}
