package models

// Payment statuses. Status is derived from PaidAmount and TotalAmount.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// Payment methods accepted by the front desk.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
	PaymentMethodYape     = "yape"
	PaymentMethodPlin     = "plin"
)

// PaymentMethods lists every accepted payment method.
var PaymentMethods = []string{
	PaymentMethodCash,
	PaymentMethodCard,
	PaymentMethodTransfer,
	PaymentMethodYape,
	PaymentMethodPlin,
}

// Payment is the billing record of one renewal. A group renewal produces a
// single Payment attributed to the payer, covering every renewed participant.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// ClientID is the payer (the client who initiated the renewal).
	ClientID string

	MembershipPlanID string
	MembershipName   string

	// TotalAmount is the amount owed after discounts.
	TotalAmount float64

	// PaidAmount is the sum of the ledger's transactions.
	// Invariant: 0 <= PaidAmount <= TotalAmount.
	PaidAmount float64

	// InstallmentCount is the number of installments agreed at renewal,
	// zero when paid up front.
	InstallmentCount int

	// Status is a cached projection of (PaidAmount, TotalAmount).
	Status string

	// Notes summarizes the discount and group context.
	Notes string

	// CreatedAt is the Unix timestamp when the payment was created.
	CreatedAt int64
}

// Outstanding returns the unpaid balance.
func (p *Payment) Outstanding() float64 {
	return p.TotalAmount - p.PaidAmount
}
