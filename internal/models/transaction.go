package models

// Transaction kinds.
const (
	TransactionKindAdvance     = "advance"
	TransactionKindInstallment = "installment"
	TransactionKindFullPayment = "full_payment"
)

// Transaction is an immutable ledger entry applied against a Payment.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	PaymentID string

	// ClientID is the payer of the owning Payment.
	ClientID string

	Amount float64
	Kind   string

	// InstallmentNumber is 1-based and gap-free per payment.
	// Zero unless Kind is TransactionKindInstallment.
	InstallmentNumber int

	PaymentMethod string

	// Timestamp is the Unix timestamp when the money was received.
	Timestamp int64

	Notes string
}
