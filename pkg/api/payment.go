package api

type GetPaymentRequest struct {
	PaymentId string `json:"paymentId" validate:"required"`
}

type GetPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type ListPaymentsRequest struct {
	Query  string `json:"query,omitempty"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=pending partial paid"`

	// Month is YYYY-MM; empty means all months.
	Month string `json:"month,omitempty" validate:"omitempty,datetime=2006-01"`
}

type PaymentSummary struct {
	TotalPending    float64 `json:"totalPending"`
	TotalCollected  float64 `json:"totalCollected"`
	ClientsWithDebt int     `json:"clientsWithDebt"`
	PaidCount       int     `json:"paidCount"`
}

type ListPaymentsResponse struct {
	Payments []*Payment     `json:"payments"`
	Summary  PaymentSummary `json:"summary"`
}

type RecordInstallmentRequest struct {
	PaymentId     string  `json:"paymentId" validate:"required"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	PaymentMethod string  `json:"paymentMethod,omitempty" validate:"omitempty,oneof=cash card transfer yape plin"`
	Notes         string  `json:"notes,omitempty" validate:"max=500"`
}

type RecordInstallmentResponse struct {
	Transaction *Transaction `json:"transaction"`
	Payment     *Payment     `json:"payment"`
}

type ListTransactionsRequest struct {
	PaymentId string `json:"paymentId" validate:"required"`
}

type ListTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type MonthlyIncomeRequest struct {
	// Months defaults to 6.
	Months int `json:"months,omitempty" validate:"omitempty,min=1,max=120"`
}

type MonthlyTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

type MonthlyIncomeResponse struct {
	Months []*MonthlyTotal `json:"months"`
}

type OutstandingBalancesRequest struct{}

type ClientBalance struct {
	ClientId    string  `json:"clientId"`
	ClientName  string  `json:"clientName"`
	Outstanding float64 `json:"outstanding"`
	Payments    int     `json:"payments"`
}

type OutstandingBalancesResponse struct {
	Balances []*ClientBalance `json:"balances"`
}
