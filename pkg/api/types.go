package api

// Client is a gym client as seen by the renewal flow.
type Client struct {
	Id                 string `json:"id"`
	Name               string `json:"name"`
	MembershipPlanId   string `json:"membershipPlanId,omitempty"`
	MembershipName     string `json:"membershipName,omitempty"`
	MembershipModality string `json:"membershipModality,omitempty"`
	StartDate          string `json:"startDate,omitempty"`
	EndDate            string `json:"endDate,omitempty"`
	Status             string `json:"status"`
	GroupId            string `json:"groupId,omitempty"`
}

type Group struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	LeaderId  string `json:"leaderId"`
	CreatedAt int64  `json:"createdAt"`
}

type MembershipPlan struct {
	Id             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Type           string  `json:"type,omitempty"`
	Modality       string  `json:"modality,omitempty"`
	DurationMonths int     `json:"durationMonths"`
	Monthly        bool    `json:"monthly"`
}

// PriceBreakdown carries exact amounts plus two-decimal display strings.
type PriceBreakdown struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountRate   float64 `json:"discountRate"`
	DiscountAmount float64 `json:"discountAmount"`
	Total          float64 `json:"total"`
	Advisory       string  `json:"advisory,omitempty"`

	SubtotalDisplay       string `json:"subtotalDisplay"`
	DiscountPercent       string `json:"discountPercent"`
	DiscountAmountDisplay string `json:"discountAmountDisplay"`
	TotalDisplay          string `json:"totalDisplay"`
}

// ScheduledInstallment is one planned weekly installment; DueDate is YYYY-MM-DD.
type ScheduledInstallment struct {
	Number        int     `json:"number"`
	Amount        float64 `json:"amount"`
	AmountDisplay string  `json:"amountDisplay"`
	DueDate       string  `json:"dueDate"`
}

type Payment struct {
	Id               string  `json:"id"`
	ClientId         string  `json:"clientId"`
	ClientName       string  `json:"clientName,omitempty"`
	MembershipPlanId string  `json:"membershipPlanId"`
	MembershipName   string  `json:"membershipName"`
	TotalAmount      float64 `json:"totalAmount"`
	PaidAmount       float64 `json:"paidAmount"`
	Outstanding      float64 `json:"outstanding"`
	InstallmentCount int     `json:"installmentCount"`
	Status           string  `json:"status"`
	Notes            string  `json:"notes,omitempty"`
	CreatedAt        int64   `json:"createdAt"`
}

type Transaction struct {
	Id                string  `json:"id"`
	PaymentId         string  `json:"paymentId"`
	ClientId          string  `json:"clientId"`
	Amount            float64 `json:"amount"`
	Kind              string  `json:"kind"`
	InstallmentNumber int     `json:"installmentNumber,omitempty"`
	PaymentMethod     string  `json:"paymentMethod"`
	Timestamp         int64   `json:"timestamp"`
	Notes             string  `json:"notes,omitempty"`
}
