package api

type QuotePriceRequest struct {
	PayerId        string   `json:"payerId" validate:"required"`
	PlanId         string   `json:"planId" validate:"required"`
	ParticipantIds []string `json:"participantIds,omitempty"`
	GroupMode      bool     `json:"groupMode"`

	// Installments, when set, previews the weekly schedule of the balance.
	Installments *InstallmentPlan `json:"installments,omitempty"`
}

type QuotePriceResponse struct {
	Plan             *MembershipPlan         `json:"plan"`
	ParticipantCount int                     `json:"participantCount"`
	Breakdown        *PriceBreakdown         `json:"breakdown"`
	Schedule         []*ScheduledInstallment `json:"schedule,omitempty"`
}

type InstallmentPlan struct {
	InitialAmount float64 `json:"initialAmount" validate:"gte=0"`
	Count         int     `json:"count" validate:"min=1,max=2"`
}

type RenewMembershipRequest struct {
	PayerId        string   `json:"payerId" validate:"required"`
	PlanId         string   `json:"planId" validate:"required"`
	ParticipantIds []string `json:"participantIds,omitempty"`
	GroupMode      bool     `json:"groupMode"`

	// StartDate is YYYY-MM-DD; empty means today.
	StartDate     string           `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Installments  *InstallmentPlan `json:"installments,omitempty"`
	PaymentMethod string           `json:"paymentMethod,omitempty" validate:"omitempty,oneof=cash card transfer yape plin"`
}

type RenewMembershipResponse struct {
	Payment   *Payment                `json:"payment"`
	Breakdown *PriceBreakdown         `json:"breakdown"`
	Schedule  []*ScheduledInstallment `json:"schedule,omitempty"`
}
