package service

import (
	"github.com/samber/lo"

	"github.com/mmynk/gymdesk/internal/calculator"
	"github.com/mmynk/gymdesk/internal/ledger"
	"github.com/mmynk/gymdesk/internal/models"
	"github.com/mmynk/gymdesk/pkg/api"
)

func toAPIClient(c models.Client) *api.Client {
	return &api.Client{
		Id:                 c.ID,
		Name:               c.Name,
		MembershipPlanId:   c.MembershipPlanID,
		MembershipName:     c.MembershipName,
		MembershipModality: c.MembershipModality,
		StartDate:          c.StartDate,
		EndDate:            c.EndDate,
		Status:             c.Status,
		GroupId:            c.GroupID,
	}
}

func toAPIClients(clients []models.Client) []*api.Client {
	out := make([]*api.Client, len(clients))
	for i, c := range clients {
		out[i] = toAPIClient(c)
	}
	return out
}

func toAPIGroup(g models.Group) *api.Group {
	return &api.Group{
		Id:        g.ID,
		Name:      g.Name,
		LeaderId:  g.LeaderID,
		CreatedAt: g.CreatedAt,
	}
}

func toAPIPlan(p models.MembershipPlan) *api.MembershipPlan {
	return &api.MembershipPlan{
		Id:             p.ID,
		Name:           p.Name,
		Price:          p.Price,
		Type:           p.Type,
		Modality:       p.Modality,
		DurationMonths: p.DurationMonths,
		Monthly:        calculator.IsMonthlyEligible(p),
	}
}

func toAPIBreakdown(b calculator.PriceBreakdown) *api.PriceBreakdown {
	return &api.PriceBreakdown{
		Subtotal:              b.Subtotal,
		DiscountRate:          b.DiscountRate,
		DiscountAmount:        b.DiscountAmount,
		Total:                 b.Total,
		Advisory:              b.Advisory,
		SubtotalDisplay:       calculator.FormatAmount(b.Subtotal),
		DiscountPercent:       calculator.FormatPercent(b.DiscountRate),
		DiscountAmountDisplay: calculator.FormatAmount(b.DiscountAmount),
		TotalDisplay:          calculator.FormatAmount(b.Total),
	}
}

func toAPISchedule(schedule []calculator.ScheduledInstallment) []*api.ScheduledInstallment {
	return lo.Map(schedule, func(si calculator.ScheduledInstallment, _ int) *api.ScheduledInstallment {
		return &api.ScheduledInstallment{
			Number:        si.Number,
			Amount:        si.Amount,
			AmountDisplay: calculator.FormatAmount(si.Amount),
			DueDate:       si.DueDate.Format(models.DateLayout),
		}
	})
}

func toAPIPayment(p models.Payment, clientName string) *api.Payment {
	return &api.Payment{
		Id:               p.ID,
		ClientId:         p.ClientID,
		ClientName:       clientName,
		MembershipPlanId: p.MembershipPlanID,
		MembershipName:   p.MembershipName,
		TotalAmount:      p.TotalAmount,
		PaidAmount:       p.PaidAmount,
		Outstanding:      calculator.Outstanding(p.PaidAmount, p.TotalAmount).InexactFloat64(),
		InstallmentCount: p.InstallmentCount,
		Status:           p.Status,
		Notes:            p.Notes,
		CreatedAt:        p.CreatedAt,
	}
}

func toAPIPaymentView(v ledger.PaymentView) *api.Payment {
	return toAPIPayment(v.Payment, v.ClientName)
}

func toAPITransaction(t models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:                t.ID,
		PaymentId:         t.PaymentID,
		ClientId:          t.ClientID,
		Amount:            t.Amount,
		Kind:              t.Kind,
		InstallmentNumber: t.InstallmentNumber,
		PaymentMethod:     t.PaymentMethod,
		Timestamp:         t.Timestamp,
		Notes:             t.Notes,
	}
}
