package storage

import "github.com/mmynk/gymdesk/internal/models"

// ClientFromRow converts a clients row.
func ClientFromRow(r Row) models.Client {
	return models.Client{
		ID:                 r.String("id"),
		Name:               r.String("name"),
		MembershipPlanID:   r.String("membership_plan_id"),
		MembershipName:     r.String("membership_name"),
		MembershipModality: r.String("membership_modality"),
		StartDate:          r.String("start_date"),
		EndDate:            r.String("end_date"),
		Status:             r.String("status"),
		GroupID:            r.String("group_id"),
	}
}

// ClientToRow converts a client. Empty optional fields become NULL.
func ClientToRow(c models.Client) Row {
	return Row{
		"id":                  c.ID,
		"name":                c.Name,
		"membership_plan_id":  NullString(c.MembershipPlanID),
		"membership_name":     NullString(c.MembershipName),
		"membership_modality": NullString(c.MembershipModality),
		"start_date":          NullString(c.StartDate),
		"end_date":            NullString(c.EndDate),
		"status":              c.Status,
		"group_id":            NullString(c.GroupID),
	}
}

// GroupFromRow converts a groups row.
func GroupFromRow(r Row) models.Group {
	return models.Group{
		ID:        r.String("id"),
		Name:      r.String("name"),
		LeaderID:  r.String("leader_id"),
		CreatedAt: r.Int64("created_at"),
	}
}

// GroupToRow converts a group.
func GroupToRow(g models.Group) Row {
	return Row{
		"id":         g.ID,
		"name":       g.Name,
		"leader_id":  g.LeaderID,
		"created_at": g.CreatedAt,
	}
}

// PlanFromRow converts a membership_plans row.
func PlanFromRow(r Row) models.MembershipPlan {
	p := models.MembershipPlan{
		ID:             r.String("id"),
		Name:           r.String("name"),
		Price:          r.Float("price"),
		Type:           r.String("type"),
		Modality:       r.String("modality"),
		DurationMonths: int(r.Int64("duration_months")),
	}
	if monthly, ok := r.Bool("monthly"); ok {
		p.Monthly = &monthly
	}
	return p
}

// PlanToRow converts a membership plan.
func PlanToRow(p models.MembershipPlan) Row {
	row := Row{
		"id":              p.ID,
		"name":            p.Name,
		"price":           p.Price,
		"type":            p.Type,
		"modality":        p.Modality,
		"duration_months": int64(p.DurationMonths),
		"monthly":         nil,
	}
	if p.Monthly != nil {
		row["monthly"] = *p.Monthly
	}
	return row
}

// PaymentFromRow converts a payments row.
func PaymentFromRow(r Row) models.Payment {
	return models.Payment{
		ID:               r.String("id"),
		ClientID:         r.String("client_id"),
		MembershipPlanID: r.String("membership_plan_id"),
		MembershipName:   r.String("membership_name"),
		TotalAmount:      r.Float("total_amount"),
		PaidAmount:       r.Float("paid_amount"),
		InstallmentCount: int(r.Int64("installment_count")),
		Status:           r.String("status"),
		Notes:            r.String("notes"),
		CreatedAt:        r.Int64("created_at"),
	}
}

// PaymentToRow converts a payment.
func PaymentToRow(p models.Payment) Row {
	return Row{
		"id":                 p.ID,
		"client_id":          p.ClientID,
		"membership_plan_id": p.MembershipPlanID,
		"membership_name":    p.MembershipName,
		"total_amount":       p.TotalAmount,
		"paid_amount":        p.PaidAmount,
		"installment_count":  int64(p.InstallmentCount),
		"status":             p.Status,
		"notes":              NullString(p.Notes),
		"created_at":         p.CreatedAt,
	}
}

// TransactionFromRow converts a transactions row.
func TransactionFromRow(r Row) models.Transaction {
	return models.Transaction{
		ID:                r.String("id"),
		PaymentID:         r.String("payment_id"),
		ClientID:          r.String("client_id"),
		Amount:            r.Float("amount"),
		Kind:              r.String("kind"),
		InstallmentNumber: int(r.Int64("installment_number")),
		PaymentMethod:     r.String("payment_method"),
		Timestamp:         r.Int64("timestamp"),
		Notes:             r.String("notes"),
	}
}

// TransactionToRow converts a transaction. installment_number is NULL unless
// the transaction is an installment.
func TransactionToRow(t models.Transaction) Row {
	row := Row{
		"id":                 t.ID,
		"payment_id":         t.PaymentID,
		"client_id":          t.ClientID,
		"amount":             t.Amount,
		"kind":               t.Kind,
		"installment_number": nil,
		"payment_method":     t.PaymentMethod,
		"timestamp":          t.Timestamp,
		"notes":              NullString(t.Notes),
	}
	if t.Kind == models.TransactionKindInstallment {
		row["installment_number"] = int64(t.InstallmentNumber)
	}
	return row
}
