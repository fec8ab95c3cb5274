package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mmynk/gymdesk/internal/calculator"
	"github.com/mmynk/gymdesk/internal/models"
	"github.com/mmynk/gymdesk/internal/storage"
)

// InstallmentPlan splits a renewal into an advance and later installments.
type InstallmentPlan struct {
	InitialAmount float64
	Count         int
}

// RenewalRequest describes one renewal action.
type RenewalRequest struct {
	PayerID        string
	ParticipantIDs []string
	Plan           models.MembershipPlan
	StartDate      time.Time // zero means today
	Price          calculator.PriceBreakdown
	Installments   *InstallmentPlan
	PaymentMethod  string

	// Group is the payer's resolved group; required in group mode.
	Group     *models.GroupContext
	GroupMode bool
}

// clientPlanColumns are the client columns a renewal rewrites.
var clientPlanColumns = []string{
	"membership_plan_id", "membership_name", "membership_modality",
	"start_date", "end_date", "status",
}

// InitiateRenewal renews every participant's membership and records one
// payment against the payer, with an advance or full-payment transaction when
// anything is paid up front. Either all of it is persisted or none of it.
func (l *Ledger) InitiateRenewal(ctx context.Context, req RenewalRequest) (*models.Payment, error) {
	participants, method, err := validateRenewal(req)
	if err != nil {
		return nil, err
	}

	now := l.clock()
	start := req.StartDate
	if start.IsZero() {
		start = now
	}
	start = start.In(l.loc)
	endDate := ""
	if req.Plan.DurationMonths > 0 {
		endDate = calculator.AddCalendarMonths(start, req.Plan.DurationMonths).Format(models.DateLayout)
	}

	total := req.Price.Total
	paid := total
	installments := 0
	kind := models.TransactionKindFullPayment
	if req.Installments != nil {
		paid = req.Installments.InitialAmount
		installments = req.Installments.Count
		kind = models.TransactionKindAdvance
	}

	payment := models.Payment{
		ClientID:         req.PayerID,
		MembershipPlanID: req.Plan.ID,
		MembershipName:   req.Plan.Name,
		TotalAmount:      total,
		PaidAmount:       paid,
		InstallmentCount: installments,
		Status:           calculator.DeriveStatus(paid, total),
		Notes:            renewalNotes(req, len(participants)),
		CreatedAt:        now.Unix(),
	}
	patch := storage.Row{
		"membership_plan_id":  req.Plan.ID,
		"membership_name":     storage.NullString(req.Plan.Name),
		"membership_modality": storage.NullString(req.Plan.Modality),
		"start_date":          start.Format(models.DateLayout),
		"end_date":            storage.NullString(endDate),
		"status":              models.ClientStatusActive,
	}

	var seed *models.Transaction
	err = l.unitOfWork(ctx, "renewal", func(tx storage.RowStore, undo *undoLog) error {
		previous, err := loadParticipants(ctx, tx, participants)
		if err != nil {
			return err
		}

		for _, id := range participants {
			filter := storage.Where(storage.Eq("id", id))
			if err := tx.Update(ctx, storage.TableClients, filter, patch); err != nil {
				return fmt.Errorf("failed to renew client %s: %w", id, err)
			}
			restore := previous[id]
			undo.push(func(ctx context.Context) error {
				return tx.Update(ctx, storage.TableClients, filter, restore)
			})
		}

		row, err := tx.Insert(ctx, storage.TablePayments, storage.PaymentToRow(payment))
		if err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		payment = storage.PaymentFromRow(row)
		undo.push(func(ctx context.Context) error {
			return tx.Delete(ctx, storage.TablePayments, storage.Where(storage.Eq("id", payment.ID)))
		})

		if !decimal.NewFromFloat(paid).IsPositive() {
			return nil
		}
		t := models.Transaction{
			PaymentID:     payment.ID,
			ClientID:      req.PayerID,
			Amount:        paid,
			Kind:          kind,
			PaymentMethod: method,
			Timestamp:     now.Unix(),
		}
		row, err = tx.Insert(ctx, storage.TableTransactions, storage.TransactionToRow(t))
		if err != nil {
			return fmt.Errorf("failed to record %s: %w", kind, err)
		}
		t = storage.TransactionFromRow(row)
		seed = &t
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.recorder.PaymentCreated(payment.Status, payment.TotalAmount)
	if seed != nil {
		l.recorder.TransactionRecorded(seed.Kind, seed.PaymentMethod, seed.Amount)
	}
	slog.Info("Membership renewed",
		"payment_id", payment.ID,
		"payer_id", req.PayerID,
		"participants", len(participants),
		"total", calculator.FormatAmount(payment.TotalAmount),
		"status", payment.Status,
	)
	return &payment, nil
}

// validateRenewal returns the deduplicated participants and payment method.
func validateRenewal(req RenewalRequest) ([]string, string, error) {
	if req.PayerID == "" {
		return nil, "", models.NewValidationError("payer is required")
	}
	if req.Plan.ID == "" {
		return nil, "", models.NewValidationError("membership plan is required")
	}
	participants := lo.Uniq(lo.Compact(req.ParticipantIDs))
	if len(participants) == 0 {
		return nil, "", models.NewValidationError("at least one participant is required")
	}

	if req.GroupMode {
		if !req.Group.IsLeader(req.PayerID) {
			return nil, "", models.NewValidationError("group renewals must be initiated by the group leader")
		}
		for _, id := range participants {
			if !req.Group.HasMember(id) {
				return nil, "", models.NewValidationError("client %s is not a member of group %s", id, req.Group.Group.ID)
			}
		}
	} else if len(participants) != 1 || participants[0] != req.PayerID {
		return nil, "", models.NewValidationError("a solo renewal covers only the payer")
	}

	if req.Price.Total < 0 {
		return nil, "", models.NewValidationError("total must not be negative")
	}
	if ip := req.Installments; ip != nil {
		if ip.Count < 1 {
			return nil, "", models.NewValidationError("installment count must be at least 1")
		}
		if ip.Count > calculator.MaxInstallments {
			return nil, "", models.NewValidationError("installment count must be at most %d", calculator.MaxInstallments)
		}
		if ip.InitialAmount < 0 {
			return nil, "", models.NewValidationError("initial amount must not be negative")
		}
		if calculator.ExceedsOutstanding(ip.InitialAmount, 0, req.Price.Total) {
			return nil, "", models.NewValidationError("initial amount exceeds total")
		}
	}

	method, err := paymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, "", err
	}
	return participants, method, nil
}

// loadParticipants returns each participant's current plan columns, keyed by id.
func loadParticipants(ctx context.Context, rs storage.RowStore, ids []string) (map[string]storage.Row, error) {
	out := make(map[string]storage.Row, len(ids))
	for _, id := range ids {
		rows, err := rs.Get(ctx, storage.TableClients, storage.Where(storage.Eq("id", id)))
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, models.NewNotFoundError("client", id)
		}
		snapshot := storage.Row{}
		for _, col := range clientPlanColumns {
			snapshot[col] = rows[0][col]
		}
		out[id] = snapshot
	}
	return out, nil
}

func renewalNotes(req RenewalRequest, participants int) string {
	switch {
	case req.GroupMode && req.Price.DiscountRate > 0:
		return fmt.Sprintf("Group discount %s%% applied (%d members)",
			calculator.FormatPercent(req.Price.DiscountRate), participants)
	case req.GroupMode:
		return fmt.Sprintf("Group renewal (%d members)", participants)
	default:
		return "Membership renewal"
	}
}
