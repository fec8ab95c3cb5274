package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/samber/lo"

	"github.com/mmynk/gymdesk/internal/calculator"
	"github.com/mmynk/gymdesk/internal/catalog"
	"github.com/mmynk/gymdesk/internal/ledger"
	"github.com/mmynk/gymdesk/internal/models"
	"github.com/mmynk/gymdesk/internal/registry"
	"github.com/mmynk/gymdesk/pkg/api"
	"github.com/mmynk/gymdesk/pkg/api/apiconnect"
)

var _ apiconnect.RenewalServiceHandler = (*RenewalService)(nil)

// RenewalService prices and performs membership renewals. It resolves the
// payer's group, prices the renewal and hands the result to the ledger.
type RenewalService struct {
	registry *registry.Registry
	catalog  catalog.Catalog
	ledger   *ledger.Ledger
}

// NewRenewalService creates a new RenewalService.
func NewRenewalService(reg *registry.Registry, cat catalog.Catalog, l *ledger.Ledger) *RenewalService {
	return &RenewalService{registry: reg, catalog: cat, ledger: l}
}

// quote is a priced renewal ready for the ledger.
type quote struct {
	plan         *models.MembershipPlan
	group        *models.GroupContext
	participants []string
	breakdown    calculator.PriceBreakdown
}

// prepare resolves the plan and participants and prices the renewal.
// In group mode an empty participant list means the whole roster.
func (s *RenewalService) prepare(ctx context.Context, payerID, planID string, participantIDs []string, groupMode bool) (*quote, error) {
	plan, err := s.catalog.Plan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.Price <= 0 {
		return nil, models.NewValidationError("membership plan %s has no price", plan.ID)
	}

	q := &quote{plan: plan, participants: lo.Uniq(lo.Compact(participantIDs))}
	if !groupMode {
		if len(q.participants) > 1 || (len(q.participants) == 1 && q.participants[0] != payerID) {
			return nil, models.NewValidationError("a solo renewal covers only the payer")
		}
		q.participants = []string{payerID}
	} else {
		gc, err := s.registry.Resolve(ctx, payerID)
		if err != nil {
			return nil, err
		}
		if gc == nil {
			return nil, models.NewValidationError("client %s is not in a group", payerID)
		}
		if !gc.IsLeader(payerID) {
			return nil, models.NewValidationError("only the group leader can renew the group")
		}
		q.group = gc
		if len(q.participants) == 0 {
			q.participants = lo.Map(gc.Members, func(c models.Client, _ int) string { return c.ID })
		}
		for _, id := range q.participants {
			if !gc.HasMember(id) {
				return nil, models.NewValidationError("client %s is not a member of group %s", id, gc.Group.ID)
			}
		}
	}

	q.breakdown = calculator.ComputePrice(*plan, len(q.participants), groupMode)
	return q, nil
}

// QuotePrice prices a renewal without writing anything.
func (s *RenewalService) QuotePrice(ctx context.Context, req *connect.Request[api.QuotePriceRequest]) (*connect.Response[api.QuotePriceResponse], error) {
	slog.Info("QuotePrice request received",
		"payer_id", req.Msg.PayerId,
		"plan_id", req.Msg.PlanId,
		"group_mode", req.Msg.GroupMode,
		"participants_count", len(req.Msg.ParticipantIds),
	)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	q, err := s.prepare(ctx, req.Msg.PayerId, req.Msg.PlanId, req.Msg.ParticipantIds, req.Msg.GroupMode)
	if err != nil {
		slog.Error("QuotePrice failed", "payer_id", req.Msg.PayerId, "error", err)
		return nil, toConnectError(err)
	}
	if q.breakdown.Advisory != "" {
		slog.Warn("QuotePrice advisory", "plan_id", q.plan.ID, "advisory", q.breakdown.Advisory)
	}

	res := &api.QuotePriceResponse{
		Plan:             toAPIPlan(*q.plan),
		ParticipantCount: len(q.participants),
		Breakdown:        toAPIBreakdown(q.breakdown),
	}
	if ip := req.Msg.Installments; ip != nil {
		if calculator.ExceedsOutstanding(ip.InitialAmount, 0, q.breakdown.Total) {
			return nil, toConnectError(models.NewValidationError("initial amount exceeds total"))
		}
		left := calculator.Outstanding(ip.InitialAmount, q.breakdown.Total).InexactFloat64()
		res.Schedule = toAPISchedule(calculator.InstallmentSchedule(left, ip.Count, s.ledger.Now()))
	}
	return connect.NewResponse(res), nil
}

// RenewMembership renews the participants and records the payment.
func (s *RenewalService) RenewMembership(ctx context.Context, req *connect.Request[api.RenewMembershipRequest]) (*connect.Response[api.RenewMembershipResponse], error) {
	slog.Info("RenewMembership request received",
		"payer_id", req.Msg.PayerId,
		"plan_id", req.Msg.PlanId,
		"group_mode", req.Msg.GroupMode,
		"participants_count", len(req.Msg.ParticipantIds),
	)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	var start time.Time
	if req.Msg.StartDate != "" {
		var err error
		start, err = time.ParseInLocation(models.DateLayout, req.Msg.StartDate, s.ledger.Location())
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}

	q, err := s.prepare(ctx, req.Msg.PayerId, req.Msg.PlanId, req.Msg.ParticipantIds, req.Msg.GroupMode)
	if err != nil {
		slog.Error("RenewMembership failed", "payer_id", req.Msg.PayerId, "error", err)
		return nil, toConnectError(err)
	}

	renewal := ledger.RenewalRequest{
		PayerID:        req.Msg.PayerId,
		ParticipantIDs: q.participants,
		Plan:           *q.plan,
		StartDate:      start,
		Price:          q.breakdown,
		PaymentMethod:  req.Msg.PaymentMethod,
		Group:          q.group,
		GroupMode:      req.Msg.GroupMode,
	}
	if ip := req.Msg.Installments; ip != nil {
		renewal.Installments = &ledger.InstallmentPlan{InitialAmount: ip.InitialAmount, Count: ip.Count}
	}

	payment, err := s.ledger.InitiateRenewal(ctx, renewal)
	if err != nil {
		slog.Error("RenewMembership failed", "payer_id", req.Msg.PayerId, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RenewMembershipResponse{
		Payment:   toAPIPayment(*payment, ""),
		Breakdown: toAPIBreakdown(q.breakdown),
		Schedule:  toAPISchedule(s.ledger.Schedule(*payment)),
	}), nil
}
