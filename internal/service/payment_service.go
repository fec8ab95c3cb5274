package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/gymdesk/internal/calculator"
	"github.com/mmynk/gymdesk/internal/ledger"
	"github.com/mmynk/gymdesk/pkg/api"
	"github.com/mmynk/gymdesk/pkg/api/apiconnect"
)

var _ apiconnect.PaymentServiceHandler = (*PaymentService)(nil)

// defaultIncomeMonths is the income chart window when none is requested.
const defaultIncomeMonths = 6

// PaymentService exposes the payment ledger.
type PaymentService struct {
	ledger *ledger.Ledger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(l *ledger.Ledger) *PaymentService {
	return &PaymentService{ledger: l}
}

// GetPayment retrieves a payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, req *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.GetPaymentResponse], error) {
	slog.Info("GetPayment request received", "payment_id", req.Msg.PaymentId)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	payment, err := s.ledger.GetPayment(ctx, req.Msg.PaymentId)
	if err != nil {
		slog.Error("GetPayment failed", "payment_id", req.Msg.PaymentId, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetPaymentResponse{Payment: toAPIPayment(*payment, "")}), nil
}

// ListPayments lists payments with their summary.
func (s *PaymentService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	slog.Info("ListPayments request received", "query", req.Msg.Query, "status", req.Msg.Status, "month", req.Msg.Month)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	filter := ledger.PaymentFilter{Query: req.Msg.Query, Status: req.Msg.Status}
	if req.Msg.Month != "" {
		month, err := time.ParseInLocation(calculator.MonthKeyLayout, req.Msg.Month, s.ledger.Location())
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		filter.From, filter.To = ledger.MonthRange(month)
	}

	views, err := s.ledger.ListPayments(ctx, filter)
	if err != nil {
		slog.Error("ListPayments failed", "error", err)
		return nil, toConnectError(err)
	}

	summary := calculator.Summarize(ledger.Payments(views))
	payments := make([]*api.Payment, len(views))
	for i, v := range views {
		payments[i] = toAPIPaymentView(v)
	}

	slog.Info("ListPayments successful", "count", len(payments))
	return connect.NewResponse(&api.ListPaymentsResponse{
		Payments: payments,
		Summary: api.PaymentSummary{
			TotalPending:    summary.TotalPending,
			TotalCollected:  summary.TotalCollected,
			ClientsWithDebt: summary.ClientsWithDebt,
			PaidCount:       summary.PaidCount,
		},
	}), nil
}

// RecordInstallment applies an installment to a payment.
func (s *PaymentService) RecordInstallment(ctx context.Context, req *connect.Request[api.RecordInstallmentRequest]) (*connect.Response[api.RecordInstallmentResponse], error) {
	slog.Info("RecordInstallment request received",
		"payment_id", req.Msg.PaymentId,
		"amount", req.Msg.Amount,
		"payment_method", req.Msg.PaymentMethod,
	)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	t, err := s.ledger.RecordInstallment(ctx, req.Msg.PaymentId, req.Msg.Amount, req.Msg.PaymentMethod, req.Msg.Notes)
	if err != nil {
		slog.Error("RecordInstallment failed", "payment_id", req.Msg.PaymentId, "error", err)
		return nil, toConnectError(err)
	}
	payment, err := s.ledger.GetPayment(ctx, req.Msg.PaymentId)
	if err != nil {
		slog.Error("RecordInstallment reload failed", "payment_id", req.Msg.PaymentId, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RecordInstallmentResponse{
		Transaction: toAPITransaction(*t),
		Payment:     toAPIPayment(*payment, ""),
	}), nil
}

// ListTransactions lists a payment's transactions, newest first.
func (s *PaymentService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	slog.Info("ListTransactions request received", "payment_id", req.Msg.PaymentId)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	txns, err := s.ledger.ListTransactions(ctx, req.Msg.PaymentId)
	if err != nil {
		slog.Error("ListTransactions failed", "payment_id", req.Msg.PaymentId, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Transaction, len(txns))
	for i, t := range txns {
		out[i] = toAPITransaction(t)
	}
	return connect.NewResponse(&api.ListTransactionsResponse{Transactions: out}), nil
}

// MonthlyIncome returns income per calendar month, oldest first.
func (s *PaymentService) MonthlyIncome(ctx context.Context, req *connect.Request[api.MonthlyIncomeRequest]) (*connect.Response[api.MonthlyIncomeResponse], error) {
	slog.Info("MonthlyIncome request received", "months", req.Msg.Months)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	window := req.Msg.Months
	if window == 0 {
		window = defaultIncomeMonths
	}
	totals, err := s.ledger.AggregateMonthlyIncome(ctx, window)
	if err != nil {
		slog.Error("MonthlyIncome failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.MonthlyTotal, len(totals))
	for i, m := range totals {
		out[i] = &api.MonthlyTotal{Month: m.MonthKey, Total: m.Total}
	}
	return connect.NewResponse(&api.MonthlyIncomeResponse{Months: out}), nil
}

// OutstandingBalances lists payers with unpaid balances, largest first.
func (s *PaymentService) OutstandingBalances(ctx context.Context, req *connect.Request[api.OutstandingBalancesRequest]) (*connect.Response[api.OutstandingBalancesResponse], error) {
	slog.Info("OutstandingBalances request received")

	views, err := s.ledger.ListPayments(ctx, ledger.PaymentFilter{})
	if err != nil {
		slog.Error("OutstandingBalances failed", "error", err)
		return nil, toConnectError(err)
	}
	names := make(map[string]string, len(views))
	for _, v := range views {
		names[v.ClientID] = v.ClientName
	}

	balances := calculator.OutstandingByClient(ledger.Payments(views))
	out := make([]*api.ClientBalance, len(balances))
	for i, b := range balances {
		out[i] = &api.ClientBalance{
			ClientId:    b.ClientID,
			ClientName:  names[b.ClientID],
			Outstanding: b.Outstanding,
			Payments:    b.Payments,
		}
	}

	slog.Info("OutstandingBalances successful", "count", len(out))
	return connect.NewResponse(&api.OutstandingBalancesResponse{Balances: out}), nil
}
