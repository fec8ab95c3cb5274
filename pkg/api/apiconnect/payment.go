package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/gymdesk/pkg/api"
)

const (
	PaymentServiceGetPaymentProcedure          = "/gymdesk.v1.PaymentService/GetPayment"
	PaymentServiceListPaymentsProcedure        = "/gymdesk.v1.PaymentService/ListPayments"
	PaymentServiceRecordInstallmentProcedure   = "/gymdesk.v1.PaymentService/RecordInstallment"
	PaymentServiceListTransactionsProcedure    = "/gymdesk.v1.PaymentService/ListTransactions"
	PaymentServiceMonthlyIncomeProcedure       = "/gymdesk.v1.PaymentService/MonthlyIncome"
	PaymentServiceOutstandingBalancesProcedure = "/gymdesk.v1.PaymentService/OutstandingBalances"
)

// PaymentServiceHandler is implemented by the payment service.
type PaymentServiceHandler interface {
	GetPayment(context.Context, *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.GetPaymentResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
	RecordInstallment(context.Context, *connect.Request[api.RecordInstallmentRequest]) (*connect.Response[api.RecordInstallmentResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	MonthlyIncome(context.Context, *connect.Request[api.MonthlyIncomeRequest]) (*connect.Response[api.MonthlyIncomeResponse], error)
	OutstandingBalances(context.Context, *connect.Request[api.OutstandingBalancesRequest]) (*connect.Response[api.OutstandingBalancesResponse], error)
}

// NewPaymentServiceHandler builds an HTTP handler from the service implementation.
func NewPaymentServiceHandler(svc PaymentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	readOnly := append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))
	return route(PaymentServiceName, map[string]http.Handler{
		PaymentServiceGetPaymentProcedure:          connect.NewUnaryHandler(PaymentServiceGetPaymentProcedure, svc.GetPayment, readOnly...),
		PaymentServiceListPaymentsProcedure:        connect.NewUnaryHandler(PaymentServiceListPaymentsProcedure, svc.ListPayments, readOnly...),
		PaymentServiceRecordInstallmentProcedure:   connect.NewUnaryHandler(PaymentServiceRecordInstallmentProcedure, svc.RecordInstallment, opts...),
		PaymentServiceListTransactionsProcedure:    connect.NewUnaryHandler(PaymentServiceListTransactionsProcedure, svc.ListTransactions, readOnly...),
		PaymentServiceMonthlyIncomeProcedure:       connect.NewUnaryHandler(PaymentServiceMonthlyIncomeProcedure, svc.MonthlyIncome, readOnly...),
		PaymentServiceOutstandingBalancesProcedure: connect.NewUnaryHandler(PaymentServiceOutstandingBalancesProcedure, svc.OutstandingBalances, readOnly...),
	})
}

// PaymentServiceClient calls the payment service.
type PaymentServiceClient interface {
	GetPayment(context.Context, *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.GetPaymentResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
	RecordInstallment(context.Context, *connect.Request[api.RecordInstallmentRequest]) (*connect.Response[api.RecordInstallmentResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	MonthlyIncome(context.Context, *connect.Request[api.MonthlyIncomeRequest]) (*connect.Response[api.MonthlyIncomeResponse], error)
	OutstandingBalances(context.Context, *connect.Request[api.OutstandingBalancesRequest]) (*connect.Response[api.OutstandingBalancesResponse], error)
}

type paymentServiceClient struct {
	getPayment          *connect.Client[api.GetPaymentRequest, api.GetPaymentResponse]
	listPayments        *connect.Client[api.ListPaymentsRequest, api.ListPaymentsResponse]
	recordInstallment   *connect.Client[api.RecordInstallmentRequest, api.RecordInstallmentResponse]
	listTransactions    *connect.Client[api.ListTransactionsRequest, api.ListTransactionsResponse]
	monthlyIncome       *connect.Client[api.MonthlyIncomeRequest, api.MonthlyIncomeResponse]
	outstandingBalances *connect.Client[api.OutstandingBalancesRequest, api.OutstandingBalancesResponse]
}

// NewPaymentServiceClient constructs a client for gymdesk.v1.PaymentService.
func NewPaymentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PaymentServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &paymentServiceClient{
		getPayment:          connect.NewClient[api.GetPaymentRequest, api.GetPaymentResponse](httpClient, baseURL+PaymentServiceGetPaymentProcedure, opts...),
		listPayments:        connect.NewClient[api.ListPaymentsRequest, api.ListPaymentsResponse](httpClient, baseURL+PaymentServiceListPaymentsProcedure, opts...),
		recordInstallment:   connect.NewClient[api.RecordInstallmentRequest, api.RecordInstallmentResponse](httpClient, baseURL+PaymentServiceRecordInstallmentProcedure, opts...),
		listTransactions:    connect.NewClient[api.ListTransactionsRequest, api.ListTransactionsResponse](httpClient, baseURL+PaymentServiceListTransactionsProcedure, opts...),
		monthlyIncome:       connect.NewClient[api.MonthlyIncomeRequest, api.MonthlyIncomeResponse](httpClient, baseURL+PaymentServiceMonthlyIncomeProcedure, opts...),
		outstandingBalances: connect.NewClient[api.OutstandingBalancesRequest, api.OutstandingBalancesResponse](httpClient, baseURL+PaymentServiceOutstandingBalancesProcedure, opts...),
	}
}

func (c *paymentServiceClient) GetPayment(ctx context.Context, req *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.GetPaymentResponse], error) {
	return c.getPayment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}

func (c *paymentServiceClient) RecordInstallment(ctx context.Context, req *connect.Request[api.RecordInstallmentRequest]) (*connect.Response[api.RecordInstallmentResponse], error) {
	return c.recordInstallment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

func (c *paymentServiceClient) MonthlyIncome(ctx context.Context, req *connect.Request[api.MonthlyIncomeRequest]) (*connect.Response[api.MonthlyIncomeResponse], error) {
	return c.monthlyIncome.CallUnary(ctx, req)
}

func (c *paymentServiceClient) OutstandingBalances(ctx context.Context, req *connect.Request[api.OutstandingBalancesRequest]) (*connect.Response[api.OutstandingBalancesResponse], error) {
	return c.outstandingBalances.CallUnary(ctx, req)
}
