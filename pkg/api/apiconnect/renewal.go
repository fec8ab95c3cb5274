package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/gymdesk/pkg/api"
)

const (
	RenewalServiceQuotePriceProcedure      = "/gymdesk.v1.RenewalService/QuotePrice"
	RenewalServiceRenewMembershipProcedure = "/gymdesk.v1.RenewalService/RenewMembership"
)

// RenewalServiceHandler is implemented by the renewal service.
type RenewalServiceHandler interface {
	QuotePrice(context.Context, *connect.Request[api.QuotePriceRequest]) (*connect.Response[api.QuotePriceResponse], error)
	RenewMembership(context.Context, *connect.Request[api.RenewMembershipRequest]) (*connect.Response[api.RenewMembershipResponse], error)
}

// NewRenewalServiceHandler builds an HTTP handler from the service implementation.
func NewRenewalServiceHandler(svc RenewalServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(RenewalServiceName, map[string]http.Handler{
		RenewalServiceQuotePriceProcedure: connect.NewUnaryHandler(RenewalServiceQuotePriceProcedure, svc.QuotePrice,
			append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...),
		RenewalServiceRenewMembershipProcedure: connect.NewUnaryHandler(RenewalServiceRenewMembershipProcedure, svc.RenewMembership, opts...),
	})
}

// RenewalServiceClient calls the renewal service.
type RenewalServiceClient interface {
	QuotePrice(context.Context, *connect.Request[api.QuotePriceRequest]) (*connect.Response[api.QuotePriceResponse], error)
	RenewMembership(context.Context, *connect.Request[api.RenewMembershipRequest]) (*connect.Response[api.RenewMembershipResponse], error)
}

type renewalServiceClient struct {
	quotePrice      *connect.Client[api.QuotePriceRequest, api.QuotePriceResponse]
	renewMembership *connect.Client[api.RenewMembershipRequest, api.RenewMembershipResponse]
}

// NewRenewalServiceClient constructs a client for gymdesk.v1.RenewalService.
func NewRenewalServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RenewalServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &renewalServiceClient{
		quotePrice:      connect.NewClient[api.QuotePriceRequest, api.QuotePriceResponse](httpClient, baseURL+RenewalServiceQuotePriceProcedure, opts...),
		renewMembership: connect.NewClient[api.RenewMembershipRequest, api.RenewMembershipResponse](httpClient, baseURL+RenewalServiceRenewMembershipProcedure, opts...),
	}
}

func (c *renewalServiceClient) QuotePrice(ctx context.Context, req *connect.Request[api.QuotePriceRequest]) (*connect.Response[api.QuotePriceResponse], error) {
	return c.quotePrice.CallUnary(ctx, req)
}

func (c *renewalServiceClient) RenewMembership(ctx context.Context, req *connect.Request[api.RenewMembershipRequest]) (*connect.Response[api.RenewMembershipResponse], error) {
	return c.renewMembership.CallUnary(ctx, req)
}
