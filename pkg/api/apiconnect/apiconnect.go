// Package apiconnect wires the gymdesk.v1 services to Connect handlers and
// clients. Every handler and client speaks JSON via api.JSONCodec.
package apiconnect

import (
	"connectrpc.com/connect"

	"github.com/mmynk/gymdesk/pkg/api"
)

// Fully-qualified service names.
const (
	GroupServiceName   = "gymdesk.v1.GroupService"
	RenewalServiceName = "gymdesk.v1.RenewalService"
	PaymentServiceName = "gymdesk.v1.PaymentService"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}
