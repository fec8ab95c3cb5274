package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/gymdesk/pkg/api"
)

const (
	GroupServiceResolveGroupProcedure         = "/gymdesk.v1.GroupService/ResolveGroup"
	GroupServiceCreateGroupProcedure          = "/gymdesk.v1.GroupService/CreateGroup"
	GroupServiceAddMemberProcedure            = "/gymdesk.v1.GroupService/AddMember"
	GroupServiceRemoveMemberProcedure         = "/gymdesk.v1.GroupService/RemoveMember"
	GroupServiceDissolveGroupProcedure        = "/gymdesk.v1.GroupService/DissolveGroup"
	GroupServiceListAvailableClientsProcedure = "/gymdesk.v1.GroupService/ListAvailableClients"
)

// GroupServiceHandler is implemented by the group service.
type GroupServiceHandler interface {
	ResolveGroup(context.Context, *connect.Request[api.ResolveGroupRequest]) (*connect.Response[api.ResolveGroupResponse], error)
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	DissolveGroup(context.Context, *connect.Request[api.DissolveGroupRequest]) (*connect.Response[api.DissolveGroupResponse], error)
	ListAvailableClients(context.Context, *connect.Request[api.ListAvailableClientsRequest]) (*connect.Response[api.ListAvailableClientsResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		GroupServiceResolveGroupProcedure:         connect.NewUnaryHandler(GroupServiceResolveGroupProcedure, svc.ResolveGroup, opts...),
		GroupServiceCreateGroupProcedure:          connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		GroupServiceAddMemberProcedure:            connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opts...),
		GroupServiceRemoveMemberProcedure:         connect.NewUnaryHandler(GroupServiceRemoveMemberProcedure, svc.RemoveMember, opts...),
		GroupServiceDissolveGroupProcedure:        connect.NewUnaryHandler(GroupServiceDissolveGroupProcedure, svc.DissolveGroup, opts...),
		GroupServiceListAvailableClientsProcedure: connect.NewUnaryHandler(GroupServiceListAvailableClientsProcedure, svc.ListAvailableClients, opts...),
	}
	return route(GroupServiceName, handlers)
}

// GroupServiceClient calls the group service.
type GroupServiceClient interface {
	ResolveGroup(context.Context, *connect.Request[api.ResolveGroupRequest]) (*connect.Response[api.ResolveGroupResponse], error)
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	DissolveGroup(context.Context, *connect.Request[api.DissolveGroupRequest]) (*connect.Response[api.DissolveGroupResponse], error)
	ListAvailableClients(context.Context, *connect.Request[api.ListAvailableClientsRequest]) (*connect.Response[api.ListAvailableClientsResponse], error)
}

type groupServiceClient struct {
	resolveGroup         *connect.Client[api.ResolveGroupRequest, api.ResolveGroupResponse]
	createGroup          *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	addMember            *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	removeMember         *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
	dissolveGroup        *connect.Client[api.DissolveGroupRequest, api.DissolveGroupResponse]
	listAvailableClients *connect.Client[api.ListAvailableClientsRequest, api.ListAvailableClientsResponse]
}

// NewGroupServiceClient constructs a client for the gymdesk.v1.GroupService
// service at baseURL (for example, http://localhost:8080).
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &groupServiceClient{
		resolveGroup:         connect.NewClient[api.ResolveGroupRequest, api.ResolveGroupResponse](httpClient, baseURL+GroupServiceResolveGroupProcedure, opts...),
		createGroup:          connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		addMember:            connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, opts...),
		removeMember:         connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](httpClient, baseURL+GroupServiceRemoveMemberProcedure, opts...),
		dissolveGroup:        connect.NewClient[api.DissolveGroupRequest, api.DissolveGroupResponse](httpClient, baseURL+GroupServiceDissolveGroupProcedure, opts...),
		listAvailableClients: connect.NewClient[api.ListAvailableClientsRequest, api.ListAvailableClientsResponse](httpClient, baseURL+GroupServiceListAvailableClientsProcedure, opts...),
	}
}

func (c *groupServiceClient) ResolveGroup(ctx context.Context, req *connect.Request[api.ResolveGroupRequest]) (*connect.Response[api.ResolveGroupResponse], error) {
	return c.resolveGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) DissolveGroup(ctx context.Context, req *connect.Request[api.DissolveGroupRequest]) (*connect.Response[api.DissolveGroupResponse], error) {
	return c.dissolveGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListAvailableClients(ctx context.Context, req *connect.Request[api.ListAvailableClientsRequest]) (*connect.Response[api.ListAvailableClientsResponse], error) {
	return c.listAvailableClients.CallUnary(ctx, req)
}
