package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/gymdesk/internal/registry"
	"github.com/mmynk/gymdesk/pkg/api"
	"github.com/mmynk/gymdesk/pkg/api/apiconnect"
)

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService
type GroupService struct {
	registry *registry.Registry
}

// NewGroupService creates a new GroupService over the given registry.
func NewGroupService(reg *registry.Registry) *GroupService {
	return &GroupService{registry: reg}
}

// ResolveGroup returns the group a client leads or belongs to.
func (s *GroupService) ResolveGroup(ctx context.Context, req *connect.Request[api.ResolveGroupRequest]) (*connect.Response[api.ResolveGroupResponse], error) {
	slog.Info("ResolveGroup request received", "client_id", req.Msg.ClientId)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	gc, err := s.registry.Resolve(ctx, req.Msg.ClientId)
	if err != nil {
		slog.Error("ResolveGroup failed", "client_id", req.Msg.ClientId, "error", err)
		return nil, toConnectError(err)
	}
	if gc == nil {
		slog.Info("ResolveGroup successful", "client_id", req.Msg.ClientId, "group_id", "")
		return connect.NewResponse(&api.ResolveGroupResponse{}), nil
	}

	slog.Info("ResolveGroup successful", "client_id", req.Msg.ClientId, "group_id", gc.Group.ID, "members_count", len(gc.Members))
	return connect.NewResponse(&api.ResolveGroupResponse{
		Group:   toAPIGroup(gc.Group),
		Members: toAPIClients(gc.Members),
	}), nil
}

// CreateGroup creates a new group led by the given client.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received", "leader_id", req.Msg.LeaderId, "name", req.Msg.Name)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	group, err := s.registry.CreateGroup(ctx, req.Msg.LeaderId, req.Msg.Name)
	if err != nil {
		slog.Error("CreateGroup failed", "leader_id", req.Msg.LeaderId, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(*group)}), nil
}

// AddMember adds a client to a group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	slog.Info("AddMember request received", "group_id", req.Msg.GroupId, "client_id", req.Msg.ClientId)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if err := s.registry.AddMember(ctx, req.Msg.GroupId, req.Msg.ClientId); err != nil {
		slog.Error("AddMember failed", "group_id", req.Msg.GroupId, "client_id", req.Msg.ClientId, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AddMemberResponse{}), nil
}

// RemoveMember removes a non-leader client from a group.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	slog.Info("RemoveMember request received", "group_id", req.Msg.GroupId, "client_id", req.Msg.ClientId)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if err := s.registry.RemoveMember(ctx, req.Msg.GroupId, req.Msg.ClientId); err != nil {
		slog.Error("RemoveMember failed", "group_id", req.Msg.GroupId, "client_id", req.Msg.ClientId, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

// DissolveGroup releases every member and deletes the group.
func (s *GroupService) DissolveGroup(ctx context.Context, req *connect.Request[api.DissolveGroupRequest]) (*connect.Response[api.DissolveGroupResponse], error) {
	slog.Info("DissolveGroup request received", "group_id", req.Msg.GroupId)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if err := s.registry.DissolveGroup(ctx, req.Msg.GroupId); err != nil {
		slog.Error("DissolveGroup failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DissolveGroupResponse{}), nil
}

// ListAvailableClients lists clients that can still join a group.
func (s *GroupService) ListAvailableClients(ctx context.Context, req *connect.Request[api.ListAvailableClientsRequest]) (*connect.Response[api.ListAvailableClientsResponse], error) {
	slog.Info("ListAvailableClients request received", "query", req.Msg.Query)

	clients, err := s.registry.ListAvailableClients(ctx, req.Msg.ExcludeClientId, req.Msg.Query)
	if err != nil {
		slog.Error("ListAvailableClients failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ListAvailableClients successful", "count", len(clients))
	return connect.NewResponse(&api.ListAvailableClientsResponse{Clients: toAPIClients(clients)}), nil
}
