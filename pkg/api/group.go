package api

type ResolveGroupRequest struct {
	ClientId string `json:"clientId" validate:"required"`
}

// ResolveGroupResponse has no group when the client is in none.
type ResolveGroupResponse struct {
	Group   *Group    `json:"group,omitempty"`
	Members []*Client `json:"members,omitempty"`
}

type CreateGroupRequest struct {
	LeaderId string `json:"leaderId" validate:"required"`
	Name     string `json:"name" validate:"max=100"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type AddMemberRequest struct {
	GroupId  string `json:"groupId" validate:"required"`
	ClientId string `json:"clientId" validate:"required"`
}

type AddMemberResponse struct{}

type RemoveMemberRequest struct {
	GroupId  string `json:"groupId" validate:"required"`
	ClientId string `json:"clientId" validate:"required"`
}

type RemoveMemberResponse struct{}

type DissolveGroupRequest struct {
	GroupId string `json:"groupId" validate:"required"`
}

type DissolveGroupResponse struct{}

type ListAvailableClientsRequest struct {
	ExcludeClientId string `json:"excludeClientId,omitempty"`
	Query           string `json:"query,omitempty"`
}

type ListAvailableClientsResponse struct {
	Clients []*Client `json:"clients"`
}
