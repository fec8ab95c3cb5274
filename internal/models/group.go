package models

// Group is a set of clients sharing eligibility for a group membership discount.
//
// Membership is tracked on the client side (Client.GroupID), not here.
// The leader is always one of the members.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Garcia family").
	Name string

	// LeaderID is the client who created the group and may renew it.
	LeaderID string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// GroupContext is a resolved group together with its current roster.
// It is passed explicitly from the registry to pricing and the ledger.
type GroupContext struct {
	Group   Group
	Members []Client
}

// IsLeader reports whether clientID leads the group.
func (gc *GroupContext) IsLeader(clientID string) bool {
	return gc != nil && gc.Group.LeaderID == clientID
}

// HasMember reports whether clientID is on the roster.
func (gc *GroupContext) HasMember(clientID string) bool {
	if gc == nil {
		return false
	}
	for _, m := range gc.Members {
		if m.ID == clientID {
			return true
		}
	}
	return false
}
