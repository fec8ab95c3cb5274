package models

// Client statuses.
const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusExpired  = "expired"
)

// DateLayout is the layout used for membership start and end dates.
const DateLayout = "2006-01-02"

// Client is a gym client. The dashboard owns client records; renewals write
// the plan fields and status, and the group registry writes GroupID.
type Client struct {
	ID   string
	Name string

	// MembershipPlanID is the plan of the latest renewal, empty if never renewed.
	MembershipPlanID string

	// MembershipName and MembershipModality are copies of the plan's name and
	// modality at renewal time.
	MembershipName     string
	MembershipModality string

	// StartDate and EndDate use DateLayout. EndDate is empty for plans
	// without a duration.
	StartDate string
	EndDate   string

	Status string

	// GroupID is the group this client belongs to, empty if none.
	GroupID string
}
