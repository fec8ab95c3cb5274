package models

// MembershipPlan is a catalog entry. Read-only to this subsystem.
type MembershipPlan struct {
	ID    string
	Name  string
	Price float64

	// Type and Modality are free-text labels from the catalog
	// (e.g., "Mensual", "Trimestral", "Por clase").
	Type     string
	Modality string

	// DurationMonths is the length of one renewal. Zero means open-ended.
	DurationMonths int

	// Monthly marks plans eligible for the group discount. When nil the
	// eligibility is inferred from Type and Modality.
	Monthly *bool
}
