package models

// PlanningEvent is a calendar entry carrying pre-resolved absolute instants,
// as opposed to mission vacations which are date + wall-clock pairs.
// Payroll merges both sources into one running total.
type PlanningEvent struct {
	ID        string  `json:"id" db:"id"`
	Title     string  `json:"title" db:"title"`
	AgentID   string  `json:"agent_id" db:"agent_id"`
	AgentName string  `json:"agent_name" db:"agent_name"`
	MissionID *string `json:"mission_id,omitempty" db:"mission_id"`
	SiteID    *string `json:"site_id,omitempty" db:"site_id"`
	SiteName  *string `json:"site_name,omitempty" db:"site_name"`
	StartsAt  int64   `json:"starts_at" db:"starts_at"` // Unix timestamp
	EndsAt    int64   `json:"ends_at" db:"ends_at"`     // Unix timestamp
	CreatedAt int64   `json:"created_at" db:"created_at"`
}
