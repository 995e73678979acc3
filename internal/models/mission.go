package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// MissionStatus represents the lifecycle state of a mission
type MissionStatus string

const (
	MissionStatusScheduled MissionStatus = "scheduled"
	MissionStatusCompleted MissionStatus = "completed"
	MissionStatusCancelled MissionStatus = "cancelled"
)

// Vacation is one contiguous work period for one agent at one site.
// Start/End are wall-clock times (HH:MM); an end at or before the start means
// the shift runs overnight and finishes on the next day.
type Vacation struct {
	Date  string `json:"date" validate:"required"`  // YYYY-MM-DD
	Start string `json:"start" validate:"required"` // HH:MM
	End   string `json:"end" validate:"required"`   // HH:MM
}

// AgentAssignment binds one agent to a mission with their list of vacations
type AgentAssignment struct {
	AgentID   string     `json:"agentId" validate:"required"`
	AgentName string     `json:"agentName"`
	Specialty string     `json:"specialty" validate:"required"`
	Vacations []Vacation `json:"vacations" validate:"required,min=1,dive"`
}

// AssignmentList is stored as a JSONB column on missions
type AssignmentList []AgentAssignment

func (l AssignmentList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *AssignmentList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported type %T for AssignmentList", src)
	}
}

// Mission represents a site-coverage commitment involving one or more agents
type Mission struct {
	ID               string         `json:"id" db:"id"`
	SiteID           string         `json:"siteId" db:"site_id"`
	SiteName         string         `json:"siteName" db:"site_name"`
	AgentAssignments AssignmentList `json:"agentAssignments" db:"agent_assignments"`
	AssignedAgentIDs pq.StringArray `json:"assignedAgentIds" db:"assigned_agent_ids"`
	Status           MissionStatus  `json:"status" db:"status"`
	Notes            *string        `json:"notes,omitempty" db:"notes"`
	CreatedAt        int64          `json:"created_at" db:"created_at"`
	UpdatedAt        int64          `json:"updated_at" db:"updated_at"`
}

// AssignmentFor returns the assignment matching agentID, or nil
func (m *Mission) AssignmentFor(agentID string) *AgentAssignment {
	for i := range m.AgentAssignments {
		if m.AgentAssignments[i].AgentID == agentID {
			return &m.AgentAssignments[i]
		}
	}
	return nil
}
