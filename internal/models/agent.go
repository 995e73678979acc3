package models

import "github.com/lib/pq"

// AgentStatus represents whether a guard is currently employable
type AgentStatus string

const (
	AgentStatusActive   AgentStatus = "active"
	AgentStatusInactive AgentStatus = "inactive"
)

// Agent represents a security guard on the agency's roster
type Agent struct {
	ID                     string         `json:"id" db:"id"`
	FirstName              string         `json:"first_name" db:"first_name"`
	LastName               string         `json:"last_name" db:"last_name"`
	Email                  string         `json:"email" db:"email"`
	Phone                  *string        `json:"phone,omitempty" db:"phone"`
	Status                 AgentStatus    `json:"status" db:"status"`
	Specialties            pq.StringArray `json:"specialties" db:"specialties"` // e.g. "ADS", "SSIAP1", "cynophile"
	Matricule              *string        `json:"matricule,omitempty" db:"matricule"`
	ProfessionalCardNumber *string        `json:"professional_card_number,omitempty" db:"professional_card_number"`
	ContractType           *string        `json:"contract_type,omitempty" db:"contract_type"` // "FULL_TIME" or "PART_TIME"
	CreatedAt              int64          `json:"created_at" db:"created_at"`
	UpdatedAt              int64          `json:"updated_at" db:"updated_at"`
}

// FullName returns the display name used in planning and payroll views
func (a *Agent) FullName() string {
	return a.FirstName + " " + a.LastName
}
