package models

import "github.com/lib/pq"

// Site represents a client site covered by the agency
type Site struct {
	ID                  string         `json:"id" db:"id"`
	Name                string         `json:"name" db:"name"`
	Address             *string        `json:"address,omitempty" db:"address"`
	ClientContact       *string        `json:"client_contact,omitempty" db:"client_contact"`
	Email               *string        `json:"email,omitempty" db:"email"`
	RequiredSpecialties pq.StringArray `json:"required_specialties" db:"required_specialties"`
	Notes               *string        `json:"notes,omitempty" db:"notes"`
	CreatedAt           int64          `json:"created_at" db:"created_at"`
	UpdatedAt           int64          `json:"updated_at" db:"updated_at"`
}
