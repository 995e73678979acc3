package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"vigiplan-backend/internal/models"
	"vigiplan-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type AgentRequest struct {
	FirstName              string   `json:"first_name" validate:"required"`
	LastName               string   `json:"last_name" validate:"required"`
	Email                  string   `json:"email" validate:"required,email"`
	Phone                  *string  `json:"phone,omitempty"`
	Status                 string   `json:"status" validate:"omitempty,oneof=active inactive"`
	Specialties            []string `json:"specialties"`
	Matricule              *string  `json:"matricule,omitempty"`
	ProfessionalCardNumber *string  `json:"professional_card_number,omitempty"`
	ContractType           *string  `json:"contract_type,omitempty" validate:"omitempty,oneof=FULL_TIME PART_TIME"`
}

// GetAgents lists the guard roster, optionally filtered by status
func GetAgents(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := "SELECT * FROM agents ORDER BY last_name, first_name"
		args := []interface{}{}
		if status := r.URL.Query().Get("status"); status != "" {
			query = "SELECT * FROM agents WHERE status = $1 ORDER BY last_name, first_name"
			args = append(args, status)
		}

		var agents []models.Agent
		if err := db.Select(&agents, query, args...); err != nil {
			log.Printf("❌ Failed to fetch agents: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch agents")
			return
		}
		utils.Success(w, agents)
	}
}

// GetAgent returns a single agent by id
func GetAgent(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var agent models.Agent
		err := db.Get(&agent, "SELECT * FROM agents WHERE id = $1", id)
		if errors.Is(err, sql.ErrNoRows) {
			utils.RespondError(w, http.StatusNotFound, "Agent not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch agent")
			return
		}
		utils.Success(w, agent)
	}
}

// CreateAgent adds a guard to the roster
func CreateAgent(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AgentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Status == "" {
			req.Status = string(models.AgentStatusActive)
		}

		now := time.Now().Unix()
		agent := models.Agent{
			ID:                     uuid.New().String(),
			FirstName:              req.FirstName,
			LastName:               req.LastName,
			Email:                  req.Email,
			Phone:                  req.Phone,
			Status:                 models.AgentStatus(req.Status),
			Specialties:            pq.StringArray(req.Specialties),
			Matricule:              req.Matricule,
			ProfessionalCardNumber: req.ProfessionalCardNumber,
			ContractType:           req.ContractType,
			CreatedAt:              now,
			UpdatedAt:              now,
		}

		_, err := db.Exec(`
			INSERT INTO agents (id, first_name, last_name, email, phone, status, specialties,
				matricule, professional_card_number, contract_type, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, agent.ID, agent.FirstName, agent.LastName, agent.Email, agent.Phone, agent.Status,
			agent.Specialties, agent.Matricule, agent.ProfessionalCardNumber, agent.ContractType,
			agent.CreatedAt, agent.UpdatedAt)
		if err != nil {
			log.Printf("❌ Failed to create agent: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create agent")
			return
		}

		log.Printf("✅ Agent created: %s", agent.FullName())
		utils.RespondJSON(w, http.StatusCreated, agent)
	}
}

// UpdateAgent replaces the editable fields of an agent
func UpdateAgent(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req AgentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Status == "" {
			req.Status = string(models.AgentStatusActive)
		}

		result, err := db.Exec(`
			UPDATE agents SET first_name = $1, last_name = $2, email = $3, phone = $4,
				status = $5, specialties = $6, matricule = $7, professional_card_number = $8,
				contract_type = $9, updated_at = $10
			WHERE id = $11
		`, req.FirstName, req.LastName, req.Email, req.Phone, req.Status,
			pq.StringArray(req.Specialties), req.Matricule, req.ProfessionalCardNumber,
			req.ContractType, time.Now().Unix(), id)
		if err != nil {
			log.Printf("❌ Failed to update agent: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update agent")
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.RespondError(w, http.StatusNotFound, "Agent not found")
			return
		}

		var agent models.Agent
		if err := db.Get(&agent, "SELECT * FROM agents WHERE id = $1", id); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch agent")
			return
		}
		utils.Success(w, agent)
	}
}

// DeleteAgent removes a guard from the roster
func DeleteAgent(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		result, err := db.Exec("DELETE FROM agents WHERE id = $1", id)
		if err != nil {
			log.Printf("❌ Failed to delete agent: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete agent")
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.RespondError(w, http.StatusNotFound, "Agent not found")
			return
		}
		utils.Success(w, map[string]bool{"success": true})
	}
}
