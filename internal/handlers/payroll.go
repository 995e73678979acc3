package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"vigiplan-backend/internal/models"
	"vigiplan-backend/internal/planning"
	"vigiplan-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

// referenceInstant reads the explicit reference instant from the ?at= query
// parameter, falling back to the request time. The engine itself never reads
// the clock, so "now" is pinned once per request here.
func referenceInstant(r *http.Request) (time.Time, error) {
	if at := r.URL.Query().Get("at"); at != "" {
		ts, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return time.Time{}, err
		}
		return ts.UTC(), nil
	}
	return time.Now().UTC(), nil
}

// AgentPayrollResponse pairs the agent record with their hour buckets
type AgentPayrollResponse struct {
	Agent   models.Agent            `json:"agent"`
	Summary planning.PayrollSummary `json:"summary"`
}

// loadPayrollInputs fetches the agent's missions and calendar events in the
// stable order the aggregation relies on.
func loadPayrollInputs(db *sqlx.DB, agentID string) ([]models.Mission, []models.PlanningEvent, error) {
	var missions []models.Mission
	err := db.Select(&missions, "SELECT * FROM missions WHERE $1 = ANY(assigned_agent_ids) ORDER BY created_at, id", agentID)
	if err != nil {
		return nil, nil, err
	}

	var events []models.PlanningEvent
	err = db.Select(&events, "SELECT * FROM planning_events WHERE agent_id = $1 ORDER BY starts_at, id", agentID)
	if err != nil {
		return nil, nil, err
	}

	return missions, events, nil
}

// GetAgentPayroll computes one agent's payroll summary
func GetAgentPayroll(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		now, err := referenceInstant(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid 'at' parameter, expected RFC3339")
			return
		}

		var agent models.Agent
		err = db.Get(&agent, "SELECT * FROM agents WHERE id = $1", id)
		if errors.Is(err, sql.ErrNoRows) {
			utils.RespondError(w, http.StatusNotFound, "Agent not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch agent")
			return
		}

		missions, events, err := loadPayrollInputs(db, id)
		if err != nil {
			log.Printf("❌ Failed to fetch payroll inputs: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch payroll inputs")
			return
		}

		summary, err := planning.Summarize(id, missions, events, now)
		if err != nil {
			utils.RespondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		utils.Success(w, AgentPayrollResponse{Agent: agent, Summary: summary})
	}
}

// GetPayrollReport computes the summary for every active agent, in a stable
// order so successive exports of the same dataset match to the bit.
func GetPayrollReport(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now, err := referenceInstant(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid 'at' parameter, expected RFC3339")
			return
		}

		var agents []models.Agent
		if err := db.Select(&agents, "SELECT * FROM agents WHERE status = 'active' ORDER BY last_name, first_name, id"); err != nil {
			log.Printf("❌ Failed to fetch agents: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch agents")
			return
		}

		report := make([]AgentPayrollResponse, 0, len(agents))
		for i := range agents {
			missions, events, err := loadPayrollInputs(db, agents[i].ID)
			if err != nil {
				log.Printf("❌ Failed to fetch payroll inputs: %v", err)
				utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch payroll inputs")
				return
			}

			summary, err := planning.Summarize(agents[i].ID, missions, events, now)
			if err != nil {
				utils.RespondError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			report = append(report, AgentPayrollResponse{Agent: agents[i], Summary: summary})
		}

		utils.Success(w, report)
	}
}
