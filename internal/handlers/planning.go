package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"vigiplan-backend/internal/models"
	"vigiplan-backend/internal/planning"
	"vigiplan-backend/internal/websocket"
	"vigiplan-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CheckConflictsRequest struct {
	MissionID        string                   `json:"missionId"` // empty for a new mission
	AgentAssignments []models.AgentAssignment `json:"agentAssignments" validate:"required,min=1,dive"`
}

type CheckConflictsResponse struct {
	HasConflict bool               `json:"has_conflict"`
	Message     string             `json:"message,omitempty"`
	Conflict    *planning.Conflict `json:"conflict,omitempty"`
}

// CheckConflicts is the dry-run the scheduling UI calls before committing a
// mission. It re-runs against the latest stored shift set and excludes the
// mission being edited, if any.
func CheckConflicts(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CheckConflictsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		existing, err := loadMissions(db)
		if err != nil {
			log.Printf("❌ %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch missions")
			return
		}

		candidate := models.Mission{ID: req.MissionID, AgentAssignments: req.AgentAssignments}
		conflict, err := planning.CheckMissionConflicts(existing, &candidate, req.MissionID, nil)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		resp := CheckConflictsResponse{HasConflict: conflict != nil, Conflict: conflict}
		if conflict != nil {
			resp.Message = fmt.Sprintf("Conflit détecté pour %s le %s", conflict.AgentName, conflict.Date)
		}
		utils.Success(w, resp)
	}
}

type PlanningEventRequest struct {
	Title     string  `json:"title" validate:"required"`
	AgentID   string  `json:"agent_id" validate:"required"`
	MissionID *string `json:"mission_id,omitempty"`
	SiteID    *string `json:"site_id,omitempty"`
	SiteName  *string `json:"site_name,omitempty"`
	StartsAt  int64   `json:"starts_at" validate:"required"`
	EndsAt    int64   `json:"ends_at" validate:"required"`
}

// GetPlanningEvents lists calendar events, optionally for one agent
func GetPlanningEvents(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := "SELECT * FROM planning_events ORDER BY starts_at, id"
		args := []interface{}{}
		if agentID := r.URL.Query().Get("agentId"); agentID != "" {
			query = "SELECT * FROM planning_events WHERE agent_id = $1 ORDER BY starts_at, id"
			args = append(args, agentID)
		}

		var events []models.PlanningEvent
		if err := db.Select(&events, query, args...); err != nil {
			log.Printf("❌ Failed to fetch planning events: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch planning events")
			return
		}
		utils.Success(w, events)
	}
}

// CreatePlanningEvent stores a pre-resolved calendar entry. The interval goes
// through the same validation as mission shifts: positive and at most 24h.
func CreatePlanningEvent(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlanningEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		event := models.PlanningEvent{
			ID:        uuid.New().String(),
			Title:     req.Title,
			AgentID:   req.AgentID,
			MissionID: req.MissionID,
			SiteID:    req.SiteID,
			SiteName:  req.SiteName,
			StartsAt:  req.StartsAt,
			EndsAt:    req.EndsAt,
			CreatedAt: time.Now().Unix(),
		}
		if err := planning.EventInterval(event).Validate(); err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		var agent models.Agent
		err := db.Get(&agent, "SELECT * FROM agents WHERE id = $1", req.AgentID)
		if errors.Is(err, sql.ErrNoRows) {
			utils.RespondError(w, http.StatusBadRequest, "Unknown agent")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch agent")
			return
		}
		event.AgentName = agent.FullName()

		_, err = db.Exec(`
			INSERT INTO planning_events (id, title, agent_id, agent_name, mission_id, site_id, site_name, starts_at, ends_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, event.ID, event.Title, event.AgentID, event.AgentName, event.MissionID,
			event.SiteID, event.SiteName, event.StartsAt, event.EndsAt, event.CreatedAt)
		if err != nil {
			log.Printf("❌ Failed to create planning event: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create planning event")
			return
		}

		log.Printf("✅ Planning event created: %s for %s", event.Title, event.AgentName)
		hub.BroadcastPlanningUpdate("event.created", event)
		utils.RespondJSON(w, http.StatusCreated, event)
	}
}

// DeletePlanningEvent removes a calendar entry
func DeletePlanningEvent(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		result, err := db.Exec("DELETE FROM planning_events WHERE id = $1", id)
		if err != nil {
			log.Printf("❌ Failed to delete planning event: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete planning event")
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.RespondError(w, http.StatusNotFound, "Planning event not found")
			return
		}

		hub.BroadcastPlanningUpdate("event.deleted", map[string]string{"id": id})
		utils.Success(w, map[string]bool{"success": true})
	}
}
