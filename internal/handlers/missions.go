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
	"github.com/lib/pq"
)

type MissionRequest struct {
	SiteID           string                   `json:"siteId" validate:"required"`
	AgentAssignments []models.AgentAssignment `json:"agentAssignments" validate:"required,min=1,dive"`
	Status           string                   `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Notes            *string                  `json:"notes,omitempty"`
}

// ConflictResponse is returned with a 409 when a save would double-book an agent
type ConflictResponse struct {
	Success  bool               `json:"success"`
	Error    string             `json:"error"`
	Conflict *planning.Conflict `json:"conflict"`
}

// loadMissions fetches every mission in a stable order
func loadMissions(db *sqlx.DB) ([]models.Mission, error) {
	var missions []models.Mission
	if err := db.Select(&missions, "SELECT * FROM missions ORDER BY created_at, id"); err != nil {
		return nil, fmt.Errorf("failed to fetch missions: %w", err)
	}
	return missions, nil
}

// prepareMission validates the payload into a mission ready to persist.
// Every vacation is resolved up front: malformed shift data rejects the whole
// save instead of slipping through as a zero-duration shift.
func prepareMission(db *sqlx.DB, req *MissionRequest) (*models.Mission, int, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, http.StatusBadRequest, err
	}

	var site models.Site
	err := db.Get(&site, "SELECT * FROM sites WHERE id = $1", req.SiteID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, http.StatusBadRequest, errors.New("unknown site")
	}
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("failed to fetch site")
	}

	agentIDs := make([]string, 0, len(req.AgentAssignments))
	for _, assignment := range req.AgentAssignments {
		for _, vacation := range assignment.Vacations {
			if _, err := planning.ResolveVacation(vacation); err != nil {
				return nil, http.StatusBadRequest, err
			}
		}
		agentIDs = append(agentIDs, assignment.AgentID)
	}

	status := models.MissionStatus(req.Status)
	if status == "" {
		status = models.MissionStatusScheduled
	}

	return &models.Mission{
		SiteID:           site.ID,
		SiteName:         site.Name,
		AgentAssignments: req.AgentAssignments,
		AssignedAgentIDs: pq.StringArray(agentIDs),
		Status:           status,
		Notes:            req.Notes,
	}, 0, nil
}

// checkConflicts runs the double-booking scan for a candidate mission and
// writes the 409 response when a conflict is found. Returns true if the save
// must be aborted.
func checkConflicts(w http.ResponseWriter, db *sqlx.DB, candidate *models.Mission, excludeMissionID string) bool {
	existing, err := loadMissions(db)
	if err != nil {
		log.Printf("❌ %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch missions")
		return true
	}

	conflict, err := planning.CheckMissionConflicts(existing, candidate, excludeMissionID, nil)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return true
	}
	if conflict != nil {
		log.Printf("⚠️  Conflict: %s already booked on %s (mission %s)", conflict.AgentName, conflict.Date, conflict.MissionID)
		utils.RespondJSON(w, http.StatusConflict, ConflictResponse{
			Success:  false,
			Error:    fmt.Sprintf("Conflit détecté pour %s le %s", conflict.AgentName, conflict.Date),
			Conflict: conflict,
		})
		return true
	}
	return false
}

// GetMissions lists missions, optionally filtered by agent or site
func GetMissions(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := "SELECT * FROM missions ORDER BY created_at, id"
		args := []interface{}{}

		if agentID := r.URL.Query().Get("agentId"); agentID != "" {
			query = "SELECT * FROM missions WHERE $1 = ANY(assigned_agent_ids) ORDER BY created_at, id"
			args = append(args, agentID)
		} else if siteID := r.URL.Query().Get("siteId"); siteID != "" {
			query = "SELECT * FROM missions WHERE site_id = $1 ORDER BY created_at, id"
			args = append(args, siteID)
		}

		var missions []models.Mission
		if err := db.Select(&missions, query, args...); err != nil {
			log.Printf("❌ Failed to fetch missions: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch missions")
			return
		}
		utils.Success(w, missions)
	}
}

// GetMission returns a single mission by id
func GetMission(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var mission models.Mission
		err := db.Get(&mission, "SELECT * FROM missions WHERE id = $1", id)
		if errors.Is(err, sql.ErrNoRows) {
			utils.RespondError(w, http.StatusNotFound, "Mission not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch mission")
			return
		}
		utils.Success(w, mission)
	}
}

// CreateMission validates, checks double-bookings and persists a new mission
func CreateMission(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		mission, status, err := prepareMission(db, &req)
		if err != nil {
			utils.RespondError(w, status, err.Error())
			return
		}

		if checkConflicts(w, db, mission, "") {
			return
		}

		now := time.Now().Unix()
		mission.ID = uuid.New().String()
		mission.CreatedAt = now
		mission.UpdatedAt = now

		_, err = db.Exec(`
			INSERT INTO missions (id, site_id, site_name, agent_assignments, assigned_agent_ids, status, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, mission.ID, mission.SiteID, mission.SiteName, mission.AgentAssignments,
			mission.AssignedAgentIDs, mission.Status, mission.Notes, mission.CreatedAt, mission.UpdatedAt)
		if err != nil {
			log.Printf("❌ Failed to create mission: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create mission")
			return
		}

		log.Printf("✅ Mission created: %s at %s (%d agents)", mission.ID, mission.SiteName, len(mission.AgentAssignments))
		hub.BroadcastPlanningUpdate("mission.created", mission)
		utils.RespondJSON(w, http.StatusCreated, mission)
	}
}

// UpdateMission replaces a mission in place. The mission being edited is
// excluded from the conflict comparison set so it never conflicts with itself.
func UpdateMission(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req MissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		mission, status, err := prepareMission(db, &req)
		if err != nil {
			utils.RespondError(w, status, err.Error())
			return
		}
		mission.ID = id

		if checkConflicts(w, db, mission, id) {
			return
		}

		result, err := db.Exec(`
			UPDATE missions SET site_id = $1, site_name = $2, agent_assignments = $3,
				assigned_agent_ids = $4, status = $5, notes = $6, updated_at = $7
			WHERE id = $8
		`, mission.SiteID, mission.SiteName, mission.AgentAssignments, mission.AssignedAgentIDs,
			mission.Status, mission.Notes, time.Now().Unix(), id)
		if err != nil {
			log.Printf("❌ Failed to update mission: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update mission")
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.RespondError(w, http.StatusNotFound, "Mission not found")
			return
		}

		log.Printf("✅ Mission updated: %s", id)
		hub.BroadcastPlanningUpdate("mission.updated", mission)
		utils.Success(w, mission)
	}
}

// DeleteMission removes a mission whole; partial deletion is not a thing
func DeleteMission(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		result, err := db.Exec("DELETE FROM missions WHERE id = $1", id)
		if err != nil {
			log.Printf("❌ Failed to delete mission: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete mission")
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.RespondError(w, http.StatusNotFound, "Mission not found")
			return
		}

		log.Printf("🗑️  Mission deleted: %s", id)
		hub.BroadcastPlanningUpdate("mission.deleted", map[string]string{"id": id})
		utils.Success(w, map[string]bool{"success": true})
	}
}

// AgentDurationEntry pairs an assignment with its computed staffed hours
type AgentDurationEntry struct {
	AgentID   string            `json:"agent_id"`
	AgentName string            `json:"agent_name"`
	Duration  planning.Duration `json:"duration"`
}

// MissionDurationsResponse is the duration/period breakdown of one mission
type MissionDurationsResponse struct {
	MissionID   string               `json:"mission_id"`
	SiteName    string               `json:"site_name"`
	Total       planning.Duration    `json:"total"`
	PerAgent    []AgentDurationEntry `json:"per_agent"`
	PeriodStart *time.Time           `json:"period_start"`
	PeriodEnd   *time.Time           `json:"period_end"`
}

// GetMissionDurations computes per-agent and total staffed hours plus the
// mission period for the calendar and dashboard views.
func GetMissionDurations(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var mission models.Mission
		err := db.Get(&mission, "SELECT * FROM missions WHERE id = $1", id)
		if errors.Is(err, sql.ErrNoRows) {
			utils.RespondError(w, http.StatusNotFound, "Mission not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch mission")
			return
		}

		total, err := planning.MissionDuration(&mission)
		if err != nil {
			utils.RespondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		start, end, err := planning.MissionPeriod(&mission)
		if err != nil {
			utils.RespondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		perAgent := make([]AgentDurationEntry, 0, len(mission.AgentAssignments))
		for _, assignment := range mission.AgentAssignments {
			d, err := planning.AgentDuration(&mission, assignment.AgentID)
			if err != nil {
				utils.RespondError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			perAgent = append(perAgent, AgentDurationEntry{
				AgentID:   assignment.AgentID,
				AgentName: assignment.AgentName,
				Duration:  d,
			})
		}

		utils.Success(w, MissionDurationsResponse{
			MissionID:   mission.ID,
			SiteName:    mission.SiteName,
			Total:       total,
			PerAgent:    perAgent,
			PeriodStart: start,
			PeriodEnd:   end,
		})
	}
}
