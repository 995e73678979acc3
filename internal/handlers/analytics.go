package handlers

import (
	"log"
	"net/http"

	"vigiplan-backend/internal/planning"
	"vigiplan-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// DashboardResponse feeds the admin landing page
type DashboardResponse struct {
	Stats         planning.MissionStats `json:"stats"`
	MissionsCount int                   `json:"missions_count"`
	AgentsTotal   int                   `json:"agents_total"`
	SitesTotal    int                   `json:"sites_total"`
}

// GetDashboardStats aggregates hours and active agent/site counts across the
// whole planning, split at the reference instant.
func GetDashboardStats(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now, err := referenceInstant(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid 'at' parameter, expected RFC3339")
			return
		}

		missions, err := loadMissions(db)
		if err != nil {
			log.Printf("❌ %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch missions")
			return
		}

		stats, err := planning.ComputeMissionStats(missions, now)
		if err != nil {
			utils.RespondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		resp := DashboardResponse{Stats: stats, MissionsCount: len(missions)}
		if err := db.Get(&resp.AgentsTotal, "SELECT COUNT(*) FROM agents"); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to count agents")
			return
		}
		if err := db.Get(&resp.SitesTotal, "SELECT COUNT(*) FROM sites"); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to count sites")
			return
		}

		utils.Success(w, resp)
	}
}
