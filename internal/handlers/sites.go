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

type SiteRequest struct {
	Name                string   `json:"name" validate:"required"`
	Address             *string  `json:"address,omitempty"`
	ClientContact       *string  `json:"client_contact,omitempty"`
	Email               *string  `json:"email,omitempty" validate:"omitempty,email"`
	RequiredSpecialties []string `json:"required_specialties"`
	Notes               *string  `json:"notes,omitempty"`
}

// GetSites lists all client sites
func GetSites(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sites []models.Site
		if err := db.Select(&sites, "SELECT * FROM sites ORDER BY name"); err != nil {
			log.Printf("❌ Failed to fetch sites: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch sites")
			return
		}
		utils.Success(w, sites)
	}
}

// GetSite returns a single site by id
func GetSite(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var site models.Site
		err := db.Get(&site, "SELECT * FROM sites WHERE id = $1", id)
		if errors.Is(err, sql.ErrNoRows) {
			utils.RespondError(w, http.StatusNotFound, "Site not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch site")
			return
		}
		utils.Success(w, site)
	}
}

// CreateSite registers a new client site
func CreateSite(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SiteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		now := time.Now().Unix()
		site := models.Site{
			ID:                  uuid.New().String(),
			Name:                req.Name,
			Address:             req.Address,
			ClientContact:       req.ClientContact,
			Email:               req.Email,
			RequiredSpecialties: pq.StringArray(req.RequiredSpecialties),
			Notes:               req.Notes,
			CreatedAt:           now,
			UpdatedAt:           now,
		}

		_, err := db.Exec(`
			INSERT INTO sites (id, name, address, client_contact, email, required_specialties, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, site.ID, site.Name, site.Address, site.ClientContact, site.Email,
			site.RequiredSpecialties, site.Notes, site.CreatedAt, site.UpdatedAt)
		if err != nil {
			log.Printf("❌ Failed to create site: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create site")
			return
		}

		log.Printf("✅ Site created: %s", site.Name)
		utils.RespondJSON(w, http.StatusCreated, site)
	}
}

// UpdateSite replaces the editable fields of a site
func UpdateSite(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req SiteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := db.Exec(`
			UPDATE sites SET name = $1, address = $2, client_contact = $3, email = $4,
				required_specialties = $5, notes = $6, updated_at = $7
			WHERE id = $8
		`, req.Name, req.Address, req.ClientContact, req.Email,
			pq.StringArray(req.RequiredSpecialties), req.Notes, time.Now().Unix(), id)
		if err != nil {
			log.Printf("❌ Failed to update site: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update site")
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.RespondError(w, http.StatusNotFound, "Site not found")
			return
		}

		var site models.Site
		if err := db.Get(&site, "SELECT * FROM sites WHERE id = $1", id); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch site")
			return
		}
		utils.Success(w, site)
	}
}

// DeleteSite removes a client site
func DeleteSite(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		result, err := db.Exec("DELETE FROM sites WHERE id = $1", id)
		if err != nil {
			log.Printf("❌ Failed to delete site: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete site")
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.RespondError(w, http.StatusNotFound, "Site not found")
			return
		}
		utils.Success(w, map[string]bool{"success": true})
	}
}
