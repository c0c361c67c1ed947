package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"ecotrack-backend/internal/middleware"
	"ecotrack-backend/internal/models"
	"ecotrack-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// GetProfile returns the caller's profile
func GetProfile(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var user models.User
		err := db.Get(&user, "SELECT * FROM users WHERE id = $1", claims.UserID)
		if err == sql.ErrNoRows {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Failed to fetch user", http.StatusInternalServerError)
			return
		}

		utils.Success(w, user.ToUserResponse())
	}
}

// UpdateProfile applies partial updates to the caller's preferences
func UpdateProfile(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req models.UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Mode != nil && *req.Mode != models.ModeAdult && *req.Mode != models.ModeChild {
			http.Error(w, "Mode must be adult or child", http.StatusBadRequest)
			return
		}
		if req.Theme != nil && *req.Theme != "light" && *req.Theme != "dark" {
			http.Error(w, "Theme must be light or dark", http.StatusBadRequest)
			return
		}

		var user models.User
		err := db.Get(&user, `
			UPDATE users SET
				mode = COALESCE($1, mode),
				theme = COALESCE($2, theme),
				notifications_enabled = COALESCE($3, notifications_enabled),
				updated_at = $4
			WHERE id = $5
			RETURNING *
		`, req.Mode, req.Theme, req.NotificationsEnabled, time.Now().Unix(), claims.UserID)
		if err == sql.ErrNoRows {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Failed to update profile", http.StatusInternalServerError)
			return
		}

		utils.Success(w, user.ToUserResponse())
	}
}

// AdminStats is the systemwide summary for the admin dashboard
type AdminStats struct {
	TotalUsers      int     `json:"total_users"`
	TotalEntries    int     `json:"total_entries"`
	TotalWeight     float64 `json:"total_weight"`
	TotalCo2Saved   float64 `json:"total_co2_saved"`
	BinsTotal       int     `json:"bins_total"`
	BinsFull        int     `json:"bins_full"`
	BinsMaintenance int     `json:"bins_maintenance"`
}

// GetAdminStats returns systemwide aggregates (admin only)
func GetAdminStats(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var stats AdminStats

		err := db.Get(&stats, `
			SELECT
				(SELECT COUNT(*) FROM users) AS totalusers,
				(SELECT COUNT(*) FROM waste_entries) AS totalentries,
				(SELECT COALESCE(SUM(weight), 0) FROM waste_entries) AS totalweight,
				(SELECT COALESCE(SUM(co2_saved), 0) FROM waste_entries) AS totalco2saved,
				(SELECT COUNT(*) FROM bins) AS binstotal,
				(SELECT COUNT(*) FROM bins WHERE status = 'full') AS binsfull,
				(SELECT COUNT(*) FROM bins WHERE status = 'maintenance') AS binsmaintenance
		`)
		if err != nil {
			http.Error(w, "Failed to fetch stats", http.StatusInternalServerError)
			return
		}

		utils.Success(w, stats)
	}
}
