package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"ecotrack-backend/internal/cache"
	"ecotrack-backend/internal/middleware"
	"ecotrack-backend/internal/models"
	"ecotrack-backend/internal/services"
	"ecotrack-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

func parsePeriod(r *http.Request) (models.Period, bool) {
	period := models.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = models.PeriodWeek
	}
	switch period {
	case models.PeriodWeek, models.PeriodMonth, models.PeriodYear:
		return period, true
	}
	return "", false
}

// GetAnalytics returns the caller's aggregated impact for the requested period
func GetAnalytics(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		period, ok := parsePeriod(r)
		if !ok {
			http.Error(w, "Period must be week, month, or year", http.StatusBadRequest)
			return
		}

		now := time.Now()
		cutoff := now.UTC().AddDate(0, 0, -period.Days()).Unix()

		var entries []models.WasteEntry
		err := db.Select(&entries, `
			SELECT * FROM waste_entries
			WHERE user_id = $1 AND created_at >= $2
			ORDER BY created_at ASC
		`, claims.UserID, cutoff)
		if err != nil {
			http.Error(w, "Failed to fetch entries", http.StatusInternalServerError)
			return
		}

		snapshot, err := services.Aggregate(entries, period, now)
		if err != nil {
			utils.ServiceError(w, err)
			return
		}

		utils.Success(w, snapshot)
	}
}

// GetPredictions returns per-type weight forecasts from the last two weeks
func GetPredictions(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		now := time.Now().Unix()
		cutoff := now - 14*24*60*60

		var entries []models.WasteEntry
		err := db.Select(&entries, `
			SELECT * FROM waste_entries
			WHERE user_id = $1 AND created_at >= $2
		`, claims.UserID, cutoff)
		if err != nil {
			http.Error(w, "Failed to fetch entries", http.StatusInternalServerError)
			return
		}

		series := services.DailyWeightSeries(entries, now)
		utils.Success(w, services.PredictTrends(series))
	}
}

// GetInsights returns generated summary text about the caller's habits
func GetInsights(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var entries []models.WasteEntry
		err := db.Select(&entries, `
			SELECT * FROM waste_entries WHERE user_id = $1 ORDER BY created_at DESC LIMIT 200
		`, claims.UserID)
		if err != nil {
			http.Error(w, "Failed to fetch entries", http.StatusInternalServerError)
			return
		}

		utils.Success(w, services.GenerateInsights(entries))
	}
}

// GetLeaderboard returns the community ranking for the requested period.
// Rankings are served from Redis when the cache is configured; a miss
// recomputes from Postgres and backfills.
func GetLeaderboard(db *sqlx.DB, leaderboardCache *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, ok := parsePeriod(r)
		if !ok {
			http.Error(w, "Period must be week, month, or year", http.StatusBadRequest)
			return
		}

		limit := 10
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
				limit = parsed
			}
		}

		if leaderboardCache != nil {
			rows, err := leaderboardCache.GetLeaderboard(r.Context(), period, limit)
			if err != nil {
				log.Printf("⚠️ Leaderboard cache read failed: %v", err)
			} else if rows != nil {
				utils.Success(w, rows)
				return
			}
		}

		rows, err := services.FetchLeaderboard(db, period, limit)
		if err != nil {
			http.Error(w, "Failed to fetch leaderboard", http.StatusInternalServerError)
			return
		}

		if leaderboardCache != nil {
			if err := leaderboardCache.SetLeaderboard(r.Context(), period, limit, rows); err != nil {
				log.Printf("⚠️ Leaderboard cache write failed: %v", err)
			}
		}

		utils.Success(w, rows)
	}
}
