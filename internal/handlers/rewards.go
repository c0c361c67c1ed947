package handlers

import (
	"net/http"

	"ecotrack-backend/internal/middleware"
	"ecotrack-backend/internal/models"
	"ecotrack-backend/internal/services"
	"ecotrack-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

// GetRewards returns the caller's earned rewards, newest first
func GetRewards(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var rewards []models.Reward
		err := db.Select(&rewards, `
			SELECT * FROM rewards WHERE user_id = $1 ORDER BY created_at DESC
		`, claims.UserID)
		if err != nil {
			http.Error(w, "Failed to fetch rewards", http.StatusInternalServerError)
			return
		}

		utils.Success(w, rewards)
	}
}

// CheckAchievements re-runs the evaluator over the caller's history and
// returns anything newly unlocked
func CheckAchievements(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		newRewards, err := services.EvaluateAchievements(db, claims.UserID)
		if err != nil {
			utils.ServiceError(w, err)
			return
		}
		if newRewards == nil {
			newRewards = []models.Reward{}
		}

		utils.Success(w, newRewards)
	}
}

// ClaimReward marks one of the caller's rewards as claimed. Claiming twice
// is a conflict, not a no-op.
func ClaimReward(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		rewardID := chi.URLParam(r, "id")

		reward, err := services.ClaimReward(db, claims.UserID, rewardID)
		if err != nil {
			utils.ServiceError(w, err)
			return
		}

		utils.Success(w, reward)
	}
}
