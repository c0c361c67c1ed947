package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"ecotrack-backend/internal/middleware"
	"ecotrack-backend/internal/models"
	"ecotrack-backend/internal/services"
	"ecotrack-backend/internal/websocket"
	"ecotrack-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// LogWasteResponse carries the stored entry plus whatever the entry unlocked.
type LogWasteResponse struct {
	Entry      models.WasteEntryResponse `json:"entry"`
	NewRewards []models.Reward           `json:"new_rewards"`
}

// LogWaste creates a waste entry. The impact metrics are computed once here
// and embedded; the entry row plus the user's running point total move in a
// single transaction, then the achievement evaluator runs over the updated
// history.
func LogWaste(db *sqlx.DB, hub *websocket.Hub, fcmService *services.FCMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req models.LogWasteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		impact, err := services.ComputeImpact(req.WasteType, req.Weight)
		if err != nil {
			utils.ServiceError(w, err)
			return
		}

		entry := models.WasteEntry{
			ID:              uuid.New().String(),
			UserID:          claims.UserID,
			WasteType:       req.WasteType,
			Weight:          req.Weight,
			Points:          impact.Points,
			Co2Saved:        impact.Co2Saved,
			LandfillReduced: impact.LandfillReduced,
			AiClassified:    req.AiClassified,
			AiConfidence:    req.AiConfidence,
			Location:        req.Location,
			CreatedAt:       time.Now().Unix(),
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to begin transaction", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		_, err = tx.Exec(`
			INSERT INTO waste_entries (id, user_id, waste_type, weight, points, co2_saved, landfill_reduced, ai_classified, ai_confidence, location, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, entry.ID, entry.UserID, entry.WasteType, entry.Weight, entry.Points,
			entry.Co2Saved, entry.LandfillReduced, entry.AiClassified, entry.AiConfidence,
			entry.Location, entry.CreatedAt)
		if err != nil {
			http.Error(w, "Failed to create entry", http.StatusInternalServerError)
			return
		}

		// Keep the denormalized running total in step with the entry.
		var totalPoints int
		err = tx.Get(&totalPoints, `
			UPDATE users
			SET total_points = total_points + $1,
			    updated_at = $2
			WHERE id = $3
			RETURNING total_points
		`, entry.Points, time.Now().Unix(), claims.UserID)
		if err != nil {
			http.Error(w, "Failed to update points", http.StatusInternalServerError)
			return
		}

		_, err = tx.Exec("UPDATE users SET level = $1 WHERE id = $2",
			services.LevelForPoints(totalPoints), claims.UserID)
		if err != nil {
			http.Error(w, "Failed to update level", http.StatusInternalServerError)
			return
		}

		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
			return
		}

		newRewards, err := services.EvaluateAchievements(db, claims.UserID)
		if err != nil {
			// The entry is already committed; report it with whatever
			// unlocks made it through.
			log.Printf("⚠️ Achievement evaluation failed for %s: %v", claims.UserID, err)
		}

		for _, reward := range newRewards {
			hub.BroadcastToUser(claims.UserID, map[string]interface{}{
				"type":   "achievement",
				"reward": reward,
			})
			pushAchievement(db, fcmService, claims.UserID, reward)
		}

		if newRewards == nil {
			newRewards = []models.Reward{}
		}

		utils.JSON(w, http.StatusCreated, LogWasteResponse{
			Entry:      entry.ToWasteEntryResponse(),
			NewRewards: newRewards,
		})
	}
}

// GetWasteEntries returns the caller's entries, newest first
func GetWasteEntries(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		limit := 100
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 500 {
				limit = parsed
			}
		}

		var entries []models.WasteEntry
		err := db.Select(&entries, `
			SELECT * FROM waste_entries
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		`, claims.UserID, limit)
		if err != nil {
			http.Error(w, "Failed to fetch entries", http.StatusInternalServerError)
			return
		}

		responses := make([]models.WasteEntryResponse, len(entries))
		for i, entry := range entries {
			responses[i] = entry.ToWasteEntryResponse()
		}

		utils.Success(w, responses)
	}
}

func pushAchievement(db *sqlx.DB, fcmService *services.FCMService, userID string, reward models.Reward) {
	if fcmService == nil {
		return
	}

	var tokens []string
	if err := db.Select(&tokens, "SELECT token FROM fcm_tokens WHERE user_id = $1", userID); err != nil {
		log.Printf("⚠️ Failed to fetch FCM tokens for %s: %v", userID, err)
		return
	}

	for _, token := range tokens {
		if err := fcmService.SendAchievementNotification(token, reward.Title, reward.Points); err != nil {
			log.Printf("⚠️ FCM push failed: %v", err)
		}
	}
}
