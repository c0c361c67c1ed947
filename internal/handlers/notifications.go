package handlers

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"time"

	"ecotrack-backend/internal/middleware"
	"ecotrack-backend/internal/models"
	"ecotrack-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var dailyReminders = []string{
	"Don't forget to segregate your waste today! 🌱",
	"Today is a great day to make a difference - log your waste! ♻️",
	"Remember: Every piece of waste sorted helps our planet! 🌍",
}

// GetNotifications returns the caller's 20 most recent notifications
func GetNotifications(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var notifications []models.Notification
		err := db.Select(&notifications, `
			SELECT * FROM notifications
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT 20
		`, claims.UserID)
		if err != nil {
			http.Error(w, "Failed to fetch notifications", http.StatusInternalServerError)
			return
		}

		utils.Success(w, notifications)
	}
}

// MarkNotificationRead marks one of the caller's notifications as read
func MarkNotificationRead(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		notificationID := chi.URLParam(r, "id")

		result, err := db.Exec(`
			UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2
		`, notificationID, claims.UserID)
		if err != nil {
			http.Error(w, "Failed to update notification", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			http.Error(w, "Notification not found", http.StatusNotFound)
			return
		}

		utils.Success(w, map[string]string{"message": "Notification marked as read"})
	}
}

// RegisterFCMToken stores a device push token for the caller
func RegisterFCMToken(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req models.RegisterFCMTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
			http.Error(w, "Token is required", http.StatusBadRequest)
			return
		}

		deviceType := req.DeviceType
		if deviceType != "ios" && deviceType != "android" {
			http.Error(w, "Device type must be ios or android", http.StatusBadRequest)
			return
		}

		// Re-registering the same token moves it to the current user.
		now := time.Now().Unix()
		_, err := db.Exec(`
			INSERT INTO fcm_tokens (user_id, token, device_type, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id, device_type = EXCLUDED.device_type, updated_at = EXCLUDED.updated_at
		`, claims.UserID, req.Token, deviceType, now)
		if err != nil {
			http.Error(w, "Failed to register token", http.StatusInternalServerError)
			return
		}

		utils.Success(w, map[string]string{"message": "Token registered"})
	}
}

// SendDailyReminders creates a reminder notification for every user who has
// notifications enabled (admin only). Each user gets a random line from the
// fixed reminder pool.
func SendDailyReminders(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var userIDs []string
		err := db.Select(&userIDs, "SELECT id FROM users WHERE notifications_enabled = TRUE")
		if err != nil {
			http.Error(w, "Failed to fetch users", http.StatusInternalServerError)
			return
		}

		now := time.Now().Unix()
		sent := 0
		for _, userID := range userIDs {
			reminder := dailyReminders[rand.Intn(len(dailyReminders))]
			_, err := db.Exec(`
				INSERT INTO notifications (id, user_id, title, message, type, read, created_at)
				VALUES ($1, $2, $3, $4, $5, FALSE, $6)
			`, uuid.New().String(), userID, "Daily Reminder", reminder, models.NotifReminder, now)
			if err != nil {
				log.Printf("⚠️ Failed to create reminder for %s: %v", userID, err)
				continue
			}
			sent++
		}

		utils.Success(w, map[string]interface{}{
			"message": "Daily reminders sent",
			"count":   sent,
		})
	}
}
