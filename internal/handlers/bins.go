package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"ecotrack-backend/internal/database"
	"ecotrack-backend/internal/events"
	"ecotrack-backend/internal/models"
	"ecotrack-backend/internal/services"
	"ecotrack-backend/internal/websocket"
	"ecotrack-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GetBins returns all bins ordered by location
func GetBins(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var bins []models.Bin
		err := db.Select(&bins, "SELECT * FROM bins ORDER BY location, waste_type")
		if err != nil {
			http.Error(w, "Failed to fetch bins", http.StatusInternalServerError)
			return
		}

		responses := make([]models.BinResponse, len(bins))
		for i, bin := range bins {
			responses[i] = bin.ToBinResponse()
		}

		utils.Success(w, responses)
	}
}

// UpdateBinLevel ingests a sensor reading for one bin. The status machine
// decides the new state; crossing into full fans the alert out to admin
// websocket clients, the event stream, and push notifications.
func UpdateBinLevel(db *sqlx.DB, hub *websocket.Hub, producer *events.Producer, fcmService *services.FCMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		binID := chi.URLParam(r, "id")

		var req models.UpdateBinLevelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		var bin models.Bin
		err := db.Get(&bin, "SELECT * FROM bins WHERE id = $1", binID)
		if err == sql.ErrNoRows {
			http.Error(w, "Bin not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Failed to fetch bin", http.StatusInternalServerError)
			return
		}

		newStatus, becameFull, err := services.TransitionBinStatus(req.CurrentLevel, bin.Capacity, bin.Status)
		if err != nil {
			utils.ServiceError(w, err)
			return
		}

		now := time.Now().Unix()
		_, err = db.Exec(`
			UPDATE bins SET current_level = $1, status = $2, updated_at = $3 WHERE id = $4
		`, req.CurrentLevel, newStatus, now, binID)
		if err != nil {
			http.Error(w, "Failed to update bin", http.StatusInternalServerError)
			return
		}

		bin.CurrentLevel = req.CurrentLevel
		bin.Status = newStatus
		bin.UpdatedAt = now

		if becameFull {
			go fanOutBinAlert(db, hub, producer, fcmService, bin)
		}

		utils.Success(w, bin.ToBinResponse())
	}
}

// CreateBin adds a bin (admin only)
func CreateBin(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateBinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Location == "" || !req.WasteType.Valid() {
			http.Error(w, "Location and a valid waste type are required", http.StatusBadRequest)
			return
		}
		if req.Capacity <= 0 {
			http.Error(w, "Capacity must be positive", http.StatusBadRequest)
			return
		}

		now := time.Now().Unix()
		bin := models.Bin{
			ID:             uuid.New().String(),
			Location:       req.Location,
			WasteType:      req.WasteType,
			Capacity:       req.Capacity,
			CurrentLevel:   0,
			LastCollection: now,
			SensorID:       req.SensorID,
			Status:         models.BinNormal,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		_, err := db.Exec(`
			INSERT INTO bins (id, location, waste_type, capacity, current_level, last_collection, sensor_id, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, bin.ID, bin.Location, bin.WasteType, bin.Capacity, bin.CurrentLevel,
			bin.LastCollection, bin.SensorID, bin.Status, bin.CreatedAt, bin.UpdatedAt)
		if err != nil {
			http.Error(w, "Failed to create bin", http.StatusInternalServerError)
			return
		}

		utils.JSON(w, http.StatusCreated, bin.ToBinResponse())
	}
}

// DeleteBin removes a bin (admin only)
func DeleteBin(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		binID := chi.URLParam(r, "id")

		result, err := db.Exec("DELETE FROM bins WHERE id = $1", binID)
		if err != nil {
			http.Error(w, "Failed to delete bin", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			http.Error(w, "Bin not found", http.StatusNotFound)
			return
		}

		utils.Success(w, map[string]string{"message": "Bin deleted"})
	}
}

// MarkBinCollected empties a bin and stamps the collection time (admin only)
func MarkBinCollected(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		binID := chi.URLParam(r, "id")
		now := time.Now().Unix()

		var bin models.Bin
		err := db.Get(&bin, `
			UPDATE bins
			SET current_level = 0, status = $1, last_collection = $2, updated_at = $2
			WHERE id = $3 AND status != $4
			RETURNING *
		`, models.BinNormal, now, binID, models.BinMaintenance)
		if err == sql.ErrNoRows {
			http.Error(w, "Bin not found or under maintenance", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Failed to update bin", http.StatusInternalServerError)
			return
		}

		utils.Success(w, bin.ToBinResponse())
	}
}

// SetBinMaintenance puts a bin into maintenance (admin only). While in
// maintenance, sensor readings no longer change its status.
func SetBinMaintenance(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		binID := chi.URLParam(r, "id")

		var bin models.Bin
		err := db.Get(&bin, `
			UPDATE bins SET status = $1, updated_at = $2 WHERE id = $3 RETURNING *
		`, models.BinMaintenance, time.Now().Unix(), binID)
		if err == sql.ErrNoRows {
			http.Error(w, "Bin not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Failed to update bin", http.StatusInternalServerError)
			return
		}

		utils.Success(w, bin.ToBinResponse())
	}
}

// ClearBinMaintenance takes a bin out of maintenance (admin only). The
// status is recomputed from the level the sensor last reported.
func ClearBinMaintenance(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		binID := chi.URLParam(r, "id")

		var bin models.Bin
		err := db.Get(&bin, "SELECT * FROM bins WHERE id = $1", binID)
		if err == sql.ErrNoRows {
			http.Error(w, "Bin not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Failed to fetch bin", http.StatusInternalServerError)
			return
		}

		newStatus, _, err := services.TransitionBinStatus(bin.CurrentLevel, bin.Capacity, models.BinNormal)
		if err != nil {
			utils.ServiceError(w, err)
			return
		}

		now := time.Now().Unix()
		_, err = db.Exec("UPDATE bins SET status = $1, updated_at = $2 WHERE id = $3", newStatus, now, binID)
		if err != nil {
			http.Error(w, "Failed to update bin", http.StatusInternalServerError)
			return
		}

		bin.Status = newStatus
		bin.UpdatedAt = now
		utils.Success(w, bin.ToBinResponse())
	}
}

// InitializeBins seeds the default bin fleet (admin only)
func InitializeBins(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := database.SeedBins(db); err != nil {
			http.Error(w, "Failed to initialize bins", http.StatusInternalServerError)
			return
		}

		var count int
		db.Get(&count, "SELECT COUNT(*) FROM bins")
		utils.Success(w, map[string]interface{}{
			"message": "Bins initialized",
			"count":   count,
		})
	}
}

// fanOutBinAlert notifies every alert channel that a bin filled up. Each
// channel is best-effort; a dead broker must not block the sensor update.
func fanOutBinAlert(db *sqlx.DB, hub *websocket.Hub, producer *events.Producer, fcmService *services.FCMService, bin models.Bin) {
	pct := 0.0
	if bin.Capacity > 0 {
		pct = bin.CurrentLevel / bin.Capacity * 100
	}
	title := "Bin Full Alert"
	body := fmt.Sprintf("%s bin at %s is %.0f%% full and needs collection", bin.WasteType, bin.Location, pct)

	hub.BroadcastToRole(models.RoleAdmin, map[string]interface{}{
		"type": "bin_alert",
		"bin":  bin.ToBinResponse(),
	})

	if producer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := producer.PublishBinAlert(ctx, events.BinAlertEvent{
			BinID:      bin.ID,
			Location:   bin.Location,
			WasteType:  bin.WasteType,
			Status:     bin.Status,
			Percentage: pct,
		})
		if err != nil {
			log.Printf("⚠️ Failed to publish bin alert: %v", err)
		}
	}

	var admins []string
	if err := db.Select(&admins, "SELECT id FROM users WHERE role = $1", models.RoleAdmin); err != nil {
		log.Printf("⚠️ Failed to fetch admins for bin alert: %v", err)
		return
	}

	now := time.Now().Unix()
	for _, adminID := range admins {
		_, err := db.Exec(`
			INSERT INTO notifications (id, user_id, title, message, type, read, created_at)
			VALUES ($1, $2, $3, $4, $5, FALSE, $6)
		`, uuid.New().String(), adminID, title, body, models.NotifAlert, now)
		if err != nil {
			log.Printf("⚠️ Failed to create bin alert notification: %v", err)
		}
	}

	if fcmService != nil {
		var tokens []string
		err := db.Select(&tokens, `
			SELECT t.token FROM fcm_tokens t
			JOIN users u ON u.id = t.user_id
			WHERE u.role = $1
		`, models.RoleAdmin)
		if err != nil {
			log.Printf("⚠️ Failed to fetch admin FCM tokens: %v", err)
			return
		}
		if len(tokens) > 0 {
			if err := fcmService.SendMulticast(tokens, title, body, map[string]string{
				"type":   "bin_alert",
				"bin_id": bin.ID,
			}); err != nil {
				log.Printf("⚠️ FCM bin alert failed: %v", err)
			}
		}
	}
}
