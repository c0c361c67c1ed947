package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"ecotrack-backend/internal/models"
	"ecotrack-backend/internal/services"
	"ecotrack-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// ClassifyWasteRequest is the request body for POST /api/ai/classify
type ClassifyWasteRequest struct {
	ImageID string `json:"image_id"`
}

// TrainClassifierRequest is the request body for POST /api/ai/train
type TrainClassifierRequest struct {
	ImageID    string           `json:"image_id"`
	ActualType models.WasteType `json:"actual_type"`
}

// ClassifierStats summarizes the verified training corpus
type ClassifierStats struct {
	TotalSamples int                      `json:"total_samples"`
	ByType       map[models.WasteType]int `json:"by_type"`
	Accuracy     float64                  `json:"accuracy"`
}

// ClassifyWaste runs the classifier over an uploaded image reference
func ClassifyWaste(classifier services.Classifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClassifyWasteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageID == "" {
			http.Error(w, "Image ID is required", http.StatusBadRequest)
			return
		}

		result, err := classifier.Classify(req.ImageID)
		if err != nil {
			http.Error(w, "Classification failed", http.StatusInternalServerError)
			return
		}

		utils.Success(w, result)
	}
}

// TrainClassifier records a user-verified label as training data
func TrainClassifier(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TrainClassifierRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if !req.ActualType.Valid() {
			http.Error(w, "A valid waste type is required", http.StatusBadRequest)
			return
		}

		_, err := db.Exec(`
			INSERT INTO classifier_samples (actual_type, verified, created_at)
			VALUES ($1, TRUE, $2)
		`, req.ActualType, time.Now().Unix())
		if err != nil {
			http.Error(w, "Failed to store training sample", http.StatusInternalServerError)
			return
		}

		utils.Success(w, map[string]bool{"success": true})
	}
}

// GetClassifierStats returns sample counts per type. Accuracy is simulated
// until a real model is trained.
func GetClassifierStats(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Queryx(`
			SELECT actual_type, COUNT(*) AS n FROM classifier_samples GROUP BY actual_type
		`)
		if err != nil {
			http.Error(w, "Failed to fetch stats", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		stats := ClassifierStats{
			ByType:   make(map[models.WasteType]int),
			Accuracy: 0.85 + rand.Float64()*0.1,
		}
		for rows.Next() {
			var wasteType models.WasteType
			var n int
			if err := rows.Scan(&wasteType, &n); err != nil {
				http.Error(w, "Failed to read stats", http.StatusInternalServerError)
				return
			}
			stats.ByType[wasteType] = n
			stats.TotalSamples += n
		}

		utils.Success(w, stats)
	}
}
