package handlers

import (
	"math/rand"
	"net/http"

	"ecotrack-backend/internal/database"
	"ecotrack-backend/internal/models"
	"ecotrack-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

var ecoFactCategories = map[string]bool{
	"plastic": true,
	"organic": true,
	"paper":   true,
	"glass":   true,
	"metal":   true,
	"general": true,
}

// GetRandomEcoFact returns one random fact, optionally filtered by audience
// and category
func GetRandomEcoFact(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := "SELECT * FROM eco_facts"
		var args []interface{}
		var conditions []string

		if forChildren := r.URL.Query().Get("for_children"); forChildren != "" {
			conditions = append(conditions, "for_children = $1")
			args = append(args, forChildren == "true")
		}
		if category := r.URL.Query().Get("category"); category != "" {
			if !ecoFactCategories[category] {
				http.Error(w, "Unknown category", http.StatusBadRequest)
				return
			}
			if len(args) == 0 {
				conditions = append(conditions, "category = $1")
			} else {
				conditions = append(conditions, "category = $2")
			}
			args = append(args, category)
		}

		if len(conditions) > 0 {
			query += " WHERE " + conditions[0]
			if len(conditions) > 1 {
				query += " AND " + conditions[1]
			}
		}

		var facts []models.EcoFact
		if err := db.Select(&facts, query, args...); err != nil {
			http.Error(w, "Failed to fetch facts", http.StatusInternalServerError)
			return
		}

		if len(facts) == 0 {
			utils.Success(w, nil)
			return
		}

		utils.Success(w, facts[rand.Intn(len(facts))])
	}
}

// InitializeEcoFacts seeds the fact catalog (admin only)
func InitializeEcoFacts(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := database.SeedEcoFacts(db); err != nil {
			http.Error(w, "Failed to initialize facts", http.StatusInternalServerError)
			return
		}

		var count int
		db.Get(&count, "SELECT COUNT(*) FROM eco_facts")
		utils.Success(w, map[string]interface{}{
			"message": "Eco facts initialized",
			"count":   count,
		})
	}
}
