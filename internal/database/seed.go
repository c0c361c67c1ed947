package database

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ecotrack-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func SeedUsers(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Users already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding test users...")

	residentPassword, err := bcrypt.GenerateFromPassword([]byte("resident123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []map[string]interface{}{
		{
			"id":       uuid.New().String(),
			"email":    "resident@ecotrack.com",
			"password": string(residentPassword),
			"name":     "Riley Resident",
			"role":     models.RoleResident,
		},
		{
			"id":       uuid.New().String(),
			"email":    "admin@ecotrack.com",
			"password": string(adminPassword),
			"name":     "Admin User",
			"role":     models.RoleAdmin,
		},
	}

	for _, user := range users {
		query := `
			INSERT INTO users (id, email, password, name, role)
			VALUES (:id, :email, :password, :name, :role)
		`
		if _, err := db.NamedExec(query, user); err != nil {
			return err
		}
		log.Printf("  ✓ Created user: %s (%s)", user["email"], user["role"])
	}

	log.Println("✓ Successfully seeded test users")
	log.Println("  📧 Resident: resident@ecotrack.com / resident123")
	log.Println("  📧 Admin:    admin@ecotrack.com / admin123")
	return nil
}

// SeedBins creates one bin per (location, waste type) pair with a random
// starting level. Idempotent: does nothing when bins already exist. Also
// reachable via POST /api/admin/bins/initialize.
func SeedBins(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM bins"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Bins already seeded, skipping...")
		return nil
	}

	locations := []string{
		"Main Street Park",
		"Community Center",
		"Shopping Mall",
		"Residential Area A",
		"Residential Area B",
		"School Campus",
	}

	// Electronic waste goes to a collection point, not street bins.
	binTypes := []models.WasteType{
		models.WastePlastic,
		models.WasteOrganic,
		models.WastePaper,
		models.WasteGlass,
		models.WasteMetal,
	}

	log.Printf("🌱 Seeding %d bins...", len(locations)*len(binTypes))

	now := time.Now()
	for _, location := range locations {
		for _, wasteType := range binTypes {
			sensorID := fmt.Sprintf("%s_%s", sanitizeSensorID(location), wasteType)
			lastCollection := now.Add(-time.Duration(rand.Intn(7*24)) * time.Hour).Unix()

			_, err := db.Exec(`
				INSERT INTO bins (id, location, waste_type, capacity, current_level, last_collection, sensor_id, status)
				VALUES ($1, $2, $3, $4, $5, $6, $7, 'normal')
			`, uuid.New().String(), location, wasteType, 100.0, float64(rand.Intn(60)), lastCollection, sensorID)
			if err != nil {
				return err
			}
		}
	}

	log.Println("✓ Successfully seeded bins")
	return nil
}

func sanitizeSensorID(location string) string {
	out := make([]rune, 0, len(location))
	for _, r := range location {
		if r == ' ' {
			out = append(out, '_')
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}

// SeedEcoFacts loads the fixed fact list, once.
func SeedEcoFacts(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM eco_facts"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Eco facts already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding eco facts...")

	facts := []struct {
		Fact        string
		Category    string
		ForChildren bool
		Icon        string
	}{
		// Facts for adults
		{"Recycling one aluminum can saves enough energy to power a TV for 3 hours", "metal", false, "⚡"},
		{"It takes 450 years for a plastic bottle to decompose in a landfill", "plastic", false, "🍾"},
		{"Composting organic waste can reduce methane emissions by up to 50%", "organic", false, "🌱"},
		{"Recycling one ton of paper saves 17 trees and 7,000 gallons of water", "paper", false, "🌳"},
		{"Glass can be recycled infinitely without losing quality", "glass", false, "♻️"},

		// Fun facts for children
		{"Recycling 1 plastic bottle saves enough energy to power a light bulb for 3 hours! 💡", "plastic", true, "💡"},
		{"Banana peels and apple cores can become super soil for plants! 🍌🍎", "organic", true, "🌱"},
		{"Old newspapers can become new books and notebooks! 📚", "paper", true, "📚"},
		{"Glass jars can be melted and made into new jars forever! ✨", "glass", true, "✨"},
		{"Aluminum cans can become new cans in just 60 days! 🥤", "metal", true, "🥤"},
		{"Every piece of trash you sort helps save animals and their homes! 🐻", "general", true, "🐻"},
		{"When you recycle, you're like a superhero saving the planet! 🦸‍♀️", "general", true, "🦸‍♀️"},
	}

	for _, f := range facts {
		_, err := db.Exec(`
			INSERT INTO eco_facts (fact, category, for_children, icon)
			VALUES ($1, $2, $3, $4)
		`, f.Fact, f.Category, f.ForChildren, f.Icon)
		if err != nil {
			return err
		}
	}

	log.Printf("✓ Successfully seeded %d eco facts", len(facts))
	return nil
}
