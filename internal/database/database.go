package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Connect(dbURL string) (*sqlx.DB, error) {
	log.Println("🔌 Connecting to Postgres...")

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Database connection established")
	return db, nil
}

func Migrate(db *sqlx.DB) error {
	migrations := []string{
		// Create users table (profile fields folded in)
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('resident', 'admin')),
			mode TEXT NOT NULL DEFAULT 'adult' CHECK(mode IN ('adult', 'child')),
			total_points INT NOT NULL DEFAULT 0,
			level INT NOT NULL DEFAULT 1,
			notifications_enabled BOOLEAN NOT NULL DEFAULT TRUE,
			theme TEXT NOT NULL DEFAULT 'light' CHECK(theme IN ('light', 'dark')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create waste_entries table (immutable after insert)
		`CREATE TABLE IF NOT EXISTS waste_entries (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			waste_type TEXT NOT NULL CHECK(waste_type IN ('plastic', 'organic', 'paper', 'glass', 'metal', 'electronic')),
			weight DOUBLE PRECISION NOT NULL CHECK(weight > 0),
			points INT NOT NULL,
			co2_saved DOUBLE PRECISION NOT NULL,
			landfill_reduced DOUBLE PRECISION NOT NULL,
			ai_classified BOOLEAN NOT NULL DEFAULT FALSE,
			ai_confidence DOUBLE PRECISION,
			location TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Create bins table
		`CREATE TABLE IF NOT EXISTS bins (
			id TEXT PRIMARY KEY,
			location TEXT NOT NULL,
			waste_type TEXT NOT NULL CHECK(waste_type IN ('plastic', 'organic', 'paper', 'glass', 'metal', 'electronic')),
			capacity DOUBLE PRECISION NOT NULL CHECK(capacity > 0),
			current_level DOUBLE PRECISION NOT NULL DEFAULT 0,
			last_collection BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			sensor_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'normal' CHECK(status IN ('normal', 'warning', 'full', 'maintenance')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create rewards table. The unique index is the real duplicate-unlock
		// guarantee; the evaluator's existence check is just an optimization.
		`CREATE TABLE IF NOT EXISTS rewards (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			points INT NOT NULL,
			category TEXT NOT NULL CHECK(category IN ('daily', 'weekly', 'milestone', 'special')),
			claimed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			UNIQUE (user_id, title)
		)`,

		// Create notifications table
		`CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			type TEXT NOT NULL CHECK(type IN ('reminder', 'achievement', 'alert', 'tip')),
			read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Create eco_facts table
		`CREATE TABLE IF NOT EXISTS eco_facts (
			id SERIAL PRIMARY KEY,
			fact TEXT NOT NULL,
			category TEXT NOT NULL CHECK(category IN ('plastic', 'organic', 'paper', 'glass', 'metal', 'general')),
			for_children BOOLEAN NOT NULL DEFAULT FALSE,
			icon TEXT NOT NULL
		)`,

		// Create classifier_samples table (verified training data)
		`CREATE TABLE IF NOT EXISTS classifier_samples (
			id SERIAL PRIMARY KEY,
			actual_type TEXT NOT NULL CHECK(actual_type IN ('plastic', 'organic', 'paper', 'glass', 'metal', 'electronic')),
			predicted_type TEXT CHECK(predicted_type IN ('plastic', 'organic', 'paper', 'glass', 'metal', 'electronic')),
			confidence DOUBLE PRECISION,
			verified BOOLEAN NOT NULL DEFAULT FALSE,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create FCM tokens table
		`CREATE TABLE IF NOT EXISTS fcm_tokens (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			token TEXT NOT NULL UNIQUE,
			device_type TEXT NOT NULL CHECK(device_type IN ('ios', 'android')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Create indexes
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_waste_entries_user_id ON waste_entries(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_waste_entries_type ON waste_entries(waste_type)`,
		`CREATE INDEX IF NOT EXISTS idx_waste_entries_created_at ON waste_entries(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_waste_entries_user_created ON waste_entries(user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_rewards_user_id ON rewards(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rewards_category ON rewards(category)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_type ON notifications(type)`,
		`CREATE INDEX IF NOT EXISTS idx_bins_status ON bins(status)`,
		`CREATE INDEX IF NOT EXISTS idx_bins_location ON bins(location)`,
		`CREATE INDEX IF NOT EXISTS idx_eco_facts_category ON eco_facts(category)`,
		`CREATE INDEX IF NOT EXISTS idx_eco_facts_audience ON eco_facts(for_children)`,
		`CREATE INDEX IF NOT EXISTS idx_classifier_samples_type ON classifier_samples(actual_type)`,
		`CREATE INDEX IF NOT EXISTS idx_fcm_tokens_user_id ON fcm_tokens(user_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	log.Println("✓ Database migrations completed")
	return nil
}
