package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"ecotrack-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// UserStats are the aggregates achievement rules are evaluated against.
type UserStats struct {
	TotalEntries int
	TotalWeight  float64
	TotalPoints  int
}

// AchievementRule pairs an unlock condition with its reward payload.
// Rules are evaluated in declaration order so notification sequencing is
// deterministic when several fire in one pass.
type AchievementRule struct {
	Title       string
	Description string
	Points      int
	Category    models.RewardCategory
	Condition   func(UserStats) bool
}

// AchievementRules is the declarative unlock table. Append-only: titles are
// the idempotence key, so renaming one would re-grant it to everyone.
var AchievementRules = []AchievementRule{
	{
		Title:       "First Steps",
		Description: "Logged your first waste entry!",
		Points:      50,
		Category:    models.CategoryMilestone,
		Condition:   func(s UserStats) bool { return s.TotalEntries >= 1 },
	},
	{
		Title:       "Getting Started",
		Description: "Logged 10 waste entries!",
		Points:      100,
		Category:    models.CategoryMilestone,
		Condition:   func(s UserStats) bool { return s.TotalEntries >= 10 },
	},
	{
		Title:       "Eco Warrior",
		Description: "Logged 50 waste entries!",
		Points:      250,
		Category:    models.CategoryMilestone,
		Condition:   func(s UserStats) bool { return s.TotalEntries >= 50 },
	},
	{
		Title:       "10kg Milestone",
		Description: "Sorted 10kg of waste!",
		Points:      200,
		Category:    models.CategoryMilestone,
		Condition:   func(s UserStats) bool { return s.TotalWeight >= 10 },
	},
	{
		Title:       "Point Master",
		Description: "Earned 1000 points!",
		Points:      300,
		Category:    models.CategoryMilestone,
		Condition:   func(s UserStats) bool { return s.TotalPoints >= 1000 },
	},
}

// NewlyUnlocked returns the rules satisfied by stats whose titles are not in
// existing, in declaration order. Pure; the DB walk lives in
// EvaluateAchievements.
func NewlyUnlocked(stats UserStats, existing map[string]bool) []AchievementRule {
	var unlocked []AchievementRule
	for _, rule := range AchievementRules {
		if rule.Condition(stats) && !existing[rule.Title] {
			unlocked = append(unlocked, rule)
		}
	}
	return unlocked
}

// EvaluateAchievements scans a user's history against the rule table and
// creates one unclaimed reward plus one achievement notification per newly
// satisfied rule. Safe to call after every log: already-granted titles are
// skipped, and the UNIQUE(user_id, title) index makes the insert a no-op if
// a concurrent evaluation won the race. Reward and notification are written
// in one transaction so neither can exist without the other.
func EvaluateAchievements(db *sqlx.DB, userID string) ([]models.Reward, error) {
	var exists bool
	if err := db.Get(&exists, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", userID); err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	var stats UserStats
	err := db.Get(&stats, `
		SELECT COUNT(*)                    AS totalentries,
		       COALESCE(SUM(weight), 0)   AS totalweight,
		       COALESCE(SUM(points), 0)   AS totalpoints
		FROM waste_entries
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate entries: %w", err)
	}

	var titles []string
	if err := db.Select(&titles, "SELECT title FROM rewards WHERE user_id = $1", userID); err != nil {
		return nil, fmt.Errorf("failed to fetch existing rewards: %w", err)
	}
	existing := make(map[string]bool, len(titles))
	for _, t := range titles {
		existing[t] = true
	}

	var created []models.Reward
	for _, rule := range NewlyUnlocked(stats, existing) {
		reward, err := grantAchievement(db, userID, rule)
		if err != nil {
			return created, err
		}
		if reward != nil {
			created = append(created, *reward)
		}
	}

	return created, nil
}

// grantAchievement inserts the reward and its companion notification
// atomically. Returns nil (no error) when a concurrent evaluation already
// granted this title.
func grantAchievement(db *sqlx.DB, userID string, rule AchievementRule) (*models.Reward, error) {
	tx, err := db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	reward := models.Reward{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       rule.Title,
		Description: rule.Description,
		Points:      rule.Points,
		Category:    rule.Category,
		Claimed:     false,
		CreatedAt:   now,
	}

	result, err := tx.Exec(`
		INSERT INTO rewards (id, user_id, title, description, points, category, claimed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
		ON CONFLICT (user_id, title) DO NOTHING
	`, reward.ID, reward.UserID, reward.Title, reward.Description, reward.Points, reward.Category, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert reward: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read insert result: %w", err)
	}
	if rows == 0 {
		// Lost the race to a concurrent evaluation; the other writer owns
		// the notification too.
		return nil, nil
	}

	_, err = tx.Exec(`
		INSERT INTO notifications (id, user_id, title, message, type, read, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)
	`, uuid.New().String(), userID, "Achievement Unlocked!",
		fmt.Sprintf("You earned %q - %s", rule.Title, rule.Description),
		models.NotifAchievement, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert notification: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit achievement: %w", err)
	}

	log.Printf("🏆 Achievement unlocked for %s: %s (+%d pts)", userID, rule.Title, rule.Points)
	return &reward, nil
}

// ClaimReward flips a reward to claimed exactly once. Claiming a reward that
// is already claimed fails with ErrConflict; claiming someone else's (or a
// missing) reward fails with ErrNotFound.
func ClaimReward(db *sqlx.DB, userID, rewardID string) (*models.Reward, error) {
	var reward models.Reward
	err := db.Get(&reward, "SELECT * FROM rewards WHERE id = $1 AND user_id = $2", rewardID, userID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: reward %s", ErrNotFound, rewardID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reward: %w", err)
	}

	// The claimed = FALSE guard makes the flip atomic under concurrent
	// claims; the SELECT above is only for the friendlier error.
	result, err := db.Exec("UPDATE rewards SET claimed = TRUE WHERE id = $1 AND claimed = FALSE", rewardID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim reward: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read claim result: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: reward %q already claimed", ErrConflict, reward.Title)
	}

	reward.Claimed = true
	return &reward, nil
}
