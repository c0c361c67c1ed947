package models

// RewardCategory is the closed set of reward buckets.
type RewardCategory string

const (
	CategoryDaily     RewardCategory = "daily"
	CategoryWeekly    RewardCategory = "weekly"
	CategoryMilestone RewardCategory = "milestone"
	CategorySpecial   RewardCategory = "special"
)

type Reward struct {
	ID          string         `json:"id" db:"id"`
	UserID      string         `json:"user_id" db:"user_id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Points      int            `json:"points" db:"points"`
	Category    RewardCategory `json:"category" db:"category"`
	Claimed     bool           `json:"claimed" db:"claimed"`
	CreatedAt   int64          `json:"created_at" db:"created_at"`
}
