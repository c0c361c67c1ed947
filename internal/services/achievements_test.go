package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(rules []AchievementRule) []string {
	var out []string
	for _, r := range rules {
		out = append(out, r.Title)
	}
	return out
}

func TestNewlyUnlockedFirstEntry(t *testing.T) {
	stats := UserStats{TotalEntries: 1, TotalWeight: 0.5, TotalPoints: 5}
	unlocked := NewlyUnlocked(stats, nil)

	require.Len(t, unlocked, 1)
	assert.Equal(t, "First Steps", unlocked[0].Title)
	assert.Equal(t, 50, unlocked[0].Points)
}

func TestNewlyUnlockedRuleIsolation(t *testing.T) {
	tests := []struct {
		name  string
		stats UserStats
		want  []string
	}{
		{
			"nothing logged",
			UserStats{},
			nil,
		},
		{
			"entry count only",
			UserStats{TotalEntries: 10, TotalWeight: 2, TotalPoints: 20},
			[]string{"First Steps", "Getting Started"},
		},
		{
			"weight milestone without entry milestones",
			UserStats{TotalEntries: 3, TotalWeight: 12, TotalPoints: 120},
			[]string{"First Steps", "10kg Milestone"},
		},
		{
			"points milestone",
			UserStats{TotalEntries: 5, TotalWeight: 8, TotalPoints: 1000},
			[]string{"First Steps", "Point Master"},
		},
		{
			"everything at once",
			UserStats{TotalEntries: 50, TotalWeight: 40, TotalPoints: 1500},
			[]string{"First Steps", "Getting Started", "Eco Warrior", "10kg Milestone", "Point Master"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unlocked := NewlyUnlocked(tt.stats, nil)
			assert.Equal(t, tt.want, titles(unlocked))
		})
	}
}

func TestNewlyUnlockedSkipsGranted(t *testing.T) {
	stats := UserStats{TotalEntries: 10, TotalWeight: 2, TotalPoints: 120}
	existing := map[string]bool{"First Steps": true}

	unlocked := NewlyUnlocked(stats, existing)
	assert.Equal(t, []string{"Getting Started"}, titles(unlocked))
}

func TestNewlyUnlockedIdempotent(t *testing.T) {
	// Re-evaluating with unchanged stats after granting must yield nothing.
	stats := UserStats{TotalEntries: 50, TotalWeight: 40, TotalPoints: 1500}

	existing := make(map[string]bool)
	for _, rule := range NewlyUnlocked(stats, existing) {
		existing[rule.Title] = true
	}

	assert.Empty(t, NewlyUnlocked(stats, existing))
}

func TestAchievementRulesDeclarationOrder(t *testing.T) {
	want := []string{"First Steps", "Getting Started", "Eco Warrior", "10kg Milestone", "Point Master"}
	assert.Equal(t, want, titles(AchievementRules))
}
