package services

import (
	"testing"
	"time"

	"ecotrack-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(created time.Time, wasteType models.WasteType, weight float64) models.WasteEntry {
	impact, _ := ComputeImpact(wasteType, weight)
	return models.WasteEntry{
		WasteType:       wasteType,
		Weight:          weight,
		Points:          impact.Points,
		Co2Saved:        impact.Co2Saved,
		LandfillReduced: impact.LandfillReduced,
		CreatedAt:       created.Unix(),
	}
}

func TestAggregateWeek(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	entries := []models.WasteEntry{
		entryAt(now.AddDate(0, 0, -1), models.WastePlastic, 2.0),
		entryAt(now.AddDate(0, 0, -3), models.WasteOrganic, 1.5),
		entryAt(now.AddDate(0, 0, -3), models.WastePlastic, 1.0),
	}

	snapshot, err := Aggregate(entries, models.PeriodWeek, now)
	require.NoError(t, err)

	assert.Equal(t, models.PeriodWeek, snapshot.Period)
	assert.InDelta(t, 4.5, snapshot.TotalWeight, 1e-9)
	assert.Equal(t, 45, snapshot.TotalPoints)
	assert.InDelta(t, 2.0*2.5+1.5*0.5+1.0*2.5, snapshot.TotalCo2Saved, 1e-9)
	assert.InDelta(t, 2.0*0.9+1.5*0.8+1.0*0.9, snapshot.TotalLandfillReduced, 1e-9)

	plastic := snapshot.ByType[models.WastePlastic]
	assert.InDelta(t, 3.0, plastic.Weight, 1e-9)
	assert.Equal(t, 30, plastic.Points)

	// One point per window day, oldest first, zeros where nothing was logged.
	require.Len(t, snapshot.DailyData, 7)
	assert.Equal(t, "2026-03-04", snapshot.DailyData[0].Date)
	assert.Equal(t, "2026-03-10", snapshot.DailyData[6].Date)

	nonZero := 0
	for _, point := range snapshot.DailyData {
		if point.Weight > 0 {
			nonZero++
		}
	}
	assert.Equal(t, 2, nonZero)

	// The two same-day entries share one bucket.
	assert.Equal(t, "2026-03-07", snapshot.DailyData[3].Date)
	assert.InDelta(t, 2.5, snapshot.DailyData[3].Weight, 1e-9)
}

func TestAggregateExcludesOutsideWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	entries := []models.WasteEntry{
		entryAt(now.AddDate(0, 0, -10), models.WastePlastic, 5.0), // before cutoff
		entryAt(now.Add(time.Hour), models.WastePlastic, 5.0),     // in the future
		entryAt(now.AddDate(0, 0, -2), models.WastePlastic, 1.0),
	}

	snapshot, err := Aggregate(entries, models.PeriodWeek, now)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, snapshot.TotalWeight, 1e-9)
	assert.Equal(t, 10, snapshot.TotalPoints)
}

func TestAggregateDailySeriesSumsToTotals(t *testing.T) {
	// An entry earlier on the calendar day the window opens must land in a
	// daily bucket or be excluded entirely, never counted in the totals
	// while missing from the series.
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	entries := []models.WasteEntry{
		entryAt(time.Date(2026, 3, 3, 16, 0, 0, 0, time.UTC), models.WastePlastic, 2.0),
		entryAt(time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC), models.WasteOrganic, 1.0),
		entryAt(now.AddDate(0, 0, -2), models.WastePaper, 0.5),
	}

	snapshot, err := Aggregate(entries, models.PeriodWeek, now)
	require.NoError(t, err)

	// The window opens at the start of 2026-03-04; the March 3 entry is out.
	assert.InDelta(t, 1.5, snapshot.TotalWeight, 1e-9)
	assert.NotContains(t, snapshot.ByType, models.WastePlastic)

	require.Len(t, snapshot.DailyData, 7)
	assert.Equal(t, "2026-03-04", snapshot.DailyData[0].Date)
	assert.InDelta(t, 1.0, snapshot.DailyData[0].Weight, 1e-9)

	dailyWeight := 0.0
	dailyPoints := 0
	for _, point := range snapshot.DailyData {
		dailyWeight += point.Weight
		dailyPoints += point.Points
	}
	assert.InDelta(t, snapshot.TotalWeight, dailyWeight, 1e-9)
	assert.Equal(t, snapshot.TotalPoints, dailyPoints)
}

func TestAggregateEmpty(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	snapshot, err := Aggregate(nil, models.PeriodMonth, now)
	require.NoError(t, err)
	assert.Zero(t, snapshot.TotalWeight)
	assert.Empty(t, snapshot.ByType)
	assert.Len(t, snapshot.DailyData, 30)
}

func TestAggregateUnknownPeriod(t *testing.T) {
	_, err := Aggregate(nil, "decade", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRankTieBreaks(t *testing.T) {
	rows := []models.LeaderboardRow{
		{UserID: "c", Name: "Carol", Points: 100, TotalWeight: 5},
		{UserID: "a", Name: "Alice", Points: 100, TotalWeight: 5},
		{UserID: "b", Name: "Bob", Points: 100, TotalWeight: 8},
		{UserID: "d", Name: "Dan", Points: 200, TotalWeight: 1},
	}

	ranked := Rank(rows, 0)
	require.Len(t, ranked, 4)

	// Points desc, then weight desc, then user ID asc.
	assert.Equal(t, "d", ranked[0].UserID)
	assert.Equal(t, "b", ranked[1].UserID)
	assert.Equal(t, "a", ranked[2].UserID)
	assert.Equal(t, "c", ranked[3].UserID)

	for i, row := range ranked {
		assert.Equal(t, i+1, row.Rank)
	}
}

func TestRankLimit(t *testing.T) {
	rows := []models.LeaderboardRow{
		{UserID: "a", Points: 30},
		{UserID: "b", Points: 20},
		{UserID: "c", Points: 10},
	}

	ranked := Rank(rows, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].UserID)
	assert.Equal(t, 2, ranked[1].Rank)

	// Input order untouched.
	assert.Equal(t, "a", rows[0].UserID)
	assert.Zero(t, rows[0].Rank)
}

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		points int
		level  int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{1999, 2},
		{2000, 3},
		{10500, 11},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelForPoints(tt.points), "points=%d", tt.points)
	}
}
