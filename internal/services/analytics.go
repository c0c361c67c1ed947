package services

import (
	"fmt"
	"sort"
	"time"

	"ecotrack-backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// All bucketing is by UTC calendar day so the same entry set always produces
// the same snapshot regardless of server timezone.
const dayFormat = "2006-01-02"

// Aggregate buckets entries into an AnalyticsSnapshot over the period ending
// at now. Entries outside the lookback window are excluded. dailyData covers
// every day of the window in ascending order; days without entries carry
// zero values so charts get a stable x-axis.
//
// The window is today plus the previous days-1 calendar days: the cutoff
// sits on a day boundary so the daily series always sums to the totals.
func Aggregate(entries []models.WasteEntry, period models.Period, now time.Time) (models.AnalyticsSnapshot, error) {
	days := period.Days()
	if days == 0 {
		return models.AnalyticsSnapshot{}, fmt.Errorf("%w: unknown period %q", ErrInvalidInput, period)
	}

	now = now.UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))

	snapshot := models.AnalyticsSnapshot{
		Period: period,
		ByType: make(map[models.WasteType]models.TypeTotals),
	}

	daily := make(map[string]*models.DailyPoint)
	for _, e := range entries {
		created := time.Unix(e.CreatedAt, 0).UTC()
		if created.Before(cutoff) || created.After(now) {
			continue
		}

		totals := snapshot.ByType[e.WasteType]
		totals.Weight += e.Weight
		totals.Points += e.Points
		totals.Co2Saved += e.Co2Saved
		snapshot.ByType[e.WasteType] = totals

		snapshot.TotalWeight += e.Weight
		snapshot.TotalPoints += e.Points
		snapshot.TotalCo2Saved += e.Co2Saved
		snapshot.TotalLandfillReduced += e.LandfillReduced

		day := created.Format(dayFormat)
		point, ok := daily[day]
		if !ok {
			point = &models.DailyPoint{Date: day}
			daily[day] = point
		}
		point.Weight += e.Weight
		point.Points += e.Points
		point.Co2Saved += e.Co2Saved
	}

	// Gap-fill: one point per window day, zeros where nothing was logged.
	snapshot.DailyData = make([]models.DailyPoint, 0, days)
	for i := 0; i < days; i++ {
		day := cutoff.AddDate(0, 0, i).Format(dayFormat)
		if point, ok := daily[day]; ok {
			snapshot.DailyData = append(snapshot.DailyData, *point)
		} else {
			snapshot.DailyData = append(snapshot.DailyData, models.DailyPoint{Date: day})
		}
	}

	return snapshot, nil
}

// Rank orders rows by points earned in the period, breaking ties by total
// weight then user ID so the ordering is fully deterministic, and returns
// the top limit rows with 1-based ranks filled in.
func Rank(rows []models.LeaderboardRow, limit int) []models.LeaderboardRow {
	ranked := make([]models.LeaderboardRow, len(rows))
	copy(ranked, rows)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		if ranked[i].TotalWeight != ranked[j].TotalWeight {
			return ranked[i].TotalWeight > ranked[j].TotalWeight
		}
		return ranked[i].UserID < ranked[j].UserID
	})

	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// FetchLeaderboard aggregates per-user points over the period in SQL and
// ranks the result. Users with no entries in the window are omitted.
func FetchLeaderboard(db *sqlx.DB, period models.Period, limit int) ([]models.LeaderboardRow, error) {
	days := period.Days()
	if days == 0 {
		return nil, fmt.Errorf("%w: unknown period %q", ErrInvalidInput, period)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days).Unix()

	var rows []models.LeaderboardRow
	err := db.Select(&rows, `
		SELECT u.id                        AS user_id,
		       u.name                      AS name,
		       COALESCE(SUM(e.points), 0) AS points,
		       COALESCE(SUM(e.weight), 0) AS total_weight
		FROM users u
		JOIN waste_entries e ON e.user_id = u.id
		WHERE e.created_at >= $1
		GROUP BY u.id, u.name
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}

	return Rank(rows, limit), nil
}

// LevelForPoints maps a running point total to a profile level. One level
// per 1000 points, starting at 1.
func LevelForPoints(totalPoints int) int {
	return totalPoints/1000 + 1
}
