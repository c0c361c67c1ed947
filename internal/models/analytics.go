package models

// Period selects the analytics lookback window.
type Period string

const (
	PeriodWeek  Period = "week"  // 7 days
	PeriodMonth Period = "month" // 30 days
	PeriodYear  Period = "year"  // 365 days
)

// Days returns the lookback window length, or 0 for an unknown period.
func (p Period) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	case PeriodYear:
		return 365
	}
	return 0
}

// TypeTotals sums one waste type inside a window.
type TypeTotals struct {
	Weight   float64 `json:"weight"`
	Points   int     `json:"points"`
	Co2Saved float64 `json:"co2Saved"`
}

// DailyPoint is one calendar day (UTC) in the dailyData series.
type DailyPoint struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Weight   float64 `json:"weight"`
	Points   int     `json:"points"`
	Co2Saved float64 `json:"co2Saved"`
}

// AnalyticsSnapshot is the aggregate view over one period.
type AnalyticsSnapshot struct {
	Period               Period                   `json:"period"`
	ByType               map[WasteType]TypeTotals `json:"byType"`
	TotalWeight          float64                  `json:"totalWeight"`
	TotalPoints          int                      `json:"totalPoints"`
	TotalCo2Saved        float64                  `json:"totalCo2Saved"`
	TotalLandfillReduced float64                  `json:"totalLandfillReduced"`
	DailyData            []DailyPoint             `json:"dailyData"`
}

// LeaderboardRow is one ranked user in a period.
type LeaderboardRow struct {
	UserID      string  `json:"user_id" db:"user_id"`
	Name        string  `json:"name" db:"name"`
	Points      int     `json:"points" db:"points"`
	TotalWeight float64 `json:"total_weight" db:"total_weight"`
	Rank        int     `json:"rank"`
}

// TrendDirection classifies a waste-generation series.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// Prediction is the next-week forecast for one waste type.
type Prediction struct {
	NextWeek   float64        `json:"nextWeek"` // kg
	Trend      TrendDirection `json:"trend"`
	Confidence int            `json:"confidence"` // 40..95
}
