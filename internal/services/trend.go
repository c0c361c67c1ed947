package services

import (
	"math"

	"ecotrack-backend/internal/models"
)

// Forecast parameters. The window is the most recent 14 gap-filled daily
// weights; confidence saturates at [40, 95] so tiny samples never report
// certainty or uselessness.
const (
	trendWindowDays = 14
	trendThreshold  = 0.05 // 5% relative change between window halves

	confidenceMin = 40
	confidenceMax = 95
)

// DailySeries is an ascending, gap-filled sequence of daily weights (kg) for
// one waste type.
type DailySeries []float64

// PredictTrends forecasts next week's weight per waste type and classifies
// the direction. Types whose series has fewer than 2 days with data are
// omitted rather than given a meaningless forecast.
func PredictTrends(seriesPerType map[models.WasteType]DailySeries) map[models.WasteType]models.Prediction {
	predictions := make(map[models.WasteType]models.Prediction)

	for wasteType, series := range seriesPerType {
		if len(series) > trendWindowDays {
			series = series[len(series)-trendWindowDays:]
		}

		dataPoints := 0
		for _, w := range series {
			if w > 0 {
				dataPoints++
			}
		}
		if dataPoints < 2 {
			continue
		}

		predictions[wasteType] = models.Prediction{
			NextWeek:   mean(series) * 7,
			Trend:      classifyTrend(series),
			Confidence: confidence(series, dataPoints),
		}
	}

	return predictions
}

// classifyTrend compares the later half of the window to the earlier half.
// Movement within ±5% of the earlier average counts as stable.
func classifyTrend(series DailySeries) models.TrendDirection {
	half := len(series) / 2
	earlier := mean(series[:half])
	later := mean(series[half:])

	if earlier == 0 {
		if later > 0 {
			return models.TrendIncreasing
		}
		return models.TrendStable
	}

	change := (later - earlier) / earlier
	switch {
	case change > trendThreshold:
		return models.TrendIncreasing
	case change < -trendThreshold:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

// confidence grows with the number of days that have data and shrinks with
// the coefficient of variation of the window, clamped to [40, 95].
func confidence(series DailySeries, dataPoints int) int {
	m := mean(series)
	cv := 0.0
	if m > 0 {
		cv = stddev(series, m) / m
	}

	score := 50 + 3*dataPoints - int(math.Round(60*cv))
	if score < confidenceMin {
		return confidenceMin
	}
	if score > confidenceMax {
		return confidenceMax
	}
	return score
}

func mean(series DailySeries) float64 {
	if len(series) == 0 {
		return 0
	}
	sum := 0.0
	for _, w := range series {
		sum += w
	}
	return sum / float64(len(series))
}

func stddev(series DailySeries, m float64) float64 {
	if len(series) < 2 {
		return 0
	}
	sum := 0.0
	for _, w := range series {
		d := w - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(series)))
}

// DailyWeightSeries builds the per-type gap-filled input for PredictTrends
// from a window's dailyData plus the raw entries (dailyData alone loses the
// per-type split).
func DailyWeightSeries(entries []models.WasteEntry, now int64) map[models.WasteType]DailySeries {
	cutoff := now - trendWindowDays*86400

	series := make(map[models.WasteType]DailySeries)
	for _, e := range entries {
		if e.CreatedAt < cutoff || e.CreatedAt > now {
			continue
		}
		s, ok := series[e.WasteType]
		if !ok {
			s = make(DailySeries, trendWindowDays)
			series[e.WasteType] = s
		}
		day := int((e.CreatedAt - cutoff) / 86400)
		if day >= trendWindowDays {
			day = trendWindowDays - 1
		}
		s[day] += e.Weight
	}

	return series
}
