package services

import (
	"testing"
	"time"

	"ecotrack-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictTrendsIncreasing(t *testing.T) {
	// Steadily growing daily weights over the full window.
	series := make(DailySeries, 14)
	for i := range series {
		series[i] = 0.5 + float64(i)*0.2
	}

	predictions := PredictTrends(map[models.WasteType]DailySeries{
		models.WastePlastic: series,
	})

	p, ok := predictions[models.WastePlastic]
	require.True(t, ok)
	assert.Equal(t, models.TrendIncreasing, p.Trend)
	assert.InDelta(t, mean(series)*7, p.NextWeek, 1e-9)
	assert.GreaterOrEqual(t, p.Confidence, confidenceMin)
	assert.LessOrEqual(t, p.Confidence, confidenceMax)
}

func TestPredictTrendsDecreasing(t *testing.T) {
	series := make(DailySeries, 14)
	for i := range series {
		series[i] = 3.0 - float64(i)*0.2
	}

	predictions := PredictTrends(map[models.WasteType]DailySeries{
		models.WasteOrganic: series,
	})

	p, ok := predictions[models.WasteOrganic]
	require.True(t, ok)
	assert.Equal(t, models.TrendDecreasing, p.Trend)
}

func TestPredictTrendsStable(t *testing.T) {
	series := make(DailySeries, 14)
	for i := range series {
		series[i] = 1.0
	}

	predictions := PredictTrends(map[models.WasteType]DailySeries{
		models.WastePaper: series,
	})

	p, ok := predictions[models.WastePaper]
	require.True(t, ok)
	assert.Equal(t, models.TrendStable, p.Trend)
	assert.InDelta(t, 7.0, p.NextWeek, 1e-9)
	// Constant series: full data, zero variation.
	assert.Equal(t, 92, p.Confidence)
}

func TestPredictTrendsOmitsSparseTypes(t *testing.T) {
	single := make(DailySeries, 14)
	single[5] = 2.0

	empty := make(DailySeries, 14)

	pair := make(DailySeries, 14)
	pair[2] = 1.0
	pair[10] = 1.5

	predictions := PredictTrends(map[models.WasteType]DailySeries{
		models.WasteGlass: single,
		models.WasteMetal: empty,
		models.WastePaper: pair,
	})

	assert.NotContains(t, predictions, models.WasteGlass)
	assert.NotContains(t, predictions, models.WasteMetal)
	assert.Contains(t, predictions, models.WastePaper)
}

func TestPredictTrendsNewActivity(t *testing.T) {
	// Empty earlier half, data only in the later half: increasing.
	series := make(DailySeries, 14)
	series[9] = 1.0
	series[12] = 2.0

	predictions := PredictTrends(map[models.WasteType]DailySeries{
		models.WastePlastic: series,
	})

	p, ok := predictions[models.WastePlastic]
	require.True(t, ok)
	assert.Equal(t, models.TrendIncreasing, p.Trend)
}

func TestPredictTrendsConfidenceBounds(t *testing.T) {
	// Extremely spiky series must clamp at the floor, not go below it.
	spiky := make(DailySeries, 14)
	spiky[0] = 0.1
	spiky[13] = 50.0

	predictions := PredictTrends(map[models.WasteType]DailySeries{
		models.WasteElectronic: spiky,
	})

	p, ok := predictions[models.WasteElectronic]
	require.True(t, ok)
	assert.Equal(t, confidenceMin, p.Confidence)
}

func TestPredictTrendsTruncatesLongSeries(t *testing.T) {
	// Only the most recent 14 days count: a huge spike 20 days back must
	// not influence the forecast.
	series := make(DailySeries, 20)
	series[0] = 1000.0
	for i := 6; i < 20; i++ {
		series[i] = 1.0
	}

	predictions := PredictTrends(map[models.WasteType]DailySeries{
		models.WastePlastic: series,
	})

	p, ok := predictions[models.WastePlastic]
	require.True(t, ok)
	assert.InDelta(t, 7.0, p.NextWeek, 1e-9)
	assert.Equal(t, models.TrendStable, p.Trend)
}

func TestDailyWeightSeries(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC).Unix()

	entries := []models.WasteEntry{
		{WasteType: models.WastePlastic, Weight: 1.0, CreatedAt: now - 2*86400},
		{WasteType: models.WastePlastic, Weight: 0.5, CreatedAt: now - 2*86400 + 3600},
		{WasteType: models.WasteOrganic, Weight: 2.0, CreatedAt: now - 86400},
		{WasteType: models.WasteGlass, Weight: 9.0, CreatedAt: now - 20*86400}, // outside window
	}

	series := DailyWeightSeries(entries, now)

	require.Contains(t, series, models.WastePlastic)
	require.Contains(t, series, models.WasteOrganic)
	assert.NotContains(t, series, models.WasteGlass)

	plastic := series[models.WastePlastic]
	require.Len(t, plastic, 14)

	// Same-day entries accumulate in one slot.
	total := 0.0
	for _, w := range plastic {
		total += w
	}
	assert.InDelta(t, 1.5, total, 1e-9)
}
