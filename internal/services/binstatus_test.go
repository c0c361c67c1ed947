package services

import (
	"testing"

	"ecotrack-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionBinStatus(t *testing.T) {
	tests := []struct {
		name       string
		level      float64
		capacity   float64
		current    models.BinStatus
		wantStatus models.BinStatus
		wantAlert  bool
	}{
		{"70% is normal", 70, 100, models.BinNormal, models.BinNormal, false},
		{"75% hits warning", 75, 100, models.BinNormal, models.BinWarning, false},
		{"80% stays warning", 80, 100, models.BinWarning, models.BinWarning, false},
		{"89.9% still warning", 89.9, 100, models.BinWarning, models.BinWarning, false},
		{"90% crosses into full", 90, 100, models.BinWarning, models.BinFull, true},
		{"95% from normal alerts", 95, 100, models.BinNormal, models.BinFull, true},
		{"already full does not re-alert", 95, 100, models.BinFull, models.BinFull, false},
		{"overfill reported as full", 150, 100, models.BinNormal, models.BinFull, true},
		{"collection resets to normal", 0, 100, models.BinFull, models.BinNormal, false},
		{"non-100 capacity", 45, 50, models.BinNormal, models.BinFull, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, becameFull, err := TransitionBinStatus(tt.level, tt.capacity, tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantAlert, becameFull)
		})
	}
}

func TestTransitionBinStatusMaintenanceSticky(t *testing.T) {
	// Sensor readings must not pull a bin out of maintenance, even at 100%.
	for _, level := range []float64{0, 50, 80, 100, 120} {
		status, becameFull, err := TransitionBinStatus(level, 100, models.BinMaintenance)
		require.NoError(t, err)
		assert.Equal(t, models.BinMaintenance, status)
		assert.False(t, becameFull)
	}
}

func TestTransitionBinStatusInvalidCapacity(t *testing.T) {
	for _, capacity := range []float64{0, -10} {
		_, _, err := TransitionBinStatus(50, capacity, models.BinNormal)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	}
}
