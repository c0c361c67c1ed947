package services

import (
	"math"
	"testing"

	"ecotrack-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeImpact(t *testing.T) {
	tests := []struct {
		name         string
		wasteType    models.WasteType
		weight       float64
		wantPoints   int
		wantCo2      float64
		wantLandfill float64
	}{
		{"plastic 1kg", models.WastePlastic, 1.0, 10, 2.5, 0.9},
		{"plastic 2.5kg", models.WastePlastic, 2.5, 25, 6.25, 2.25},
		{"organic 1kg", models.WasteOrganic, 1.0, 10, 0.5, 0.8},
		{"paper 1kg", models.WastePaper, 1.0, 10, 1.8, 0.85},
		{"glass 1kg", models.WasteGlass, 1.0, 10, 0.3, 0.95},
		{"metal 1kg", models.WasteMetal, 1.0, 10, 4.0, 0.9},
		{"electronic 1kg", models.WasteElectronic, 1.0, 10, 6.0, 0.7},
		{"rounds half up", models.WastePlastic, 0.25, 3, 0.625, 0.225},
		{"tiny weight rounds down", models.WasteOrganic, 0.04, 0, 0.02, 0.032},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			impact, err := ComputeImpact(tt.wasteType, tt.weight)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPoints, impact.Points)
			assert.InDelta(t, tt.wantCo2, impact.Co2Saved, 1e-9)
			assert.InDelta(t, tt.wantLandfill, impact.LandfillReduced, 1e-9)
		})
	}
}

func TestComputeImpactDeterministic(t *testing.T) {
	first, err := ComputeImpact(models.WasteMetal, 3.7)
	require.NoError(t, err)
	second, err := ComputeImpact(models.WasteMetal, 3.7)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeImpactInvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		wasteType models.WasteType
		weight    float64
	}{
		{"unknown type", "cardboard", 1.0},
		{"empty type", "", 1.0},
		{"zero weight", models.WastePlastic, 0},
		{"negative weight", models.WastePlastic, -2},
		{"NaN weight", models.WastePlastic, math.NaN()},
		{"positive infinity", models.WastePlastic, math.Inf(1)},
		{"negative infinity", models.WastePlastic, math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeImpact(tt.wasteType, tt.weight)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
