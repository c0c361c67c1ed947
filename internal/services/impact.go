package services

import (
	"fmt"
	"math"

	"ecotrack-backend/internal/models"
)

// Impact is the derived environmental metrics for one waste entry.
type Impact struct {
	Points          int     `json:"points"`
	Co2Saved        float64 `json:"co2_saved"`        // kg CO2 avoided
	LandfillReduced float64 `json:"landfill_reduced"` // kg kept out of landfill
}

// Points are a flat 10 per kg regardless of type. Kept uniform on purpose:
// existing stored entries were scored this way and are never recomputed.
const pointsPerKg = 10

// Per-type impact coefficients, kg per kg of waste. Version 1, fixed at
// entry-creation time; changing these must not rewrite stored entries.
var co2PerKg = map[models.WasteType]float64{
	models.WastePlastic:    2.5,
	models.WasteOrganic:    0.5,
	models.WastePaper:      1.8,
	models.WasteGlass:      0.3,
	models.WasteMetal:      4.0,
	models.WasteElectronic: 6.0,
}

var landfillPerKg = map[models.WasteType]float64{
	models.WastePlastic:    0.9,
	models.WasteOrganic:    0.8,
	models.WastePaper:      0.85,
	models.WasteGlass:      0.95,
	models.WasteMetal:      0.9,
	models.WasteElectronic: 0.7,
}

// ComputeImpact converts a logged weight into points, CO2 saved and landfill
// reduced. Pure; the result is embedded into the entry at creation time.
func ComputeImpact(wasteType models.WasteType, weight float64) (Impact, error) {
	if !wasteType.Valid() {
		return Impact{}, fmt.Errorf("%w: unknown waste type %q", ErrInvalidInput, wasteType)
	}
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return Impact{}, fmt.Errorf("%w: weight must be a positive number, got %v", ErrInvalidInput, weight)
	}

	return Impact{
		Points:          int(math.Round(weight * pointsPerKg)),
		Co2Saved:        weight * co2PerKg[wasteType],
		LandfillReduced: weight * landfillPerKg[wasteType],
	}, nil
}
