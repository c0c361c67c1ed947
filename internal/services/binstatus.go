package services

import (
	"fmt"

	"ecotrack-backend/internal/models"
)

// Fill thresholds in percent. First match wins.
const (
	binFullThreshold    = 90
	binWarningThreshold = 75
)

// TransitionBinStatus recomputes a bin's status from its fill level.
// The returned bool reports whether this update crossed into "full" — the
// alert signal the caller fans out to admins.
//
// "maintenance" is an operator-set state this function never enters or
// leaves: while the current status is maintenance the level-derived status
// is not applied and no alert fires. ClearMaintenance (an operator action in
// the bins handler) resumes level-driven transitions.
//
// Levels above capacity are reported as full, not clamped and not an error.
func TransitionBinStatus(currentLevel, capacity float64, current models.BinStatus) (models.BinStatus, bool, error) {
	if capacity <= 0 {
		return "", false, fmt.Errorf("%w: bin capacity must be positive, got %v", ErrInvalidConfiguration, capacity)
	}

	if current == models.BinMaintenance {
		return models.BinMaintenance, false, nil
	}

	percentage := currentLevel / capacity * 100

	status := models.BinNormal
	if percentage >= binFullThreshold {
		status = models.BinFull
	} else if percentage >= binWarningThreshold {
		status = models.BinWarning
	}

	becameFull := status == models.BinFull && current != models.BinFull
	return status, becameFull, nil
}
