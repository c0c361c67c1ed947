package models

import "time"

// WasteType is the closed set of waste categories the system tracks.
type WasteType string

const (
	WastePlastic    WasteType = "plastic"
	WasteOrganic    WasteType = "organic"
	WastePaper      WasteType = "paper"
	WasteGlass      WasteType = "glass"
	WasteMetal      WasteType = "metal"
	WasteElectronic WasteType = "electronic"
)

// WasteTypes lists every category in declaration order.
var WasteTypes = []WasteType{
	WastePlastic,
	WasteOrganic,
	WastePaper,
	WasteGlass,
	WasteMetal,
	WasteElectronic,
}

// Valid reports whether t is one of the six known categories.
func (t WasteType) Valid() bool {
	switch t {
	case WastePlastic, WasteOrganic, WastePaper, WasteGlass, WasteMetal, WasteElectronic:
		return true
	}
	return false
}

type WasteEntry struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	WasteType       WasteType `json:"waste_type" db:"waste_type"`
	Weight          float64   `json:"weight" db:"weight"`
	Points          int       `json:"points" db:"points"`
	Co2Saved        float64   `json:"co2_saved" db:"co2_saved"`
	LandfillReduced float64   `json:"landfill_reduced" db:"landfill_reduced"`
	AiClassified    bool      `json:"ai_classified" db:"ai_classified"`
	AiConfidence    *float64  `json:"ai_confidence,omitempty" db:"ai_confidence"`
	Location        *string   `json:"location,omitempty" db:"location"`
	CreatedAt       int64     `json:"created_at" db:"created_at"` // Unix timestamp
}

// WasteEntryResponse is what we send to the client with ISO timestamps
type WasteEntryResponse struct {
	ID              string    `json:"id"`
	WasteType       WasteType `json:"waste_type"`
	Weight          float64   `json:"weight"`
	Points          int       `json:"points"`
	Co2Saved        float64   `json:"co2_saved"`
	LandfillReduced float64   `json:"landfill_reduced"`
	AiClassified    bool      `json:"ai_classified"`
	AiConfidence    *float64  `json:"ai_confidence,omitempty"`
	Location        *string   `json:"location,omitempty"`
	CreatedAtIso    string    `json:"createdAtIso"`
}

// LogWasteRequest is the request body for POST /api/waste
type LogWasteRequest struct {
	WasteType    WasteType `json:"waste_type"`
	Weight       float64   `json:"weight"`
	Location     *string   `json:"location,omitempty"`
	AiClassified bool      `json:"ai_classified"`
	AiConfidence *float64  `json:"ai_confidence,omitempty"`
}

func (e *WasteEntry) ToWasteEntryResponse() WasteEntryResponse {
	return WasteEntryResponse{
		ID:              e.ID,
		WasteType:       e.WasteType,
		Weight:          e.Weight,
		Points:          e.Points,
		Co2Saved:        e.Co2Saved,
		LandfillReduced: e.LandfillReduced,
		AiClassified:    e.AiClassified,
		AiConfidence:    e.AiConfidence,
		Location:        e.Location,
		CreatedAtIso:    time.Unix(e.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
}
