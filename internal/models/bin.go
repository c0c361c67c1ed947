package models

import "time"

// BinStatus is the discrete fill-level classification of a collection bin.
type BinStatus string

const (
	BinNormal      BinStatus = "normal"
	BinWarning     BinStatus = "warning"
	BinFull        BinStatus = "full"
	BinMaintenance BinStatus = "maintenance"
)

type Bin struct {
	ID             string    `json:"id" db:"id"`
	Location       string    `json:"location" db:"location"`
	WasteType      WasteType `json:"waste_type" db:"waste_type"`
	Capacity       float64   `json:"capacity" db:"capacity"`
	CurrentLevel   float64   `json:"current_level" db:"current_level"`
	LastCollection int64     `json:"last_collection" db:"last_collection"` // Unix timestamp
	SensorID       string    `json:"sensor_id" db:"sensor_id"`
	Status         BinStatus `json:"status" db:"status"`
	CreatedAt      int64     `json:"created_at" db:"created_at"`
	UpdatedAt      int64     `json:"updated_at" db:"updated_at"`
}

// BinResponse is what we send to the client with ISO timestamps
type BinResponse struct {
	ID                string    `json:"id"`
	Location          string    `json:"location"`
	WasteType         WasteType `json:"waste_type"`
	Capacity          float64   `json:"capacity"`
	CurrentLevel      float64   `json:"current_level"`
	FillPercentage    float64   `json:"fill_percentage"`
	LastCollectionIso string    `json:"lastCollectionIso"`
	SensorID          string    `json:"sensor_id"`
	Status            BinStatus `json:"status"`
}

// CreateBinRequest is the request body for POST /api/admin/bins
type CreateBinRequest struct {
	Location  string    `json:"location"`
	WasteType WasteType `json:"waste_type"`
	Capacity  float64   `json:"capacity"`
	SensorID  string    `json:"sensor_id"`
}

// UpdateBinLevelRequest is the request body for PATCH /api/bins/:id/level
type UpdateBinLevelRequest struct {
	CurrentLevel float64 `json:"current_level"`
}

func (b *Bin) ToBinResponse() BinResponse {
	pct := 0.0
	if b.Capacity > 0 {
		pct = b.CurrentLevel / b.Capacity * 100
	}
	return BinResponse{
		ID:                b.ID,
		Location:          b.Location,
		WasteType:         b.WasteType,
		Capacity:          b.Capacity,
		CurrentLevel:      b.CurrentLevel,
		FillPercentage:    pct,
		LastCollectionIso: time.Unix(b.LastCollection, 0).UTC().Format(time.RFC3339),
		SensorID:          b.SensorID,
		Status:            b.Status,
	}
}
