package models

type EcoFact struct {
	ID          int    `json:"id" db:"id"`
	Fact        string `json:"fact" db:"fact"`
	Category    string `json:"category" db:"category"` // waste type or "general"
	ForChildren bool   `json:"for_children" db:"for_children"`
	Icon        string `json:"icon" db:"icon"`
}

// ClassifierSample is one piece of verified training data for the classifier.
type ClassifierSample struct {
	ID            int       `json:"id" db:"id"`
	ActualType    WasteType `json:"actual_type" db:"actual_type"`
	PredictedType *string   `json:"predicted_type,omitempty" db:"predicted_type"`
	Confidence    *float64  `json:"confidence,omitempty" db:"confidence"`
	Verified      bool      `json:"verified" db:"verified"`
	CreatedAt     int64     `json:"created_at" db:"created_at"`
}
