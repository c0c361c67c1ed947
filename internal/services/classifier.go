package services

import (
	"fmt"
	"math/rand"

	"ecotrack-backend/internal/models"
)

// Classification is the outcome of classifying a waste photo.
type Classification struct {
	WasteType   models.WasteType `json:"waste_type"`
	Confidence  float64          `json:"confidence"`
	Suggestions []string         `json:"suggestions"`
}

// Classifier turns an uploaded image into a waste type guess. The core only
// depends on this interface so a real vision model can be swapped in without
// touching the logging path.
type Classifier interface {
	Classify(imageID string) (Classification, error)
}

// RandomClassifier is the simulated classifier: a uniformly random type with
// 70-95% confidence. It stands in until a real model exists.
type RandomClassifier struct{}

func (RandomClassifier) Classify(imageID string) (Classification, error) {
	wasteType := models.WasteTypes[rand.Intn(len(models.WasteTypes))]
	conf := 0.7 + rand.Float64()*0.25
	conf = float64(int(conf*100)) / 100

	return Classification{
		WasteType:  wasteType,
		Confidence: conf,
		Suggestions: []string{
			fmt.Sprintf("This appears to be %s waste", wasteType),
			fmt.Sprintf("Confidence: %d%%", int(conf*100)),
			"Please verify the classification before logging",
		},
	}, nil
}

// Insights holds the personalized summary strings shown on the dashboard.
type Insights struct {
	Insights []string `json:"insights"`
	Tips     []string `json:"tips"`
}

// GenerateInsights summarizes a user's recent entries into display strings.
// Empty history gets the onboarding copy instead of zeros.
func GenerateInsights(entries []models.WasteEntry) Insights {
	if len(entries) == 0 {
		return Insights{
			Insights: []string{
				"Start logging your waste to get personalized insights!",
				"Every small action counts towards a greener planet.",
			},
			Tips: []string{
				"Try to reduce plastic usage by using reusable bags",
				"Compost organic waste to create nutrient-rich soil",
			},
		}
	}

	totalWeight := 0.0
	totalCo2 := 0.0
	counts := make(map[models.WasteType]int)
	for _, e := range entries {
		totalWeight += e.Weight
		totalCo2 += e.Co2Saved
		counts[e.WasteType]++
	}

	top := models.WastePlastic
	best := 0
	for _, t := range models.WasteTypes {
		if counts[t] > best {
			best = counts[t]
			top = t
		}
	}

	return Insights{
		Insights: []string{
			fmt.Sprintf("You've logged %.1fkg of waste this month - great job tracking!", totalWeight),
			fmt.Sprintf("Your efforts have saved %.1fkg of CO₂ emissions", totalCo2),
			fmt.Sprintf("Your most logged waste type is %s", top),
		},
		Tips: []string{
			"Consider reducing single-use plastics to lower your environmental impact",
			"Organic waste can be composted to create valuable fertilizer",
			"Recycling paper saves trees and reduces landfill waste",
		},
	}
}
