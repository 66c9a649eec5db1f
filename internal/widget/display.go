package widget

import (
	"fmt"
	"math"

	"github.com/theopenlane/ecolens/internal/scoring"
)

const (
	// kgCO2PerMileDriven converts kilograms of CO2 to equivalent passenger
	// car miles (EPA average passenger vehicle emission factor)
	kgCO2PerMileDriven = 0.404

	// goodScoreThreshold is the lower bound of the good tier
	goodScoreThreshold = 70
	// moderateScoreThreshold is the lower bound of the moderate tier
	moderateScoreThreshold = 40
)

// Tier buckets an eco score for color mapping
type Tier string

const (
	// TierGood marks scores of 70 and above, rendered green
	TierGood Tier = "good"
	// TierModerate marks scores from 40 to 69, rendered amber
	TierModerate Tier = "moderate"
	// TierPoor marks scores below 40, rendered red
	TierPoor Tier = "poor"
)

// tierColors maps each tier to its display color
var tierColors = map[Tier]string{
	TierGood:     "#2e7d32",
	TierModerate: "#f9a825",
	TierPoor:     "#c62828",
}

// DisplayModel is the presentation-only projection of an analysis result.
// Derivation is pure and stateless; it is recomputed on every render and
// never persisted.
type DisplayModel struct {
	// ProductName is the product name as reported by the scoring service
	ProductName string
	// OverallEcoScore is the aggregate score rounded to an integer
	OverallEcoScore int
	// Tier is the score bucket used for color mapping
	Tier Tier
	// Color is the hex color for the tier
	Color string
	// CO2TotalKg is the carbon footprint rounded to one decimal
	CO2TotalKg float64
	// CO2Equivalent is the human-readable CO2 comparison string
	CO2Equivalent string
	// WaterUsageLiters is the water usage rounded to one decimal
	WaterUsageLiters float64
	// RecyclabilityScore is the recyclability rating rounded to an integer
	RecyclabilityScore int
	// ConfidencePercent is the confidence level rounded to an integer
	ConfidencePercent int
	// Recommendations lists the service's suggestions, order preserved
	Recommendations []string
}

// Derive builds the display model for an analysis result
func Derive(result scoring.AnalysisResult) DisplayModel {
	score := result.EnvironmentalScore
	tier := scoreTier(score.OverallEcoScore)

	return DisplayModel{
		ProductName:        result.ProductName,
		OverallEcoScore:    int(math.Round(score.OverallEcoScore)),
		Tier:               tier,
		Color:              tierColors[tier],
		CO2TotalKg:         roundOne(score.CO2TotalKg),
		CO2Equivalent:      co2Equivalent(score.CO2TotalKg),
		WaterUsageLiters:   roundOne(score.WaterUsageLiters),
		RecyclabilityScore: int(math.Round(score.RecyclabilityScore)),
		ConfidencePercent:  int(math.Round(score.ConfidenceLevel)),
		Recommendations:    result.Recommendations,
	}
}

// scoreTier maps an eco score to its display tier
func scoreTier(score float64) Tier {
	switch {
	case score >= goodScoreThreshold:
		return TierGood
	case score >= moderateScoreThreshold:
		return TierModerate
	default:
		return TierPoor
	}
}

// co2Equivalent renders a CO2 amount as equivalent car miles driven
func co2Equivalent(kg float64) string {
	miles := math.Round(kg / kgCO2PerMileDriven)

	return fmt.Sprintf("≈ %.0f miles driven", miles)
}

// roundOne rounds to one decimal place
func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
