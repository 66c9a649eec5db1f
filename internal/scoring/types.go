package scoring

// AnalysisRequest is the request body sent to the scoring service. It is
// built once from the settled page URL and never mutated afterwards.
type AnalysisRequest struct {
	// URL is the exact product page URL the analysis was requested for
	URL string `json:"url"`
	// Detailed requests the materials and emissions breakdown block
	Detailed bool `json:"detailed"`
	// Cache allows the service to answer from its own result cache
	Cache bool `json:"cache"`
}

// EnvironmentalScore holds the computed environmental metrics for a product
type EnvironmentalScore struct {
	// CO2TotalKg is the total carbon footprint in kilograms of CO2
	CO2TotalKg float64 `json:"co2_total_kg"`
	// WaterUsageLiters is the estimated water consumption in liters
	WaterUsageLiters float64 `json:"water_usage_liters"`
	// RecyclabilityScore rates how recyclable the product is, 0-100
	RecyclabilityScore float64 `json:"recyclability_score"`
	// DurabilityScore rates expected product lifetime, 0-100
	DurabilityScore float64 `json:"durability_score"`
	// OverallEcoScore is the aggregate eco rating, 0-100, higher is better
	OverallEcoScore float64 `json:"overall_eco_score"`
	// ConfidenceLevel indicates how much product data backed the estimate, 0-100
	ConfidenceLevel float64 `json:"confidence_level"`
}

// AnalysisDetails is the optional breakdown returned when Detailed is set
type AnalysisDetails struct {
	// Materials lists the materials inferred for the product
	Materials []string `json:"materials"`
	// EstimatedWeightKg is the weight estimate used for the calculation
	EstimatedWeightKg float64 `json:"estimated_weight_kg"`
	// Origin is the assumed manufacturing origin
	Origin string `json:"origin"`
	// CO2Breakdown splits the carbon footprint by phase
	CO2Breakdown CO2Breakdown `json:"co2_breakdown"`
}

// CO2Breakdown splits total CO2 into manufacturing and transport shares
type CO2Breakdown struct {
	// Manufacturing is the production-phase CO2 in kilograms
	Manufacturing float64 `json:"manufacturing"`
	// Transport is the shipping-phase CO2 in kilograms
	Transport float64 `json:"transport"`
}

// AnalysisResult is the full scoring service response. It is stored verbatim
// in the local cache on success.
type AnalysisResult struct {
	// ProductName is the product name extracted from the URL
	ProductName string `json:"product_name"`
	// EnvironmentalScore holds the computed metrics
	EnvironmentalScore EnvironmentalScore `json:"environmental_score"`
	// Recommendations lists human-readable suggestions, in priority order
	Recommendations []string `json:"recommendations"`
	// Cached indicates the service answered from its own cache
	Cached bool `json:"cached"`
	// Timestamp is the RFC 3339 time the result was computed
	Timestamp string `json:"timestamp"`
	// Details is present only when the request asked for a detailed breakdown
	Details *AnalysisDetails `json:"details,omitempty"`
}
