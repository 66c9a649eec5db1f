package ecoscore

// Material holds per-kilogram environmental factors for one material
type Material struct {
	// CO2PerKg is manufacturing CO2 in kg per kg of material
	CO2PerKg float64 `json:"co2_per_kg"`
	// WaterPerKg is water usage in liters per kg of material
	WaterPerKg float64 `json:"water_per_kg"`
	// Recyclability rates the material's recyclability, 0-100
	Recyclability float64 `json:"recyclability"`
	// Durability rates the material's expected lifetime, 0-100
	Durability float64 `json:"durability"`
}

// materialTable is the built-in material factor database
var materialTable = map[string]Material{
	"steel":     {CO2PerKg: 2.0, WaterPerKg: 50, Recyclability: 90, Durability: 95},
	"aluminum":  {CO2PerKg: 8.0, WaterPerKg: 100, Recyclability: 95, Durability: 90},
	"plastic":   {CO2PerKg: 3.0, WaterPerKg: 20, Recyclability: 30, Durability: 60},
	"wood":      {CO2PerKg: 0.5, WaterPerKg: 10, Recyclability: 70, Durability: 70},
	"cotton":    {CO2PerKg: 5.0, WaterPerKg: 10000, Recyclability: 60, Durability: 50},
	"polyester": {CO2PerKg: 6.0, WaterPerKg: 60, Recyclability: 20, Durability: 70},
	"glass":     {CO2PerKg: 1.0, WaterPerKg: 15, Recyclability: 100, Durability: 80},
	"ceramic":   {CO2PerKg: 0.8, WaterPerKg: 20, Recyclability: 40, Durability: 85},
	"leather":   {CO2PerKg: 17.0, WaterPerKg: 17000, Recyclability: 20, Durability: 90},
	"paper":     {CO2PerKg: 1.2, WaterPerKg: 30, Recyclability: 80, Durability: 30},
	"rubber":    {CO2PerKg: 3.0, WaterPerKg: 40, Recyclability: 50, Durability: 70},
}

// defaultMaterial is used for materials missing from the table
var defaultMaterial = Material{CO2PerKg: 3.0, WaterPerKg: 50, Recyclability: 50, Durability: 50}

// transportDistances maps manufacturing origins to shipping distance in km
var transportDistances = map[string]float64{
	"China":   10000,
	"India":   8000,
	"Vietnam": 10000,
	"USA":     1000,
	"Germany": 1000,
	"Mexico":  2000,
	"Unknown": 5000,
}

// materialKeywords maps each material to URL keywords that indicate it
var materialKeywords = map[string][]string{
	"steel":     {"steel", "metal", "iron", "stainless"},
	"aluminum":  {"aluminum", "aluminium"},
	"plastic":   {"plastic", "polypropylene", "pp", "polyethylene", "pe", "pet", "abs"},
	"wood":      {"wood", "wooden", "bamboo", "oak", "pine", "cedar"},
	"cotton":    {"cotton"},
	"polyester": {"polyester", "synthetic"},
	"glass":     {"glass"},
	"ceramic":   {"ceramic", "porcelain"},
	"leather":   {"leather"},
	"paper":     {"paper", "cardboard"},
	"rubber":    {"rubber", "silicone"},
}

// categoryFallback maps product category keywords to assumed materials,
// used when no material keyword matches
type categoryFallback struct {
	keywords  []string
	materials []string
}

// categoryFallbacks are checked in order; first match wins
var categoryFallbacks = []categoryFallback{
	{keywords: []string{"kitchen", "cookware", "utensil"}, materials: []string{"steel", "plastic"}},
	{keywords: []string{"furniture", "desk", "chair", "table"}, materials: []string{"wood", "steel"}},
	{keywords: []string{"clothing", "shirt", "pants", "dress"}, materials: []string{"cotton", "polyester"}},
	{keywords: []string{"electronic", "computer", "phone", "tablet"}, materials: []string{"plastic", "aluminum"}},
}

// weightEstimate maps category keywords to a weight estimate in kg
type weightEstimate struct {
	keywords []string
	kg       float64
}

// weightEstimates are checked in order; first match wins
var weightEstimates = []weightEstimate{
	{keywords: []string{"phone", "smartphone", "mobile"}, kg: 0.2},
	{keywords: []string{"laptop", "notebook", "computer"}, kg: 2.5},
	{keywords: []string{"tablet", "ipad", "kindle"}, kg: 0.5},
	{keywords: []string{"furniture", "desk", "chair", "sofa"}, kg: 15.0},
	{keywords: []string{"clothing", "shirt", "pants", "dress"}, kg: 0.3},
	{keywords: []string{"book"}, kg: 0.5},
	{keywords: []string{"kitchen", "cookware", "pan", "pot"}, kg: 2.0},
	{keywords: []string{"toy", "game"}, kg: 0.5},
}

// defaultWeightKg is assumed when no category keyword matches
const defaultWeightKg = 1.0

// MaterialTable returns a copy of the built-in material database for the
// reference endpoint
func MaterialTable() map[string]Material {
	out := make(map[string]Material, len(materialTable))
	for name, m := range materialTable {
		out[name] = m
	}

	return out
}
