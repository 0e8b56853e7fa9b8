package models

// DietPlan is the structured document the AI extraction flow produces from a
// PDF diet sheet. The schema mirrors what the generation flow consumes; the
// aggregation core neither reads nor validates it.
type DietPlan struct {
	Title               string         `json:"title"`
	Species             string         `json:"species,omitempty"`
	Meals               []DietPlanMeal `json:"meals"`
	SeasonalAdjustments []string       `json:"seasonal_adjustments,omitempty"`
	FoodEnrichment      []string       `json:"food_enrichment,omitempty"`
	Notes               string         `json:"notes,omitempty"`
}

// DietPlanMeal is one scheduled feeding within a DietPlan.
type DietPlanMeal struct {
	Time  string         `json:"time"`
	Items []DietPlanItem `json:"items"`
}

// DietPlanItem is a single ingredient line within a planned meal.
type DietPlanItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	PrepType string  `json:"prep_type,omitempty"`
}
