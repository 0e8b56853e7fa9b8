package models

import "time"

// ReportSnapshot is the daily digest the scheduler archives to MongoDB.
type ReportSnapshot struct {
	Date            time.Time         `bson:"date" json:"date"`
	RecordCount     int               `bson:"record_count" json:"record_count"`
	SiteCount       int               `bson:"site_count" json:"site_count"`
	AnimalCount     int               `bson:"animal_count" json:"animal_count"`
	SpeciesCount    int               `bson:"species_count" json:"species_count"`
	IngredientCount int               `bson:"ingredient_count" json:"ingredient_count"`
	TopIngredients  []IngredientTotal `bson:"top_ingredients" json:"top_ingredients"`
	CreatedAt       time.Time         `bson:"created_at" json:"created_at"`
}

// IngredientTotal is one ranked row in the dashboard's top-ingredients list.
type IngredientTotal struct {
	Ingredient  string  `bson:"ingredient" json:"ingredient"`
	TotalGrams  float64 `bson:"total_grams" json:"total_grams"`
	Display     string  `bson:"display" json:"display"`
	AnimalCount int     `bson:"animal_count" json:"animal_count"`
}

// JournalEntry is one free-text note attached to the session.
type JournalEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
