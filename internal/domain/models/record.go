package models

// ItemKind classifies a feeding record row as a plain ingredient or a line
// belonging to a composite feed item (recipe or combo).
type ItemKind string

const (
	ItemIngredient ItemKind = "ingredient"
	ItemRecipe     ItemKind = "recipe"
	ItemCombo      ItemKind = "combo"
)

// FeedingRecord is one row of input: a quantity of one ingredient or recipe
// component given to one animal at one meal. This is the canonical field set
// all reports are computed from; upstream parsers map spreadsheet columns
// onto it before the record ever reaches the aggregation engine.
type FeedingRecord struct {
	SiteName        string   `json:"site_name"`
	AnimalID        string   `json:"animal_id"`
	CommonName      string   `json:"common_name"`
	ScientificName  string   `json:"scientific_name"`
	EnclosureName   string   `json:"enclosure_name"`
	FeedTypeName    string   `json:"feed_type_name"`
	IngredientName  string   `json:"ingredient_name"`
	ItemKind        ItemKind `json:"item_kind"`
	ItemName        string   `json:"item_name"`
	GroupName       string   `json:"group_name"`
	Quantity        float64  `json:"quantity"`
	Unit            string   `json:"unit"`
	QuantityInGrams float64  `json:"quantity_in_grams"`
	MealStartTime   string   `json:"meal_start_time"`
	DietName        string   `json:"diet_name"`
	DietNumber      string   `json:"diet_number"`
	PrepType        string   `json:"prep_type"`
	CutSize         string   `json:"cut_size"`
	FeedingDate     string   `json:"feeding_date"`
}

// IsComposite reports whether the record is a component line of a recipe or
// combo rather than a standalone ingredient.
func (r FeedingRecord) IsComposite() bool {
	return r.ItemKind == ItemRecipe || r.ItemKind == ItemCombo
}

// ItemKey returns the display and grouping key for the record: composite
// rows key by the recipe/combo name, plain rows by the ingredient name.
// The diet-signature computation and the displayed items table must both go
// through this single method; keying them separately lets the two silently
// diverge.
func (r FeedingRecord) ItemKey() string {
	if r.IsComposite() && r.ItemName != "" {
		return r.ItemName
	}
	return r.IngredientName
}

// Field identifies one FeedingRecord attribute usable in a grouping key.
type Field string

const (
	FieldSite           Field = "site_name"
	FieldAnimalID       Field = "animal_id"
	FieldCommonName     Field = "common_name"
	FieldScientificName Field = "scientific_name"
	FieldEnclosure      Field = "enclosure_name"
	FieldFeedType       Field = "feed_type_name"
	FieldIngredient     Field = "ingredient_name"
	FieldItem           Field = "item_name"
	FieldGroupName      Field = "group_name"
	FieldMealTime       Field = "meal_start_time"
	FieldDietName       Field = "diet_name"
	FieldDietNumber     Field = "diet_number"
	FieldPrepType       Field = "prep_type"
	FieldCutSize        Field = "cut_size"
	FieldFeedingDate    Field = "feeding_date"
	// FieldItemKey is the shared composite-aware key from ItemKey.
	FieldItemKey Field = "item_key"
)

// FieldValue extracts the named field as a string. Unknown fields resolve to
// the empty string, which the aggregation engine substitutes with "N/A".
func (r FeedingRecord) FieldValue(f Field) string {
	switch f {
	case FieldSite:
		return r.SiteName
	case FieldAnimalID:
		return r.AnimalID
	case FieldCommonName:
		return r.CommonName
	case FieldScientificName:
		return r.ScientificName
	case FieldEnclosure:
		return r.EnclosureName
	case FieldFeedType:
		return r.FeedTypeName
	case FieldIngredient:
		return r.IngredientName
	case FieldItem:
		return r.ItemName
	case FieldGroupName:
		return r.GroupName
	case FieldMealTime:
		return r.MealStartTime
	case FieldDietName:
		return r.DietName
	case FieldDietNumber:
		return r.DietNumber
	case FieldPrepType:
		return r.PrepType
	case FieldCutSize:
		return r.CutSize
	case FieldFeedingDate:
		return r.FeedingDate
	case FieldItemKey:
		return r.ItemKey()
	default:
		return ""
	}
}
