package sheets

import (
	"testing"

	"github.com/ashugangtok/dietiq/internal/domain/models"
)

func sampleRow() []interface{} {
	return []interface{}{
		"North", "A1", "Tiger", "Panthera tigris", "E1", "Meat",
		"Beef", "combo", "Carnivore Mix", "Carnivores",
		"0.5", "kg", "500", "08:00", "Big Cat Diet", "D-12",
		"chopped", "2cm", "2026-08-30",
	}
}

func TestMapRow(t *testing.T) {
	rec, ok := mapRow(sampleRow())
	if !ok {
		t.Fatal("mapRow rejected a valid row")
	}

	if rec.SiteName != "North" || rec.AnimalID != "A1" || rec.IngredientName != "Beef" {
		t.Errorf("identity fields = %+v", rec)
	}
	if rec.ItemKind != models.ItemCombo || rec.ItemName != "Carnivore Mix" {
		t.Errorf("item fields = %q/%q, want combo/Carnivore Mix", rec.ItemKind, rec.ItemName)
	}
	if rec.Quantity != 0.5 || rec.QuantityInGrams != 500 || rec.Unit != "kg" {
		t.Errorf("quantity fields = %v %q %v", rec.Quantity, rec.Unit, rec.QuantityInGrams)
	}
	if rec.ItemKey() != "Carnivore Mix" {
		t.Errorf("ItemKey = %q, want combo name", rec.ItemKey())
	}
}

func TestMapRowShortAndMalformed(t *testing.T) {
	if _, ok := mapRow([]interface{}{"North"}); ok {
		t.Error("row without quantity should be rejected")
	}
	if _, ok := mapRow(nil); ok {
		t.Error("empty row should be rejected")
	}

	// Missing grams column still maps; grams default to zero.
	row := sampleRow()[:colQuantityGrams]
	rec, ok := mapRow(row)
	if !ok {
		t.Fatal("row without grams column should still map")
	}
	if rec.QuantityInGrams != 0 {
		t.Errorf("grams = %v, want 0", rec.QuantityInGrams)
	}
}

func TestMapRowUnknownKindDefaultsToIngredient(t *testing.T) {
	row := sampleRow()
	row[colItemKind] = "something else"
	rec, ok := mapRow(row)
	if !ok {
		t.Fatal("mapRow rejected row")
	}
	if rec.ItemKind != models.ItemIngredient {
		t.Errorf("ItemKind = %q, want ingredient fallback", rec.ItemKind)
	}
}

func TestIsHeaderRow(t *testing.T) {
	header := []interface{}{
		"site_name", "animal_id", "common_name", "scientific_name", "enclosure_name",
		"feed_type_name", "ingredient_name", "item_kind", "item_name", "group_name",
		"quantity", "unit", "quantity_in_grams", "meal_start_time",
	}
	if !isHeaderRow(header) {
		t.Error("header row not detected")
	}
	if isHeaderRow(sampleRow()) {
		t.Error("data row misdetected as header")
	}
}
