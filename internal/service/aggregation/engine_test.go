package aggregation

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ashugangtok/dietiq/internal/domain/models"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func rec(site, animal, ingredient string, qty, grams float64, unit string) models.FeedingRecord {
	return models.FeedingRecord{
		SiteName:        site,
		AnimalID:        animal,
		IngredientName:  ingredient,
		ItemKind:        models.ItemIngredient,
		ItemName:        ingredient,
		Quantity:        qty,
		QuantityInGrams: grams,
		Unit:            unit,
	}
}

func TestAggregateGroupingCompleteness(t *testing.T) {
	records := []models.FeedingRecord{
		rec("North", "A1", "Apple", 0.5, 500, "kg"),
		rec("North", "A2", "Apple", 0.5, 500, "kg"),
		rec("South", "A3", "Carrot", 2, 0, "piece"),
		rec("", "A4", "", 1, 1000, "kg"),
	}

	groups := Aggregate(records, []models.Field{models.FieldSite, models.FieldIngredient}, Options{})

	total := 0
	for _, g := range groups {
		total += g.Size
	}
	if total != len(records) {
		t.Fatalf("group sizes sum to %d, want %d", total, len(records))
	}
}

func TestAggregateMissingFieldsUseSentinel(t *testing.T) {
	records := []models.FeedingRecord{rec("", "A1", "", 1, 0, "piece")}

	groups := Aggregate(records, []models.Field{models.FieldSite, models.FieldIngredient}, Options{})
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	g := groups[0]
	if g.Key[0] != MissingValue || g.Key[1] != MissingValue {
		t.Errorf("key = %v, want both parts %q", g.Key, MissingValue)
	}
}

func TestAggregateUnitIsolation(t *testing.T) {
	records := []models.FeedingRecord{
		rec("North", "A1", "Predator Mix", 0.5, 500, "kg"),
		rec("North", "A1", "Predator Mix", 10, 0, "piece"),
		rec("North", "A2", "Predator Mix", 0.25, 250, "kg"),
	}

	groups := Aggregate(records, []models.Field{models.FieldIngredient}, Options{})
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}

	g := groups[0]
	if len(g.Units) != 2 {
		t.Fatalf("got %d unit accumulators %v, want 2", len(g.Units), g.UnitNames())
	}
	if kg := g.Units["kg"]; kg == nil || !kg.Grams.Equal(dec(750)) {
		t.Errorf("kg accumulator = %+v, want 750 grams", kg)
	}
	if pc := g.Units["piece"]; pc == nil || !pc.Quantity.Equal(dec(10)) {
		t.Errorf("piece accumulator = %+v, want quantity 10", pc)
	}
}

func TestAggregateDistinctCounts(t *testing.T) {
	records := []models.FeedingRecord{
		{SiteName: "North", AnimalID: "A1", CommonName: "Tiger", EnclosureName: "E1", IngredientName: "Beef", Quantity: 1, Unit: "kg", QuantityInGrams: 1000},
		{SiteName: "North", AnimalID: "A2", CommonName: "Tiger", EnclosureName: "E1", IngredientName: "Beef", Quantity: 1, Unit: "kg", QuantityInGrams: 1000},
		{SiteName: "South", AnimalID: "A3", CommonName: "Lion", EnclosureName: "E2", IngredientName: "Beef", Quantity: 1, Unit: "kg", QuantityInGrams: 1000},
	}

	groups := Aggregate(records, []models.Field{models.FieldIngredient}, Options{CountDistinct: true})
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}

	g := groups[0]
	if g.AnimalCount() != 3 || g.SpeciesCount() != 2 || g.EnclosureCount() != 2 || g.SiteCount() != 2 {
		t.Errorf("counts animals=%d species=%d enclosures=%d sites=%d, want 3/2/2/2",
			g.AnimalCount(), g.SpeciesCount(), g.EnclosureCount(), g.SiteCount())
	}
}

func TestAggregateSortOrders(t *testing.T) {
	records := []models.FeedingRecord{
		rec("North", "A1", "Carrot", 0.2, 200, "kg"),
		rec("North", "A1", "Apple", 0.5, 500, "kg"),
		rec("North", "A1", "Beef", 1, 1000, "kg"),
	}
	keys := []models.Field{models.FieldIngredient}

	byKey := Aggregate(records, keys, Options{})
	wantKey := []string{"Apple", "Beef", "Carrot"}
	for i, g := range byKey {
		if g.Key[0] != wantKey[i] {
			t.Errorf("ByKey[%d] = %s, want %s", i, g.Key[0], wantKey[i])
		}
	}

	byGrams := Aggregate(records, keys, Options{Less: ByTotalGramsDesc})
	wantGrams := []string{"Beef", "Apple", "Carrot"}
	for i, g := range byGrams {
		if g.Key[0] != wantGrams[i] {
			t.Errorf("ByTotalGramsDesc[%d] = %s, want %s", i, g.Key[0], wantGrams[i])
		}
	}
}

func TestGroupIDsEscapeSeparator(t *testing.T) {
	// Both key tuples would join to "A|B|C" without escaping.
	records := []models.FeedingRecord{
		{GroupName: "A", IngredientName: "B|C", Quantity: 1, Unit: "kg", QuantityInGrams: 1000},
		{GroupName: "A|B", IngredientName: "C", Quantity: 2, Unit: "kg", QuantityInGrams: 2000},
	}
	keys := []models.Field{models.FieldGroupName, models.FieldIngredient}

	groups := Aggregate(records, keys, Options{})
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2 distinct groups", len(groups))
	}
	if groups[0].ID == groups[1].ID {
		t.Errorf("distinct key tuples share id %q", groups[0].ID)
	}
}

func TestGroupIDsStable(t *testing.T) {
	records := []models.FeedingRecord{
		{GroupName: "Carnivores", IngredientName: "Beef", Quantity: 1, Unit: "kg"},
		{GroupName: "Primates", IngredientName: "Banana", Quantity: 2, Unit: "piece"},
	}
	keys := []models.Field{models.FieldGroupName, models.FieldItemKey}

	a := GroupIDs(Aggregate(records, keys, Options{}))
	b := GroupIDs(Aggregate(records, keys, Options{}))
	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("got %d/%d ids, want 2/2", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("id %d differs between runs: %q vs %q", i, a[i], b[i])
		}
	}
}
