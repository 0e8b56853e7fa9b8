package reporting

import (
	"strings"
	"testing"

	"github.com/ashugangtok/dietiq/internal/domain/models"
)

func sampleRecords() []models.FeedingRecord {
	return []models.FeedingRecord{
		{
			SiteName: "North", EnclosureName: "E1", AnimalID: "A1", CommonName: "Tiger",
			GroupName: "Carnivores", FeedTypeName: "Meat", IngredientName: "Beef",
			ItemKind: models.ItemIngredient, ItemName: "Beef",
			Quantity: 2, Unit: "kg", QuantityInGrams: 2000, MealStartTime: "08:00",
		},
		{
			SiteName: "North", EnclosureName: "E1", AnimalID: "A2", CommonName: "Tiger",
			GroupName: "Carnivores", FeedTypeName: "Meat", IngredientName: "Beef",
			ItemKind: models.ItemIngredient, ItemName: "Beef",
			Quantity: 2, Unit: "kg", QuantityInGrams: 2000, MealStartTime: "08:00",
		},
		{
			SiteName: "South", EnclosureName: "E2", AnimalID: "A3", CommonName: "Gecko",
			GroupName: "Reptiles", FeedTypeName: "Live", IngredientName: "Crickets",
			ItemKind: models.ItemIngredient, ItemName: "Crickets",
			Quantity: 10, Unit: "piece", MealStartTime: "12:00",
		},
	}
}

func TestDashboard(t *testing.T) {
	svc := NewService(nil)
	d := svc.Dashboard(sampleRecords(), 5)

	if d.RecordCount != 3 || d.SiteCount != 2 || d.AnimalCount != 3 || d.SpeciesCount != 2 {
		t.Errorf("counts = %+v, want 3 records, 2 sites, 3 animals, 2 species", d)
	}
	if d.IngredientCount != 2 {
		t.Errorf("IngredientCount = %d, want 2", d.IngredientCount)
	}
	if len(d.TopIngredients) != 2 || d.TopIngredients[0].Ingredient != "Beef" {
		t.Fatalf("TopIngredients = %+v, want Beef ranked first", d.TopIngredients)
	}
	if d.TopIngredients[0].Display != "4.00 kilogram" {
		t.Errorf("Beef display = %q, want %q", d.TopIngredients[0].Display, "4.00 kilogram")
	}
}

func TestDashboardTopNCap(t *testing.T) {
	svc := NewService(nil)
	d := svc.Dashboard(sampleRecords(), 1)
	if len(d.TopIngredients) != 1 {
		t.Errorf("got %d top ingredients, want 1", len(d.TopIngredients))
	}
}

func TestSiteOverview(t *testing.T) {
	svc := NewService(nil)
	rows := svc.SiteOverview(sampleRecords())

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	north := rows[0]
	if north.SiteName != "North" || north.AnimalCount != 2 {
		t.Errorf("north row = %+v, want 2 animals at North", north)
	}
	if len(north.Totals) != 1 || north.Totals[0].Display != "4.00 kg" {
		t.Errorf("north totals = %+v, want 4.00 kg", north.Totals)
	}
}

func TestPivotKeyWidth(t *testing.T) {
	svc := NewService(nil)
	rows := svc.Pivot(sampleRecords())

	if len(rows) != 2 {
		t.Fatalf("got %d pivot rows, want 2", len(rows))
	}
	for _, row := range rows {
		if row.PrepType != "N/A" || row.CutSize != "N/A" {
			t.Errorf("missing prep/cut should surface as N/A, got %+v", row)
		}
	}
}

func TestPackingListStableIDs(t *testing.T) {
	svc := NewService(nil)

	rows, ids := svc.PackingList(sampleRecords())
	if len(rows) != 2 || len(ids) != 2 {
		t.Fatalf("got %d rows / %d ids, want 2/2", len(rows), len(ids))
	}
	_, again := svc.PackingList(sampleRecords())
	for i := range ids {
		if ids[i] != again[i] {
			t.Errorf("id %d changed between runs: %q vs %q", i, ids[i], again[i])
		}
	}
	for _, row := range rows {
		if row.Status != models.PackingPending {
			t.Errorf("fresh packing row status = %q, want pending", row.Status)
		}
	}
}

func TestConsolidatedMergesIdenticalDiets(t *testing.T) {
	svc := NewService(nil)

	diets, err := svc.Consolidated(sampleRecords())
	if err != nil {
		t.Fatalf("Consolidated: %v", err)
	}
	// A1 and A2 eat identically at (North, 08:00); the gecko stands alone.
	if len(diets) != 2 {
		t.Fatalf("got %d diets, want 2", len(diets))
	}
	if diets[0].TotalAnimalCount != 2 {
		t.Errorf("merged block count = %d, want 2", diets[0].TotalAnimalCount)
	}
}

func TestSummaryInput(t *testing.T) {
	svc := NewService(nil)
	input := svc.SummaryInput(sampleRecords())

	if !strings.Contains(input, "Beef: 4.00 kilogram for 2 animals") {
		t.Errorf("summary input missing beef line:\n%s", input)
	}
	if !strings.Contains(input, "Crickets: 10.00 piece for 1 animals") {
		t.Errorf("summary input missing crickets line:\n%s", input)
	}
}

func TestDigest(t *testing.T) {
	svc := NewService(nil)
	snap := svc.Digest(sampleRecords())

	if snap.RecordCount != 3 || snap.IngredientCount != 2 {
		t.Errorf("snapshot = %+v, want 3 records / 2 ingredients", snap)
	}
	if snap.CreatedAt.IsZero() {
		t.Error("snapshot CreatedAt must be set")
	}
}
