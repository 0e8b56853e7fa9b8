package aggregation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ashugangtok/dietiq/internal/domain/models"
	"github.com/ashugangtok/dietiq/pkg/quantity"
)

// SignaturePrecision is the number of decimal places retained when comparing
// per-item totals. Two animals whose item totals agree to this precision are
// treated as eating identically.
const SignaturePrecision int32 = 3

// ErrNoAnimals signals a signature group that matched zero animals. The
// partition-by-animal step makes this unreachable; reaching it means the
// consolidation invariant is broken and the computation must not proceed to
// a per-animal division.
var ErrNoAnimals = errors.New("consolidate: signature group matched zero animals")

// ConsolidatedItem is one row of a consolidated diet's items table, computed
// from a single representative animal and scaled by the group's animal count.
type ConsolidatedItem struct {
	Name     string          `json:"name"`
	Kind     models.ItemKind `json:"kind"`
	PrepType string          `json:"prep_type,omitempty"`
	CutSize  string          `json:"cut_size,omitempty"`

	// Breakdown lists a composite item's ingredients as whole-percent shares
	// of its gram weight, e.g. "60% Beef, 40% Bone". Empty for plain items.
	Breakdown string `json:"breakdown,omitempty"`

	AmountPerAnimal     string `json:"amount_per_animal"`
	TotalAmountRequired string `json:"total_amount_required"`

	PerAnimalGrams float64 `json:"per_animal_grams"`
	Unit           string  `json:"unit"`
}

// ConsolidatedDiet is one displayed block: all animals within a (site, meal
// time) bucket whose diet signatures match, merged together.
type ConsolidatedDiet struct {
	SiteName      string `json:"site_name"`
	MealStartTime string `json:"meal_start_time"`
	DietName      string `json:"diet_name"`
	DietNumber    string `json:"diet_number"`
	Signature     string `json:"signature"`

	AnimalIDs        []string `json:"animal_ids"`
	Species          []string `json:"species"`
	TotalAnimalCount int      `json:"total_animal_count"`

	Items []ConsolidatedItem `json:"items"`
}

// itemTotal accumulates one animal's intake for one item key. The grams
// fallback is per key: grams are used whenever any record for the key carried
// a nonzero gram weight, otherwise the native quantity is used.
type itemTotal struct {
	qty      decimal.Decimal
	grams    decimal.Decimal
	hasGrams bool
	unit     string
	kind     models.ItemKind
	prepType string
	cutSize  string

	// components holds a composite item's per-ingredient gram totals in
	// first-seen order, for the percentage breakdown.
	components []*component
	byName     map[string]*component
}

type component struct {
	name  string
	grams decimal.Decimal
}

func (t *itemTotal) value() decimal.Decimal {
	if t.hasGrams {
		return t.grams
	}
	return t.qty
}

// DietSignature computes the order-independent fingerprint of one animal's
// records within a meal-time bucket: sorted "key:value" pairs joined with
// ";", values rounded to SignaturePrecision decimal places. Both this and
// the displayed items table key rows through FeedingRecord.ItemKey, so
// signature equality and displayed items cannot diverge.
func DietSignature(records []models.FeedingRecord) string {
	totals, _ := itemTotals(records)

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, key := range keys {
		v := totals[key].value().Round(SignaturePrecision)
		parts[i] = key + ":" + v.StringFixed(SignaturePrecision)
	}
	return strings.Join(parts, ";")
}

// Consolidate merges animals with identical diet signatures into one block
// per (site, meal time) bucket. Blocks appear in first-encounter order of
// their bucket, signature and representative animal, so identical inputs
// always yield identical output.
func Consolidate(records []models.FeedingRecord) ([]ConsolidatedDiet, error) {
	type bucket struct {
		site     string
		mealTime string
		records  []models.FeedingRecord
	}

	byBucket := make(map[string]*bucket)
	order := make([]*bucket, 0)

	for _, rec := range records {
		site := orMissing(rec.SiteName)
		meal := orMissing(rec.MealStartTime)
		id := groupID([]string{site, meal})

		b, ok := byBucket[id]
		if !ok {
			b = &bucket{site: site, mealTime: meal}
			byBucket[id] = b
			order = append(order, b)
		}
		b.records = append(b.records, rec)
	}

	out := make([]ConsolidatedDiet, 0, len(order))
	for _, b := range order {
		diets, err := consolidateBucket(b.site, b.mealTime, b.records)
		if err != nil {
			return nil, fmt.Errorf("bucket %s %s: %w", b.site, b.mealTime, err)
		}
		out = append(out, diets...)
	}
	return out, nil
}

func consolidateBucket(site, mealTime string, records []models.FeedingRecord) ([]ConsolidatedDiet, error) {
	byAnimal := make(map[string][]models.FeedingRecord)
	animalOrder := make([]string, 0)

	for _, rec := range records {
		id := orMissing(rec.AnimalID)
		if _, ok := byAnimal[id]; !ok {
			animalOrder = append(animalOrder, id)
		}
		byAnimal[id] = append(byAnimal[id], rec)
	}

	type sigGroup struct {
		signature string
		animals   []string
	}

	bySig := make(map[string]*sigGroup)
	sigOrder := make([]*sigGroup, 0)

	for _, animal := range animalOrder {
		sig := DietSignature(byAnimal[animal])
		grp, ok := bySig[sig]
		if !ok {
			grp = &sigGroup{signature: sig}
			bySig[sig] = grp
			sigOrder = append(sigOrder, grp)
		}
		grp.animals = append(grp.animals, animal)
	}

	out := make([]ConsolidatedDiet, 0, len(sigOrder))
	for _, grp := range sigOrder {
		count := len(grp.animals)
		if count == 0 {
			return nil, ErrNoAnimals
		}

		// The items table comes from the first animal that produced the
		// signature; totals scale by the full group count.
		repRecords := byAnimal[grp.animals[0]]
		items := buildItems(repRecords, count)

		diet := ConsolidatedDiet{
			SiteName:         site,
			MealStartTime:    mealTime,
			DietName:         repRecords[0].DietName,
			DietNumber:       repRecords[0].DietNumber,
			Signature:        grp.signature,
			AnimalIDs:        grp.animals,
			TotalAnimalCount: count,
			Items:            items,
		}

		seen := make(map[string]struct{})
		for _, animal := range grp.animals {
			for _, rec := range byAnimal[animal] {
				name := strings.TrimSpace(rec.CommonName)
				if name == "" {
					continue
				}
				if _, ok := seen[name]; !ok {
					seen[name] = struct{}{}
					diet.Species = append(diet.Species, name)
				}
			}
		}

		out = append(out, diet)
	}
	return out, nil
}

// itemTotals folds one animal's records into per-item totals, returning the
// totals and the item keys in first-seen order.
func itemTotals(records []models.FeedingRecord) (map[string]*itemTotal, []string) {
	totals := make(map[string]*itemTotal)
	order := make([]string, 0)

	for _, rec := range records {
		key := rec.ItemKey()
		t, ok := totals[key]
		if !ok {
			t = &itemTotal{
				unit:     rec.Unit,
				kind:     rec.ItemKind,
				prepType: rec.PrepType,
				cutSize:  rec.CutSize,
				byName:   make(map[string]*component),
			}
			totals[key] = t
			order = append(order, key)
		}

		t.qty = t.qty.Add(decimal.NewFromFloat(rec.Quantity))
		if rec.QuantityInGrams != 0 {
			t.grams = t.grams.Add(decimal.NewFromFloat(rec.QuantityInGrams))
			t.hasGrams = true
		}

		if rec.IsComposite() {
			c, ok := t.byName[rec.IngredientName]
			if !ok {
				c = &component{name: rec.IngredientName}
				t.byName[rec.IngredientName] = c
				t.components = append(t.components, c)
			}
			c.grams = c.grams.Add(decimal.NewFromFloat(rec.QuantityInGrams))
		}
	}
	return totals, order
}

func buildItems(records []models.FeedingRecord, animalCount int) []ConsolidatedItem {
	totals, order := itemTotals(records)
	count := decimal.NewFromInt(int64(animalCount))

	items := make([]ConsolidatedItem, 0, len(order))
	for _, key := range order {
		t := totals[key]

		item := ConsolidatedItem{
			Name:     key,
			Kind:     t.kind,
			PrepType: t.prepType,
			CutSize:  t.cutSize,
			Unit:     t.unit,
		}

		if t.hasGrams {
			perAnimal := t.grams
			item.PerAnimalGrams = perAnimal.InexactFloat64()
			item.AmountPerAnimal = quantity.FormatGrams(perAnimal.InexactFloat64())
			item.TotalAmountRequired = quantity.FormatGrams(perAnimal.Mul(count).InexactFloat64())
		} else {
			item.AmountPerAnimal = quantity.Format(t.qty.InexactFloat64(), 0, t.unit)
			item.TotalAmountRequired = quantity.Format(t.qty.Mul(count).InexactFloat64(), 0, t.unit)
		}

		if len(t.components) > 0 && t.grams.IsPositive() {
			item.Breakdown = breakdown(t.components, t.grams)
		}

		items = append(items, item)
	}
	return items
}

// breakdown renders a composite item's ingredients as whole-percent shares
// of its total gram weight.
func breakdown(components []*component, total decimal.Decimal) string {
	parts := make([]string, 0, len(components))
	hundred := decimal.NewFromInt(100)
	for _, c := range components {
		pct := c.grams.Mul(hundred).Div(total).Round(0).IntPart()
		parts = append(parts, fmt.Sprintf("%d%% %s", pct, c.name))
	}
	return strings.Join(parts, ", ")
}

func orMissing(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return MissingValue
	}
	return v
}
