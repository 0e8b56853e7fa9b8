// Package aggregation implements the grouping, summarization and
// diet-signature consolidation engine behind every report variant. All
// variants are parameterizations of Aggregate; none carry their own grouping
// loop.
package aggregation

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ashugangtok/dietiq/internal/domain/models"
)

// MissingValue substitutes empty key fields so that records lacking a field
// still land in exactly one group.
const MissingValue = "N/A"

// keySeparator joins key parts into a stable group id.
const keySeparator = "|"

// UnitTotal accumulates quantity and gram sums for one unit string within a
// group. Units are never coerced during accumulation; a group holding both
// "kg" and "piece" records keeps two independent totals.
type UnitTotal struct {
	Quantity decimal.Decimal
	Grams    decimal.Decimal
}

// Group is the accumulated state for one grouping key.
type Group struct {
	Key  []string
	ID   string
	Size int

	// Units maps each distinct unit string observed to its totals.
	Units map[string]*UnitTotal

	animals    map[string]struct{}
	species    map[string]struct{}
	enclosures map[string]struct{}
	sites      map[string]struct{}
}

// AnimalCount returns the number of distinct animal ids folded into the group.
func (g *Group) AnimalCount() int { return len(g.animals) }

// SpeciesCount returns the number of distinct common names in the group.
func (g *Group) SpeciesCount() int { return len(g.species) }

// EnclosureCount returns the number of distinct enclosures in the group.
func (g *Group) EnclosureCount() int { return len(g.enclosures) }

// SiteCount returns the number of distinct sites in the group.
func (g *Group) SiteCount() int { return len(g.sites) }

// TotalGrams sums the gram accumulators across all units of the group.
func (g *Group) TotalGrams() decimal.Decimal {
	total := decimal.Zero
	for _, ut := range g.Units {
		total = total.Add(ut.Grams)
	}
	return total
}

// UnitNames returns the distinct unit strings of the group in sorted order.
func (g *Group) UnitNames() []string {
	names := make([]string, 0, len(g.Units))
	for name := range g.Units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Comparator orders two groups for output. ByKey and ByTotalGramsDesc cover
// the stock report orders; callers may supply their own.
type Comparator func(a, b *Group) bool

// ByKey orders groups lexicographically by their key tuple.
func ByKey(a, b *Group) bool {
	for i := range a.Key {
		if i >= len(b.Key) {
			return false
		}
		if a.Key[i] != b.Key[i] {
			return a.Key[i] < b.Key[i]
		}
	}
	return len(a.Key) < len(b.Key)
}

// ByTotalGramsDesc orders groups by descending gram total, used for the
// "top ingredients" views. Ties fall back to key order.
func ByTotalGramsDesc(a, b *Group) bool {
	at, bt := a.TotalGrams(), b.TotalGrams()
	if !at.Equal(bt) {
		return at.GreaterThan(bt)
	}
	return ByKey(a, b)
}

// Options tunes one aggregation pass.
type Options struct {
	// CountDistinct enables the per-group distinct-entity sets (animals,
	// species, enclosures, sites).
	CountDistinct bool
	// Less orders the output; nil means ByKey.
	Less Comparator
}

// Aggregate folds records into groups keyed by the given field tuple. Every
// record contributes to exactly one group: empty key fields become
// MissingValue rather than dropping the record.
func Aggregate(records []models.FeedingRecord, keys []models.Field, opts Options) []*Group {
	byID := make(map[string]*Group)
	out := make([]*Group, 0)

	for _, rec := range records {
		key := keyFor(rec, keys)
		id := groupID(key)

		grp, ok := byID[id]
		if !ok {
			grp = &Group{Key: key, ID: id, Units: make(map[string]*UnitTotal)}
			if opts.CountDistinct {
				grp.animals = make(map[string]struct{})
				grp.species = make(map[string]struct{})
				grp.enclosures = make(map[string]struct{})
				grp.sites = make(map[string]struct{})
			}
			byID[id] = grp
			out = append(out, grp)
		}

		grp.fold(rec, opts.CountDistinct)
	}

	less := opts.Less
	if less == nil {
		less = ByKey
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })

	return out
}

// GroupIDs returns the ids of the given groups in order, used by the packing
// checklist to reconcile session statuses.
func GroupIDs(groups []*Group) []string {
	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	return ids
}

func (g *Group) fold(rec models.FeedingRecord, countDistinct bool) {
	g.Size++

	unit := strings.TrimSpace(rec.Unit)
	ut, ok := g.Units[unit]
	if !ok {
		ut = &UnitTotal{}
		g.Units[unit] = ut
	}
	ut.Quantity = ut.Quantity.Add(decimal.NewFromFloat(rec.Quantity))
	ut.Grams = ut.Grams.Add(decimal.NewFromFloat(rec.QuantityInGrams))

	if countDistinct {
		addNonEmpty(g.animals, rec.AnimalID)
		addNonEmpty(g.species, rec.CommonName)
		addNonEmpty(g.enclosures, rec.EnclosureName)
		addNonEmpty(g.sites, rec.SiteName)
	}
}

// groupID joins key parts into a stable id. Separator characters inside a
// part are escaped so distinct key tuples can never collide on one id.
func groupID(key []string) string {
	parts := make([]string, len(key))
	for i, p := range key {
		p = strings.ReplaceAll(p, `\`, `\\`)
		parts[i] = strings.ReplaceAll(p, keySeparator, `\`+keySeparator)
	}
	return strings.Join(parts, keySeparator)
}

func keyFor(rec models.FeedingRecord, keys []models.Field) []string {
	key := make([]string, len(keys))
	for i, f := range keys {
		v := strings.TrimSpace(rec.FieldValue(f))
		if v == "" {
			v = MissingValue
		}
		key[i] = v
	}
	return key
}

func addNonEmpty(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}
