// Package reporting expresses each report variant as a parameterization of
// the aggregation engine: a key tuple, a comparator and a formatting pass.
// The variants share one grouping implementation rather than carrying their
// own.
package reporting

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ashugangtok/dietiq/internal/domain/models"
	"github.com/ashugangtok/dietiq/internal/service/aggregation"
	"github.com/ashugangtok/dietiq/pkg/quantity"
)

// DefaultTopIngredients caps the dashboard's ranked ingredient list when the
// caller does not ask for a specific depth.
const DefaultTopIngredients = 10

// Service computes report trees from an in-memory dataset. All methods are
// pure with respect to their inputs; callers fetch records from the session
// store and pass them in.
type Service struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, now: time.Now}
}

// UnitDisplay is one formatted per-unit total within a report row.
type UnitDisplay struct {
	Unit    string `json:"unit"`
	Display string `json:"display"`
}

// Dashboard summarizes the whole dataset.
type Dashboard struct {
	RecordCount     int                      `json:"record_count"`
	SiteCount       int                      `json:"site_count"`
	AnimalCount     int                      `json:"animal_count"`
	SpeciesCount    int                      `json:"species_count"`
	EnclosureCount  int                      `json:"enclosure_count"`
	IngredientCount int                      `json:"ingredient_count"`
	TopIngredients  []models.IngredientTotal `json:"top_ingredients"`
}

// SiteOverviewRow is one (site, enclosure, species) group.
type SiteOverviewRow struct {
	SiteName      string        `json:"site_name"`
	EnclosureName string        `json:"enclosure_name"`
	CommonName    string        `json:"common_name"`
	AnimalCount   int           `json:"animal_count"`
	Totals        []UnitDisplay `json:"totals"`
}

// MealGroupRow is one (meal group, item) total.
type MealGroupRow struct {
	GroupName   string        `json:"group_name"`
	ItemName    string        `json:"item_name"`
	AnimalCount int           `json:"animal_count"`
	Totals      []UnitDisplay `json:"totals"`
}

// PivotRow is one row of the eight-field pivot report.
type PivotRow struct {
	SiteName      string        `json:"site_name"`
	EnclosureName string        `json:"enclosure_name"`
	CommonName    string        `json:"common_name"`
	MealStartTime string        `json:"meal_start_time"`
	FeedTypeName  string        `json:"feed_type_name"`
	ItemName      string        `json:"item_name"`
	PrepType      string        `json:"prep_type"`
	CutSize       string        `json:"cut_size"`
	Totals        []UnitDisplay `json:"totals"`
}

// PackingRow is one packing-checklist group; its ID is stable across
// recomputations of the same dataset so session statuses can attach to it.
type PackingRow struct {
	ID          string               `json:"id"`
	GroupName   string               `json:"group_name"`
	ItemName    string               `json:"item_name"`
	AnimalCount int                  `json:"animal_count"`
	Totals      []UnitDisplay        `json:"totals"`
	Status      models.PackingStatus `json:"status"`
}

// pivotKey is the eight-field grouping used by the pivot report.
var pivotKey = []models.Field{
	models.FieldSite,
	models.FieldEnclosure,
	models.FieldCommonName,
	models.FieldMealTime,
	models.FieldFeedType,
	models.FieldItemKey,
	models.FieldPrepType,
	models.FieldCutSize,
}

// packingKey groups the packing checklist by meal group and item.
var packingKey = []models.Field{models.FieldGroupName, models.FieldItemKey}

// Dashboard computes the overview counts and the top-N ingredients by total
// gram weight.
func (s *Service) Dashboard(records []models.FeedingRecord, topN int) Dashboard {
	if topN <= 0 {
		topN = DefaultTopIngredients
	}

	overall := aggregation.Aggregate(records, nil, aggregation.Options{CountDistinct: true})

	d := Dashboard{RecordCount: len(records)}
	if len(overall) == 1 {
		g := overall[0]
		d.SiteCount = g.SiteCount()
		d.AnimalCount = g.AnimalCount()
		d.SpeciesCount = g.SpeciesCount()
		d.EnclosureCount = g.EnclosureCount()
	}

	ranked := aggregation.Aggregate(records, []models.Field{models.FieldItemKey}, aggregation.Options{
		CountDistinct: true,
		Less:          aggregation.ByTotalGramsDesc,
	})
	d.IngredientCount = len(ranked)

	for i, g := range ranked {
		if i == topN {
			break
		}
		grams := g.TotalGrams().InexactFloat64()
		d.TopIngredients = append(d.TopIngredients, models.IngredientTotal{
			Ingredient:  g.Key[0],
			TotalGrams:  grams,
			Display:     quantity.FormatGrams(grams),
			AnimalCount: g.AnimalCount(),
		})
	}

	s.logger.Debug("dashboard computed",
		zap.Int("records", d.RecordCount),
		zap.Int("ingredients", d.IngredientCount))

	return d
}

// SiteOverview groups the dataset by (site, enclosure, species).
func (s *Service) SiteOverview(records []models.FeedingRecord) []SiteOverviewRow {
	groups := aggregation.Aggregate(records,
		[]models.Field{models.FieldSite, models.FieldEnclosure, models.FieldCommonName},
		aggregation.Options{CountDistinct: true})

	rows := make([]SiteOverviewRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, SiteOverviewRow{
			SiteName:      g.Key[0],
			EnclosureName: g.Key[1],
			CommonName:    g.Key[2],
			AnimalCount:   g.AnimalCount(),
			Totals:        unitDisplays(g),
		})
	}
	return rows
}

// MealGroups groups the dataset by (meal group, item).
func (s *Service) MealGroups(records []models.FeedingRecord) []MealGroupRow {
	groups := aggregation.Aggregate(records, packingKey, aggregation.Options{CountDistinct: true})

	rows := make([]MealGroupRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, MealGroupRow{
			GroupName:   g.Key[0],
			ItemName:    g.Key[1],
			AnimalCount: g.AnimalCount(),
			Totals:      unitDisplays(g),
		})
	}
	return rows
}

// Pivot computes the eight-field pivot rows.
func (s *Service) Pivot(records []models.FeedingRecord) []PivotRow {
	groups := aggregation.Aggregate(records, pivotKey, aggregation.Options{})

	rows := make([]PivotRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, PivotRow{
			SiteName:      g.Key[0],
			EnclosureName: g.Key[1],
			CommonName:    g.Key[2],
			MealStartTime: g.Key[3],
			FeedTypeName:  g.Key[4],
			ItemName:      g.Key[5],
			PrepType:      g.Key[6],
			CutSize:       g.Key[7],
			Totals:        unitDisplays(g),
		})
	}
	return rows
}

// Consolidated merges animals with identical diet signatures per (site, meal
// time).
func (s *Service) Consolidated(records []models.FeedingRecord) ([]aggregation.ConsolidatedDiet, error) {
	diets, err := aggregation.Consolidate(records)
	if err != nil {
		return nil, fmt.Errorf("consolidate diets: %w", err)
	}
	return diets, nil
}

// PackingList computes the checklist groups with their stable ids; statuses
// are attached by the caller from session state.
func (s *Service) PackingList(records []models.FeedingRecord) ([]PackingRow, []string) {
	groups := aggregation.Aggregate(records, packingKey, aggregation.Options{CountDistinct: true})

	rows := make([]PackingRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, PackingRow{
			ID:          g.ID,
			GroupName:   g.Key[0],
			ItemName:    g.Key[1],
			AnimalCount: g.AnimalCount(),
			Totals:      unitDisplays(g),
			Status:      models.PackingPending,
		})
	}
	return rows, aggregation.GroupIDs(groups)
}

// Digest builds the snapshot the scheduler archives.
func (s *Service) Digest(records []models.FeedingRecord) models.ReportSnapshot {
	d := s.Dashboard(records, DefaultTopIngredients)
	now := s.now().UTC()
	return models.ReportSnapshot{
		Date:            now.Truncate(24 * time.Hour),
		RecordCount:     d.RecordCount,
		SiteCount:       d.SiteCount,
		AnimalCount:     d.AnimalCount,
		SpeciesCount:    d.SpeciesCount,
		IngredientCount: d.IngredientCount,
		TopIngredients:  d.TopIngredients,
		CreatedAt:       now,
	}
}

// SummaryInput pre-aggregates the dataset into the line-per-ingredient table
// the narrative-summary AI flow consumes.
func (s *Service) SummaryInput(records []models.FeedingRecord) string {
	ranked := aggregation.Aggregate(records, []models.Field{models.FieldItemKey}, aggregation.Options{
		CountDistinct: true,
		Less:          aggregation.ByTotalGramsDesc,
	})

	var b strings.Builder
	for _, g := range ranked {
		// Weight totals render in kilograms like the dashboard; groups with
		// no gram weight at all fall back to their per-unit displays.
		var display string
		if total := g.TotalGrams(); total.IsPositive() {
			display = quantity.FormatGrams(total.InexactFloat64())
		} else {
			displays := unitDisplays(g)
			parts := make([]string, len(displays))
			for i, ud := range displays {
				parts[i] = ud.Display
			}
			display = strings.Join(parts, " + ")
		}
		fmt.Fprintf(&b, "%s: %s for %d animals\n", g.Key[0], display, g.AnimalCount())
	}
	return b.String()
}

func unitDisplays(g *aggregation.Group) []UnitDisplay {
	names := g.UnitNames()
	rows := make([]UnitDisplay, 0, len(names))
	for _, unit := range names {
		ut := g.Units[unit]
		rows = append(rows, UnitDisplay{
			Unit:    unit,
			Display: quantity.Format(ut.Quantity.InexactFloat64(), ut.Grams.InexactFloat64(), unit),
		})
	}
	return rows
}
