package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ashugangtok/dietiq/internal/config"
	"github.com/ashugangtok/dietiq/internal/domain/models"
)

// Repository defines the spreadsheet ingestion operations supported by the
// Google Sheets adapter.
type Repository interface {
	ReadFeedingRecords(ctx context.Context) ([]models.FeedingRecord, error)
}

// Fixed column order of the feeding-record export, columns A through S.
const (
	colSite = iota
	colAnimalID
	colCommonName
	colScientificName
	colEnclosure
	colFeedType
	colIngredient
	colItemKind
	colItemName
	colGroupName
	colQuantity
	colUnit
	colQuantityGrams
	colMealTime
	colDietName
	colDietNumber
	colPrepType
	colCutSize
	colFeedingDate
	columnCount
)

// GoogleSheetRepository implements the Repository interface using the
// official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	readRange     string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     cfg.ReadRange,
		logger:        logger,
	}, nil
}

// ReadFeedingRecords fetches the export range and maps each row onto the
// canonical record shape. The header row, when present, is skipped.
func (r *GoogleSheetRepository) ReadFeedingRecords(ctx context.Context) ([]models.FeedingRecord, error) {
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, r.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", r.readRange, err)
	}

	records := make([]models.FeedingRecord, 0, len(resp.Values))
	for i, row := range resp.Values {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		rec, ok := mapRow(row)
		if !ok {
			r.logger.Debug("skip malformed sheet row", zap.Int("row", i+1))
			continue
		}
		records = append(records, rec)
	}

	r.logger.Info("feeding records loaded from sheet", zap.Int("count", len(records)))
	return records, nil
}

func mapRow(row []interface{}) (models.FeedingRecord, bool) {
	qty, err := parseFloat(cell(row, colQuantity))
	if err != nil {
		return models.FeedingRecord{}, false
	}
	grams, err := parseFloat(cell(row, colQuantityGrams))
	if err != nil {
		grams = 0
	}

	return models.FeedingRecord{
		SiteName:        cell(row, colSite),
		AnimalID:        cell(row, colAnimalID),
		CommonName:      cell(row, colCommonName),
		ScientificName:  cell(row, colScientificName),
		EnclosureName:   cell(row, colEnclosure),
		FeedTypeName:    cell(row, colFeedType),
		IngredientName:  cell(row, colIngredient),
		ItemKind:        itemKind(cell(row, colItemKind)),
		ItemName:        cell(row, colItemName),
		GroupName:       cell(row, colGroupName),
		Quantity:        qty,
		Unit:            cell(row, colUnit),
		QuantityInGrams: grams,
		MealStartTime:   cell(row, colMealTime),
		DietName:        cell(row, colDietName),
		DietNumber:      cell(row, colDietNumber),
		PrepType:        cell(row, colPrepType),
		CutSize:         cell(row, colCutSize),
		FeedingDate:     cell(row, colFeedingDate),
	}, true
}

func itemKind(value string) models.ItemKind {
	switch strings.ToLower(value) {
	case string(models.ItemRecipe):
		return models.ItemRecipe
	case string(models.ItemCombo):
		return models.ItemCombo
	default:
		return models.ItemIngredient
	}
}

func isHeaderRow(row []interface{}) bool {
	if len(row) == 0 {
		return false
	}
	_, err := parseFloat(cell(row, colQuantity))
	return err != nil
}

func cell(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}

func parseFloat(value string) (float64, error) {
	if value == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
}
