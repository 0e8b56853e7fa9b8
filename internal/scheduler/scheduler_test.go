package scheduler

import (
	"context"
	"testing"

	"github.com/ashugangtok/dietiq/internal/config"
	"github.com/ashugangtok/dietiq/internal/domain/models"
	"github.com/ashugangtok/dietiq/internal/service/reporting"
	"github.com/ashugangtok/dietiq/internal/session"
)

type captureArchive struct {
	saved []models.ReportSnapshot
}

func (c *captureArchive) SaveReportSnapshot(_ context.Context, snapshot models.ReportSnapshot) error {
	c.saved = append(c.saved, snapshot)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		Reporting: config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"},
	}
}

func TestArchiveDigestSkipsEmptyDataset(t *testing.T) {
	archive := &captureArchive{}
	s := NewScheduler(testConfig(), reporting.NewService(nil), session.NewStore(), archive, nil)

	s.archiveDigest()
	if len(archive.saved) != 0 {
		t.Errorf("archived %d snapshots from empty dataset, want 0", len(archive.saved))
	}
}

func TestArchiveDigestStoresSnapshot(t *testing.T) {
	store := session.NewStore()
	store.ReplaceRecords(session.DefaultID, []models.FeedingRecord{
		{SiteName: "North", AnimalID: "A1", IngredientName: "Beef", Quantity: 1, Unit: "kg", QuantityInGrams: 1000},
	})

	archive := &captureArchive{}
	s := NewScheduler(testConfig(), reporting.NewService(nil), store, archive, nil)

	s.archiveDigest()
	if len(archive.saved) != 1 {
		t.Fatalf("archived %d snapshots, want 1", len(archive.saved))
	}
	if archive.saved[0].RecordCount != 1 || archive.saved[0].IngredientCount != 1 {
		t.Errorf("snapshot = %+v", archive.saved[0])
	}
}

func TestStartStopWithBadSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.CronSchedule = "not a schedule"

	s := NewScheduler(cfg, reporting.NewService(nil), session.NewStore(), nil, nil)
	s.Start()
	s.Stop()
}
