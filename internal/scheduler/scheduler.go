package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ashugangtok/dietiq/internal/config"
	"github.com/ashugangtok/dietiq/internal/repository/mongodb"
	"github.com/ashugangtok/dietiq/internal/service/reporting"
	"github.com/ashugangtok/dietiq/internal/session"
)

// Scheduler archives a daily digest of the default session's dataset.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	store        *session.Store
	archive      mongodb.Repository
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. The archive repository may
// be nil, in which case the digest is computed and logged but not stored.
func NewScheduler(cfg config.Config, reportingSvc *reporting.Service, store *session.Store, archive mongodb.Repository, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to local", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		reportingSvc: reportingSvc,
		store:        store,
		archive:      archive,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the digest job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.archiveDigest); err != nil {
		s.logger.Error("failed to schedule daily digest", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) archiveDigest() {
	records := s.store.Records(session.DefaultID)
	if len(records) == 0 {
		s.logger.Info("no dataset loaded, skipping digest")
		return
	}

	snapshot := s.reportingSvc.Digest(records)
	s.logger.Info("daily digest computed",
		zap.Int("records", snapshot.RecordCount),
		zap.Int("ingredients", snapshot.IngredientCount))

	if s.archive == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.archive.SaveReportSnapshot(ctx, snapshot); err != nil {
		s.logger.Error("failed to archive digest", zap.Error(err))
		return
	}
	s.logger.Info("daily digest archived")
}
