package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/egguard/egguard-backend/internal/config"
	"github.com/egguard/egguard-backend/internal/domain/models"
	"github.com/egguard/egguard-backend/internal/repository/mongodb"
	"github.com/egguard/egguard-backend/internal/repository/sheets"
	"github.com/egguard/egguard-backend/internal/service/farmstats"
)

// Scheduler runs the daily per-farm stats report.
type Scheduler struct {
	cron     *cron.Cron
	farms    mongodb.FarmRepository
	statsSvc farmstats.Service
	exporter sheets.StatsExporter
	cfg      config.ReportingConfig
	location *time.Location
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. exporter may be nil when the
// sheets export is not configured; the report is then only logged.
func NewScheduler(cfg config.ReportingConfig, farms mongodb.FarmRepository, statsSvc farmstats.Service, exporter sheets.StatsExporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		farms:    farms,
		statsSvc: statsSvc,
		exporter: exporter,
		cfg:      cfg,
		location: location,
		logger:   logger,
	}
}

// Start registers the daily report job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailyReport)
	if err != nil {
		s.logger.Error("failed to schedule daily report", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailyReport() {
	s.logger.Info("generating daily stats report")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	yesterday := time.Now().In(s.location).AddDate(0, 0, -1)

	farms, err := s.farms.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list farms for daily report", zap.Error(err))
		return
	}

	for _, farm := range farms {
		stats, err := s.statsSvc.GetFarmStats(ctx, farm.ID, yesterday, yesterday)
		if err != nil {
			s.logger.Error("failed to compute daily stats",
				zap.String("farm_id", farm.ID.Hex()), zap.Error(err))
			continue
		}

		s.logger.Info("daily farm stats",
			zap.String("farm_id", farm.ID.Hex()),
			zap.String("farm", farm.Name),
			zap.Int64("total_picked", stats.TotalPickedEggs),
			zap.Float64("broken_percentage", stats.BrokenEggsPercentage))

		if s.exporter == nil {
			continue
		}

		row := models.DailyStatsRow{
			Date:     yesterday,
			FarmID:   farm.ID.Hex(),
			FarmName: farm.Name,
			Stats:    *stats,
		}
		if err := s.exporter.AppendDailyStats(ctx, row); err != nil {
			s.logger.Error("failed to export daily stats",
				zap.String("farm_id", farm.ID.Hex()), zap.Error(err))
		}
	}
}
