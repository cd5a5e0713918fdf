// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// CatalogRefresher reloads the offer catalog cache from its source of truth.
type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler manages background scheduled jobs using robfig/cron.
type Scheduler struct {
	cron    *cron.Cron
	catalog CatalogRefresher
	spec    string
	logger  *slog.Logger
}

// NewScheduler creates a new job scheduler.
func NewScheduler(catalog CatalogRefresher, spec string, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:    c,
		catalog: catalog,
		spec:    spec,
		logger:  logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.refreshCatalog)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
		slog.String("catalog_refresh", s.spec),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the catalog refresh (for admin use).
func (s *Scheduler) RunNow() {
	go s.refreshCatalog()
}

func (s *Scheduler) refreshCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	s.logger.Info("refreshing offer catalog")
	if err := s.catalog.Refresh(ctx); err != nil {
		s.logger.Error("catalog refresh failed", slog.Any("error", err))
		return
	}
	s.logger.Info("offer catalog refreshed")
}
