// Package scheduler runs the periodic maintenance jobs: purging expired
// admin sessions and refreshing the dashboard statistics cache.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/mkcms/mkcms-go/internal/session"
	"github.com/mkcms/mkcms-go/internal/stats"
)

// Cron expressions for the maintenance jobs.
const (
	purgeSchedule   = "@hourly"
	refreshSchedule = "*/5 * * * *"
	resetSchedule   = "@daily"
)

// Scheduler drives the background maintenance jobs.
type Scheduler struct {
	sessions  *session.Manager
	stats     *stats.Aggregator
	demoReset func() error
	cron      *cron.Cron
	logger    *slog.Logger
}

// New creates a scheduler over the session manager and stats aggregator.
// The aggregator may be nil when summary caching is disabled.
func New(sessions *session.Manager, aggregator *stats.Aggregator, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		sessions: sessions,
		stats:    aggregator,
		cron:     cron.New(),
		logger:   logger,
	}
}

// EnableDemoReset registers a daily job that restores the demo content
// baseline. Must be called before Start.
func (s *Scheduler) EnableDemoReset(reset func() error) {
	s.demoReset = reset
}

// Start registers the jobs and begins running them.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(purgeSchedule, s.purgeSessions); err != nil {
		return err
	}
	if s.stats != nil {
		if _, err := s.cron.AddFunc(refreshSchedule, s.refreshStats); err != nil {
			return err
		}
	}
	if s.demoReset != nil {
		if _, err := s.cron.AddFunc(resetSchedule, s.runDemoReset); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop waits for running jobs to finish and stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// purgeSessions drops expired admin sessions.
func (s *Scheduler) purgeSessions() {
	n, err := s.sessions.PurgeExpired(context.Background())
	if err != nil {
		s.logger.Error("session purge failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("session purge finished", "purged", n)
	}
}

// runDemoReset restores the seeded demo content.
func (s *Scheduler) runDemoReset() {
	if err := s.demoReset(); err != nil {
		s.logger.Error("demo reset failed", "error", err)
		return
	}
	s.logger.Info("demo content reset")
}

// refreshStats recomputes the dashboard summary so cached reads stay warm.
func (s *Scheduler) refreshStats() {
	ctx := context.Background()
	s.stats.Invalidate(ctx)
	if _, err := s.stats.Summary(ctx); err != nil {
		s.logger.Error("stats refresh failed", "error", err)
	}
}
