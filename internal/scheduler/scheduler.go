// Package scheduler runs periodic housekeeping jobs.
package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/erazemk/milams/internal/store"
)

// sweepTimeout bounds one sweep of expired sessions.
const sweepTimeout = time.Minute

// Scheduler deletes expired browser sessions on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
	db   *sql.DB
	now  func() time.Time
}

// New creates a scheduler that sweeps expired sessions on schedule, given in
// standard cron syntax or as a descriptor such as "@hourly".
func New(db *sql.DB, schedule string) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(),
		db:   db,
		now:  time.Now,
	}
	if _, err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return nil, fmt.Errorf("scheduling session sweep %q: %w", schedule, err)
	}
	return s, nil
}

// Start starts the scheduler in the background.
func (s *Scheduler) Start() {
	slog.Info("starting scheduler", "jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	slog.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.SweepExpired(ctx); err != nil {
		slog.Error("failed to sweep expired sessions", "error", err)
	}
}

// SweepExpired deletes every expired session and reports how many were
// removed.
func (s *Scheduler) SweepExpired(ctx context.Context) (int64, error) {
	n, err := store.DeleteExpiredSessions(ctx, s.db, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("expired sessions removed", "count", n)
	}
	return n, nil
}
