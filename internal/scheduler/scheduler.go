// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sbilibin2017/users-api/internal/logger"
)

// DefaultPingSchedule pings the database once a day at midnight.
const DefaultPingSchedule = "0 0 * * *"

const pingTimeout = 5 * time.Second

// Pinger checks that the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// StatusSetter records the outcome of the last ping.
type StatusSetter interface {
	SetServing(ok bool)
}

// Scheduler keeps the database connection warm and reports its health.
type Scheduler struct {
	cron   *cron.Cron
	db     Pinger
	status StatusSetter
}

// New creates a Scheduler. status may be nil.
func New(db Pinger, status StatusSetter) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		db:     db,
		status: status,
	}
}

// AddPing registers the database ping under a standard five-field cron spec.
func (s *Scheduler) AddPing(spec string) error {
	_, err := s.cron.AddFunc(spec, func() { s.Ping(context.Background()) })
	return err
}

// Ping checks the database once and updates the reported status.
func (s *Scheduler) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := s.db.PingContext(ctx)
	if err != nil {
		logger.Log.Errorw("database ping failed", "error", err)
	} else {
		logger.Log.Infow("database ping ok")
	}

	if s.status != nil {
		s.status.SetServing(err == nil)
	}
	return err
}

// Run starts the cron loop and blocks until ctx is done, then waits for running jobs.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
}
