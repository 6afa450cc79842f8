// Package scheduler runs the trade activity check on a cron schedule.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/guttosm/tradeactivity/internal/logger"
)

// Runner produces one report.
type Runner interface {
	GenerateReport(ctx context.Context) (string, error)
}

// Scheduler manages the periodic report runs.
type Scheduler struct {
	Cron   *cron.Cron
	Runner Runner
	Ctx    context.Context
}

// NewScheduler creates a Scheduler. Cron specs carry a seconds field.
func NewScheduler(ctx context.Context, runner Runner) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		Runner: runner,
		Ctx:    ctx,
	}
}

// Register adds the report task on spec, e.g. "0 0 6 * * *".
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.L().Info().Int("entries", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.L().Info().Msg("scheduler stopped")
}

// RunNow executes the report task immediately.
func (s *Scheduler) RunNow() {
	s.reportTask()
}

// reportTask produces one report and logs its text at info level.
func (s *Scheduler) reportTask() {
	log := logger.Component("scheduler")
	log.Info().Msg("running trade activity check")

	text, err := s.Runner.GenerateReport(s.Ctx)
	if err != nil {
		log.Error().Err(err).Msg("trade activity check")
		return
	}
	log.Info().Str("report", text).Msg("trade activity report")
}
