package usecase

import (
	"context"
	"log/slog"
	"time"

	"designdaily/internal/ports"
)

// Runner executes the daily workflow for a trigger time.
type Runner interface {
	RunDay(ctx context.Context, day time.Time) error
}

// Scheduler binds a clock-driven trigger to the daily workflow.
type Scheduler struct {
	driver ports.Scheduler
	runner Runner
	logger *slog.Logger
}

// NewScheduler constructs the scheduling binding.
func NewScheduler(driver ports.Scheduler, runner Runner, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{driver: driver, runner: runner, logger: logger}
}

// Start arms the underlying trigger. Each firing runs the workflow; a
// failed run is logged and the trigger stays armed for the next day.
func (s *Scheduler) Start(ctx context.Context) error {
	return s.driver.Start(ctx, func(trigger time.Time) {
		if err := s.runner.RunDay(ctx, trigger); err != nil {
			s.logger.Error("daily run failed", "date", trigger.Format("2006-01-02"), "error", err)
		}
	})
}

// Stop disarms the trigger and waits for shutdown.
func (s *Scheduler) Stop(ctx context.Context) error {
	return s.driver.Stop(ctx)
}
