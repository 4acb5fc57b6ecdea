package stats

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// defaultSchedule runs the roll-up at 02:00 every day.
const defaultSchedule = "0 2 * * *"

// Scheduler triggers the daily roll-up on a cron cadence.
type Scheduler struct {
	aggregator *Aggregator
	cron       *cron.Cron
	schedule   string
	logger     *slog.Logger
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedule sets the cron expression.
// Default is "0 2 * * *".
func WithSchedule(schedule string) SchedulerOption {
	return func(s *Scheduler) {
		if schedule != "" {
			s.schedule = schedule
		}
	}
}

// WithSchedulerLogger sets a custom logger.
// Default is slog.Default().
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "stats-scheduler")
	}
}

// NewScheduler creates a scheduler for the aggregator. The schedule is
// validated here so a bad expression fails at startup, not at 2am.
func NewScheduler(aggregator *Aggregator, opts ...SchedulerOption) (*Scheduler, error) {
	if aggregator == nil {
		return nil, ErrRepositoriesRequired
	}

	s := &Scheduler{
		aggregator: aggregator,
		schedule:   defaultSchedule,
		logger:     slog.Default().With("component", "stats-scheduler"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return nil, err
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.aggregator.RollupToday(context.Background()); err != nil {
			s.logger.Error("scheduled roll-up failed", "err", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins scheduled execution.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("roll-up scheduler started", "schedule", s.schedule)
}

// Stop halts scheduled execution, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
