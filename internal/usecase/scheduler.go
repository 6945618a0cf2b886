package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Don-calvins/Loan-Automation/internal/ports"
)

// Scheduler wires the interval driver with the report pipeline for
// daemon mode. A failed run is logged and the schedule keeps going;
// cross-run retry orchestration is out of scope.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	logger   *logrus.Entry
}

// NewScheduler returns a helper to start/stop recurring runs.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, logger *logrus.Entry) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, logger: logger}
}

// Start registers the pipeline with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(trigger time.Time) {
		if err := s.pipeline.Run(ctx, trigger); err != nil && s.logger != nil {
			s.logger.WithError(err).Error("scheduled run failed")
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
