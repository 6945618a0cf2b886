package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/Don-calvins/Loan-Automation/internal/ports"
)

// IntervalScheduler triggers runs on a fixed interval, immediately on
// start and then on every tick.
type IntervalScheduler struct {
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

var _ ports.Scheduler = (*IntervalScheduler)(nil)

// NewIntervalScheduler builds a scheduler for the configured interval.
func NewIntervalScheduler(interval time.Duration) *IntervalScheduler {
	return &IntervalScheduler{interval: interval}
}

// Start begins ticking until the context is cancelled or Stop is called.
// Starting twice is a no-op.
func (s *IntervalScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	if s.stop != nil {
		return nil
	}

	// The goroutine holds its own reference so Stop never races it.
	stop := make(chan struct{})
	s.stop = stop

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		job(time.Now())
		for {
			select {
			case t := <-ticker.C:
				job(t)
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine. Safe to call more than once.
func (s *IntervalScheduler) Stop(ctx context.Context) error {
	if s.stop == nil {
		return nil
	}
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}
