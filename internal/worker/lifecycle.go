package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/net2mulu/signature-gym/internal/domain/subscription"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/robfig/cron/v3"
)

// lifecycleTimeout bounds one sweep so a stuck database cannot pile up runs
const lifecycleTimeout = 5 * time.Minute

// LifecycleScheduler runs the subscription lifecycle sweep on a cron schedule:
// expiring ended subscriptions, auto-resuming exhausted pauses and sending renewal reminders.
type LifecycleScheduler struct {
	service  subscription.Service
	schedule string
	logger   *logger.Logger
	now      func() time.Time

	scheduler    *cron.Cron
	runningMutex sync.Mutex
	isRunning    bool
}

// NewLifecycleScheduler validates schedule (standard five-field cron) and returns a stopped scheduler
func NewLifecycleScheduler(service subscription.Service, schedule string, log *logger.Logger) (*LifecycleScheduler, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid lifecycle schedule %q: %w", schedule, err)
	}
	return &LifecycleScheduler{
		service:  service,
		schedule: schedule,
		logger:   log,
		now:      time.Now,
	}, nil
}

// Start runs one sweep immediately and then follows the schedule until Stop or ctx is done
func (s *LifecycleScheduler) Start(ctx context.Context) error {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()

	if s.isRunning {
		return fmt.Errorf("lifecycle scheduler is already running")
	}

	s.scheduler = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := s.scheduler.AddFunc(s.schedule, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule lifecycle sweep: %w", err)
	}

	go s.RunOnce(ctx)
	s.scheduler.Start()
	s.isRunning = true

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.WithFields(map[string]interface{}{
		"schedule": s.schedule,
	}).Info("Lifecycle scheduler started")
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish
func (s *LifecycleScheduler) Stop() {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()

	if !s.isRunning {
		return
	}
	<-s.scheduler.Stop().Done()
	s.isRunning = false
	s.logger.Info("Lifecycle scheduler stopped")
}

// IsRunning reports whether the schedule is active
func (s *LifecycleScheduler) IsRunning() bool {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()
	return s.isRunning
}

// RunOnce performs a single sweep and logs the outcome
func (s *LifecycleScheduler) RunOnce(ctx context.Context) *subscription.LifecycleReport {
	if ctx.Err() != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, lifecycleTimeout)
	defer cancel()

	report, err := s.service.RunLifecycle(ctx, s.now())
	if err != nil {
		s.logger.ErrorWithErr(err, "Subscription lifecycle sweep failed")
		return report
	}

	entry := s.logger.WithFields(map[string]interface{}{
		"expired":   report.Expired,
		"resumed":   report.Resumed,
		"reminders": report.Reminders,
	})
	if report.Expired+report.Resumed+report.Reminders > 0 {
		entry.Info("Subscription lifecycle sweep completed")
	} else {
		entry.Debug("Subscription lifecycle sweep completed")
	}
	return report
}
