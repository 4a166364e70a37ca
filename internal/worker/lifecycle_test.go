package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/net2mulu/signature-gym/internal/domain/subscription"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/stretchr/testify/require"
)

// countingService records lifecycle calls; the other methods are unused here
type countingService struct {
	subscription.Service
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (s *countingService) RunLifecycle(ctx context.Context, now time.Time) (*subscription.LifecycleReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, now)
	if s.err != nil {
		return nil, s.err
	}
	return &subscription.LifecycleReport{Expired: 1, Reminders: 2}, nil
}

func (s *countingService) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestNewLifecycleScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewLifecycleScheduler(&countingService{}, "every tuesday", logger.Nop())
	require.Error(t, err)
}

func TestLifecycleScheduler_RunOnce(t *testing.T) {
	svc := &countingService{}
	s, err := NewLifecycleScheduler(svc, "*/15 * * * *", logger.Nop())
	require.NoError(t, err)

	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	report := s.RunOnce(context.Background())
	require.NotNil(t, report)
	require.Equal(t, 1, report.Expired)
	require.Equal(t, 2, report.Reminders)
	require.Equal(t, []time.Time{fixed}, svc.calls)
}

func TestLifecycleScheduler_RunOnce_Error(t *testing.T) {
	svc := &countingService{err: errors.New("database is locked")}
	s, err := NewLifecycleScheduler(svc, "@hourly", logger.Nop())
	require.NoError(t, err)

	require.Nil(t, s.RunOnce(context.Background()))
	require.Equal(t, 1, svc.count())
}

func TestLifecycleScheduler_StartStop(t *testing.T) {
	svc := &countingService{}
	s, err := NewLifecycleScheduler(svc, "@every 1h", logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	require.True(t, s.IsRunning())
	require.Error(t, s.Start(ctx), "second start must fail")

	require.Eventually(t, func() bool { return svc.count() == 1 }, time.Second, 10*time.Millisecond,
		"start runs an immediate sweep")

	cancel()
	require.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}
