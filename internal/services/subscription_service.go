package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/net2mulu/signature-gym/internal/domain/membership"
	"github.com/net2mulu/signature-gym/internal/domain/subscription"
	"github.com/net2mulu/signature-gym/internal/domain/user"
	"github.com/net2mulu/signature-gym/internal/events"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/metrics"
)

const day = 24 * time.Hour

// SubscriptionService implements subscription.Service
type SubscriptionService struct {
	repo         subscription.Repository
	memberships  membership.Repository
	users        user.Repository
	publisher    events.Publisher
	logger       *logger.Logger
	reminderDays int
	now          func() time.Time
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(
	repo subscription.Repository,
	memberships membership.Repository,
	users user.Repository,
	publisher events.Publisher,
	log *logger.Logger,
	reminderDays int,
) subscription.Service {
	if reminderDays <= 0 {
		reminderDays = 7
	}
	return &SubscriptionService{
		repo:         repo,
		memberships:  memberships,
		users:        users,
		publisher:    publisher,
		logger:       log,
		reminderDays: reminderDays,
		now:          time.Now,
	}
}

// Create issues a new active subscription
func (s *SubscriptionService) Create(ctx context.Context, in subscription.CreateInput) (*subscription.Subscription, error) {
	if in.Months <= 0 {
		return nil, errors.BadRequest("Subscription duration must be at least one month")
	}
	start := in.Start
	if start.IsZero() {
		start = s.now()
	}

	sub := &subscription.Subscription{
		ID:                 uuid.New().String(),
		UserID:             in.UserID,
		MembershipID:       in.MembershipID,
		Status:             subscription.StatusActive,
		StartDate:          start,
		EndDate:            start.AddDate(0, in.Months, 0),
		GuestPasses:        in.GuestPasses,
		PauseMonthsAllowed: in.PauseMonths,
		PaymentID:          in.PaymentID,
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create subscription")
		return nil, err
	}

	metrics.RecordSubscriptionTransition(string(sub.Status))
	s.publish(ctx, events.SubscriptionCreated, sub)

	s.logger.WithFields(map[string]interface{}{
		"user_id":         sub.UserID,
		"subscription_id": sub.ID,
		"membership_id":   sub.MembershipID,
		"end_date":        sub.EndDate,
	}).Info("Subscription created")

	return sub, nil
}

// ListForUser returns a user's subscriptions
func (s *SubscriptionService) ListForUser(ctx context.Context, userID int64) ([]*subscription.Subscription, error) {
	subs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []*subscription.Subscription{}
	}
	return subs, nil
}

// Get returns a subscription owned by userID
func (s *SubscriptionService) Get(ctx context.Context, userID int64, id string) (*subscription.Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, errors.NotFound("Subscription")
	}
	return sub, nil
}

// Pause pauses an active subscription
func (s *SubscriptionService) Pause(ctx context.Context, userID int64, id string) (*subscription.Subscription, error) {
	sub, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if sub.Status != subscription.StatusActive {
		return nil, errors.InvalidState("Only active subscriptions can be paused")
	}
	if sub.RemainingPauseDays() <= 0 {
		return nil, errors.InvalidState("No pause allowance remaining on this membership")
	}

	now := s.now()
	sub.Status = subscription.StatusPaused
	sub.PausedAt = &now

	return sub, s.save(ctx, sub, events.SubscriptionPaused)
}

// Resume resumes a paused subscription and extends its end date
func (s *SubscriptionService) Resume(ctx context.Context, userID int64, id string) (*subscription.Subscription, error) {
	sub, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if sub.Status != subscription.StatusPaused {
		return nil, errors.InvalidState("Only paused subscriptions can be resumed")
	}

	s.resume(sub, s.now())
	return sub, s.save(ctx, sub, events.SubscriptionResumed)
}

// resume reactivates sub, charging whole paused days against the allowance
func (s *SubscriptionService) resume(sub *subscription.Subscription, now time.Time) {
	days := 0
	if sub.PausedAt != nil {
		days = int(math.Ceil(now.Sub(*sub.PausedAt).Hours() / 24))
	}
	if remaining := sub.RemainingPauseDays(); days > remaining {
		days = remaining
	}
	if days < 0 {
		days = 0
	}

	sub.PausedDays += days
	sub.EndDate = sub.EndDate.Add(time.Duration(days) * day)
	sub.PausedAt = nil
	sub.Status = subscription.StatusActive
}

// Cancel cancels an open subscription
func (s *SubscriptionService) Cancel(ctx context.Context, userID int64, id string) (*subscription.Subscription, error) {
	sub, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return sub, s.cancel(ctx, sub)
}

func (s *SubscriptionService) cancel(ctx context.Context, sub *subscription.Subscription) error {
	if !sub.IsOpen() {
		return errors.InvalidState("Subscription is already " + string(sub.Status))
	}
	sub.Status = subscription.StatusCancelled
	sub.PausedAt = nil
	return s.save(ctx, sub, events.SubscriptionCancelled)
}

// UseGuestPass consumes one guest pass
func (s *SubscriptionService) UseGuestPass(ctx context.Context, userID int64, id string) (*subscription.Subscription, error) {
	sub, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if sub.Status != subscription.StatusActive {
		return nil, errors.InvalidState("Guest passes can only be used on active subscriptions")
	}
	if sub.GuestPasses <= 0 {
		return nil, errors.InvalidState("No guest passes remaining")
	}

	sub.GuestPasses--
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	s.publish(ctx, events.GuestPassUsed, sub)
	return sub, nil
}

// Dashboard builds the member overview
func (s *SubscriptionService) Dashboard(ctx context.Context, userID int64) (*subscription.Dashboard, error) {
	subs, err := s.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := &subscription.Dashboard{
		Subscriptions: subs,
		Memberships:   make(map[string]*membership.Membership),
	}

	for _, sub := range subs {
		if _, seen := d.Memberships[sub.MembershipID]; !seen {
			m, err := s.memberships.GetByID(ctx, sub.MembershipID)
			switch {
			case err == nil:
				d.Memberships[sub.MembershipID] = m
			case errors.IsNotFound(err):
				s.logger.With("membership_id", sub.MembershipID).Warn("Subscription references unknown membership")
			default:
				return nil, err
			}
		}

		if sub.Status != subscription.StatusActive {
			continue
		}
		d.ActiveCount++
		d.GuestPasses += sub.GuestPasses
		if d.NextEndDate == nil || sub.EndDate.Before(*d.NextEndDate) {
			end := sub.EndDate
			d.NextEndDate = &end
		}
	}

	return d, nil
}

// RunLifecycle expires, auto-resumes and sends renewal reminders
func (s *SubscriptionService) RunLifecycle(ctx context.Context, now time.Time) (*subscription.LifecycleReport, error) {
	started := time.Now()
	defer func() { metrics.RecordLifecycleRun(time.Since(started)) }()

	report := &subscription.LifecycleReport{}

	paused, err := s.repo.ListPaused(ctx)
	if err != nil {
		return nil, err
	}
	for _, sub := range paused {
		if sub.PausedAt == nil {
			continue
		}
		used := sub.PausedDays + int(now.Sub(*sub.PausedAt)/day)
		if used < sub.PauseAllowanceDays() {
			continue
		}
		s.resume(sub, now)
		if err := s.save(ctx, sub, events.SubscriptionResumed); err != nil {
			return report, err
		}
		report.Resumed++
	}

	due, err := s.repo.ListDueForExpiry(ctx, now)
	if err != nil {
		return report, err
	}
	for _, sub := range due {
		sub.Status = subscription.StatusExpired
		if err := s.save(ctx, sub, events.SubscriptionExpired); err != nil {
			return report, err
		}
		report.Expired++
	}

	ending, err := s.repo.ListEndingBetween(ctx, now, now.Add(time.Duration(s.reminderDays)*day))
	if err != nil {
		return report, err
	}
	for _, sub := range ending {
		sent, err := s.remind(ctx, sub)
		if err != nil {
			return report, err
		}
		if sent {
			report.Reminders++
		}
		notified := now
		sub.RenewalNotifiedAt = &notified
		if err := s.repo.Update(ctx, sub); err != nil {
			return report, err
		}
	}

	if counts, err := s.repo.CountByStatus(ctx); err == nil {
		for status, n := range counts {
			metrics.SetSubscriptions(string(status), float64(n))
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"expired":   report.Expired,
		"resumed":   report.Resumed,
		"reminders": report.Reminders,
	}).Info("Subscription lifecycle run complete")

	return report, nil
}

func (s *SubscriptionService) remind(ctx context.Context, sub *subscription.Subscription) (bool, error) {
	u, err := s.users.GetByID(ctx, sub.UserID)
	if errors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !u.NotifyRenewals {
		return false, nil
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":         u.ID,
		"email":           u.Email,
		"subscription_id": sub.ID,
		"end_date":        sub.EndDate,
	}).Info("Renewal reminder")
	s.publish(ctx, events.RenewalReminder, sub)
	return true, nil
}

func (s *SubscriptionService) save(ctx context.Context, sub *subscription.Subscription, eventType string) error {
	if err := s.repo.Update(ctx, sub); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update subscription")
		return err
	}
	metrics.RecordSubscriptionTransition(string(sub.Status))
	s.publish(ctx, eventType, sub)

	s.logger.WithFields(map[string]interface{}{
		"subscription_id": sub.ID,
		"status":          sub.Status,
	}).Info("Subscription updated")
	return nil
}

func (s *SubscriptionService) publish(ctx context.Context, eventType string, sub *subscription.Subscription) {
	err := s.publisher.Publish(ctx, events.StreamSubscriptions, eventType, events.SubscriptionEvent{
		SubscriptionID: sub.ID,
		UserID:         sub.UserID,
		MembershipID:   sub.MembershipID,
		Status:         string(sub.Status),
		EndDate:        sub.EndDate,
	})
	if err != nil {
		s.logger.WithError(err).With("event", eventType).Warn("Failed to publish subscription event")
	}
}
