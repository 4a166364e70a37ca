package subscription

import (
	"time"

	"github.com/net2mulu/signature-gym/internal/domain/membership"
)

// Status is a subscription lifecycle state
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusPaused    Status = "PAUSED"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
)

// Statuses lists every status
var Statuses = []Status{StatusActive, StatusPaused, StatusExpired, StatusCancelled}

// pauseMonthDays is the length of one month of pause allowance
const pauseMonthDays = 30

// Subscription is a member's purchased membership
type Subscription struct {
	ID                 string     `json:"id"`
	UserID             int64      `json:"userId"`
	MembershipID       string     `json:"membershipId"`
	Status             Status     `json:"status"`
	StartDate          time.Time  `json:"startDate"`
	EndDate            time.Time  `json:"endDate"`
	GuestPasses        int        `json:"guestPasses"`
	PauseMonthsAllowed int        `json:"pauseMonthsAllowed"`
	PausedAt           *time.Time `json:"pausedAt,omitempty"`
	PausedDays         int        `json:"pausedDays"`
	PaymentID          string     `json:"paymentId,omitempty"`
	RenewalNotifiedAt  *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// PauseAllowanceDays is the total number of days the subscription may be paused
func (s *Subscription) PauseAllowanceDays() int {
	return s.PauseMonthsAllowed * pauseMonthDays
}

// RemainingPauseDays is the unused pause allowance
func (s *Subscription) RemainingPauseDays() int {
	left := s.PauseAllowanceDays() - s.PausedDays
	if left < 0 {
		return 0
	}
	return left
}

// IsOpen reports whether the subscription still grants or can regain access
func (s *Subscription) IsOpen() bool {
	return s.Status == StatusActive || s.Status == StatusPaused
}

// Dashboard is the member overview
type Dashboard struct {
	ActiveCount   int                               `json:"activeCount"`
	GuestPasses   int                               `json:"guestPasses"`
	NextEndDate   *time.Time                        `json:"nextEndDate,omitempty"`
	Subscriptions []*Subscription                   `json:"subscriptions"`
	Memberships   map[string]*membership.Membership `json:"memberships"`
}

// LifecycleReport summarises one lifecycle sweep
type LifecycleReport struct {
	Expired   int `json:"expired"`
	Resumed   int `json:"resumed"`
	Reminders int `json:"reminders"`
}
