package checkout

import (
	"context"

	"github.com/net2mulu/signature-gym/internal/domain/membership"
	"github.com/net2mulu/signature-gym/internal/domain/payment"
	"github.com/net2mulu/signature-gym/internal/domain/pricing"
	"github.com/net2mulu/signature-gym/internal/domain/subscription"
)

// Request is a purchase of one membership
type Request struct {
	// MembershipID selects a seeded plan; empty when Selection is used
	MembershipID string
	// Selection prices a flex plan from the calculator
	Selection   *pricing.Selection
	Method      string
	Card        *payment.CardDetails
	Mobile      *payment.MobileDetails
	UseReferral bool
}

// Result is a completed purchase
type Result struct {
	Payment      *payment.Payment           `json:"payment"`
	Subscription *subscription.Subscription `json:"subscription"`
	Membership   *membership.Membership     `json:"membership"`
	// Replaced is the subscription cancelled by an upgrade
	Replaced *subscription.Subscription `json:"replaced,omitempty"`
}

// Service defines the purchase flow
type Service interface {
	// Checkout charges the member and issues a subscription
	Checkout(ctx context.Context, userID int64, req Request) (*Result, error)

	// Upgrade replaces an open subscription, crediting its unused value
	Upgrade(ctx context.Context, userID int64, subscriptionID string, req Request) (*Result, error)
}
