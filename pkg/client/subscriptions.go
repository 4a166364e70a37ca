package client

import (
	"context"
	"net/url"
)

// SubscriptionService handles subscription and checkout API calls
type SubscriptionService struct {
	client *Client
}

// CardDetails are the card fields collected at checkout
type CardDetails struct {
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"` // MM/YY
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholderName"`
}

// MobileDetails are the mobile money fields collected at checkout
type MobileDetails struct {
	PhoneNumber string `json:"phoneNumber"`
	Provider    string `json:"provider"` // telebirr, cbe-birr
}

// CheckoutRequest buys a membership plan or a calculator selection
type CheckoutRequest struct {
	MembershipID  string         `json:"membershipId,omitempty"`
	Selection     *Selection     `json:"selection,omitempty"`
	PaymentMethod string         `json:"paymentMethod"` // card, mobile
	Card          *CardDetails   `json:"card,omitempty"`
	Mobile        *MobileDetails `json:"mobile,omitempty"`
	UseReferral   bool           `json:"useReferral,omitempty"`
}

// List retrieves the member's subscriptions
func (s *SubscriptionService) List(ctx context.Context) ([]Subscription, error) {
	var subs []Subscription
	if err := s.client.doRequest(ctx, "GET", "/api/subscriptions", nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Get retrieves one subscription
func (s *SubscriptionService) Get(ctx context.Context, id string) (*Subscription, error) {
	return s.action(ctx, "GET", id, "")
}

// Pause freezes a subscription against its pause allowance
func (s *SubscriptionService) Pause(ctx context.Context, id string) (*Subscription, error) {
	return s.action(ctx, "POST", id, "/pause")
}

// Resume reactivates a paused subscription
func (s *SubscriptionService) Resume(ctx context.Context, id string) (*Subscription, error) {
	return s.action(ctx, "POST", id, "/resume")
}

// Cancel cancels a subscription
func (s *SubscriptionService) Cancel(ctx context.Context, id string) (*Subscription, error) {
	return s.action(ctx, "POST", id, "/cancel")
}

// UseGuestPass spends one guest pass
func (s *SubscriptionService) UseGuestPass(ctx context.Context, id string) (*Subscription, error) {
	return s.action(ctx, "POST", id, "/guest-pass")
}

func (s *SubscriptionService) action(ctx context.Context, method, id, suffix string) (*Subscription, error) {
	var sub Subscription
	if err := s.client.doRequest(ctx, method, "/api/subscriptions/"+url.PathEscape(id)+suffix, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Dashboard retrieves the member overview
func (s *SubscriptionService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	if err := s.client.doRequest(ctx, "GET", "/api/dashboard", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Checkout pays for a membership and starts a subscription
func (s *SubscriptionService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	var result CheckoutResult
	if err := s.client.doRequest(ctx, "POST", "/api/checkout", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Upgrade replaces an open subscription with a new plan
func (s *SubscriptionService) Upgrade(ctx context.Context, id string, req CheckoutRequest) (*CheckoutResult, error) {
	var result CheckoutResult
	if err := s.client.doRequest(ctx, "POST", "/api/subscriptions/"+url.PathEscape(id)+"/upgrade", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
