package dto

import (
	"github.com/net2mulu/signature-gym/internal/domain/checkout"
	"github.com/net2mulu/signature-gym/internal/domain/payment"
	"github.com/net2mulu/signature-gym/internal/domain/pricing"
)

// CheckoutRequest buys a seeded membership or a calculator selection
type CheckoutRequest struct {
	MembershipID  string                 `json:"membershipId,omitempty" validate:"required_without=Selection"`
	Selection     *pricing.Selection     `json:"selection,omitempty"`
	PaymentMethod string                 `json:"paymentMethod" validate:"required,oneof=card mobile"`
	Card          *payment.CardDetails   `json:"card,omitempty"`
	Mobile        *payment.MobileDetails `json:"mobile,omitempty"`
	UseReferral   bool                   `json:"useReferral,omitempty"`
}

// ToDomain converts the request for the checkout service
func (r CheckoutRequest) ToDomain() checkout.Request {
	return checkout.Request{
		MembershipID: r.MembershipID,
		Selection:    r.Selection,
		Method:       r.PaymentMethod,
		Card:         r.Card,
		Mobile:       r.Mobile,
		UseReferral:  r.UseReferral,
	}
}

// QuoteRequest prices a calculator selection
type QuoteRequest struct {
	MembershipType  string `json:"membershipType" validate:"required,oneof=single couple family"`
	Duration        string `json:"duration" validate:"required,oneof=monthly 6month 12month"`
	AccessTime      string `json:"accessTime" validate:"required,oneof=all-day peak off-peak"`
	ReferralCredits int    `json:"referralCredits,omitempty" validate:"min=0"`
	UseReferral     bool   `json:"useReferral,omitempty"`
}

// ToDomain converts the request for the calculator
func (r QuoteRequest) ToDomain() pricing.QuoteRequest {
	return pricing.QuoteRequest{
		Selection: pricing.Selection{
			Type:     pricing.MembershipType(r.MembershipType),
			Duration: pricing.Duration(r.Duration),
			Access:   pricing.AccessTime(r.AccessTime),
		},
		ReferralCredits: r.ReferralCredits,
		UseReferral:     r.UseReferral,
	}
}

// PricingTable is the full calculator matrix
type PricingTable struct {
	Currency string              `json:"currency"`
	Rows     []pricing.MatrixRow `json:"rows"`
}
