package client

import (
	"context"
	"net/url"
)

// PricingService handles pricing calculator API calls
type PricingService struct {
	client *Client
}

// QuoteRequest prices a calculator selection
type QuoteRequest struct {
	Selection
	ReferralCredits int  `json:"referralCredits,omitempty"`
	UseReferral     bool `json:"useReferral,omitempty"`
}

// Table retrieves the full pricing table
func (s *PricingService) Table(ctx context.Context) (*PriceTable, error) {
	var table PriceTable
	if err := s.client.doRequest(ctx, "GET", "/api/pricing", nil, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

// Quote prices one selection
func (s *PricingService) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	var q Quote
	if err := s.client.doRequest(ctx, "POST", "/api/pricing/quote", req, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// FAQ retrieves the pricing questions and answers
func (s *PricingService) FAQ(ctx context.Context) ([]FAQEntry, error) {
	var faq []FAQEntry
	if err := s.client.doRequest(ctx, "GET", "/api/pricing/faq", nil, &faq); err != nil {
		return nil, err
	}
	return faq, nil
}

// CatalogService handles gym and studio offering API calls
type CatalogService struct {
	client *Client
}

// Studio retrieves the studio offerings
func (s *CatalogService) Studio(ctx context.Context) (*StudioOfferings, error) {
	var offerings StudioOfferings
	if err := s.client.doRequest(ctx, "GET", "/api/catalog/studio", nil, &offerings); err != nil {
		return nil, err
	}
	return &offerings, nil
}

// StudioType retrieves one studio discipline
func (s *CatalogService) StudioType(ctx context.Context, id string) (*StudioType, error) {
	var st StudioType
	if err := s.client.doRequest(ctx, "GET", "/api/catalog/studio/"+url.PathEscape(id), nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
