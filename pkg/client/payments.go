package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// PaymentService handles payment history API calls
type PaymentService struct {
	client *Client
}

// Methods retrieves the accepted payment methods
func (s *PaymentService) Methods(ctx context.Context) ([]PaymentMethod, error) {
	var methods []PaymentMethod
	if err := s.client.doRequest(ctx, "GET", "/api/payments/methods", nil, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// List retrieves a page of the member's payments
func (s *PaymentService) List(ctx context.Context, opts *ListOptions) (*PaymentPage, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
	}

	path := "/api/payments"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page PaymentPage
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves one payment
func (s *PaymentService) Get(ctx context.Context, id string) (*Payment, error) {
	var p Payment
	if err := s.client.doRequest(ctx, "GET", "/api/payments/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Refund refunds a completed payment
func (s *PaymentService) Refund(ctx context.Context, id string) (*Payment, error) {
	var p Payment
	if err := s.client.doRequest(ctx, "POST", "/api/payments/"+url.PathEscape(id)+"/refund", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Receipt downloads the PDF receipt of a payment
func (s *PaymentService) Receipt(ctx context.Context, id string) ([]byte, error) {
	body, contentType, err := s.client.do(ctx, "GET", "/api/payments/"+url.PathEscape(id)+"/receipt", nil)
	if err != nil {
		return nil, err
	}
	if contentType != "application/pdf" {
		return nil, fmt.Errorf("unexpected receipt content type %q", contentType)
	}
	return body, nil
}
