package client

import (
	"context"
	"net/url"
)

// MembershipService handles membership plan API calls
type MembershipService struct {
	client *Client
}

// MembershipListOptions filters a plan listing
type MembershipListOptions struct {
	Type            string // gym, studio or flex
	IncludeInactive bool
}

// List retrieves membership plans
func (s *MembershipService) List(ctx context.Context, opts *MembershipListOptions) ([]Membership, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Type != "" {
			query.Set("type", opts.Type)
		}
		if opts.IncludeInactive {
			query.Set("active", "false")
		}
	}

	path := "/api/memberships"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var plans []Membership
	if err := s.client.doRequest(ctx, "GET", path, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Get retrieves a single membership plan
func (s *MembershipService) Get(ctx context.Context, id string) (*Membership, error) {
	var m Membership
	if err := s.client.doRequest(ctx, "GET", "/api/memberships/"+url.PathEscape(id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
