package advisor

import (
	"context"

	"github.com/net2mulu/signature-gym/internal/domain/pricing"
)

// Request describes how a prospective member wants to train
type Request struct {
	VisitsPerWeek int      `json:"visitsPerWeek"`
	Household     int      `json:"household"`
	PreferredTime string   `json:"preferredTime"` // morning, midday, evening, any
	Months        int      `json:"months"`
	Interests     []string `json:"interests"`
}

// Recommendation is a suggested plan
type Recommendation struct {
	Quote        *pricing.Quote `json:"quote"`
	MembershipID string         `json:"membershipId"`
	StudioTypeID string         `json:"studioTypeId,omitempty"`
	Reasons      []string       `json:"reasons"`
	Summary      string         `json:"summary,omitempty"`
}

// Service recommends plans
type Service interface {
	Recommend(ctx context.Context, req Request) (*Recommendation, error)
}

// Explainer writes a short natural-language summary of a recommendation
type Explainer interface {
	Explain(ctx context.Context, req Request, rec *Recommendation) (string, error)
}
