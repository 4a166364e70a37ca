package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/net2mulu/signature-gym/internal/domain/advisor"
	"github.com/net2mulu/signature-gym/internal/domain/catalog"
	"github.com/net2mulu/signature-gym/internal/domain/pricing"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/utils"
)

// AdvisorService implements advisor.Service with fixed rules and an optional explainer
type AdvisorService struct {
	calculator *pricing.Calculator
	explainer  advisor.Explainer
	logger     *logger.Logger
}

// NewAdvisorService creates an advisor; explainer may be nil
func NewAdvisorService(calc *pricing.Calculator, explainer advisor.Explainer, log *logger.Logger) advisor.Service {
	return &AdvisorService{calculator: calc, explainer: explainer, logger: log}
}

// Recommend picks the pricing cell that fits the request
func (s *AdvisorService) Recommend(ctx context.Context, req advisor.Request) (*advisor.Recommendation, error) {
	if err := validateAdvisorRequest(req); err != nil {
		return nil, err
	}

	var reasons []string
	sel := pricing.Selection{}

	switch {
	case req.Household >= 3:
		sel.Type = pricing.Family
		reasons = append(reasons, fmt.Sprintf("A family plan covers your household of %d.", req.Household))
	case req.Household == 2:
		sel.Type = pricing.Couple
		reasons = append(reasons, "A couple plan is cheaper than two individual memberships.")
	default:
		sel.Type = pricing.Single
	}

	switch {
	case req.Months >= 12:
		sel.Duration = pricing.TwelveMonth
		reasons = append(reasons, "Committing for a year gives the biggest savings, 8 guest passes and 2 months of pause.")
	case req.Months >= 6:
		sel.Duration = pricing.SixMonths
		reasons = append(reasons, "A 6 month term includes 4 guest passes and a month of pause.")
	case req.Months == 0 && req.VisitsPerWeek >= 3:
		sel.Duration = pricing.TwelveMonth
		reasons = append(reasons, "You train often, so a 12 month plan pays for itself.")
	default:
		sel.Duration = pricing.Monthly
		reasons = append(reasons, "Month to month keeps you flexible.")
	}

	switch {
	case req.VisitsPerWeek >= 5:
		sel.Access = pricing.AllDay
		reasons = append(reasons, "Training five or more times a week is easiest with all day access.")
	case req.PreferredTime == "morning":
		sel.Access = pricing.Peak
		reasons = append(reasons, "Peak hours (5-10 AM) match your morning sessions.")
	case req.PreferredTime == "midday":
		sel.Access = pricing.OffPeak
		reasons = append(reasons, "Off-peak access (10 AM - 4 PM) is the cheapest fit for midday training.")
	default:
		sel.Access = pricing.AllDay
	}

	quote, err := s.calculator.Quote(pricing.QuoteRequest{Selection: sel})
	if err != nil {
		return nil, err
	}
	if quote.Savings > 0 {
		reasons = append(reasons, fmt.Sprintf("You save %s compared to paying monthly.", utils.FormatMoney(quote.Savings, quote.Currency)))
	}

	rec := &advisor.Recommendation{
		Quote:        quote,
		MembershipID: pricing.FlexPlanID(sel),
		Reasons:      reasons,
	}

	for _, interest := range req.Interests {
		if st, ok := catalog.FindStudioType(strings.ToLower(strings.TrimSpace(interest))); ok {
			rec.StudioTypeID = st.ID
			rec.Reasons = append(rec.Reasons, fmt.Sprintf("Add %s classes at the studio from %s per drop-in.",
				st.Name, utils.FormatMoney(st.Pricing.DropIn, quote.Currency)))
			break
		}
	}

	if s.explainer != nil {
		summary, err := s.explainer.Explain(ctx, req, rec)
		if err != nil {
			s.logger.WithError(err).Warn("Advisor explanation unavailable")
		} else {
			rec.Summary = summary
		}
	}

	return rec, nil
}

func validateAdvisorRequest(req advisor.Request) error {
	var problems []string
	if req.VisitsPerWeek < 0 || req.VisitsPerWeek > 14 {
		problems = append(problems, "visitsPerWeek must be between 0 and 14")
	}
	if req.Household < 0 || req.Household > 10 {
		problems = append(problems, "household must be between 0 and 10")
	}
	if req.Months < 0 || req.Months > 36 {
		problems = append(problems, "months must be between 0 and 36")
	}
	switch req.PreferredTime {
	case "", "morning", "midday", "evening", "any":
	default:
		problems = append(problems, "preferredTime must be one of [morning midday evening any]")
	}
	if len(problems) > 0 {
		return errors.ValidationError("Invalid advisor request", problems)
	}
	return nil
}
