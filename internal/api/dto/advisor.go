package dto

import "github.com/net2mulu/signature-gym/internal/domain/advisor"

// AdvisorRequest asks for a plan recommendation
type AdvisorRequest struct {
	VisitsPerWeek int      `json:"visitsPerWeek" validate:"min=0,max=14"`
	Household     int      `json:"household" validate:"min=0,max=10"`
	PreferredTime string   `json:"preferredTime,omitempty" validate:"omitempty,oneof=morning midday evening any"`
	Months        int      `json:"months" validate:"min=0,max=24"`
	Interests     []string `json:"interests,omitempty" validate:"max=10"`
}

// ToDomain converts the request for the advisor
func (r AdvisorRequest) ToDomain() advisor.Request {
	return advisor.Request{
		VisitsPerWeek: r.VisitsPerWeek,
		Household:     r.Household,
		PreferredTime: r.PreferredTime,
		Months:        r.Months,
		Interests:     r.Interests,
	}
}
