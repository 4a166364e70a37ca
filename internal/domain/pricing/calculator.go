package pricing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/net2mulu/signature-gym/internal/pkg/errors"
)

// DefaultReferralDiscount is the share taken off per referral credit
const DefaultReferralDiscount = 0.2

// Calculator prices selections from the pricing table
type Calculator struct {
	currency         string
	referralDiscount float64
}

// NewCalculator creates a calculator
func NewCalculator(currency string, referralDiscount float64) *Calculator {
	if currency == "" {
		currency = "USD"
	}
	if referralDiscount <= 0 || referralDiscount >= 1 {
		referralDiscount = DefaultReferralDiscount
	}
	return &Calculator{currency: currency, referralDiscount: referralDiscount}
}

// Validate checks that every part of the selection is known
func (s Selection) Validate() error {
	var bad []string
	if !s.Type.Valid() {
		bad = append(bad, fmt.Sprintf("membershipType %q", s.Type))
	}
	if !s.Duration.Valid() {
		bad = append(bad, fmt.Sprintf("duration %q", s.Duration))
	}
	if !s.Access.Valid() {
		bad = append(bad, fmt.Sprintf("accessTime %q", s.Access))
	}
	if len(bad) > 0 {
		return errors.BadRequest("Unknown pricing option: " + strings.Join(bad, ", "))
	}
	return nil
}

// Lookup returns the table cell for a selection
func Lookup(s Selection) (Tier, error) {
	if err := s.Validate(); err != nil {
		return Tier{}, err
	}
	return table[s.Type][s.Duration][s.Access], nil
}

// Quote prices a selection, applying one referral credit when requested
func (c *Calculator) Quote(req QuoteRequest) (*Quote, error) {
	t, err := Lookup(req.Selection)
	if err != nil {
		return nil, err
	}

	q := &Quote{
		Selection:      req.Selection,
		TypeLabel:      req.Type.Label(),
		DurationLabel:  req.Duration.Label(),
		AccessLabel:    req.Access.Label(),
		Currency:       c.currency,
		Price:          t.Price,
		Savings:        t.Savings,
		Total:          t.Price,
		DurationMonths: req.Duration.Months(),
		GuestPasses:    req.Duration.GuestPasses(),
		PauseMonths:    req.Duration.PauseMonths(),
	}

	if req.UseReferral {
		if req.ReferralCredits < 1 {
			return nil, errors.BadRequest("No referral credits available")
		}
		q.Discount = c.Discount(t.Price)
		q.Total = t.Price - q.Discount
		q.ReferralApplied = true
	}

	return q, nil
}

// Discount returns the referral discount on amount, rounded to the nearest minor unit
func (c *Calculator) Discount(amount int64) int64 {
	return int64(math.Round(float64(amount) * c.referralDiscount))
}

// Currency returns the calculator's currency code
func (c *Calculator) Currency() string {
	return c.currency
}

// Matrix returns every cell of the pricing table in display order
func Matrix() []MatrixRow {
	rows := make([]MatrixRow, 0, len(MembershipTypes)*len(Durations)*len(AccessTimes))
	for _, mt := range MembershipTypes {
		for _, d := range Durations {
			for _, a := range AccessTimes {
				rows = append(rows, MatrixRow{
					Selection:     Selection{Type: mt, Duration: d, Access: a},
					TypeLabel:     mt.Label(),
					DurationLabel: d.Label(),
					AccessLabel:   a.Label(),
					Tier:          table[mt][d][a],
					GuestPasses:   d.GuestPasses(),
					PauseMonths:   d.PauseMonths(),
				})
			}
		}
	}
	return rows
}

// Prorate returns the unused share of paid for a term running from start to end
func Prorate(paid int64, start, end, now time.Time) int64 {
	if paid <= 0 || !end.After(start) || !now.Before(end) {
		return 0
	}
	if !now.After(start) {
		return paid
	}
	total := end.Sub(start)
	remaining := end.Sub(now)
	return int64(float64(paid) * float64(remaining) / float64(total))
}

// FlexPlanID is the membership ID of a calculator selection
func FlexPlanID(s Selection) string {
	return fmt.Sprintf("flex-%s-%s-%s", s.Type, s.Duration, s.Access)
}

// ParseFlexPlanID reverses FlexPlanID
func ParseFlexPlanID(id string) (Selection, bool) {
	rest, ok := strings.CutPrefix(id, "flex-")
	if !ok {
		return Selection{}, false
	}
	for _, mt := range MembershipTypes {
		after, ok := strings.CutPrefix(rest, string(mt)+"-")
		if !ok {
			continue
		}
		for _, d := range Durations {
			access, ok := strings.CutPrefix(after, string(d)+"-")
			if !ok {
				continue
			}
			s := Selection{Type: mt, Duration: d, Access: AccessTime(access)}
			if s.Access.Valid() {
				return s, true
			}
		}
	}
	return Selection{}, false
}
