package membership

import (
	"strconv"

	"github.com/net2mulu/signature-gym/internal/domain/pricing"
)

const gymFeature = "FULL GYM ACCESS"

// Seed returns the catalog of purchasable plans priced in currency
func Seed(currency string) []*Membership {
	plans := []*Membership{
		gymPlan("gym-1-month", "1 MONTH", 1, 3500, false,
			"Perfect for trying out our facilities or committing to a quick fitness boost."),
		gymPlan("gym-3-month", "3 MONTH", 3, 5000, false,
			"Take your fitness to the next level with a short-term plan that offers consistency."),
		gymPlan("gym-6-month", "6 MONTH", 6, 9000, true,
			"Perfect for those committed to building a sustainable fitness routine with half a year of gym access."),
		gymPlan("gym-12-month", "12 MONTH", 12, 15000, false,
			"Unlock a full year of unlimited access at the best value."),
		studioPlan("studio-platinum", "PLATINUM", 220000, false, 1260, 990),
		studioPlan("studio-gold", "GOLD", 150000, true, 1400, 1100),
		studioPlan("studio-silver", "SILVER", 90000, false, 1540, 1200),
	}

	for _, row := range pricing.Matrix() {
		plans = append(plans, &Membership{
			ID:          pricing.FlexPlanID(row.Selection),
			Name:        row.TypeLabel + " " + row.DurationLabel,
			Description: row.TypeLabel + " membership, " + row.AccessLabel,
			Price:       row.Price,
			Duration:    row.Duration.Months(),
			Features:    flexFeatures(row),
			Type:        TypeFlex,
			AccessHours: row.AccessLabel,
			GuestPasses: row.GuestPasses,
			PauseMonths: row.PauseMonths,
			Active:      true,
		})
	}

	for _, p := range plans {
		p.Currency = currency
	}
	return plans
}

func gymPlan(id, name string, months int, price int64, bestValue bool, description string) *Membership {
	d := durationFor(months)
	return &Membership{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Duration:    months,
		Features:    []string{gymFeature},
		Type:        TypeGym,
		AccessHours: pricing.AllDay.Label(),
		BestValue:   bestValue,
		GuestPasses: d.GuestPasses(),
		PauseMonths: d.PauseMonths(),
		Active:      true,
	}
}

// studioPlan builds a deposit package; group fitness and spinning share the yoga rate
func studioPlan(id, name string, deposit int64, bestValue bool, pilates, yoga int64) *Membership {
	return &Membership{
		ID:             id,
		Name:           name,
		Description:    "Perfect for trying out our facilities or committing to a quick fitness boost.",
		Price:          deposit,
		Duration:       12,
		Features:       []string{"Class bookings are deducted from your upfront deposit."},
		Type:           TypeStudio,
		AccessHours:    "Studio Schedule",
		BestValue:      bestValue,
		UpfrontDeposit: deposit,
		ClassPricing: []ClassPrice{
			{Class: "Pilates", Price: pilates},
			{Class: "Yoga", Price: yoga},
			{Class: "Group Fitness", Price: yoga},
			{Class: "Spinning", Price: yoga},
		},
		Active: true,
	}
}

// durationFor maps a month count onto the nearest pricing duration at or below it
func durationFor(months int) pricing.Duration {
	switch {
	case months >= 12:
		return pricing.TwelveMonth
	case months >= 6:
		return pricing.SixMonths
	default:
		return pricing.Monthly
	}
}

func flexFeatures(row pricing.MatrixRow) []string {
	features := []string{row.AccessLabel}
	if row.GuestPasses > 0 {
		features = append(features, pluralize(row.GuestPasses, "guest pass", "guest passes"))
	}
	if row.PauseMonths > 0 {
		features = append(features, pluralize(row.PauseMonths, "month pause", "months pause"))
	}
	if row.Type == pricing.Family {
		features = append(features, "2 adults and up to 3 children")
	}
	return features
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
