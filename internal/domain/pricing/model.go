package pricing

// MembershipType is who the plan covers
type MembershipType string

// Duration is the commitment length
type Duration string

// AccessTime is the time window the plan grants
type AccessTime string

const (
	Single MembershipType = "single"
	Couple MembershipType = "couple"
	Family MembershipType = "family"
)

const (
	Monthly     Duration = "monthly"
	SixMonths   Duration = "6month"
	TwelveMonth Duration = "12month"
)

const (
	AllDay  AccessTime = "all-day"
	Peak    AccessTime = "peak"
	OffPeak AccessTime = "off-peak"
)

// MembershipTypes, Durations and AccessTimes list every option in display order
var (
	MembershipTypes = []MembershipType{Single, Couple, Family}
	Durations       = []Duration{Monthly, SixMonths, TwelveMonth}
	AccessTimes     = []AccessTime{AllDay, Peak, OffPeak}
)

var membershipLabels = map[MembershipType]string{
	Single: "Individual",
	Couple: "Couple",
	Family: "Family",
}

var durationLabels = map[Duration]string{
	Monthly:     "Monthly",
	SixMonths:   "6 Months",
	TwelveMonth: "12 Months",
}

var accessLabels = map[AccessTime]string{
	AllDay:  "All Day Access",
	Peak:    "Peak Hours (5-10 AM)",
	OffPeak: "Off-Peak (10 AM - 4 PM)",
}

// Label returns the display name
func (m MembershipType) Label() string { return membershipLabels[m] }

// Valid reports whether m is a known membership type
func (m MembershipType) Valid() bool { _, ok := membershipLabels[m]; return ok }

// Label returns the display name
func (d Duration) Label() string { return durationLabels[d] }

// Valid reports whether d is a known duration
func (d Duration) Valid() bool { _, ok := durationLabels[d]; return ok }

// Months returns the commitment length in months
func (d Duration) Months() int {
	switch d {
	case SixMonths:
		return 6
	case TwelveMonth:
		return 12
	default:
		return 1
	}
}

// GuestPasses is the number of guest visits included with the duration
func (d Duration) GuestPasses() int {
	switch d {
	case SixMonths:
		return 4
	case TwelveMonth:
		return 8
	default:
		return 0
	}
}

// PauseMonths is the pause allowance included with the duration
func (d Duration) PauseMonths() int {
	switch d {
	case SixMonths:
		return 1
	case TwelveMonth:
		return 2
	default:
		return 0
	}
}

// Label returns the display name
func (a AccessTime) Label() string { return accessLabels[a] }

// Valid reports whether a is a known access window
func (a AccessTime) Valid() bool { _, ok := accessLabels[a]; return ok }

// Tier is one cell of the pricing table, in minor units
type Tier struct {
	Price   int64 `json:"price"`
	Savings int64 `json:"savings"`
}

// Selection identifies a cell of the pricing table
type Selection struct {
	Type     MembershipType `json:"membershipType"`
	Duration Duration       `json:"duration"`
	Access   AccessTime     `json:"accessTime"`
}

// QuoteRequest asks for the price of a selection
type QuoteRequest struct {
	Selection
	// ReferralCredits the member holds; one is applied when UseReferral is set
	ReferralCredits int
	UseReferral     bool
}

// Quote is a priced selection
type Quote struct {
	Selection
	TypeLabel       string `json:"membershipLabel"`
	DurationLabel   string `json:"durationLabel"`
	AccessLabel     string `json:"accessLabel"`
	Currency        string `json:"currency"`
	Price           int64  `json:"price"`
	Savings         int64  `json:"savings"`
	Discount        int64  `json:"discount"`
	Total           int64  `json:"total"`
	ReferralApplied bool   `json:"referralApplied"`
	DurationMonths  int    `json:"durationMonths"`
	GuestPasses     int    `json:"guestPasses"`
	PauseMonths     int    `json:"pauseMonths"`
}

// MatrixRow is one cell of the full pricing table with labels
type MatrixRow struct {
	Selection
	TypeLabel     string `json:"membershipLabel"`
	DurationLabel string `json:"durationLabel"`
	AccessLabel   string `json:"accessLabel"`
	Tier
	GuestPasses int `json:"guestPasses"`
	PauseMonths int `json:"pauseMonths"`
}

// FAQEntry is a pricing question and answer
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
