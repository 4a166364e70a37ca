package membership

import "time"

// Membership types
const (
	TypeGym    = "gym"
	TypeStudio = "studio"
	TypeFlex   = "flex"
)

// ClassPrice is the per-class charge against a studio deposit
type ClassPrice struct {
	Class string `json:"class"`
	Price int64  `json:"price"`
}

// Membership is a purchasable plan
type Membership struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Price          int64        `json:"price"`
	Currency       string       `json:"currency"`
	Duration       int          `json:"duration"` // in months
	Features       []string     `json:"features"`
	Type           string       `json:"type"`
	AccessHours    string       `json:"accessHours"`
	BestValue      bool         `json:"bestValue"`
	UpfrontDeposit int64        `json:"upfrontDeposit,omitempty"`
	ClassPricing   []ClassPrice `json:"classPricing,omitempty"`
	GuestPasses    int          `json:"guestPasses"`
	PauseMonths    int          `json:"pauseMonths"`
	Active         bool         `json:"active"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// Filter narrows a membership listing
type Filter struct {
	Type       string
	ActiveOnly bool
}

// IsValidType reports whether t is a known membership type
func IsValidType(t string) bool {
	switch t {
	case TypeGym, TypeStudio, TypeFlex:
		return true
	}
	return false
}
