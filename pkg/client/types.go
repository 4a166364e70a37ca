package client

import "time"

// User represents a member account
type User struct {
	ID              int64     `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Role            string    `json:"role"`
	ReferralCode    string    `json:"referralCode"`
	ReferralCredits int       `json:"referralCredits"`
	NotifyRenewals  bool      `json:"notifyRenewals"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ClassPrice is the per-class charge against a studio deposit
type ClassPrice struct {
	Class string `json:"class"`
	Price int64  `json:"price"`
}

// Membership is a purchasable plan. Prices are in minor units (cents).
type Membership struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Price          int64        `json:"price"`
	Currency       string       `json:"currency"`
	Duration       int          `json:"duration"` // in months
	Features       []string     `json:"features"`
	Type           string       `json:"type"` // gym, studio, flex
	AccessHours    string       `json:"accessHours"`
	BestValue      bool         `json:"bestValue"`
	UpfrontDeposit int64        `json:"upfrontDeposit,omitempty"`
	ClassPricing   []ClassPrice `json:"classPricing,omitempty"`
	GuestPasses    int          `json:"guestPasses"`
	PauseMonths    int          `json:"pauseMonths"`
	Active         bool         `json:"active"`
}

// Subscription is a member's purchased membership
type Subscription struct {
	ID                 string     `json:"id"`
	UserID             int64      `json:"userId"`
	MembershipID       string     `json:"membershipId"`
	Status             string     `json:"status"` // ACTIVE, PAUSED, EXPIRED, CANCELLED
	StartDate          time.Time  `json:"startDate"`
	EndDate            time.Time  `json:"endDate"`
	GuestPasses        int        `json:"guestPasses"`
	PauseMonthsAllowed int        `json:"pauseMonthsAllowed"`
	PausedAt           *time.Time `json:"pausedAt,omitempty"`
	PausedDays         int        `json:"pausedDays"`
	PaymentID          string     `json:"paymentId,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// Dashboard is the member overview
type Dashboard struct {
	ActiveCount   int                    `json:"activeCount"`
	GuestPasses   int                    `json:"guestPasses"`
	NextEndDate   *time.Time             `json:"nextEndDate,omitempty"`
	Subscriptions []Subscription         `json:"subscriptions"`
	Memberships   map[string]*Membership `json:"memberships"`
}

// Payment is a recorded payment attempt
type Payment struct {
	ID             string    `json:"id"`
	MembershipID   string    `json:"membershipId"`
	SubscriptionID string    `json:"subscriptionId,omitempty"`
	Amount         int64     `json:"amount"`
	Discount       int64     `json:"discount"`
	Credit         int64     `json:"credit"`
	Currency       string    `json:"currency"`
	Method         string    `json:"method"`
	Provider       string    `json:"provider,omitempty"`
	CardLast4      string    `json:"cardLast4,omitempty"`
	Status         string    `json:"status"` // PENDING, COMPLETED, FAILED, REFUNDED
	TransactionID  string    `json:"transactionId,omitempty"`
	RefundID       string    `json:"refundId,omitempty"`
	Message        string    `json:"message,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PaymentMethod is a way to pay
type PaymentMethod struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Providers   []string `json:"providers"`
}

// Selection identifies a cell of the pricing table
type Selection struct {
	MembershipType string `json:"membershipType"` // single, couple, family
	Duration       string `json:"duration"`       // monthly, 6month, 12month
	AccessTime     string `json:"accessTime"`     // all-day, peak, off-peak
}

// Quote is a priced selection
type Quote struct {
	Selection
	MembershipLabel string `json:"membershipLabel"`
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

// PriceRow is one cell of the pricing table
type PriceRow struct {
	Selection
	MembershipLabel string `json:"membershipLabel"`
	DurationLabel   string `json:"durationLabel"`
	AccessLabel     string `json:"accessLabel"`
	Price           int64  `json:"price"`
	Savings         int64  `json:"savings"`
	GuestPasses     int    `json:"guestPasses"`
	PauseMonths     int    `json:"pauseMonths"`
}

// PriceTable is the full calculator matrix
type PriceTable struct {
	Currency string     `json:"currency"`
	Rows     []PriceRow `json:"rows"`
}

// FAQEntry is a pricing question and answer
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// StudioType is one studio discipline
type StudioType struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
}

// StudioOfferings is the studio catalog
type StudioOfferings struct {
	Types []StudioType `json:"types"`
}

// CheckoutResult is the outcome of a successful purchase
type CheckoutResult struct {
	Payment      *Payment      `json:"payment"`
	Subscription *Subscription `json:"subscription"`
	Membership   *Membership   `json:"membership"`
	Replaced     *Subscription `json:"replaced,omitempty"`
}

// ListOptions contains common options for list operations
type ListOptions struct {
	Page     int `json:"page,omitempty"`      // Page number (1-based)
	PageSize int `json:"page_size,omitempty"` // Items per page
}

// PaymentPage is a page of payment history
type PaymentPage struct {
	Data       []Payment `json:"data"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalItems int64     `json:"total_items"`
	TotalPages int       `json:"total_pages"`
}

// HealthResponse represents the health and readiness probes
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Cache    string `json:"cache,omitempty"`
}
