package payment

import "time"

// Status is the state of a payment attempt
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusRefunding Status = "REFUNDING"
	StatusRefunded  Status = "REFUNDED"
)

// Method identifiers
const (
	MethodCard   = "card"
	MethodMobile = "mobile"
)

// Mobile money providers
const (
	ProviderTelebirr = "telebirr"
	ProviderCBEBirr  = "cbe-birr"
)

// Method is a way to pay
type Method struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	Providers   []string `json:"providers"`
}

var methods = []Method{
	{
		ID:          MethodCard,
		Name:        "Credit Card",
		Icon:        "credit-card",
		Description: "Pay with Visa, Mastercard, or American Express",
		Providers:   []string{"Visa", "Mastercard", "Amex"},
	},
	{
		ID:          MethodMobile,
		Name:        "Mobile Money",
		Icon:        "smartphone",
		Description: "Pay with Telebirr or CBE Birr",
		Providers:   []string{ProviderTelebirr, ProviderCBEBirr},
	},
}

// Methods returns the accepted payment methods
func Methods() []Method {
	return append([]Method(nil), methods...)
}

// IsValidMethod reports whether id names an accepted method
func IsValidMethod(id string) bool {
	for _, m := range methods {
		if m.ID == id {
			return true
		}
	}
	return false
}

// CardDetails are the card fields collected at checkout
type CardDetails struct {
	CardNumber     string `json:"cardNumber" validate:"required,luhn"`
	ExpiryDate     string `json:"expiryDate" validate:"required,expiry"`
	CVV            string `json:"cvv" validate:"required,numeric,min=3,max=4"`
	CardholderName string `json:"cardholderName" validate:"required,min=2,max=100"`
}

// Last4 returns the final four digits of the card number
func (c *CardDetails) Last4() string {
	digits := make([]byte, 0, len(c.CardNumber))
	for i := 0; i < len(c.CardNumber); i++ {
		if ch := c.CardNumber[i]; ch >= '0' && ch <= '9' {
			digits = append(digits, ch)
		}
	}
	if len(digits) < 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}

// MobileDetails are the mobile money fields collected at checkout
type MobileDetails struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,min=9,max=15"`
	Provider    string `json:"provider" validate:"required,oneof=telebirr cbe-birr"`
}

// Payment is a recorded payment attempt
type Payment struct {
	ID             string    `json:"id"`
	UserID         int64     `json:"userId"`
	MembershipID   string    `json:"membershipId"`
	SubscriptionID string    `json:"subscriptionId,omitempty"`
	Amount         int64     `json:"amount"`
	Discount       int64     `json:"discount"`
	Credit         int64     `json:"credit"`
	Currency       string    `json:"currency"`
	Method         string    `json:"method"`
	Provider       string    `json:"provider,omitempty"`
	CardLast4      string    `json:"cardLast4,omitempty"`
	Status         Status    `json:"status"`
	TransactionID  string    `json:"transactionId,omitempty"`
	RefundID       string    `json:"refundId,omitempty"`
	Message        string    `json:"message,omitempty"`
	ReceiptKey     string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
