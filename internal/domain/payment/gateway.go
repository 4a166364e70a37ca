package payment

import "context"

// Charge is a request to collect money
type Charge struct {
	Amount   int64
	Currency string
	Method   string
	Card     *CardDetails
	Mobile   *MobileDetails
}

// Result is the outcome of a charge
type Result struct {
	Success       bool
	Status        Status
	TransactionID string
	Message       string
}

// RefundResult is the outcome of a refund
type RefundResult struct {
	Success  bool
	Status   Status
	RefundID string
	Message  string
}

// Gateway moves money
type Gateway interface {
	// Process attempts a charge; a declined charge is a Result, not an error
	Process(ctx context.Context, charge Charge) (*Result, error)

	// Refund returns amount for a completed transaction
	Refund(ctx context.Context, transactionID string, amount int64) (*RefundResult, error)
}
