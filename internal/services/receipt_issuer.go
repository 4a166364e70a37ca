package services

import (
	"context"

	"github.com/net2mulu/signature-gym/internal/domain/membership"
	"github.com/net2mulu/signature-gym/internal/domain/payment"
	"github.com/net2mulu/signature-gym/internal/domain/subscription"
	"github.com/net2mulu/signature-gym/internal/domain/user"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
	"github.com/net2mulu/signature-gym/internal/receipts"
)

// ReceiptIssuer renders payment receipts and keeps them in a store
type ReceiptIssuer struct {
	store         receipts.Store
	users         user.Repository
	memberships   membership.Repository
	subscriptions subscription.Repository
}

// NewReceiptIssuer creates a receipt issuer
func NewReceiptIssuer(store receipts.Store, users user.Repository, memberships membership.Repository, subscriptions subscription.Repository) *ReceiptIssuer {
	return &ReceiptIssuer{
		store:         store,
		users:         users,
		memberships:   memberships,
		subscriptions: subscriptions,
	}
}

// Issue renders the receipt for p, stores it and records its key on p
func (r *ReceiptIssuer) Issue(ctx context.Context, p *payment.Payment) ([]byte, error) {
	rec := receipts.Receipt{
		PaymentID:     p.ID,
		TransactionID: p.TransactionID,
		RefundID:      p.RefundID,
		Status:        string(p.Status),
		Method:        p.Method,
		CardLast4:     p.CardLast4,
		Provider:      p.Provider,
		Price:         p.Amount + p.Discount + p.Credit,
		Discount:      p.Discount,
		Credit:        p.Credit,
		Amount:        p.Amount,
		Currency:      p.Currency,
		PaidAt:        p.CreatedAt,
	}

	u, err := r.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	rec.MemberName = u.Name()
	rec.MemberEmail = u.Email

	rec.MembershipName = p.MembershipID
	if m, err := r.memberships.GetByID(ctx, p.MembershipID); err == nil {
		rec.MembershipName = m.Name
		rec.AccessHours = m.AccessHours
	}

	if p.SubscriptionID != "" {
		if sub, err := r.subscriptions.GetByID(ctx, p.SubscriptionID); err == nil {
			rec.StartDate = sub.StartDate
			rec.EndDate = sub.EndDate
		}
	}

	data, err := receipts.Render(rec)
	if err != nil {
		return nil, errors.Internal("Failed to render receipt", err)
	}

	key := receipts.Key(p.ID)
	if err := r.store.Put(ctx, key, data); err != nil {
		return nil, errors.Internal("Failed to store receipt", err)
	}
	p.ReceiptKey = key
	return data, nil
}

// Load returns the stored receipt for p, issuing it when missing
func (r *ReceiptIssuer) Load(ctx context.Context, p *payment.Payment) ([]byte, bool, error) {
	if p.ReceiptKey != "" {
		data, err := r.store.Get(ctx, p.ReceiptKey)
		if err == nil {
			return data, false, nil
		}
		if err != receipts.ErrNotFound {
			return nil, false, errors.Internal("Failed to load receipt", err)
		}
	}
	data, err := r.Issue(ctx, p)
	return data, true, err
}
