package integration

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/net2mulu/signature-gym/pkg/client"
	"github.com/stretchr/testify/require"
)

func TestCheckout_MemberJourney(t *testing.T) {
	srv := newTestServer(t, 1)
	ctx := context.Background()
	c, _ := srv.register(t, "journey@example.com", "")

	subs, err := c.Subscriptions().List(ctx)
	require.NoError(t, err)
	require.Empty(t, subs)

	// couple, 12 months, off-peak: 8 guest passes and 2 months of pause
	result, err := c.Subscriptions().Checkout(ctx, client.CheckoutRequest{
		Selection:     &client.Selection{MembershipType: "couple", Duration: "12month", AccessTime: "off-peak"},
		PaymentMethod: "card",
		Card:          validCard(),
	})
	require.NoError(t, err)
	require.Equal(t, "COMPLETED", result.Payment.Status)
	require.Equal(t, int64(54000), result.Payment.Amount)
	require.Equal(t, "4242", result.Payment.CardLast4)
	require.Equal(t, "ACTIVE", result.Subscription.Status)
	require.Equal(t, 8, result.Subscription.GuestPasses)

	subID := result.Subscription.ID
	payID := result.Payment.ID

	subs, err = c.Subscriptions().List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, subID, subs[0].ID)

	plan, err := c.Memberships().Get(ctx, subs[0].MembershipID)
	require.NoError(t, err)
	require.Equal(t, int64(54000), plan.Price)

	sub, err := c.Subscriptions().UseGuestPass(ctx, subID)
	require.NoError(t, err)
	require.Equal(t, 7, sub.GuestPasses)

	sub, err = c.Subscriptions().Pause(ctx, subID)
	require.NoError(t, err)
	require.Equal(t, "PAUSED", sub.Status)

	_, err = c.Subscriptions().Pause(ctx, subID)
	apiErr, ok := client.AsAPIError(err)
	require.True(t, ok)
	require.True(t, apiErr.IsConflict())

	sub, err = c.Subscriptions().Resume(ctx, subID)
	require.NoError(t, err)
	require.Equal(t, "ACTIVE", sub.Status)

	dash, err := c.Subscriptions().Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, dash.ActiveCount)
	require.Equal(t, 7, dash.GuestPasses)

	page, err := c.Payments().List(ctx, &client.ListOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.TotalItems)
	require.Equal(t, payID, page.Data[0].ID)

	pdf, err := c.Payments().Receipt(ctx, payID)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	refunded, err := c.Payments().Refund(ctx, payID)
	require.NoError(t, err)
	require.Equal(t, "REFUNDED", refunded.Status)

	sub, err = c.Subscriptions().Get(ctx, subID)
	require.NoError(t, err)
	require.Equal(t, "CANCELLED", sub.Status)
}

func TestCheckout_ReferralCredit(t *testing.T) {
	srv := newTestServer(t, 1)
	ctx := context.Background()

	referrer, ref := srv.register(t, "referrer@example.com", "")
	friend, _ := srv.register(t, "friend@example.com", ref.ReferralCode)

	_, err := friend.Subscriptions().Checkout(ctx, client.CheckoutRequest{
		MembershipID:  "gym-3-month",
		PaymentMethod: "mobile",
		Mobile:        &client.MobileDetails{PhoneNumber: "0911223344", Provider: "telebirr"},
	})
	require.NoError(t, err)

	me, err := referrer.GetCurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, me.ReferralCredits)

	plan, err := referrer.Memberships().Get(ctx, "gym-12-month")
	require.NoError(t, err)

	result, err := referrer.Subscriptions().Checkout(ctx, client.CheckoutRequest{
		MembershipID:  "gym-12-month",
		PaymentMethod: "card",
		Card:          validCard(),
		UseReferral:   true,
	})
	require.NoError(t, err)
	require.Positive(t, result.Payment.Discount)
	require.Equal(t, plan.Price-result.Payment.Discount, result.Payment.Amount)

	me, err = referrer.GetCurrentUser(ctx)
	require.NoError(t, err)
	require.Zero(t, me.ReferralCredits)
}

func TestCheckout_Declined(t *testing.T) {
	srv := newTestServer(t, 0)
	ctx := context.Background()
	c, _ := srv.register(t, "declined@example.com", "")

	_, err := c.Subscriptions().Checkout(ctx, client.CheckoutRequest{
		MembershipID:  "gym-1-month",
		PaymentMethod: "card",
		Card:          validCard(),
	})
	apiErr, ok := client.AsAPIError(err)
	require.True(t, ok, "expected API error, got %v", err)
	require.True(t, apiErr.IsPaymentDeclined())

	subs, err := c.Subscriptions().List(ctx)
	require.NoError(t, err)
	require.Empty(t, subs)

	page, err := c.Payments().List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	require.Equal(t, "FAILED", page.Data[0].Status)
}

func TestLifecycle_ExpiresFinishedSubscriptions(t *testing.T) {
	srv := newTestServer(t, 1)
	ctx := context.Background()
	c, _ := srv.register(t, "lifecycle@example.com", "")

	result, err := c.Subscriptions().Checkout(ctx, client.CheckoutRequest{
		MembershipID:  "gym-1-month",
		PaymentMethod: "card",
		Card:          validCard(),
	})
	require.NoError(t, err)

	report, err := srv.Subscriptions.RunLifecycle(ctx, time.Now().AddDate(0, 2, 0))
	require.NoError(t, err)
	require.Equal(t, 1, report.Expired)

	sub, err := c.Subscriptions().Get(ctx, result.Subscription.ID)
	require.NoError(t, err)
	require.Equal(t, "EXPIRED", sub.Status)
}

func TestPublicCatalog(t *testing.T) {
	srv := newTestServer(t, 1)
	ctx := context.Background()
	c := srv.client()

	plans, err := c.Memberships().List(ctx, &client.MembershipListOptions{Type: "studio"})
	require.NoError(t, err)
	require.Len(t, plans, 3)

	gold, err := c.Memberships().Get(ctx, "studio-gold")
	require.NoError(t, err)
	require.True(t, gold.BestValue)

	_, err = c.Memberships().Get(ctx, "studio-bronze")
	apiErr, ok := client.AsAPIError(err)
	require.True(t, ok)
	require.True(t, apiErr.IsNotFound())

	quote, err := c.Pricing().Quote(ctx, client.QuoteRequest{
		Selection: client.Selection{MembershipType: "single", Duration: "6month", AccessTime: "peak"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(22500), quote.Total)

	health, err := c.Ready(ctx)
	require.NoError(t, err)
	require.Equal(t, "ready", health.Status)
}
