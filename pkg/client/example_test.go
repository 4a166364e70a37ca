package client_test

import (
	"context"
	"fmt"
	"log"

	"github.com/net2mulu/signature-gym/pkg/client"
)

// Example demonstrates basic usage of the Signature Fitness client
func Example() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	ctx := context.Background()

	// Login
	loginResp, err := c.Login(ctx, "member@example.com", "password123")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Logged in as: %s\n", loginResp.User.Email)

	// List subscriptions
	subs, err := c.Subscriptions().List(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found %d subscriptions\n", len(subs))
}

// ExampleMembershipService_List demonstrates listing studio plans
func ExampleMembershipService_List() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	plans, err := c.Memberships().List(context.Background(), &client.MembershipListOptions{Type: "studio"})
	if err != nil {
		log.Fatal(err)
	}

	for _, p := range plans {
		fmt.Printf("%s: %d %s\n", p.Name, p.Price, p.Currency)
	}
}

// ExamplePricingService_Quote demonstrates pricing a calculator selection
func ExamplePricingService_Quote() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	q, err := c.Pricing().Quote(context.Background(), client.QuoteRequest{
		Selection: client.Selection{
			MembershipType: "couple",
			Duration:       "12month",
			AccessTime:     "off-peak",
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s, %s, %s: %d\n", q.MembershipLabel, q.DurationLabel, q.AccessLabel, q.Total)
}

// ExampleSubscriptionService_Checkout demonstrates buying a plan by card
func ExampleSubscriptionService_Checkout() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	ctx := context.Background()
	if _, err := c.Login(ctx, "member@example.com", "password123"); err != nil {
		log.Fatal(err)
	}

	result, err := c.Subscriptions().Checkout(ctx, client.CheckoutRequest{
		MembershipID:  "gym-monthly",
		PaymentMethod: "card",
		Card: &client.CardDetails{
			CardNumber:     "4242 4242 4242 4242",
			ExpiryDate:     "12/30",
			CVV:            "123",
			CardholderName: "Abebe Kebede",
		},
	})
	if err != nil {
		if apiErr, ok := client.AsAPIError(err); ok && apiErr.IsPaymentDeclined() {
			fmt.Println("Card declined, try again")
			return
		}
		log.Fatal(err)
	}

	fmt.Printf("Subscription %s active until %s\n", result.Subscription.ID, result.Subscription.EndDate.Format("2006-01-02"))
}
