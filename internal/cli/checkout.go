package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/net2mulu/signature-gym/pkg/client"
	"github.com/spf13/cobra"
)

// checkoutFlags collect what to buy and how to pay
type checkoutFlags struct {
	membershipID   string
	membershipType string
	duration       string
	access         string
	method         string
	card           client.CardDetails
	mobile         client.MobileDetails
	useReferral    bool
}

func (f *checkoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.membershipID, "membership", "", "membership plan ID (see 'fitclub memberships list')")
	cmd.Flags().StringVar(&f.membershipType, "type", "", "calculator membership type: single, couple, family")
	cmd.Flags().StringVar(&f.duration, "duration", "", "calculator duration: monthly, 6month, 12month")
	cmd.Flags().StringVar(&f.access, "access", "", "calculator access time: all-day, peak, off-peak")
	cmd.Flags().StringVar(&f.method, "method", "card", "payment method: card, mobile")
	cmd.Flags().StringVar(&f.card.CardNumber, "card-number", "", "card number")
	cmd.Flags().StringVar(&f.card.ExpiryDate, "expiry", "", "card expiry (MM/YY)")
	cmd.Flags().StringVar(&f.card.CardholderName, "cardholder", "", "name on card")
	cmd.Flags().StringVar(&f.mobile.PhoneNumber, "phone", "", "mobile money phone number")
	cmd.Flags().StringVar(&f.mobile.Provider, "provider", "telebirr", "mobile money provider: telebirr, cbe-birr")
	cmd.Flags().BoolVar(&f.useReferral, "referral", false, "apply one referral credit")
}

// request builds the checkout body, prompting for missing payment details
func (f *checkoutFlags) request() (client.CheckoutRequest, error) {
	req := client.CheckoutRequest{
		MembershipID:  f.membershipID,
		PaymentMethod: f.method,
		UseReferral:   f.useReferral,
	}

	if f.membershipID == "" {
		if f.membershipType == "" || f.duration == "" || f.access == "" {
			return req, fmt.Errorf("choose a plan with --membership or with --type, --duration and --access")
		}
		req.Selection = &client.Selection{
			MembershipType: f.membershipType,
			Duration:       f.duration,
			AccessTime:     f.access,
		}
	}

	switch f.method {
	case "card":
		card := f.card
		if card.CardNumber == "" {
			card.CardNumber = promptInput("Card number: ")
		}
		if card.ExpiryDate == "" {
			card.ExpiryDate = promptInput("Expiry (MM/YY): ")
		}
		if card.CardholderName == "" {
			card.CardholderName = promptInput("Cardholder name: ")
		}
		card.CVV = promptPassword("CVV: ")
		req.Card = &card
	case "mobile":
		mobile := f.mobile
		if mobile.PhoneNumber == "" {
			mobile.PhoneNumber = promptInput("Phone number: ")
		}
		req.Mobile = &mobile
	default:
		return req, fmt.Errorf("unknown payment method %q (use card or mobile)", f.method)
	}
	return req, nil
}

func printCheckoutResult(r *client.CheckoutResult) {
	if r.Payment != nil {
		success("Payment successful: %s", formatMoney(r.Payment.Amount, r.Payment.Currency))
		if r.Payment.Discount > 0 {
			fmt.Printf("  Referral discount: %s\n", formatMoney(r.Payment.Discount, r.Payment.Currency))
		}
		if r.Payment.Credit > 0 {
			fmt.Printf("  Upgrade credit:    %s\n", formatMoney(r.Payment.Credit, r.Payment.Currency))
		}
		fmt.Printf("  Transaction:       %s\n", r.Payment.TransactionID)
	}
	if r.Replaced != nil {
		fmt.Printf("  Replaced:          %s\n", r.Replaced.ID)
	}
	if r.Subscription != nil {
		fmt.Println()
		printSubscription(r.Subscription)
	}
	if r.Payment != nil {
		fmt.Printf("\nDownload your receipt: fitclub payments receipt %s\n", r.Payment.ID)
	}
}

func explainPaymentError(action string, err error) error {
	if apiErr, ok := client.AsAPIError(err); ok && apiErr.IsPaymentDeclined() {
		color.Red("✗ %s", apiErr.Message)
		return fmt.Errorf("%s declined, no charge was made", action)
	}
	return fmt.Errorf("%s failed: %w", action, err)
}

func newCheckoutCmd() *cobra.Command {
	var flags checkoutFlags

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Buy a membership",
		Example: `  fitclub checkout --membership gym-monthly --method card --card-number "4242 4242 4242 4242" --expiry 12/30 --cardholder "Abebe Kebede"
  fitclub checkout --type couple --duration 12month --access off-peak --method mobile --phone 0911223344`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}

			fmt.Println("Processing payment...")
			result, err := apiClient.Subscriptions().Checkout(context.Background(), req)
			if err != nil {
				return explainPaymentError("payment", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}
			printCheckoutResult(result)
			return nil
		},
	}

	flags.register(cmd)
	cmd.AddCommand(newUpgradeCmd())
	return cmd
}

func newUpgradeCmd() *cobra.Command {
	var flags checkoutFlags

	cmd := &cobra.Command{
		Use:   "upgrade <subscription-id>",
		Short: "Upgrade an open subscription to a new plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}

			fmt.Println("Processing upgrade...")
			result, err := apiClient.Subscriptions().Upgrade(context.Background(), args[0], req)
			if err != nil {
				return explainPaymentError("upgrade", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}
			printCheckoutResult(result)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
