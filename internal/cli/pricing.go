package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/net2mulu/signature-gym/internal/domain/pricing"
	"github.com/net2mulu/signature-gym/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newPricingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pricing",
		Short: "Membership pricing calculator",
	}

	cmd.AddCommand(newPricingTableCmd())
	cmd.AddCommand(newPricingQuoteCmd())
	cmd.AddCommand(newPricingCalcCmd())
	cmd.AddCommand(newPricingFAQCmd())

	return cmd
}

func newPricingTableCmd() *cobra.Command {
	var membershipType string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Show the full price table",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := apiClient.Pricing().Table(context.Background())
			if err != nil {
				return fmt.Errorf("failed to load pricing: %w", err)
			}

			rows := table.Rows
			if membershipType != "" {
				filtered := rows[:0]
				for _, r := range rows {
					if r.MembershipType == membershipType {
						filtered = append(filtered, r)
					}
				}
				rows = filtered
			}

			if getOutputFormat() != "table" {
				return printOutput(rows)
			}

			t := NewTable("TYPE", "DURATION", "ACCESS", "PRICE", "SAVINGS", "GUEST PASSES")
			for _, r := range rows {
				savings := "-"
				if r.Savings > 0 {
					savings = color.GreenString(formatMoney(r.Savings, ""))
				}
				t.AddRow(r.MembershipLabel, r.DurationLabel, r.AccessLabel,
					formatMoney(r.Price, table.Currency), savings, fmt.Sprintf("%d", r.GuestPasses))
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&membershipType, "type", "", "only show one membership type: single, couple, family")
	return cmd
}

func newPricingQuoteCmd() *cobra.Command {
	var req client.QuoteRequest

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price one selection on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := apiClient.Pricing().Quote(context.Background(), req)
			if err != nil {
				return fmt.Errorf("failed to get quote: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(q)
			}
			printQuote(q)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.MembershipType, "type", "single", "membership type: single, couple, family")
	cmd.Flags().StringVar(&req.Duration, "duration", "monthly", "duration: monthly, 6month, 12month")
	cmd.Flags().StringVar(&req.AccessTime, "access", "all-day", "access time: all-day, peak, off-peak")
	cmd.Flags().BoolVar(&req.UseReferral, "referral", false, "apply one referral credit")
	cmd.Flags().IntVar(&req.ReferralCredits, "credits", 1, "referral credits you hold")

	return cmd
}

func newPricingCalcCmd() *cobra.Command {
	var credits int

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Interactive pricing calculator (works offline)",
		RunE: func(cmd *cobra.Command, args []string) error {
			calc := pricing.NewCalculator(viper.GetString("currency"), pricing.DefaultReferralDiscount)

			final, err := tea.NewProgram(newCalcModel(calc, credits)).Run()
			if err != nil {
				return fmt.Errorf("calculator failed: %w", err)
			}

			m := final.(calcModel)
			if !m.chosen || m.quote == nil {
				return nil
			}
			q := m.quote
			printQuote(quoteFromDomain(q))
			fmt.Printf("\nTo buy it: fitclub checkout --type %s --duration %s --access %s",
				q.Type, q.Duration, q.Access)
			if q.ReferralApplied {
				fmt.Print(" --referral")
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVar(&credits, "credits", 0, "referral credits you hold")
	return cmd
}

func newPricingFAQCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "faq",
		Short: "Frequently asked pricing questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			faq, err := apiClient.Pricing().FAQ(context.Background())
			if err != nil {
				return fmt.Errorf("failed to load FAQ: %w", err)
			}
			if getOutputFormat() != "table" {
				return printOutput(faq)
			}
			for _, entry := range faq {
				color.New(color.Bold).Println(entry.Question)
				fmt.Printf("  %s\n\n", entry.Answer)
			}
			return nil
		},
	}
}

// quoteFromDomain converts a locally computed quote to its API form
func quoteFromDomain(q *pricing.Quote) *client.Quote {
	return &client.Quote{
		Selection: client.Selection{
			MembershipType: string(q.Type),
			Duration:       string(q.Duration),
			AccessTime:     string(q.Access),
		},
		MembershipLabel: q.TypeLabel,
		DurationLabel:   q.DurationLabel,
		AccessLabel:     q.AccessLabel,
		Currency:        q.Currency,
		Price:           q.Price,
		Savings:         q.Savings,
		Discount:        q.Discount,
		Total:           q.Total,
		ReferralApplied: q.ReferralApplied,
		DurationMonths:  q.DurationMonths,
		GuestPasses:     q.GuestPasses,
		PauseMonths:     q.PauseMonths,
	}
}

func printQuote(q *client.Quote) {
	color.New(color.Bold).Printf("%s · %s · %s\n", q.MembershipLabel, q.DurationLabel, q.AccessLabel)
	fmt.Printf("  Price:           %s\n", formatMoney(q.Price, q.Currency))
	if q.Savings > 0 {
		fmt.Printf("  You save:        %s\n", color.GreenString(formatMoney(q.Savings, q.Currency)))
	}
	if q.Discount > 0 {
		fmt.Printf("  Referral:       -%s\n", formatMoney(q.Discount, q.Currency))
	}
	fmt.Printf("  Total:           %s\n", color.New(color.Bold).Sprint(formatMoney(q.Total, q.Currency)))
	fmt.Printf("  Guest passes:    %d\n", q.GuestPasses)
	fmt.Printf("  Pause allowance: %d month(s)\n", q.PauseMonths)
}
