package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/net2mulu/signature-gym/pkg/client"
	"github.com/spf13/cobra"
)

func newSubscriptionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subscription", "subs"},
		Short:   "Manage your subscriptions",
	}

	cmd.AddCommand(newSubscriptionListCmd())
	cmd.AddCommand(newSubscriptionGetCmd())
	cmd.AddCommand(newSubscriptionDashboardCmd())
	cmd.AddCommand(newSubscriptionActionCmd("pause", "Pause a subscription", "Subscription paused",
		(*client.SubscriptionService).Pause))
	cmd.AddCommand(newSubscriptionActionCmd("resume", "Resume a paused subscription", "Subscription resumed",
		(*client.SubscriptionService).Resume))
	cmd.AddCommand(newSubscriptionActionCmd("cancel", "Cancel a subscription", "Subscription cancelled",
		(*client.SubscriptionService).Cancel))
	cmd.AddCommand(newSubscriptionActionCmd("guest-pass", "Use one guest pass", "Guest pass used",
		(*client.SubscriptionService).UseGuestPass))

	return cmd
}

func newSubscriptionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := apiClient.Subscriptions().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list subscriptions: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(subs)
			}

			if len(subs) == 0 {
				fmt.Println("No subscriptions yet. Try 'fitclub memberships list'.")
				return nil
			}

			renderSubscriptions(NewTable("ID", "PLAN", "STATUS", "START", "END", "GUEST PASSES"), subs)
			return nil
		},
	}
}

func renderSubscriptions(table *Table, subs []client.Subscription) {
	for _, s := range subs {
		table.AddRow(truncate(s.ID, 12), s.MembershipID, formatStatus(s.Status),
			formatDate(s.StartDate), formatDate(s.EndDate), fmt.Sprintf("%d", s.GuestPasses))
	}
	table.Render()
}

func printSubscription(s *client.Subscription) {
	fmt.Printf("ID:            %s\n", s.ID)
	fmt.Printf("Plan:          %s\n", s.MembershipID)
	fmt.Printf("Status:        %s\n", formatStatus(s.Status))
	fmt.Printf("Period:        %s - %s\n", formatDate(s.StartDate), formatDate(s.EndDate))
	fmt.Printf("Guest passes:  %d\n", s.GuestPasses)
	fmt.Printf("Pause used:    %d of %d days\n", s.PausedDays, s.PauseMonthsAllowed*30)
	if s.PausedAt != nil {
		fmt.Printf("Paused since:  %s\n", formatDate(*s.PausedAt))
	}
}

func newSubscriptionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := apiClient.Subscriptions().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get subscription: %w", err)
			}
			if getOutputFormat() != "table" {
				return printOutput(s)
			}
			printSubscription(s)
			return nil
		},
	}
}

type subscriptionAction func(*client.SubscriptionService, context.Context, string) (*client.Subscription, error)

func newSubscriptionActionCmd(use, short, done string, action subscriptionAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := action(apiClient.Subscriptions(), context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("%s failed: %w", use, err)
			}
			if getOutputFormat() != "table" {
				return printOutput(s)
			}
			success("%s", done)
			printSubscription(s)
			return nil
		},
	}
}

func newSubscriptionDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your membership overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := apiClient.Subscriptions().Dashboard(context.Background())
			if err != nil {
				return fmt.Errorf("failed to load dashboard: %w", err)
			}
			if getOutputFormat() != "table" {
				return printOutput(d)
			}

			color.New(color.Bold).Println("My Memberships")
			fmt.Printf("Active plans:  %d\n", d.ActiveCount)
			fmt.Printf("Guest passes:  %d\n", d.GuestPasses)
			if d.NextEndDate != nil {
				fmt.Printf("Next renewal:  %s\n", formatDate(*d.NextEndDate))
			}
			fmt.Println()
			if len(d.Subscriptions) > 0 {
				renderSubscriptions(NewTable("ID", "PLAN", "STATUS", "START", "END", "GUEST PASSES"), d.Subscriptions)
			}
			return nil
		},
	}
}
