package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/net2mulu/signature-gym/pkg/client"
	"github.com/spf13/cobra"
)

func newMembershipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "memberships",
		Aliases: []string{"membership", "plans"},
		Short:   "Browse membership plans",
	}

	cmd.AddCommand(newMembershipListCmd())
	cmd.AddCommand(newMembershipGetCmd())

	return cmd
}

func newMembershipListCmd() *cobra.Command {
	var planType string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List membership plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := apiClient.Memberships().List(context.Background(), &client.MembershipListOptions{
				Type:            planType,
				IncludeInactive: all,
			})
			if err != nil {
				return fmt.Errorf("failed to list memberships: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(plans)
			}

			if len(plans) == 0 {
				fmt.Println("No membership plans found.")
				return nil
			}

			table := NewTable("ID", "NAME", "TYPE", "PRICE", "MONTHS", "ACCESS")
			for _, p := range plans {
				name := p.Name
				if p.BestValue {
					name += " " + color.YellowString("★")
				}
				table.AddRow(p.ID, truncate(name, 32), p.Type, formatMoney(p.Price, p.Currency),
					fmt.Sprintf("%d", p.Duration), truncate(p.AccessHours, 24))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&planType, "type", "", "filter by type: gym, studio, flex")
	cmd.Flags().BoolVar(&all, "all", false, "include retired plans")

	return cmd
}

func newMembershipGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a membership plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := apiClient.Memberships().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get membership: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(m)
			}

			color.New(color.Bold).Println(m.Name)
			fmt.Println(m.Description)
			fmt.Println(strings.Repeat("-", 40))
			fmt.Printf("Price:        %s\n", formatMoney(m.Price, m.Currency))
			fmt.Printf("Duration:     %d month(s)\n", m.Duration)
			fmt.Printf("Access:       %s\n", m.AccessHours)
			fmt.Printf("Guest passes: %d\n", m.GuestPasses)
			fmt.Printf("Pause:        up to %d month(s)\n", m.PauseMonths)
			if m.UpfrontDeposit > 0 {
				fmt.Printf("Deposit:      %s\n", formatMoney(m.UpfrontDeposit, m.Currency))
			}
			if len(m.ClassPricing) > 0 {
				fmt.Println("Class prices:")
				for _, cp := range m.ClassPricing {
					fmt.Printf("  %-20s %s\n", cp.Class, formatMoney(cp.Price, m.Currency))
				}
			}
			if len(m.Features) > 0 {
				fmt.Println("Features:")
				for _, f := range m.Features {
					fmt.Printf("  • %s\n", f)
				}
			}
			return nil
		},
	}
}
