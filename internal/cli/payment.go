package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/net2mulu/signature-gym/pkg/client"
	"github.com/spf13/cobra"
)

func newPaymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payments",
		Aliases: []string{"payment"},
		Short:   "Payment history and receipts",
	}

	cmd.AddCommand(newPaymentListCmd())
	cmd.AddCommand(newPaymentGetCmd())
	cmd.AddCommand(newPaymentRefundCmd())
	cmd.AddCommand(newPaymentReceiptCmd())
	cmd.AddCommand(newPaymentMethodsCmd())

	return cmd
}

func newPaymentListCmd() *cobra.Command {
	var opts client.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your payments",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := apiClient.Payments().List(context.Background(), &opts)
			if err != nil {
				return fmt.Errorf("failed to list payments: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(page)
			}

			if len(page.Data) == 0 {
				fmt.Println("No payments yet.")
				return nil
			}

			table := NewTable("ID", "DATE", "PLAN", "AMOUNT", "METHOD", "STATUS")
			for _, p := range page.Data {
				method := p.Method
				if p.CardLast4 != "" {
					method += " ····" + p.CardLast4
				} else if p.Provider != "" {
					method += " (" + p.Provider + ")"
				}
				table.AddRow(truncate(p.ID, 12), formatDate(p.CreatedAt), p.MembershipID,
					formatMoney(p.Amount, p.Currency), method, formatStatus(p.Status))
			}
			table.Render()
			fmt.Printf("\nPage %d of %d (%d payments)\n", page.Page, page.TotalPages, page.TotalItems)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 20, "payments per page")

	return cmd
}

func newPaymentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := apiClient.Payments().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get payment: %w", err)
			}
			if getOutputFormat() != "table" {
				return printOutput(p)
			}
			printPayment(p)
			return nil
		},
	}
}

func printPayment(p *client.Payment) {
	fmt.Printf("ID:           %s\n", p.ID)
	fmt.Printf("Date:         %s\n", formatDate(p.CreatedAt))
	fmt.Printf("Plan:         %s\n", p.MembershipID)
	fmt.Printf("Amount:       %s\n", formatMoney(p.Amount, p.Currency))
	if p.Discount > 0 {
		fmt.Printf("Discount:     %s\n", formatMoney(p.Discount, p.Currency))
	}
	fmt.Printf("Method:       %s\n", p.Method)
	fmt.Printf("Status:       %s\n", formatStatus(p.Status))
	if p.TransactionID != "" {
		fmt.Printf("Transaction:  %s\n", p.TransactionID)
	}
	if p.RefundID != "" {
		fmt.Printf("Refund:       %s\n", p.RefundID)
	}
	if p.Message != "" {
		fmt.Printf("Message:      %s\n", p.Message)
	}
}

func newPaymentRefundCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "refund <id>",
		Short: "Refund a payment and cancel its subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				answer := promptInput("Refunding cancels the linked subscription. Continue? [y/N]: ")
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					fmt.Println("Aborted.")
					return nil
				}
			}

			p, err := apiClient.Payments().Refund(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("refund failed: %w", err)
			}
			if getOutputFormat() != "table" {
				return printOutput(p)
			}
			success("Refund processed")
			printPayment(p)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newPaymentReceiptCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "receipt <id>",
		Short: "Download the PDF receipt of a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pdf, err := apiClient.Payments().Receipt(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to download receipt: %w", err)
			}

			if out == "" {
				out = fmt.Sprintf("receipt-%s.pdf", args[0])
			}
			if err := os.WriteFile(out, pdf, 0644); err != nil {
				return fmt.Errorf("failed to save receipt: %w", err)
			}
			success("Receipt saved to %s", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "file", "f", "", "output file (default receipt-<id>.pdf)")
	return cmd
}

func newPaymentMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List accepted payment methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			methods, err := apiClient.Payments().Methods(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list payment methods: %w", err)
			}
			if getOutputFormat() != "table" {
				return printOutput(methods)
			}
			table := NewTable("ID", "NAME", "PROVIDERS")
			for _, m := range methods {
				table.AddRow(m.ID, m.Name, strings.Join(m.Providers, ", "))
			}
			table.Render()
			return nil
		},
	}
}
