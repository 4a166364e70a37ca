package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server health and, when logged in, your membership summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			health, healthErr := apiClient.Ready(ctx)

			var summary map[string]interface{}
			if token := viper.GetString("auth.token"); token != "" {
				apiClient.SetToken(token)
				if d, err := apiClient.Subscriptions().Dashboard(ctx); err == nil {
					summary = map[string]interface{}{
						"active_subscriptions": d.ActiveCount,
						"guest_passes":         d.GuestPasses,
						"next_end_date":        d.NextEndDate,
					}
				}
			}

			if getOutputFormat() != "table" {
				out := map[string]interface{}{"server": apiClient.BaseURL()}
				if healthErr != nil {
					out["health"] = healthErr.Error()
				} else {
					out["health"] = health
				}
				if summary != nil {
					out["membership"] = summary
				}
				return printOutput(out)
			}

			fmt.Println("Signature Fitness")
			fmt.Println(strings.Repeat("=", 40))
			fmt.Printf("  Server:        %s\n", apiClient.BaseURL())
			if healthErr != nil {
				fmt.Printf("  Health:        %s\n", color.RedString("unreachable (%v)", healthErr))
				return nil
			}
			fmt.Printf("  Health:        %s\n", color.GreenString(health.Status))
			fmt.Printf("  Database:      %s\n", health.Database)
			fmt.Printf("  Cache:         %s\n", health.Cache)

			if summary == nil {
				fmt.Println("  Membership:    (log in to see your subscriptions)")
				return nil
			}
			fmt.Printf("  Active plans:  %v\n", summary["active_subscriptions"])
			fmt.Printf("  Guest passes:  %v\n", summary["guest_passes"])
			return nil
		},
	}
}
