package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/net2mulu/signature-gym/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthWhoamiCmd())
	cmd.AddCommand(newAuthForgotCmd())

	return cmd
}

func saveSession(resp *client.LoginResponse, email string) error {
	viper.Set("auth.token", resp.AccessToken)
	viper.Set("auth.refresh_token", resp.RefreshToken)
	if resp.User != nil {
		email = resp.User.Email
	}
	viper.Set("auth.email", email)
	return writeConfig()
}

func newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = promptInput("Email: ")
			}
			if password == "" {
				password = promptPassword("Password: ")
			}

			resp, err := apiClient.Login(context.Background(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if err := saveSession(resp, email); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			name := email
			if resp.User != nil && resp.User.Name != "" {
				name = resp.User.Name
			}
			success("Logged in as %s", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var req client.RegisterRequest
	var password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a member account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.FirstName == "" {
				req.FirstName = promptInput("First name: ")
			}
			if req.LastName == "" {
				req.LastName = promptInput("Last name: ")
			}
			if req.Email == "" {
				req.Email = promptInput("Email: ")
			}
			if req.Phone == "" {
				req.Phone = promptInput("Phone: ")
			}
			if password == "" {
				password = promptPassword("Password: ")
				confirm := promptPassword("Confirm password: ")
				if password != confirm {
					return fmt.Errorf("passwords do not match")
				}
			}
			if !req.AgreeToTerms {
				answer := promptInput("Do you agree to the terms and conditions? [y/N]: ")
				req.AgreeToTerms = strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
			}
			if !req.AgreeToTerms {
				return fmt.Errorf("you must agree to the terms and conditions")
			}
			req.Password = password

			resp, err := apiClient.Register(context.Background(), req)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			if err := saveSession(resp, req.Email); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			success("Account created. Logged in as %s", req.Email)
			if resp.User != nil && resp.User.ReferralCode != "" {
				fmt.Printf("Your referral code: %s\n", resp.User.ReferralCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.ResidentID, "resident-id", "", "resident ID (optional)")
	cmd.Flags().StringVar(&req.ReferralCode, "referral", "", "referral code from a friend")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().BoolVar(&req.AgreeToTerms, "agree", false, "agree to the terms and conditions")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			// best effort: the server only clears cookies
			_ = apiClient.Logout(context.Background())

			viper.Set("auth.token", "")
			viper.Set("auth.refresh_token", "")
			viper.Set("auth.email", "")

			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to clear credentials: %w", err)
			}

			success("Logged out successfully")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show current member info",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := apiClient.GetCurrentUser(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get user info: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(user)
			}

			fmt.Printf("Name:             %s\n", user.Name)
			fmt.Printf("Email:            %s\n", user.Email)
			fmt.Printf("Phone:            %s\n", user.Phone)
			fmt.Printf("Referral code:    %s\n", user.ReferralCode)
			fmt.Printf("Referral credits: %d\n", user.ReferralCredits)
			fmt.Printf("ID:               %d\n", user.ID)
			return nil
		},
	}
}

func newAuthForgotCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot",
		Short: "Request a password reset link",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = promptInput("Email: ")
			}
			if err := apiClient.ForgotPassword(context.Background(), email); err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			fmt.Println("If an account exists for that email, a reset link is on its way.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func promptInput(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(password)
}
