// ABOUTME: Register command creating a new account
// ABOUTME: Prompts for credentials and signs in on success

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/promptlib/promptdeck/internal/client"
)

var (
	registerUsername string
	registerPassword string
	registerEmail    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return runRegister(ctx)
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address (optional)")
}

func runRegister(ctx context.Context) error {
	c, mgr, err := newSession()
	if err != nil {
		return err
	}

	username := registerUsername
	password := registerPassword
	email := registerEmail

	if username == "" || password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Username").
					Value(&username),
				huh.NewInput().
					Title("Email").
					Description("Optional").
					Value(&email),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	input := client.RegisterInput{Username: username, Password: password, Email: email}
	if err := c.Register(ctx, input); err != nil {
		return err
	}

	user, err := mgr.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("account created but sign in failed: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Account created, signed in as %s\n", user.Username)
	return nil
}
