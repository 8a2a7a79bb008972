// ABOUTME: Login command creating a persistent session
// ABOUTME: Prompts interactively unless credentials are passed as flags

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return runLogin(ctx)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
}

func runLogin(ctx context.Context) error {
	_, mgr, err := newSession()
	if err != nil {
		return err
	}

	username := loginUsername
	password := loginPassword

	if username == "" || password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Username").
					Value(&username),
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

	user, err := mgr.Login(ctx, username, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Signed in as %s (%s)\n", user.Username, mgr.Role())
	return nil
}
