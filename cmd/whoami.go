// ABOUTME: Whoami command printing the current identity and role
// ABOUTME: Fetches fresh identity from the backend when a session exists

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return runWhoami(ctx, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(ctx context.Context, w io.Writer) error {
	_, mgr, err := newSession()
	if err != nil {
		return err
	}

	if !mgr.Authenticated() {
		return fmt.Errorf("not signed in; run 'promptdeck login' first")
	}

	user, err := mgr.FetchCurrentUser(ctx)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		out := map[string]any{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     mgr.Role().String(),
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintf(w, "%s (%s)\n", user.Username, mgr.Role())
	if user.Email != "" {
		fmt.Fprintf(w, "email: %s\n", user.Email)
	}
	return nil
}
