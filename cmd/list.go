// ABOUTME: List command printing prompts as a table or JSON
// ABOUTME: Scriptable listing with status and ownership filters

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/promptlib/promptdeck/internal/client"
)

var (
	listStatus string
	listMine   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompts",
	Long: `List prompts visible to the signed-in user.

Exit codes:
  0 - Success
  2 - Error (not signed in, connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (pending, approved, rejected, pending_deletion)")
	listCmd.Flags().BoolVar(&listMine, "mine", false, "Only show your own prompts")
}

// runList executes the listing and returns an exit code
func runList(ctx context.Context, w io.Writer) int {
	if err := validateStatus(listStatus); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c, mgr, err := newSession()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if !mgr.Authenticated() {
		fmt.Fprintln(w, "Error: not signed in; run 'promptdeck login' first")
		return 2
	}

	prompts, err := c.ListPrompts(ctx, client.ListOptions{Status: listStatus, Mine: listMine})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if listMine {
		prompts = filterOwned(prompts, mgr.User())
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(prompts, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprint(w, formatListTable(prompts))
	return 0
}

// validateStatus rejects unknown status filters before any request
func validateStatus(status string) error {
	switch status {
	case "", client.StatusPending, client.StatusApproved, client.StatusRejected, client.StatusPendingDeletion:
		return nil
	}
	return fmt.Errorf("unknown status %q", status)
}

// filterOwned keeps prompts owned by the given user. The backend also
// honors the mine filter; this guards against older servers that
// ignore unknown query parameters.
func filterOwned(prompts []client.Prompt, user *client.User) []client.Prompt {
	if user == nil {
		return prompts
	}
	var out []client.Prompt
	for _, p := range prompts {
		if p.UserUsername == user.Username {
			out = append(out, p)
		}
	}
	return out
}

// formatListTable renders prompts as an aligned table
func formatListTable(prompts []client.Prompt) string {
	if len(prompts) == 0 {
		return "No prompts found.\n"
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTATUS\tVOTES\tAUTHOR")
	for _, p := range prompts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%+d\t%s\n",
			p.ID,
			p.Title,
			client.CategoryLabel(p.Category),
			client.StatusLabel(p.Status),
			p.VoteCount,
			p.UserUsername,
		)
	}
	tw.Flush()
	return sb.String()
}
