// ABOUTME: Categories command printing the available prompt categories
// ABOUTME: Combines the backend's list with the predefined label table

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

	"github.com/promptlib/promptdeck/internal/client"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List prompt categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return runCategories(ctx, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(ctx context.Context, w io.Writer) error {
	c, mgr, err := newSession()
	if err != nil {
		return err
	}

	if !mgr.Authenticated() {
		return fmt.Errorf("not signed in; run 'promptdeck login' first")
	}

	categories, err := c.Categories(ctx)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(categories, "", "  ")
		fmt.Fprintln(w, string(data))
		return nil
	}

	for _, cat := range categories {
		fmt.Fprintf(w, "%s\t%s\n", cat, client.CategoryLabel(cat))
	}
	return nil
}
