// ABOUTME: UI command launching the interactive TUI
// ABOUTME: Also the default action when promptdeck runs without a subcommand

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/promptlib/promptdeck/internal/debuglog"
	"github.com/promptlib/promptdeck/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI()
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI() error {
	c, mgr, err := newSession()
	if err != nil {
		return err
	}
	defer debuglog.Close()

	return tui.Run(c, mgr)
}
