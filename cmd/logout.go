// ABOUTME: Logout command discarding the stored session
// ABOUTME: Clears tokens and cached identity from the config directory

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, mgr, err := newSession()
		if err != nil {
			return err
		}

		mgr.Logout()
		fmt.Fprintln(os.Stdout, "Signed out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
