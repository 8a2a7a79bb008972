// ABOUTME: Root command for the promptdeck CLI
// ABOUTME: Handles global flags, configuration, and session wiring

package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/promptlib/promptdeck/internal/client"
	"github.com/promptlib/promptdeck/internal/config"
	"github.com/promptlib/promptdeck/internal/debuglog"
	"github.com/promptlib/promptdeck/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "promptdeck",
	Short: "Terminal client for the prompt library",
	Long: `promptdeck is a terminal client for a shared prompt library.

Browse, create, vote on, and bookmark prompts; staff accounts get a
moderation dashboard. Running promptdeck without a subcommand opens
the interactive UI.

Environment Variables:
  PROMPTDECK_API_URL     Backend API URL (default: http://localhost:8000/api)
  PROMPTDECK_TIMEOUT     Per-request timeout in seconds (default: 30)
  PROMPTDECK_CONFIG_DIR  Session and log directory (default: XDG config dir)
  PROMPTDECK_DEBUG       Write a debug log next to the session file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides PROMPTDECK_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// resolveAPIURL returns the API URL from flag, env/.env, or default
// (in priority order); config.Load already folded env and default
// into cfg.APIURL.
func resolveAPIURL(cfg *config.Config) string {
	if apiURL != "" {
		return apiURL
	}
	return cfg.APIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newSession builds the API client and session manager most commands need
func newSession() (*client.Client, *session.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if cfg.Debug {
		if err := debuglog.Init(cfg.ConfigDir); err != nil {
			return nil, nil, err
		}
	}

	c := client.New(resolveAPIURL(cfg))
	c.SetTimeout(time.Duration(cfg.RequestTimeout) * time.Second)
	mgr, err := session.NewManager(c, cfg.ConfigDir)
	if err != nil {
		return nil, nil, err
	}
	return c, mgr, nil
}
