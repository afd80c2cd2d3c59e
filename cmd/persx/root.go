package main

import (
	"github.com/spf13/cobra"

	"github.com/persx/persx-sub000/internal/app"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "persx",
	Short: "PersX marketing site and content manager",
	Long: `PersX serves the public marketing site with industry personalization
and the admin API for managing knowledge-base content.

Configuration is read from ./persx.yaml or ~/.persx/persx.yaml and can be
overridden with PERSX_* environment variables (e.g. PERSX_DATABASE_DSN).`,
	Version:       app.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./persx.yaml or ~/.persx/persx.yaml)",
	)
}

// newApp loads config and builds the application graph, applying overrides
// before wiring.
func newApp(override func(*app.Config)) (*app.App, error) {
	cfg, err := app.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(&cfg)
	}
	return app.New(cfg)
}
