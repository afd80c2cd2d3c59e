package main

import (
	"github.com/spf13/cobra"

	"github.com/persx/persx-sub000/internal/app"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the site and admin API server.

Runs schema migrations on start-up and shuts down gracefully on Ctrl+C or
SIGTERM.

Examples:
  persx serve                  # listen on the configured addr (default :8080)
  persx serve --addr :3000     # custom listen address`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(func(cfg *app.Config) {
			if serveAddr != "" {
				cfg.Addr = serveAddr
			}
		})
		if err != nil {
			return err
		}
		defer a.Close()
		return a.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "address to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
