package main

import (
	"github.com/spf13/cobra"

	"github.com/persx/persx-sub000/internal/app"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		log, err := logger.New(cfg.LogMode)
		if err != nil {
			return err
		}
		defer log.Sync()

		dbService, err := openDB(log, cfg)
		if err != nil {
			return err
		}
		defer dbService.Close()

		if err := app.Migrate(dbService.DB()); err != nil {
			return err
		}
		log.Info("migrations complete", "driver", cfg.Database.Driver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
