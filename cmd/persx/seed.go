package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/persx/persx-sub000/internal/app"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load content records from a YAML fixture",
	Long: `Create content records (including the block-built home page) from a YAML
fixture. Records whose slug already exists are skipped.

Examples:
  persx seed --file configs/seed.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fh, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer fh.Close()
		fixture, err := app.ParseSeed(fh)
		if err != nil {
			return err
		}

		a, err := newApp(nil)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := app.Seed(cmd.Context(), a.Log, a.Services.Content, fixture)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d records (%d skipped)\n", res.Created, res.Skipped)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "configs/seed.yaml", "seed fixture path")
	rootCmd.AddCommand(seedCmd)
}
