package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	userEmail    string
	userName     string
	userPassword string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage admin users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin user",
	Example: `  persx user create --email admin@persx.ai --name Admin --password 'correct horse'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(nil)
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.Services.Auth.CreateUser(cmd.Context(), userEmail, userName, userPassword)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created admin user %s (%s)\n", u.Email, u.ID)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "login email")
	userCreateCmd.Flags().StringVar(&userName, "name", "", "display name")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "password")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}
