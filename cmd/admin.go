package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kunxl-4568/VirtualKitchen/database"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage administrator accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin, or promote an existing user",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" || password == "" {
			return errors.New("--email and --password are required")
		}
		if name == "" {
			name = "Admin"
		}

		a, err := setup()
		if err != nil {
			return err
		}
		defer a.close()

		if err := database.Migrate(a.db); err != nil {
			return err
		}
		user, err := database.CreateAdmin(a.db, name, email, password)
		if err != nil {
			return err
		}
		a.log.Info("admin ready", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().String("name", "", "display name")
	adminCreateCmd.Flags().String("email", "", "login email")
	adminCreateCmd.Flags().String("password", "", "login password")
	adminCmd.AddCommand(adminCreateCmd)
	rootCmd.AddCommand(adminCmd)
}
