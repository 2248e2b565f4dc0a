package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Kunxl-4568/VirtualKitchen/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.close()

		if err := database.Migrate(a.db); err != nil {
			return err
		}
		a.log.Info("migration completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
