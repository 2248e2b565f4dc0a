package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kunxl-4568/VirtualKitchen/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default cuisines, categories and ingredients",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.close()

		if err := database.Migrate(a.db); err != nil {
			return err
		}
		counts, err := database.Seed(a.db)
		if err != nil {
			return err
		}
		a.log.Info("seed completed",
			zap.Int("cuisines", counts.Cuisines),
			zap.Int("categories", counts.Categories),
			zap.Int("ingredients", counts.Ingredients))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
