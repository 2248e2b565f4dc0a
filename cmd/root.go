package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jinzhu/gorm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kunxl-4568/VirtualKitchen/config"
	"github.com/Kunxl-4568/VirtualKitchen/database"
	"github.com/Kunxl-4568/VirtualKitchen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "virtualkitchen",
	Short: "Recipe sharing API",
	// Running the binary without a subcommand starts the server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is what every subcommand starts from: config, logger and a database.
type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func setup() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.GinMode)
	if err != nil {
		return nil, err
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.log.Warn("close database", zap.Error(err))
	}
	_ = a.log.Sync()
}
