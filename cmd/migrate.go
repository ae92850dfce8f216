package cmd

import (
	"fmt"

	"task-tracker/backend/internal/config"
	"task-tracker/backend/internal/database"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Applies all pending Postgres migrations, or rolls back the most recent one with --down",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			logrus.Info(".env file not found, using environment variables")
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if migrateDown {
			if err := database.MigrateDown(cfg.GetDatabaseURL()); err != nil {
				return err
			}
			logrus.Info("rolled back most recent migration")
			return nil
		}

		if err := database.MigrateUp(cfg.GetDatabaseURL()); err != nil {
			return err
		}
		logrus.Info("migrations applied")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "roll back the most recent migration")
	rootCmd.AddCommand(migrateCmd)
}
