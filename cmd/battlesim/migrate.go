package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/udisondev/herobattle/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dsn := cfg.Database.DSN()
		if err := db.RunMigrations(ctx, dsn); err != nil {
			return err
		}
		version, err := db.SchemaVersion(ctx, dsn)
		if err != nil {
			return err
		}
		slog.Info("report schema up to date", "version", version)
		return nil
	},
}

var reportsLimit int

var reportsCmd = &cobra.Command{
	Use:   "reports [battle-id]",
	Short: "Show archived battle reports",
	Long:  `Without arguments list the most recent battles; with a battle id print its full result.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer database.Close()
		repo := database.Reports()

		if len(args) == 0 {
			recent, err := repo.Recent(ctx, reportsLimit)
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, recent)
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid battle id %q: %w", args[0], err)
		}
		res, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, res)
	},
}

func init() {
	reportsCmd.Flags().IntVar(&reportsLimit, "limit", 20, "number of recent battles to list")
	rootCmd.AddCommand(reportsCmd)
}
