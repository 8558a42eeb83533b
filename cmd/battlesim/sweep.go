package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/udisondev/herobattle/internal/db"
	"github.com/udisondev/herobattle/internal/sim"
)

var (
	sweepBattles int
	sweepWorkers int
	sweepBiome   string
	sweepLevel   int
	sweepWeapon  string
	sweepLabel   string
	sweepSave    bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run many seeded battles of one level",
	Long:  `Run a batch of independent seeded battles concurrently and print win rate and damage statistics as JSON.`,
	RunE:  runSweep,
}

func init() {
	sweepCmd.Flags().IntVar(&sweepBattles, "battles", 0, "number of battles (default from config)")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "concurrent battles (default from config)")
	sweepCmd.Flags().StringVar(&sweepBiome, "biome", "forest", "biome to fight in")
	sweepCmd.Flags().IntVar(&sweepLevel, "level", 1, "level number")
	sweepCmd.Flags().StringVar(&sweepWeapon, "weapon", "", "weapon type of the main hero")
	sweepCmd.Flags().StringVar(&sweepLabel, "label", "", "seed label (default biome-level)")
	sweepCmd.Flags().BoolVar(&sweepSave, "save", false, "archive every report in PostgreSQL")
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	player, err := playerWith(sweepWeapon, nil)
	if err != nil {
		return err
	}

	sc := sim.Config{
		Battles:  cfg.Sweep.Battles,
		Workers:  cfg.Sweep.Workers,
		Biome:    sweepBiome,
		Level:    sweepLevel,
		Label:    sweepLabel,
		Player:   player,
		Width:    cfg.Battle.Width,
		Height:   cfg.Battle.Height,
		Allies:   cfg.Battle.Allies,
		AIChance: cfg.Battle.HeroAIChance,
		StepMs:   cfg.Battle.TickMs,
		MaxMs:    cfg.Battle.MaxDurationMs(),
	}
	if sweepBattles > 0 {
		sc.Battles = sweepBattles
	}
	if sweepWorkers > 0 {
		sc.Workers = sweepWorkers
	}

	var store sim.ReportStore
	if sweepSave {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer database.Close()
		store = database.Reports()
	}

	sum, err := sim.NewSweeper(content, sc, store).Run(ctx)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	return printJSON(os.Stdout, sum)
}
