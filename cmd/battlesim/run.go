package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/udisondev/herobattle/internal/db"
	"github.com/udisondev/herobattle/internal/game/battle"
	"github.com/udisondev/herobattle/internal/publish"
)

var (
	runBiome   string
	runLevel   int
	runWeapon  string
	runItems   []string
	runSeed    string
	runLive    bool
	runSave    bool
	runPublish bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fight one level",
	Long:  `Build a level for the given biome and fight it to the end, then print the battle result as JSON.`,
	RunE:  runBattle,
}

func init() {
	runCmd.Flags().StringVar(&runBiome, "biome", "forest", "biome to fight in")
	runCmd.Flags().IntVar(&runLevel, "level", 1, "level number")
	runCmd.Flags().StringVar(&runWeapon, "weapon", "", "weapon type of the main hero (sword, bow, staff, dagger, shield)")
	runCmd.Flags().StringSliceVar(&runItems, "item", nil, "extra items to equip by name")
	runCmd.Flags().StringVar(&runSeed, "seed", "", "seed label for a reproducible battle")
	runCmd.Flags().BoolVar(&runLive, "live", false, "tick on the wall clock instead of as fast as possible")
	runCmd.Flags().BoolVar(&runSave, "save", false, "archive the report in PostgreSQL")
	runCmd.Flags().BoolVar(&runPublish, "publish", false, "publish cooldowns and the result to Redis")
}

func runBattle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	player, err := playerWith(runWeapon, runItems)
	if err != nil {
		return err
	}

	setup := battle.Setup{
		Content:  content,
		Player:   player,
		Biome:    runBiome,
		Level:    runLevel,
		Width:    cfg.Battle.Width,
		Height:   cfg.Battle.Height,
		Allies:   cfg.Battle.Allies,
		AIChance: cfg.Battle.HeroAIChance,
	}
	if runSeed != "" {
		setup.Rand = battle.Seed(runSeed, uint64(runLevel))
	}

	d, err := battle.NewDirector(setup)
	if err != nil {
		return fmt.Errorf("building battle: %w", err)
	}

	if runPublish {
		pub, closeFn, err := newPublisher(ctx)
		if err != nil {
			return err
		}
		defer closeFn()
		d.AddListener(pub)
	}

	var res battle.Result
	if runLive {
		res, err = battle.RunLive(ctx, d, cfg.Battle.TickInterval())
	} else {
		res, err = battle.RunHeadless(ctx, d, cfg.Battle.TickMs, cfg.Battle.MaxDurationMs())
	}
	if err != nil {
		return fmt.Errorf("running battle %s: %w", d.ID, err)
	}

	if runSave {
		if err := saveReport(ctx, res); err != nil {
			return err
		}
	}
	return printJSON(os.Stdout, res)
}

func newPublisher(ctx context.Context) (*publish.RedisPublisher, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connecting to redis %s: %w", cfg.Redis.Addr, err)
	}

	pub, err := publish.NewRedisPublisher(ctx, &publish.Config{
		Client:        client,
		Channel:       cfg.Redis.Channel,
		ReportTTL:     cfg.Redis.ReportTTL,
		SnapshotEvery: cfg.Redis.SnapshotEvery,
	})
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return pub, func() {
		if err := pub.Err(); err != nil {
			slog.Warn("publisher reported errors", "error", err)
		}
		client.Close()
	}, nil
}

func saveReport(ctx context.Context, res battle.Result) error {
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Reports().Save(ctx, res); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	slog.Info("report saved", "battle", res.BattleID)
	return nil
}
