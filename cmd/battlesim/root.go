package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/udisondev/herobattle/internal/ai"
	"github.com/udisondev/herobattle/internal/config"
	"github.com/udisondev/herobattle/internal/data"
)

var (
	configPath string

	cfg     config.Simulator
	content *data.Content
)

var rootCmd = &cobra.Command{
	Use:           "battlesim",
	Short:         "Hero battle simulator",
	Long:          `battlesim runs real-time hero battles against biome enemies, headless or on a wall-clock ticker.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolvePath(configPath)
		loaded, err := config.LoadSimulator(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded

		level := cfg.SlogLevel()
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
		ai.EnableDecisionTrace(level == slog.LevelDebug)

		if cfg.ContentPath != "" {
			content, err = data.LoadContentFile(cfg.ContentPath)
		} else {
			content, err = data.LoadContent()
		}
		if err != nil {
			return fmt.Errorf("loading content: %w", err)
		}
		slog.Debug("config loaded", "path", path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(migrateCmd)
}

// playerWith returns the content player profile wearing the named items.
// weapon, when set, picks the first item of that weapon type.
func playerWith(weapon string, items []string) (*data.Player, error) {
	names := append([]string(nil), items...)
	if weapon != "" {
		it, ok := weaponOfType(weapon)
		if !ok {
			return nil, fmt.Errorf("no item of weapon type %q", weapon)
		}
		names = append(names, it.Name)
	}

	eq, err := content.Equip(names...)
	if err != nil {
		return nil, err
	}
	p := content.Player
	p.Equipment = eq
	return &p, nil
}

func weaponOfType(weapon string) (*data.Item, bool) {
	for _, it := range content.Items {
		if it.Type == weapon && it.Slot() == data.SlotWeapon {
			return it, true
		}
	}
	return nil, false
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
