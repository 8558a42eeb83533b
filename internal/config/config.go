package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath overrides the default config location.
const EnvPath = "HEROBATTLE_CONFIG"

// DefaultPath is where the simulator looks for its config.
const DefaultPath = "config/battlesim.yaml"

// Simulator holds all configuration for the battle simulator.
type Simulator struct {
	LogLevel string `yaml:"log_level"`

	// ContentPath points at a content YAML file; empty uses the built-in tables.
	ContentPath string `yaml:"content_path"`

	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Battle   BattleConfig   `yaml:"battle"`
	Sweep    SweepConfig    `yaml:"sweep"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// RedisConfig configures the outbound signal publisher.
type RedisConfig struct {
	Addr          string        `yaml:"addr"`
	Password      string        `yaml:"password"`
	DB            int           `yaml:"db"`
	Channel       string        `yaml:"channel"`
	ReportTTL     time.Duration `yaml:"report_ttl"`
	SnapshotEvery time.Duration `yaml:"snapshot_every"`
}

// BattleConfig tunes a single battle.
type BattleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// TickMs is the fixed headless step and the live ticker interval.
	TickMs float64 `yaml:"tick_ms"`

	// MaxDuration abandons battles still running after this much battle time.
	MaxDuration time.Duration `yaml:"max_duration"`

	HeroAIChance float64 `yaml:"hero_ai_chance"`
	Allies       int     `yaml:"allies"`
}

// SweepConfig sizes batch simulations.
type SweepConfig struct {
	Battles int `yaml:"battles"`
	Workers int `yaml:"workers"`
}

// DefaultSimulator returns Simulator config with sensible defaults.
func DefaultSimulator() Simulator {
	return Simulator{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "herobattle",
			Password: "herobattle",
			DBName:   "herobattle",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Addr:          "127.0.0.1:6379",
			Channel:       "battles:results",
			ReportTTL:     24 * time.Hour,
			SnapshotEvery: 250 * time.Millisecond,
		},
		Battle: BattleConfig{
			Width:        800,
			Height:       600,
			TickMs:       1000.0 / 60,
			MaxDuration:  10 * time.Minute,
			HeroAIChance: 0.01,
			Allies:       2,
		},
		Sweep: SweepConfig{
			Battles: 100,
			Workers: 4,
		},
	}
}

// MaxDurationMs returns MaxDuration in milliseconds.
func (b BattleConfig) MaxDurationMs() float64 {
	return float64(b.MaxDuration) / float64(time.Millisecond)
}

// TickInterval returns TickMs as a duration.
func (b BattleConfig) TickInterval() time.Duration {
	return time.Duration(b.TickMs * float64(time.Millisecond))
}

// SlogLevel parses LogLevel. Unknown values fall back to info.
func (s Simulator) SlogLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ResolvePath picks the config path: explicit flag, then the
// HEROBATTLE_CONFIG env var, then DefaultPath.
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(EnvPath); env != "" {
		return env
	}
	return DefaultPath
}

// LoadSimulator loads simulator config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulator(path string) (Simulator, error) {
	cfg := DefaultSimulator()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
