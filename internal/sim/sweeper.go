package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/battle"
)

// Config describes a sweep: Battles independent runs of the same level,
// each seeded from Label and its index.
type Config struct {
	Battles int
	Workers int

	Biome  string
	Level  int
	Label  string
	Player *data.Player

	Width, Height float64
	Allies        int
	AIChance      float64

	StepMs float64
	MaxMs  float64
}

// Summary aggregates the outcomes of a sweep.
type Summary struct {
	Battles        int     `json:"battles"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Timeouts       int     `json:"timeouts"`
	WinRate        float64 `json:"winRate"`
	MeanDurationMs float64 `json:"meanDurationMs"`
	// MeanDamageByHero is the mean damage dealt per battle, keyed by hero name.
	MeanDamageByHero map[string]float64 `json:"meanDamageByHero"`
	Elapsed          time.Duration      `json:"elapsed"`
}

type outcome struct {
	result  battle.Result
	timeout bool
}

// Sweeper runs battles concurrently. Each battle is single-threaded and
// owns its director; workers share only the read-only content tables.
type Sweeper struct {
	content *data.Content
	cfg     Config
	store   ReportStore
}

// NewSweeper creates a sweeper. store may be nil to skip archival.
func NewSweeper(content *data.Content, cfg Config, store ReportStore) *Sweeper {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Label == "" {
		cfg.Label = fmt.Sprintf("%s-%d", cfg.Biome, cfg.Level)
	}
	return &Sweeper{content: content, cfg: cfg, store: store}
}

// Run executes the sweep. The first failing battle cancels the rest.
func (s *Sweeper) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	outcomes := make([]outcome, s.cfg.Battles)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i := range s.cfg.Battles {
		g.Go(func() error {
			o, err := s.runOne(ctx, i)
			if err != nil {
				return fmt.Errorf("battle %d: %w", i, err)
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	sum := summarize(outcomes)
	sum.Elapsed = time.Since(start)
	slog.Info("sweep finished",
		"battles", sum.Battles,
		"wins", sum.Wins,
		"losses", sum.Losses,
		"timeouts", sum.Timeouts,
		"elapsed", sum.Elapsed)
	return sum, nil
}

func (s *Sweeper) runOne(ctx context.Context, i int) (outcome, error) {
	d, err := battle.NewDirector(battle.Setup{
		Content:  s.content,
		Player:   s.cfg.Player,
		Biome:    s.cfg.Biome,
		Level:    s.cfg.Level,
		Width:    s.cfg.Width,
		Height:   s.cfg.Height,
		Allies:   s.cfg.Allies,
		AIChance: s.cfg.AIChance,
		Rand:     battle.Seed(s.cfg.Label, uint64(i)),
	})
	if err != nil {
		return outcome{}, err
	}

	res, err := battle.RunHeadless(ctx, d, s.cfg.StepMs, s.cfg.MaxMs)
	if errors.Is(err, battle.ErrTimeout) {
		return outcome{timeout: true}, nil
	}
	if err != nil {
		return outcome{}, err
	}

	if s.store != nil {
		if err := s.store.Save(ctx, res); err != nil {
			return outcome{}, fmt.Errorf("archiving %s: %w", res.BattleID, err)
		}
	}
	return outcome{result: res}, nil
}

func summarize(outcomes []outcome) Summary {
	sum := Summary{
		Battles:          len(outcomes),
		MeanDamageByHero: make(map[string]float64),
	}
	var duration float64
	seen := make(map[string]int)
	for _, o := range outcomes {
		switch {
		case o.timeout:
			sum.Timeouts++
			continue
		case o.result.Won:
			sum.Wins++
		default:
			sum.Losses++
		}
		duration += o.result.DurationMs
		for name, hs := range o.result.Report.HeroStats {
			sum.MeanDamageByHero[name] += hs.DamageDealt
			seen[name]++
		}
	}

	if finished := sum.Wins + sum.Losses; finished > 0 {
		sum.MeanDurationMs = duration / float64(finished)
	}
	if sum.Battles > 0 {
		sum.WinRate = float64(sum.Wins) / float64(sum.Battles)
	}
	for name, n := range seen {
		sum.MeanDamageByHero[name] /= float64(n)
	}
	return sum
}
