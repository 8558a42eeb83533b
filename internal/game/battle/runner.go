package battle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/herobattle/internal/model"
)

// DefaultStepMs is the fixed headless step, one reference frame.
const DefaultStepMs = model.FrameMs

// RunHeadless drives d with a fixed step until it ends. A battle still
// running after maxMs of battle time is abandoned with ErrTimeout;
// maxMs <= 0 disables the limit.
func RunHeadless(ctx context.Context, d *Director, stepMs, maxMs float64) (Result, error) {
	if stepMs <= 0 {
		stepMs = DefaultStepMs
	}
	if d.State() == StatePlacement {
		if err := d.Start(); err != nil {
			return Result{}, err
		}
	}

	for {
		if r, ok := d.Result(); ok {
			return r, nil
		}
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if maxMs > 0 && d.Now() >= maxMs {
			_ = d.Abandon()
			return Result{}, fmt.Errorf("%w after %.0fms", ErrTimeout, d.Now())
		}
		if err := d.Tick(stepMs); err != nil {
			return Result{}, err
		}
	}
}

// RunLive drives d on a wall-clock ticker, feeding the real elapsed time of
// each tick. It blocks until the battle ends or ctx is canceled.
func RunLive(ctx context.Context, d *Director, interval time.Duration) (Result, error) {
	if interval <= 0 {
		stepMs := DefaultStepMs
		interval = time.Duration(stepMs * float64(time.Millisecond))
	}
	if d.State() == StatePlacement {
		if err := d.Start(); err != nil {
			return Result{}, err
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("live battle loop started", "battle", d.ID, "interval", interval)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			slog.Info("live battle loop stopping", "battle", d.ID)
			_ = d.Abandon()
			return Result{}, ctx.Err()

		case now := <-ticker.C:
			elapsed := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now
			if err := d.Tick(elapsed); err != nil {
				return Result{}, err
			}
			if r, ok := d.Result(); ok {
				return r, nil
			}
		}
	}
}
