package ai

import (
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/model"
)

// Decision outcomes written to the trace.
const (
	decisionPicked     = "picked"
	decisionOutOfReach = "out of reach"
)

// decisionTrace is shared by every picker of every battle in the process,
// including concurrent sweep workers.
var decisionTrace atomic.Bool

// EnableDecisionTrace switches hero AI decision logging.
func EnableDecisionTrace(enabled bool) {
	decisionTrace.Store(enabled)
}

// TraceEnabled reports whether hero AI decisions are logged.
func TraceEnabled() bool {
	return decisionTrace.Load()
}

// traceDecision logs the ability a hero rolled and what became of it.
func traceDecision(h *model.Hero, ab *data.Ability, target *model.Entity, outcome string) {
	if !decisionTrace.Load() {
		return
	}
	slog.Debug("hero ai decision",
		"hero", h.ID,
		"class", h.Name(),
		"ability", ab.ID,
		"target", target.ID,
		"distance", h.DistanceTo(target),
		"outcome", outcome)
}
