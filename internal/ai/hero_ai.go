package ai

import (
	"math"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/model"
)

const (
	// DefaultAbilityChance is the chance per reference frame that an AI hero
	// fires one of its ready abilities.
	DefaultAbilityChance = 0.01

	// SingleTargetRangeFactor bounds how far a single-target ability may be
	// thrown, relative to the hero's attack range.
	SingleTargetRangeFactor = 1.5
)

// HeroAI is the probabilistic ability picker of non-player heroes.
//
// Each tick it rolls Chance (scaled to the elapsed frames so that the rate is
// independent of the tick length), picks one ready ability at random and
// skips the turn when a single-target ability would be out of reach.
type HeroAI struct {
	Chance float64
}

// NewHeroAI creates a picker with the given per-frame chance, or the default
// when chance is not positive.
func NewHeroAI(chance float64) *HeroAI {
	if chance <= 0 {
		chance = DefaultAbilityChance
	}
	return &HeroAI{Chance: chance}
}

// Pick implements model.AbilityPicker.
func (ai *HeroAI) Pick(f *model.Frame, h *model.Hero, target *model.Entity) string {
	if target == nil || !target.Alive {
		return ""
	}
	ready := h.Ready()
	if len(ready) == 0 {
		return ""
	}

	if f.Rand.Float64() >= ai.chance(f.Steps()) {
		return ""
	}

	ab := ready[f.Rand.IntN(len(ready))]
	if ab.TargetType == data.TargetSingleEnemy && h.DistanceTo(target) > h.Range()*SingleTargetRangeFactor {
		traceDecision(h, ab, target, decisionOutOfReach)
		return ""
	}

	traceDecision(h, ab, target, decisionPicked)
	return ab.ID
}

// chance converts the per-frame chance into the chance over steps frames.
func (ai *HeroAI) chance(steps float64) float64 {
	if steps <= 0 {
		return 0
	}
	return 1 - math.Pow(1-ai.Chance, steps)
}
