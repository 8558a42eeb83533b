package combat

import (
	"math"
	"math/rand/v2"
)

const (
	// MinResistance is the lower clamp for resolved resistance.
	// At -100 the mitigation divisor reaches zero.
	MinResistance = -99

	// DefaultCritDamage applies when an entity has no crit damage stat.
	DefaultCritDamage = 50

	// BossLifeStealFactor halves vampirism healing against bosses.
	BossLifeStealFactor = 0.5
)

// Round rounds half up, matching the rounding used by every damage formula.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Floor applies the damage floor: final damage is never below 1.
func Floor(x float64) float64 {
	return max(1, Round(x))
}

// Mitigate applies resistance to raw damage.
//
// Formula: round(max(1, raw * 100/(100+resistance))).
// Resistance 0 leaves damage unchanged, 100 halves it.
func Mitigate(raw, resistance float64) float64 {
	resistance = max(resistance, MinResistance)
	return Floor(raw * 100 / (100 + resistance))
}

// CritMultiplier returns the damage multiplier of a critical hit.
func CritMultiplier(critDamage float64) float64 {
	if critDamage == 0 {
		critDamage = DefaultCritDamage
	}
	return 1 + critDamage/100
}

// ApplyCrit multiplies damage by the crit multiplier and rounds.
func ApplyCrit(damage, critDamage float64) float64 {
	return Round(damage * CritMultiplier(critDamage))
}

// LifeSteal returns hp healed by vampirism for a hit of the given damage.
// Healing is halved against bosses and rounded up.
func LifeSteal(damage, vampirism float64, vsBoss bool) float64 {
	if vampirism <= 0 {
		return 0
	}
	if vsBoss {
		damage *= BossLifeStealFactor
	}
	return math.Ceil(damage * vampirism / 100)
}

// Roll returns true with the given percent chance: rng*100 < pct.
func Roll(rng *rand.Rand, pct float64) bool {
	if pct <= 0 {
		return false
	}
	return rng.Float64()*100 < pct
}

// Distance returns the euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x1-x2, y1-y2)
}

// InCone reports whether the target lies inside a cone of the given range
// and full angle (radians) opening from the caster toward direction.
// A target on the caster's exact position is never inside.
func InCone(cx, cy, tx, ty, coneRange, coneAngle, direction float64) bool {
	dx, dy := tx-cx, ty-cy
	dist := math.Hypot(dx, dy)
	if dist == 0 || dist > coneRange {
		return false
	}

	diff := math.Atan2(dy, dx) - direction
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return math.Abs(diff) <= coneAngle/2
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
