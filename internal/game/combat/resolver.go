package combat

import (
	"math"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/skill"
)

// Derivation coefficients shared by heroes and enemies.
const (
	HPPerVigor         = 10.85
	DamagePerLethality = 1.25

	defaultAttackIntervalMs = 1500
	defaultSize             = 20
	minAttackSpeedDivisor   = 0.1

	// floorEpsilon absorbs float error when an enemy's hp is converted to
	// vigor and back, so 360/10.85*10.85 floors to 360.
	floorEpsilon = 1e-9
)

// Source is everything a combat entity's stats are derived from.
// Exactly one of Class or Enemy is normally set.
type Source struct {
	Base       data.BaseStats
	Class      *data.Class
	Enemy      *data.EnemyTemplate
	LevelScale float64
	Equipment  data.Equipment
}

// Stats are the effective combat stats of an entity.
// BaseStats carries the resolved primary attributes; MoveSpeed is final.
type Stats struct {
	data.BaseStats

	Name             string
	Weapon           string
	Emoji            string
	MaxHP            float64
	Damage           float64
	AttackIntervalMs float64
	Range            float64
	Size             float64
	Boss             bool
}

// Resolve computes effective combat stats from a source and the entity's
// active modifiers.
//
// Pipeline:
//  1. base stats plus flat equipment bonuses (enemies: level-scaled seed)
//  2. modifiers: lethality/vigor/resistance/move percents pool and compound,
//     attack speed/crit chance/crit damage/dodge percents add raw points,
//     flats add, resistance reduction subtracts; all scaled by stacks
//  3. resistance clamped at MinResistance
//  4. hp, damage and attack interval derived from template + stats
//  5. range percent applied last
func Resolve(src Source, mods []*skill.Modifier) Stats {
	var out Stats
	s := src.Base

	switch {
	case src.Class != nil:
		s = s.Add(src.Equipment.Bonuses())
	case src.Enemy != nil:
		s = seedEnemy(s, src.Enemy, src.LevelScale)
	}

	var lethPct, vigPct, resPct, movePct, rangePct float64
	for _, m := range mods {
		k := float64(m.StackCount())
		fx := &m.Effects

		lethPct += fx.LethalityPercent * k
		vigPct += fx.VigorPercent * k
		resPct += fx.ResistancePercent * k
		movePct += fx.MoveSpeedPercent * k
		rangePct += fx.RangePercent * k

		s.AttackSpeed += fx.AttackSpeedPercent * k
		s.CritChance += fx.CritChancePercent * k
		s.CritDamage += fx.CritDamagePercent * k
		s.Dodge += fx.DodgePercent * k

		s.Lethality += fx.LethalityFlat * k
		s.Vigor += fx.VigorFlat * k
		s.Resistance += fx.ResistanceFlat * k
		s.Resistance -= fx.ResistanceReductionPercent * k
	}

	s.Lethality *= 1 + lethPct/100
	s.Vigor *= 1 + vigPct/100
	s.Resistance *= 1 + resPct/100
	s.MoveSpeed *= 1 + movePct/100
	s.Resistance = max(s.Resistance, MinResistance)

	interval := float64(defaultAttackIntervalMs)
	out.Size = defaultSize

	switch {
	case src.Class != nil:
		c := src.Class
		out.Name = c.Name
		out.Weapon = c.Weapon
		out.Range = c.Range
		out.Size = c.BodySize()
		out.MaxHP = floorStat(s.Vigor*HPPerVigor + c.HP)
		out.Damage = floorStat(s.Lethality*DamagePerLethality + c.Damage)
		interval = c.AttackInterval()
		if s.MoveSpeed == 0 {
			s.MoveSpeed = c.MoveSpeed
		}
	case src.Enemy != nil:
		e := src.Enemy
		out.Name = e.Name
		out.Emoji = e.Emoji
		out.Boss = e.Boss
		out.Range = e.Range
		out.Size = e.BodySize()
		out.MaxHP = floorStat(s.Vigor * HPPerVigor)
		out.Damage = floorStat(s.Lethality * DamagePerLethality)
		interval = data.Or(e.AttackIntervalMs, defaultAttackIntervalMs)
		if s.CritDamage == 0 {
			s.CritDamage = DefaultCritDamage
		}
	default:
		out.MaxHP = floorStat(s.Vigor * HPPerVigor)
		out.Damage = floorStat(s.Lethality * DamagePerLethality)
	}

	if s.AttackSpeed != 0 {
		interval = Round(interval / max(minAttackSpeedDivisor, 1+s.AttackSpeed/100))
	}
	out.AttackIntervalMs = interval

	if rangePct != 0 {
		out.Range *= 1 + rangePct/100
	}

	out.BaseStats = s
	return out
}

// seedEnemy converts an enemy template into level-scaled base stats.
// Missing vigor and lethality are back-derived from base hp and damage.
func seedEnemy(s data.BaseStats, e *data.EnemyTemplate, scale float64) data.BaseStats {
	if scale <= 0 {
		scale = 1
	}
	s = s.Merge(e.BaseStats)

	vigor := e.BaseStats.Vigor
	if vigor == 0 {
		vigor = e.BaseHP / HPPerVigor
	}
	lethality := e.BaseStats.Lethality
	if lethality == 0 {
		lethality = e.BaseDamage / DamagePerLethality
	}

	s.Vigor = vigor * scale
	s.Lethality = lethality * scale
	s.Resistance *= scale
	if s.MoveSpeed == 0 {
		s.MoveSpeed = e.MoveSpeed
	}
	return s
}

func floorStat(x float64) float64 {
	return math.Floor(x + floorEpsilon)
}
