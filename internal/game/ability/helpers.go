package ability

import (
	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/combat"
	"github.com/udisondev/herobattle/internal/game/skill"
	"github.com/udisondev/herobattle/internal/model"
)

// castRangeFactor is how far beyond attack range a targeted ability reaches.
const castRangeFactor = 1.2

// currentTarget returns the hero's living target if it is within cast range.
func (c *Cast) currentTarget() (*model.Entity, error) {
	t := c.Frame.Entity(c.Hero.TargetID)
	if t == nil || !t.Alive {
		return nil, ErrNoTarget
	}
	if c.Hero.DistanceTo(t) > c.Hero.Range()*castRangeFactor {
		return nil, ErrOutOfRange
	}
	return t, nil
}

// targetOrNearest returns the current living target regardless of range,
// falling back to the nearest living enemy.
func (c *Cast) targetOrNearest() (*model.Entity, error) {
	if t := c.Frame.Entity(c.Hero.TargetID); t != nil && t.Alive && t.Side == model.SideEnemy {
		return t, nil
	}
	if t := c.Hero.Nearest(c.Frame.Living(model.SideEnemy)); t != nil {
		return t, nil
	}
	return nil, ErrNoTarget
}

// rollCrit rolls the hero's crit chance.
func (c *Cast) rollCrit() bool {
	return combat.Roll(c.Frame.Rand, c.Hero.Stats().CritChance)
}

// finalDamage applies crit and the damage floor.
func (c *Cast) finalDamage(dmg float64, crit bool) float64 {
	if crit {
		return combat.Floor(combat.ApplyCrit(dmg, c.Hero.Stats().CritDamage))
	}
	return combat.Floor(dmg)
}

// scaled returns base damage plus a multiple of lethality.
func (c *Cast) scaled(lethalityMult float64) float64 {
	return c.Hero.Damage() + c.Hero.Stats().Lethality*lethalityMult
}

func (c *Cast) hit(target *model.Entity, dmg float64, crit bool) model.HitResult {
	return c.Frame.Hit(c.Hero.Entity, target, dmg, crit, c.Ability.ID)
}

// stealthed reports whether the hero is invisible.
func (c *Cast) stealthed() bool { return c.Hero.Invisible() }

// selfBuff applies fx to the hero for the ability duration.
func (c *Cast) selfBuff(fx data.Effects, defDuration float64) *skill.Modifier {
	m := skill.NewBuff(c.Ability.ID, c.Ability.Name, c.Ability.Duration(defDuration), fx, c.Hero.ID, c.Hero.ID, c.Frame.Now)
	c.Hero.ApplyBuff(m)
	return m
}

// applyDebuff lands the ability's debuff template on target.
func (c *Cast) applyDebuff(target *model.Entity) {
	if c.Ability.Props.Debuff == nil || !target.Alive {
		return
	}
	target.ApplyDebuff(skill.NewDebuff(c.Ability.Props.Debuff, c.Hero.ID, target.ID, c.Frame.Now))
}

// buffEffects returns a copy of the template buff bundle, or an empty one.
func (c *Cast) buffEffects() data.Effects {
	if c.Ability.Props.Buff == nil {
		return data.Effects{}
	}
	return c.Ability.Props.Buff.Clone()
}

// spawnVolley spawns a projectile at target plus one copy per extra
// multi-shot target when the hero carries a multi-shot buff.
func (c *Cast) spawnVolley(p *model.Projectile, target *model.Entity) {
	c.Frame.Spawn(p)
	ms := c.Hero.Modifiers().FindBuff(func(m *skill.Modifier) bool { return m.Effects.MultiShot != nil })
	if ms == nil {
		return
	}
	for _, extra := range c.Frame.MultiShotTargets(c.Hero.Entity, target, ms.Effects.MultiShot.Count) {
		c.Frame.Spawn(p.Retarget(extra))
	}
}
