package ability

import (
	"math"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/combat"
	"github.com/udisondev/herobattle/internal/model"
)

const (
	defaultCrescentRange    = 60
	defaultCrescentAngleDeg = 90
	lowHealthRatio          = 0.5
)

func init() {
	register("warrior_precise_strike", preciseStrike)
	register("warrior_crescent_cut", crescentCut)
	register("warrior_extreme_strength", extremeStrength)
	register("warrior_whirlwind", whirlwind)
	register("warrior_intercept", intercept)
}

// preciseStrike primes the next basic attack: guaranteed crit plus a share
// of the victim's max hp.
func preciseStrike(c *Cast) error {
	c.selfBuff(c.buffEffects(), 5000)
	return nil
}

// crescentCut slashes every enemy inside a cone facing the target and
// leaves a resistance-shredding debuff.
func crescentCut(c *Cast) error {
	aim, err := c.targetOrNearest()
	if err != nil {
		return err
	}
	p := c.Ability.Props
	reach := data.Or(p.Range, defaultCrescentRange)
	angle := combat.Radians(data.Or(p.ConeAngle, defaultCrescentAngleDeg))
	dir := math.Atan2(aim.Y-c.Hero.Y, aim.X-c.Hero.X)

	dmg := c.Hero.Damage()*data.Or(p.DamageBaseMultiplier, 1) + c.Hero.Stats().Lethality*data.Or(p.LethalityMultiplier, 2)
	crit := c.rollCrit()
	final := c.finalDamage(dmg, crit)

	for _, en := range c.Frame.Living(model.SideEnemy) {
		if !combat.InCone(c.Hero.X, c.Hero.Y, en.X, en.Y, reach, angle, dir) {
			continue
		}
		c.hit(en, final, crit)
		c.applyDebuff(en)
	}
	return nil
}

// extremeStrength boosts lethality and vigor and heals when the warrior is
// below half health.
func extremeStrength(c *Cast) error {
	wounded := c.Hero.HPRatio() < lowHealthRatio
	c.selfBuff(c.buffEffects(), 10000)

	if pct := c.Ability.Props.HealPercentMaxHPBelowHalf; wounded && pct > 0 {
		amount := combat.Round(c.Hero.MaxHP() * pct / 100)
		c.Hero.Heal(amount)
		c.Frame.Emit(model.Event{Kind: model.EventHeal, SourceID: c.Hero.ID, TargetID: c.Hero.ID, Ability: c.Ability.ID, Amount: amount})
	}
	return nil
}

// whirlwind roots the warrior and channels a damage aura for the duration.
func whirlwind(c *Cast) error {
	fx := c.buffEffects()
	fx.Immobile = true
	if fx.Aura == nil {
		fx.Aura = &data.Aura{TickIntervalMs: 500, DamageMultiplier: 0.5, Radius: 80, Crit: true}
	}
	c.selfBuff(fx, 5000)
	return nil
}

// intercept dashes to the nearest enemy; contact deals a crit and stuns.
func intercept(c *Cast) error {
	t := c.Hero.Nearest(c.Frame.Living(model.SideEnemy))
	if t == nil {
		return ErrNoTarget
	}
	fx := c.buffEffects()
	if fx.Dash == nil {
		fx.Dash = &data.Dash{SpeedMultiplier: 3}
	}
	if fx.Dash.OnHit.StunDurationMs == 0 {
		fx.Dash.OnHit.StunDurationMs = c.Ability.Props.StunDurationMs
	}
	m := c.selfBuff(fx, 2000)
	m.DashTargetID = t.ID
	c.Hero.TargetID = t.ID
	return nil
}
