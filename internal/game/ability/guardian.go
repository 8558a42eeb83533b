package ability

import (
	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/skill"
	"github.com/udisondev/herobattle/internal/model"
)

const (
	defaultBashStunMs       = 2000
	defaultTauntRadius      = 150
	defaultTauntResistance  = 50
	defaultBlockCharges     = 2
	defaultVigorThreshold   = 70
	defaultConditionalVigor = 50
	defaultVigorBuffMs      = 6000
)

func init() {
	register("guardian_shield_bash", shieldBash)
	register("guardian_taunt", taunt)
	register("guardian_block_force", blockForce)
	register("guardian_shared_protection", sharedProtection)
}

// shieldBash hits the target for damage scaled on the guardian's max hp
// and stuns it.
func shieldBash(c *Cast) error {
	t, err := c.currentTarget()
	if err != nil {
		return err
	}
	props := c.Ability.Props
	dmg := c.Hero.Damage() + c.Hero.MaxHP()*props.BonusPercentCasterMaxHP/100
	crit := c.rollCrit()
	c.hit(t, c.finalDamage(dmg, crit), crit)

	if t.Alive {
		t.ApplyDebuff(skill.NewStun(c.Ability.ID, data.Or(props.StunDurationMs, defaultBashStunMs), c.Hero.ID, t.ID, c.Frame.Now))
	}
	return nil
}

// taunt forces nearby enemies to attack the guardian and hardens it.
func taunt(c *Cast) error {
	props := c.Ability.Props
	radius := data.Or(props.Radius, defaultTauntRadius)
	duration := c.Ability.Duration(4000)

	tmpl := &data.DebuffTemplate{
		ID:         c.Ability.ID,
		Name:       "Taunted",
		DurationMs: duration,
		Effects:    data.Effects{Taunted: true},
	}
	for _, en := range c.Frame.Living(model.SideEnemy) {
		if c.Hero.DistanceTo(en) <= radius {
			en.ApplyDebuff(skill.NewDebuff(tmpl, c.Hero.ID, en.ID, c.Frame.Now))
			c.Frame.Provoke(en)
		}
	}

	fx := c.buffEffects()
	fx.ResistanceFlat = data.Or(props.ResistanceBonusFlat, defaultTauntResistance)
	c.selfBuff(fx, 4000)
	return nil
}

// blockForce grants charges that each negate one incoming hit.
func blockForce(c *Cast) error {
	fx := c.buffEffects()
	if fx.BlockCharges <= 0 {
		fx.BlockCharges = defaultBlockCharges
	}
	c.selfBuff(fx, 15000)
	return nil
}

// sharedProtection shields every living ally for a share of the guardian's
// max hp. A healthy guardian also gains a vigor buff.
func sharedProtection(c *Cast) error {
	props := c.Ability.Props
	h := c.Hero
	amount := h.MaxHP() * props.ShieldPercentCasterMaxHP / 100

	allies := c.Frame.Living(model.SideHero)
	for _, ally := range allies {
		ally.ApplyShield(amount)
		c.Frame.Emit(model.Event{Kind: model.EventShield, SourceID: h.ID, TargetID: ally.ID, Ability: c.Ability.ID, Amount: amount})
	}
	h.ShieldingGranted += amount * float64(len(allies))

	threshold := data.Or(props.HealthThresholdPercent, defaultVigorThreshold) / 100
	if h.HPRatio() > threshold {
		m := skill.NewBuff(c.Ability.ID+"_vigor", "Extra Vigor", data.Or(props.BuffDurationMs, defaultVigorBuffMs),
			data.Effects{VigorPercent: data.Or(props.ConditionalVigorPercent, defaultConditionalVigor)},
			h.ID, h.ID, c.Frame.Now)
		h.ApplyBuff(m)
	}
	return nil
}
