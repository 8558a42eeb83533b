package ability

import (
	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/skill"
	"github.com/udisondev/herobattle/internal/model"
)

const (
	fireballSize        = 10
	defaultFrostRadius  = 120
	defaultFrostLethMul = 2
)

func init() {
	register("mage_fireball", fireball)
	register("mage_magic_explosion", magicExplosion)
	register("mage_surreal_intellect", surrealIntellect)
	register("mage_frost_explosion", frostExplosion)
}

// fireball launches a projectile that sets its victim on fire.
func fireball(c *Cast) error {
	t, err := c.currentTarget()
	if err != nil {
		return err
	}
	p := model.NewProjectile(c.Hero.Entity, t, c.Hero.Damage(), false, model.ProjectileOptions{
		Size:                    fireballSize,
		BonusPercentTargetMaxHP: c.Ability.Props.BonusPercentTargetMaxHP,
		Debuff:                  c.Ability.Props.Debuff,
		Source:                  c.Ability.ID,
	})
	c.Frame.Spawn(p)
	return nil
}

// magicExplosion primes the next basic attack to crit and splash, spreading
// burns from the primary victim.
func magicExplosion(c *Cast) error {
	fx := c.buffEffects()
	fx.NextAttackCrit = true
	c.selfBuff(fx, 5000)
	return nil
}

// surrealIntellect buffs every living hero.
func surrealIntellect(c *Cast) error {
	fx := c.buffEffects()
	duration := c.Ability.Duration(15000)
	for _, ally := range c.Frame.Living(model.SideHero) {
		ally.ApplyBuff(skill.NewBuff(c.Ability.ID, c.Ability.Name, duration, fx, c.Hero.ID, ally.ID, c.Frame.Now))
	}
	return nil
}

// frostExplosion blasts everything around the target and slows it.
func frostExplosion(c *Cast) error {
	center, err := c.targetOrNearest()
	if err != nil {
		return err
	}
	props := c.Ability.Props
	radius := data.Or(props.Radius, defaultFrostRadius)
	dmg := c.finalDamage(c.scaled(data.Or(props.LethalityMultiplier, defaultFrostLethMul)), false)

	for _, en := range c.Frame.Living(model.SideEnemy) {
		if center.DistanceTo(en) > radius {
			continue
		}
		c.hit(en, dmg, false)
		c.applyDebuff(en)
	}
	return nil
}
