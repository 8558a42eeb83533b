package ability

import (
	"math"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/model"
)

const (
	defaultHitIntervalMs = 200
	// backstabOffset places the assassin behind the victim, as a share of
	// the victim's size.
	backstabOffset = 0.8
)

func init() {
	register("assassin_stealth", stealth)
	register("assassin_double_strike", doubleStrike)
	register("assassin_backstab", backstab)
	register("assassin_extreme_agility", extremeAgility)
}

func stealth(c *Cast) error {
	fx := c.buffEffects()
	fx.Invisible = true
	c.selfBuff(fx, 4000)
	return nil
}

// doubleStrike hits now and schedules the remaining hits on the battle
// clock. A scheduled hit is dropped when the assassin or the victim is dead.
func doubleStrike(c *Cast) error {
	t, err := c.currentTarget()
	if err != nil {
		return err
	}
	props := c.Ability.Props
	crit := props.CritFromStealth && c.stealthed()
	dmg := c.finalDamage(c.scaled(data.Or(props.LethalityMultiplier, 1.5)), crit)

	c.hit(t, dmg, crit)

	heroID, targetID, abilityID := c.Hero.ID, t.ID, c.Ability.ID
	hits := max(props.NumberOfHits, 2)
	interval := data.Or(props.HitIntervalMs, defaultHitIntervalMs)
	for i := 1; i < hits; i++ {
		c.Battle.Schedule(c.Frame.Now+float64(i)*interval, func(f *model.Frame) {
			hero, target := f.Entity(heroID), f.Entity(targetID)
			if hero == nil || target == nil || !hero.Alive || !target.Alive {
				return
			}
			f.Hit(hero, target, dmg, crit, abilityID)
		})
	}
	return nil
}

// backstab teleports behind an enemy other than the current target when
// one exists, strikes and exposes its vital points.
func backstab(c *Cast) error {
	h := c.Hero
	living := c.Frame.Living(model.SideEnemy)
	if len(living) == 0 {
		return ErrNoTarget
	}

	var victim *model.Entity
	if cur := c.Frame.Entity(h.TargetID); cur != nil && cur.Alive && cur.Side == model.SideEnemy {
		others := make([]*model.Entity, 0, len(living))
		for _, en := range living {
			if en.ID != cur.ID {
				others = append(others, en)
			}
		}
		victim = h.Nearest(others)
		if victim == nil {
			victim = cur
		}
	} else {
		victim = h.Nearest(living)
	}

	dx, dy := h.X-victim.X, h.Y-victim.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		dist = 1
	}
	h.X = victim.X + dx/dist*victim.Size()*backstabOffset
	h.Y = victim.Y + dy/dist*victim.Size()*backstabOffset
	h.TargetID = victim.ID

	props := c.Ability.Props
	crit := props.CritFromStealth && c.stealthed()
	c.hit(victim, c.finalDamage(c.scaled(data.Or(props.LethalityMultiplier, 2)), crit), crit)
	c.applyDebuff(victim)
	return nil
}

// extremeAgility boosts dodge, attack and move speed; the bonus is
// multiplied while stealthed.
func extremeAgility(c *Cast) error {
	mult := 1.0
	if c.stealthed() {
		mult = data.Or(c.Ability.Props.StealthBonusMultiplier, 2)
	}
	fx := c.buffEffects()
	fx.DodgePercent *= mult
	fx.AttackSpeedPercent *= mult
	fx.MoveSpeedPercent *= mult
	c.selfBuff(fx, 5000)
	return nil
}
