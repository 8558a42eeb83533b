package ability

import (
	"math"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/combat"
	"github.com/udisondev/herobattle/internal/model"
)

const (
	arrowSize = 8

	defaultVolleyCount    = 5
	defaultVolleyAngleDeg = 60
	defaultVolleyLifetime = 1500
	// volleyReach is how far past the caster volley arrows are aimed.
	volleyReach = 5000
)

func init() {
	register("archer_precise_shot", preciseShot)
	register("archer_deadly_shot", deadlyShot)
	register("archer_multi_shot", multiShot)
	register("archer_skill_and_precision", skillAndPrecision)
}

// preciseShot fires an arrow that marks its victim. Marks stack.
func preciseShot(c *Cast) error {
	t, err := c.currentTarget()
	if err != nil {
		return err
	}
	p := model.NewProjectile(c.Hero.Entity, t, c.scaled(data.Or(c.Ability.Props.LethalityMultiplier, 1)), false, model.ProjectileOptions{
		Size:   arrowSize,
		Debuff: c.Ability.Props.Debuff,
		Source: c.Ability.ID,
	})
	c.spawnVolley(p, t)
	return nil
}

// deadlyShot detonates the marks on every enemy, dealing damage per stack
// plus a share of missing hp, and consumes them.
func deadlyShot(c *Cast) error {
	props := c.Ability.Props
	type mark struct {
		target *model.Entity
		stacks int
	}
	var marks []mark
	for _, en := range c.Frame.Living(model.SideEnemy) {
		if d := en.Modifiers().Debuff(props.ConsumesDebuffID); d != nil {
			marks = append(marks, mark{en, d.StackCount()})
		}
	}
	if len(marks) == 0 {
		return ErrNoTarget
	}

	perStack := data.Or(props.DamagePerStackMultiplier, 0.5)
	for _, m := range marks {
		missing := m.target.MaxHP() - m.target.HP
		dmg := c.Hero.Damage()*perStack*float64(m.stacks) + missing*props.DamagePercentMissingHP/100
		c.hit(m.target, combat.Floor(dmg), true)
		m.target.RemoveDebuff(props.ConsumesDebuffID)
	}
	return nil
}

// multiShot fans piercing arrows across a cone toward the target, or
// toward the far side of the field when the archer has none.
func multiShot(c *Cast) error {
	props := c.Ability.Props
	h := c.Hero

	var dir float64
	if t := c.Frame.Entity(h.TargetID); t != nil && t.Alive {
		dir = math.Atan2(t.Y-h.Y, t.X-h.X)
	} else if h.X > c.Frame.Width/2 {
		dir = math.Pi
	}

	n := props.NumProjectiles
	if n <= 0 {
		n = defaultVolleyCount
	}
	cone := combat.Radians(data.Or(props.ConeAngle, defaultVolleyAngleDeg))
	step := cone / float64(max(n-1, 1))
	start := dir - cone/2

	opts := model.ProjectileOptions{
		Size:       arrowSize,
		Piercing:   props.Piercing,
		LifetimeMs: data.Or(props.LifetimeMs, defaultVolleyLifetime),
		Source:     c.Ability.ID,
	}
	dmg := c.scaled(data.Or(props.LethalityMultiplier, 1))
	for i := range n {
		angle := dir
		if n > 1 {
			angle = start + float64(i)*step
		}
		x := h.X + math.Cos(angle)*volleyReach
		y := h.Y + math.Sin(angle)*volleyReach
		c.Frame.Spawn(model.NewProjectileAt(h.Entity, x, y, dmg, false, opts))
	}
	return nil
}

// skillAndPrecision extends range, speeds up attacks and grants multi-shot.
func skillAndPrecision(c *Cast) error {
	c.selfBuff(c.buffEffects(), 5000)
	return nil
}
