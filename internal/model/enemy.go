package model

import (
	"log/slog"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/combat"
)

const (
	AggroRadius     = 150
	BossAggroRadius = 300
	// AggroSpreadFactor scales the aggro radius when an enemy alerts its allies.
	AggroSpreadFactor = 1.5
)

// Enemy is a hostile combatant. It stays passive until aggroed.
type Enemy struct {
	*Entity

	Template    *data.EnemyTemplate
	AggroRadius float64
	Aggroed     bool

	// Counted marks an enemy already credited in the kill count.
	Counted bool
}

// NewEnemy creates an enemy from a template at a level scale.
func NewEnemy(id uint32, x, y float64, t *data.EnemyTemplate, levelScale float64) *Enemy {
	src := combat.Source{
		Base:       data.DefaultEnemyStats(),
		Enemy:      t,
		LevelScale: levelScale,
	}
	en := &Enemy{
		Entity:      NewEntity(id, SideEnemy, x, y, src),
		Template:    t,
		AggroRadius: AggroRadius,
	}
	if t.Boss {
		en.AggroRadius = BossAggroRadius
	}
	return en
}

// Emoji returns the template emoji.
func (en *Enemy) Emoji() string { return en.Template.Emoji }

// Update advances the enemy by one tick.
func (en *Enemy) Update(f *Frame) string {
	en.tick(f)
	if !en.Alive {
		return ""
	}

	if !en.Aggroed {
		for _, h := range f.Side(SideHero) {
			if h.Alive && en.DistanceTo(h) < en.AggroRadius {
				en.aggro(f)
				break
			}
		}
	}
	if !en.Aggroed {
		return ""
	}

	target := en.FindTarget(f, f.Side(SideHero), true)
	if target == nil {
		return ""
	}
	en.engage(f, target, func(t *Entity) { en.strike(f, t) })
	return ""
}

func (en *Enemy) strike(f *Frame, target *Entity) {
	res, ok := en.Attack(f, target, false)
	if !ok {
		return
	}
	if res.Projectile != nil {
		f.Spawn(res.Projectile)
		return
	}
	f.Hit(en.Entity, target, res.Damage, res.Crit, "")
}

// aggro activates the enemy and alerts living allies within
// AggroSpreadFactor times its radius. Alerted allies do not propagate further.
func (en *Enemy) aggro(f *Frame) {
	en.Aggroed = true
	slog.Debug("enemy aggroed", "enemy", en.ID, "name", en.Name())

	for _, ally := range f.Enemies() {
		if ally == en || !ally.Alive || ally.Aggroed {
			continue
		}
		if en.DistanceTo(ally.Entity) < en.AggroRadius*AggroSpreadFactor {
			ally.Aggroed = true
		}
	}
}
