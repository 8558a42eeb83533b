package model

import (
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/herobattle/internal/world"
)

// Frame is the battlefield as seen by one tick: the roster, the clock and
// the per-tick outputs (events, newly spawned projectiles).
//
// A Frame is owned by a single battle and is not safe for concurrent use.
type Frame struct {
	Now   float64
	Delta float64

	Width, Height float64
	Rand          *rand.Rand

	roster  *world.Registry[Combatant]
	heroes  []*Hero
	enemies []*Enemy

	heroEnts  []*Entity
	enemyEnts []*Entity

	events  []Event
	spawned []*Projectile
}

// NewFrame creates an empty battlefield with a fresh id space.
func NewFrame(width, height float64, rng *rand.Rand) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Rand:   rng,
		roster: world.NewRegistry[Combatant](),
	}
}

// AddHero registers a hero built with a freshly allocated id.
func (f *Frame) AddHero(build func(id uint32) *Hero) *Hero {
	id := f.roster.NextID(world.RangeHero)
	h := build(id)
	f.roster.Put(id, h)
	f.heroes = append(f.heroes, h)
	f.heroEnts = append(f.heroEnts, h.Entity)
	return h
}

// AddEnemy registers an enemy built with a freshly allocated id.
func (f *Frame) AddEnemy(build func(id uint32) *Enemy) *Enemy {
	id := f.roster.NextID(world.RangeEnemy)
	e := build(id)
	f.roster.Put(id, e)
	f.enemies = append(f.enemies, e)
	f.enemyEnts = append(f.enemyEnts, e.Entity)
	return e
}

// Begin starts a new tick at now, delta ms after the previous one.
// Events and spawns of the previous tick are dropped.
func (f *Frame) Begin(now, delta float64) {
	f.Now = now
	f.Delta = delta
	f.events = nil
	f.spawned = nil
}

// Steps returns the elapsed time in reference frames; per-frame speeds are
// multiplied by it.
func (f *Frame) Steps() float64 { return f.Delta / FrameMs }

func (f *Frame) Heroes() []*Hero   { return f.heroes }
func (f *Frame) Enemies() []*Enemy { return f.enemies }

// Side returns every entity of a side, dead or alive, in insertion order.
func (f *Frame) Side(s Side) []*Entity {
	if s == SideHero {
		return f.heroEnts
	}
	return f.enemyEnts
}

// Living returns the living entities of a side.
func (f *Frame) Living(s Side) []*Entity {
	all := f.Side(s)
	out := make([]*Entity, 0, len(all))
	for _, e := range all {
		if e.Alive {
			out = append(out, e)
		}
	}
	return out
}

// Entity resolves an id against the roster. Returns nil for unknown ids.
func (f *Frame) Entity(id uint32) *Entity {
	if c, ok := f.roster.Lookup(id); ok {
		return c.Base()
	}
	return nil
}

// Hero resolves a hero id. Returns nil for unknown or non-hero ids.
func (f *Frame) Hero(id uint32) *Hero {
	c, _ := f.roster.Lookup(id)
	h, _ := c.(*Hero)
	return h
}

// Enemy resolves an enemy id. Returns nil for unknown or non-enemy ids.
func (f *Frame) Enemy(id uint32) *Enemy {
	c, _ := f.roster.Lookup(id)
	e, _ := c.(*Enemy)
	return e
}

// Emit records a presentation event stamped with the current time.
func (f *Frame) Emit(ev Event) {
	ev.At = f.Now
	f.events = append(f.events, ev)
}

// Events returns the events emitted during the current tick.
func (f *Frame) Events() []Event { return f.events }

// Spawn assigns an id to a projectile and queues it for the next tick.
func (f *Frame) Spawn(p *Projectile) {
	p.ID = f.roster.NextID(world.RangeProjectile)
	f.spawned = append(f.spawned, p)
	f.Emit(Event{Kind: EventProjectile, SourceID: p.AttackerID, TargetID: p.TargetID, Ability: p.Source})
}

// Spawned returns the projectiles spawned during the current tick.
func (f *Frame) Spawned() []*Projectile { return f.spawned }

// Hit delivers damage from attacker to target, emits the hit and death
// events, and provokes the target when a hero hits an enemy.
// attacker may be nil for sourceless damage.
func (f *Frame) Hit(attacker, target *Entity, amount float64, crit bool, source string) HitResult {
	if target == nil || !target.Alive {
		return HitResult{Outcome: HitDamage}
	}

	res := target.TakeDamage(f.Rand, amount, attacker)

	ev := Event{Kind: EventHit, TargetID: target.ID, Ability: source, Outcome: res.Outcome, Amount: res.Damage, Crit: crit}
	if attacker != nil {
		ev.SourceID = attacker.ID
	}
	f.Emit(ev)

	if !target.Alive {
		slog.Debug("entity died", "entity", target.ID, "name", target.Name())
		f.Emit(Event{Kind: EventDeath, SourceID: ev.SourceID, TargetID: target.ID})
	}

	if attacker != nil && attacker.Side == SideHero && target.Side == SideEnemy {
		f.Provoke(target)
	}
	return res
}

// Provoke aggroes the enemy behind target and propagates to its allies.
func (f *Frame) Provoke(target *Entity) {
	if en := f.Enemy(target.ID); en != nil && !en.Aggroed {
		en.aggro(f)
	}
}

// MultiShotTargets returns up to count-1 living enemies other than primary,
// nearest to attacker first.
func (f *Frame) MultiShotTargets(attacker, primary *Entity, count int) []*Entity {
	if count <= 1 {
		return nil
	}
	others := make([]*Entity, 0, len(f.enemyEnts))
	for _, e := range f.Side(attacker.Side.Opposite()) {
		if e.Alive && e.ID != primary.ID {
			others = append(others, e)
		}
	}
	sortByDistance(attacker, others)
	return others[:min(len(others), count-1)]
}
