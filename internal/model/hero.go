package model

import (
	"slices"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/combat"
	"github.com/udisondev/herobattle/internal/game/skill"
)

// AbilityPicker decides which ability an AI-controlled hero fires this tick.
type AbilityPicker interface {
	// Pick returns an ability id, or "" to fall through to the basic
	// attack loop.
	Pick(f *Frame, h *Hero, target *Entity) string
}

// Hero is a player-side combatant.
type Hero struct {
	*Entity

	// Player marks the hero controlled from outside; its abilities are only
	// fired through explicit activation.
	Player bool
	Picker AbilityPicker

	abilities []*data.Ability
}

// NewHero creates a hero from a class and its resolved ability templates.
func NewHero(id uint32, x, y float64, src combat.Source, abilities []*data.Ability, player bool) *Hero {
	return &Hero{
		Entity:    NewEntity(id, SideHero, x, y, src),
		Player:    player,
		abilities: abilities,
	}
}

// Abilities returns the hero's ability templates in class order.
func (h *Hero) Abilities() []*data.Ability { return h.abilities }

// Ability returns the hero's ability with the given id, or nil.
func (h *Hero) Ability(id string) *data.Ability {
	i := slices.IndexFunc(h.abilities, func(a *data.Ability) bool { return a.ID == id })
	if i < 0 {
		return nil
	}
	return h.abilities[i]
}

// Ready returns the abilities that are off cooldown.
func (h *Hero) Ready() []*data.Ability {
	out := make([]*data.Ability, 0, len(h.abilities))
	for _, a := range h.abilities {
		if h.Cooldown(a.ID) <= 0 {
			out = append(out, a)
		}
	}
	return out
}

// ClassDamage returns the class template damage, the base the dash payload
// scales from.
func (h *Hero) ClassDamage() float64 {
	if h.source.Class == nil {
		return 0
	}
	return h.source.Class.Damage
}

// Update advances the hero by one tick.
func (h *Hero) Update(f *Frame) string {
	h.tick(f)
	if !h.Alive {
		return ""
	}

	if h.dash(f) {
		return ""
	}

	target := h.FindTarget(f, f.Side(SideEnemy), false)
	if target == nil {
		return ""
	}

	if !h.Player && h.Picker != nil {
		if id := h.Picker.Pick(f, h, target); id != "" {
			return id
		}
	}

	h.engage(f, target, func(t *Entity) { h.strike(f, t) })
	return ""
}

func (h *Hero) strike(f *Frame, target *Entity) {
	res, ok := h.Attack(f, target, true)
	if !ok {
		return
	}

	if res.Projectile == nil {
		f.Hit(h.Entity, target, res.Damage, res.Crit, "")
		return
	}

	f.Spawn(res.Projectile)
	if ms := h.mods.FindBuff(func(m *skill.Modifier) bool { return m.Effects.MultiShot != nil }); ms != nil {
		for _, extra := range f.MultiShotTargets(h.Entity, target, ms.Effects.MultiShot.Count) {
			f.Spawn(res.Projectile.Retarget(extra))
		}
	}
}

// dash resolves an active dash buff. Returns true when the dash consumed
// the tick.
func (h *Hero) dash(f *Frame) bool {
	m := h.mods.FindBuff(func(m *skill.Modifier) bool { return m.Effects.Dash != nil })
	if m == nil {
		return false
	}
	d := m.Effects.Dash

	target := f.Entity(m.DashTargetID)
	if target == nil || !target.Alive {
		h.RemoveBuff(m)
		return true
	}
	h.TargetID = target.ID

	if h.DistanceTo(target) >= h.Size()/2+target.Size()/2 {
		h.dashStep(f, target, d.SpeedMultiplier)
		return true
	}

	hit := d.OnHit
	dmg := h.ClassDamage() + h.stats.Lethality*hit.LethalityMultiplier + h.stats.Vigor*hit.VigorMultiplier
	if hit.AlwaysCrit {
		dmg = combat.ApplyCrit(dmg, h.stats.CritDamage)
	}
	f.Hit(h.Entity, target, combat.Floor(dmg), hit.AlwaysCrit, m.AbilityID)

	if target.Alive && hit.StunDurationMs > 0 {
		target.ApplyDebuff(skill.NewStun(m.AbilityID+"_stun", hit.StunDurationMs, h.ID, target.ID, f.Now))
	}
	h.RemoveBuff(m)
	return true
}

// dashStep moves toward target ignoring the immobile flag, at the movement
// speed scaled by mult.
func (h *Hero) dashStep(f *Frame, target *Entity, mult float64) {
	dx, dy := target.X-h.X, target.Y-h.Y
	dist := combat.Distance(h.X, h.Y, target.X, target.Y)
	step := h.MoveSpeedPx() * mult * f.Steps()
	if dist <= step {
		h.X, h.Y = target.X, target.Y
		return
	}
	half := h.Size() / 2
	h.X = clamp(h.X+dx/dist*step, half, f.Width-half)
	h.Y = clamp(h.Y+dy/dist*step, half, f.Height-half)
}

func sortByDistance(from *Entity, list []*Entity) {
	slices.SortStableFunc(list, func(a, b *Entity) int {
		da, db := from.DistanceTo(a), from.DistanceTo(b)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
}
