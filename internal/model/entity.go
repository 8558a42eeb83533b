package model

import (
	"log/slog"
	"maps"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/combat"
	"github.com/udisondev/herobattle/internal/game/skill"
)

const (
	// GridSize is the battlefield cell size in pixels.
	GridSize = 50
	// FrameMs is the reference frame duration; per-frame speeds scale by Delta/FrameMs.
	FrameMs = 1000.0 / 60
	// RangedThreshold is the attack range above which basic attacks fire projectiles.
	RangedThreshold = GridSize * 1.1

	// KeepTargetRangeFactor bounds how far a current target may drift before retargeting.
	KeepTargetRangeFactor = 1.2

	StuckThresholdTicks = 120
	DetourDurationTicks = 60
	stuckMoveEpsilon    = 0.5
	stuckRangeFactor    = 0.9
)

// Side is the team an entity fights for.
type Side uint8

const (
	SideHero Side = iota
	SideEnemy
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideHero {
		return SideEnemy
	}
	return SideHero
}

// HitOutcome is the resolution of an incoming hit.
type HitOutcome string

const (
	HitDamage  HitOutcome = "damage"
	HitDodged  HitOutcome = "dodged"
	HitBlocked HitOutcome = "blocked"
)

// HitResult is returned by TakeDamage. Damage is zero unless Outcome is HitDamage.
type HitResult struct {
	Outcome HitOutcome
	Damage  float64
}

// Combatant is a hero or an enemy.
type Combatant interface {
	Base() *Entity
	// Update advances the combatant by one tick and returns the id of an
	// ability it wants to fire, or "".
	Update(f *Frame) string
}

// Entity is the state shared by heroes and enemies.
type Entity struct {
	ID       uint32
	Side     Side
	Class    data.ClassID
	X, Y     float64
	HP       float64
	Shield   float64
	Alive    bool
	TargetID uint32

	DamageDealt      float64
	DamageTaken      float64
	HealingDone      float64
	ShieldingGranted float64

	source combat.Source
	stats  combat.Stats
	mods   *skill.ModifierSet

	lastAttackAt float64
	cooldowns    map[string]float64
	immobile     bool

	lastX, lastY float64
	stuckTicks   int
	detouring    bool
	detourTicks  int
	detourOffset float64
}

// NewEntity creates a living entity with full hp.
func NewEntity(id uint32, side Side, x, y float64, src combat.Source) *Entity {
	e := &Entity{
		ID:           id,
		Side:         side,
		X:            x,
		Y:            y,
		Alive:        true,
		source:       src,
		mods:         skill.NewModifierSet(),
		lastAttackAt: math.Inf(-1),
		cooldowns:    make(map[string]float64),
		lastX:        x,
		lastY:        y,
	}
	if src.Class != nil {
		e.Class = src.Class.ID
	}
	e.stats = combat.Resolve(src, nil)
	e.HP = e.stats.MaxHP
	return e
}

// Base returns the entity itself.
func (e *Entity) Base() *Entity { return e }

func (e *Entity) Stats() combat.Stats            { return e.stats }
func (e *Entity) Modifiers() *skill.ModifierSet { return e.mods }
func (e *Entity) Name() string                  { return e.stats.Name }
func (e *Entity) MaxHP() float64                { return e.stats.MaxHP }
func (e *Entity) Damage() float64               { return e.stats.Damage }
func (e *Entity) Range() float64                { return e.stats.Range }
func (e *Entity) Size() float64                 { return e.stats.Size }
func (e *Entity) Boss() bool                    { return e.stats.Boss }

// MoveSpeedPx returns the movement speed in pixels per reference frame.
func (e *Entity) MoveSpeedPx() float64 {
	return e.stats.MoveSpeed * GridSize / 60
}

// HPRatio returns current hp over max hp.
func (e *Entity) HPRatio() float64 {
	if e.stats.MaxHP <= 0 {
		return 0
	}
	return e.HP / e.stats.MaxHP
}

// DistanceTo returns the center distance to another entity.
func (e *Entity) DistanceTo(o *Entity) float64 {
	return combat.Distance(e.X, e.Y, o.X, o.Y)
}

// Immobile reports whether an active modifier roots the entity.
func (e *Entity) Immobile() bool { return e.immobile }

// Invisible reports whether the entity is hidden from targeting.
func (e *Entity) Invisible() bool {
	return e.mods.FindBuff(func(m *skill.Modifier) bool { return m.Effects.Invisible }) != nil
}

// RecalculateStats re-resolves stats after a modifier change. The hp
// percentage is preserved; a living entity keeps at least 1 hp.
func (e *Entity) RecalculateStats() {
	ratio := 1.0
	if e.stats.MaxHP > 0 {
		ratio = e.HP / e.stats.MaxHP
	}

	e.stats = combat.Resolve(e.source, e.mods.All())

	if e.Alive {
		e.HP = min(max(1, combat.Round(e.stats.MaxHP*ratio)), e.stats.MaxHP)
	}

	e.immobile = false
	for _, m := range e.mods.All() {
		if m.Effects.Immobile {
			e.immobile = true
			break
		}
	}
}

// ApplyShield adds to the shield pool. Shields are uncapped.
func (e *Entity) ApplyShield(amount float64) {
	e.Shield += amount
}

// Heal restores hp up to max hp and credits the full amount as healing done.
func (e *Entity) Heal(amount float64) {
	e.HP = min(e.stats.MaxHP, e.HP+amount)
	e.HealingDone += amount
}

// ApplyBuff adds or replaces a buff and recalculates stats.
func (e *Entity) ApplyBuff(m *skill.Modifier) {
	e.mods.ApplyBuff(m)
	e.RecalculateStats()
}

// ApplyDebuff adds, refreshes or stacks a debuff and recalculates stats.
func (e *Entity) ApplyDebuff(m *skill.Modifier) {
	e.mods.ApplyDebuff(m)
	e.RecalculateStats()
}

// RemoveBuff removes a buff instance and recalculates stats.
func (e *Entity) RemoveBuff(m *skill.Modifier) {
	if e.mods.RemoveBuff(m) {
		e.RecalculateStats()
	}
}

// RemoveDebuff removes a debuff by id and recalculates stats.
func (e *Entity) RemoveDebuff(abilityID string) {
	if e.mods.RemoveDebuff(abilityID) {
		e.RecalculateStats()
	}
}

// Cooldown returns the remaining cooldown of an ability in ms.
func (e *Entity) Cooldown(abilityID string) float64 { return e.cooldowns[abilityID] }

// SetCooldown puts an ability on cooldown.
func (e *Entity) SetCooldown(abilityID string, ms float64) { e.cooldowns[abilityID] = ms }

// Cooldowns returns a snapshot of ability cooldowns.
func (e *Entity) Cooldowns() map[string]float64 { return maps.Clone(e.cooldowns) }

// TakeDamage resolves an incoming hit. Order:
//  1. missing-hp bonus from a debuff applied by the attacker
//  2. block charges (negates the hit)
//  3. invulnerability (negates the hit)
//  4. dodge roll (negates the hit)
//  5. resistance mitigation with the damage floor
//  6. shield absorption, then hp
func (e *Entity) TakeDamage(rng *rand.Rand, amount float64, attacker *Entity) HitResult {
	if !e.Alive {
		return HitResult{Outcome: HitDamage}
	}

	total := amount
	if attacker != nil {
		vital := e.mods.FindDebuff(func(m *skill.Modifier) bool {
			return m.SourceID == attacker.ID && m.Effects.BonusDamageFromMissingHPPercent > 0
		})
		if vital != nil {
			if missing := e.stats.MaxHP - e.HP; missing > 0 {
				total += missing * vital.Effects.BonusDamageFromMissingHPPercent / 100
			}
		}
	}

	if block := e.mods.FindBuff(func(m *skill.Modifier) bool { return m.Effects.BlockCharges > 0 }); block != nil {
		block.Effects.BlockCharges--
		if block.Effects.BlockCharges <= 0 {
			e.RemoveBuff(block)
		}
		return HitResult{Outcome: HitBlocked}
	}

	if e.mods.FindBuff(func(m *skill.Modifier) bool { return m.Effects.Invulnerable }) != nil {
		return HitResult{Outcome: HitDodged}
	}

	if combat.Roll(rng, e.stats.Dodge) {
		return HitResult{Outcome: HitDodged}
	}

	final := combat.Mitigate(total, e.stats.Resistance)

	e.DamageTaken += final
	if attacker != nil {
		attacker.DamageDealt += final
	}

	absorbed := min(e.Shield, final)
	e.Shield -= absorbed
	e.HP -= final - absorbed

	if e.HP <= 0 {
		e.HP = 0
		e.Alive = false
	}
	return HitResult{Outcome: HitDamage, Damage: final}
}

// FindTarget selects the entity to pursue among candidates.
//
// A taunt whose source is alive forces the target. Otherwise the current
// target is kept while alive, visible and within KeepTargetRangeFactor of
// range. Otherwise the nearest living visible candidate is chosen; with
// guardiansFirst only guardian heroes are considered while any is alive.
func (e *Entity) FindTarget(f *Frame, candidates []*Entity, guardiansFirst bool) *Entity {
	if taunt := e.mods.FindDebuff(func(m *skill.Modifier) bool { return m.Effects.Taunted }); taunt != nil {
		for _, c := range candidates {
			if c.ID == taunt.SourceID && c.Alive {
				e.TargetID = c.ID
				return c
			}
		}
	}

	if cur := f.Entity(e.TargetID); cur != nil && cur.Alive && !cur.Invisible() &&
		e.DistanceTo(cur) <= e.stats.Range*KeepTargetRangeFactor {
		return cur
	}

	living := make([]*Entity, 0, len(candidates))
	for _, c := range candidates {
		if c.Alive && !c.Invisible() {
			living = append(living, c)
		}
	}
	if guardiansFirst {
		guardians := slices.DeleteFunc(slices.Clone(living), func(c *Entity) bool {
			return c.Class != data.ClassGuardian
		})
		if len(guardians) > 0 {
			living = guardians
		}
	}

	target := e.Nearest(living)
	e.TargetID = 0
	if target != nil {
		e.TargetID = target.ID
	}
	return target
}

// Nearest returns the closest entity in list, or nil when empty.
// Ties keep the earlier entity.
func (e *Entity) Nearest(list []*Entity) *Entity {
	var best *Entity
	bestDist := math.Inf(1)
	for _, c := range list {
		if d := e.DistanceTo(c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// AttackResult is the outcome of a basic attack roll.
type AttackResult struct {
	Damage     float64
	Crit       bool
	LifeStolen float64
	// Projectile is set for ranged attackers; melee hits are resolved by the caller.
	Projectile *Projectile
}

// Attack performs a basic attack on target when the attack interval allows it.
// Rooted entities cannot attack unless they channel an aura.
func (e *Entity) Attack(f *Frame, target *Entity, consumeSplash bool) (AttackResult, bool) {
	if e.immobile && e.aura() == nil {
		return AttackResult{}, false
	}
	if target == nil || !target.Alive {
		return AttackResult{}, false
	}
	if f.Now-e.lastAttackAt < e.stats.AttackIntervalMs {
		return AttackResult{}, false
	}
	res := e.performAttack(f, target, consumeSplash)
	e.lastAttackAt = f.Now
	return res, true
}

// performAttack rolls a basic attack. A pending next-attack buff forces a
// crit and adds a share of the target's max hp; it is consumed here unless
// it also carries a splash and the attacker fires splash projectiles, in
// which case the projectile spawn consumes it.
func (e *Entity) performAttack(f *Frame, target *Entity, withSplash bool) AttackResult {
	crit := combat.Roll(f.Rand, e.stats.CritChance)
	var bonus float64

	if mod := e.mods.FindBuff(func(m *skill.Modifier) bool { return m.Effects.IsAttackModifier() }); mod != nil {
		if mod.Effects.NextAttackCrit {
			crit = true
		}
		if pct := mod.Effects.NextAttackBonusPercentTargetMaxHP; pct > 0 {
			bonus = target.MaxHP() * pct / 100
		}
		if !withSplash || mod.Effects.NextAttackSplash == nil {
			e.RemoveBuff(mod)
		}
	}

	dmg := e.stats.Damage
	if crit {
		dmg = combat.ApplyCrit(dmg, e.stats.CritDamage)
	}
	dmg = combat.Floor(dmg + bonus)

	res := AttackResult{Damage: dmg, Crit: crit}
	if stolen := combat.LifeSteal(dmg, e.stats.Vampirism, target.Boss()); stolen > 0 {
		// Hero life steal restores hp without counting as healing done.
		if e.Side == SideHero {
			e.HP = min(e.stats.MaxHP, e.HP+stolen)
		} else {
			e.Heal(stolen)
		}
		res.LifeStolen = stolen
		f.Emit(Event{Kind: EventHeal, SourceID: e.ID, TargetID: e.ID, Amount: stolen})
	}

	if e.stats.Range > RangedThreshold {
		opts := ProjectileOptions{}
		if e.stats.Weapon == "staff" {
			opts.Size = 8
		}
		if withSplash {
			if sp := e.mods.FindBuff(func(m *skill.Modifier) bool { return m.Effects.NextAttackSplash != nil }); sp != nil {
				s := *sp.Effects.NextAttackSplash
				opts.Splash = &s
				e.RemoveBuff(sp)
			}
		}
		res.Projectile = NewProjectile(e, target, dmg, crit, opts)
	}
	return res
}

// MoveToward steps toward a point at movement speed, clamped to the field.
func (e *Entity) MoveToward(f *Frame, tx, ty float64) {
	if e.immobile {
		return
	}
	angle := math.Atan2(ty-e.Y, tx-e.X)
	step := e.MoveSpeedPx() * f.Steps()
	half := e.stats.Size / 2
	e.X = clamp(e.X+math.Cos(angle)*step, half, f.Width-half)
	e.Y = clamp(e.Y+math.Sin(angle)*step, half, f.Height-half)
}

// engage moves toward target, or attacks via strike once in range.
// While detouring to escape a deadlock the heading is offset instead.
func (e *Entity) engage(f *Frame, target *Entity, strike func(*Entity)) {
	tx, ty := target.X, target.Y
	detouring := e.detouring && e.detourTicks > 0
	if detouring {
		angle := math.Atan2(target.Y-e.Y, target.X-e.X) + e.detourOffset
		tx = e.X + math.Cos(angle)*e.stats.Range*2
		ty = e.Y + math.Sin(angle)*e.stats.Range*2
	}

	if e.DistanceTo(target) > e.stats.Range || detouring {
		e.MoveToward(f, tx, ty)
		return
	}

	e.detouring = false
	e.detourTicks = 0
	e.stuckTicks = 0
	strike(target)
}

// tick runs the per-tick upkeep shared by every entity:
// cooldowns, modifier expiry, damage over time, stuck detection, auras.
func (e *Entity) tick(f *Frame) {
	for id, cd := range e.cooldowns {
		if cd > 0 {
			e.cooldowns[id] = max(0, cd-f.Delta)
		}
	}

	if expired := e.mods.Tick(f.Delta); len(expired) > 0 {
		for _, m := range expired {
			slog.Debug("modifier expired", "entity", e.ID, "modifier", m.AbilityID)
			f.Emit(Event{Kind: EventExpired, SourceID: m.SourceID, TargetID: e.ID, Ability: m.AbilityID})
		}
		e.RecalculateStats()
	}

	e.tickDots(f)
	if !e.Alive {
		return
	}
	e.updateStuck(f)
	e.tickAura(f)
}

func (e *Entity) tickDots(f *Frame) {
	for _, m := range slices.Clone(e.mods.Debuffs()) {
		if m.Dot == nil || f.Now-m.LastTickAt < m.Dot.TickIntervalMs {
			continue
		}
		m.LastTickAt = f.Now
		f.Hit(f.Entity(m.Dot.CasterID), e, m.Dot.DamagePerTick, false, m.AbilityID)
	}
}

func (e *Entity) aura() *skill.Modifier {
	return e.mods.FindBuff(func(m *skill.Modifier) bool { return m.Effects.Aura != nil })
}

func (e *Entity) tickAura(f *Frame) {
	m := e.aura()
	if m == nil {
		return
	}
	aura := m.Effects.Aura
	if f.Now-m.LastTickAt < aura.TickIntervalMs {
		return
	}
	m.LastTickAt = f.Now

	for _, t := range f.Side(e.Side.Opposite()) {
		if !t.Alive || e.DistanceTo(t) > aura.Radius {
			continue
		}
		dmg := e.stats.Damage * aura.DamageMultiplier
		if aura.Crit {
			dmg = combat.ApplyCrit(dmg, e.stats.CritDamage)
		}
		f.Hit(e, t, combat.Floor(dmg), aura.Crit, m.AbilityID)
	}
}

// updateStuck detects an entity that cannot close in on its target and
// switches it into a temporary detour heading.
func (e *Entity) updateStuck(f *Frame) {
	target := f.Entity(e.TargetID)
	if target == nil || !e.Alive || e.DistanceTo(target) <= e.stats.Range*stuckRangeFactor {
		e.stuckTicks = 0
		e.detouring = false
		e.detourTicks = 0
		e.lastX, e.lastY = e.X, e.Y
		return
	}

	if combat.Distance(e.X, e.Y, e.lastX, e.lastY) < stuckMoveEpsilon {
		e.stuckTicks++
	} else {
		e.stuckTicks = 0
	}
	e.lastX, e.lastY = e.X, e.Y

	switch {
	case e.detouring:
		e.detourTicks--
		if e.detourTicks <= 0 || e.stuckTicks == 0 {
			e.detouring = false
			e.detourTicks = 0
		}
	case e.stuckTicks >= StuckThresholdTicks:
		sign := 1.0
		if f.Rand.Float64() <= 0.5 {
			sign = -1
		}
		e.detouring = true
		e.detourTicks = DetourDurationTicks
		e.detourOffset = sign * (math.Pi/3 + f.Rand.Float64()*math.Pi/6)
		e.stuckTicks = 0
	}
}

// Detouring reports whether the entity is steering around an obstacle.
func (e *Entity) Detouring() bool { return e.detouring && e.detourTicks > 0 }

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
