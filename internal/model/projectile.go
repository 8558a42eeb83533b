package model

import (
	"slices"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/combat"
	"github.com/udisondev/herobattle/internal/game/skill"
)

const (
	defaultProjectileSize     = 6
	defaultProjectileSpeed    = 10
	defaultProjectileLifetime = 2000
)

// ProjectileOptions tunes a projectile. Zero values take the defaults.
type ProjectileOptions struct {
	Size       float64
	Speed      float64
	LifetimeMs float64
	Piercing   bool

	// BonusPercentTargetMaxHP adds a share of each victim's max hp on hit.
	BonusPercentTargetMaxHP float64
	Debuff                  *data.DebuffTemplate
	Splash                  *data.Splash

	// Source is the ability id that fired the projectile, "" for basic attacks.
	Source string
}

// Projectile is a traveling damage carrier. It homes on the live position
// of its target entity, or flies to a fixed point when it has none.
type Projectile struct {
	ID         uint32
	X, Y       float64
	Side       Side
	AttackerID uint32

	// TargetID is 0 for point-targeted projectiles.
	TargetID         uint32
	TargetX, TargetY float64

	Damage float64
	Crit   bool
	ProjectileOptions

	hit []uint32
}

// NewProjectile fires from attacker toward a target entity.
func NewProjectile(attacker, target *Entity, damage float64, crit bool, opts ProjectileOptions) *Projectile {
	p := NewProjectileAt(attacker, target.X, target.Y, damage, crit, opts)
	p.TargetID = target.ID
	return p
}

// NewProjectileAt fires from attacker toward a fixed point.
func NewProjectileAt(attacker *Entity, x, y, damage float64, crit bool, opts ProjectileOptions) *Projectile {
	opts.Size = data.Or(opts.Size, defaultProjectileSize)
	opts.Speed = data.Or(opts.Speed, defaultProjectileSpeed)
	opts.LifetimeMs = data.Or(opts.LifetimeMs, defaultProjectileLifetime)
	return &Projectile{
		X:                 attacker.X,
		Y:                 attacker.Y,
		Side:              attacker.Side,
		AttackerID:        attacker.ID,
		TargetX:           x,
		TargetY:           y,
		Damage:            damage,
		Crit:              crit,
		ProjectileOptions: opts,
	}
}

// Retarget returns an unspawned copy of p aimed at another entity.
func (p *Projectile) Retarget(target *Entity) *Projectile {
	c := *p
	c.ID = 0
	c.TargetID = target.ID
	c.TargetX, c.TargetY = target.X, target.Y
	c.hit = nil
	return &c
}

// Done reports whether the projectile should be removed.
func (p *Projectile) Done() bool { return p.LifetimeMs <= 0 }

// HitIDs returns the ids of entities already hit.
func (p *Projectile) HitIDs() []uint32 { return p.hit }

// Update ages, moves and collides the projectile.
func (p *Projectile) Update(f *Frame) {
	if p.Done() {
		return
	}
	p.LifetimeMs -= f.Delta
	if p.Done() {
		return
	}

	if t := f.Entity(p.TargetID); t != nil {
		p.TargetX, p.TargetY = t.X, t.Y
	}

	step := p.Speed * f.Steps()
	dist := combat.Distance(p.X, p.Y, p.TargetX, p.TargetY)
	if dist > step {
		p.X += (p.TargetX - p.X) / dist * step
		p.Y += (p.TargetY - p.Y) / dist * step
	} else {
		p.X, p.Y = p.TargetX, p.TargetY
		if !p.Piercing {
			p.LifetimeMs = 0
		}
	}

	for _, c := range f.Side(p.Side.Opposite()) {
		if !c.Alive || slices.Contains(p.hit, c.ID) {
			continue
		}
		if combat.Distance(p.X, p.Y, c.X, c.Y) >= p.Size+c.Size()/2 {
			continue
		}
		p.onHit(f, c)
		if !p.Piercing {
			p.LifetimeMs = 0
			break
		}
	}
}

func (p *Projectile) onHit(f *Frame, target *Entity) {
	p.hit = append(p.hit, target.ID)
	attacker := f.Entity(p.AttackerID)

	dmg := p.Damage
	if p.BonusPercentTargetMaxHP > 0 {
		dmg += target.MaxHP() * p.BonusPercentTargetMaxHP / 100
	}
	f.Hit(attacker, target, dmg, p.Crit, p.Source)

	if p.Debuff != nil && target.Alive {
		target.ApplyDebuff(p.debuffFor(attacker, target, f.Now))
	}

	if p.Splash == nil {
		return
	}
	mult := data.Or(p.Splash.DamageMultiplier, 1)
	spread := target.Modifiers().Debuff(p.Splash.SpreadsDebuffID)
	for _, c := range f.Side(target.Side) {
		if !c.Alive || c.ID == target.ID || target.DistanceTo(c) > p.Splash.Radius {
			continue
		}
		f.Hit(attacker, c, dmg*mult, p.Crit, p.Source)
		if spread != nil && c.Alive {
			c.ApplyDebuff(spread.Clone(c.ID, f.Now))
		}
	}
}

// debuffFor instantiates the carried debuff. Damage over time is fixed from
// the caster's and victim's stats at the moment it lands.
func (p *Projectile) debuffFor(attacker, target *Entity, now float64) *skill.Modifier {
	m := skill.NewDebuff(p.Debuff, p.AttackerID, target.ID, now)
	dot := p.Debuff.Effects.Dot
	if dot == nil {
		return m
	}
	var casterDamage float64
	if attacker != nil {
		casterDamage = attacker.Damage()
	}
	m.Dot = &skill.DotInstance{
		TickIntervalMs: dot.TickIntervalMs,
		DamagePerTick:  combat.Floor(casterDamage*dot.PercentOfCasterDamage/100 + target.MaxHP()*dot.PercentOfTargetMaxHP/100),
		CasterID:       p.AttackerID,
	}
	return m
}
