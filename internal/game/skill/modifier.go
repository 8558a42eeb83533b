package skill

import (
	"fmt"

	"github.com/udisondev/herobattle/internal/data"
)

// Kind distinguishes buffs from debuffs.
type Kind uint8

const (
	KindBuff Kind = iota
	KindDebuff
)

// Modifier is a timed buff or debuff attached to an entity.
//
// AbilityID is the grouping key used for replace-or-stack decisions; for
// debuffs it is the debuff template id. InstanceID names the application
// on its target.
type Modifier struct {
	InstanceID  string
	AbilityID   string
	Name        string
	Kind        Kind
	DurationMs  float64
	RemainingMs float64
	Stacks      int
	MaxStacks   int
	SourceID    uint32
	TargetID    uint32
	AppliedAt   float64
	Effects     data.Effects

	// LastTickAt schedules periodic payloads (damage over time, auras).
	LastTickAt float64

	// Dot is the resolved damage-over-time payload. Per-tick damage is fixed
	// when the debuff lands.
	Dot *DotInstance

	// DashTargetID is the entity captured by a dash buff.
	DashTargetID uint32
}

// DotInstance is a damage-over-time payload with its caster and schedule.
type DotInstance struct {
	TickIntervalMs float64
	DamagePerTick  float64
	CasterID       uint32
}

// NewBuff creates a buff instance from an effect bundle.
func NewBuff(abilityID, name string, durationMs float64, fx data.Effects, source, target uint32, now float64) *Modifier {
	return &Modifier{
		InstanceID:  fmt.Sprintf("%s_%d", abilityID, target),
		AbilityID:   abilityID,
		Name:        name,
		Kind:        KindBuff,
		DurationMs:  durationMs,
		RemainingMs: durationMs,
		Stacks:      1,
		SourceID:    source,
		TargetID:    target,
		AppliedAt:   now,
		LastTickAt:  now,
		Effects:     fx.Clone(),
	}
}

// NewDebuff creates a debuff instance from a content template.
func NewDebuff(t *data.DebuffTemplate, source, target uint32, now float64) *Modifier {
	return &Modifier{
		InstanceID:  fmt.Sprintf("%s_%d", t.ID, target),
		AbilityID:   t.ID,
		Name:        t.Name,
		Kind:        KindDebuff,
		DurationMs:  t.DurationMs,
		RemainingMs: t.DurationMs,
		Stacks:      1,
		MaxStacks:   t.MaxStacks,
		SourceID:    source,
		TargetID:    target,
		AppliedAt:   now,
		LastTickAt:  now,
		Effects:     t.Effects.Clone(),
	}
}

// NewStun creates an immobilizing debuff.
func NewStun(abilityID string, durationMs float64, source, target uint32, now float64) *Modifier {
	return NewDebuff(&data.DebuffTemplate{
		ID:         abilityID,
		Name:       "Stunned",
		DurationMs: durationMs,
		Effects:    data.Effects{Immobile: true},
	}, source, target, now)
}

// StackCount returns the number of stacks, never less than one.
func (m *Modifier) StackCount() int {
	if m.Stacks < 1 {
		return 1
	}
	return m.Stacks
}

// IsBuff reports whether the modifier is a buff.
func (m *Modifier) IsBuff() bool { return m.Kind == KindBuff }

// Clone returns a deep copy retargeted at target with a full duration.
// Used when a debuff spreads from one entity to another.
func (m *Modifier) Clone(target uint32, now float64) *Modifier {
	c := *m
	c.InstanceID = fmt.Sprintf("%s_%d", m.AbilityID, target)
	c.TargetID = target
	c.AppliedAt = now
	c.RemainingMs = m.DurationMs
	c.Effects = m.Effects.Clone()
	if m.Dot != nil {
		d := *m.Dot
		c.Dot = &d
	}
	return &c
}
