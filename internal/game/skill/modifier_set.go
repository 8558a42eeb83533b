package skill

const (
	initialBuffs   = 8
	initialDebuffs = 8
)

// ModifierSet tracks active buffs and debuffs of one entity.
//
// Not safe for concurrent use: a battle mutates it only from its own tick.
// Callers recalculate stats whenever a mutating method reports a change.
type ModifierSet struct {
	buffs   []*Modifier
	debuffs []*Modifier
}

// NewModifierSet creates an empty ModifierSet.
func NewModifierSet() *ModifierSet {
	return &ModifierSet{
		buffs:   make([]*Modifier, 0, initialBuffs),
		debuffs: make([]*Modifier, 0, initialDebuffs),
	}
}

// ApplyBuff adds a buff. An existing buff of the same ability is replaced.
func (s *ModifierSet) ApplyBuff(m *Modifier) {
	for i, existing := range s.buffs {
		if existing.AbilityID == m.AbilityID {
			s.buffs[i] = m
			return
		}
	}
	s.buffs = append(s.buffs, m)
}

// ApplyDebuff adds a debuff or refreshes the existing one of the same id.
//
// Refresh rules:
//   - MaxStacks > 1 → stacks grow by one, capped at MaxStacks
//   - duration always resets to the full value of the new application
func (s *ModifierSet) ApplyDebuff(m *Modifier) {
	for _, existing := range s.debuffs {
		if existing.AbilityID != m.AbilityID {
			continue
		}
		if m.MaxStacks > 1 {
			existing.MaxStacks = m.MaxStacks
			existing.Stacks = min(m.MaxStacks, existing.StackCount()+1)
		}
		existing.DurationMs = m.DurationMs
		existing.RemainingMs = m.DurationMs
		existing.AppliedAt = m.AppliedAt
		return
	}
	m.Stacks = 1
	s.debuffs = append(s.debuffs, m)
}

// RemoveBuff removes the given buff instance.
// Returns true if it was present.
func (s *ModifierSet) RemoveBuff(m *Modifier) bool {
	for i, existing := range s.buffs {
		if existing == m {
			s.buffs = append(s.buffs[:i], s.buffs[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveDebuff removes every debuff with the given id.
// Returns true if anything was removed.
func (s *ModifierSet) RemoveDebuff(abilityID string) bool {
	n := 0
	for _, d := range s.debuffs {
		if d.AbilityID != abilityID {
			s.debuffs[n] = d
			n++
		}
	}
	removed := n < len(s.debuffs)
	clear(s.debuffs[n:])
	s.debuffs = s.debuffs[:n]
	return removed
}

// Tick decrements remaining durations by deltaMs and drops expired
// modifiers. Returns the expired modifiers, buffs first.
func (s *ModifierSet) Tick(deltaMs float64) []*Modifier {
	var expired []*Modifier
	s.buffs, expired = tickModifiers(s.buffs, deltaMs, expired)
	s.debuffs, expired = tickModifiers(s.debuffs, deltaMs, expired)
	return expired
}

// FindBuff returns the first buff matching pred, or nil.
func (s *ModifierSet) FindBuff(pred func(*Modifier) bool) *Modifier {
	return find(s.buffs, pred)
}

// FindDebuff returns the first debuff matching pred, or nil.
func (s *ModifierSet) FindDebuff(pred func(*Modifier) bool) *Modifier {
	return find(s.debuffs, pred)
}

// Debuff returns the debuff with the given id, or nil.
func (s *ModifierSet) Debuff(abilityID string) *Modifier {
	return find(s.debuffs, func(m *Modifier) bool { return m.AbilityID == abilityID })
}

// Buffs returns the active buffs. The slice must not be modified.
func (s *ModifierSet) Buffs() []*Modifier { return s.buffs }

// Debuffs returns the active debuffs. The slice must not be modified.
func (s *ModifierSet) Debuffs() []*Modifier { return s.debuffs }

// All returns buffs followed by debuffs in a fresh slice.
func (s *ModifierSet) All() []*Modifier {
	all := make([]*Modifier, 0, len(s.buffs)+len(s.debuffs))
	all = append(all, s.buffs...)
	return append(all, s.debuffs...)
}

// Len returns the number of active modifiers.
func (s *ModifierSet) Len() int { return len(s.buffs) + len(s.debuffs) }

func find(mods []*Modifier, pred func(*Modifier) bool) *Modifier {
	for _, m := range mods {
		if pred(m) {
			return m
		}
	}
	return nil
}

// tickModifiers decrements timers and removes expired modifiers,
// appending them to expired.
func tickModifiers(mods []*Modifier, deltaMs float64, expired []*Modifier) ([]*Modifier, []*Modifier) {
	n := 0
	for _, m := range mods {
		m.RemainingMs -= deltaMs
		if m.RemainingMs <= 0 {
			expired = append(expired, m)
			continue
		}
		mods[n] = m
		n++
	}
	clear(mods[n:])
	return mods[:n], expired
}
