package battle

import (
	"slices"

	"github.com/google/uuid"

	"github.com/udisondev/herobattle/internal/model"
)

// Listener receives the outbound signals of a battle. Calls happen on the
// goroutine driving the director, after the tick has fully committed.
type Listener interface {
	OnTick(s Snapshot)
	// OnEnd is called exactly once when the battle is won or lost.
	OnEnd(r Result)
}

// EntityState is the presentation view of one combatant.
type EntityState struct {
	ID     uint32     `json:"id"`
	Side   model.Side `json:"side"`
	Name   string     `json:"name"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	HP     float64    `json:"hp"`
	MaxHP  float64    `json:"maxHp"`
	Shield float64    `json:"shield"`
	Alive  bool       `json:"alive"`
}

// Snapshot is the per-tick signal.
type Snapshot struct {
	BattleID uuid.UUID     `json:"battleId"`
	Now      float64       `json:"now"`
	Events   []model.Event `json:"events"`
	// Cooldowns are the player hero's remaining cooldowns by ability id.
	Cooldowns   map[string]float64 `json:"cooldowns"`
	Entities    []EntityState      `json:"entities"`
	Projectiles int                `json:"projectiles"`
}

func entityStates(f *model.Frame) []EntityState {
	all := slices.Concat(f.Side(model.SideHero), f.Side(model.SideEnemy))
	out := make([]EntityState, 0, len(all))
	for _, e := range all {
		out = append(out, EntityState{
			ID:     e.ID,
			Side:   e.Side,
			Name:   e.Name(),
			X:      e.X,
			Y:      e.Y,
			HP:     e.HP,
			MaxHP:  e.MaxHP(),
			Shield: e.Shield,
			Alive:  e.Alive,
		})
	}
	return out
}
