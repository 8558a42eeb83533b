package model

// EventKind classifies per-tick outbound events.
type EventKind string

const (
	EventHit        EventKind = "hit"
	EventDeath      EventKind = "death"
	EventHeal       EventKind = "heal"
	EventShield     EventKind = "shield"
	EventProjectile EventKind = "projectile"
	EventAbility    EventKind = "ability"
	EventExpired    EventKind = "expired"
)

// Event is a presentation signal emitted during a tick. The simulation never
// reads events back, so dropping them does not change outcomes.
type Event struct {
	Kind     EventKind  `json:"kind"`
	At       float64    `json:"at"`
	SourceID uint32     `json:"sourceId,omitempty"`
	TargetID uint32     `json:"targetId,omitempty"`
	Ability  string     `json:"ability,omitempty"`
	Outcome  HitOutcome `json:"outcome,omitempty"`
	Amount   float64    `json:"amount,omitempty"`
	Crit     bool       `json:"crit,omitempty"`
}
