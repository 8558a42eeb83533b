package ability

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/model"
)

// Activation failures. None of them changes battle state or spends a cooldown.
var (
	ErrUnknownAbility = errors.New("unknown ability")
	ErrOnCooldown     = errors.New("ability on cooldown")
	ErrCasterDead     = errors.New("caster is dead")
	ErrNotInBattle    = errors.New("battle is not running")
	ErrNoTarget       = errors.New("no valid target")
	ErrOutOfRange     = errors.New("target out of range")
)

// Battle is the part of the simulation loop abilities depend on.
type Battle interface {
	// InBattle reports whether the battle is in its active phase.
	InBattle() bool
	// Schedule queues fn to run once the battle clock reaches at.
	Schedule(at float64, fn func(f *model.Frame))
}

// Cast is one ability activation handed to a handler.
type Cast struct {
	Frame   *model.Frame
	Battle  Battle
	Hero    *model.Hero
	Ability *data.Ability
}

// Handler resolves an ability. Returning an error aborts the activation
// before the cooldown is spent; handlers must not mutate state before
// returning one.
type Handler interface {
	Execute(c *Cast) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(c *Cast) error

func (fn HandlerFunc) Execute(c *Cast) error { return fn(c) }

// builtin maps ability id → handler. Populated by init() in the per-class files.
var builtin = map[string]Handler{}

func register(id string, fn HandlerFunc) {
	builtin[id] = fn
}

// Engine dispatches activations to handlers by ability id.
type Engine struct {
	handlers map[string]Handler
}

// NewEngine creates an engine with every built-in handler registered.
func NewEngine() *Engine {
	e := &Engine{handlers: make(map[string]Handler, len(builtin))}
	for id, h := range builtin {
		e.handlers[id] = h
	}
	return e
}

// Register installs or replaces the handler of an ability id.
func (e *Engine) Register(id string, h Handler) {
	e.handlers[id] = h
}

// Has reports whether a handler is registered for id.
func (e *Engine) Has(id string) bool {
	_, ok := e.handlers[id]
	return ok
}

// Execute activates an ability of hero. Preconditions are checked in order:
// battle running, caster alive, ability known to the hero, off cooldown.
// The cooldown is set only when the handler succeeds.
func (e *Engine) Execute(f *model.Frame, b Battle, hero *model.Hero, abilityID string) error {
	if !b.InBattle() {
		return ErrNotInBattle
	}
	if !hero.Alive {
		return ErrCasterDead
	}

	ab := hero.Ability(abilityID)
	if ab == nil {
		return fmt.Errorf("%w: %s", ErrUnknownAbility, abilityID)
	}
	if hero.Cooldown(abilityID) > 0 {
		return ErrOnCooldown
	}
	h, ok := e.handlers[abilityID]
	if !ok {
		return fmt.Errorf("%w: no handler for %s", ErrUnknownAbility, abilityID)
	}

	if err := h.Execute(&Cast{Frame: f, Battle: b, Hero: hero, Ability: ab}); err != nil {
		return fmt.Errorf("executing %s: %w", abilityID, err)
	}

	hero.SetCooldown(abilityID, ab.CooldownMs)
	f.Emit(model.Event{Kind: model.EventAbility, SourceID: hero.ID, TargetID: hero.TargetID, Ability: abilityID})
	slog.Debug("ability activated", "hero", hero.ID, "name", hero.Name(), "ability", abilityID)
	return nil
}
