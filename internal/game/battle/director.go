package battle

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/ability"
	"github.com/udisondev/herobattle/internal/game/combat"
	"github.com/udisondev/herobattle/internal/model"
)

var (
	ErrBattleEnded  = errors.New("battle has ended")
	ErrNotStarted   = errors.New("battle has not started")
	ErrNotPlacement = errors.New("battle is not in placement")
	ErrInvalidSlot  = errors.New("no valid placement slot")
	ErrUnknownHero  = errors.New("unknown hero")
	ErrTimeout      = errors.New("battle timed out")
)

// Director owns one level: its roster, projectiles, delayed actions and
// the state machine. It is not safe for concurrent use; every call must
// come from the goroutine driving the battle.
type Director struct {
	ID uuid.UUID

	setup  Setup
	biome  *data.Biome
	boss   bool
	frame  *model.Frame
	engine *ability.Engine
	state  *fsm.FSM
	slots  []Slot
	player *model.Hero

	projectiles []*model.Projectile
	queue       actionQueue
	seq         uint64
	now         float64

	kills     map[string]Kill
	carry     []model.Event
	result    *Result
	listeners []Listener
}

// NewDirector builds the level described by s and leaves it in placement.
func NewDirector(s Setup) (*Director, error) {
	if s.Content == nil {
		return nil, errors.New("battle setup: content is required")
	}
	s.defaults()

	id := uuid.New()
	d := &Director{
		ID:     id,
		setup:  s,
		boss:   IsBossLevel(s.Level),
		frame:  model.NewFrame(s.Width, s.Height, s.Rand),
		engine: ability.NewEngine(),
		state:  newStateMachine(id.String()),
		slots:  buildSlots(s.Width, s.Height),
		kills:  make(map[string]Kill),
	}
	if err := d.populate(); err != nil {
		return nil, fmt.Errorf("setting up %s level %d: %w", s.Biome, s.Level, err)
	}

	slog.Info("battle created",
		"battle", id,
		"biome", s.Biome,
		"level", s.Level,
		"boss", d.boss,
		"heroes", len(d.frame.Heroes()),
		"enemies", len(d.frame.Enemies()))
	return d, nil
}

// AddListener subscribes l to tick and end signals.
func (d *Director) AddListener(l Listener) {
	d.listeners = append(d.listeners, l)
}

func (d *Director) State() string { return d.state.Current() }

// InBattle reports whether the battle is running.
func (d *Director) InBattle() bool { return d.state.Current() == StateBattle }

// Ended reports whether the battle reached a terminal state.
func (d *Director) Ended() bool { return terminal(d.state.Current()) }

// Now returns the battle clock in milliseconds.
func (d *Director) Now() float64 { return d.now }

func (d *Director) Biome() string           { return d.setup.Biome }
func (d *Director) Level() int              { return d.setup.Level }
func (d *Director) Boss() bool              { return d.boss }
func (d *Director) Frame() *model.Frame     { return d.frame }
func (d *Director) Player() *model.Hero     { return d.player }
func (d *Director) Engine() *ability.Engine { return d.engine }

// Projectiles returns the projectiles in flight.
func (d *Director) Projectiles() []*model.Projectile { return d.projectiles }

// Slots returns a copy of the placement grid.
func (d *Director) Slots() []Slot {
	out := make([]Slot, len(d.slots))
	copy(out, d.slots)
	return out
}

// Result returns the termination result once the battle is won or lost.
func (d *Director) Result() (Result, bool) {
	if d.result == nil {
		return Result{}, false
	}
	return *d.result, true
}

// Start leaves placement and begins the battle.
func (d *Director) Start() error {
	if err := d.fire(eventStart); err != nil {
		return ErrNotPlacement
	}
	slog.Info("battle started", "battle", d.ID)
	return nil
}

// Abandon discards the battle. No result is produced.
func (d *Director) Abandon() error {
	if err := d.fire(eventAbandon); err != nil {
		return ErrBattleEnded
	}
	d.projectiles = nil
	d.queue = nil
	slog.Info("battle abandoned", "battle", d.ID, "at", d.now)
	return nil
}

func (d *Director) fire(event string) error {
	return d.state.Event(context.Background(), event)
}

// PlaceHero moves a hero to the nearest free slot within one grid cell of
// (x, y) that keeps MinPlacementDistToEnemy from every enemy.
func (d *Director) PlaceHero(heroID uint32, x, y float64) error {
	if d.state.Current() != StatePlacement {
		return ErrNotPlacement
	}
	h := d.frame.Hero(heroID)
	if h == nil {
		return fmt.Errorf("%w: %d", ErrUnknownHero, heroID)
	}

	best := -1
	bestDist := math.Inf(1)
	for i, sl := range d.slots {
		if !sl.Free() && sl.HeroID != heroID {
			continue
		}
		dist := combat.Distance(x, y, sl.X, sl.Y)
		if dist > model.GridSize || dist >= bestDist || d.nearEnemy(sl) {
			continue
		}
		best, bestDist = i, dist
	}
	if best < 0 {
		return ErrInvalidSlot
	}
	d.occupy(best, h.Entity)
	return nil
}

func (d *Director) nearEnemy(sl Slot) bool {
	for _, en := range d.frame.Side(model.SideEnemy) {
		if combat.Distance(sl.X, sl.Y, en.X, en.Y) <= MinPlacementDistToEnemy {
			return true
		}
	}
	return false
}

// Schedule queues fn to run once the battle clock reaches at.
func (d *Director) Schedule(at float64, fn func(f *model.Frame)) {
	d.seq++
	heap.Push(&d.queue, delayed{at: at, seq: d.seq, fn: fn})
}

// Activate fires an ability of a hero on demand. Errors wrap the ability
// engine's sentinels and leave the battle untouched.
func (d *Director) Activate(heroID uint32, abilityID string) error {
	h := d.frame.Hero(heroID)
	if h == nil {
		return fmt.Errorf("%w: %d", ErrUnknownHero, heroID)
	}

	f := d.frame
	events, spawned := len(f.Events()), len(f.Spawned())
	if err := d.engine.Execute(f, d, h, abilityID); err != nil {
		return err
	}
	d.carry = append(d.carry, f.Events()[events:]...)
	d.projectiles = append(d.projectiles, f.Spawned()[spawned:]...)
	return nil
}

type trigger struct {
	hero *model.Hero
	id   string
}

// Tick advances the battle by delta milliseconds. Phases commit in order:
// entity updates, triggered abilities, projectiles, delayed actions, then
// the termination check. Ticking a finished battle is a no-op returning
// ErrBattleEnded.
func (d *Director) Tick(delta float64) error {
	switch st := d.state.Current(); {
	case st == StatePlacement:
		return ErrNotStarted
	case terminal(st):
		return ErrBattleEnded
	}

	// The battle clock never runs backwards.
	delta = max(0, delta)
	d.now += delta
	f := d.frame
	f.Begin(d.now, delta)

	var triggered []trigger
	for _, h := range f.Heroes() {
		if !h.Alive {
			continue
		}
		if id := h.Update(f); id != "" {
			triggered = append(triggered, trigger{hero: h, id: id})
		}
	}
	for _, en := range f.Enemies() {
		if en.Alive {
			en.Update(f)
		}
	}

	for _, t := range triggered {
		if err := d.engine.Execute(f, d, t.hero, t.id); err != nil {
			slog.Debug("ability skipped", "hero", t.hero.ID, "ability", t.id, "error", err)
		}
	}

	live := d.projectiles[:0]
	for _, p := range d.projectiles {
		p.Update(f)
		if !p.Done() {
			live = append(live, p)
		}
	}
	d.projectiles = live

	for _, a := range d.queue.due(d.now) {
		a.fn(f)
	}
	d.projectiles = append(d.projectiles, f.Spawned()...)

	d.countKills()
	d.emitTick()
	d.checkEnd()
	return nil
}

func (d *Director) countKills() {
	for _, en := range d.frame.Enemies() {
		if en.Alive || en.Counted {
			continue
		}
		en.Counted = true
		k := d.kills[en.Template.Name]
		k.Emoji = en.Emoji()
		k.Count++
		d.kills[en.Template.Name] = k
	}
}

func (d *Director) emitTick() {
	if len(d.listeners) == 0 {
		d.carry = d.carry[:0]
		return
	}
	snap := Snapshot{
		BattleID:    d.ID,
		Now:         d.now,
		Events:      append(d.carry, d.frame.Events()...),
		Cooldowns:   d.player.Cooldowns(),
		Entities:    entityStates(d.frame),
		Projectiles: len(d.projectiles),
	}
	d.carry = nil
	for _, l := range d.listeners {
		l.OnTick(snap)
	}
}

// checkEnd ends the battle when a side is wiped. Heroes are checked first,
// so a simultaneous wipe is a loss.
func (d *Director) checkEnd() {
	switch {
	case len(d.frame.Living(model.SideHero)) == 0:
		d.finish(false)
	case len(d.frame.Living(model.SideEnemy)) == 0:
		d.finish(true)
	}
}

func (d *Director) finish(won bool) {
	event := eventLose
	if won {
		event = eventWin
	}
	if err := d.fire(event); err != nil {
		slog.Error("battle transition failed", "battle", d.ID, "event", event, "error", err)
		return
	}

	d.result = &Result{
		BattleID:   d.ID,
		Won:        won,
		Biome:      d.setup.Biome,
		Level:      d.setup.Level,
		Boss:       d.boss,
		Report:     buildReport(d.frame.Heroes(), d.kills),
		DurationMs: d.now,
	}
	d.projectiles = nil
	d.queue = nil

	slog.Info("battle finished", "battle", d.ID, "won", won, "duration_ms", d.now)
	for _, l := range d.listeners {
		l.OnEnd(*d.result)
	}
}
