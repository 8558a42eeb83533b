package battle

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/udisondev/herobattle/internal/ai"
	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/combat"
	"github.com/udisondev/herobattle/internal/model"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultAllies = 2

	// MinPlacementDistToEnemy keeps heroes from being dropped on top of enemies.
	MinPlacementDistToEnemy = 100

	bossLevelEvery    = 10
	maxRegularEnemies = 8
	levelScaleBase    = 1.1
	// enemyBand is the share of the field height, from the top, where enemies spawn.
	enemyBand   = 0.4
	fieldMargin = 30
	bossTopY    = 80
	heroBottomY = 75
	allySpacing = 100
)

// Setup describes one level to fight.
type Setup struct {
	Content *data.Content
	// Player is the main hero profile. Nil uses the content default.
	Player *data.Player
	Biome  string
	Level  int

	Width, Height float64
	// Allies is the number of AI companions; negative means none.
	Allies   int
	AIChance float64
	Rand     *rand.Rand
}

func (s *Setup) defaults() {
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	if s.Allies == 0 {
		s.Allies = DefaultAllies
	}
	if s.Level <= 0 {
		s.Level = 1
	}
	if s.Rand == nil {
		s.Rand = Seed(s.Biome, uint64(s.Level))
	}
}

// LevelScale is the enemy stat multiplier at a level.
func LevelScale(level int) float64 {
	return math.Pow(levelScaleBase, float64(max(level, 1)-1))
}

// IsBossLevel reports whether a level spawns its biome boss alone.
func IsBossLevel(level int) bool {
	return level > 0 && level%bossLevelEvery == 0
}

// EnemyCount is the number of regular enemies spawned at a level.
func EnemyCount(level int) int {
	return min(maxRegularEnemies, 3+level/2)
}

// Slot is a placement grid cell.
type Slot struct {
	X, Y float64
	// HeroID is the occupying hero, 0 when free.
	HeroID uint32
}

// Free reports whether no hero occupies the slot.
func (s Slot) Free() bool { return s.HeroID == 0 }

// buildSlots lays out grid cells below the enemy band.
func buildSlots(width, height float64) []Slot {
	top := math.Ceil(height*enemyBand/model.GridSize) * model.GridSize
	var slots []Slot
	for y := top; y+model.GridSize <= height; y += model.GridSize {
		for x := 0.0; x+model.GridSize <= width; x += model.GridSize {
			slots = append(slots, Slot{X: x + model.GridSize/2, Y: y + model.GridSize/2})
		}
	}
	return slots
}

// populate builds the hero party and the enemy wave.
func (d *Director) populate() error {
	s := &d.setup
	c := s.Content

	player := c.Player
	if s.Player != nil {
		player = *s.Player
	}
	mainID := data.ClassForWeapon(player.Equipment.WeaponType())
	mainCls, ok := c.Class(mainID)
	if !ok {
		return fmt.Errorf("class %q not in content", mainID)
	}

	cx, by := s.Width/2, s.Height-heroBottomY
	main := d.frame.AddHero(func(id uint32) *model.Hero {
		src := combat.Source{Base: player.BaseStats, Class: mainCls, Equipment: player.Equipment}
		return model.NewHero(id, cx, by, src, c.AbilitiesOf(mainCls), true)
	})
	d.player = main
	d.snap(main.Entity)

	picker := ai.NewHeroAI(s.AIChance)
	for i, cls := range d.allyClasses(mainID) {
		offset := float64(i/2+1) * allySpacing
		if i%2 == 0 {
			offset = -offset
		}
		h := d.frame.AddHero(func(id uint32) *model.Hero {
			src := combat.Source{Base: c.Player.BaseStats, Class: cls}
			return model.NewHero(id, cx+offset, by, src, c.AbilitiesOf(cls), false)
		})
		h.Picker = picker
		d.snap(h.Entity)
	}

	return d.spawnEnemies()
}

// allyClasses draws distinct companion classes other than the main class
// and the adventurer.
func (d *Director) allyClasses(mainID data.ClassID) []*data.Class {
	var pool []*data.Class
	for _, cl := range d.setup.Content.Classes {
		if cl.ID != mainID && cl.ID != data.ClassAdventurer {
			pool = append(pool, cl)
		}
	}
	n := min(max(d.setup.Allies, 0), len(pool))
	out := make([]*data.Class, 0, n)
	for _, i := range d.frame.Rand.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}

func (d *Director) spawnEnemies() error {
	s := &d.setup
	biome, ok := s.Content.Biome(s.Biome)
	if !ok {
		return fmt.Errorf("biome %q not in content", s.Biome)
	}
	if len(biome.Enemies) == 0 {
		return errors.New("biome has no enemies")
	}
	d.biome = biome
	scale := LevelScale(s.Level)

	if d.boss {
		boss := &biome.Boss
		d.frame.AddEnemy(func(id uint32) *model.Enemy {
			return model.NewEnemy(id, s.Width/2, bossTopY, boss, scale)
		})
		return nil
	}

	rng := d.frame.Rand
	bandBottom := s.Height * enemyBand
	for range EnemyCount(s.Level) {
		t := &biome.Enemies[rng.IntN(len(biome.Enemies))]
		x := fieldMargin + rng.Float64()*(s.Width-2*fieldMargin)
		y := fieldMargin + rng.Float64()*(bandBottom-fieldMargin)
		d.frame.AddEnemy(func(id uint32) *model.Enemy {
			return model.NewEnemy(id, x, y, t, scale)
		})
	}
	return nil
}

// snap moves an entity onto the nearest free slot.
func (d *Director) snap(e *model.Entity) {
	best := -1
	bestDist := math.Inf(1)
	for i, sl := range d.slots {
		if !sl.Free() {
			continue
		}
		if dist := combat.Distance(e.X, e.Y, sl.X, sl.Y); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return
	}
	d.occupy(best, e)
}

func (d *Director) occupy(i int, e *model.Entity) {
	for j := range d.slots {
		if d.slots[j].HeroID == e.ID {
			d.slots[j].HeroID = 0
		}
	}
	d.slots[i].HeroID = e.ID
	e.X, e.Y = d.slots[i].X, d.slots[i].Y
}
