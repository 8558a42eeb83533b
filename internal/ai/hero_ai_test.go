package ai

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/combat"
	"github.com/udisondev/herobattle/internal/model"
)

func setup(t *testing.T, targetX float64, abilities ...*data.Ability) (*model.Frame, *model.Hero, *model.Entity) {
	t.Helper()
	f := model.NewFrame(800, 600, rand.New(rand.NewChaCha8([32]byte{1})))
	f.Begin(0, model.FrameMs)

	cls := &data.Class{ID: data.ClassWarrior, Name: "Warrior", HP: 100, Damage: 10, Range: 50, MoveSpeed: 2}
	h := f.AddHero(func(id uint32) *model.Hero {
		return model.NewHero(id, 100, 100, combat.Source{Class: cls}, abilities, false)
	})
	en := f.AddEnemy(func(id uint32) *model.Enemy {
		return model.NewEnemy(id, targetX, 100, &data.EnemyTemplate{Name: "Sloth", BaseHP: 100, BaseDamage: 10}, 1)
	})
	return f, h, en.Entity
}

func TestHeroAI_PicksReadyAbility(t *testing.T) {
	self := &data.Ability{ID: "warrior_extreme_strength", TargetType: data.TargetSelf}
	f, h, target := setup(t, 400, self)

	ai := &HeroAI{Chance: 1}
	assert.Equal(t, "warrior_extreme_strength", ai.Pick(f, h, target))

	h.SetCooldown(self.ID, 1000)
	assert.Empty(t, ai.Pick(f, h, target), "nothing ready")
}

func TestHeroAI_SkipsSingleTargetOutOfReach(t *testing.T) {
	strike := &data.Ability{ID: "guardian_shield_bash", TargetType: data.TargetSingleEnemy}

	f, h, far := setup(t, 400, strike)
	ai := &HeroAI{Chance: 1}
	assert.Empty(t, ai.Pick(f, h, far))

	f, h, near := setup(t, 170, strike)
	assert.Equal(t, strike.ID, ai.Pick(f, h, near), "70px is within 1.5x of 50")
}

func TestHeroAI_ChanceScalesWithElapsedFrames(t *testing.T) {
	ai := NewHeroAI(0)
	assert.Equal(t, DefaultAbilityChance, ai.Chance)

	assert.InDelta(t, 0.01, ai.chance(1), 1e-12)
	assert.InDelta(t, 1-0.99*0.99, ai.chance(2), 1e-12)
	assert.Zero(t, ai.chance(0))
}

func TestHeroAI_ZeroChanceNeverFires(t *testing.T) {
	f, h, target := setup(t, 400, &data.Ability{ID: "a", TargetType: data.TargetSelf})
	ai := &HeroAI{Chance: 0}

	for range 1000 {
		assert.Empty(t, ai.Pick(f, h, target))
	}
}
