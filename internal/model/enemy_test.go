package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/skill"
)

func TestEnemy_AggroPropagatesToNearbyAllies(t *testing.T) {
	f := testFrame()
	addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	first := addEnemy(f, 200, 100)
	ally := addEnemy(f, 400, 100)
	distant := addEnemy(f, 700, 100)

	first.Update(f)

	assert.True(t, first.Aggroed)
	assert.True(t, ally.Aggroed, "within 1.5x aggro radius")
	assert.False(t, distant.Aggroed)
}

func TestEnemy_PassiveUntilAggroed(t *testing.T) {
	f := testFrame()
	addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	en := addEnemy(f, 600, 100)

	en.Update(f)

	assert.False(t, en.Aggroed)
	assert.Equal(t, 600.0, en.X)
	assert.Zero(t, en.TargetID)
}

func TestEnemy_ProvokedByHeroDamage(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	en := addEnemy(f, 700, 100)

	f.Hit(h.Entity, en.Entity, 5, false, "")

	assert.True(t, en.Aggroed)
}

func TestEnemy_BossAggroRadius(t *testing.T) {
	f := testFrame()
	boss := f.AddEnemy(func(id uint32) *Enemy {
		tmpl := enemyTemplate()
		tmpl.Boss = true
		return NewEnemy(id, 400, 100, tmpl, 1)
	})
	assert.Equal(t, float64(BossAggroRadius), boss.AggroRadius)
	assert.True(t, boss.Boss())
}

func TestEnemy_MeleeAttackInRange(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	en := addEnemy(f, 130, 100)

	en.Update(f)

	assert.Equal(t, h.ID, en.TargetID)
	assert.Equal(t, 90.0, h.HP)
	assert.Equal(t, 10.0, en.DamageDealt)
}

func TestHero_UpdateReturnsPickedAbility(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	addEnemy(f, 300, 100)
	h.Picker = pickerFunc(func(*Frame, *Hero, *Entity) string { return "warrior_intercept" })

	assert.Equal(t, "warrior_intercept", h.Update(f))

	h.Player = true
	assert.Empty(t, h.Update(f), "player heroes only fire abilities on demand")
}

func TestHero_DashResolvesOnContact(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	en := addEnemy(f, 115, 100)

	dash := skill.NewBuff("warrior_intercept", "Intercept", 2000, data.Effects{Dash: &data.Dash{
		SpeedMultiplier: 3,
		OnHit:           data.DashOnHit{AlwaysCrit: true, StunDurationMs: 1500},
	}}, h.ID, h.ID, 0)
	dash.DashTargetID = en.ID
	h.ApplyBuff(dash)

	h.Update(f)

	assert.Equal(t, 70.0, en.HP, "class damage 20 crit for 30")
	assert.True(t, en.Immobile())
	assert.Empty(t, h.Modifiers().Buffs())
}

func TestHero_DashClosesDistance(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	en := addEnemy(f, 400, 100)

	dash := skill.NewBuff("warrior_intercept", "Intercept", 2000, data.Effects{Dash: &data.Dash{SpeedMultiplier: 3}}, h.ID, h.ID, 0)
	dash.DashTargetID = en.ID
	h.ApplyBuff(dash)

	h.Update(f)

	assert.InDelta(t, 105.0, h.X, 1e-9, "3x of 2 cells/s per frame")
	require.Len(t, h.Modifiers().Buffs(), 1)
	assert.Equal(t, en.ID, h.TargetID)
}

func TestHero_MultiShotSpawnsExtraProjectiles(t *testing.T) {
	f := testFrame()
	h := rangedHero(f)
	primary := addEnemy(f, 250, 100)
	addEnemy(f, 260, 140)
	addEnemy(f, 600, 400)
	h.ApplyBuff(skill.NewBuff("archer_skill_and_precision", "Skill", 8000, data.Effects{MultiShot: &data.MultiShot{Count: 2}}, h.ID, h.ID, 0))

	h.Update(f)

	spawned := f.Spawned()
	require.Len(t, spawned, 2)
	assert.Equal(t, primary.ID, spawned[0].TargetID)
	assert.NotEqual(t, spawned[0].TargetID, spawned[1].TargetID)
	assert.NotEqual(t, spawned[0].ID, spawned[1].ID)
}

type pickerFunc func(*Frame, *Hero, *Entity) string

func (p pickerFunc) Pick(f *Frame, h *Hero, target *Entity) string { return p(f, h, target) }
