package model

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/herobattle/internal/data"
	"github.com/udisondev/herobattle/internal/game/combat"
	"github.com/udisondev/herobattle/internal/game/skill"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewChaCha8([32]byte{}))
}

func testFrame() *Frame {
	f := NewFrame(800, 600, testRand())
	f.Begin(0, FrameMs)
	return f
}

func meleeClass() *data.Class {
	return &data.Class{
		ID:               data.ClassWarrior,
		Name:             "Warrior",
		Weapon:           "sword",
		HP:               100,
		Damage:           20,
		Range:            50,
		AttackIntervalMs: 1000,
		MoveSpeed:        2,
	}
}

func addHero(f *Frame, x, y float64, cls *data.Class, base data.BaseStats) *Hero {
	return f.AddHero(func(id uint32) *Hero {
		return NewHero(id, x, y, combat.Source{Base: base, Class: cls}, nil, false)
	})
}

func enemyTemplate() *data.EnemyTemplate {
	return &data.EnemyTemplate{
		Name:             "Sloth",
		Emoji:            "🦥",
		BaseHP:           100,
		BaseDamage:       10,
		Range:            40,
		AttackIntervalMs: 1500,
		MoveSpeed:        1,
	}
}

func addEnemy(f *Frame, x, y float64) *Enemy {
	return f.AddEnemy(func(id uint32) *Enemy {
		return NewEnemy(id, x, y, enemyTemplate(), 1)
	})
}

func TestTakeDamage_ShieldAbsorbsBeforeHP(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	h.HP = 50
	h.ApplyShield(30)

	res := h.TakeDamage(f.Rand, 40, nil)

	assert.Equal(t, HitDamage, res.Outcome)
	assert.Equal(t, 40.0, res.Damage)
	assert.Equal(t, 40.0, h.HP)
	assert.Zero(t, h.Shield)
	assert.True(t, h.Alive)
}

func TestTakeDamage_Resistance(t *testing.T) {
	tests := []struct {
		name       string
		resistance float64
		raw        float64
		want       float64
	}{
		{"no resistance", 0, 100, 100},
		{"100 resistance halves", 100, 100, 50},
		{"floor at one", 100000, 100, 1},
		{"negative resistance amplifies", -50, 100, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testFrame()
			cls := meleeClass()
			cls.HP = 1000
			h := addHero(f, 100, 100, cls, data.BaseStats{Resistance: tt.resistance})

			res := h.TakeDamage(f.Rand, tt.raw, nil)

			assert.Equal(t, tt.want, res.Damage)
			assert.Equal(t, 1000-tt.want, h.HP)
		})
	}
}

func TestTakeDamage_DodgeLeavesStateUnchanged(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{Dodge: 100})
	h.ApplyShield(10)

	res := h.TakeDamage(f.Rand, 40, nil)

	assert.Equal(t, HitDodged, res.Outcome)
	assert.Equal(t, 100.0, h.HP)
	assert.Equal(t, 10.0, h.Shield)
	assert.Zero(t, h.DamageTaken)
}

func TestTakeDamage_BlockChargesConsumed(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	h.ApplyBuff(skill.NewBuff("guardian_block_force", "Block", 10000, data.Effects{BlockCharges: 2}, h.ID, h.ID, 0))

	assert.Equal(t, HitBlocked, h.TakeDamage(f.Rand, 30, nil).Outcome)
	assert.Equal(t, HitBlocked, h.TakeDamage(f.Rand, 30, nil).Outcome)
	assert.Empty(t, h.Modifiers().Buffs(), "buff removed once charges run out")

	res := h.TakeDamage(f.Rand, 30, nil)
	assert.Equal(t, HitDamage, res.Outcome)
	assert.Equal(t, 70.0, h.HP)
}

func TestTakeDamage_InvulnerableNegates(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	h.ApplyBuff(skill.NewBuff("invuln", "Invulnerable", 1000, data.Effects{Invulnerable: true}, h.ID, h.ID, 0))

	res := h.TakeDamage(f.Rand, 500, nil)

	assert.NotEqual(t, HitDamage, res.Outcome)
	assert.Equal(t, 100.0, h.HP)
}

func TestTakeDamage_MissingHPBonusFromAttackerDebuff(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	en := addEnemy(f, 200, 100)
	other := addEnemy(f, 300, 100)

	h.HP = 50
	h.ApplyDebuff(skill.NewDebuff(&data.DebuffTemplate{
		ID:         "vital_points",
		DurationMs: 5000,
		Effects:    data.Effects{BonusDamageFromMissingHPPercent: 20},
	}, en.ID, h.ID, 0))

	res := h.TakeDamage(f.Rand, 10, en.Entity)
	assert.Equal(t, 20.0, res.Damage, "10 raw plus 20% of 50 missing")
	assert.Equal(t, 20.0, en.DamageDealt)

	res = h.TakeDamage(f.Rand, 10, other.Entity)
	assert.Equal(t, 10.0, res.Damage, "only the debuff source gets the bonus")
}

func TestTakeDamage_Death(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	h.HP = 10

	h.TakeDamage(f.Rand, 25, nil)

	assert.False(t, h.Alive)
	assert.Zero(t, h.HP)
	assert.Equal(t, 25.0, h.DamageTaken)
}

func TestRecalculateStats_PreservesHPRatio(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	h.HP = 50

	buff := skill.NewBuff("vigor", "Vigor", 5000, data.Effects{VigorFlat: 10}, h.ID, h.ID, 0)
	h.ApplyBuff(buff)
	require.Equal(t, 208.0, h.MaxHP())
	assert.Equal(t, 104.0, h.HP)

	h.RemoveBuff(buff)
	assert.Equal(t, 100.0, h.MaxHP())
	assert.Equal(t, 50.0, h.HP)
}

func TestRecalculateStats_LivingKeepsOneHP(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})

	buff := skill.NewBuff("vigor", "Vigor", 5000, data.Effects{VigorFlat: 10}, h.ID, h.ID, 0)
	h.ApplyBuff(buff)
	h.HP = 1

	h.RemoveBuff(buff)
	assert.Equal(t, 1.0, h.HP)
	assert.True(t, h.Alive)
}

func TestTick_ExpiresModifiersAndRecalculates(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	h.ApplyBuff(skill.NewBuff("vigor", "Vigor", 100, data.Effects{VigorFlat: 10}, h.ID, h.ID, 0))
	require.Equal(t, 208.0, h.MaxHP())

	f.Begin(200, 200)
	h.tick(f)

	assert.Equal(t, 100.0, h.MaxHP())
	assert.Empty(t, h.Modifiers().Buffs())
	require.NotEmpty(t, f.Events())
	assert.Equal(t, EventExpired, f.Events()[0].Kind)
}

func TestTick_CooldownsCountDown(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	h.SetCooldown("a", 1000)

	f.Begin(600, 600)
	h.tick(f)
	assert.Equal(t, 400.0, h.Cooldown("a"))

	f.Begin(1200, 600)
	h.tick(f)
	assert.Zero(t, h.Cooldown("a"))
}

func TestFindTarget(t *testing.T) {
	t.Run("nearest living visible", func(t *testing.T) {
		f := testFrame()
		h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
		near := addEnemy(f, 150, 100)
		far := addEnemy(f, 400, 100)

		assert.Same(t, near.Entity, h.FindTarget(f, f.Side(SideEnemy), false))

		near.ApplyBuff(skill.NewBuff("stealth", "Stealth", 5000, data.Effects{Invisible: true}, near.ID, near.ID, 0))
		h.TargetID = 0
		assert.Same(t, far.Entity, h.FindTarget(f, f.Side(SideEnemy), false))
	})

	t.Run("taunt overrides distance", func(t *testing.T) {
		f := testFrame()
		near := addHero(f, 150, 100, meleeClass(), data.BaseStats{})
		taunter := addHero(f, 500, 100, meleeClass(), data.BaseStats{})
		en := addEnemy(f, 100, 100)

		en.ApplyDebuff(skill.NewDebuff(&data.DebuffTemplate{
			ID: "taunt", DurationMs: 3000, Effects: data.Effects{Taunted: true},
		}, taunter.ID, en.ID, 0))

		assert.Same(t, taunter.Entity, en.FindTarget(f, f.Side(SideHero), true))
		assert.NotSame(t, near.Entity, en.FindTarget(f, f.Side(SideHero), true))
	})

	t.Run("enemies focus guardians", func(t *testing.T) {
		f := testFrame()
		addHero(f, 150, 100, meleeClass(), data.BaseStats{})
		guard := meleeClass()
		guard.ID = data.ClassGuardian
		g := addHero(f, 400, 100, guard, data.BaseStats{})
		en := addEnemy(f, 100, 100)

		assert.Same(t, g.Entity, en.FindTarget(f, f.Side(SideHero), true))
	})

	t.Run("keeps current target within reach", func(t *testing.T) {
		f := testFrame()
		h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
		cur := addEnemy(f, 155, 100)
		addEnemy(f, 140, 100)

		h.TargetID = cur.ID
		assert.Same(t, cur.Entity, h.FindTarget(f, f.Side(SideEnemy), false))
	})
}

func TestAttack_IntervalGating(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	en := addEnemy(f, 130, 100)

	_, ok := h.Attack(f, en.Entity, true)
	require.True(t, ok)

	f.Begin(500, 500)
	_, ok = h.Attack(f, en.Entity, true)
	assert.False(t, ok)

	f.Begin(1000, 500)
	_, ok = h.Attack(f, en.Entity, true)
	assert.True(t, ok)
}

func TestAttack_ConsumesNextAttackModifier(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	en := addEnemy(f, 130, 100)
	h.ApplyBuff(skill.NewBuff("precise", "Precise Strike", 10000, data.Effects{
		NextAttackCrit:                    true,
		NextAttackBonusPercentTargetMaxHP: 10,
	}, h.ID, h.ID, 0))

	res, ok := h.Attack(f, en.Entity, true)
	require.True(t, ok)

	assert.True(t, res.Crit)
	assert.Equal(t, 40.0, res.Damage, "20 * 1.5 + 10% of 100")
	assert.Empty(t, h.Modifiers().Buffs())
	assert.Nil(t, res.Projectile)
}

func TestAttack_Vampirism(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{Vampirism: 50})
	en := addEnemy(f, 130, 100)
	h.HP = 50

	res, ok := h.Attack(f, en.Entity, true)
	require.True(t, ok)

	assert.Equal(t, 10.0, res.LifeStolen)
	assert.Equal(t, 60.0, h.HP)
	assert.Zero(t, h.HealingDone, "hero life steal is not reported as healing")
}

func TestAttack_EnemyVampirismCountsAsHealing(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	en := f.AddEnemy(func(id uint32) *Enemy {
		tmpl := enemyTemplate()
		tmpl.BaseStats = data.BaseStats{Vampirism: 50}
		return NewEnemy(id, 130, 100, tmpl, 1)
	})
	en.HP = 50

	res, ok := en.Attack(f, h.Entity, false)
	require.True(t, ok)

	assert.Equal(t, 5.0, res.LifeStolen)
	assert.Equal(t, 55.0, en.HP)
	assert.Equal(t, 5.0, en.HealingDone)
}

func TestAttack_RangedSpawnsProjectile(t *testing.T) {
	f := testFrame()
	cls := meleeClass()
	cls.Weapon = "staff"
	cls.Range = 200
	h := addHero(f, 100, 100, cls, data.BaseStats{})
	en := addEnemy(f, 250, 100)

	res, ok := h.Attack(f, en.Entity, true)
	require.True(t, ok)
	require.NotNil(t, res.Projectile)

	assert.Equal(t, en.ID, res.Projectile.TargetID)
	assert.Equal(t, 8.0, res.Projectile.Size)
	assert.Equal(t, 100.0, en.HP, "damage lands when the projectile arrives")
}

func TestMoveToward_ImmobileAndClamped(t *testing.T) {
	f := testFrame()
	h := addHero(f, 790, 100, meleeClass(), data.BaseStats{})

	h.MoveToward(f, 2000, 100)
	assert.Equal(t, 800-h.Size()/2, h.X)

	h.ApplyDebuff(skill.NewStun("stun", 1000, 0, h.ID, 0))
	require.True(t, h.Immobile())
	h.MoveToward(f, 0, 100)
	assert.Equal(t, 800-h.Size()/2, h.X)
}

func TestUpdateStuck_StartsDetour(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	en := addEnemy(f, 600, 100)
	h.TargetID = en.ID

	for range StuckThresholdTicks - 1 {
		h.updateStuck(f)
	}
	assert.False(t, h.Detouring())

	h.updateStuck(f)
	assert.True(t, h.Detouring())
}

func burning(casterID, targetID uint32, perTick float64) *skill.Modifier {
	m := skill.NewDebuff(&data.DebuffTemplate{ID: "mage_fireball_burn", Name: "Burn", DurationMs: 5000}, casterID, targetID, 0)
	m.Dot = &skill.DotInstance{TickIntervalMs: 1000, DamagePerTick: perTick, CasterID: casterID}
	return m
}

func TestTick_DotFiresOnInterval(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	en := addEnemy(f, 500, 100)
	en.ApplyDebuff(burning(h.ID, en.ID, 3))
	dot := en.Modifiers().Debuff("mage_fireball_burn")
	require.NotNil(t, dot)

	steps := []struct {
		now    float64
		wantHP float64
		lastAt float64
	}{
		{now: 500, wantHP: 100, lastAt: 0},
		{now: 1000, wantHP: 97, lastAt: 1000},
		{now: 1500, wantHP: 97, lastAt: 1000},
		{now: 2000, wantHP: 94, lastAt: 2000},
	}
	for _, st := range steps {
		f.Begin(st.now, 500)
		en.tick(f)
		assert.Equal(t, st.wantHP, en.HP, "hp at %v", st.now)
		assert.Equal(t, st.lastAt, dot.LastTickAt, "last tick at %v", st.now)
	}

	assert.Equal(t, 6.0, h.DamageDealt, "caster is credited")
	assert.Equal(t, 6.0, en.DamageTaken)

	f.Begin(3000, 1000)
	en.tick(f)
	events := f.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, EventHit, events[0].Kind)
	assert.Equal(t, h.ID, events[0].SourceID)
	assert.Equal(t, "mage_fireball_burn", events[0].Ability)
}

func whirlwind(h *Hero, crit bool) *skill.Modifier {
	return skill.NewBuff("warrior_whirlwind", "Whirlwind", 5000, data.Effects{
		Immobile: true,
		Aura:     &data.Aura{TickIntervalMs: 500, DamageMultiplier: 0.5, Radius: 80, Crit: crit},
	}, h.ID, h.ID, 0)
}

func TestTick_AuraHitsLivingEnemiesInRadius(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	near := addEnemy(f, 150, 100)
	dead := addEnemy(f, 120, 100)
	dead.Alive = false
	dead.HP = 0
	far := addEnemy(f, 300, 100)
	aura := whirlwind(h, false)
	h.ApplyBuff(aura)

	f.Begin(250, 250)
	h.tick(f)
	assert.Equal(t, 100.0, near.HP, "no pulse before the interval")
	assert.Zero(t, aura.LastTickAt)

	f.Begin(500, 250)
	h.tick(f)
	assert.Equal(t, 90.0, near.HP, "half of 20 class damage")
	assert.Equal(t, 500.0, aura.LastTickAt)

	f.Begin(750, 250)
	h.tick(f)
	assert.Equal(t, 90.0, near.HP)

	f.Begin(1000, 250)
	h.tick(f)
	assert.Equal(t, 80.0, near.HP)
	assert.Equal(t, 1000.0, aura.LastTickAt)

	assert.Equal(t, 100.0, far.HP, "outside the radius")
	assert.Zero(t, dead.HP)
	assert.Zero(t, dead.DamageTaken)
	assert.Equal(t, 20.0, h.DamageDealt)
	assert.True(t, near.Aggroed, "aura damage provokes")
}

func TestTick_AuraCrit(t *testing.T) {
	f := testFrame()
	h := addHero(f, 100, 100, meleeClass(), data.BaseStats{})
	en := addEnemy(f, 150, 100)
	h.ApplyBuff(whirlwind(h, true))

	f.Begin(500, 500)
	h.tick(f)

	assert.Equal(t, 85.0, en.HP, "10 with the default 50% crit damage")
	var hits []Event
	for _, ev := range f.Events() {
		if ev.Kind == EventHit {
			hits = append(hits, ev)
		}
	}
	require.Len(t, hits, 1)
	assert.True(t, hits[0].Crit)
	assert.Equal(t, "warrior_whirlwind", hits[0].Ability)
}
