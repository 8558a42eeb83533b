package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadContent(t *testing.T) {
	c, err := LoadContent()
	require.NoError(t, err)

	assert.Len(t, c.Classes, 6)
	assert.Len(t, c.Biomes, 4)
	assert.Len(t, c.Abilities, 22)

	warrior, ok := c.Class(ClassWarrior)
	require.True(t, ok)
	assert.Equal(t, 450.0, warrior.HP)
	assert.Equal(t, 1000.0, warrior.AttackInterval())
	assert.Equal(t, 25.0, warrior.BodySize())

	guardian, ok := c.Class(ClassGuardian)
	require.True(t, ok)
	assert.Equal(t, 30.0, guardian.BodySize())

	for _, cl := range c.Classes {
		assert.Len(t, c.AbilitiesOf(cl), len(cl.Abilities), "class %s", cl.ID)
	}
}

func TestContentAbilityTemplates(t *testing.T) {
	c, err := LoadContent()
	require.NoError(t, err)

	shot, ok := c.Ability("archer_precise_shot")
	require.True(t, ok)
	require.NotNil(t, shot.Props.Debuff)
	assert.Equal(t, "debuff_marked", shot.Props.Debuff.ID)
	assert.Equal(t, 5, shot.Props.Debuff.MaxStacks)
	assert.Equal(t, 5.0, shot.Props.Debuff.Effects.ResistanceReductionPercent)

	fireball, ok := c.Ability("mage_fireball")
	require.True(t, ok)
	require.NotNil(t, fireball.Props.Debuff.Effects.Dot)
	assert.Equal(t, 1000.0, fireball.Props.Debuff.Effects.Dot.TickIntervalMs)

	whirl, ok := c.Ability("warrior_whirlwind")
	require.True(t, ok)
	require.NotNil(t, whirl.Props.Buff)
	assert.True(t, whirl.Props.Buff.Immobile)
	assert.Equal(t, 80.0, whirl.Props.Buff.Aura.Radius)

	slow, ok := c.Ability("mage_frost_explosion")
	require.True(t, ok)
	assert.Equal(t, -30.0, slow.Props.Debuff.Effects.MoveSpeedPercent)
	assert.Equal(t, TargetAroundTarget, slow.TargetType)
}

func TestContentBiomes(t *testing.T) {
	c, err := LoadContent()
	require.NoError(t, err)

	swamp, ok := c.Biome("swamp")
	require.True(t, ok)
	assert.True(t, swamp.Boss.Boss)
	assert.Equal(t, 55.0, swamp.Boss.BodySize())

	var tortoise *EnemyTemplate
	for i := range swamp.Enemies {
		if swamp.Enemies[i].Name == "Ancestral Tortoise" {
			tortoise = &swamp.Enemies[i]
		}
	}
	require.NotNil(t, tortoise)
	assert.Equal(t, 30.0, tortoise.BaseStats.Resistance)
	assert.Equal(t, 20.0, swamp.Enemies[0].BodySize())
}

func TestContentEquip(t *testing.T) {
	c, err := LoadContent()
	require.NoError(t, err)

	eq, err := c.Equip("Elven Bow", "Rustic Boots")
	require.NoError(t, err)
	assert.Equal(t, "bow", eq.WeaponType())
	assert.Equal(t, ClassArcher, ClassForWeapon(eq.WeaponType()))

	b := eq.Bonuses()
	assert.Equal(t, 3.0, b.Lethality)
	assert.Equal(t, 30.0, b.Vigor)
	assert.Equal(t, 20.0, b.Resistance)

	_, err = c.Equip("Excalibur")
	assert.Error(t, err)
}

func TestParseContentRejectsDanglingAbility(t *testing.T) {
	raw := []byte(`
classes:
  - id: warrior
    hp: 100
    abilities: [missing_ability]
biomes:
  - id: forest
    enemies:
      - {name: Rabbit, base_hp: 10, base_damage: 1}
`)
	_, err := ParseContent(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing_ability")
}

func TestLoadContentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, embeddedContent, 0o600))

	c, err := LoadContentFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Barbarian King", c.Player.Name)
	assert.Equal(t, 50.0, c.Player.BaseStats.CritDamage)

	_, err = LoadContentFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBaseStatsMerge(t *testing.T) {
	s := DefaultEnemyStats().Merge(BaseStats{Resistance: 30})
	assert.Equal(t, 50.0, s.CritDamage)
	assert.Equal(t, 30.0, s.Resistance)

	sum := s.Add(BaseStats{Resistance: 5, Dodge: 2})
	assert.Equal(t, 35.0, sum.Resistance)
	assert.Equal(t, 2.0, sum.Dodge)
}
