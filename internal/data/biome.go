package data

const defaultEnemySize = 20

// EnemyTemplate describes a regular enemy or a boss.
type EnemyTemplate struct {
	Name             string    `yaml:"name"`
	Emoji            string    `yaml:"emoji"`
	BaseHP           float64   `yaml:"base_hp"`
	BaseDamage       float64   `yaml:"base_damage"`
	Range            float64   `yaml:"range"`
	AttackIntervalMs float64   `yaml:"attack_interval_ms"`
	MoveSpeed        float64   `yaml:"move_speed"`
	Size             float64   `yaml:"size"`
	Boss             bool      `yaml:"boss"`
	BaseStats        BaseStats `yaml:"base_stats"`
}

// BodySize returns the collision diameter of the enemy.
func (t *EnemyTemplate) BodySize() float64 {
	return Or(t.Size, defaultEnemySize)
}

// Biome groups the enemies of one map region.
type Biome struct {
	ID      string          `yaml:"id"`
	Name    string          `yaml:"name"`
	Boss    EnemyTemplate   `yaml:"boss"`
	Enemies []EnemyTemplate `yaml:"enemies"`
}
