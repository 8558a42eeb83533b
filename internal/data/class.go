package data

// ClassID identifies a hero class.
type ClassID string

const (
	ClassAdventurer ClassID = "adventurer"
	ClassWarrior    ClassID = "warrior"
	ClassMage       ClassID = "mage"
	ClassArcher     ClassID = "archer"
	ClassAssassin   ClassID = "assassin"
	ClassGuardian   ClassID = "guardian"
)

const (
	defaultClassAttackIntervalMs = 1500
	defaultClassSize             = 25
)

// Class is a hero class template.
type Class struct {
	ID               ClassID  `yaml:"id"`
	Name             string   `yaml:"name"`
	Weapon           string   `yaml:"weapon"`
	HP               float64  `yaml:"hp"`
	Damage           float64  `yaml:"damage"`
	Range            float64  `yaml:"range"`
	AttackIntervalMs float64  `yaml:"attack_interval_ms"`
	MoveSpeed        float64  `yaml:"move_speed"`
	Size             float64  `yaml:"size"`
	Abilities        []string `yaml:"abilities"`
}

// AttackInterval returns the template attack interval, defaulting when unset.
func (c *Class) AttackInterval() float64 {
	if c.AttackIntervalMs <= 0 {
		return defaultClassAttackIntervalMs
	}
	return c.AttackIntervalMs
}

// BodySize returns the collision diameter of the class.
func (c *Class) BodySize() float64 {
	if c.Size <= 0 {
		return defaultClassSize
	}
	return c.Size
}

// ClassForWeapon maps an equipped weapon type to the hero class it unlocks.
func ClassForWeapon(weapon string) ClassID {
	switch weapon {
	case "bow":
		return ClassArcher
	case "sword", "axe":
		return ClassWarrior
	case "staff":
		return ClassMage
	case "dagger":
		return ClassAssassin
	case "shield":
		return ClassGuardian
	default:
		return ClassAdventurer
	}
}
