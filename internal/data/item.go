package data

// Slot is an equipment slot.
type Slot string

const (
	SlotWeapon      Slot = "weapon"
	SlotArmor       Slot = "armor"
	SlotRing        Slot = "ring"
	SlotEnchantment Slot = "enchantment"
)

// Item is an equippable item. Only its stat bonuses matter to combat.
type Item struct {
	Name          string    `yaml:"name" json:"name"`
	Type          string    `yaml:"type" json:"type"`
	Tier          int       `yaml:"tier" json:"tier"`
	Bonuses       BaseStats `yaml:"bonuses" json:"bonuses"`
	EquipsToClass ClassID   `yaml:"equips_to_class,omitempty" json:"equipsToClass,omitempty"`
}

// Slot returns the slot the item occupies.
func (i *Item) Slot() Slot {
	switch i.Type {
	case "armor":
		return SlotArmor
	case "ring":
		return SlotRing
	case "enchantment":
		return SlotEnchantment
	default:
		return SlotWeapon
	}
}

// Equipment is the set of items worn by the player hero.
type Equipment map[Slot]*Item

// Bonuses sums the stat bonuses across all equipped slots.
func (e Equipment) Bonuses() BaseStats {
	var sum BaseStats
	for _, it := range e {
		if it != nil {
			sum = sum.Add(it.Bonuses)
		}
	}
	return sum
}

// WeaponType returns the type of the equipped weapon, or "" when unarmed.
func (e Equipment) WeaponType() string {
	if w := e[SlotWeapon]; w != nil {
		return w.Type
	}
	return ""
}

// Player is the persistent player profile consumed by level setup.
type Player struct {
	Name      string    `yaml:"name" json:"name"`
	BaseStats BaseStats `yaml:"base_stats" json:"baseStats"`
	Equipment Equipment `yaml:"-" json:"-"`
}
