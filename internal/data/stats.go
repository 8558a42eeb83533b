package data

// BaseStats holds the nine primary combat attributes of an entity.
//
// Lethality (letalidade) drives effective damage, Vigor drives max HP,
// Resistance mitigates incoming damage via 100/(100+R). AttackSpeed is a
// percentage bonus over the template attack interval. CritChance, CritDamage,
// Dodge and Vampirism are expressed in percent points.
type BaseStats struct {
	Lethality   float64 `yaml:"lethality" json:"lethality"`
	Vigor       float64 `yaml:"vigor" json:"vigor"`
	Resistance  float64 `yaml:"resistance" json:"resistance"`
	AttackSpeed float64 `yaml:"attack_speed" json:"attackSpeed"`
	MoveSpeed   float64 `yaml:"move_speed" json:"moveSpeed"`
	CritChance  float64 `yaml:"crit_chance" json:"critChance"`
	CritDamage  float64 `yaml:"crit_damage" json:"critDamage"`
	Dodge       float64 `yaml:"dodge" json:"dodge"`
	Vampirism   float64 `yaml:"vampirism" json:"vampirism"`
}

// Add returns the field-wise sum of s and o.
func (s BaseStats) Add(o BaseStats) BaseStats {
	return BaseStats{
		Lethality:   s.Lethality + o.Lethality,
		Vigor:       s.Vigor + o.Vigor,
		Resistance:  s.Resistance + o.Resistance,
		AttackSpeed: s.AttackSpeed + o.AttackSpeed,
		MoveSpeed:   s.MoveSpeed + o.MoveSpeed,
		CritChance:  s.CritChance + o.CritChance,
		CritDamage:  s.CritDamage + o.CritDamage,
		Dodge:       s.Dodge + o.Dodge,
		Vampirism:   s.Vampirism + o.Vampirism,
	}
}

// Merge returns s with every non-zero field of o copied over it.
// Used to layer template overrides onto default stats.
func (s BaseStats) Merge(o BaseStats) BaseStats {
	pick := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	pick(&s.Lethality, o.Lethality)
	pick(&s.Vigor, o.Vigor)
	pick(&s.Resistance, o.Resistance)
	pick(&s.AttackSpeed, o.AttackSpeed)
	pick(&s.MoveSpeed, o.MoveSpeed)
	pick(&s.CritChance, o.CritChance)
	pick(&s.CritDamage, o.CritDamage)
	pick(&s.Dodge, o.Dodge)
	pick(&s.Vampirism, o.Vampirism)
	return s
}

// DefaultEnemyStats are the base stats every enemy template starts from.
func DefaultEnemyStats() BaseStats {
	return BaseStats{CritDamage: 50}
}
