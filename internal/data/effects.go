package data

// Effects is the tagged bundle carried by a buff or debuff. Every field is
// optional; zero means "not present".
//
// Percent fields for lethality, vigor, resistance and move speed are pooled
// and applied multiplicatively. Attack speed, crit chance, crit damage and
// dodge percents are added as raw points.
type Effects struct {
	LethalityPercent  float64 `yaml:"lethality_percent,omitempty" json:"lethalityPercent,omitempty"`
	VigorPercent      float64 `yaml:"vigor_percent,omitempty" json:"vigorPercent,omitempty"`
	ResistancePercent float64 `yaml:"resistance_percent,omitempty" json:"resistancePercent,omitempty"`
	MoveSpeedPercent  float64 `yaml:"move_speed_percent,omitempty" json:"moveSpeedPercent,omitempty"`

	AttackSpeedPercent float64 `yaml:"attack_speed_percent,omitempty" json:"attackSpeedPercent,omitempty"`
	CritChancePercent  float64 `yaml:"crit_chance_percent,omitempty" json:"critChancePercent,omitempty"`
	CritDamagePercent  float64 `yaml:"crit_damage_percent,omitempty" json:"critDamagePercent,omitempty"`
	DodgePercent       float64 `yaml:"dodge_percent,omitempty" json:"dodgePercent,omitempty"`

	RangePercent float64 `yaml:"range_percent,omitempty" json:"rangePercent,omitempty"`

	LethalityFlat  float64 `yaml:"lethality_flat,omitempty" json:"lethalityFlat,omitempty"`
	VigorFlat      float64 `yaml:"vigor_flat,omitempty" json:"vigorFlat,omitempty"`
	ResistanceFlat float64 `yaml:"resistance_flat,omitempty" json:"resistanceFlat,omitempty"`

	// ResistanceReductionPercent subtracts raw points from resistance per stack.
	ResistanceReductionPercent float64 `yaml:"resistance_reduction_percent,omitempty" json:"resistanceReductionPercent,omitempty"`

	Immobile     bool `yaml:"immobile,omitempty" json:"immobile,omitempty"`
	Invisible    bool `yaml:"invisible,omitempty" json:"invisible,omitempty"`
	Invulnerable bool `yaml:"invulnerable,omitempty" json:"invulnerable,omitempty"`
	Taunted      bool `yaml:"taunted,omitempty" json:"taunted,omitempty"`

	BlockCharges int `yaml:"block_charges,omitempty" json:"blockCharges,omitempty"`

	// BonusDamageFromMissingHPPercent adds a share of the bearer's missing HP
	// to every hit dealt by the debuff source.
	BonusDamageFromMissingHPPercent float64 `yaml:"bonus_damage_from_missing_hp_percent,omitempty" json:"bonusDamageFromMissingHpPercent,omitempty"`

	NextAttackCrit                    bool    `yaml:"next_attack_crit,omitempty" json:"nextAttackCrit,omitempty"`
	NextAttackBonusPercentTargetMaxHP float64 `yaml:"next_attack_bonus_percent_target_max_hp,omitempty" json:"nextAttackBonusPercentTargetMaxHp,omitempty"`
	NextAttackSplash                  *Splash `yaml:"next_attack_splash,omitempty" json:"nextAttackSplash,omitempty"`

	MultiShot *MultiShot   `yaml:"multi_shot,omitempty" json:"multiShot,omitempty"`
	Dot       *DotTemplate `yaml:"dot,omitempty" json:"dot,omitempty"`
	Aura      *Aura        `yaml:"aura,omitempty" json:"aura,omitempty"`
	Dash      *Dash        `yaml:"dash,omitempty" json:"dash,omitempty"`
}

// Splash re-applies a share of a hit to everything around the primary target.
type Splash struct {
	Radius           float64 `yaml:"radius" json:"radius"`
	DamageMultiplier float64 `yaml:"damage_multiplier" json:"damageMultiplier"`
	SpreadsDebuffID  string  `yaml:"spreads_debuff_id,omitempty" json:"spreadsDebuffId,omitempty"`
}

// MultiShot makes single-target shots hit up to Count targets.
type MultiShot struct {
	Count int `yaml:"count" json:"count"`
}

// DotTemplate describes damage over time. The per-tick amount is computed
// from caster and target stats when the debuff lands.
type DotTemplate struct {
	TickIntervalMs        float64 `yaml:"tick_interval_ms" json:"tickIntervalMs"`
	PercentOfTargetMaxHP  float64 `yaml:"percent_of_target_max_hp" json:"percentOfTargetMaxHp"`
	PercentOfCasterDamage float64 `yaml:"percent_of_caster_damage" json:"percentOfCasterDamage"`
}

// Aura is a channeled periodic damage field around the bearer.
type Aura struct {
	TickIntervalMs   float64 `yaml:"tick_interval_ms" json:"tickIntervalMs"`
	DamageMultiplier float64 `yaml:"damage_multiplier" json:"damageMultiplier"`
	Radius           float64 `yaml:"radius" json:"radius"`
	Crit             bool    `yaml:"crit" json:"crit"`
}

// Dash overrides movement toward a captured target until contact.
type Dash struct {
	SpeedMultiplier float64   `yaml:"speed_multiplier" json:"speedMultiplier"`
	OnHit           DashOnHit `yaml:"on_hit" json:"onHit"`
}

// DashOnHit is the payload resolved when a dash reaches its target.
type DashOnHit struct {
	LethalityMultiplier float64 `yaml:"lethality_multiplier" json:"lethalityMultiplier"`
	VigorMultiplier     float64 `yaml:"vigor_multiplier" json:"vigorMultiplier"`
	AlwaysCrit          bool    `yaml:"always_crit" json:"alwaysCrit"`
	StunDurationMs      float64 `yaml:"stun_duration_ms" json:"stunDurationMs"`
}

// Clone returns a deep copy so that per-instance mutation (block charges,
// spread debuffs) never leaks back into a template.
func (e Effects) Clone() Effects {
	c := e
	if e.NextAttackSplash != nil {
		s := *e.NextAttackSplash
		c.NextAttackSplash = &s
	}
	if e.MultiShot != nil {
		m := *e.MultiShot
		c.MultiShot = &m
	}
	if e.Dot != nil {
		d := *e.Dot
		c.Dot = &d
	}
	if e.Aura != nil {
		a := *e.Aura
		c.Aura = &a
	}
	if e.Dash != nil {
		d := *e.Dash
		c.Dash = &d
	}
	return c
}

// IsAttackModifier reports whether the bundle alters the bearer's next basic attack.
func (e Effects) IsAttackModifier() bool {
	return e.NextAttackCrit || e.NextAttackBonusPercentTargetMaxHP > 0
}
