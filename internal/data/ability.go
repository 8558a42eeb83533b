package data

// TargetType tells the AI how an ability selects what it affects.
type TargetType string

const (
	TargetSelf         TargetType = "self"
	TargetSingleEnemy  TargetType = "single_enemy"
	TargetConeEnemy    TargetType = "cone_enemy"
	TargetAroundSelf   TargetType = "aoe_around_self"
	TargetAroundTarget TargetType = "aoe_around_target"
	TargetNone         TargetType = "none"
)

// Ability is an activatable hero skill template.
type Ability struct {
	ID         string       `yaml:"id"`
	Name       string       `yaml:"name"`
	CooldownMs float64      `yaml:"cooldown_ms"`
	DurationMs float64      `yaml:"duration_ms"`
	TargetType TargetType   `yaml:"target_type"`
	Props      AbilityProps `yaml:"props"`
}

// Duration returns DurationMs, or def when the template leaves it unset.
func (a *Ability) Duration(def float64) float64 {
	return Or(a.DurationMs, def)
}

// AbilityProps is the union of tunables used by ability handlers.
// Handlers fall back to their own defaults for zero values.
type AbilityProps struct {
	BonusPercentTargetMaxHP float64 `yaml:"bonus_percent_target_max_hp"`
	BonusPercentCasterMaxHP float64 `yaml:"bonus_percent_caster_max_hp"`
	DamageBaseMultiplier    float64 `yaml:"damage_base_multiplier"`
	LethalityMultiplier     float64 `yaml:"lethality_multiplier"`

	Radius         float64 `yaml:"radius"`
	Range          float64 `yaml:"range"`
	ConeAngle      float64 `yaml:"cone_angle"`
	NumProjectiles int     `yaml:"num_projectiles"`
	Piercing       bool    `yaml:"piercing"`
	LifetimeMs     float64 `yaml:"lifetime_ms"`

	StunDurationMs   float64 `yaml:"stun_duration_ms"`
	DebuffDurationMs float64 `yaml:"debuff_duration_ms"`
	BuffDurationMs   float64 `yaml:"buff_duration_ms"`

	ResistanceBonusFlat        float64 `yaml:"resistance_bonus_flat"`
	ResistanceReductionPercent float64 `yaml:"resistance_reduction_percent"`

	ShieldPercentCasterMaxHP  float64 `yaml:"shield_percent_caster_max_hp"`
	ConditionalVigorPercent   float64 `yaml:"conditional_vigor_percent"`
	HealthThresholdPercent    float64 `yaml:"health_threshold_percent"`
	HealPercentMaxHPBelowHalf float64 `yaml:"heal_percent_max_hp_below_half"`

	HitIntervalMs          float64 `yaml:"hit_interval_ms"`
	NumberOfHits           int     `yaml:"number_of_hits"`
	CritFromStealth        bool    `yaml:"crit_from_stealth"`
	StealthBonusMultiplier float64 `yaml:"stealth_bonus_multiplier"`

	DamagePerStackMultiplier float64 `yaml:"damage_per_stack_multiplier"`
	DamagePercentMissingHP   float64 `yaml:"damage_percent_missing_hp"`
	ConsumesDebuffID         string  `yaml:"consumes_debuff_id"`

	// Buff is the modifier bundle self or party buffs apply.
	Buff *Effects `yaml:"buff"`
	// Debuff is attached to hits landed by the ability.
	Debuff *DebuffTemplate `yaml:"debuff"`
}

// DebuffTemplate is the content-side description of a debuff.
type DebuffTemplate struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	DurationMs float64 `yaml:"duration_ms"`
	MaxStacks  int     `yaml:"max_stacks"`
	Effects    Effects `yaml:"effects"`
}

// Or returns v unless it is zero, in which case def is returned.
func Or(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
