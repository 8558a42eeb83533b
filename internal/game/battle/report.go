package battle

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/udisondev/herobattle/internal/model"
)

// HeroStats is the per-hero section of a combat report.
type HeroStats struct {
	IsDead           bool    `json:"isDead"`
	DamageDealt      float64 `json:"damageDealt"`
	HealingDone      float64 `json:"healingDone"`
	ShieldingGranted float64 `json:"shieldingGranted"`
	DamageTaken      float64 `json:"damageTaken"`
}

// Kill counts defeated enemies of one template.
type Kill struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// Report is the combat report produced once when a battle ends.
type Report struct {
	HeroStats     map[string]HeroStats `json:"heroStats"`
	EnemiesKilled map[string]Kill      `json:"enemiesKilled"`
}

// Result is the termination signal handed to listeners.
type Result struct {
	BattleID   uuid.UUID `json:"battleId"`
	Won        bool      `json:"won"`
	Biome      string    `json:"biome"`
	Level      int       `json:"level"`
	Boss       bool      `json:"boss"`
	Report     Report    `json:"report"`
	DurationMs float64   `json:"durationMs"`
}

// buildReport snapshots hero accumulators and kill counts. Heroes sharing a
// class name are disambiguated by suffixing their id.
func buildReport(heroes []*model.Hero, kills map[string]Kill) Report {
	r := Report{
		HeroStats:     make(map[string]HeroStats, len(heroes)),
		EnemiesKilled: make(map[string]Kill, len(kills)),
	}
	for _, h := range heroes {
		name := h.Name()
		if _, dup := r.HeroStats[name]; dup {
			name = name + " #" + strconv.FormatUint(uint64(h.ID), 10)
		}
		r.HeroStats[name] = HeroStats{
			IsDead:           !h.Alive,
			DamageDealt:      h.DamageDealt,
			HealingDone:      h.HealingDone,
			ShieldingGranted: h.ShieldingGranted,
			DamageTaken:      h.DamageTaken,
		}
	}
	for name, k := range kills {
		r.EnemiesKilled[name] = k
	}
	return r
}
