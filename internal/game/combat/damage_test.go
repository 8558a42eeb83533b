package combat

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMitigate(t *testing.T) {
	tests := []struct {
		name       string
		raw        float64
		resistance float64
		want       float64
	}{
		{"no resistance", 100, 0, 100},
		{"resistance 100 halves", 100, 100, 50},
		{"floor at 1", 1, 1000, 1},
		{"negative resistance amplifies", 100, -50, 200},
		{"clamped at -99", 100, -500, 10000},
		{"rounds half up", 3, 100, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mitigate(tt.raw, tt.resistance))
		})
	}
}

func TestMitigate_MonotonicInResistance(t *testing.T) {
	for _, raw := range []float64{1, 7, 100, 2500} {
		prev := math.Inf(1)
		for res := -99.0; res <= 500; res += 3 {
			got := Mitigate(raw, res)
			assert.LessOrEqual(t, got, prev, "raw=%v res=%v", raw, res)
			assert.GreaterOrEqual(t, got, 1.0)
			prev = got
		}
	}
}

func TestCrit(t *testing.T) {
	assert.Equal(t, 1.5, CritMultiplier(0))
	assert.Equal(t, 2.0, CritMultiplier(100))
	assert.Equal(t, 41.0, ApplyCrit(27, 50))
}

func TestLifeSteal(t *testing.T) {
	assert.Equal(t, 10.0, LifeSteal(100, 10, false))
	assert.Equal(t, 5.0, LifeSteal(100, 10, true))
	assert.Equal(t, 4.0, LifeSteal(33, 10, false))
	assert.Zero(t, LifeSteal(100, 0, false))
}

func TestRoll(t *testing.T) {
	rng := rand.New(rand.NewChaCha8([32]byte{1}))
	assert.False(t, Roll(rng, 0))
	assert.True(t, Roll(rng, 100))

	hits := 0
	for range 10000 {
		if Roll(rng, 25) {
			hits++
		}
	}
	assert.InDelta(t, 2500, hits, 300)
}

func TestInCone(t *testing.T) {
	quarter := Radians(90)

	assert.True(t, InCone(0, 0, 50, 0, 60, quarter, 0))
	assert.True(t, InCone(0, 0, 40, 30, 60, quarter, 0), "inside 45° half angle")
	assert.False(t, InCone(0, 0, 30, 40, 60, quarter, 0), "outside 45° half angle")
	assert.False(t, InCone(0, 0, 70, 0, 60, quarter, 0), "out of range")
	assert.False(t, InCone(0, 0, 0, 0, 60, quarter, 0), "same position")
	assert.True(t, InCone(0, 0, -50, 1, 60, quarter, math.Pi), "wraps around ±π")
}
