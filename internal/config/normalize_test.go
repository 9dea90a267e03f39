package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/elemental/internal/game/pointroll"
)

func TestNormalize_DefaultsUntouched(t *testing.T) {
	cfg := DefaultEngine()
	assert.Zero(t, cfg.Normalize())
	assert.Equal(t, DefaultEngine(), cfg)
}

func TestNormalize_ClampsOutOfRange(t *testing.T) {
	cfg := DefaultEngine()
	cfg.TicksPerSecond = 0
	cfg.Damage.RestraintFloorRatio = 1.7
	cfg.Restraint.StrongMultiplier = 0.5
	cfg.Restraint.WeakMultiplier = 3
	cfg.Wetness.MaxLevel = -2
	cfg.Scorched.ScalingStep = 0
	cfg.Steam.SelfDryingPenaltyRatio = -0.2
	cfg.Points.Step = 0
	cfg.Points.Tiers = []float64{1, 2}
	cfg.RandomRolls.Chance = 4

	fixed := cfg.Normalize()

	assert.Equal(t, 10, fixed)
	assert.Equal(t, 1, cfg.TicksPerSecond)
	assert.InDelta(t, 1.0, cfg.Damage.RestraintFloorRatio, 1e-9)
	assert.InDelta(t, 1.0, cfg.Restraint.StrongMultiplier, 1e-9)
	assert.InDelta(t, 1.0, cfg.Restraint.WeakMultiplier, 1e-9)
	assert.Equal(t, 1, cfg.Wetness.MaxLevel)
	assert.InDelta(t, 1.0, cfg.Scorched.ScalingStep, 1e-9)
	assert.Zero(t, cfg.Steam.SelfDryingPenaltyRatio)
	assert.Equal(t, 1, cfg.Points.Step)
	def := pointroll.DefaultTiers()
	assert.Equal(t, def[:], cfg.Points.Tiers)
	assert.InDelta(t, 1.0, cfg.RandomRolls.Chance, 1e-9)
}

func TestValidTiers(t *testing.T) {
	assert.True(t, validTiers([]float64{1, 1, 1, 1, 1}))
	assert.True(t, validTiers([]float64{0, 0, 0, 0, 1}))
	assert.False(t, validTiers([]float64{0, 0, 0, 0, 0}))
	assert.False(t, validTiers([]float64{1, 1, 1, -1, 1}))
	assert.False(t, validTiers(nil))
}
