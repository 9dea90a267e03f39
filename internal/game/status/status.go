package status

import "github.com/udisondev/elemental/internal/model"

// Tick is an absolute host tick number.
type Tick int64

// Combatant is the per-entity reaction state. Created lazily on first access
// and destroyed with the entity. Every counter is kept >= 0.
type Combatant struct {
	// Wetness
	WetnessLevel        int
	WetnessRainTimer    int // ticks spent in precipitation since last gain
	WetnessDecayTimer   int // ticks spent dry since last decay step
	WetnessDisplayTicks int // UI countdown until the next decay step

	// Scorched
	ScorchedTicksRemaining int
	ScorchedStrength       int
	ScorchedCooldownUntil  Tick

	// Reaction cooldowns, absolute ticks
	SelfDryingCooldownUntil Tick
	WildfireCooldownUntil   Tick
	ParasiticCooldownUntil  Tick
	ScaldCooldownUntil      Tick

	// Steam condensation dwell counter
	CondensationTicks int

	// Nature infection
	Infected        bool
	InfectionSource model.ObjectID
}

// IsWet reports whether the entity carries any wetness.
func (c *Combatant) IsWet() bool { return c.WetnessLevel > 0 }

// IsScorched reports whether the scorched status is active.
func (c *Combatant) IsScorched() bool { return c.ScorchedTicksRemaining > 0 }

// ClearWetness drops wetness and both wetness timers.
func (c *Combatant) ClearWetness() {
	c.WetnessLevel = 0
	c.WetnessRainTimer = 0
	c.WetnessDecayTimer = 0
	c.WetnessDisplayTicks = 0
	c.CondensationTicks = 0
}

// ClearScorched ends the scorched status. The re-apply cooldown is kept.
func (c *Combatant) ClearScorched() {
	c.ScorchedTicksRemaining = 0
	c.ScorchedStrength = 0
}

// ClearInfection removes the nature infection flag.
func (c *Combatant) ClearInfection() {
	c.Infected = false
	c.InfectionSource = 0
}

// Idle reports whether the status carries no information worth keeping.
// Cooldowns in the past are not worth keeping.
func (c *Combatant) Idle(now Tick) bool {
	return c.WetnessLevel == 0 &&
		c.WetnessRainTimer == 0 &&
		c.ScorchedTicksRemaining == 0 &&
		c.CondensationTicks == 0 &&
		!c.Infected &&
		c.ScorchedCooldownUntil <= now &&
		c.SelfDryingCooldownUntil <= now &&
		c.WildfireCooldownUntil <= now &&
		c.ParasiticCooldownUntil <= now &&
		c.ScaldCooldownUntil <= now
}

// normalize restores the non-negative invariant after external restore.
func (c *Combatant) normalize(maxWetness int) {
	c.WetnessLevel = clampInt(c.WetnessLevel, 0, maxWetness)
	c.WetnessRainTimer = max(c.WetnessRainTimer, 0)
	c.WetnessDecayTimer = max(c.WetnessDecayTimer, 0)
	c.WetnessDisplayTicks = max(c.WetnessDisplayTicks, 0)
	c.ScorchedTicksRemaining = max(c.ScorchedTicksRemaining, 0)
	c.ScorchedStrength = max(c.ScorchedStrength, 0)
	c.CondensationTicks = max(c.CondensationTicks, 0)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if hi >= lo && v > hi {
		return hi
	}
	return v
}
