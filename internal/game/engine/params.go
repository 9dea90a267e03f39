package engine

import (
	"github.com/udisondev/elemental/internal/game/damage"
	"github.com/udisondev/elemental/internal/game/nature"
	"github.com/udisondev/elemental/internal/game/pointroll"
	"github.com/udisondev/elemental/internal/game/scorched"
	"github.com/udisondev/elemental/internal/game/steam"
	"github.com/udisondev/elemental/internal/game/wetness"
)

// Params is the full set of tunables the engine runs with, already
// converted to ticks.
type Params struct {
	TicksPerSecond int

	// Sampling cadences, in ticks.
	WetnessSampleInterval int
	SteamSampleInterval   int
	CompactInterval       int

	// Points
	MaxTotalPoints int // aggregate cap on element totals, 0 = none
	PointsStep     int
	Tiers          pointroll.Tiers

	Damage   damage.Params
	Wetness  wetness.Params
	Scorched scorched.Params
	Nature   nature.Params

	Trigger                 steam.TriggerParams
	SelfDryingCooldownTicks int
	Clouds                  steam.CloudParams
	Effects                 steam.EffectParams
	Defense                 steam.DefenseParams

	Immunity Immunity
}

// Immunity excludes entities from every reaction.
type Immunity struct {
	EntityTypes map[string]struct{}
	Dimensions  map[string]struct{}
}

// Excludes reports whether an entity of entityType in dimension is exempt.
func (im Immunity) Excludes(entityType, dimension string) bool {
	if _, ok := im.EntityTypes[entityType]; ok {
		return true
	}
	_, ok := im.Dimensions[dimension]
	return ok
}

// Settings supplies the current tunables. Called at the start of every
// tick and hit, so it must be cheap; returning the same pointer means
// nothing changed.
type Settings interface {
	EngineParams() *Params
}

// StaticSettings serves a fixed parameter set.
type StaticSettings struct {
	P *Params
}

func (s StaticSettings) EngineParams() *Params { return s.P }
