package wetness

import (
	"log/slog"

	"github.com/udisondev/elemental/internal/game/status"
	"github.com/udisondev/elemental/internal/model"
)

// Params are the wetness tunables, already converted to ticks.
type Params struct {
	MaxLevel           int
	ShallowRatio       float64
	RainGainTicks      int // precipitation exposure needed per level gained
	DecayBaseTicks     int // dry time per level; level L decays after L*DecayBaseTicks
	SplashIncrement    int
	PausedDisplayTicks int // display duration while rain or water pauses decay
}

// Environment is what the host reports about an entity's surroundings.
type Environment struct {
	Immune          bool
	Submersion      model.Submersion
	InPrecipitation bool
}

// Reason explains a wetness transition.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonImmune
	ReasonLiquid
	ReasonRain
	ReasonDecay
	ReasonSplash
	ReasonReaction
)

func (r Reason) String() string {
	switch r {
	case ReasonImmune:
		return "immune"
	case ReasonLiquid:
		return "liquid"
	case ReasonRain:
		return "rain"
	case ReasonDecay:
		return "decay"
	case ReasonSplash:
		return "splash"
	case ReasonReaction:
		return "reaction"
	default:
		return "none"
	}
}

// Transition is the outcome of one state machine step.
type Transition struct {
	From   int
	To     int
	Reason Reason
}

// Changed reports whether the level moved.
func (t Transition) Changed() bool { return t.From != t.To }

// Machine drives wetness accumulation and decay. Stateless apart from its
// parameters; all per-entity state lives in status.Combatant.
type Machine struct {
	p Params
}

// NewMachine creates a Machine, flooring degenerate parameters.
func NewMachine(p Params) *Machine {
	if p.MaxLevel < 1 {
		p.MaxLevel = 1
	}
	if p.RainGainTicks < 1 {
		p.RainGainTicks = 1
	}
	if p.DecayBaseTicks < 1 {
		p.DecayBaseTicks = 1
	}
	if p.ShallowRatio < 0 {
		p.ShallowRatio = 0
	}
	if p.ShallowRatio > 1 {
		p.ShallowRatio = 1
	}
	return &Machine{p: p}
}

// MaxLevel returns the configured maximum wetness level.
func (m *Machine) MaxLevel() int { return m.p.MaxLevel }

// ShallowLevel is the level granted by liquid shallower than the entity.
func (m *Machine) ShallowLevel() int {
	return max(1, int(float64(m.p.MaxLevel)*m.p.ShallowRatio))
}

// Sample advances the state machine by one sampling interval of elapsed
// ticks. Evaluation order: immunity, liquid, precipitation, decay.
func (m *Machine) Sample(st *status.Combatant, env Environment, elapsed int) Transition {
	tr := Transition{From: st.WetnessLevel}
	if elapsed < 1 {
		elapsed = 1
	}

	switch {
	case env.Immune:
		st.ClearWetness()
		tr.Reason = ReasonImmune

	case env.Submersion.InLiquid():
		target := m.p.MaxLevel
		if env.Submersion == model.SubmersionShallow {
			target = m.ShallowLevel()
		}
		// Liquid never lowers a higher level.
		st.WetnessLevel = max(st.WetnessLevel, target)
		st.WetnessRainTimer = 0
		st.WetnessDecayTimer = 0
		tr.Reason = ReasonLiquid

	case env.InPrecipitation:
		st.WetnessDecayTimer = 0
		st.WetnessRainTimer += elapsed
		if st.WetnessRainTimer >= m.p.RainGainTicks {
			st.WetnessLevel = min(st.WetnessLevel+1, m.p.MaxLevel)
			st.WetnessRainTimer = 0
		}
		tr.Reason = ReasonRain

	default:
		st.WetnessRainTimer = 0
		if st.WetnessLevel > 0 {
			st.WetnessDecayTimer += elapsed
			if st.WetnessDecayTimer >= m.decayThreshold(st.WetnessLevel) {
				st.WetnessLevel--
				st.WetnessDecayTimer = 0
			}
		} else {
			st.WetnessDecayTimer = 0
		}
		tr.Reason = ReasonDecay
	}

	paused := !env.Immune && (env.Submersion.InLiquid() || env.InPrecipitation)
	m.syncDisplay(st, paused)

	tr.To = st.WetnessLevel
	if tr.Changed() {
		slog.Debug("wetness changed", "from", tr.From, "to", tr.To, "reason", tr.Reason)
	}
	return tr
}

// Splash applies an instant splash impact.
func (m *Machine) Splash(st *status.Combatant) Transition {
	tr := m.Add(st, m.p.SplashIncrement)
	tr.Reason = ReasonSplash
	return tr
}

// Add grants layers of wetness (capped) and restarts the decay countdown.
func (m *Machine) Add(st *status.Combatant, layers int) Transition {
	tr := Transition{From: st.WetnessLevel, Reason: ReasonReaction}
	if layers > 0 {
		st.WetnessLevel = min(st.WetnessLevel+layers, m.p.MaxLevel)
		st.WetnessDecayTimer = 0
		m.syncDisplay(st, false)
	}
	tr.To = st.WetnessLevel
	return tr
}

// Remove takes up to layers of wetness away and returns how many were removed.
func (m *Machine) Remove(st *status.Combatant, layers int) int {
	if layers <= 0 || st.WetnessLevel == 0 {
		return 0
	}
	removed := min(layers, st.WetnessLevel)
	st.WetnessLevel -= removed
	st.WetnessDecayTimer = 0
	if st.WetnessLevel == 0 {
		st.ClearWetness()
	}
	m.syncDisplay(st, false)
	return removed
}

// Strip removes all wetness and returns the level it had.
func (m *Machine) Strip(st *status.Combatant) int {
	level := st.WetnessLevel
	st.ClearWetness()
	return level
}

// decayThreshold is the dry time a given level needs before dropping by one.
func (m *Machine) decayThreshold(level int) int {
	return level * m.p.DecayBaseTicks
}

// syncDisplay keeps the UI countdown equal to the ticks left before the next
// decay step, or a long constant while decay is paused.
func (m *Machine) syncDisplay(st *status.Combatant, paused bool) {
	switch {
	case st.WetnessLevel == 0:
		st.WetnessDisplayTicks = 0
	case paused:
		st.WetnessDisplayTicks = m.p.PausedDisplayTicks
	default:
		st.WetnessDisplayTicks = max(0, m.decayThreshold(st.WetnessLevel)-st.WetnessDecayTimer)
	}
}
