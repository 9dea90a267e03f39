package scorched

import (
	"log/slog"

	"github.com/udisondev/elemental/internal/game/damage"
	"github.com/udisondev/elemental/internal/game/status"
	"github.com/udisondev/elemental/internal/model"
)

// Params are the scorched status tunables.
type Params struct {
	TicksPerSecond int
	BaseDamage     float64
	ScalingStep    float64 // strength points per extra half damage
	CooldownTicks  int     // added on top of the duration before re-application

	FireImmuneFactor    float64 // multiplier for permanently fire-immune targets
	NatureVulnerability float64 // multiplier for nature-dominant targets

	FireProtPerLevel    float64
	FireProtMax         float64
	GeneralProtPerLevel float64
	GeneralProtMax      float64

	// ImmunityThreshold fire-resistance points zero the damage. <= 0 disables.
	ImmunityThreshold int
}

// Target is the per-tick view of the scorched entity.
type Target struct {
	Blacklisted      bool
	FireImmune       bool
	NatureDominant   bool
	FireResistPoints int
	Protection       model.Protection
	Submersion       model.Submersion
}

// Outcome is what one scorched tick asks the host to do.
type Outcome struct {
	Damage       float64
	Kind         model.DamageKind
	Ended        bool
	ThermalShock bool
}

// Engine runs the scorched burn status.
type Engine struct {
	p Params
}

// NewEngine creates an Engine, flooring degenerate divisors.
func NewEngine(p Params) *Engine {
	if p.TicksPerSecond < 1 {
		p.TicksPerSecond = 20
	}
	if p.ScalingStep < 1 {
		p.ScalingStep = 1
	}
	return &Engine{p: p}
}

// Apply starts the status. No-op when the target is blacklisted or still
// cooling down from a previous application. Returns whether it applied.
func (e *Engine) Apply(st *status.Combatant, t Target, strength, durationTicks int, now status.Tick) bool {
	if t.Blacklisted || durationTicks <= 0 {
		return false
	}
	if now < st.ScorchedCooldownUntil {
		return false
	}

	st.ScorchedTicksRemaining = durationTicks
	st.ScorchedStrength = max(strength, 0)
	st.ScorchedCooldownUntil = now + status.Tick(durationTicks+max(e.p.CooldownTicks, 0))
	st.ClearInfection()

	slog.Debug("scorched applied",
		"strength", strength,
		"duration", durationTicks,
		"cooldownUntil", st.ScorchedCooldownUntil)
	return true
}

// Tick advances the status by one host tick.
//
// A fully submerged target takes half of the theoretical remaining damage
// as a single thermal shock and the status ends immediately. Otherwise
// damage is dealt on every whole second of remaining duration.
func (e *Engine) Tick(st *status.Combatant, t Target) Outcome {
	if st.ScorchedTicksRemaining <= 0 {
		if st.ScorchedStrength != 0 {
			st.ClearScorched()
		}
		return Outcome{}
	}
	if t.Blacklisted {
		st.ClearScorched()
		return Outcome{Ended: true}
	}

	perSecond := e.SecondDamage(st.ScorchedStrength, t)

	if t.Submersion == model.SubmersionFull {
		tps := e.p.TicksPerSecond
		secondsLeft := (st.ScorchedTicksRemaining + tps - 1) / tps
		burst := perSecond * float64(secondsLeft) * 0.5
		st.ClearScorched()

		slog.Debug("scorched thermal shock", "burst", burst, "secondsLeft", secondsLeft)
		return Outcome{
			Damage:       burst,
			Kind:         model.DamageThermalShock,
			Ended:        true,
			ThermalShock: true,
		}
	}

	st.ScorchedTicksRemaining--

	var out Outcome
	if st.ScorchedTicksRemaining%e.p.TicksPerSecond == 0 {
		out.Damage = perSecond
		out.Kind = model.DamageScorched
	}
	if st.ScorchedTicksRemaining == 0 {
		st.ClearScorched()
		out.Ended = true
	}
	return out
}

// SecondDamage computes the damage of one scorched pulse against t.
//
//	base + strength/scalingStep*0.5
//	  × fireImmuneFactor (permanently fire-immune)
//	  × natureVulnerability (nature dominant)
//	  × (1 - fireProt) × (1 - generalProt)
//
// and 0 when fire-resistance points reach the immunity threshold.
func (e *Engine) SecondDamage(strength int, t Target) float64 {
	if e.Immune(t) {
		return 0
	}

	dmg := e.p.BaseDamage + float64(max(strength, 0))/e.p.ScalingStep*0.5
	if t.FireImmune {
		dmg *= e.p.FireImmuneFactor
	}
	if t.NatureDominant {
		dmg *= e.p.NatureVulnerability
	}

	fireRatio := damage.ProtectionRatio(t.Protection.Fire, e.p.FireProtPerLevel, e.p.FireProtMax)
	generalRatio := damage.ProtectionRatio(t.Protection.General, e.p.GeneralProtPerLevel, e.p.GeneralProtMax)
	dmg *= (1 - fireRatio) * (1 - generalRatio)

	return max(dmg, 0)
}

// Immune reports whether the target's fire-resistance points cancel all
// scorched damage.
func (e *Engine) Immune(t Target) bool {
	return e.p.ImmunityThreshold > 0 && t.FireResistPoints >= e.p.ImmunityThreshold
}

// SuppressFire reports whether incoming damage of kind must be dropped
// because the scorched channel already covers it.
func (e *Engine) SuppressFire(st *status.Combatant, kind model.DamageKind) bool {
	return kind == model.DamageFire && st.IsScorched()
}
