package steam

import "github.com/udisondev/elemental/internal/game/status"

// EffectParams tune what clouds do to the entities standing in them.
type EffectParams struct {
	TicksPerSecond         int
	ScaldBaseDamage        float64
	ScaldScalePerLevel     float64
	WeaknessMultiplier     float64 // cold or nature typed victims
	CondensationDelayTicks int
}

// Victim describes the entity being sampled.
type Victim struct {
	ColdOrNature bool
}

// EffectOutcome is what one sample asks the caller to do.
type EffectOutcome struct {
	Scald        float64 // scald damage to deal, before defense
	StripWetness bool
	GrantWetness bool // one condensation layer
}

// Sample applies the persistent cloud effects for one sampling interval of
// elapsed ticks. High heat wins over low heat: while a high-heat cloud
// covers the entity the condensation counter is held at zero.
func Sample(st *status.Combatant, exp Exposure, v Victim, now status.Tick, elapsed int, p EffectParams) EffectOutcome {
	var out EffectOutcome
	elapsed = max(elapsed, 1)

	if exp.High != nil {
		st.CondensationTicks = 0
		if now >= st.ScaldCooldownUntil {
			out.Scald = ScaldDamage(exp.High.Level, v, p)
			out.StripWetness = true
			st.ScaldCooldownUntil = now + status.Tick(max(p.TicksPerSecond, 1))
		}
		return out
	}

	if exp.Low == nil {
		st.CondensationTicks = 0
		return out
	}

	st.CondensationTicks += elapsed
	if st.CondensationTicks >= max(p.CondensationDelayTicks, 1) {
		st.CondensationTicks = 0
		out.GrantWetness = true
	}
	return out
}

// ScaldDamage is the per-second scald of a high-heat cloud:
//
//	base * (1 + level*scalePerLevel) [* weakness]
func ScaldDamage(level int, v Victim, p EffectParams) float64 {
	dmg := p.ScaldBaseDamage * (1 + float64(ClampLevel(level))*p.ScaldScalePerLevel)
	if v.ColdOrNature && p.WeaknessMultiplier > 0 {
		dmg *= p.WeaknessMultiplier
	}
	return max(dmg, 0)
}
