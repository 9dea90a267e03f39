// Package nature holds the reactions of the nature element: wildfire when
// fire meets a nature creature and parasitic drain when nature meets water.
package nature

import (
	"github.com/udisondev/elemental/internal/element"
	"github.com/udisondev/elemental/internal/game/status"
)

// Params are the nature reaction tunables.
type Params struct {
	// Wildfire
	WildfireThreshold     int // attacker fire enhancement needed
	WildfireDurationTicks int
	WildfireCooldownTicks int

	// Parasitic drain
	HealPerLayer           float64
	ParasiticCooldownTicks int

	// InfectionBonus is the extra share of nature elemental damage an
	// infected target takes (0.2 = +20%).
	InfectionBonus float64
}

// WildfireInput is the view of a hit the wildfire check needs.
type WildfireInput struct {
	AttackElement   element.Element
	AttackerFireEnh int
	TargetDominant  element.Element
	CooldownUntil   status.Tick // attacker's wildfire cooldown
	Now             status.Tick
}

// Ignition is a scorched application caused by wildfire.
type Ignition struct {
	Strength      int
	DurationTicks int
	CooldownUntil status.Tick
}

// Wildfire decides whether a fire hit sets a nature-dominant target ablaze.
// The scorched strength is the attacker's fire enhancement.
func Wildfire(in WildfireInput, p Params) (Ignition, bool) {
	if in.AttackElement != element.Fire || in.TargetDominant != element.Nature {
		return Ignition{}, false
	}
	if p.WildfireThreshold <= 0 || in.AttackerFireEnh < p.WildfireThreshold {
		return Ignition{}, false
	}
	if in.Now < in.CooldownUntil || p.WildfireDurationTicks <= 0 {
		return Ignition{}, false
	}
	return Ignition{
		Strength:      in.AttackerFireEnh,
		DurationTicks: p.WildfireDurationTicks,
		CooldownUntil: in.Now + status.Tick(max(p.WildfireCooldownTicks, 0)),
	}, true
}

// DrainInput is the view of a hit the parasitic drain check needs.
type DrainInput struct {
	AttackElement element.Element
	TargetWetness int
	CooldownUntil status.Tick // attacker's parasitic cooldown
	Now           status.Tick
}

// Drain is one parasitic drain: a layer of target wetness turned into
// healing for the attacker.
type Drain struct {
	Layers        int
	Heal          float64
	CooldownUntil status.Tick
}

// ParasiticDrain decides whether a nature hit drains a wet target.
func ParasiticDrain(in DrainInput, p Params) (Drain, bool) {
	if in.AttackElement != element.Nature || in.TargetWetness <= 0 {
		return Drain{}, false
	}
	if in.Now < in.CooldownUntil {
		return Drain{}, false
	}
	return Drain{
		Layers:        1,
		Heal:          max(p.HealPerLayer, 0),
		CooldownUntil: in.Now + status.Tick(max(p.ParasiticCooldownTicks, 0)),
	}, true
}

// InfectionMultiplier scales nature elemental damage against an infected target.
func InfectionMultiplier(attack element.Element, infected bool, p Params) float64 {
	if attack != element.Nature || !infected || p.InfectionBonus <= 0 {
		return 1
	}
	return 1 + p.InfectionBonus
}
