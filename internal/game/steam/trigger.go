package steam

import "github.com/udisondev/elemental/internal/element"

// MaxLevel is the highest cloud level.
const MaxLevel = 5

// TriggerParams are the per-hit trigger thresholds.
type TriggerParams struct {
	SelfDryingPenaltyRatio float64
	DryingThreshold        int // attacker fire enhancement per extra dried layer
	FireTriggerThreshold   int // attacker fire enhancement needed for a high-heat cloud
	FrostTriggerThreshold  int // attacker frost enhancement needed for a low-heat cloud
	CondensationStepCold   int // target frost power per extra high-heat fuel level
	CondensationStepHot    int // target fire power per extra low-heat level
}

// TriggerInput is everything the trigger looks at for one hit.
type TriggerInput struct {
	AttackElement   element.Element
	AttackerWetness int
	AttackerTotals  element.Totals
	SelfDryingReady bool // attacker's self-drying cooldown has elapsed

	TargetWetness  int
	TargetDominant element.Element
	TargetTotals   element.Totals
}

// DecisionKind is the reaction chosen for a hit.
type DecisionKind uint8

const (
	DecisionNone DecisionKind = iota
	DecisionSelfDrying
	DecisionHighHeat
	DecisionLowHeat
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionSelfDrying:
		return "self_drying"
	case DecisionHighHeat:
		return "high_heat"
	case DecisionLowHeat:
		return "low_heat"
	default:
		return "none"
	}
}

// Decision is the outcome of a trigger evaluation.
type Decision struct {
	Kind DecisionKind

	// Level of the cloud to spawn (high/low heat).
	Level int
	// StripTarget removes all target wetness (high heat).
	StripTarget bool

	// LayersRemoved from the attacker (self-drying).
	LayersRemoved int
	// DamageFactor applied to the triggering hit; 1 unless self-drying.
	DamageFactor float64
}

// Evaluate decides which steam reaction a hit triggers. Pure function.
//
// Order: a wet fire attacker dries itself instead of making steam; a fire
// hit on a wet or frost target spawns a high-heat cloud; a frost hit on a
// fire target spawns a low-heat cloud.
func Evaluate(in TriggerInput, p TriggerParams) Decision {
	none := Decision{Kind: DecisionNone, DamageFactor: 1}

	switch in.AttackElement {
	case element.Fire:
		if in.AttackerWetness > 0 {
			if !in.SelfDryingReady {
				return none
			}
			ratio := min(max(p.SelfDryingPenaltyRatio, 0), 1)
			threshold := max(p.DryingThreshold, 1)
			layers := 1 + in.AttackerTotals.Enhance(element.Fire)/threshold
			return Decision{
				Kind:          DecisionSelfDrying,
				LayersRemoved: min(layers, in.AttackerWetness),
				DamageFactor:  1 - ratio,
			}
		}

		targetWet := in.TargetWetness > 0
		if !targetWet && in.TargetDominant != element.Frost {
			return none
		}
		if in.AttackerTotals.Enhance(element.Fire) < p.FireTriggerThreshold {
			return none
		}

		fuel := in.TargetWetness
		if !targetWet {
			fuel = 1 + in.TargetTotals.Power(element.Frost)/max(p.CondensationStepCold, 1)
		}
		return Decision{
			Kind:         DecisionHighHeat,
			Level:        ClampLevel(fuel),
			StripTarget:  true,
			DamageFactor: 1,
		}

	case element.Frost:
		if in.TargetDominant != element.Fire {
			return none
		}
		if in.AttackerTotals.Enhance(element.Frost) < p.FrostTriggerThreshold {
			return none
		}
		level := 1 + in.TargetTotals.Power(element.Fire)/max(p.CondensationStepHot, 1)
		return Decision{
			Kind:         DecisionLowHeat,
			Level:        ClampLevel(level),
			DamageFactor: 1,
		}
	}

	return none
}

// ClampLevel pins a fuel value into [1, MaxLevel].
func ClampLevel(fuel int) int {
	return min(max(fuel, 1), MaxLevel)
}
