package damage

import "github.com/udisondev/elemental/internal/element"

// Params are the tunables of the elemental damage formula.
type Params struct {
	DamageMultiplier       float64
	ResistanceMultiplier   float64
	StrengthPerHalfDamage  float64
	ResistPerHalfReduction float64
	RestraintFloorRatio    float64

	// Wetness interaction, per wetness level.
	WetFireReductionPerLevel float64
	WetChargedBonusPerLevel  float64

	Restraint element.RestraintTable
}

// Input describes one hit from the formula's point of view.
type Input struct {
	Physical       float64
	Enhancement    int // attacker enhancement points for AttackElement
	Resistance     int // target resistance points for AttackElement
	WetnessLevel   int // target wetness
	AttackElement  element.Element
	TargetDominant element.Element
}

// Result carries every intermediate of the formula so the observability
// sink can report it without recomputing.
type Result struct {
	Physical          float64
	PreResist         float64
	Reduction         float64
	Elemental         float64 // after resistance and damage multiplier
	WetnessMultiplier float64
	Relation          element.Relation
	RestraintMult     float64
	FinalElemental    float64
	Floored           bool
	Total             float64
}

// wetnessCap is the maximum wetness swing in either direction (50%).
const wetnessCap = 0.5

// Resolve runs the per-hit elemental formula:
//
//	preResist = enhancement / strengthPerHalfDamage * 0.5
//	reduction = resistance / resistPerHalfReduction * 0.5 * resistanceMultiplier
//	elemental = max(0, preResist - reduction) * damageMultiplier * wetness * restraint
//
// When restraint favours the attacker the elemental part never drops below
// preResist*restraintFloorRatio. Pure function.
func Resolve(in Input, p Params) Result {
	res := Result{Physical: in.Physical}
	if in.AttackElement == element.None {
		res.WetnessMultiplier = 1
		res.RestraintMult = 1
		res.Total = in.Physical
		return res
	}

	strengthStep := atLeastOne(p.StrengthPerHalfDamage)
	resistStep := atLeastOne(p.ResistPerHalfReduction)

	res.PreResist = float64(max(in.Enhancement, 0)) / strengthStep * 0.5
	res.Reduction = float64(max(in.Resistance, 0)) / resistStep * 0.5 * p.ResistanceMultiplier

	res.Elemental = max(0, res.PreResist-res.Reduction) * p.DamageMultiplier

	res.WetnessMultiplier = WetnessMultiplier(in.AttackElement, in.WetnessLevel,
		p.WetFireReductionPerLevel, p.WetChargedBonusPerLevel)
	elemental := res.Elemental * res.WetnessMultiplier

	res.Relation = p.Restraint.Relation(in.AttackElement, in.TargetDominant)
	res.RestraintMult = p.Restraint.Multiplier(in.AttackElement, in.TargetDominant)
	res.FinalElemental = elemental * res.RestraintMult

	if res.RestraintMult > 1 {
		minRetained := res.PreResist * p.RestraintFloorRatio
		if res.FinalElemental < minRetained {
			res.FinalElemental = minRetained
			res.Floored = true
		}
	}

	res.Total = in.Physical + res.FinalElemental
	return res
}

// WetnessMultiplier returns the damage multiplier wetness applies to attack.
// Hot damage is reduced by level*reductionPerLevel, cold/charged damage is
// increased by level*bonusPerLevel; both swings are capped at 50%.
func WetnessMultiplier(attack element.Element, level int, reductionPerLevel, bonusPerLevel float64) float64 {
	if level <= 0 {
		return 1
	}
	switch {
	case attack.IsHot():
		return 1 - capFactor(float64(level)*reductionPerLevel)
	case attack.IsColdOrCharged():
		return 1 + capFactor(float64(level)*bonusPerLevel)
	default:
		return 1
	}
}

func capFactor(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > wetnessCap {
		return wetnessCap
	}
	return f
}

func atLeastOne(v float64) float64 {
	if v < 1 {
		return 1
	}
	return v
}

// ProtectionRatio turns protection enchantment levels into a reduction ratio
// in [0, maxRatio], maxRatio itself clamped to [0,1].
func ProtectionRatio(levels int, perLevel, maxRatio float64) float64 {
	if levels <= 0 || perLevel <= 0 {
		return 0
	}
	maxRatio = min(max(maxRatio, 0), 1)
	return min(float64(levels)*perLevel, maxRatio)
}
