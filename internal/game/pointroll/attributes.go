package pointroll

import "github.com/udisondev/elemental/internal/element"

// ForcedSpec is a config-declared attribute allocation for a specific entity
// type or item. Each application re-resolves its point specs.
type ForcedSpec struct {
	AttackElement  element.Element
	EnhanceElement element.Element
	EnhancePoints  Spec
	ResistElement  element.Element
	ResistPoints   Spec
}

// RandomRoll describes a procedural attribute roll for spawning entities.
type RandomRoll struct {
	// Chance in [0,1] that the entity receives attributes at all.
	Chance float64
	// Elements are the candidates; one is picked uniformly for attack and
	// enhancement and one independently for resistance.
	Elements      []element.Element
	EnhancePoints Spec
	ResistPoints  Spec
}

// Attributes is a fully resolved allocation.
type Attributes struct {
	AttackElement  element.Element
	EnhanceElement element.Element
	EnhancePoints  int
	ResistElement  element.Element
	ResistPoints   int
}

// Empty reports whether no element or points were granted.
func (a Attributes) Empty() bool {
	return a.AttackElement == element.None &&
		a.EnhancePoints == 0 &&
		a.ResistPoints == 0
}

// Totals converts the allocation into element totals.
func (a Attributes) Totals() element.Totals {
	return element.Totals{}.
		WithEnhance(a.EnhanceElement, a.EnhancePoints).
		WithResist(a.ResistElement, a.ResistPoints)
}

// ResolveForced resolves a forced spec. Forced specs anchor their tier bands
// to the global cap and clamp into the declared range.
func (r *Resolver) ResolveForced(spec ForcedSpec, step int, tiers Tiers) Attributes {
	out := Attributes{
		AttackElement:  spec.AttackElement,
		EnhanceElement: spec.EnhanceElement,
		ResistElement:  spec.ResistElement,
	}
	if spec.EnhanceElement.Valid() {
		out.EnhancePoints = r.Resolve(spec.EnhancePoints, step, tiers, AnchorGlobalCap)
	}
	if spec.ResistElement.Valid() {
		out.ResistPoints = r.Resolve(spec.ResistPoints, step, tiers, AnchorGlobalCap)
	}
	return out
}

// RollRandom performs a procedural attribute roll. Random rolls anchor their
// tier bands to the roll's own range. Returns false when the chance check
// fails or there are no candidate elements.
func (r *Resolver) RollRandom(roll RandomRoll, step int, tiers Tiers) (Attributes, bool) {
	candidates := make([]element.Element, 0, len(roll.Elements))
	for _, e := range roll.Elements {
		if e.Valid() {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 || roll.Chance <= 0 {
		return Attributes{}, false
	}
	if roll.Chance < 1 && r.rng.Float64() >= roll.Chance {
		return Attributes{}, false
	}

	attack := candidates[r.rng.IntN(len(candidates))]
	resist := candidates[r.rng.IntN(len(candidates))]

	return Attributes{
		AttackElement:  attack,
		EnhanceElement: attack,
		EnhancePoints:  r.Resolve(roll.EnhancePoints, step, tiers, AnchorRange),
		ResistElement:  resist,
		ResistPoints:   r.Resolve(roll.ResistPoints, step, tiers, AnchorRange),
	}, true
}
