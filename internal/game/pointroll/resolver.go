package pointroll

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Kind is the shape of a points spec.
type Kind uint8

const (
	KindNone Kind = iota
	KindFixed
	KindRange
)

// Spec is a configured point allocation: Fixed(n), Range(min,max) or None.
// Immutable value; a Range is rolled afresh on every Resolve.
type Spec struct {
	Kind Kind
	Min  int
	Max  int
}

// None returns the empty spec (resolves to 0).
func None() Spec { return Spec{} }

// Fixed returns a spec that always resolves to n (floored to step).
func Fixed(n int) Spec { return Spec{Kind: KindFixed, Min: n, Max: n} }

// Range returns a spec rolled inside [min,max].
func Range(min, max int) Spec { return Spec{Kind: KindRange, Min: min, Max: max} }

func (s Spec) String() string {
	switch s.Kind {
	case KindFixed:
		return fmt.Sprintf("%d", s.Min)
	case KindRange:
		return fmt.Sprintf("%d-%d", s.Min, s.Max)
	default:
		return "none"
	}
}

// TierCount is the number of probability bands.
const TierCount = 5

// Tiers holds the weights of the five contiguous 20% bands, lowest first.
// Weights need not sum to 1; they are normalized on use.
type Tiers [TierCount]float64

// DefaultTiers favours low rolls: 40/30/18/9/3.
func DefaultTiers() Tiers {
	return Tiers{0.40, 0.30, 0.18, 0.09, 0.03}
}

// Anchor selects the value domain the five bands are cut from.
type Anchor uint8

const (
	// AnchorGlobalCap cuts bands from [0, globalCap] and clamps the chosen
	// band into the spec's range afterwards.
	AnchorGlobalCap Anchor = iota
	// AnchorRange cuts bands directly from the spec's [min, max].
	AnchorRange
)

// Resolver turns points specs into concrete integers.
// Pure apart from its random source. Not safe for concurrent use.
type Resolver struct {
	rng       *rand.Rand
	globalCap int
}

// NewResolver creates a Resolver. A nil rng gets a randomly seeded PCG source.
// A non-positive globalCap disables the cap.
func NewResolver(rng *rand.Rand, globalCap int) *Resolver {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Resolver{rng: rng, globalCap: globalCap}
}

// GlobalCap returns the configured cap (0 = none).
func (r *Resolver) GlobalCap() int { return r.globalCap }

// Resolve returns the concrete value for spec.
//
//   - None → 0
//   - Fixed(n) → n floored to a multiple of step, clamped to [0, globalCap]
//   - Range(min,max) → tier roll, rounded to the nearest multiple of step
//     inside [min,max]
//
// step < 1 is treated as 1. Never panics.
func (r *Resolver) Resolve(spec Spec, step int, tiers Tiers, anchor Anchor) int {
	if step < 1 {
		step = 1
	}
	switch spec.Kind {
	case KindFixed:
		return r.resolveFixed(spec.Min, step)
	case KindRange:
		return r.resolveRange(spec.Min, spec.Max, step, tiers, anchor)
	default:
		return 0
	}
}

func (r *Resolver) resolveFixed(n, step int) int {
	if n < 0 {
		n = 0
	}
	if r.globalCap > 0 && n > r.globalCap {
		n = r.globalCap
	}
	return (n / step) * step
}

func (r *Resolver) resolveRange(lo, hi, step int, tiers Tiers, anchor Anchor) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	if lo == hi {
		return lo
	}

	domainLo, domainHi := float64(lo), float64(hi)
	if anchor == AnchorGlobalCap && r.globalCap > 0 {
		domainLo, domainHi = 0, float64(r.globalCap)
	}

	band := r.pickTier(tiers)
	span := domainHi - domainLo
	bandLo := domainLo + span*float64(band)/TierCount
	bandHi := domainLo + span*float64(band+1)/TierCount

	bandLo = clampFloat(bandLo, float64(lo), float64(hi))
	bandHi = clampFloat(bandHi, float64(lo), float64(hi))

	v := bandLo + r.rng.Float64()*(bandHi-bandLo)
	return snapToStep(v, lo, hi, step)
}

// pickTier draws a band index using cumulative weights.
// Non-positive weights are ignored; all-zero tables fall back to uniform.
func (r *Resolver) pickTier(tiers Tiers) int {
	total := 0.0
	for _, w := range tiers {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		return r.rng.IntN(TierCount)
	}

	roll := r.rng.Float64() * total
	cumulative := 0.0
	for i, w := range tiers {
		if w <= 0 {
			continue
		}
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return TierCount - 1
}

// snapToStep rounds v to the nearest multiple of step and pulls the result
// back onto the step grid inside [lo,hi]. When no multiple of step lies in
// the range, lo is returned.
func snapToStep(v float64, lo, hi, step int) int {
	gridLo := int(math.Ceil(float64(lo)/float64(step))) * step
	gridHi := int(math.Floor(float64(hi)/float64(step))) * step
	if gridLo > gridHi {
		return lo
	}

	rounded := int(math.Round(v/float64(step))) * step
	if rounded < gridLo {
		return gridLo
	}
	if rounded > gridHi {
		return gridHi
	}
	return rounded
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
