package pointroll

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/elemental/internal/element"
)

func newTestResolver(seed uint64, globalCap int) *Resolver {
	return NewResolver(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), globalCap)
}

func TestResolve_None(t *testing.T) {
	r := newTestResolver(1, 500)
	assert.Equal(t, 0, r.Resolve(None(), 10, DefaultTiers(), AnchorGlobalCap))
}

func TestResolve_Fixed(t *testing.T) {
	tests := []struct {
		name string
		n    int
		step int
		cap  int
		want int
	}{
		{"floors to step", 73, 10, 500, 70},
		{"exact multiple", 80, 10, 500, 80},
		{"negative clamps to zero", -15, 10, 500, 0},
		{"capped then floored", 999, 10, 95, 90},
		{"no cap", 1234, 1, 0, 1234},
		{"zero step treated as one", 73, 0, 500, 73},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(7, tt.cap)
			assert.Equal(t, tt.want, r.Resolve(Fixed(tt.n), tt.step, DefaultTiers(), AnchorGlobalCap))
		})
	}
}

func TestResolve_FixedIsDeterministic(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		r := newTestResolver(seed, 500)
		assert.Equal(t, 70, r.Resolve(Fixed(73), 10, DefaultTiers(), AnchorGlobalCap))
		assert.Equal(t, 70, r.Resolve(Fixed(73), 10, DefaultTiers(), AnchorGlobalCap))
	}
}

func TestResolve_RangeStaysOnGridInsideBounds(t *testing.T) {
	tiersList := []Tiers{
		DefaultTiers(),
		{0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{-1, 2, -3, 4, 0},
	}

	for _, anchor := range []Anchor{AnchorGlobalCap, AnchorRange} {
		for _, tiers := range tiersList {
			for seed := uint64(0); seed < 200; seed++ {
				r := newTestResolver(seed, 500)
				v := r.Resolve(Range(50, 100), 10, tiers, anchor)
				require.GreaterOrEqual(t, v, 50)
				require.LessOrEqual(t, v, 100)
				require.Zero(t, v%10, "value %d not on step grid", v)
			}
		}
	}
}

func TestResolve_RangeSwapsReversedBounds(t *testing.T) {
	r := newTestResolver(3, 500)
	for i := 0; i < 100; i++ {
		v := r.Resolve(Range(100, 50), 10, DefaultTiers(), AnchorRange)
		assert.GreaterOrEqual(t, v, 50)
		assert.LessOrEqual(t, v, 100)
	}
}

func TestResolve_RangeEqualBoundsReturnsMin(t *testing.T) {
	r := newTestResolver(3, 500)
	assert.Equal(t, 35, r.Resolve(Range(35, 35), 10, DefaultTiers(), AnchorRange))
}

func TestResolve_RangeWithoutGridMultipleReturnsMin(t *testing.T) {
	r := newTestResolver(3, 500)
	assert.Equal(t, 51, r.Resolve(Range(51, 59), 10, DefaultTiers(), AnchorGlobalCap))
}

func TestResolve_AnchorsProduceDifferentDistributions(t *testing.T) {
	lowestBandOnly := Tiers{1, 0, 0, 0, 0}

	// Global anchor: lowest band is [0,200] of the cap, entirely below the
	// range, so the clamp pins every roll to the range minimum.
	r := newTestResolver(11, 1000)
	for i := 0; i < 50; i++ {
		assert.Equal(t, 300, r.Resolve(Range(300, 400), 10, lowestBandOnly, AnchorGlobalCap))
	}

	// Range anchor: lowest band is the bottom 20% of [300,400].
	r = newTestResolver(11, 1000)
	for i := 0; i < 50; i++ {
		v := r.Resolve(Range(300, 400), 10, lowestBandOnly, AnchorRange)
		assert.GreaterOrEqual(t, v, 300)
		assert.LessOrEqual(t, v, 320)
	}
}

func TestResolve_HighestBandRange(t *testing.T) {
	r := newTestResolver(5, 0)
	for i := 0; i < 50; i++ {
		v := r.Resolve(Range(0, 100), 1, Tiers{0, 0, 0, 0, 1}, AnchorRange)
		assert.GreaterOrEqual(t, v, 80)
		assert.LessOrEqual(t, v, 100)
	}
}

func TestPickTier_RespectsWeights(t *testing.T) {
	r := newTestResolver(42, 0)
	counts := [TierCount]int{}
	for i := 0; i < 10000; i++ {
		counts[r.pickTier(Tiers{0, 3, 0, 1, 0})]++
	}
	assert.Zero(t, counts[0])
	assert.Zero(t, counts[2])
	assert.Zero(t, counts[4])
	assert.Greater(t, counts[1], counts[3])
}

func TestSpecString(t *testing.T) {
	assert.Equal(t, "none", None().String())
	assert.Equal(t, "40", Fixed(40).String())
	assert.Equal(t, "10-90", Range(10, 90).String())
}

func TestResolveForced_RerollsRangesEveryCall(t *testing.T) {
	r := newTestResolver(9, 1000)
	spec := ForcedSpec{
		AttackElement:  element.Fire,
		EnhanceElement: element.Fire,
		EnhancePoints:  Range(0, 1000),
		ResistElement:  element.Frost,
		ResistPoints:   Fixed(45),
	}

	seen := map[int]bool{}
	for i := 0; i < 50; i++ {
		attrs := r.ResolveForced(spec, 10, Tiers{1, 1, 1, 1, 1})
		assert.Equal(t, element.Fire, attrs.AttackElement)
		assert.Equal(t, 40, attrs.ResistPoints)
		seen[attrs.EnhancePoints] = true
	}
	assert.Greater(t, len(seen), 1, "range spec must be re-rolled on every application")
}

func TestResolveForced_MissingElementGrantsNoPoints(t *testing.T) {
	r := newTestResolver(9, 1000)
	attrs := r.ResolveForced(ForcedSpec{EnhancePoints: Fixed(100)}, 10, DefaultTiers())
	assert.True(t, attrs.Empty())
}

func TestRollRandom(t *testing.T) {
	r := newTestResolver(13, 1000)
	roll := RandomRoll{
		Chance:        1,
		Elements:      []element.Element{element.Thunder, element.None},
		EnhancePoints: Range(20, 60),
		ResistPoints:  Range(10, 30),
	}

	attrs, ok := r.RollRandom(roll, 5, DefaultTiers())
	require.True(t, ok)
	assert.Equal(t, element.Thunder, attrs.AttackElement)
	assert.Equal(t, element.Thunder, attrs.ResistElement)
	assert.GreaterOrEqual(t, attrs.EnhancePoints, 20)
	assert.LessOrEqual(t, attrs.EnhancePoints, 60)
	assert.Zero(t, attrs.EnhancePoints%5)
	assert.Equal(t, attrs.EnhancePoints, attrs.Totals().Enhance(element.Thunder))
}

func TestRollRandom_NoCandidatesOrChance(t *testing.T) {
	r := newTestResolver(13, 1000)

	_, ok := r.RollRandom(RandomRoll{Chance: 1}, 5, DefaultTiers())
	assert.False(t, ok)

	_, ok = r.RollRandom(RandomRoll{Chance: 0, Elements: []element.Element{element.Fire}}, 5, DefaultTiers())
	assert.False(t, ok)
}
