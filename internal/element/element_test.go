package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Element
	}{
		{"fire", Fire},
		{" FROST ", Frost},
		{"lightning", Thunder},
		{"nature", Nature},
		{"", None},
		{"plasma", None},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestElementClasses(t *testing.T) {
	assert.True(t, Fire.IsHot())
	assert.True(t, Frost.IsCold())
	assert.True(t, Frost.IsColdOrCharged())
	assert.True(t, Thunder.IsColdOrCharged())
	assert.False(t, Nature.IsColdOrCharged())
	assert.False(t, None.Valid())
}

func TestAggregate_NoPerItemCap(t *testing.T) {
	items := [][]ItemEnchant{
		{{Kind: KindEnhance, Element: Fire, Level: 10}},
		{{Kind: KindEnhance, Element: Fire, Level: 7}, {Kind: KindResist, Element: Frost, Level: 3}},
		{{Kind: KindResist, Element: None, Level: 5}},
	}

	got := Aggregate(items, 5)

	assert.Equal(t, 85, got.Enhance(Fire))
	assert.Equal(t, 15, got.Resist(Frost))
	assert.Equal(t, 0, got.Enhance(None))
}

func TestAggregate_ZeroPerLevelFloorsToOne(t *testing.T) {
	items := [][]ItemEnchant{{{Kind: KindEnhance, Element: Thunder, Level: 4}}}
	assert.Equal(t, 4, Aggregate(items, 0).Enhance(Thunder))
}

func TestDominant_Priority(t *testing.T) {
	items := [][]ItemEnchant{
		{{Kind: KindResist, Element: Frost, Level: 1}},
		{{Kind: KindEnhance, Element: Nature, Level: 1}},
		{{Kind: KindAttack, Element: Fire, Level: 1}},
	}
	assert.Equal(t, Fire, Dominant(items))
	assert.Equal(t, Nature, Dominant(items[:2]))
	assert.Equal(t, Frost, Dominant(items[:1]))
	assert.Equal(t, None, Dominant(nil))
}

func TestTotalsCapped(t *testing.T) {
	tot := Totals{}.WithEnhance(Fire, 500).WithResist(Frost, -3)
	capped := tot.Capped(200)
	assert.Equal(t, 200, capped.Enhance(Fire))
	assert.Equal(t, 0, capped.Resist(Frost))
	assert.Equal(t, 500, tot.Capped(0).Enhance(Fire))
}

func TestRestraintTable(t *testing.T) {
	tbl := NewRestraintTable(DefaultStrongPairs(), 1.5, 0.75)

	assert.Equal(t, Strong, tbl.Relation(Fire, Nature))
	assert.Equal(t, Weak, tbl.Relation(Nature, Fire))
	assert.Equal(t, Neutral, tbl.Relation(Fire, Thunder))
	assert.InDelta(t, 1.5, tbl.Multiplier(Frost, Fire), 1e-9)
	assert.InDelta(t, 0.75, tbl.Multiplier(Fire, Frost), 1e-9)
	assert.InDelta(t, 1.0, tbl.Multiplier(Fire, None), 1e-9)
}

func TestRestraintTable_InvalidMultipliersNeutralized(t *testing.T) {
	tbl := NewRestraintTable([]Pair{{Attacker: Fire, Defender: Fire}}, 0.2, 3)
	assert.InDelta(t, 1.0, tbl.StrongMultiplier(), 1e-9)
	assert.InDelta(t, 1.0, tbl.WeakMultiplier(), 1e-9)
	assert.Equal(t, Neutral, tbl.Relation(Fire, Fire))
	assert.Equal(t, Neutral, RestraintTable{}.Relation(Fire, Nature))
}
