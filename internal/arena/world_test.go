package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/elemental/internal/element"
	"github.com/udisondev/elemental/internal/model"
)

type halvingFilter struct {
	calls []model.DamageKind
}

func (f *halvingFilter) IncomingDamage(_ model.ObjectID, kind model.DamageKind, amount float64) float64 {
	f.calls = append(f.calls, kind)
	return amount / 2
}

func newTestWorld() *World {
	return NewWorld(10, Armor{PerLevel: 0.04, Cap: 20})
}

func TestWorld_DamageAppliesArmorThenFilter(t *testing.T) {
	w := newTestWorld()
	f := &halvingFilter{}
	w.SetFilter(f)

	id := w.Add(Combatant{MaxHealth: 100, Protection: model.Protection{EPF: 5}})

	w.Damage(id, 10, model.DamageFire)
	c, ok := w.Get(id)
	require.True(t, ok)
	assert.InDelta(t, 96.0, c.Health, 1e-9)

	w.Damage(id, 10, model.DamageGeneric)
	c, _ = w.Get(id)
	assert.InDelta(t, 86.0, c.Health, 1e-9)

	w.Damage(id, 10, model.DamageScorched)
	c, _ = w.Get(id)
	assert.InDelta(t, 78.0, c.Health, 1e-9)

	assert.Equal(t, []model.DamageKind{model.DamageFire}, f.calls)
}

func TestWorld_ArmorCap(t *testing.T) {
	a := Armor{PerLevel: 0.04, Cap: 20}
	assert.InDelta(t, 2.0, a.reduce(10, 100), 1e-9)
	assert.InDelta(t, 10.0, a.reduce(10, -3), 1e-9)
	assert.InDelta(t, 10.0, Armor{}.reduce(10, 5), 1e-9)
}

func TestWorld_DeathRemovesAndNotifies(t *testing.T) {
	w := newTestWorld()
	var dead []Combatant
	w.OnDeath(func(c Combatant, kind model.DamageKind) {
		assert.Equal(t, model.DamageScald, kind)
		dead = append(dead, c)
	})

	id := w.Add(Combatant{Key: "rabbit#1", MaxHealth: 5})
	w.Damage(id, 6, model.DamageScald)

	assert.False(t, w.Exists(id))
	require.Len(t, dead, 1)
	assert.Equal(t, "rabbit#1", dead[0].Key)

	// stale entity is a no-op
	w.Damage(id, 6, model.DamageGeneric)
	assert.Len(t, dead, 1)
}

func TestWorld_HealCapsAtMax(t *testing.T) {
	w := newTestWorld()
	id := w.Add(Combatant{MaxHealth: 50, Health: 45})

	w.Heal(id, 20)
	c, _ := w.Get(id)
	assert.InDelta(t, 50.0, c.Health, 1e-9)
}

func TestWorld_SubmersionAndRain(t *testing.T) {
	w := newTestWorld()
	for _, p := range DefaultPools() {
		w.AddPool(p)
	}

	deep := w.Add(Combatant{MaxHealth: 1, Location: model.NewLocation(1, 0, 0)})
	rim := w.Add(Combatant{MaxHealth: 1, Location: model.NewLocation(5, 0, 0)})
	dry := w.Add(Combatant{MaxHealth: 1, Location: model.NewLocation(20, 0, 0)})

	assert.Equal(t, model.SubmersionFull, w.Submersion(deep))
	assert.Equal(t, model.SubmersionShallow, w.Submersion(rim))
	assert.Equal(t, model.SubmersionNone, w.Submersion(dry))

	assert.False(t, w.InPrecipitation(dry))
	w.SetRaining(true)
	assert.True(t, w.InPrecipitation(dry))
	assert.True(t, w.InPrecipitation(rim))
	assert.False(t, w.InPrecipitation(deep))
}

func TestWorld_NearIsSorted(t *testing.T) {
	w := newTestWorld()
	a := w.Add(Combatant{MaxHealth: 1, Location: model.NewLocation(0, 0, 0)})
	b := w.Add(Combatant{MaxHealth: 1, Location: model.NewLocation(1, 0, 0)})
	w.Add(Combatant{MaxHealth: 1, Location: model.NewLocation(9, 0, 0)})

	assert.Equal(t, []model.ObjectID{a, b}, w.Near(model.NewLocation(0, 0, 0), 2))
	assert.Equal(t, []model.ObjectID{a, b, b + 1}, w.Living())
}

func TestWorld_StatsFromEquipment(t *testing.T) {
	w := newTestWorld()
	id := w.Add(Combatant{
		MaxHealth: 1,
		Equipment: [][]element.ItemEnchant{
			{{Kind: element.KindAttack, Element: element.Fire, Level: 1}, {Kind: element.KindEnhance, Element: element.Fire, Level: 3}},
			{{Kind: element.KindEnhance, Element: element.Fire, Level: 2}, {Kind: element.KindResist, Element: element.Frost, Level: 4}},
		},
	})

	totals := w.Totals(id)
	assert.Equal(t, 50, totals.Enhance(element.Fire))
	assert.Equal(t, 40, totals.Resist(element.Frost))
	assert.Equal(t, element.Fire, w.AttackElement(id))
	assert.Equal(t, element.Fire, w.DominantElement(id))

	assert.Equal(t, element.Totals{}, w.Totals(id+100))
	assert.Equal(t, element.None, w.AttackElement(id+100))
}

func TestStep(t *testing.T) {
	from := model.NewLocation(0, 0, 0)
	to := model.NewLocation(10, 0, 0)

	assert.Equal(t, model.NewLocation(2, 0, 0), step(from, to, 2))
	assert.Equal(t, to, step(from, to, 20))
	assert.Equal(t, from, step(from, from, 1))
}
