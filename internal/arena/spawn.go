package arena

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/elemental/internal/element"
	"github.com/udisondev/elemental/internal/game/pointroll"
	"github.com/udisondev/elemental/internal/model"
)

// Template describes a kind of combatant.
type Template struct {
	Type       string
	Traits     model.Traits
	MaxHealth  float64
	Attack     float64
	Equipment  [][]element.ItemEnchant
	Protection model.Protection
	FireResist bool
}

// AttributeSource supplies the configured forced allocations and random
// rolls. config.Provider implements it.
type AttributeSource interface {
	Forced(entityType string) (pointroll.ForcedSpec, bool)
	RandomRoll() pointroll.RandomRoll
}

// Granter grants resolved attributes to spawned entities. engine.Engine
// implements it.
type Granter interface {
	ApplyForced(id model.ObjectID, spec pointroll.ForcedSpec) pointroll.Attributes
	RollRandom(id model.ObjectID, roll pointroll.RandomRoll) (pointroll.Attributes, bool)
}

// Spawner places combatants and decides which of them receive forced or
// random attributes: a forced spec for the type wins, otherwise the random
// roll is tried.
type Spawner struct {
	world   *World
	attrs   AttributeSource
	granter Granter
	seq     map[string]int
}

// NewSpawner creates a Spawner.
func NewSpawner(w *World, attrs AttributeSource, g Granter) *Spawner {
	return &Spawner{
		world:   w,
		attrs:   attrs,
		granter: g,
		seq:     make(map[string]int),
	}
}

// Spawn adds a combatant built from t to the given team at loc.
func (s *Spawner) Spawn(t Template, team int, loc model.Location) model.ObjectID {
	s.seq[t.Type]++
	key := fmt.Sprintf("%s#%d", t.Type, s.seq[t.Type])

	id := s.world.Add(Combatant{
		Key:        key,
		Type:       t.Type,
		Team:       team,
		Dimension:  "arena",
		Location:   loc,
		Traits:     t.Traits,
		MaxHealth:  t.MaxHealth,
		Attack:     t.Attack,
		Equipment:  t.Equipment,
		Protection: t.Protection,
		FireResist: t.FireResist,
	})

	if spec, ok := s.attrs.Forced(t.Type); ok {
		a := s.granter.ApplyForced(id, spec)
		slog.Info("forced attributes", "key", key, "attack", a.AttackElement, "enhance", a.EnhancePoints, "resist", a.ResistPoints)
	} else if a, ok := s.granter.RollRandom(id, s.attrs.RandomRoll()); ok {
		slog.Info("rolled attributes", "key", key, "attack", a.AttackElement, "enhance", a.EnhancePoints, "resist", a.ResistPoints)
	}

	slog.Debug("combatant spawned", "key", key, "objectID", id, "team", team)
	return id
}
