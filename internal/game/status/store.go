package status

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/udisondev/elemental/internal/model"
)

// Store owns the Combatant status of every entity the engine has touched.
//
// Not safe for concurrent use: the store belongs to the goroutine driving
// the tick loop.
type Store struct {
	entries map[model.ObjectID]*Combatant
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[model.ObjectID]*Combatant, 64)}
}

// Get returns the status for id, creating it on first access.
func (s *Store) Get(id model.ObjectID) *Combatant {
	c, ok := s.entries[id]
	if !ok {
		c = &Combatant{}
		s.entries[id] = c
	}
	return c
}

// Peek returns the status for id without creating it.
func (s *Store) Peek(id model.ObjectID) (*Combatant, bool) {
	c, ok := s.entries[id]
	return c, ok
}

// WetnessLevel returns the current wetness level, 0 for unknown entities.
func (s *Store) WetnessLevel(id model.ObjectID) int {
	if c, ok := s.entries[id]; ok {
		return c.WetnessLevel
	}
	return 0
}

// Clear drops the whole status of id (entity became immune).
func (s *Store) Clear(id model.ObjectID) {
	if _, ok := s.entries[id]; ok {
		delete(s.entries, id)
		slog.Debug("combatant status cleared", "objectID", id)
	}
}

// Forget drops the status of an entity that left the world.
func (s *Store) Forget(id model.ObjectID) {
	delete(s.entries, id)
}

// Restore installs a previously saved status, enforcing invariants.
func (s *Store) Restore(id model.ObjectID, c Combatant, maxWetness int) {
	c.normalize(maxWetness)
	s.entries[id] = &c
}

// Snapshot returns a copy of the status for id.
func (s *Store) Snapshot(id model.ObjectID) (Combatant, bool) {
	c, ok := s.entries[id]
	if !ok {
		return Combatant{}, false
	}
	return *c, true
}

// IDs returns the tracked entity IDs in ascending order.
func (s *Store) IDs() []model.ObjectID {
	return slices.Sorted(maps.Keys(s.entries))
}

// Len returns the number of tracked statuses.
func (s *Store) Len() int {
	return len(s.entries)
}

// Compact drops idle statuses of entities the host no longer reports.
// Returns the number of dropped entries.
func (s *Store) Compact(now Tick, alive func(model.ObjectID) bool) int {
	dropped := 0
	for id, c := range s.entries {
		if !alive(id) || c.Idle(now) {
			delete(s.entries, id)
			dropped++
		}
	}
	return dropped
}
