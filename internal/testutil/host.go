package testutil

import (
	"slices"
	"sync"

	"github.com/udisondev/elemental/internal/element"
	"github.com/udisondev/elemental/internal/model"
)

// FakeEntity describes one entity of the fake world.
type FakeEntity struct {
	ID         model.ObjectID
	Location   model.Location
	Dimension  string
	Type       string
	Traits     model.Traits
	Submersion model.Submersion
	InRain     bool
	FireResist bool // fire resistance effect active
	Protection model.Protection

	Totals   element.Totals
	Attack   element.Element
	Dominant element.Element
}

// DamageRecord is one call to Host.Damage.
type DamageRecord struct {
	ID     model.ObjectID
	Amount float64
	Kind   model.DamageKind
}

// FakeHost is an in-memory model.Host and model.StatQuery for unit tests.
// Damage and healing are only recorded; entities have no health.
type FakeHost struct {
	mu       sync.RWMutex
	entities map[model.ObjectID]*FakeEntity
	damages  []DamageRecord
	heals    map[model.ObjectID]float64
}

// NewFakeHost creates an empty FakeHost.
func NewFakeHost() *FakeHost {
	return &FakeHost{
		entities: make(map[model.ObjectID]*FakeEntity),
		heals:    make(map[model.ObjectID]float64),
	}
}

// Add adds or replaces an entity.
func (h *FakeHost) Add(e FakeEntity) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entities[e.ID] = &e
}

// Remove drops an entity from the world.
func (h *FakeHost) Remove(id model.ObjectID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.entities, id)
}

// Update modifies an entity in place. No-op for unknown IDs.
func (h *FakeHost) Update(id model.ObjectID, fn func(e *FakeEntity)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.entities[id]; ok {
		fn(e)
	}
}

// Damages returns a copy of every damage record.
func (h *FakeHost) Damages() []DamageRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.damages)
}

// DamageTo sums damage dealt to id, optionally only of the given kinds.
func (h *FakeHost) DamageTo(id model.ObjectID, kinds ...model.DamageKind) float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var total float64
	for _, d := range h.damages {
		if d.ID != id {
			continue
		}
		if len(kinds) > 0 && !slices.Contains(kinds, d.Kind) {
			continue
		}
		total += d.Amount
	}
	return total
}

// Healed returns the total healing id received.
func (h *FakeHost) Healed(id model.ObjectID) float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.heals[id]
}

// ResetRecords clears damage and heal records.
func (h *FakeHost) ResetRecords() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.damages = nil
	clear(h.heals)
}

func (h *FakeHost) get(id model.ObjectID) (FakeEntity, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.entities[id]
	if !ok {
		return FakeEntity{}, false
	}
	return *e, true
}

func (h *FakeHost) Exists(id model.ObjectID) bool {
	_, ok := h.get(id)
	return ok
}

// Living returns IDs in ascending order so ticks are deterministic.
func (h *FakeHost) Living() []model.ObjectID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]model.ObjectID, 0, len(h.entities))
	for id := range h.entities {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (h *FakeHost) Location(id model.ObjectID) (model.Location, bool) {
	e, ok := h.get(id)
	return e.Location, ok
}

func (h *FakeHost) Dimension(id model.ObjectID) string {
	e, _ := h.get(id)
	return e.Dimension
}

func (h *FakeHost) EntityType(id model.ObjectID) string {
	e, _ := h.get(id)
	return e.Type
}

func (h *FakeHost) Traits(id model.ObjectID) model.Traits {
	e, _ := h.get(id)
	return e.Traits
}

func (h *FakeHost) Submersion(id model.ObjectID) model.Submersion {
	e, _ := h.get(id)
	return e.Submersion
}

func (h *FakeHost) InPrecipitation(id model.ObjectID) bool {
	e, _ := h.get(id)
	return e.InRain
}

func (h *FakeHost) FireResistanceActive(id model.ObjectID) bool {
	e, _ := h.get(id)
	return e.FireResist
}

func (h *FakeHost) Protection(id model.ObjectID) model.Protection {
	e, _ := h.get(id)
	return e.Protection
}

func (h *FakeHost) Damage(id model.ObjectID, amount float64, kind model.DamageKind) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.entities[id]; !ok {
		return
	}
	h.damages = append(h.damages, DamageRecord{ID: id, Amount: amount, Kind: kind})
}

func (h *FakeHost) Heal(id model.ObjectID, amount float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.entities[id]; !ok {
		return
	}
	h.heals[id] += amount
}

func (h *FakeHost) Near(loc model.Location, radius float64) []model.ObjectID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var ids []model.ObjectID
	for id, e := range h.entities {
		if loc.Within(e.Location, radius) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (h *FakeHost) Totals(id model.ObjectID) element.Totals {
	e, _ := h.get(id)
	return e.Totals
}

func (h *FakeHost) AttackElement(id model.ObjectID) element.Element {
	e, _ := h.get(id)
	return e.Attack
}

func (h *FakeHost) DominantElement(id model.ObjectID) element.Element {
	e, _ := h.get(id)
	return e.Dominant
}
