// Package arena is a small in-memory world that hosts the elemental engine:
// combatants with health and equipment, water pools, weather, and a
// scripted brawl that feeds hits into the engine every tick.
package arena

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/udisondev/elemental/internal/element"
	"github.com/udisondev/elemental/internal/model"
)

// IncomingFilter is the engine hook fire and scald damage runs through
// after armor.
type IncomingFilter interface {
	IncomingDamage(target model.ObjectID, kind model.DamageKind, amount float64) float64
}

// Armor is the host's linear enchantment protection: each EPF point
// removes PerLevel of elemental damage, up to Cap points.
type Armor struct {
	PerLevel float64
	Cap      int
}

func (a Armor) reduce(amount float64, epf int) float64 {
	epf = min(max(epf, 0), a.Cap)
	ratio := min(float64(epf)*a.PerLevel, 0.95)
	return amount * (1 - ratio)
}

// Combatant is one living entity in the arena.
type Combatant struct {
	ID        model.ObjectID
	Key       string // stable across runs, used for persistence
	Type      string
	Team      int
	Dimension string
	Location  model.Location
	Traits    model.Traits

	Health    float64
	MaxHealth float64
	Attack    float64 // physical damage per swing

	Equipment  [][]element.ItemEnchant
	Protection model.Protection
	FireResist bool
}

// Pool is a body of water. Entities inside its radius are submerged
// according to Depth.
type Pool struct {
	Center model.Location
	Radius float64
	Depth  model.Submersion
}

// DeathFunc is called after a combatant dies and leaves the world.
type DeathFunc func(c Combatant, killer model.DamageKind)

// World implements model.Host and model.StatQuery over in-memory
// combatants. Safe for concurrent use.
type World struct {
	mu       sync.RWMutex
	entities map[model.ObjectID]*Combatant
	pools    []Pool
	raining  bool

	nextID   atomic.Uint32
	perLevel int
	armor    Armor
	filter   IncomingFilter
	onDeath  []DeathFunc
}

// NewWorld creates an empty arena. perLevel is the points one enchant
// level is worth.
func NewWorld(perLevel int, armor Armor) *World {
	w := &World{
		entities: make(map[model.ObjectID]*Combatant),
		perLevel: perLevel,
		armor:    armor,
	}
	w.nextID.Store(0x20000000)
	return w
}

// SetFilter installs the engine damage filter. Must be called before the
// first tick.
func (w *World) SetFilter(f IncomingFilter) { w.filter = f }

// OnDeath registers fn to run when a combatant dies.
func (w *World) OnDeath(fn DeathFunc) { w.onDeath = append(w.onDeath, fn) }

// AddPool adds a body of water.
func (w *World) AddPool(p Pool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pools = append(w.pools, p)
}

// SetRaining switches precipitation over the whole arena.
func (w *World) SetRaining(on bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.raining != on {
		slog.Info("weather changed", "raining", on)
	}
	w.raining = on
}

// Raining reports whether it rains.
func (w *World) Raining() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.raining
}

// Add places c in the world, assigning an ID. Returns the ID.
func (w *World) Add(c Combatant) model.ObjectID {
	c.ID = model.ObjectID(w.nextID.Add(1))
	if c.Health <= 0 {
		c.Health = c.MaxHealth
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.entities[c.ID] = &c
	return c.ID
}

// Get returns a copy of the combatant.
func (w *World) Get(id model.ObjectID) (Combatant, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.entities[id]
	if !ok {
		return Combatant{}, false
	}
	return *c, true
}

// Move sets the location of id.
func (w *World) Move(id model.ObjectID, loc model.Location) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if c, ok := w.entities[id]; ok {
		c.Location = loc
	}
}

// Count returns the number of living combatants.
func (w *World) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entities)
}

// Teams returns the number of living combatants per team.
func (w *World) Teams() map[int]int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	teams := make(map[int]int)
	for _, c := range w.entities {
		teams[c.Team]++
	}
	return teams
}

func (w *World) get(id model.ObjectID) (*Combatant, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.entities[id]
	return c, ok
}

// model.Host

func (w *World) Exists(id model.ObjectID) bool {
	_, ok := w.get(id)
	return ok
}

// Living returns IDs in ascending order.
func (w *World) Living() []model.ObjectID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	ids := make([]model.ObjectID, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (w *World) Location(id model.ObjectID) (model.Location, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.entities[id]
	if !ok {
		return model.Location{}, false
	}
	return c.Location, true
}

func (w *World) Dimension(id model.ObjectID) string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if c, ok := w.entities[id]; ok {
		return c.Dimension
	}
	return ""
}

func (w *World) EntityType(id model.ObjectID) string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if c, ok := w.entities[id]; ok {
		return c.Type
	}
	return ""
}

func (w *World) Traits(id model.ObjectID) model.Traits {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if c, ok := w.entities[id]; ok {
		return c.Traits
	}
	return model.Traits{}
}

// Submersion reports the deepest pool covering id.
func (w *World) Submersion(id model.ObjectID) model.Submersion {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.entities[id]
	if !ok {
		return model.SubmersionNone
	}
	deepest := model.SubmersionNone
	for _, p := range w.pools {
		if p.Center.Within(c.Location, p.Radius) && p.Depth > deepest {
			deepest = p.Depth
		}
	}
	return deepest
}

// InPrecipitation is true for every entity while it rains, except those
// under water.
func (w *World) InPrecipitation(id model.ObjectID) bool {
	return w.Raining() && w.Exists(id) && w.Submersion(id) != model.SubmersionFull
}

func (w *World) FireResistanceActive(id model.ObjectID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if c, ok := w.entities[id]; ok {
		return c.FireResist
	}
	return false
}

func (w *World) Protection(id model.ObjectID) model.Protection {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if c, ok := w.entities[id]; ok {
		return c.Protection
	}
	return model.Protection{}
}

// Damage applies armor, passes fire and scald through the engine filter
// and subtracts the rest from health. Dead combatants leave the world.
func (w *World) Damage(id model.ObjectID, amount float64, kind model.DamageKind) {
	c, ok := w.get(id)
	if !ok || amount <= 0 {
		return
	}

	switch kind {
	case model.DamageFire, model.DamageScald:
		amount = w.armor.reduce(amount, c.Protection.EPF)
		if w.filter != nil {
			amount = w.filter.IncomingDamage(id, kind, amount)
		}
	case model.DamageScorched, model.DamageThermalShock:
		amount = w.armor.reduce(amount, c.Protection.EPF)
	}
	if amount <= 0 {
		return
	}

	w.mu.Lock()
	c.Health -= amount
	dead := c.Health <= 0
	var corpse Combatant
	if dead {
		corpse = *c
		delete(w.entities, id)
	}
	w.mu.Unlock()

	slog.Debug("damage dealt", "objectID", id, "amount", amount, "kind", kind, "health", c.Health)

	if dead {
		slog.Info("combatant died", "key", corpse.Key, "type", corpse.Type, "by", kind)
		for _, fn := range w.onDeath {
			fn(corpse, kind)
		}
	}
}

func (w *World) Heal(id model.ObjectID, amount float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if c, ok := w.entities[id]; ok && amount > 0 {
		c.Health = min(c.Health+amount, c.MaxHealth)
	}
}

// Near returns IDs within radius of loc, ascending.
func (w *World) Near(loc model.Location, radius float64) []model.ObjectID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var ids []model.ObjectID
	for id, c := range w.entities {
		if loc.Within(c.Location, radius) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// model.StatQuery

func (w *World) Totals(id model.ObjectID) element.Totals {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if c, ok := w.entities[id]; ok {
		return element.Aggregate(c.Equipment, w.perLevel)
	}
	return element.Totals{}
}

func (w *World) AttackElement(id model.ObjectID) element.Element {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if c, ok := w.entities[id]; ok {
		return element.AttackElement(c.Equipment)
	}
	return element.None
}

func (w *World) DominantElement(id model.ObjectID) element.Element {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if c, ok := w.entities[id]; ok {
		return element.Dominant(c.Equipment)
	}
	return element.None
}
