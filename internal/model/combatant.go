package model

import "github.com/udisondev/elemental/internal/element"

// ObjectID identifies a living entity in the host world.
type ObjectID uint32

// Traits are the permanent type-level properties of an entity that the
// reaction engine cares about.
type Traits struct {
	WaterNative    bool // never gets wet
	FireImmune     bool // permanently fire-immune
	ColdTyped      bool // cold creature, weak to steam
	NatureTyped    bool // plant/nature creature, weak to steam and fire
	ImmuneToReacts bool // host-side type exclusion from every reaction
}

// Submersion describes how deep an entity stands in liquid.
type Submersion uint8

const (
	SubmersionNone Submersion = iota
	// SubmersionShallow means the liquid column is shallower than the entity.
	SubmersionShallow
	// SubmersionPartial means the entity stands in liquid at least its own height deep
	// but its eyes are still above the surface.
	SubmersionPartial
	// SubmersionFull means the entity is fully under water.
	SubmersionFull
)

// InLiquid reports whether the entity touches liquid at all.
func (s Submersion) InLiquid() bool { return s != SubmersionNone }

// DamageKind tags damage dealt or received through the host.
type DamageKind uint8

const (
	DamageGeneric DamageKind = iota
	// DamageFire is regular burning/lava damage from the host.
	DamageFire
	// DamageScorched is the scorched status channel.
	DamageScorched
	// DamageScald is steam cloud scalding.
	DamageScald
	// DamageThermalShock is the one-shot burst when a scorched entity submerges.
	DamageThermalShock
)

func (k DamageKind) String() string {
	switch k {
	case DamageFire:
		return "fire"
	case DamageScorched:
		return "scorched"
	case DamageScald:
		return "scald"
	case DamageThermalShock:
		return "thermal_shock"
	default:
		return "generic"
	}
}

// Protection holds protection-enchantment levels worn by an entity.
type Protection struct {
	// Fire is the total fire-protection-equivalent level.
	Fire int
	// General is the total general-protection-equivalent level.
	General int
	// EPF is the enchantment protection factor the host already applied to
	// the incoming amount for the damage kind being processed.
	EPF int
}

// Host is the world the engine runs in. All methods must be cheap and
// callable every tick. Queries about entities that no longer exist return
// zero values and ok=false where applicable.
//
// Damage dealt through the host runs through the host's own armor; fire
// and scald damage should then be passed to the engine's IncomingDamage
// before being subtracted from health.
type Host interface {
	Exists(id ObjectID) bool
	Living() []ObjectID
	Location(id ObjectID) (Location, bool)
	Dimension(id ObjectID) string
	EntityType(id ObjectID) string
	Traits(id ObjectID) Traits
	Submersion(id ObjectID) Submersion
	InPrecipitation(id ObjectID) bool
	FireResistanceActive(id ObjectID) bool
	Protection(id ObjectID) Protection
	Damage(id ObjectID, amount float64, kind DamageKind)
	Heal(id ObjectID, amount float64)
	Near(loc Location, radius float64) []ObjectID
}

// StatQuery answers elemental stat questions about an entity's equipment.
type StatQuery interface {
	Totals(id ObjectID) element.Totals
	AttackElement(id ObjectID) element.Element
	DominantElement(id ObjectID) element.Element
}
