package engine

import (
	"github.com/udisondev/elemental/internal/game/status"
	"github.com/udisondev/elemental/internal/model"
)

// EffectKind identifies a side effect of a resolved hit.
type EffectKind uint8

const (
	// EffectStripWetness dries the entity now and again at the end of the tick.
	EffectStripWetness EffectKind = iota + 1
	// EffectDryAttacker removes wetness layers from a self-drying attacker at
	// the end of the tick. The cooldown is stamped immediately.
	EffectDryAttacker
	// EffectSpawnCloud spawns a steam cloud at the end of the tick.
	EffectSpawnCloud
	// EffectIgnite applies scorched to the entity at the end of the tick.
	EffectIgnite
	// EffectDrain absorbs wetness from the entity and heals the source now.
	EffectDrain
)

func (k EffectKind) String() string {
	switch k {
	case EffectStripWetness:
		return "strip_wetness"
	case EffectDryAttacker:
		return "self_drying"
	case EffectSpawnCloud:
		return "spawn_cloud"
	case EffectIgnite:
		return "wildfire"
	case EffectDrain:
		return "parasitic_drain"
	default:
		return "unknown"
	}
}

// SideEffect is a state change requested by a resolved hit. Fields not
// used by Kind are zero.
type SideEffect struct {
	Kind   EffectKind
	Entity model.ObjectID // entity whose state changes
	Source model.ObjectID // entity that caused it

	Layers   int
	Heal     float64
	Level    int
	HighHeat bool
	Location model.Location

	Strength      int
	DurationTicks int

	// CooldownUntil is stamped on Source (Entity for self-drying).
	CooldownUntil status.Tick
}

// apply performs the immediate part of fx and queues the deferred part.
func (e *Engine) apply(fx SideEffect) {
	switch fx.Kind {
	case EffectStripWetness:
		if st, ok := e.store.Peek(fx.Entity); ok {
			e.wet.Strip(st)
		}
		id := fx.Entity
		e.deferred.Push(func() {
			if st, ok := e.store.Peek(id); ok {
				e.wet.Strip(st)
			}
		})

	case EffectDryAttacker:
		e.store.Get(fx.Entity).SelfDryingCooldownUntil = fx.CooldownUntil
		id, layers := fx.Entity, fx.Layers
		e.deferred.Push(func() {
			if st, ok := e.store.Peek(id); ok {
				e.wet.Remove(st, layers)
			}
		})
		e.traceReaction("self_drying", fx.Entity, fx.Entity, fx.Layers, 0)

	case EffectSpawnCloud:
		loc, high, level, source := fx.Location, fx.HighHeat, fx.Level, fx.Source
		e.deferred.Push(func() {
			c := e.clouds.Spawn(loc, high, level, source)
			kind := "low_heat"
			if high {
				kind = "high_heat"
			}
			e.traceReaction(kind, source, 0, c.Level, c.Radius)
		})

	case EffectIgnite:
		e.store.Get(fx.Source).WildfireCooldownUntil = fx.CooldownUntil
		target, strength, ticks, source := fx.Entity, fx.Strength, fx.DurationTicks, fx.Source
		e.deferred.Push(func() {
			if e.ApplyScorched(target, strength, ticks) {
				e.traceReaction("wildfire", source, target, strength, float64(ticks))
			}
		})

	case EffectDrain:
		st := e.store.Get(fx.Entity)
		removed := e.wet.Remove(st, fx.Layers)
		if removed == 0 {
			return
		}
		st.Infected = true
		st.InfectionSource = fx.Source
		e.store.Get(fx.Source).ParasiticCooldownUntil = fx.CooldownUntil
		if fx.Heal > 0 && e.host.Exists(fx.Source) {
			e.host.Heal(fx.Source, fx.Heal*float64(removed))
		}
		e.traceReaction("parasitic_drain", fx.Source, fx.Entity, removed, fx.Heal*float64(removed))
	}
}
