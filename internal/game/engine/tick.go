package engine

import (
	"github.com/udisondev/elemental/internal/game/status"
	"github.com/udisondev/elemental/internal/game/steam"
	"github.com/udisondev/elemental/internal/game/wetness"
	"github.com/udisondev/elemental/internal/model"
)

// Tick advances the engine by one host tick.
//
// Per living entity: immunity check, wetness sample (on cadence),
// scorched tick, steam cloud effects (on cadence). Then clouds count down,
// the deferred queue drains and the clock advances.
func (e *Engine) Tick() {
	e.refresh()
	p := e.p
	now := e.now

	wetDue := onCadence(now, p.WetnessSampleInterval)
	steamDue := onCadence(now, p.SteamSampleInterval)

	var exposures map[model.ObjectID]steam.Exposure
	if steamDue {
		exposures = e.clouds.Exposures(e.host.Near)
	}

	for _, id := range e.host.Living() {
		e.tickEntity(id, now, wetDue, steamDue, exposures[id])
	}

	e.clouds.Tick()
	e.deferred.Drain()

	if p.CompactInterval > 0 && onCadence(now, p.CompactInterval) {
		e.compact(now)
	}
	e.now++
}

func onCadence(now status.Tick, interval int) bool {
	return now%status.Tick(max(interval, 1)) == 0
}

func (e *Engine) tickEntity(id model.ObjectID, now status.Tick, wetDue, steamDue bool, exp steam.Exposure) {
	p := e.p
	if !e.host.Exists(id) {
		return
	}
	if e.blacklisted(id) {
		e.store.Clear(id)
		return
	}
	traits := e.host.Traits(id)

	if wetDue {
		env := wetness.Environment{
			Immune:          traits.WaterNative,
			Submersion:      e.host.Submersion(id),
			InPrecipitation: e.host.InPrecipitation(id),
		}
		if _, ok := e.store.Peek(id); ok || (!env.Immune && (env.Submersion.InLiquid() || env.InPrecipitation)) {
			e.wet.Sample(e.store.Get(id), env, p.WetnessSampleInterval)
		}
	}

	if st, ok := e.store.Peek(id); ok && st.IsScorched() {
		out := e.burn.Tick(st, e.scorchedTarget(id))
		if out.Damage > 0 {
			e.host.Damage(id, out.Damage, out.Kind)
		}
		if out.ThermalShock {
			e.traceReaction("thermal_shock", id, id, 0, out.Damage)
			e.deferred.Push(func() {
				if st, ok := e.store.Peek(id); ok {
					st.ClearScorched()
				}
			})
		}
	}

	if steamDue {
		e.sampleSteam(id, now, traits, exp)
	}

	if st, ok := e.store.Peek(id); ok && st.Infected && !st.IsWet() {
		st.ClearInfection()
	}
}

func (e *Engine) sampleSteam(id model.ObjectID, now status.Tick, traits model.Traits, exp steam.Exposure) {
	st, ok := e.store.Peek(id)
	if exp.High == nil && exp.Low == nil {
		if ok {
			st.CondensationTicks = 0
		}
		return
	}
	if !ok {
		st = e.store.Get(id)
	}

	victim := steam.Victim{ColdOrNature: coldOrNature(e.dominantOf(id), traits)}
	out := steam.Sample(st, exp, victim, now, e.p.SteamSampleInterval, e.p.Effects)

	if out.StripWetness {
		e.wet.Strip(st)
	}
	if out.GrantWetness && !traits.WaterNative {
		e.wet.Add(st, 1)
		e.traceReaction("condensation", exp.Low.Source, id, st.WetnessLevel, 1)
	}
	if out.Scald > 0 {
		e.host.Damage(id, out.Scald, model.DamageScald)
		e.traceReaction("scald", exp.High.Source, id, exp.High.Level, out.Scald)
	}
}

// compact drops idle statuses and granted attributes of entities that left.
func (e *Engine) compact(now status.Tick) {
	e.store.Compact(now, e.host.Exists)
	for id := range e.granted {
		if !e.host.Exists(id) {
			delete(e.granted, id)
		}
	}
}
