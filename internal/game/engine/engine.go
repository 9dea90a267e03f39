// Package engine dispatches hits and ticks to the elemental reaction
// components and applies their side effects.
package engine

import (
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/elemental/internal/element"
	"github.com/udisondev/elemental/internal/game/damage"
	"github.com/udisondev/elemental/internal/game/nature"
	"github.com/udisondev/elemental/internal/game/pointroll"
	"github.com/udisondev/elemental/internal/game/scorched"
	"github.com/udisondev/elemental/internal/game/status"
	"github.com/udisondev/elemental/internal/game/steam"
	"github.com/udisondev/elemental/internal/game/wetness"
	"github.com/udisondev/elemental/internal/model"
	"github.com/udisondev/elemental/internal/trace"
)

// Engine is the elemental damage and reaction engine of one world.
//
// Not safe for concurrent use: hits, damage hooks and Tick must all be
// called from the goroutine driving the host tick loop.
type Engine struct {
	host     model.Host
	stats    model.StatQuery
	settings Settings
	sink     trace.Sink
	rng      *rand.Rand

	p        *Params
	wet      *wetness.Machine
	burn     *scorched.Engine
	resolver *pointroll.Resolver

	store    *status.Store
	clouds   *steam.Field
	deferred Deferred
	granted  map[model.ObjectID]pointroll.Attributes
	now      status.Tick
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink sets the observability sink.
func WithSink(s trace.Sink) Option {
	return func(e *Engine) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithRand sets the random source used by attribute rolls.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithStore makes the engine use an existing status store.
func WithStore(s *status.Store) Option {
	return func(e *Engine) {
		if s != nil {
			e.store = s
		}
	}
}

// New creates an Engine for host.
func New(host model.Host, stats model.StatQuery, settings Settings, opts ...Option) *Engine {
	e := &Engine{
		host:     host,
		stats:    stats,
		settings: settings,
		sink:     trace.Nop{},
		store:    status.NewStore(),
		granted:  make(map[model.ObjectID]pointroll.Attributes),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e.refresh()
	return e
}

// refresh rebuilds the components when the settings hand out a new
// parameter snapshot.
func (e *Engine) refresh() {
	p := e.settings.EngineParams()
	if p == e.p {
		return
	}
	if p == nil {
		if e.p != nil {
			return
		}
		p = &Params{}
	}

	e.p = p
	e.wet = wetness.NewMachine(p.Wetness)
	e.burn = scorched.NewEngine(p.Scorched)
	e.resolver = pointroll.NewResolver(e.rng, p.MaxTotalPoints)
	if e.clouds == nil {
		e.clouds = steam.NewField(p.Clouds)
	} else {
		e.clouds.Configure(p.Clouds)
	}

	slog.Debug("engine parameters applied",
		"ticksPerSecond", p.TicksPerSecond,
		"maxWetness", e.wet.MaxLevel(),
		"maxTotalPoints", p.MaxTotalPoints)
}

// Now returns the current engine tick.
func (e *Engine) Now() status.Tick { return e.now }

// Store exposes the status store, for persistence.
func (e *Engine) Store() *status.Store { return e.store }

// Clouds exposes the live steam clouds.
func (e *Engine) Clouds() *steam.Field { return e.clouds }

// MaxWetness returns the configured maximum wetness level.
func (e *Engine) MaxWetness() int {
	e.refresh()
	return e.wet.MaxLevel()
}

// HitEvent is one melee or projectile hit reported by the host.
type HitEvent struct {
	Attacker model.ObjectID
	Target   model.ObjectID
	Physical float64
}

// HitOutcome is the resolution of a hit. Nothing is mutated until the
// side effects are applied.
type HitOutcome struct {
	Damage      float64
	Pipeline    damage.Result
	Infection   float64
	Decision    steam.Decision
	SideEffects []SideEffect
	// Trace is nil unless the sink is enabled.
	Trace *trace.HitTrace
}

// ResolveHit computes the final damage of a hit and the side effects it
// causes. Order: stat totals, damage pipeline, nature infection, steam
// trigger (self-drying scales the same hit), nature reactions.
func (e *Engine) ResolveHit(ev HitEvent) HitOutcome {
	e.refresh()
	p := e.p

	out := HitOutcome{
		Damage:    max(ev.Physical, 0),
		Infection: 1,
		Decision:  steam.Decision{DamageFactor: 1},
	}
	if !e.host.Exists(ev.Attacker) || !e.host.Exists(ev.Target) {
		return out
	}

	attack := e.attackOf(ev.Attacker)
	attackerTotals := e.totalsOf(ev.Attacker)
	targetTotals := e.totalsOf(ev.Target)
	targetTraits := e.host.Traits(ev.Target)
	targetDominant := e.dominantOf(ev.Target)
	targetBlocked := e.blacklisted(ev.Target)
	reactive := !targetBlocked && !e.blacklisted(ev.Attacker)

	// Wetness and infection feed the damage formula, so the target state is
	// read whenever the target itself is not blacklisted.
	var targetSt, attackerSt status.Combatant
	if !targetBlocked {
		targetSt, _ = e.store.Snapshot(ev.Target)
	}
	if reactive {
		attackerSt, _ = e.store.Snapshot(ev.Attacker)
	}

	out.Pipeline = damage.Resolve(damage.Input{
		Physical:       max(ev.Physical, 0),
		Enhancement:    attackerTotals.Enhance(attack),
		Resistance:     targetTotals.Resist(attack),
		WetnessLevel:   targetSt.WetnessLevel,
		AttackElement:  attack,
		TargetDominant: targetDominant,
	}, p.Damage)

	out.Infection = nature.InfectionMultiplier(attack, targetSt.Infected, p.Nature)
	total := out.Pipeline.Physical + out.Pipeline.FinalElemental*out.Infection

	if reactive && attack.Valid() {
		out.Decision = steam.Evaluate(steam.TriggerInput{
			AttackElement:   attack,
			AttackerWetness: attackerSt.WetnessLevel,
			AttackerTotals:  attackerTotals,
			SelfDryingReady: e.now >= attackerSt.SelfDryingCooldownUntil,
			TargetWetness:   targetSt.WetnessLevel,
			TargetDominant:  targetDominant,
			TargetTotals:    targetTotals,
		}, p.Trigger)
		out.SideEffects = e.steamEffects(ev, out.Decision)

		natureDominant := targetDominant
		if targetTraits.NatureTyped {
			natureDominant = element.Nature
		}
		if ign, ok := nature.Wildfire(nature.WildfireInput{
			AttackElement:   attack,
			AttackerFireEnh: attackerTotals.Enhance(element.Fire),
			TargetDominant:  natureDominant,
			CooldownUntil:   attackerSt.WildfireCooldownUntil,
			Now:             e.now,
		}, p.Nature); ok {
			out.SideEffects = append(out.SideEffects, SideEffect{
				Kind:          EffectIgnite,
				Entity:        ev.Target,
				Source:        ev.Attacker,
				Strength:      ign.Strength,
				DurationTicks: ign.DurationTicks,
				CooldownUntil: ign.CooldownUntil,
			})
		}

		if dr, ok := nature.ParasiticDrain(nature.DrainInput{
			AttackElement: attack,
			TargetWetness: targetSt.WetnessLevel,
			CooldownUntil: attackerSt.ParasiticCooldownUntil,
			Now:           e.now,
		}, p.Nature); ok {
			out.SideEffects = append(out.SideEffects, SideEffect{
				Kind:          EffectDrain,
				Entity:        ev.Target,
				Source:        ev.Attacker,
				Layers:        dr.Layers,
				Heal:          dr.Heal,
				CooldownUntil: dr.CooldownUntil,
			})
		}
	}

	out.Damage = max(total*out.Decision.DamageFactor, 0)

	if e.sink.Enabled() {
		out.Trace = &trace.HitTrace{
			Tick:           int64(e.now),
			Attacker:       ev.Attacker,
			Target:         ev.Target,
			Element:        attack,
			TargetDominant: targetDominant,
			TargetWetness:  targetSt.WetnessLevel,
			Pipeline:       out.Pipeline,
			Infection:      out.Infection,
			Reaction:       out.Decision.Kind.String(),
			DamageFactor:   out.Decision.DamageFactor,
			Final:          out.Damage,
		}
	}
	return out
}

func (e *Engine) steamEffects(ev HitEvent, d steam.Decision) []SideEffect {
	switch d.Kind {
	case steam.DecisionSelfDrying:
		return []SideEffect{{
			Kind:          EffectDryAttacker,
			Entity:        ev.Attacker,
			Source:        ev.Attacker,
			Layers:        d.LayersRemoved,
			CooldownUntil: e.now + status.Tick(max(e.p.SelfDryingCooldownTicks, 0)),
		}}

	case steam.DecisionHighHeat, steam.DecisionLowHeat:
		loc, ok := e.host.Location(ev.Target)
		if !ok {
			return nil
		}
		high := d.Kind == steam.DecisionHighHeat
		var fx []SideEffect
		if d.StripTarget {
			fx = append(fx, SideEffect{Kind: EffectStripWetness, Entity: ev.Target, Source: ev.Attacker})
		}
		return append(fx, SideEffect{
			Kind:     EffectSpawnCloud,
			Entity:   ev.Target,
			Source:   ev.Attacker,
			Level:    d.Level,
			HighHeat: high,
			Location: loc,
		})
	}
	return nil
}

// HandleHit resolves a hit, reports it, applies its side effects and
// returns the damage the host should deal.
func (e *Engine) HandleHit(ev HitEvent) float64 {
	out := e.ResolveHit(ev)
	if out.Trace != nil {
		e.sink.Hit(*out.Trace)
	}
	for _, fx := range out.SideEffects {
		e.apply(fx)
	}
	return out.Damage
}

// IncomingDamage filters damage the host is about to deal to target.
// Regular fire is dropped while the target is scorched; scald goes through
// the steam defense. Other kinds pass unchanged.
func (e *Engine) IncomingDamage(target model.ObjectID, kind model.DamageKind, amount float64) float64 {
	e.refresh()
	if amount <= 0 {
		return 0
	}

	switch kind {
	case model.DamageFire:
		if st, ok := e.store.Peek(target); ok && e.burn.SuppressFire(st, kind) {
			return 0
		}
	case model.DamageScald:
		if !e.host.Exists(target) {
			return 0
		}
		return steam.Defend(amount, e.defenseView(target), e.p.Defense).Final
	}
	return amount
}

// Splash applies an instant splash of water to id.
func (e *Engine) Splash(id model.ObjectID) {
	e.refresh()
	if !e.host.Exists(id) || e.blacklisted(id) || e.host.Traits(id).WaterNative {
		return
	}
	e.wet.Splash(e.store.Get(id))
}

// ApplyScorched sets id on fire. Wetness halves the duration and loses a
// layer. Returns whether the status was applied.
func (e *Engine) ApplyScorched(id model.ObjectID, strength, durationTicks int) bool {
	e.refresh()
	if !e.host.Exists(id) || e.blacklisted(id) {
		return false
	}

	st := e.store.Get(id)
	wet := st.IsWet()
	if wet {
		durationTicks = max(durationTicks/2, 1)
	}
	if !e.burn.Apply(st, e.scorchedTarget(id), strength, durationTicks, e.now) {
		return false
	}
	if wet {
		e.wet.Remove(st, 1)
	}
	return true
}

// ApplyForced resolves a forced attribute spec and grants it to id.
// Ranges are re-rolled on every call.
func (e *Engine) ApplyForced(id model.ObjectID, spec pointroll.ForcedSpec) pointroll.Attributes {
	e.refresh()
	attrs := e.resolver.ResolveForced(spec, e.p.PointsStep, e.p.Tiers)
	e.grant(id, attrs)
	return attrs
}

// RollRandom performs a procedural attribute roll for a spawning entity.
func (e *Engine) RollRandom(id model.ObjectID, roll pointroll.RandomRoll) (pointroll.Attributes, bool) {
	e.refresh()
	attrs, ok := e.resolver.RollRandom(roll, e.p.PointsStep, e.p.Tiers)
	if ok {
		e.grant(id, attrs)
	}
	return attrs, ok
}

func (e *Engine) grant(id model.ObjectID, attrs pointroll.Attributes) {
	if attrs.Empty() {
		delete(e.granted, id)
		return
	}
	e.granted[id] = attrs
	slog.Debug("attributes granted",
		"objectID", id,
		"attack", attrs.AttackElement,
		"enhance", attrs.EnhancePoints,
		"resist", attrs.ResistPoints)
}

// Granted returns the forced or rolled attributes of id.
func (e *Engine) Granted(id model.ObjectID) (pointroll.Attributes, bool) {
	a, ok := e.granted[id]
	return a, ok
}

// Forget drops everything the engine keeps about id.
func (e *Engine) Forget(id model.ObjectID) {
	e.store.Forget(id)
	delete(e.granted, id)
}

// Defer queues a host mutation for the end of the current tick. It runs in
// push order with the engine's own deferred actions.
func (e *Engine) Defer(a Action) {
	e.deferred.Push(a)
}

// blacklisted reports whether id is excluded from every reaction.
func (e *Engine) blacklisted(id model.ObjectID) bool {
	if e.host.Traits(id).ImmuneToReacts {
		return true
	}
	return e.p.Immunity.Excludes(e.host.EntityType(id), e.host.Dimension(id))
}

// totalsOf is equipment totals plus granted attributes, under the
// aggregate cap.
func (e *Engine) totalsOf(id model.ObjectID) element.Totals {
	t := e.stats.Totals(id)
	if a, ok := e.granted[id]; ok {
		t = t.Plus(a.Totals())
	}
	return t.Capped(e.p.MaxTotalPoints)
}

func (e *Engine) attackOf(id model.ObjectID) element.Element {
	if el := e.stats.AttackElement(id); el.Valid() {
		return el
	}
	return e.granted[id].AttackElement
}

// dominantOf follows the attack > enhancement > resistance priority, with
// equipment ahead of granted attributes.
func (e *Engine) dominantOf(id model.ObjectID) element.Element {
	if el := e.stats.DominantElement(id); el.Valid() {
		return el
	}
	a := e.granted[id]
	for _, el := range [...]element.Element{a.AttackElement, a.EnhanceElement, a.ResistElement} {
		if el.Valid() {
			return el
		}
	}
	return element.None
}

func coldOrNature(dominant element.Element, tr model.Traits) bool {
	return tr.ColdTyped || tr.NatureTyped || dominant == element.Frost || dominant == element.Nature
}

func (e *Engine) scorchedTarget(id model.ObjectID) scorched.Target {
	tr := e.host.Traits(id)
	return scorched.Target{
		Blacklisted:      e.blacklisted(id),
		FireImmune:       tr.FireImmune,
		NatureDominant:   tr.NatureTyped || e.dominantOf(id) == element.Nature,
		FireResistPoints: e.totalsOf(id).Resist(element.Fire),
		Protection:       e.host.Protection(id),
		Submersion:       e.host.Submersion(id),
	}
}

func (e *Engine) defenseView(id model.ObjectID) steam.DefenseView {
	tr := e.host.Traits(id)
	return steam.DefenseView{
		FireImmune:       tr.FireImmune,
		FireResistActive: e.host.FireResistanceActive(id),
		Blacklisted:      e.blacklisted(id),
		FireResistPoints: e.totalsOf(id).Resist(element.Fire),
		ColdOrNature:     coldOrNature(e.dominantOf(id), tr),
		Protection:       e.host.Protection(id),
	}
}

func (e *Engine) traceReaction(kind string, source, target model.ObjectID, level int, amount float64) {
	if !e.sink.Enabled() {
		return
	}
	e.sink.Reaction(trace.ReactionTrace{
		Tick:   int64(e.now),
		Kind:   kind,
		Source: source,
		Target: target,
		Level:  level,
		Amount: amount,
	})
}
