package arena

import (
	"log/slog"
	"math"

	"github.com/udisondev/elemental/internal/element"
	"github.com/udisondev/elemental/internal/game/engine"
	"github.com/udisondev/elemental/internal/model"
)

// Placement is one roster slot.
type Placement struct {
	Template Template
	Team     int
	Location model.Location
}

// BrawlConfig tunes the scripted fight, in ticks and blocks.
type BrawlConfig struct {
	SwingTicks   int     // ticks between swings of each combatant
	Reach        float64 // melee range
	Speed        float64 // blocks moved per swing when out of reach
	IgniteTicks  int     // scorched duration from fire weapons
	WeatherTicks int     // rain toggles this often, 0 = never
}

// DefaultBrawlConfig is tuned for 20 ticks per second.
func DefaultBrawlConfig() BrawlConfig {
	return BrawlConfig{
		SwingTicks:   20,
		Reach:        2.5,
		Speed:        1.5,
		IgniteTicks:  60,
		WeatherTicks: 600,
	}
}

// Brawl is the scripted fight: every combatant walks to the nearest enemy
// and swings at it. When one team is wiped the roster respawns.
type Brawl struct {
	world   *World
	spawner *Spawner
	roster  []Placement
	cfg     BrawlConfig
	tick    int
	rounds  int
}

// NewBrawl creates a Brawl and spawns the first round.
func NewBrawl(w *World, s *Spawner, roster []Placement, cfg BrawlConfig) *Brawl {
	b := &Brawl{world: w, spawner: s, roster: roster, cfg: cfg}
	b.spawnRound()
	return b
}

// Rounds returns the number of rounds started.
func (b *Brawl) Rounds() int { return b.rounds }

// Step runs one tick of the script. Register it with Runner.OnTick.
func (b *Brawl) Step(e *engine.Engine) {
	b.tick++

	if b.cfg.WeatherTicks > 0 && b.tick%b.cfg.WeatherTicks == 0 {
		b.world.SetRaining(!b.world.Raining())
	}

	if b.cfg.SwingTicks > 0 && b.tick%b.cfg.SwingTicks == 0 {
		for _, id := range b.world.Living() {
			b.act(e, id)
		}
	}

	if len(b.world.Teams()) < 2 {
		slog.Info("round over", "round", b.rounds, "survivors", b.world.Count())
		b.spawnRound()
	}
}

func (b *Brawl) spawnRound() {
	b.rounds++
	for _, p := range b.roster {
		b.spawner.Spawn(p.Template, p.Team, p.Location)
	}
}

func (b *Brawl) act(e *engine.Engine, id model.ObjectID) {
	me, ok := b.world.Get(id)
	if !ok {
		return
	}
	target, ok := b.nearestEnemy(me)
	if !ok {
		return
	}

	if !me.Location.Within(target.Location, b.cfg.Reach) {
		b.world.Move(id, step(me.Location, target.Location, b.cfg.Speed))
		return
	}

	dmg := e.HandleHit(engine.HitEvent{Attacker: id, Target: target.ID, Physical: me.Attack})
	b.world.Damage(target.ID, dmg, model.DamageGeneric)

	if !b.world.Exists(target.ID) {
		return
	}
	switch element.AttackElement(me.Equipment) {
	case element.Fire:
		strength := b.world.Totals(id).Enhance(element.Fire)
		e.ApplyScorched(target.ID, strength, b.cfg.IgniteTicks)
	case element.Frost:
		if me.Traits.WaterNative {
			e.Splash(target.ID)
		}
	}
}

func (b *Brawl) nearestEnemy(me Combatant) (Combatant, bool) {
	var (
		best  Combatant
		bestD = math.Inf(1)
		found bool
	)
	for _, id := range b.world.Living() {
		c, ok := b.world.Get(id)
		if !ok || c.Team == me.Team {
			continue
		}
		if d := me.Location.DistanceSquared(c.Location); d < bestD {
			best, bestD, found = c, d, true
		}
	}
	return best, found
}

// step moves from toward to by at most dist.
func step(from, to model.Location, dist float64) model.Location {
	d := math.Sqrt(from.DistanceSquared(to))
	if d <= dist || d == 0 {
		return to
	}
	k := dist / d
	return from.WithCoordinates(
		from.X+(to.X-from.X)*k,
		from.Y+(to.Y-from.Y)*k,
		from.Z+(to.Z-from.Z)*k,
	)
}

// DefaultRoster pits a fire and water party against nature and frost
// creatures around a pool in the middle of the arena.
func DefaultRoster() []Placement {
	enchant := func(kind element.Kind, el element.Element, level int) element.ItemEnchant {
		return element.ItemEnchant{Kind: kind, Element: el, Level: level}
	}

	return []Placement{
		{
			Team:     0,
			Location: model.NewLocation(-12, 0, 0),
			Template: Template{
				Type:      "pyromancer",
				MaxHealth: 120,
				Attack:    9,
				Equipment: [][]element.ItemEnchant{
					{enchant(element.KindAttack, element.Fire, 1), enchant(element.KindEnhance, element.Fire, 7)},
					{enchant(element.KindResist, element.Frost, 2)},
				},
				Protection: model.Protection{Fire: 2, General: 1, EPF: 4},
			},
		},
		{
			Team:     0,
			Location: model.NewLocation(-12, 0, 4),
			Template: Template{
				Type:      "tidecaller",
				Traits:    model.Traits{WaterNative: true},
				MaxHealth: 110,
				Attack:    7,
				Equipment: [][]element.ItemEnchant{
					{enchant(element.KindAttack, element.Frost, 1), enchant(element.KindEnhance, element.Frost, 4)},
				},
				Protection: model.Protection{General: 2, EPF: 2},
			},
		},
		{
			Team:     0,
			Location: model.NewLocation(-12, 0, -4),
			Template: Template{
				Type:      "stormcaller",
				MaxHealth: 100,
				Attack:    8,
				Equipment: [][]element.ItemEnchant{
					{enchant(element.KindAttack, element.Thunder, 1), enchant(element.KindEnhance, element.Thunder, 5)},
				},
			},
		},
		{
			Team:     1,
			Location: model.NewLocation(12, 0, 0),
			Template: Template{
				Type:      "treant",
				Traits:    model.Traits{NatureTyped: true},
				MaxHealth: 160,
				Attack:    8,
				Equipment: [][]element.ItemEnchant{
					{enchant(element.KindAttack, element.Nature, 1), enchant(element.KindEnhance, element.Nature, 5)},
				},
			},
		},
		{
			Team:     1,
			Location: model.NewLocation(12, 0, 4),
			Template: Template{
				Type:      "frost_wraith",
				Traits:    model.Traits{ColdTyped: true},
				MaxHealth: 90,
				Attack:    9,
				Equipment: [][]element.ItemEnchant{
					{enchant(element.KindAttack, element.Frost, 1), enchant(element.KindEnhance, element.Frost, 6)},
					{enchant(element.KindResist, element.Frost, 5)},
				},
			},
		},
		{
			Team:     1,
			Location: model.NewLocation(12, 0, -4),
			Template: Template{
				Type:       "ember_golem",
				Traits:     model.Traits{FireImmune: true},
				MaxHealth:  200,
				Attack:     6,
				FireResist: true,
				Equipment: [][]element.ItemEnchant{
					{enchant(element.KindResist, element.Fire, 8)},
				},
			},
		},
	}
}

// DefaultPools is a deep pool in the middle with a shallow rim.
func DefaultPools() []Pool {
	return []Pool{
		{Center: model.NewLocation(0, 0, 0), Radius: 6, Depth: model.SubmersionShallow},
		{Center: model.NewLocation(0, 0, 0), Radius: 3, Depth: model.SubmersionFull},
	}
}
