package steam

import (
	"log/slog"

	"github.com/udisondev/elemental/internal/model"
)

// CloudParams size and time steam clouds.
type CloudParams struct {
	HighBaseRadius     float64
	HighRadiusPerLevel float64
	LowRadius          float64

	HighBaseDuration     int
	HighDurationPerLevel int
	LowBaseDuration      int
	LowDurationPerLevel  int
}

// Radius returns the radius of a cloud of the given type and level.
// Low-heat clouds have a fixed radius.
func (p CloudParams) Radius(highHeat bool, level int) float64 {
	if !highHeat {
		return max(p.LowRadius, 0)
	}
	return max(p.HighBaseRadius+float64(ClampLevel(level)-1)*p.HighRadiusPerLevel, 0)
}

// Duration returns the lifetime in ticks of a cloud of the given type and level.
func (p CloudParams) Duration(highHeat bool, level int) int {
	extra := ClampLevel(level) - 1
	if highHeat {
		return max(p.HighBaseDuration+extra*p.HighDurationPerLevel, 1)
	}
	return max(p.LowBaseDuration+extra*p.LowDurationPerLevel, 1)
}

// Cloud is an ephemeral steam area. Immutable after spawn except for the
// countdown owned by Field.
type Cloud struct {
	ID             uint64
	Location       model.Location
	Radius         float64
	TicksRemaining int
	HighHeat       bool
	Level          int
	Source         model.ObjectID
}

// Covers reports whether loc lies inside the cloud.
func (c *Cloud) Covers(loc model.Location) bool {
	return c.Location.Within(loc, c.Radius)
}

// Exposure is what a single entity is standing in this tick.
// The strongest cloud of each type wins.
type Exposure struct {
	High *Cloud
	Low  *Cloud
}

// Field owns the live clouds of one world. Not safe for concurrent use.
type Field struct {
	p      CloudParams
	clouds []*Cloud
	nextID uint64
}

// NewField creates an empty cloud field.
func NewField(p CloudParams) *Field {
	return &Field{p: p}
}

// Configure replaces the sizing parameters. Live clouds keep their size.
func (f *Field) Configure(p CloudParams) {
	f.p = p
}

// Spawn creates a cloud at loc and returns it.
func (f *Field) Spawn(loc model.Location, highHeat bool, level int, source model.ObjectID) *Cloud {
	f.nextID++
	level = ClampLevel(level)
	c := &Cloud{
		ID:             f.nextID,
		Location:       loc,
		Radius:         f.p.Radius(highHeat, level),
		TicksRemaining: f.p.Duration(highHeat, level),
		HighHeat:       highHeat,
		Level:          level,
		Source:         source,
	}
	f.clouds = append(f.clouds, c)

	slog.Debug("steam cloud spawned",
		"cloudID", c.ID,
		"highHeat", highHeat,
		"level", level,
		"radius", c.Radius,
		"ticks", c.TicksRemaining,
		"source", source)
	return c
}

// Tick counts every cloud down by one tick and removes the expired ones,
// which are returned.
func (f *Field) Tick() []*Cloud {
	var expired []*Cloud
	live := f.clouds[:0]
	for _, c := range f.clouds {
		c.TicksRemaining--
		if c.TicksRemaining <= 0 {
			expired = append(expired, c)
			continue
		}
		live = append(live, c)
	}
	clear(f.clouds[len(live):])
	f.clouds = live

	for _, c := range expired {
		slog.Debug("steam cloud expired", "cloudID", c.ID)
	}
	return expired
}

// HighHeatAt returns the highest-level high-heat cloud covering loc, or nil.
func (f *Field) HighHeatAt(loc model.Location) *Cloud {
	return f.strongestAt(loc, true)
}

// LowHeatAt returns the highest-level low-heat cloud covering loc, or nil.
func (f *Field) LowHeatAt(loc model.Location) *Cloud {
	return f.strongestAt(loc, false)
}

func (f *Field) strongestAt(loc model.Location, highHeat bool) *Cloud {
	var best *Cloud
	for _, c := range f.clouds {
		if c.HighHeat != highHeat || !c.Covers(loc) {
			continue
		}
		if best == nil || c.Level > best.Level {
			best = c
		}
	}
	return best
}

// Exposures asks near for the entities around every cloud and returns
// what each of them is standing in. Entities are found by proximity each
// call; clouds never track membership.
func (f *Field) Exposures(near func(loc model.Location, radius float64) []model.ObjectID) map[model.ObjectID]Exposure {
	if len(f.clouds) == 0 {
		return nil
	}

	out := make(map[model.ObjectID]Exposure)
	for _, c := range f.clouds {
		for _, id := range near(c.Location, c.Radius) {
			exp := out[id]
			if c.HighHeat {
				if exp.High == nil || c.Level > exp.High.Level {
					exp.High = c
				}
			} else if exp.Low == nil || c.Level > exp.Low.Level {
				exp.Low = c
			}
			out[id] = exp
		}
	}
	return out
}

// Clouds returns the live clouds. The slice must not be modified.
func (f *Field) Clouds() []*Cloud {
	return f.clouds
}

// Len returns the number of live clouds.
func (f *Field) Len() int {
	return len(f.clouds)
}
