package arena

import (
	"context"
	"log/slog"
	"time"

	"github.com/udisondev/elemental/internal/db"
	"github.com/udisondev/elemental/internal/game/engine"
	"github.com/udisondev/elemental/internal/game/status"
	"github.com/udisondev/elemental/internal/model"
)

// StatusStore is durable status storage. db.StatusRepository implements it.
type StatusStore interface {
	SaveAll(ctx context.Context, rows []db.StatusRow, now status.Tick) error
	Load(ctx context.Context, key string, now status.Tick) (*status.Combatant, error)
	Delete(ctx context.Context, key string) error
}

type saveJob struct {
	rows    []db.StatusRow
	now     status.Tick
	deleted string
}

// Autosaver snapshots statuses on the tick goroutine and writes them from
// its own goroutine, so the tick loop never waits on the database.
type Autosaver struct {
	world *World
	store StatusStore
	every int
	jobs  chan saveJob
	tick  int
}

// NewAutosaver saves every everyTicks ticks (0 disables periodic saves).
func NewAutosaver(w *World, store StatusStore, everyTicks int) *Autosaver {
	return &Autosaver{
		world: w,
		store: store,
		every: everyTicks,
		jobs:  make(chan saveJob, 8),
	}
}

// Preload restores saved statuses of every living combatant. Call before
// the runner starts.
func (a *Autosaver) Preload(ctx context.Context, e *engine.Engine) (int, error) {
	restored := 0
	for _, id := range a.world.Living() {
		c, ok := a.world.Get(id)
		if !ok {
			continue
		}
		saved, err := a.store.Load(ctx, c.Key, e.Now())
		if err != nil {
			return restored, err
		}
		if saved == nil {
			continue
		}
		e.Store().Restore(id, *saved, e.MaxWetness())
		restored++
	}
	slog.Info("statuses restored", "count", restored)
	return restored, nil
}

// Hook snapshots statuses on cadence. Register with Runner.OnTick.
func (a *Autosaver) Hook(e *engine.Engine) {
	a.tick++
	if a.every <= 0 || a.tick%a.every != 0 {
		return
	}
	a.enqueue(saveJob{rows: a.snapshot(e), now: e.Now()})
}

// Forget drops the saved status of a combatant that died.
func (a *Autosaver) Forget(c Combatant) {
	a.enqueue(saveJob{deleted: c.Key})
}

func (a *Autosaver) snapshot(e *engine.Engine) []db.StatusRow {
	ids := e.Store().IDs()
	rows := make([]db.StatusRow, 0, len(ids))
	for _, id := range ids {
		c, ok := a.world.Get(id)
		if !ok {
			continue
		}
		st, ok := e.Store().Snapshot(id)
		if !ok {
			continue
		}
		rows = append(rows, db.StatusRow{Key: c.Key, Status: st})
	}
	return rows
}

func (a *Autosaver) enqueue(j saveJob) {
	select {
	case a.jobs <- j:
	default:
		slog.Warn("autosave queue full, dropping snapshot", "rows", len(j.rows))
	}
}

// Run writes queued snapshots until ctx is done, then drains what is left.
func (a *Autosaver) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			a.drain()
			return nil
		case j := <-a.jobs:
			a.write(ctx, j)
		}
	}
}

func (a *Autosaver) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case j := <-a.jobs:
			a.write(ctx, j)
		default:
			return
		}
	}
}

func (a *Autosaver) write(ctx context.Context, j saveJob) {
	if j.deleted != "" {
		if err := a.store.Delete(ctx, j.deleted); err != nil {
			slog.Error("deleting status", "key", j.deleted, "err", err)
		}
		return
	}
	if len(j.rows) == 0 {
		return
	}
	start := time.Now()
	if err := a.store.SaveAll(ctx, j.rows, j.now); err != nil {
		slog.Error("autosave failed", "rows", len(j.rows), "err", err)
		return
	}
	slog.Debug("autosave done", "rows", len(j.rows), "tick", j.now, "took", time.Since(start))
}

// ForgetOnDeath wires death handling: the engine drops the status at the
// end of the tick and the saved row is deleted.
func ForgetOnDeath(w *World, e *engine.Engine, a *Autosaver) {
	w.OnDeath(func(c Combatant, _ model.DamageKind) {
		id := c.ID
		e.Defer(func() { e.Forget(id) })
		if a != nil {
			a.Forget(c)
		}
	})
}
