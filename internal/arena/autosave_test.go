package arena

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/elemental/internal/db"
	"github.com/udisondev/elemental/internal/game/status"
	"github.com/udisondev/elemental/internal/model"
)

type memStore struct {
	mu      sync.Mutex
	saved   map[string]status.Combatant
	saves   int
	deleted []string
	loadErr error
}

func newMemStore() *memStore {
	return &memStore{saved: make(map[string]status.Combatant)}
}

func (s *memStore) SaveAll(_ context.Context, rows []db.StatusRow, _ status.Tick) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	for _, r := range rows {
		s.saved[r.Key] = r.Status
	}
	return nil
}

func (s *memStore) Load(_ context.Context, key string, _ status.Tick) (*status.Combatant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	c, ok := s.saved[key]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, key)
	s.deleted = append(s.deleted, key)
	return nil
}

// drained runs the writer on a cancelled context so every queued job is
// written before it returns.
func drained(t *testing.T, a *Autosaver) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, a.Run(ctx))
}

func TestAutosaver_HookSavesOnCadence(t *testing.T) {
	f := newArena(t)
	store := newMemStore()
	a := NewAutosaver(f.world, store, 3)

	id := f.spawner.Spawn(Template{Type: "slime", MaxHealth: 5}, 0, model.Location{})
	f.engine.Splash(id)

	a.Hook(f.engine)
	a.Hook(f.engine)
	drained(t, a)
	assert.Zero(t, store.saves)

	a.Hook(f.engine)
	drained(t, a)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, 2, store.saved["slime#1"].WetnessLevel)
}

func TestAutosaver_DisabledCadence(t *testing.T) {
	f := newArena(t)
	store := newMemStore()
	a := NewAutosaver(f.world, store, 0)

	id := f.spawner.Spawn(Template{Type: "slime", MaxHealth: 5}, 0, model.Location{})
	f.engine.Splash(id)
	for range 10 {
		a.Hook(f.engine)
	}
	drained(t, a)
	assert.Zero(t, store.saves)
}

func TestAutosaver_Preload(t *testing.T) {
	f := newArena(t)
	store := newMemStore()
	store.saved["slime#1"] = status.Combatant{WetnessLevel: 3, ScorchedTicksRemaining: 20, ScorchedStrength: 10}

	slime := f.spawner.Spawn(Template{Type: "slime", MaxHealth: 5}, 0, model.Location{})
	other := f.spawner.Spawn(Template{Type: "wolf", MaxHealth: 5}, 1, model.Location{})

	a := NewAutosaver(f.world, store, 0)
	n, err := a.Preload(context.Background(), f.engine)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, 3, f.engine.Store().WetnessLevel(slime))
	st, ok := f.engine.Store().Snapshot(slime)
	require.True(t, ok)
	assert.Equal(t, 20, st.ScorchedTicksRemaining)

	_, ok = f.engine.Store().Snapshot(other)
	assert.False(t, ok)
}

func TestAutosaver_PreloadError(t *testing.T) {
	f := newArena(t)
	store := newMemStore()
	store.loadErr = errors.New("connection refused")
	f.spawner.Spawn(Template{Type: "slime", MaxHealth: 5}, 0, model.Location{})

	_, err := NewAutosaver(f.world, store, 0).Preload(context.Background(), f.engine)
	assert.ErrorIs(t, err, store.loadErr)
}

func TestForgetOnDeath(t *testing.T) {
	f := newArena(t)
	store := newMemStore()
	a := NewAutosaver(f.world, store, 0)
	ForgetOnDeath(f.world, f.engine, a)

	id := f.spawner.Spawn(Template{Type: "slime", MaxHealth: 5}, 0, model.Location{})
	f.engine.Splash(id)
	store.saved["slime#1"] = status.Combatant{WetnessLevel: 2}

	f.world.Damage(id, 10, model.DamageGeneric)
	_, tracked := f.engine.Store().Snapshot(id)
	assert.True(t, tracked, "status is dropped at the end of the tick")

	f.engine.Tick()
	_, tracked = f.engine.Store().Snapshot(id)
	assert.False(t, tracked)

	drained(t, a)
	assert.Equal(t, []string{"slime#1"}, store.deleted)
	assert.NotContains(t, store.saved, "slime#1")
}
