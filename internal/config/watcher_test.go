package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/elemental/internal/testutil"
)

func TestWatcher_ReportsOnlyConfigFile(t *testing.T) {
	path := writeConfig(t, "ticks_per_second: 20\n")

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	other := filepath.Join(filepath.Dir(path), "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("ticks_per_second: 30\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, filepath.Base(path), filepath.Base(name))
	case <-time.After(2 * time.Second):
		t.Fatal("no event for config file")
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	path := writeConfig(t, "")

	w, err := NewWatcher(path)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, ok := <-w.Events
	assert.False(t, ok)
}

func TestWatch_ReloadsProvider(t *testing.T) {
	path := writeConfig(t, "ticks_per_second: 20\n")
	p, err := NewProvider(Env{ConfigPath: path})
	require.NoError(t, err)

	ctx, cancel := testutil.ContextWithCancel(t)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, p) }()

	// watcher setup races with the write; keep rewriting until seen
	deadline := time.Now().Add(3 * time.Second)
	for p.EngineParams().TicksPerSecond != 50 && time.Now().Before(deadline) {
		require.NoError(t, os.WriteFile(path, []byte("ticks_per_second: 50\n"), 0o644))
		time.Sleep(150 * time.Millisecond)
	}
	assert.Equal(t, 50, p.EngineParams().TicksPerSecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}
