package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/elemental/internal/testutil"
)

func TestRunner_TicksUntilContextDone(t *testing.T) {
	host := testutil.NewFakeHost()
	e := New(host, host, StaticSettings{P: testParams()})
	r := NewRunner(e, 200)

	var hooks int
	r.OnTick(func(got *Engine) {
		assert.Same(t, e, got)
		hooks++
	})

	ctx := testutil.ContextWithTimeout(t, 100*time.Millisecond)
	err := r.Start(ctx)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, r.Ticks())
	assert.Equal(t, int(r.Ticks()), hooks)
	assert.Equal(t, int64(r.Ticks()), int64(e.Now()))
}

func TestRunner_Stop(t *testing.T) {
	host := testutil.NewFakeHost()
	r := NewRunner(New(host, host, StaticSettings{P: testParams()}), 0)

	done := make(chan error, 1)
	go func() { done <- r.Start(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	r.Stop()
	r.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}
}
