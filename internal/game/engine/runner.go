package engine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Runner drives an Engine at a fixed tick rate.
type Runner struct {
	engine   *Engine
	interval time.Duration
	hooks    []func(*Engine)
	stopCh   chan struct{}
	stopOnce sync.Once
	ticks    atomic.Uint64
}

// NewRunner creates a Runner ticking ticksPerSecond times per second.
func NewRunner(e *Engine, ticksPerSecond int) *Runner {
	if ticksPerSecond < 1 {
		ticksPerSecond = 20
	}
	return &Runner{
		engine:   e,
		interval: time.Second / time.Duration(ticksPerSecond),
		stopCh:   make(chan struct{}),
	}
}

// OnTick registers fn to run on the loop goroutine right before every
// engine tick. Hooks are where hosts feed hits and damage into the engine.
// Must be called before Start.
func (r *Runner) OnTick(fn func(*Engine)) {
	r.hooks = append(r.hooks, fn)
}

// Ticks returns the number of ticks run so far.
func (r *Runner) Ticks() uint64 { return r.ticks.Load() }

// Start runs the tick loop (blocks until context is canceled or Stop).
func (r *Runner) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("elemental engine started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("elemental engine stopping", "ticks", r.ticks.Load())
			return ctx.Err()

		case <-r.stopCh:
			slog.Info("elemental engine stopped", "ticks", r.ticks.Load())
			return nil

		case <-ticker.C:
			r.step()
		}
	}
}

// Stop stops the tick loop. Safe to call more than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

func (r *Runner) step() {
	for _, fn := range r.hooks {
		fn(r.engine)
	}
	r.engine.Tick()
	r.ticks.Add(1)
}
