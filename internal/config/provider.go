package config

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/udisondev/elemental/internal/game/engine"
	"github.com/udisondev/elemental/internal/game/pointroll"
)

// snapshot is one immutable generation of the loaded config.
type snapshot struct {
	cfg    Engine
	params *engine.Params
	forced map[string]pointroll.ForcedSpec
	roll   pointroll.RandomRoll
}

// Provider serves the current config generation. Readers never block;
// Reload swaps in a whole new generation and clears the spec cache.
type Provider struct {
	path  string
	env   Env
	cache *SpecCache

	reloadMu sync.Mutex
	current  atomic.Pointer[snapshot]
}

// NewProvider loads the config at env.ConfigPath with env overrides applied.
func NewProvider(e Env) (*Provider, error) {
	p := &Provider{
		path:  e.ConfigPath,
		env:   e,
		cache: NewSpecCache(),
	}
	snap, err := p.load()
	if err != nil {
		return nil, err
	}
	p.current.Store(snap)
	return p, nil
}

// NewStaticProvider serves cfg as-is with no backing file. Reload is a no-op.
func NewStaticProvider(cfg Engine) *Provider {
	p := &Provider{cache: NewSpecCache()}
	cfg.Normalize()
	p.current.Store(p.build(cfg))
	return p
}

// Path returns the config file path ("" for static providers).
func (p *Provider) Path() string { return p.path }

// Current returns the active config. Callers must not mutate it.
func (p *Provider) Current() *Engine {
	return &p.current.Load().cfg
}

// EngineParams implements engine.Settings. The pointer changes only on reload.
func (p *Provider) EngineParams() *engine.Params {
	return p.current.Load().params
}

// Forced returns the forced allocation declared for entityType.
func (p *Provider) Forced(entityType string) (pointroll.ForcedSpec, bool) {
	spec, ok := p.current.Load().forced[entityType]
	return spec, ok
}

// RandomRoll returns the procedural roll for spawning entities.
func (p *Provider) RandomRoll() pointroll.RandomRoll {
	return p.current.Load().roll
}

// Points parses raw through the reload-scoped cache.
func (p *Provider) Points(raw string) pointroll.Spec {
	return p.cache.Get(raw)
}

// Reload re-reads the config file. On error the previous generation stays
// active.
func (p *Provider) Reload() error {
	if p.path == "" {
		return nil
	}

	p.reloadMu.Lock()
	defer p.reloadMu.Unlock()

	cfg, err := LoadEngine(p.path)
	if err != nil {
		return fmt.Errorf("reloading config: %w", err)
	}
	p.env.Apply(&cfg)
	fixed := cfg.Normalize()

	p.cache.Invalidate()
	p.current.Store(p.build(cfg))

	slog.Info("config reloaded", "path", p.path, "fixed", fixed, "forced", len(cfg.Forced))
	return nil
}

func (p *Provider) load() (*snapshot, error) {
	cfg, err := LoadEngine(p.path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	p.env.Apply(&cfg)
	cfg.Normalize()
	return p.build(cfg), nil
}

func (p *Provider) build(cfg Engine) *snapshot {
	forced := make(map[string]pointroll.ForcedSpec, len(cfg.Forced))
	for entityType, f := range cfg.Forced {
		forced[entityType] = pointroll.ForcedSpec{
			AttackElement:  f.Attack,
			EnhanceElement: f.Enhance,
			EnhancePoints:  p.cache.Get(f.EnhancePoints),
			ResistElement:  f.Resist,
			ResistPoints:   p.cache.Get(f.ResistPoints),
		}
	}

	roll := pointroll.RandomRoll{
		Chance:        cfg.RandomRolls.Chance,
		Elements:      cfg.RandomRolls.Elements,
		EnhancePoints: p.cache.Get(cfg.RandomRolls.EnhancePoints),
		ResistPoints:  p.cache.Get(cfg.RandomRolls.ResistPoints),
	}

	return &snapshot{
		cfg:    cfg,
		params: cfg.Params(),
		forced: forced,
		roll:   roll,
	}
}
