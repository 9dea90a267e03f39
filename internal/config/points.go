package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/udisondev/elemental/internal/game/pointroll"
)

// ParsePointsSpec parses a raw points spec:
//
//	"" or "none" -> None
//	"N"          -> Fixed(N)
//	"A-B"        -> Range(A, B)
//
// Negative numbers are errors. An inverted range is kept as written and
// normalized when resolved.
func ParsePointsSpec(raw string) (pointroll.Spec, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "none") {
		return pointroll.None(), nil
	}

	if lo, hi, ok := strings.Cut(s, "-"); ok {
		minV, err := parsePoints(lo)
		if err != nil {
			return pointroll.None(), fmt.Errorf("parsing range %q: %w", raw, err)
		}
		maxV, err := parsePoints(hi)
		if err != nil {
			return pointroll.None(), fmt.Errorf("parsing range %q: %w", raw, err)
		}
		return pointroll.Range(minV, maxV), nil
	}

	n, err := parsePoints(s)
	if err != nil {
		return pointroll.None(), fmt.Errorf("parsing points %q: %w", raw, err)
	}
	return pointroll.Fixed(n), nil
}

func parsePoints(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative points %d", n)
	}
	return n, nil
}

// SpecCache memoizes parsed points specs. Owned by a Provider and cleared
// on every reload. Safe for concurrent use.
type SpecCache struct {
	mu    sync.Mutex
	specs map[string]pointroll.Spec
}

// NewSpecCache creates an empty cache.
func NewSpecCache() *SpecCache {
	return &SpecCache{specs: make(map[string]pointroll.Spec)}
}

// Get returns the parsed spec for raw. Malformed specs are logged once per
// cache generation and resolve to None.
func (c *SpecCache) Get(raw string) pointroll.Spec {
	c.mu.Lock()
	defer c.mu.Unlock()

	if spec, ok := c.specs[raw]; ok {
		return spec
	}

	spec, err := ParsePointsSpec(raw)
	if err != nil {
		slog.Warn("malformed points spec", "spec", raw, "err", err)
	}
	c.specs[raw] = spec
	return spec
}

// Invalidate drops every cached spec.
func (c *SpecCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.specs)
}

// Len returns the number of cached specs.
func (c *SpecCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.specs)
}
