// Package trace reports resolved hits and reactions to observers.
//
// Building a trace costs allocations, so callers check Enabled before
// constructing one.
package trace

import (
	"github.com/udisondev/elemental/internal/element"
	"github.com/udisondev/elemental/internal/game/damage"
	"github.com/udisondev/elemental/internal/model"
)

// HitTrace describes one resolved hit.
type HitTrace struct {
	Tick           int64
	Attacker       model.ObjectID
	Target         model.ObjectID
	Element        element.Element
	TargetDominant element.Element
	TargetWetness  int
	Pipeline       damage.Result
	Infection      float64 // nature infection multiplier, 1 when absent
	Reaction       string
	DamageFactor   float64
	Final          float64
}

// ReactionTrace describes one reaction that fired.
type ReactionTrace struct {
	Tick   int64
	Kind   string
	Source model.ObjectID
	Target model.ObjectID
	Level  int
	Amount float64
}

// Sink receives traces.
type Sink interface {
	// Enabled reports whether any observer is listening.
	Enabled() bool
	Hit(t HitTrace)
	Reaction(t ReactionTrace)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Enabled() bool          { return false }
func (Nop) Hit(HitTrace)           {}
func (Nop) Reaction(ReactionTrace) {}

// Multi fans traces out to every enabled sink.
type Multi []Sink

// NewMulti drops nil sinks. A single sink is returned as is.
func NewMulti(sinks ...Sink) Sink {
	var m Multi
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	switch len(m) {
	case 0:
		return Nop{}
	case 1:
		return m[0]
	default:
		return m
	}
}

func (m Multi) Enabled() bool {
	for _, s := range m {
		if s.Enabled() {
			return true
		}
	}
	return false
}

func (m Multi) Hit(t HitTrace) {
	for _, s := range m {
		if s.Enabled() {
			s.Hit(t)
		}
	}
}

func (m Multi) Reaction(t ReactionTrace) {
	for _, s := range m {
		if s.Enabled() {
			s.Reaction(t)
		}
	}
}
