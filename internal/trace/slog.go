package trace

import (
	"context"
	"log/slog"
)

// SlogSink writes traces as structured log records.
type SlogSink struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogSink creates a sink logging at level. A nil logger means slog.Default().
func NewSlogSink(logger *slog.Logger, level slog.Level) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger, level: level}
}

// Enabled follows the logger's level.
func (s *SlogSink) Enabled() bool {
	return s.logger.Enabled(context.Background(), s.level)
}

func (s *SlogSink) Hit(t HitTrace) {
	s.logger.Log(context.Background(), s.level, "elemental hit",
		"tick", t.Tick,
		"attacker", t.Attacker,
		"target", t.Target,
		"element", t.Element,
		"targetDominant", t.TargetDominant,
		"wetness", t.TargetWetness,
		"physical", t.Pipeline.Physical,
		"preResist", t.Pipeline.PreResist,
		"reduction", t.Pipeline.Reduction,
		"wetnessMult", t.Pipeline.WetnessMultiplier,
		"restraint", t.Pipeline.Relation,
		"restraintMult", t.Pipeline.RestraintMult,
		"floored", t.Pipeline.Floored,
		"infection", t.Infection,
		"reaction", t.Reaction,
		"damageFactor", t.DamageFactor,
		"final", t.Final)
}

func (s *SlogSink) Reaction(t ReactionTrace) {
	s.logger.Log(context.Background(), s.level, "elemental reaction",
		"tick", t.Tick,
		"kind", t.Kind,
		"source", t.Source,
		"target", t.Target,
		"level", t.Level,
		"amount", t.Amount)
}
