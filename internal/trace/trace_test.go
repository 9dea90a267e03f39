package trace

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/udisondev/elemental/internal/element"
	"github.com/udisondev/elemental/internal/game/damage"
)

type recordingSink struct {
	enabled   bool
	hits      []HitTrace
	reactions []ReactionTrace
}

func (r *recordingSink) Enabled() bool            { return r.enabled }
func (r *recordingSink) Hit(t HitTrace)           { r.hits = append(r.hits, t) }
func (r *recordingSink) Reaction(t ReactionTrace) { r.reactions = append(r.reactions, t) }

func TestNewMulti(t *testing.T) {
	assert.IsType(t, Nop{}, NewMulti())
	assert.IsType(t, Nop{}, NewMulti(nil, nil))

	single := &recordingSink{}
	assert.Same(t, single, NewMulti(nil, single))
}

func TestMulti_SkipsDisabled(t *testing.T) {
	on := &recordingSink{enabled: true}
	off := &recordingSink{}
	m := NewMulti(on, off)

	require.True(t, m.Enabled())
	m.Hit(HitTrace{Final: 3})
	m.Reaction(ReactionTrace{Kind: "high_heat"})

	assert.Len(t, on.hits, 1)
	assert.Len(t, on.reactions, 1)
	assert.Empty(t, off.hits)
	assert.Empty(t, off.reactions)

	assert.False(t, NewMulti(off, &recordingSink{}).Enabled())
}

func TestSlogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	debug := NewSlogSink(logger, slog.LevelDebug)
	assert.False(t, debug.Enabled())

	sink := NewSlogSink(logger, slog.LevelInfo)
	require.True(t, sink.Enabled())

	sink.Hit(HitTrace{
		Attacker: 1,
		Target:   2,
		Element:  element.Fire,
		Pipeline: damage.Result{PreResist: 5},
		Reaction: "self_drying",
		Final:    7,
	})
	sink.Reaction(ReactionTrace{Kind: "wildfire", Source: 1, Target: 2, Level: 40})

	out := buf.String()
	assert.Contains(t, out, "elemental hit")
	assert.Contains(t, out, "element=fire")
	assert.Contains(t, out, "reaction=self_drying")
	assert.Contains(t, out, "elemental reaction")
	assert.Contains(t, out, "kind=wildfire")
}

func TestOtelSink_RecordsSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	sink := NewOtelSink(tp)
	require.True(t, sink.Enabled())

	sink.Hit(HitTrace{Attacker: 5, Target: 6, Element: element.Thunder, Final: 12})
	sink.Reaction(ReactionTrace{Kind: "low_heat", Level: 2})

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "elemental.hit", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("elemental.element", "thunder"))
	assert.Contains(t, spans[0].Attributes(), attribute.Float64("elemental.final", 12))
	assert.Equal(t, "elemental.reaction.low_heat", spans[1].Name())
	assert.Contains(t, spans[1].Attributes(), attribute.Int("elemental.level", 2))
}

func TestSetupOtel_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := SetupOtel(context.Background(), "test-service", "")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetupOtel_CreatesProvider(t *testing.T) {
	// Non-routable address, nothing is exported.
	shutdown, err := SetupOtel(context.Background(), "test-service", "http://192.0.2.1:4318")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
