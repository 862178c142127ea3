package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/l1jgo/pong/internal/config"
	"github.com/l1jgo/pong/internal/core/event"
	coresys "github.com/l1jgo/pong/internal/core/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type countingDispatcher struct {
	n   atomic.Int64
	err func(n int64) error
}

func (d *countingDispatcher) Dispatch() error {
	n := d.n.Add(1)
	if d.err != nil {
		return d.err(n)
	}
	return nil
}

func newLoop(t *testing.T, ups, rps int, update, render Dispatcher, log *zap.Logger) *Loop {
	t.Helper()
	l, err := New(config.LoopConfig{UpdatesPerSecond: ups, RendersPerSecond: rps, MaxBehind: 2},
		update, render, event.NewChannel[event.Event](8), log)
	require.NoError(t, err)
	return l
}

func TestStep_Schedule(t *testing.T) {
	t.Parallel()

	update, render := &countingDispatcher{}, &countingDispatcher{}
	l := newLoop(t, 10, 20, update, render, nil)
	t0 := time.Unix(1000, 0)
	at := func(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

	steps := []struct {
		ms       int
		updated  bool
		rendered bool
		skipped  int
		next     int
	}{
		{ms: 0, updated: true, rendered: true, next: 50},
		{ms: 10, next: 50},
		{ms: 50, rendered: true, next: 100},
		{ms: 100, updated: true, rendered: true, next: 150},
		{ms: 260, updated: true, rendered: true, skipped: 2, next: 300},
		{ms: 1000, updated: true, rendered: true, skipped: 14, next: 1050},
	}
	for _, s := range steps {
		res, err := l.Step(at(s.ms))
		require.NoError(t, err)
		assert.Equal(t, s.updated, res.Updated, "update at %dms", s.ms)
		assert.Equal(t, s.rendered, res.Rendered, "render at %dms", s.ms)
		assert.Equal(t, s.skipped, res.SkippedRenders, "skipped at %dms", s.ms)
		assert.Equal(t, at(s.next), res.Next, "next after %dms", s.ms)
	}

	stats := l.Stats()
	assert.Equal(t, uint64(4), stats.Updates)
	assert.Equal(t, uint64(5), stats.Renders)
	assert.Equal(t, uint64(16), stats.SkippedRenders)
	assert.Equal(t, uint64(1), stats.Resets, "fell more than max_behind behind at 1000ms")
	assert.Equal(t, int64(4), update.n.Load())
	assert.Equal(t, int64(5), render.n.Load())

	res, err := l.Step(at(1050))
	require.NoError(t, err)
	assert.False(t, res.Updated, "update deadline restarted from 1000ms")
	assert.True(t, res.Rendered)
	assert.Equal(t, at(1100), res.Next)
}

func TestStep_NonFatalFaultIsLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	boom := errors.New("boom")
	update := &countingDispatcher{err: func(n int64) error {
		return &coresys.Fault{System: "physics", Tick: uint64(n), Err: boom}
	}}
	render := &countingDispatcher{}
	l := newLoop(t, 10, 10, update, render, zap.New(core))

	res, err := l.Step(time.Unix(0, 0))
	require.NoError(t, err)
	assert.True(t, res.Rendered, "render still runs after an aborted update tick")
	assert.Equal(t, uint64(1), l.Stats().Faults)

	entries := logs.FilterMessage("tick aborted").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "physics", ctx["system"])
	assert.Equal(t, uint64(1), ctx["tick"])
}

func TestStep_FatalFaultIsReturned(t *testing.T) {
	t.Parallel()

	update := &countingDispatcher{err: func(n int64) error {
		return &coresys.Fault{System: "collision", Tick: uint64(n), Panic: "speed limit"}
	}}
	render := &countingDispatcher{}
	l := newLoop(t, 10, 10, update, render, nil)

	res, err := l.Step(time.Unix(0, 0))
	var fault *coresys.Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "collision", fault.System)
	assert.False(t, res.Rendered)
	assert.Zero(t, render.n.Load())
}

func TestRun_StopsOnStop(t *testing.T) {
	t.Parallel()

	var l *Loop
	update := &countingDispatcher{}
	update.err = func(n int64) error {
		if n == 3 {
			l.Stop()
			l.Stop()
		}
		return nil
	}
	l = newLoop(t, 200, 100, update, &countingDispatcher{}, nil)

	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.True(t, l.Stopped())
	assert.Equal(t, int64(3), update.n.Load(), "no dispatch after stop")
}

func TestRun_ContextCancel(t *testing.T) {
	t.Parallel()

	l := newLoop(t, 50, 50, &countingDispatcher{}, &countingDispatcher{}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NoError(t, l.Run(ctx))
}

func TestRun_FatalFaultEndsRun(t *testing.T) {
	t.Parallel()

	update := &countingDispatcher{err: func(n int64) error {
		if n == 2 {
			return &coresys.Fault{System: "input", Tick: uint64(n), Panic: "bad"}
		}
		return nil
	}}
	l := newLoop(t, 100, 10, update, &countingDispatcher{}, nil)

	err := l.Run(context.Background())
	var fault *coresys.Fault
	require.True(t, errors.As(err, &fault))
	assert.True(t, fault.Fatal())
	assert.Equal(t, uint64(2), fault.Tick)
}

func TestPublish(t *testing.T) {
	t.Parallel()

	events := event.NewChannel[event.Event](4)
	reader := events.Register()
	l, err := New(config.LoopConfig{UpdatesPerSecond: 1, RendersPerSecond: 1}, &countingDispatcher{}, &countingDispatcher{}, events, nil)
	require.NoError(t, err)

	l.Publish(event.Press('a'))
	assert.Equal(t, []event.Event{event.Press('a')}, events.Drain(reader))
}

func TestNew_Rejects(t *testing.T) {
	t.Parallel()

	ch := event.NewChannel[event.Event](1)
	d := &countingDispatcher{}
	_, err := New(config.LoopConfig{UpdatesPerSecond: 0, RendersPerSecond: 60}, d, d, ch, nil)
	assert.Error(t, err)
	_, err = New(config.LoopConfig{UpdatesPerSecond: 20, RendersPerSecond: 60}, nil, d, ch, nil)
	assert.Error(t, err)
	_, err = New(config.LoopConfig{UpdatesPerSecond: 20, RendersPerSecond: 60}, d, d, nil, nil)
	assert.Error(t, err)
}
