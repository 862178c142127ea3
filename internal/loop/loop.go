package loop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/l1jgo/pong/internal/config"
	"github.com/l1jgo/pong/internal/core/event"
	coresys "github.com/l1jgo/pong/internal/core/system"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Dispatcher runs one tick of a system set.
type Dispatcher interface {
	Dispatch() error
}

// StepResult reports what one Step fired.
type StepResult struct {
	Updated        bool
	Rendered       bool
	SkippedRenders int
	Next           time.Time // earliest upcoming deadline
}

// Stats are cumulative loop counters.
type Stats struct {
	Updates        uint64
	Renders        uint64
	SkippedRenders uint64
	Resets         uint64 // update deadline resets after falling too far behind
	Faults         uint64 // non-fatal system faults
}

// Loop drives the update and render dispatchers on two fixed-rate clocks.
// Both clocks share one controlling goroutine; at most one dispatch runs
// at a time, so the dispatchers never touch the world concurrently.
type Loop struct {
	update Dispatcher
	render Dispatcher
	events *event.Channel[event.Event]
	log    *zap.Logger

	updateInterval time.Duration
	renderInterval time.Duration
	maxBehind      time.Duration

	started    bool
	nextUpdate time.Time
	nextRender time.Time
	stats      Stats

	stopCh   chan struct{}
	stopOnce sync.Once
}

func New(cfg config.LoopConfig, update, render Dispatcher, events *event.Channel[event.Event], log *zap.Logger) (*Loop, error) {
	switch {
	case cfg.UpdatesPerSecond <= 0 || cfg.RendersPerSecond <= 0:
		return nil, eris.Errorf("loop rates must be positive, got %d/%d", cfg.UpdatesPerSecond, cfg.RendersPerSecond)
	case update == nil || render == nil:
		return nil, eris.New("loop needs both dispatchers")
	case events == nil:
		return nil, eris.New("loop needs an event channel")
	}
	if log == nil {
		log = zap.NewNop()
	}
	maxBehind := cfg.MaxBehind
	if maxBehind < 1 {
		maxBehind = 1
	}
	updateInterval := time.Second / time.Duration(cfg.UpdatesPerSecond)
	return &Loop{
		update:         update,
		render:         render,
		events:         events,
		log:            log,
		updateInterval: updateInterval,
		renderInterval: time.Second / time.Duration(cfg.RendersPerSecond),
		maxBehind:      updateInterval * time.Duration(maxBehind),
		stopCh:         make(chan struct{}),
	}, nil
}

// Publish feeds an external input event to the world's channel. Safe from
// any goroutine.
func (l *Loop) Publish(e event.Event) {
	l.events.Publish(e)
}

// Stop ends Run before its next iteration. A dispatch already in progress
// completes. Safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *Loop) Stopped() bool {
	select {
	case <-l.stopCh:
		return true
	default:
		return false
	}
}

func (l *Loop) Stats() Stats { return l.stats }

// Step fires whichever clocks are due at now; both may fire in one call.
// The first Step fires both. Non-fatal faults are logged and swallowed; a
// fatal fault is returned and the caller should stop.
//
// An update clock that falls more than max_behind intervals behind
// restarts from now instead of replaying the backlog. Missed render
// deadlines are skipped.
func (l *Loop) Step(now time.Time) (StepResult, error) {
	if !l.started {
		l.started = true
		l.nextUpdate = now
		l.nextRender = now
	}

	var res StepResult
	if !now.Before(l.nextUpdate) {
		res.Updated = true
		l.stats.Updates++
		err := l.update.Dispatch()

		l.nextUpdate = l.nextUpdate.Add(l.updateInterval)
		if now.Sub(l.nextUpdate) > l.maxBehind {
			l.nextUpdate = now.Add(l.updateInterval)
			l.stats.Resets++
			l.log.Debug("update clock reset", zap.Duration("interval", l.updateInterval))
		}
		if err := l.handle(err); err != nil {
			return res, err
		}
	}

	if !now.Before(l.nextRender) {
		missed := int(now.Sub(l.nextRender) / l.renderInterval)
		res.Rendered = true
		res.SkippedRenders = missed
		l.stats.Renders++
		l.stats.SkippedRenders += uint64(missed)
		l.nextRender = l.nextRender.Add(time.Duration(missed+1) * l.renderInterval)
		if err := l.handle(l.render.Dispatch()); err != nil {
			return res, err
		}
	}

	res.Next = l.nextUpdate
	if l.nextRender.Before(res.Next) {
		res.Next = l.nextRender
	}
	return res, nil
}

func (l *Loop) handle(err error) error {
	if err == nil {
		return nil
	}
	var fault *coresys.Fault
	if !errors.As(err, &fault) || fault.Fatal() {
		return err
	}
	l.stats.Faults++
	l.log.Warn("tick aborted",
		zap.String("system", fault.System),
		zap.Uint64("tick", fault.Tick),
		zap.Error(fault.Err))
	return nil
}

// Run steps the loop until Stop is called or ctx is done, sleeping until
// the next deadline between steps. It returns nil on a clean stop and the
// fault on a fatal one.
func (l *Loop) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.stopCh:
			return nil
		default:
		}

		res, err := l.Step(time.Now())
		if err != nil {
			return err
		}

		wait := time.Until(res.Next)
		if wait <= 0 {
			continue
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return nil
		case <-l.stopCh:
			return nil
		case <-timer.C:
		}
	}
}
