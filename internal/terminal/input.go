package terminal

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/pong/internal/core/event"
	"go.uber.org/zap"
)

// Sink receives translated input. *loop.Loop implements it.
type Sink interface {
	Publish(e event.Event)
	Stop()
}

// Input polls a tcell screen and forwards key, resize and focus events to
// a Sink. Terminals only report key presses (and auto-repeats), so a held
// key is reported Released once no repeat arrived within the hold window.
// Escape and Ctrl-C stop the sink.
type Input struct {
	screen tcell.Screen
	sink   Sink
	hold   time.Duration
	log    *zap.Logger

	mu   sync.Mutex
	held map[event.Key]time.Time // last press or repeat
}

func NewInput(screen tcell.Screen, sink Sink, hold time.Duration, log *zap.Logger) *Input {
	return &Input{
		screen: screen,
		sink:   sink,
		hold:   hold,
		log:    log,
		held:   make(map[event.Key]time.Time, 8),
	}
}

// Run polls until ctx is done or the screen is finalized.
func (in *Input) Run(ctx context.Context) {
	polled := make(chan tcell.Event, 64)
	go func() {
		defer close(polled)
		for {
			ev := in.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case polled <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	tick := in.hold / 2
	if tick <= 0 {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-polled:
			if !ok {
				return
			}
			in.handle(ev, time.Now())
		case now := <-ticker.C:
			in.expire(now)
		}
	}
}

func (in *Input) handle(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		in.handleKey(ev.Key(), ev.Rune(), ev.Modifiers(), now)
	case *tcell.EventResize:
		w, h := ev.Size()
		in.sink.Publish(event.Resized{Width: w, Height: h})
	case *tcell.EventFocus:
		in.sink.Publish(event.FocusChanged{Focused: ev.Focused})
	}
}

func (in *Input) handleKey(k tcell.Key, r rune, mod tcell.ModMask, now time.Time) {
	if k == tcell.KeyEscape || k == tcell.KeyCtrlC ||
		(k == tcell.KeyRune && r == 'c' && mod&tcell.ModCtrl != 0) {
		in.log.Info("stop requested from terminal")
		in.sink.Stop()
		return
	}
	key := translate(k, r)
	if key == event.KeyNone {
		return
	}

	in.mu.Lock()
	_, down := in.held[key]
	in.held[key] = now
	in.mu.Unlock()

	if !down {
		in.sink.Publish(event.Press(key))
	}
}

// expire releases every key whose last repeat is older than the hold
// window, in key order.
func (in *Input) expire(now time.Time) {
	in.mu.Lock()
	var released []event.Key
	for k, last := range in.held {
		if now.Sub(last) >= in.hold {
			released = append(released, k)
			delete(in.held, k)
		}
	}
	in.mu.Unlock()

	slices.Sort(released)
	for _, k := range released {
		in.sink.Publish(event.Release(k))
	}
}

func translate(k tcell.Key, r rune) event.Key {
	switch k {
	case tcell.KeyRune:
		if r == ' ' {
			return event.KeySpace
		}
		return event.KeyFromRune(r)
	case tcell.KeyEnter:
		return event.KeyEnter
	case tcell.KeyUp:
		return event.KeyUp
	case tcell.KeyDown:
		return event.KeyDown
	case tcell.KeyLeft:
		return event.KeyLeft
	case tcell.KeyRight:
		return event.KeyRight
	}
	return event.KeyNone
}
