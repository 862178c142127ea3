package component

import "github.com/l1jgo/pong/internal/core/event"

// Binding is one key of an Axis and its last known state.
type Binding struct {
	Key   event.Key
	State event.KeyState
}

// Axis turns two keys into a signed direction. Only InputSystem mutates it.
type Axis struct {
	Pos Binding
	Neg Binding
}

func NewAxis(pos, neg event.Key) Axis {
	return Axis{
		Pos: Binding{Key: pos, State: event.Released},
		Neg: Binding{Key: neg, State: event.Released},
	}
}

// Update records in and returns the combined sign: +1 when only the
// positive key is held, -1 when only the negative key is held, 0 when both
// or neither are. ok is false when in's key is not bound to this axis.
func (a *Axis) Update(in event.KeyboardInput) (sign float32, ok bool) {
	switch {
	case in.Key == event.KeyNone:
		return 0, false
	case in.Key == a.Pos.Key:
		a.Pos.State = in.State
	case in.Key == a.Neg.Key:
		a.Neg.State = in.State
	default:
		return 0, false
	}
	return a.Sign(), true
}

// Sign returns the current combined direction.
func (a *Axis) Sign() float32 {
	switch {
	case a.Pos.State == event.Pressed && a.Neg.State == event.Released:
		return 1
	case a.Pos.State == event.Released && a.Neg.State == event.Pressed:
		return -1
	}
	return 0
}
