package event

// Event is anything the simulation loop forwards from the outside world.
type Event interface {
	isEvent()
}

// KeyState is the pressed/released state of one key.
type KeyState uint8

const (
	Released KeyState = iota
	Pressed
)

func (s KeyState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// KeyboardInput is a single key transition.
type KeyboardInput struct {
	Key   Key
	State KeyState
}

// Resized reports a new size of the output surface, in cells.
type Resized struct {
	Width, Height int
}

// FocusChanged reports the window or terminal gaining or losing focus.
type FocusChanged struct {
	Focused bool
}

func (KeyboardInput) isEvent() {}
func (Resized) isEvent()       {}
func (FocusChanged) isEvent()  {}

// Press and Release build keyboard events.
func Press(k Key) KeyboardInput   { return KeyboardInput{Key: k, State: Pressed} }
func Release(k Key) KeyboardInput { return KeyboardInput{Key: k, State: Released} }
