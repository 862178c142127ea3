package render

import "github.com/l1jgo/pong/internal/component"

// Shape is the kind of a drawable primitive.
type Shape uint8

const (
	Rect Shape = iota + 1
	Circle
)

// Primitive is one shape to draw, in arena coordinates.
type Primitive struct {
	Shape  Shape
	Center component.Position
	Width  float32 // Rect
	Height float32 // Rect
	Radius float32 // Circle
}

// Frame collects the primitives queued by draw systems during one render
// tick. It is a World resource written only by render systems.
type Frame struct {
	Tick       uint64
	primitives []Primitive
}

func NewFrame() *Frame {
	return &Frame{primitives: make([]Primitive, 0, 16)}
}

// Reset empties the frame for a new render tick.
func (f *Frame) Reset(tick uint64) {
	f.Tick = tick
	f.primitives = f.primitives[:0]
}

func (f *Frame) QueueRect(center component.Position, width, height float32) {
	f.primitives = append(f.primitives, Primitive{Shape: Rect, Center: center, Width: width, Height: height})
}

func (f *Frame) QueueCircle(center component.Position, radius float32) {
	f.primitives = append(f.primitives, Primitive{Shape: Circle, Center: center, Radius: radius})
}

// Primitives returns the queued primitives. The slice is reused by the
// next Reset.
func (f *Frame) Primitives() []Primitive { return f.primitives }

func (f *Frame) Len() int { return len(f.primitives) }
