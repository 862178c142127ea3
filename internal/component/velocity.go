package component

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// SpeedLimitError is the panic value raised when a Velocity would reach
// PaddleWidth per tick, which would let a ball step through a paddle.
type SpeedLimitError struct {
	DX, DY float32
}

func (e *SpeedLimitError) Error() string {
	return fmt.Sprintf("velocity (%g, %g) has magnitude %g, limit is %g",
		e.DX, e.DY, magnitude(e.DX, e.DY), PaddleWidth)
}

// Velocity is a per-tick displacement. Its magnitude always stays below
// PaddleWidth; every constructor and setter panics with *SpeedLimitError
// otherwise.
type Velocity struct {
	x, y float32
}

func NewVelocity(dx, dy float32) Velocity {
	checkSpeed(dx, dy)
	return Velocity{x: dx, y: dy}
}

// RandomVelocity returns a velocity of magnitude BallSpeed in a uniformly
// random direction.
func RandomVelocity(r *rand.Rand) Velocity {
	angle := 2 * math.Pi * r.Float64()
	sin, cos := math.Sincos(angle)
	return NewVelocity(float32(cos)*BallSpeed, float32(sin)*BallSpeed)
}

func (v Velocity) X() float32 { return v.x }
func (v Velocity) Y() float32 { return v.y }

func (v Velocity) Magnitude() float32 { return magnitude(v.x, v.y) }

func (v *Velocity) Set(dx, dy float32) {
	checkSpeed(dx, dy)
	v.x, v.y = dx, dy
}

func (v *Velocity) SetX(dx float32) { v.Set(dx, v.y) }
func (v *Velocity) SetY(dy float32) { v.Set(v.x, dy) }

// NegateX and NegateY reflect one component; magnitude is unchanged.
func (v *Velocity) NegateX() { v.x = -v.x }
func (v *Velocity) NegateY() { v.y = -v.y }

func checkSpeed(dx, dy float32) {
	if m := magnitude(dx, dy); !(m < PaddleWidth) {
		panic(&SpeedLimitError{DX: dx, DY: dy})
	}
}

func magnitude(dx, dy float32) float32 {
	return float32(math.Hypot(float64(dx), float64(dy)))
}
