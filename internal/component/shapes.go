package component

const (
	// PaddleWidth is the paddle thickness and the per-tick speed limit.
	PaddleWidth float32 = 20
	// PaddleSpeed is the lateral speed of a paddle while a key is held.
	PaddleSpeed float32 = 10
	// BallSpeed is the magnitude of every freshly drawn ball velocity.
	BallSpeed float32 = 15
)

// Ball tags a bouncing entity.
type Ball struct {
	Radius float32
}

// Paddle tags a player-controlled entity.
type Paddle struct {
	Length float32
}

// Contains reports whether a ball of the given radius at ball overlaps the
// paddle centred at at. The paddle box is inflated by the radius on every
// side; corners are treated as square.
func (p Paddle) Contains(at, ball Position, radius float32) bool {
	dx := ball.X - at.X
	dy := ball.Y - at.Y
	halfWidth := PaddleWidth/2 + radius
	halfLength := p.Length/2 + radius
	return -halfWidth < dx && dx < halfWidth &&
		-halfLength < dy && dy < halfLength
}
