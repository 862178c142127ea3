package component

// Position is a point in arena coordinates.
type Position struct {
	X, Y float32
}

// Advance moves p by v.
func (p *Position) Advance(v Velocity) {
	p.X += v.x
	p.Y += v.y
}

// Clamp pins each axis of p into [0, width] and [0, height].
func (p *Position) Clamp(width, height float32) {
	p.X = clamp(p.X, 0, width)
	p.Y = clamp(p.Y, 0, height)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
