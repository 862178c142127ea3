package world

// Side identifies a player.
type Side uint8

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Scoreboard counts points per side. Written by ScoreSystem, read by the
// render systems; the two dispatchers never run at the same time.
type Scoreboard struct {
	Left  int
	Right int
}

// Point credits one point to side.
func (b *Scoreboard) Point(side Side) {
	if side == Right {
		b.Right++
		return
	}
	b.Left++
}

func (b *Scoreboard) Total() int { return b.Left + b.Right }
