package render

import (
	"sync"

	"github.com/l1jgo/pong/internal/world"
)

// Snapshot is everything a backend needs to present one frame.
type Snapshot struct {
	Tick       uint64
	Arena      world.Arena
	Score      world.Scoreboard
	Primitives []Primitive
}

// Renderer is the injected presentation backend. Present hands it one
// snapshot per render tick.
type Renderer interface {
	Present(s Snapshot) error
}

// Recorder is a headless Renderer that keeps the most recent snapshot.
type Recorder struct {
	mu     sync.Mutex
	last   Snapshot
	frames int
}

func (r *Recorder) Present(s Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.Primitives = append([]Primitive(nil), s.Primitives...)
	r.last = s
	r.frames++
	return nil
}

// Last returns the most recent snapshot and the number presented so far.
func (r *Recorder) Last() (Snapshot, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.frames
}
