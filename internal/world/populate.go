package world

import (
	"math/rand/v2"

	"github.com/l1jgo/pong/internal/component"
	"github.com/l1jgo/pong/internal/core/ecs"
	"github.com/l1jgo/pong/internal/data"
)

// RegisterComponents registers every component storage the game uses.
func RegisterComponents(w *ecs.World) {
	ecs.Register[component.Position](w)
	ecs.Register[component.Velocity](w)
	ecs.Register[component.Ball](w)
	ecs.Register[component.Paddle](w)
	ecs.Register[component.Axis](w)
}

// Populate creates the scene's paddles and balls. Paddles start still at
// half height against their wall; balls start at the centre moving in a
// random direction drawn from rng.
func Populate(w *ecs.World, arena Arena, scene *data.Scene, rng *rand.Rand) []ecs.EntityID {
	RegisterComponents(w)

	ids := make([]ecs.EntityID, 0, scene.Count())
	for _, p := range scene.Paddles {
		x := float32(0)
		if p.Right {
			x = arena.Width
		}
		id := w.CreateEntity()
		ecs.Insert(w, id, component.Position{X: x, Y: arena.Height / 2})
		ecs.Insert(w, id, component.NewVelocity(0, 0))
		ecs.Insert(w, id, component.Paddle{Length: p.Length})
		ecs.Insert(w, id, component.NewAxis(p.Positive, p.Negative))
		ids = append(ids, id)
	}
	for _, b := range scene.Balls {
		id := w.CreateEntity()
		ecs.Insert(w, id, arena.Center())
		ecs.Insert(w, id, component.RandomVelocity(rng))
		ecs.Insert(w, id, component.Ball{Radius: b.Radius})
		ids = append(ids, id)
	}
	return ids
}
