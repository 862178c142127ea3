package system

import (
	"github.com/l1jgo/pong/internal/component"
	"github.com/l1jgo/pong/internal/core/ecs"
	"github.com/l1jgo/pong/internal/world"
)

// CollisionSystem reflects balls off paddles and off the top and bottom
// walls. Every overlapping paddle flips the horizontal component once, so
// two overlaps in the same tick cancel out.
type CollisionSystem struct{}

func NewCollisionSystem() *CollisionSystem { return &CollisionSystem{} }

func (CollisionSystem) Access() ecs.Access {
	return ecs.AccessOf(
		ecs.Reads[component.Position](),
		ecs.Reads[component.Ball](),
		ecs.Reads[component.Paddle](),
		ecs.Reads[world.Arena](),
		ecs.Writes[component.Velocity](),
	)
}

func (CollisionSystem) Run(sc *ecs.Scope) error {
	arena := ecs.ReadResource[world.Arena](sc)
	positions := ecs.ReadStorage[component.Position](sc)
	balls := ecs.ReadStorage[component.Ball](sc)
	paddles := ecs.ReadStorage[component.Paddle](sc)
	velocities := ecs.WriteStorage[component.Velocity](sc)

	ecs.Each3[component.Ball, component.Position, component.Velocity](balls, positions, velocities, func(_ ecs.EntityID, b *component.Ball, at *component.Position, v *component.Velocity) {
		ecs.Each2[component.Paddle, component.Position](paddles, positions, func(_ ecs.EntityID, p *component.Paddle, pat *component.Position) {
			if p.Contains(*pat, *at, b.Radius) {
				v.NegateX()
			}
		})
		if arena.AtEndWall(at.Y) {
			v.NegateY()
		}
	})
	return nil
}
