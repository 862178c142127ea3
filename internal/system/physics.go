package system

import (
	"github.com/l1jgo/pong/internal/component"
	"github.com/l1jgo/pong/internal/core/ecs"
	"github.com/l1jgo/pong/internal/world"
)

// PhysicsSystem moves every entity by its velocity and clamps the result
// into the arena. Velocity is left alone; reflection is Collision's job.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem { return &PhysicsSystem{} }

func (PhysicsSystem) Access() ecs.Access {
	return ecs.AccessOf(
		ecs.Writes[component.Position](),
		ecs.Reads[component.Velocity](),
		ecs.Reads[world.Arena](),
	)
}

func (PhysicsSystem) Run(sc *ecs.Scope) error {
	arena := ecs.ReadResource[world.Arena](sc)
	positions := ecs.WriteStorage[component.Position](sc)
	velocities := ecs.ReadStorage[component.Velocity](sc)

	ecs.Each2[component.Position, component.Velocity](positions, velocities, func(_ ecs.EntityID, p *component.Position, v *component.Velocity) {
		p.Advance(*v)
		p.Clamp(arena.Width, arena.Height)
	})
	return nil
}
