package system

import (
	"github.com/l1jgo/pong/internal/component"
	"github.com/l1jgo/pong/internal/core/ecs"
	"github.com/l1jgo/pong/internal/render"
	"github.com/l1jgo/pong/internal/world"
	"github.com/rotisserie/eris"
)

// ClearSystem starts a new frame.
type ClearSystem struct{}

func (ClearSystem) Access() ecs.Access {
	return ecs.AccessOf(ecs.Writes[*render.Frame]())
}

func (ClearSystem) Run(sc *ecs.Scope) error {
	ecs.WriteResource[*render.Frame](sc).Reset(sc.Tick())
	return nil
}

// DrawPaddlesSystem queues one rectangle per paddle.
type DrawPaddlesSystem struct{}

func (DrawPaddlesSystem) Access() ecs.Access {
	return ecs.AccessOf(
		ecs.Reads[component.Position](),
		ecs.Reads[component.Paddle](),
		ecs.Writes[*render.Frame](),
	)
}

func (DrawPaddlesSystem) Run(sc *ecs.Scope) error {
	frame := ecs.WriteResource[*render.Frame](sc)
	ecs.Each2[component.Paddle, component.Position](ecs.ReadStorage[component.Paddle](sc), ecs.ReadStorage[component.Position](sc),
		func(_ ecs.EntityID, p *component.Paddle, at *component.Position) {
			frame.QueueRect(*at, component.PaddleWidth, p.Length)
		})
	return nil
}

// DrawBallsSystem queues one circle per ball.
type DrawBallsSystem struct{}

func (DrawBallsSystem) Access() ecs.Access {
	return ecs.AccessOf(
		ecs.Reads[component.Position](),
		ecs.Reads[component.Ball](),
		ecs.Writes[*render.Frame](),
	)
}

func (DrawBallsSystem) Run(sc *ecs.Scope) error {
	frame := ecs.WriteResource[*render.Frame](sc)
	ecs.Each2[component.Ball, component.Position](ecs.ReadStorage[component.Ball](sc), ecs.ReadStorage[component.Position](sc),
		func(_ ecs.EntityID, b *component.Ball, at *component.Position) {
			frame.QueueCircle(*at, b.Radius)
		})
	return nil
}

// PresentSystem hands the finished frame to the Renderer resource.
type PresentSystem struct{}

func (PresentSystem) Access() ecs.Access {
	return ecs.AccessOf(
		ecs.Reads[*render.Frame](),
		ecs.Reads[world.Arena](),
		ecs.Reads[*world.Scoreboard](),
		ecs.Writes[render.Renderer](),
	)
}

func (PresentSystem) Run(sc *ecs.Scope) error {
	frame := ecs.ReadResource[*render.Frame](sc)
	r := ecs.WriteResource[render.Renderer](sc)
	err := r.Present(render.Snapshot{
		Tick:       frame.Tick,
		Arena:      ecs.ReadResource[world.Arena](sc),
		Score:      ecs.ReadResourceValue[world.Scoreboard](sc),
		Primitives: frame.Primitives(),
	})
	return eris.Wrap(err, "present frame")
}
