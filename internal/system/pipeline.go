package system

import (
	"github.com/l1jgo/pong/internal/core/ecs"
	"github.com/l1jgo/pong/internal/core/event"
	coresys "github.com/l1jgo/pong/internal/core/system"
	"github.com/l1jgo/pong/internal/render"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// System names used as dispatcher nodes.
const (
	NameInput       = "input"
	NamePhysics     = "physics"
	NameCollision   = "collision"
	NameScore       = "score"
	NameCleanup     = "cleanup"
	NameClear       = "clear"
	NameDrawPaddles = "draw_paddles"
	NameDrawBalls   = "draw_balls"
	NamePresent     = "present"
)

// UpdateOptions configures the update dispatcher.
type UpdateOptions struct {
	SpawnKey     event.Key
	RadiusLambda float64
	Seed         uint64
	Policy       Policy
	Parallel     bool
	Log          *zap.Logger
}

// UpdatePipeline builds input -> physics -> collision -> score -> cleanup
// over w. w must already hold the storages and resources world.New adds.
func UpdatePipeline(w *ecs.World, opts UpdateOptions) (*coresys.Dispatcher, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	if _, ok := ecs.ResourceOf[*event.Channel[event.Event]](w); !ok {
		return nil, eris.Wrap(ecs.ErrNotRegistered, "event channel resource")
	}

	d, err := coresys.NewBuilder().
		WithParallel(opts.Parallel).
		Add(NewInputSystem(w, opts.SpawnKey, opts.RadiusLambda, opts.Seed, log.Named(NameInput)), NameInput).
		Add(NewPhysicsSystem(), NamePhysics, NameInput).
		Add(NewCollisionSystem(), NameCollision, NamePhysics).
		Add(NewScoreSystem(opts.Policy, log.Named(NameScore)), NameScore, NameCollision).
		Add(NewCleanupSystem(log.Named(NameCleanup)), NameCleanup, NameScore).
		Build(w)
	if err != nil {
		return nil, eris.Wrap(err, "build update dispatcher")
	}
	return d, nil
}

// RenderPipeline builds clear -> draw_paddles -> draw_balls -> present and
// installs r as the Renderer resource. Both draw systems write the frame,
// so paddles are queued before balls.
func RenderPipeline(w *ecs.World, r render.Renderer, parallel bool) (*coresys.Dispatcher, error) {
	if r == nil {
		return nil, eris.New("nil renderer")
	}
	if _, ok := ecs.ResourceOf[*render.Frame](w); !ok {
		if err := ecs.AddResource(w, render.NewFrame()); err != nil {
			return nil, eris.Wrap(err, "frame resource")
		}
	}
	if err := ecs.AddResource[render.Renderer](w, r); err != nil {
		return nil, eris.Wrap(err, "renderer resource")
	}

	d, err := coresys.NewBuilder().
		WithParallel(parallel).
		Add(ClearSystem{}, NameClear).
		Add(DrawPaddlesSystem{}, NameDrawPaddles, NameClear).
		Add(DrawBallsSystem{}, NameDrawBalls, NameDrawPaddles).
		Add(PresentSystem{}, NamePresent, NameDrawBalls).
		Build(w)
	if err != nil {
		return nil, eris.Wrap(err, "build render dispatcher")
	}
	return d, nil
}
