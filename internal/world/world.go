package world

import (
	"math/rand/v2"

	"github.com/l1jgo/pong/internal/core/ecs"
	"github.com/l1jgo/pong/internal/core/event"
	"github.com/l1jgo/pong/internal/data"
	"github.com/rotisserie/eris"
)

// Options configures a freshly built game world.
type Options struct {
	Arena         Arena
	Scene         *data.Scene
	EventCapacity int
	Seed          uint64
}

// New builds the ECS world with every storage and shared resource the game
// systems expect, and populates it from the scene.
//
// Resources: Arena, *Scoreboard, *rand.Rand and the input channel
// *event.Channel[event.Event].
func New(opts Options) (*ecs.World, *event.Channel[event.Event], error) {
	if opts.Scene == nil {
		opts.Scene = data.DefaultScene()
	}
	w := ecs.NewWorld()
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	events := event.NewChannel[event.Event](opts.EventCapacity)

	if err := ecs.AddResource(w, opts.Arena); err != nil {
		return nil, nil, eris.Wrap(err, "arena")
	}
	if err := ecs.AddResource(w, &Scoreboard{}); err != nil {
		return nil, nil, eris.Wrap(err, "scoreboard")
	}
	if err := ecs.AddResource(w, rng); err != nil {
		return nil, nil, eris.Wrap(err, "rng")
	}
	if err := ecs.AddResource(w, events); err != nil {
		return nil, nil, eris.Wrap(err, "event channel")
	}

	Populate(w, opts.Arena, opts.Scene, rng)
	return w, events, nil
}
