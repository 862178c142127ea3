package system

import (
	"math/rand/v2"

	"github.com/l1jgo/pong/internal/component"
	"github.com/l1jgo/pong/internal/core/ecs"
	"github.com/l1jgo/pong/internal/core/event"
	"github.com/l1jgo/pong/internal/world"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/distuv"
)

// InputSystem drains the event channel once per tick. Releasing the spawn
// key creates a ball; every other key is fed to the paddle axes.
// First system of the update dispatcher.
type InputSystem struct {
	events   *event.Channel[event.Event]
	reader   event.ReaderID
	spawnKey event.Key
	radius   distuv.Poisson
	lost     uint64
	log      *zap.Logger
}

// NewInputSystem registers a reader on w's event channel, so only events
// published after this call are seen. Spawned ball radii are drawn from a
// Poisson distribution with the given mean.
func NewInputSystem(w *ecs.World, spawnKey event.Key, lambda float64, seed uint64, log *zap.Logger) *InputSystem {
	events := ecs.MustResource[*event.Channel[event.Event]](w)
	return &InputSystem{
		events:   events,
		reader:   events.Register(),
		spawnKey: spawnKey,
		radius:   distuv.Poisson{Lambda: lambda, Src: rand.NewPCG(seed, seed+1)},
		log:      log,
	}
}

func (s *InputSystem) Access() ecs.Access {
	return ecs.AccessOf(
		ecs.Structural(),
		ecs.Reads[*event.Channel[event.Event]](),
		ecs.Reads[world.Arena](),
		ecs.Writes[*rand.Rand](),
		ecs.Writes[component.Position](),
		ecs.Writes[component.Velocity](),
		ecs.Writes[component.Ball](),
		ecs.Writes[component.Axis](),
	)
}

func (s *InputSystem) Run(sc *ecs.Scope) error {
	events := ecs.ReadResource[*event.Channel[event.Event]](sc)
	batch := events.Drain(s.reader)
	if lost := events.Lost(s.reader); lost > s.lost {
		s.log.Warn("input events lost",
			zap.Uint64("lost", lost-s.lost),
			zap.Uint64("tick", sc.Tick()))
		s.lost = lost
	}
	if len(batch) == 0 {
		return nil
	}

	arena := ecs.ReadResource[world.Arena](sc)
	rng := ecs.WriteResource[*rand.Rand](sc)
	positions := ecs.WriteStorage[component.Position](sc)
	velocities := ecs.WriteStorage[component.Velocity](sc)
	balls := ecs.WriteStorage[component.Ball](sc)
	axes := ecs.WriteStorage[component.Axis](sc)

	for _, ev := range batch {
		in, ok := ev.(event.KeyboardInput)
		if !ok {
			continue
		}
		if in.Key == s.spawnKey && in.State == event.Released {
			id := sc.CreateEntity()
			radius := float32(s.radius.Rand())
			positions.Insert(id, arena.Center())
			velocities.Insert(id, component.RandomVelocity(rng))
			balls.Insert(id, component.Ball{Radius: radius})
			s.log.Debug("ball spawned",
				zap.Stringer("entity", id),
				zap.Float32("radius", radius))
			continue
		}
		ecs.Each2[component.Velocity, component.Axis](velocities, axes, func(_ ecs.EntityID, v *component.Velocity, ax *component.Axis) {
			if sign, ok := ax.Update(in); ok {
				v.SetY(sign * component.PaddleSpeed)
			}
		})
	}
	return nil
}

// Close releases the channel reader.
func (s *InputSystem) Close() {
	s.events.Unregister(s.reader)
}
