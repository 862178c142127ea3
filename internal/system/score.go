package system

import (
	"math/rand/v2"
	"strings"

	"github.com/l1jgo/pong/internal/component"
	"github.com/l1jgo/pong/internal/core/ecs"
	"github.com/l1jgo/pong/internal/world"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Policy decides what happens to a ball that reaches a side wall.
type Policy uint8

const (
	// Respawn puts the ball back at the centre with a fresh velocity.
	Respawn Policy = iota
	// Destroy queues the ball for destruction at the end of the tick.
	Destroy
)

var ErrUnknownPolicy = eris.New("unknown out-of-bounds policy")

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "respawn":
		return Respawn, nil
	case "destroy":
		return Destroy, nil
	}
	return 0, eris.Wrapf(ErrUnknownPolicy, "%q", s)
}

func (p Policy) String() string {
	if p == Destroy {
		return "destroy"
	}
	return "respawn"
}

// ScoreSystem credits a point whenever a ball sits exactly on a side wall
// and then applies the configured policy to it. A ball on the left wall
// scores for the right player.
type ScoreSystem struct {
	policy Policy
	log    *zap.Logger
}

func NewScoreSystem(policy Policy, log *zap.Logger) *ScoreSystem {
	return &ScoreSystem{policy: policy, log: log}
}

func (s *ScoreSystem) Policy() Policy { return s.policy }

func (s *ScoreSystem) Access() ecs.Access {
	a := ecs.AccessOf(
		ecs.Reads[component.Ball](),
		ecs.Reads[world.Arena](),
		ecs.Writes[*world.Scoreboard](),
	)
	if s.policy == Destroy {
		return a.With(ecs.Reads[component.Position](), ecs.Defers())
	}
	return a.With(
		ecs.Writes[component.Position](),
		ecs.Writes[component.Velocity](),
		ecs.Writes[*rand.Rand](),
	)
}

func (s *ScoreSystem) Run(sc *ecs.Scope) error {
	arena := ecs.ReadResource[world.Arena](sc)
	board := ecs.WriteResource[*world.Scoreboard](sc)
	balls := ecs.ReadStorage[component.Ball](sc)

	score := func(id ecs.EntityID, at component.Position) bool {
		if !arena.AtSideWall(at.X) {
			return false
		}
		side := world.Left
		if at.X == 0 {
			side = world.Right
		}
		board.Point(side)
		s.log.Debug("point scored",
			zap.Stringer("side", side),
			zap.Stringer("ball", id),
			zap.Int("left", board.Left),
			zap.Int("right", board.Right))
		return true
	}

	if s.policy == Destroy {
		positions := ecs.ReadStorage[component.Position](sc)
		ecs.Each2[component.Ball, component.Position](balls, positions, func(id ecs.EntityID, _ *component.Ball, at *component.Position) {
			if score(id, *at) {
				sc.MarkForDestruction(id)
			}
		})
		return nil
	}

	rng := ecs.WriteResource[*rand.Rand](sc)
	positions := ecs.WriteStorage[component.Position](sc)
	velocities := ecs.WriteStorage[component.Velocity](sc)
	ecs.Each3[component.Ball, component.Position, component.Velocity](balls, positions, velocities, func(id ecs.EntityID, _ *component.Ball, at *component.Position, v *component.Velocity) {
		if score(id, *at) {
			*at = arena.Center()
			*v = component.RandomVelocity(rng)
		}
	})
	return nil
}
