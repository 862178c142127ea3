package config

import (
	"github.com/l1jgo/pong/internal/core/event"
	"github.com/rotisserie/eris"
)

var ErrInvalid = eris.New("invalid config")

// Validate rejects values the loop and systems cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Loop.UpdatesPerSecond <= 0:
		return eris.Wrap(ErrInvalid, "loop.updates_per_second must be positive")
	case c.Loop.RendersPerSecond <= 0:
		return eris.Wrap(ErrInvalid, "loop.renders_per_second must be positive")
	case c.Loop.MaxBehind < 1:
		return eris.Wrap(ErrInvalid, "loop.max_behind must be at least 1")
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return eris.Wrapf(ErrInvalid, "arena %gx%g must be positive", c.Arena.Width, c.Arena.Height)
	case c.Events.Capacity <= 0:
		return eris.Wrap(ErrInvalid, "events.capacity must be positive")
	case c.Input.RadiusLambda <= 0:
		return eris.Wrap(ErrInvalid, "input.radius_lambda must be positive")
	case c.Terminal.Hold <= 0:
		return eris.Wrap(ErrInvalid, "terminal.hold must be positive")
	}
	if _, err := event.ParseKey(c.Input.SpawnKey); err != nil {
		return eris.Wrapf(ErrInvalid, "input.spawn_key: %v", err)
	}
	switch c.Rules.OutOfBounds {
	case "respawn", "destroy":
	default:
		return eris.Wrapf(ErrInvalid, "rules.out_of_bounds %q", c.Rules.OutOfBounds)
	}
	switch c.Profile.Mode {
	case "", "cpu", "mem", "trace":
	default:
		return eris.Wrapf(ErrInvalid, "profile.mode %q", c.Profile.Mode)
	}
	return nil
}
