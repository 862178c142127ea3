package ecs

import (
	"fmt"

	"github.com/rotisserie/eris"
)

var (
	// ErrNotRegistered is returned when a storage or resource type was never
	// added to the world.
	ErrNotRegistered = eris.New("type not registered in world")

	// ErrAlreadyRegistered is returned when a type is registered twice.
	ErrAlreadyRegistered = eris.New("type already registered in world")
)

// AccessError reports a system reaching for data outside its declared
// Access. It is raised as a panic: the system is wrong, not the world.
type AccessError struct {
	System string
	Type   string
	Mode   string
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("system %q did not declare %s access to %s", e.System, e.Mode, e.Type)
}
