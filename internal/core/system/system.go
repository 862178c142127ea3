package system

import "github.com/l1jgo/pong/internal/core/ecs"

// System is the interface every ECS system implements.
//
// Access is read once when the dispatcher is built; Run is called once per
// tick with a scope limited to that access.
type System interface {
	Access() ecs.Access
	Run(s *ecs.Scope) error
}

// Func adapts a plain function into a System.
type Func struct {
	Declares ecs.Access
	Fn       func(s *ecs.Scope) error
}

func (f Func) Access() ecs.Access     { return f.Declares }
func (f Func) Run(s *ecs.Scope) error { return f.Fn(s) }
