package system

import (
	"fmt"

	"github.com/rotisserie/eris"
)

var (
	ErrDuplicateSystem   = eris.New("duplicate system name")
	ErrInvalidSystem     = eris.New("invalid system registration")
	ErrUnknownDependency = eris.New("unknown dependency")
	ErrDependencyCycle   = eris.New("dependency cycle")
	ErrAccessConflict    = eris.New("conflicting access without an ordering dependency")
)

// Fault is returned by Dispatch when a system fails. It names the system
// and the tick so the caller can report where the tick was aborted.
type Fault struct {
	System string
	Tick   uint64
	Err    error
	// Panic holds the recovered value when the system panicked.
	Panic any
	Stack []byte
}

func (f *Fault) Error() string {
	if f.Panic != nil {
		return fmt.Sprintf("system %s panicked at tick %d: %v", f.System, f.Tick, f.Panic)
	}
	return fmt.Sprintf("system %s failed at tick %d: %v", f.System, f.Tick, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// Fatal reports whether the fault is an invariant violation rather than an
// error the system chose to return.
func (f *Fault) Fatal() bool { return f.Panic != nil }

// Kind names the fault class for logs.
func (f *Fault) Kind() string {
	if f.Fatal() {
		return "panic"
	}
	return "error"
}
