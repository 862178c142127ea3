package system

import (
	"runtime/debug"
	"sync/atomic"

	"github.com/l1jgo/pong/internal/core/ecs"
	"golang.org/x/sync/errgroup"
)

type node struct {
	name       string
	sys        System
	access     ecs.ResolvedAccess
	deps       []int
	dependents []int
}

// Dispatcher runs a validated set of systems once per Dispatch call, in an
// order consistent with their declared dependencies.
type Dispatcher struct {
	world    *ecs.World
	nodes    []node
	order    []int // topological, registration order breaks ties
	roots    []int
	parallel bool
	tick     uint64
}

// Dispatch runs one tick. The first failing system aborts the tick: systems
// that have not started are skipped, systems already finished keep their
// effects. The returned error is a *Fault.
func (d *Dispatcher) Dispatch() error {
	d.tick++
	if len(d.nodes) == 0 {
		return nil
	}
	if d.parallel {
		return d.runParallel(d.tick)
	}
	for _, i := range d.order {
		if err := d.runOne(i, d.tick); err != nil {
			return err
		}
	}
	return nil
}

// runParallel starts every system as soon as its last dependency finishes.
// Build guarantees that systems eligible at the same time never conflict.
func (d *Dispatcher) runParallel(tick uint64) error {
	remaining := make([]atomic.Int32, len(d.nodes))
	for i := range d.nodes {
		remaining[i].Store(int32(len(d.nodes[i].deps))) //nolint:gosec // system counts are tiny
	}

	var (
		g      errgroup.Group
		failed atomic.Bool
	)
	var schedule func(i int)
	schedule = func(i int) {
		g.Go(func() error {
			if failed.Load() {
				return nil
			}
			if err := d.runOne(i, tick); err != nil {
				failed.Store(true)
				return err
			}
			for _, dep := range d.nodes[i].dependents {
				if remaining[dep].Add(-1) == 0 {
					schedule(dep)
				}
			}
			return nil
		})
	}
	for _, i := range d.roots {
		schedule(i)
	}
	return g.Wait()
}

func (d *Dispatcher) runOne(i int, tick uint64) (err error) {
	n := &d.nodes[i]
	defer func() {
		if r := recover(); r != nil {
			f := &Fault{System: n.name, Tick: tick, Panic: r, Stack: debug.Stack()}
			if e, ok := r.(error); ok {
				f.Err = e
			}
			err = f
		}
	}()
	if runErr := n.sys.Run(ecs.NewScope(d.world, n.name, n.access, tick)); runErr != nil {
		return &Fault{System: n.name, Tick: tick, Err: runErr}
	}
	return nil
}

// Order returns system names in the sequential execution order.
func (d *Dispatcher) Order() []string {
	out := make([]string, len(d.order))
	for k, i := range d.order {
		out[k] = d.nodes[i].name
	}
	return out
}

// Tick returns the number of Dispatch calls so far.
func (d *Dispatcher) Tick() uint64 { return d.tick }

func (d *Dispatcher) Len() int { return len(d.nodes) }

func (d *Dispatcher) Parallel() bool { return d.parallel }
