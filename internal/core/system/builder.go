package system

import (
	"strings"

	"github.com/kelindar/bitmap"
	"github.com/l1jgo/pong/internal/core/ecs"
	"github.com/rotisserie/eris"
)

type entry struct {
	sys  System
	name string
	deps []string
}

// Builder collects systems with their names and dependency names. Nothing
// is validated until Build, so registration order is free.
type Builder struct {
	entries  []entry
	names    map[string]int
	errs     []error
	parallel bool
}

func NewBuilder() *Builder {
	return &Builder{
		entries: make([]entry, 0, 8),
		names:   make(map[string]int, 8),
	}
}

// Add registers sys under name, to run after every system named in deps.
func (b *Builder) Add(sys System, name string, deps ...string) *Builder {
	switch {
	case name == "":
		b.errs = append(b.errs, eris.Wrap(ErrInvalidSystem, "empty system name"))
		return b
	case sys == nil:
		b.errs = append(b.errs, eris.Wrapf(ErrInvalidSystem, "system %q is nil", name))
		return b
	}
	if _, exists := b.names[name]; exists {
		b.errs = append(b.errs, eris.Wrapf(ErrDuplicateSystem, "%q", name))
		return b
	}
	b.names[name] = len(b.entries)
	b.entries = append(b.entries, entry{sys: sys, name: name, deps: append([]string(nil), deps...)})
	return b
}

// WithParallel selects concurrent execution of independent systems.
func (b *Builder) WithParallel(on bool) *Builder {
	b.parallel = on
	return b
}

// Build validates the graph against w and returns a ready dispatcher.
// Duplicate names, unknown dependencies, cycles, unregistered access types
// and conflicting access between unordered systems are all reported here,
// never during Dispatch.
func (b *Builder) Build(w *ecs.World) (*Dispatcher, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	n := len(b.entries)
	nodes := make([]node, n)
	for i, e := range b.entries {
		nodes[i] = node{name: e.name, sys: e.sys}
	}
	// dependencies may name systems registered later
	for i, e := range b.entries {
		for _, dep := range e.deps {
			j, ok := b.names[dep]
			if !ok {
				return nil, eris.Wrapf(ErrUnknownDependency, "system %s depends on unregistered system %s", e.name, dep)
			}
			nodes[i].deps = append(nodes[i].deps, j)
			nodes[j].dependents = append(nodes[j].dependents, i)
		}
	}

	order, err := topologicalSort(nodes)
	if err != nil {
		return nil, err
	}

	for i := range nodes {
		access, err := w.Resolve(nodes[i].sys.Access())
		if err != nil {
			return nil, eris.Wrapf(err, "system %s", nodes[i].name)
		}
		nodes[i].access = access
	}

	if err := checkConflicts(nodes, order); err != nil {
		return nil, err
	}

	d := &Dispatcher{
		world:    w,
		nodes:    nodes,
		order:    order,
		parallel: b.parallel,
	}
	for i := range nodes {
		if len(nodes[i].deps) == 0 {
			d.roots = append(d.roots, i)
		}
	}
	return d, nil
}

// topologicalSort orders nodes with Kahn's algorithm. Among ready nodes the
// earliest registered goes first, so the order is deterministic.
func topologicalSort(nodes []node) ([]int, error) {
	indegree := make([]int, len(nodes))
	for i := range nodes {
		indegree[i] = len(nodes[i].deps)
	}

	done := make([]bool, len(nodes))
	order := make([]int, 0, len(nodes))
	for len(order) < len(nodes) {
		next := -1
		for i := range nodes {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var stuck []string
			for i := range nodes {
				if !done[i] {
					stuck = append(stuck, nodes[i].name)
				}
			}
			return nil, eris.Wrapf(ErrDependencyCycle, "among systems %s", strings.Join(stuck, ", "))
		}
		done[next] = true
		order = append(order, next)
		for _, dep := range nodes[next].dependents {
			indegree[dep]--
		}
	}
	return order, nil
}

// checkConflicts rejects pairs of systems whose access conflicts while
// neither is reachable from the other through declared dependencies.
func checkConflicts(nodes []node, order []int) error {
	ancestors := make([]bitmap.Bitmap, len(nodes))
	for _, i := range order {
		for _, dep := range nodes[i].deps {
			ancestors[i].Or(ancestors[dep])
			ancestors[i].Set(uint32(dep))
		}
	}

	for x := 0; x < len(order); x++ {
		for y := x + 1; y < len(order); y++ {
			a, b := order[x], order[y]
			if !nodes[a].access.Conflicts(nodes[b].access) {
				continue
			}
			if ancestors[b].Contains(uint32(a)) || ancestors[a].Contains(uint32(b)) {
				continue
			}
			return eris.Wrapf(ErrAccessConflict, "systems %s and %s", nodes[a].name, nodes[b].name)
		}
	}
	return nil
}
