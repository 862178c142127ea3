package ecs

import (
	"reflect"
	"strings"

	"github.com/kelindar/bitmap"
	"github.com/rotisserie/eris"
)

// Mode is how a system touches a storage or resource.
type Mode uint8

const (
	ModeRead Mode = iota + 1
	ModeWrite
)

func (m Mode) String() string {
	if m == ModeWrite {
		return "write"
	}
	return "read"
}

// Capability is one entry of a system's declared data access.
type Capability struct {
	typ        reflect.Type
	mode       Mode
	structural bool
	defers     bool
}

// Reads declares read-only access to the storage or resource of type T.
func Reads[T any]() Capability { return Capability{typ: typeOf[T](), mode: ModeRead} }

// Writes declares read-write access to the storage or resource of type T.
func Writes[T any]() Capability { return Capability{typ: typeOf[T](), mode: ModeWrite} }

// Structural declares that the system creates or destroys entities. A
// structural system conflicts with every system that touches a storage.
func Structural() Capability { return Capability{structural: true} }

// Defers declares that the system queues entities for end-of-tick
// destruction through Scope.MarkForDestruction.
func Defers() Capability { return Capability{defers: true} }

// Access is the static read/write set a system declares.
type Access struct {
	caps []Capability
}

func AccessOf(caps ...Capability) Access {
	return Access{caps: append([]Capability(nil), caps...)}
}

// With returns a copy of a extended by caps.
func (a Access) With(caps ...Capability) Access {
	out := make([]Capability, 0, len(a.caps)+len(caps))
	out = append(out, a.caps...)
	out = append(out, caps...)
	return Access{caps: out}
}

func (a Access) String() string {
	parts := make([]string, 0, len(a.caps))
	for _, c := range a.caps {
		switch {
		case c.structural:
			parts = append(parts, "structural")
		case c.defers:
			parts = append(parts, "defers")
		default:
			parts = append(parts, c.mode.String()+"("+c.typ.String()+")")
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// ResolvedAccess is an Access bound to one world's TypeIDs.
type ResolvedAccess struct {
	reads      bitmap.Bitmap
	writes     bitmap.Bitmap
	storages   bool
	structural bool
	defers     bool
}

// Resolve binds a to w. Every referenced type must already be registered.
func (w *World) Resolve(a Access) (ResolvedAccess, error) {
	var r ResolvedAccess
	for _, c := range a.caps {
		switch {
		case c.structural:
			r.structural = true
			continue
		case c.defers:
			r.defers = true
			continue
		}
		id, s, ok := w.registry.lookup(c.typ)
		if !ok {
			return ResolvedAccess{}, eris.Wrapf(ErrNotRegistered, "%s access to %s", c.mode, c.typ)
		}
		if s.kind == kindStorage {
			r.storages = true
		}
		if c.mode == ModeWrite {
			r.writes.Set(uint32(id))
		} else {
			r.reads.Set(uint32(id))
		}
	}
	return r, nil
}

// Allows reports whether the access permits touching id in mode m.
// Write access implies read access.
func (r ResolvedAccess) Allows(id TypeID, m Mode) bool {
	if r.writes.Contains(uint32(id)) {
		return true
	}
	return m == ModeRead && r.reads.Contains(uint32(id))
}

// Structural reports whether the access may create or destroy entities.
func (r ResolvedAccess) Structural() bool { return r.structural }

// Conflicts reports whether two systems with these access sets may not run
// at the same time: one writes something the other reads or writes, or one
// is structural while the other touches any storage or the entity pool.
func (r ResolvedAccess) Conflicts(o ResolvedAccess) bool {
	if r.structural && (o.structural || o.storages || o.defers) {
		return true
	}
	if o.structural && (r.storages || r.defers) {
		return true
	}
	return intersects(r.writes, o.writes) ||
		intersects(r.writes, o.reads) ||
		intersects(o.writes, r.reads)
}

func intersects(a, b bitmap.Bitmap) bool {
	if a.Count() == 0 || b.Count() == 0 {
		return false
	}
	found := false
	a.Range(func(x uint32) {
		if !found && b.Contains(x) {
			found = true
		}
	})
	return found
}
