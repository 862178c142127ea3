package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// TypeID is the dense identifier the Registry assigns to every registered
// storage and resource type. Access sets are bitmaps over TypeIDs.
type TypeID uint32

type slotKind uint8

const (
	kindStorage slotKind = iota + 1
	kindResource
)

func (k slotKind) String() string {
	switch k {
	case kindStorage:
		return "storage"
	case kindResource:
		return "resource"
	}
	return "unknown"
}

type slot struct {
	kind  slotKind
	typ   reflect.Type
	value any
}

// Registry tracks all component stores and resources, and supports bulk
// cleanup on entity destroy.
type Registry struct {
	stores []Removable
	types  map[reflect.Type]TypeID
	slots  []slot
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 16),
		types:  make(map[reflect.Type]TypeID, 16),
		slots:  make([]slot, 0, 16),
	}
}

func (r *Registry) add(kind slotKind, t reflect.Type, value any) (TypeID, error) {
	if id, ok := r.types[t]; ok {
		return id, eris.Wrapf(ErrAlreadyRegistered, "%s %s (as %s)", kind, t, r.slots[id].kind)
	}
	id := TypeID(len(r.slots))
	r.types[t] = id
	r.slots = append(r.slots, slot{kind: kind, typ: t, value: value})
	if rm, ok := value.(Removable); ok && kind == kindStorage {
		r.stores = append(r.stores, rm)
	}
	return id, nil
}

func (r *Registry) lookup(t reflect.Type) (TypeID, *slot, bool) {
	id, ok := r.types[t]
	if !ok {
		return 0, nil, false
	}
	return id, &r.slots[id], true
}

// Len returns the number of registered storages and resources.
func (r *Registry) Len() int { return len(r.slots) }

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Discard(id)
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
