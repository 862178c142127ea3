package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Discard(id EntityID)
}

// Storage is a generic sparse-set store for one component type.
// Values live in a dense slice, so iteration follows insertion order and
// only changes when rows are inserted or removed.
//
// Pointers returned by Get and Each are valid until the next Insert or
// Remove on the same storage.
type Storage[T any] struct {
	dense []T
	ids   []EntityID
	index map[EntityID]int
	alive func(EntityID) bool
}

// NewStorage returns a standalone storage. Storages created through Register
// additionally refuse inserts for dead entities.
func NewStorage[T any]() *Storage[T] {
	return &Storage[T]{
		dense: make([]T, 0, 64),
		ids:   make([]EntityID, 0, 64),
		index: make(map[EntityID]int, 64),
	}
}

// Insert sets the component for id, overwriting any existing value.
// It returns false when id is not alive in the owning world.
func (s *Storage[T]) Insert(id EntityID, c T) bool {
	if s.alive != nil && !s.alive(id) {
		return false
	}
	if i, ok := s.index[id]; ok {
		s.dense[i] = c
		return true
	}
	s.index[id] = len(s.dense)
	s.dense = append(s.dense, c)
	s.ids = append(s.ids, id)
	return true
}

func (s *Storage[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.dense[i], true
}

// Remove deletes and returns the component for id.
func (s *Storage[T]) Remove(id EntityID) (T, bool) {
	var zero T
	i, ok := s.index[id]
	if !ok {
		return zero, false
	}
	removed := s.dense[i]
	last := len(s.dense) - 1
	if i != last {
		s.dense[i] = s.dense[last]
		s.ids[i] = s.ids[last]
		s.index[s.ids[i]] = i
	}
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.ids = s.ids[:last]
	delete(s.index, id)
	return removed, true
}

// Discard implements Removable.
func (s *Storage[T]) Discard(id EntityID) {
	s.Remove(id)
}

func (s *Storage[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Storage[T]) Len() int {
	return len(s.dense)
}

// Each visits every row in dense order. fn must not insert into or remove
// from s.
func (s *Storage[T]) Each(fn func(EntityID, *T)) {
	for i := range s.dense {
		fn(s.ids[i], &s.dense[i])
	}
}

// Entities returns a copy of the ids currently stored, in dense order.
func (s *Storage[T]) Entities() []EntityID {
	out := make([]EntityID, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Storage[T]) column() *Storage[T] { return s }

// Reader is a read-only view over a Storage.
type Reader[T any] struct {
	s *Storage[T]
}

// Get returns a copy of the component for id.
func (r Reader[T]) Get(id EntityID) (T, bool) {
	p, ok := r.s.Get(id)
	if !ok {
		var zero T
		return zero, false
	}
	return *p, true
}

func (r Reader[T]) Has(id EntityID) bool { return r.s.Has(id) }
func (r Reader[T]) Len() int             { return r.s.Len() }

// Each visits every row by value.
func (r Reader[T]) Each(fn func(EntityID, T)) {
	for i := range r.s.dense {
		fn(r.s.ids[i], r.s.dense[i])
	}
}

func (r Reader[T]) column() *Storage[T] { return r.s }
