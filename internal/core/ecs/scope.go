package ecs

// Scope is the view of the World handed to one system for one run. Every
// storage and resource fetched through it is checked against the system's
// declared access; reaching outside it panics with *AccessError.
type Scope struct {
	world  *World
	access ResolvedAccess
	system string
	tick   uint64
}

func NewScope(w *World, system string, access ResolvedAccess, tick uint64) *Scope {
	return &Scope{world: w, access: access, system: system, tick: tick}
}

// System returns the name of the system the scope was issued to.
func (s *Scope) System() string { return s.system }

// Tick returns the dispatch tick the scope belongs to.
func (s *Scope) Tick() uint64 { return s.tick }

// Alive reports whether id names a live entity.
func (s *Scope) Alive(id EntityID) bool { return s.world.Alive(id) }

// CreateEntity allocates an entity. Requires Structural.
func (s *Scope) CreateEntity() EntityID {
	s.requireStructural("create entity")
	return s.world.CreateEntity()
}

// Destroy removes id and all of its components immediately. Requires Structural.
func (s *Scope) Destroy(id EntityID) {
	s.requireStructural("destroy entity")
	s.world.Destroy(id)
}

// MarkForDestruction queues id for the end-of-tick cleanup. Requires Defers
// or Structural.
func (s *Scope) MarkForDestruction(id EntityID) {
	if !s.access.defers && !s.access.structural {
		panic(&AccessError{System: s.system, Type: "destroy queue", Mode: "defer"})
	}
	s.world.MarkForDestruction(id)
}

// FlushDestroyQueue destroys every queued entity. Requires Structural.
func (s *Scope) FlushDestroyQueue() int {
	s.requireStructural("flush destroy queue")
	return s.world.FlushDestroyQueue()
}

func (s *Scope) requireStructural(what string) {
	if !s.access.structural {
		panic(&AccessError{System: s.system, Type: what, Mode: "structural"})
	}
}

func fetch[T any](s *Scope, kind slotKind, m Mode) any {
	t := typeOf[T]()
	id, sl, ok := s.world.registry.lookup(t)
	if !ok || sl.kind != kind || !s.access.Allows(id, m) {
		panic(&AccessError{System: s.system, Type: kind.String() + " " + t.String(), Mode: m.String()})
	}
	return sl.value
}

// WriteStorage returns the writable storage for T.
func WriteStorage[T any](s *Scope) *Storage[T] {
	return fetch[T](s, kindStorage, ModeWrite).(*Storage[T])
}

// ReadStorage returns a read-only view of the storage for T.
func ReadStorage[T any](s *Scope) Reader[T] {
	return Reader[T]{s: fetch[T](s, kindStorage, ModeRead).(*Storage[T])}
}

// WriteResource returns the resource registered for T.
func WriteResource[T any](s *Scope) T {
	return fetch[T](s, kindResource, ModeWrite).(T)
}

// ReadResource returns the resource registered for T. The caller must only
// read through it; pointer resources cannot be made immutable by the type
// system.
func ReadResource[T any](s *Scope) T {
	return fetch[T](s, kindResource, ModeRead).(T)
}

// ReadResourceValue returns a copy of the value behind the *T resource, so
// a read grant cannot mutate it.
func ReadResourceValue[T any](s *Scope) T {
	return *fetch[*T](s, kindResource, ModeRead).(*T)
}
