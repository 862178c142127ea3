package ecs

import (
	"fmt"
	"sync"
)

// World is the top-level ECS container. It owns the entity pool, the component
// registry, the singleton resources and a deferred destruction queue flushed
// by CleanupSystem each tick.
type World struct {
	pool     *EntityPool
	registry *Registry

	destroyMu    sync.Mutex
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Destroy removes id from the pool and all of its components from every
// storage. Destroying a dead or stale id is a no-op.
func (w *World) Destroy(id EntityID) {
	if !w.pool.Alive(id) {
		return
	}
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
// Safe to call from systems running concurrently.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyMu.Lock()
	w.destroyQueue = append(w.destroyQueue, id)
	w.destroyMu.Unlock()
}

// Pending returns the number of entities waiting in the destroy queue.
func (w *World) Pending() int {
	w.destroyMu.Lock()
	defer w.destroyMu.Unlock()
	return len(w.destroyQueue)
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Called by CleanupSystem at the end of each tick. Returns how many entities
// were actually destroyed; duplicates and stale ids are skipped.
func (w *World) FlushDestroyQueue() int {
	w.destroyMu.Lock()
	queue := w.destroyQueue
	w.destroyQueue = make([]EntityID, 0, cap(queue))
	w.destroyMu.Unlock()

	n := 0
	for _, id := range queue {
		if w.pool.Alive(id) {
			w.Destroy(id)
			n++
		}
	}
	return n
}

// Register adds a storage for component type T and returns it. Registering
// the same component twice returns the existing storage.
func Register[T any](w *World) *Storage[T] {
	t := typeOf[T]()
	if _, s, ok := w.registry.lookup(t); ok {
		if s.kind != kindStorage {
			panic(fmt.Sprintf("ecs: %s already registered as %s", t, s.kind))
		}
		return s.value.(*Storage[T])
	}
	store := NewStorage[T]()
	store.alive = w.pool.Alive
	if _, err := w.registry.add(kindStorage, t, store); err != nil {
		panic(err)
	}
	return store
}

// StorageOf returns the storage registered for T.
func StorageOf[T any](w *World) (*Storage[T], bool) {
	_, s, ok := w.registry.lookup(typeOf[T]())
	if !ok || s.kind != kindStorage {
		return nil, false
	}
	return s.value.(*Storage[T]), true
}

// Insert is shorthand for looking up T's storage and inserting into it.
// It reports false when T is not registered or id is dead.
func Insert[T any](w *World, id EntityID, c T) bool {
	store, ok := StorageOf[T](w)
	if !ok {
		return false
	}
	return store.Insert(id, c)
}

// AddResource registers a singleton resource keyed by its static type T.
func AddResource[T any](w *World, res T) error {
	_, err := w.registry.add(kindResource, typeOf[T](), res)
	return err
}

// ResourceOf returns the resource registered for T.
func ResourceOf[T any](w *World) (T, bool) {
	_, s, ok := w.registry.lookup(typeOf[T]())
	if !ok || s.kind != kindResource {
		var zero T
		return zero, false
	}
	return s.value.(T), true
}

// MustResource returns the resource registered for T and panics if absent.
func MustResource[T any](w *World) T {
	res, ok := ResourceOf[T](w)
	if !ok {
		panic(fmt.Sprintf("ecs: resource %s not registered", typeOf[T]()))
	}
	return res
}
