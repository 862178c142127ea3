package ecs

import "fmt"

// EntityID packs a slot index (low 32 bits) and that slot's generation (high
// 32 bits). A slot's generation moves on every destroy, so an old ID never
// matches whatever reuses the slot. Generation 0 is never issued and the
// zero EntityID is always dead.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

func (id EntityID) String() string {
	return fmt.Sprintf("%d#%d", id.Index(), id.Generation())
}

// EntityPool hands out entity IDs, recycling destroyed slots LIFO.
type EntityPool struct {
	gens []uint32 // current generation per slot
	free []uint32 // destroyed slots ready for reuse
	live int
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		gens: make([]uint32, 0, 1024),
		free: make([]uint32, 0, 256),
	}
}

func (p *EntityPool) Create() EntityID {
	p.live++
	if n := len(p.free); n > 0 {
		slot := p.free[n-1]
		p.free = p.free[:n-1]
		return NewEntityID(slot, p.gens[slot])
	}
	p.gens = append(p.gens, 1)
	slot := uint32(len(p.gens) - 1)
	return NewEntityID(slot, 1)
}

func (p *EntityPool) Alive(id EntityID) bool {
	slot := id.Index()
	return int(slot) < len(p.gens) && p.gens[slot] == id.Generation()
}

// Destroy retires id. It reports false when id was already dead or stale.
func (p *EntityPool) Destroy(id EntityID) bool {
	if !p.Alive(id) {
		return false
	}
	slot := id.Index()
	if p.gens[slot]++; p.gens[slot] == 0 {
		p.gens[slot] = 1
	}
	p.free = append(p.free, slot)
	p.live--
	return true
}

// Live returns the number of live entities.
func (p *EntityPool) Live() int { return p.live }
