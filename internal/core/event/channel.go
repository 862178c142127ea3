package event

import "sync"

// ReaderID identifies one registered read cursor on a Channel.
type ReaderID uint32

type cursor struct {
	pos  uint64 // sequence number of the next event to deliver
	lost uint64 // events evicted before this reader consumed them
}

// Channel is a bounded, multi-reader broadcast log. Every registered reader
// receives every event published after its registration exactly once, in
// publication order. Entries are kept until the slowest reader has drained
// them; when the ring is full the oldest entry is evicted and readers that
// had not consumed it count it as lost.
//
// Publish and Drain are safe for concurrent use.
type Channel[E any] struct {
	mu      sync.Mutex
	ring    []E
	head    uint64 // sequence of the oldest retained event
	tail    uint64 // sequence of the next published event
	readers map[ReaderID]*cursor
	nextID  ReaderID
	dropped uint64
}

// NewChannel returns a channel retaining at most capacity undelivered events.
func NewChannel[E any](capacity int) *Channel[E] {
	if capacity < 1 {
		capacity = 1
	}
	return &Channel[E]{
		ring:    make([]E, capacity),
		readers: make(map[ReaderID]*cursor, 4),
	}
}

// Publish appends ev to the log. It never waits on readers.
func (c *Channel[E]) Publish(ev E) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.readers) == 0 {
		// nobody can ever observe it
		c.tail++
		c.head = c.tail
		return
	}
	if c.tail-c.head == uint64(len(c.ring)) {
		var zero E
		c.ring[c.head%uint64(len(c.ring))] = zero
		c.head++
		c.dropped++
	}
	c.ring[c.tail%uint64(len(c.ring))] = ev
	c.tail++
}

// Register adds a reader positioned at the current write position: it only
// sees events published from now on.
func (c *Channel[E]) Register() ReaderID {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	c.readers[c.nextID] = &cursor{pos: c.tail}
	return c.nextID
}

// Unregister removes a reader and releases any entries only it was holding.
func (c *Channel[E]) Unregister(id ReaderID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.readers, id)
	c.compact()
}

// Drain returns every event published since id last drained, oldest first,
// and advances its cursor. Unknown readers get nil.
func (c *Channel[E]) Drain(id ReaderID) []E {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.readers[id]
	if !ok {
		return nil
	}
	if cur.pos < c.head {
		cur.lost += c.head - cur.pos
		cur.pos = c.head
	}
	n := c.tail - cur.pos
	if n == 0 {
		return nil
	}
	out := make([]E, 0, n)
	for seq := cur.pos; seq < c.tail; seq++ {
		out = append(out, c.ring[seq%uint64(len(c.ring))])
	}
	cur.pos = c.tail
	c.compact()
	return out
}

// Lost returns how many events id missed because they were evicted first.
// Events evicted since the reader's last drain are counted on its next
// drain.
func (c *Channel[E]) Lost(id ReaderID) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.readers[id]
	if !ok {
		return 0
	}
	return cur.lost
}

// Dropped returns the number of evictions since the channel was created.
func (c *Channel[E]) Dropped() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}

// Len returns the number of retained events.
func (c *Channel[E]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(c.tail - c.head)
}

// Cap returns the ring capacity.
func (c *Channel[E]) Cap() int { return len(c.ring) }

// Readers returns the number of registered readers.
func (c *Channel[E]) Readers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.readers)
}

// compact advances head to the slowest cursor. Caller holds mu.
func (c *Channel[E]) compact() {
	minPos := c.tail
	for _, cur := range c.readers {
		if cur.pos < minPos {
			minPos = cur.pos
		}
	}
	if minPos < c.head {
		minPos = c.head
	}
	var zero E
	for c.head < minPos {
		c.ring[c.head%uint64(len(c.ring))] = zero
		c.head++
	}
}
