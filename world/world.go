// Package world is the entity-component store the tick loop operates on: a
// straightforward arena plus an index map, not a full component framework,
// since every entity in this core is a single kind (a connection) carrying
// a fixed set of components.
package world

import (
	"sync"

	"github.com/isitreallyalive/beacon/conn"
	"github.com/isitreallyalive/beacon/protocol"
)

// EntityID identifies one spawned connection entity. It is never reused
// within a process lifetime.
type EntityID uint64

// World owns every live connection entity. Entities are spawned from the
// per-socket goroutine that accepts a modern client, and despawned by the
// tick task's reap system; a mutex guards every access. Once spawned, the
// I/O task reaches its entity only through the connection's bounded queues
// and cancel flag.
type World struct {
	mu       sync.Mutex
	next     EntityID
	entities map[EntityID]*conn.Connection
}

// New returns an empty world.
func New() *World {
	return &World{entities: make(map[EntityID]*conn.Connection)}
}

// Spawn registers c as a new entity and returns its id.
func (w *World) Spawn(c *conn.Connection) EntityID {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.next++
	id := w.next
	w.entities[id] = c
	return id
}

// Despawn removes an entity. It does not itself close the socket; the
// goroutine running the connection's I/O task closes it once that task
// exits. The queue channels are not closed by either.
func (w *World) Despawn(id EntityID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.entities, id)
}

// Get returns the connection entity for id, if it is still alive.
func (w *World) Get(id EntityID) (*conn.Connection, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	c, ok := w.entities[id]
	return c, ok
}

// Each calls fn for every live entity. fn must not call back into w.
func (w *World) Each(fn func(EntityID, *conn.Connection)) {
	w.mu.Lock()
	snapshot := make(map[EntityID]*conn.Connection, len(w.entities))
	for id, c := range w.entities {
		snapshot[id] = c
	}
	w.mu.Unlock()

	for id, c := range snapshot {
		fn(id, c)
	}
}

// Len reports the number of live entities, used as the StatusResponse
// "online" count.
func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entities)
}

// CountByState reports how many live entities are currently in state s.
func (w *World) CountByState(s protocol.State) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, c := range w.entities {
		if c.State() == s {
			n++
		}
	}
	return n
}
