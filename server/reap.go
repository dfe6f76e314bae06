package server

import (
	"github.com/isitreallyalive/beacon/conn"
	"github.com/isitreallyalive/beacon/world"
)

// reap destroys every entity whose connection has observed cancel. It
// closes nothing itself: the I/O task (if it has not already exited)
// watches the same cancel flag and winds down on its own.
func reap(w *world.World) {
	var dead []world.EntityID
	w.Each(func(id world.EntityID, c *conn.Connection) {
		if c.Cancelled() {
			dead = append(dead, id)
		}
	})
	for _, id := range dead {
		w.Despawn(id)
	}
}
