package server

import (
	"github.com/sirupsen/logrus"

	"github.com/isitreallyalive/beacon/conn"
	"github.com/isitreallyalive/beacon/protocol"
	"github.com/isitreallyalive/beacon/protocol/registry"
	"github.com/isitreallyalive/beacon/world"
)

// drainBatch is N from the tick loop's listen system: the number of
// non-blocking inbound receives attempted per connection per tick.
const drainBatch = 256

// listen drains each connection's inbound queue, decodes what it finds
// against the connection's current state, and dispatches to a handler. It
// stops draining a connection early once a Handshake has been dispatched,
// so no later packet in the same batch can be decoded under a state that
// was only just adopted.
func (s *Server) listen() {
	s.world.Each(func(id world.EntityID, c *conn.Connection) {
		s.drain(c)
	})
}

func (s *Server) drain(c *conn.Connection) {
	for i := 0; i < drainBatch; i++ {
		var raw *protocol.RawPacket
		select {
		case p, ok := <-c.Inbound:
			if !ok {
				return
			}
			raw = p
		default:
			return
		}

		handshake, err := s.dispatchOne(c, raw)
		if err != nil {
			logrus.WithError(err).WithField("remote", c.RemoteAddr).Warn("packet decode failed, cancelling connection")
			c.Cancel()
			return
		}
		if handshake {
			return
		}
	}
}

// dispatchOne resolves raw.ID against the connection's current state,
// decodes it, and dispatches it. An (state, id) pair with no registered
// spec is logged and skipped, not treated as an error.
func (s *Server) dispatchOne(c *conn.Connection, raw *protocol.RawPacket) (handshake bool, err error) {
	entry, ok := registry.Lookup(c.State(), raw.ID)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"state": c.State(),
			"id":    int32(raw.ID),
		}).Warn("unknown packet, skipping")
		return false, nil
	}

	packet := registry.New(entry)
	if err := registry.Unmarshal(raw.Payload, packet); err != nil {
		return false, err
	}

	return s.dispatch(c, packet)
}
