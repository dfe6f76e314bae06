package server

import (
	"github.com/isitreallyalive/beacon/conn"
	"github.com/isitreallyalive/beacon/internal/version"
	"github.com/isitreallyalive/beacon/protocol"
	"github.com/isitreallyalive/beacon/protocol/packets"
	"github.com/isitreallyalive/beacon/protocol/registry"
)

// dispatch routes a decoded packet to its handler. It reports whether the
// packet was a Handshake, so the listen system can enforce the
// process-to-completion-then-break rule, and any error a handler returns
// is fatal to the connection.
func (s *Server) dispatch(c *conn.Connection, packet any) (handshake bool, err error) {
	switch p := packet.(type) {
	case *packets.Handshake:
		return true, s.handleHandshake(c, p)
	case *packets.StatusRequest:
		return false, s.handleStatusRequest(c, p)
	case *packets.PingRequest:
		return false, s.handlePingRequest(c, p)
	default:
		return false, nil
	}
}

// handleHandshake resolves the declared intent and moves the connection
// into the state it names. An intent outside {1,2,3} fails decoding the
// Intent field itself (see protocol.Intent.State), so by the time this
// runs p.Intent is already known-valid; State is re-derived here since
// Intent carries no cached result.
func (s *Server) handleHandshake(c *conn.Connection, p *packets.Handshake) error {
	state, err := p.Intent.State()
	if err != nil {
		return err
	}
	c.SetState(state)
	return nil
}

// handleStatusRequest answers the Server List Ping with the current
// player count, MOTD, and (if configured) favicon. If status is disabled,
// the connection is cancelled without a response.
func (s *Server) handleStatusRequest(c *conn.Connection, p *packets.StatusRequest) error {
	cfg := s.config.Current()
	if !cfg.ServerConfig.Status {
		c.Cancel()
		return nil
	}

	payload := packets.StatusResponsePayload{
		Version: packets.StatusVersion{
			Name:     version.Latest.String(),
			Protocol: int(version.Protocol),
		},
		Players: packets.StatusPlayers{
			Max:    int(cfg.ServerConfig.MaxPlayers),
			Online: s.world.Len(),
			Sample: []packets.SamplePlayer{},
		},
		Description:        packets.StatusDescription{Text: cfg.ServerConfig.MOTD},
		Favicon:            cfg.Favicon,
		EnforcesSecureChat: false,
	}

	return s.send(c, packets.StatusResponseSpec, &packets.StatusResponse{
		Response: protocol.JSON[packets.StatusResponsePayload]{Value: payload},
	})
}

// handlePingRequest echoes the ping payload back, unless status is
// disabled, in which case the connection is cancelled instead.
func (s *Server) handlePingRequest(c *conn.Connection, p *packets.PingRequest) error {
	if !s.config.Current().ServerConfig.Status {
		c.Cancel()
		return nil
	}
	return s.send(c, packets.PongResponseSpec, &packets.PongResponse{Payload: p.Payload})
}

// send marshals v and enqueues it on c's outbound queue under the given
// packet id. A full queue blocks the tick; at 1024 packets of headroom
// per connection this is acceptable.
func (s *Server) send(c *conn.Connection, spec registry.PacketSpec, v any) error {
	payload, err := registry.Marshal(v)
	if err != nil {
		return err
	}
	c.Outbound <- &protocol.RawPacket{ID: spec.ID, Payload: payload}
	return nil
}
