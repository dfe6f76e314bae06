// Package packets defines the concrete packet structs for the handshake
// and status states: the only packet bodies this core decodes and encodes.
// Each type's fields are declared in wire order; the registry codec
// marshals/unmarshals them by reflecting over that order.
package packets

import (
	"github.com/isitreallyalive/beacon/protocol"
	"github.com/isitreallyalive/beacon/protocol/registry"
)

// Handshake is the first packet of every modern connection. Its Intent
// field drives the connection's first (and only) state transition.
type Handshake struct {
	ProtocolVersion protocol.VarInt
	ServerAddress   protocol.String
	ServerPort      protocol.UnsignedShort
	Intent          protocol.Intent
}

// HandshakeSpec is the resolved registry entry for Handshake.
var HandshakeSpec = registry.Register("intention", protocol.Handshake, registry.Serverbound, Handshake{})
