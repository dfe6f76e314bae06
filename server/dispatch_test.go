package server

import (
	"testing"

	"github.com/isitreallyalive/beacon/protocol"
	"github.com/isitreallyalive/beacon/protocol/packets"
	"github.com/isitreallyalive/beacon/protocol/registry"
)

func TestDrainBreaksAfterHandshake(t *testing.T) {
	s, c := newTestServer(t, true)

	handshakeBody, err := registry.Marshal(&packets.Handshake{
		ProtocolVersion: 774,
		ServerAddress:   "localhost",
		ServerPort:      25565,
		Intent:          protocol.IntentStatus,
	})
	if err != nil {
		t.Fatalf("Marshal(Handshake) error = %v", err)
	}
	statusBody, err := registry.Marshal(&packets.StatusRequest{})
	if err != nil {
		t.Fatalf("Marshal(StatusRequest) error = %v", err)
	}

	c.Inbound <- &protocol.RawPacket{ID: packets.HandshakeSpec.ID, Payload: handshakeBody}
	// StatusRequest's id (0) only resolves once the connection has moved to
	// Status; queued here to prove drain stops before reaching it.
	c.Inbound <- &protocol.RawPacket{ID: packets.StatusRequestSpec.ID, Payload: statusBody}

	s.drain(c)

	if c.State() != protocol.Status {
		t.Fatalf("State() = %v, want Status after the handshake dispatched", c.State())
	}
	if len(c.Inbound) != 1 {
		t.Fatalf("Inbound has %d packets left, want 1 (the undrained StatusRequest)", len(c.Inbound))
	}
}

func TestDrainCancelsOnDecodeFailure(t *testing.T) {
	s, c := newTestServer(t, true)
	c.SetState(protocol.Status)

	// A PingRequest body needs 8 bytes for its i64 payload; one byte is a
	// short read and must be fatal to the connection.
	c.Inbound <- &protocol.RawPacket{ID: packets.PingRequestSpec.ID, Payload: protocol.ByteArray{0x01}}

	s.drain(c)

	if !c.Cancelled() {
		t.Fatal("a decode failure should cancel the connection")
	}
}

func TestDrainSkipsUnknownPacket(t *testing.T) {
	s, c := newTestServer(t, true)
	c.SetState(protocol.Status)

	c.Inbound <- &protocol.RawPacket{ID: 99, Payload: nil}

	s.drain(c)

	if c.Cancelled() {
		t.Fatal("an unrecognized (state, id) pair should be skipped, not fatal")
	}
}

func TestReapDestroysCancelledConnections(t *testing.T) {
	s, c := newTestServer(t, true)
	c.Cancel()

	reap(s.world)

	if s.world.Len() != 0 {
		t.Fatalf("world.Len() = %d after reap, want 0", s.world.Len())
	}
}

func TestReapKeepsLiveConnections(t *testing.T) {
	s, _ := newTestServer(t, true)

	reap(s.world)

	if s.world.Len() != 1 {
		t.Fatalf("world.Len() = %d after reap, want 1 (connection not cancelled)", s.world.Len())
	}
}
