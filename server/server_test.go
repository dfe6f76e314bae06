package server_test

import (
	"bufio"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/isitreallyalive/beacon/internal/config"
	"github.com/isitreallyalive/beacon/server"
)

func startTestServer(t *testing.T, statusEnabled bool) *server.Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.ServerConfig.IP = "127.0.0.1"
	cfg.ServerConfig.Port = 0
	cfg.ServerConfig.Status = statusEnabled
	cfg.ServerConfig.MOTD = "integration test"
	cfg.ServerConfig.MaxPlayers = 10

	s := server.New(config.Static(cfg))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go s.Run(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for s.Addr() == nil {
		if time.Now().After(deadline) {
			t.Fatal("server did not start listening in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return s
}

// TestLegacyPingV1E2E sends the pre-1.4 legacy ping probe and checks the
// server answers with a kick packet, then closes the socket.
func TestLegacyPingV1E2E(t *testing.T) {
	s := startTestServer(t, true)

	c, err := net.Dial("tcp", s.Addr().String())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer c.Close()

	if _, err := c.Write([]byte{0xFE}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	c.SetReadDeadline(time.Now().Add(2 * time.Second))
	r := bufio.NewReader(c)

	marker, err := r.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte() error = %v", err)
	}
	if marker != 0xFF {
		t.Fatalf("response marker = %#x, want 0xFF", marker)
	}
	if _, err := io.ReadAll(r); err != nil {
		t.Fatalf("ReadAll() error = %v, want the server to close the socket", err)
	}
}

// TestLegacyPingDisabledClosesSilently checks that a disabled status
// feature closes the legacy probe's socket without writing anything.
func TestLegacyPingDisabledClosesSilently(t *testing.T) {
	s := startTestServer(t, false)

	c, err := net.Dial("tcp", s.Addr().String())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer c.Close()

	if _, err := c.Write([]byte{0xFE, 0x01}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	c.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1)
	if n, err := c.Read(buf); n != 0 || err == nil {
		t.Fatalf("Read() = (%d, %v), want (0, EOF) for a silently closed socket", n, err)
	}
}

func TestModernStatusE2E(t *testing.T) {
	s := startTestServer(t, true)

	c, err := net.Dial("tcp", s.Addr().String())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer c.Close()
	c.SetReadDeadline(time.Now().Add(2 * time.Second))

	writeFrame(t, c, 0, encodeHandshake(774, "localhost", 25565, 1))
	writeFrame(t, c, 0, nil) // StatusRequest: empty body

	id, payload := readFrame(t, c)
	if id != 0 {
		t.Fatalf("response id = %d, want 0 (StatusResponse)", id)
	}
	if len(payload) == 0 {
		t.Fatal("StatusResponse payload should not be empty")
	}
}

// --- minimal frame helpers, independent of the package under test ---

func encodeVarInt(n int32) []byte {
	u := uint32(n)
	var out []byte
	for {
		b := byte(u & 0x7F)
		u >>= 7
		if u != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if u == 0 {
			return out
		}
	}
}

func encodeString(s string) []byte {
	out := encodeVarInt(int32(len(s)))
	return append(out, []byte(s)...)
}

func encodeHandshake(protocolVersion int32, addr string, port uint16, intent int32) []byte {
	var out []byte
	out = append(out, encodeVarInt(protocolVersion)...)
	out = append(out, encodeString(addr)...)
	out = append(out, byte(port>>8), byte(port))
	out = append(out, encodeVarInt(intent)...)
	return out
}

func writeFrame(t *testing.T, c net.Conn, id int32, payload []byte) {
	t.Helper()
	idBytes := encodeVarInt(id)
	body := append(append([]byte{}, idBytes...), payload...)
	frame := append(encodeVarInt(int32(len(body))), body...)
	if _, err := c.Write(frame); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
}

func readVarInt(t *testing.T, r *bufio.Reader) int32 {
	t.Helper()
	var result int32
	for shift := uint(0); ; shift += 7 {
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte() error = %v", err)
		}
		result |= int32(b&0x7F) << shift
		if b&0x80 == 0 {
			return result
		}
	}
}

func readFrame(t *testing.T, c net.Conn) (int32, []byte) {
	t.Helper()
	r := bufio.NewReader(c)
	length := readVarInt(t, r)
	id := readVarInt(t, r)
	idLen := len(encodeVarInt(id))
	payload := make([]byte, int(length)-idLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		t.Fatalf("read payload: %v", err)
	}
	return id, payload
}
