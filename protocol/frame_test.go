package protocol_test

import (
	"bytes"
	"testing"

	"github.com/isitreallyalive/beacon/protocol"
)

func TestFrameRoundtrip(t *testing.T) {
	tests := []struct {
		name    string
		id      protocol.VarInt
		payload []byte
	}{
		{"empty payload", 0x00, nil},
		{"status request", 0x01, []byte{}},
		{"handshake-ish", 0x00, []byte{0xC6, 0x06, 0x09, 'l', 'o', 'c', 'a', 'l', 'h', 'o', 's', 't', 0x63, 0xDD, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := &protocol.RawPacket{ID: tt.id, Payload: tt.payload}
			if err := protocol.EncodeFrame(&buf, p); err != nil {
				t.Fatalf("EncodeFrame() error = %v", err)
			}

			wantLength := tt.id.Len() + len(tt.payload)
			gotLength, err := protocol.DecodeVarInt(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("DecodeVarInt() error = %v", err)
			}
			if int(gotLength) != wantLength {
				t.Errorf("length prefix = %d, want %d", gotLength, wantLength)
			}

			decoded, err := protocol.DecodeFrame(&buf)
			if err != nil {
				t.Fatalf("DecodeFrame() error = %v", err)
			}
			if decoded.ID != tt.id {
				t.Errorf("DecodeFrame() id = %d, want %d", decoded.ID, tt.id)
			}
			if !bytes.Equal(decoded.Payload, tt.payload) {
				t.Errorf("DecodeFrame() payload = % x, want % x", decoded.Payload, tt.payload)
			}
		})
	}
}

func TestDecodeFrameTruncated(t *testing.T) {
	var buf bytes.Buffer
	length, _ := protocol.VarInt(10).ToBytes()
	buf.Write(length)
	buf.Write([]byte{0x00})

	_, err := protocol.DecodeFrame(&buf)
	if !protocol.Is(err, protocol.KindIO) {
		t.Fatalf("DecodeFrame() error = %v, want KindIO", err)
	}
}
