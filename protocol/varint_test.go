package protocol_test

import (
	"bytes"
	"testing"

	"github.com/isitreallyalive/beacon/protocol"
)

func TestVarInt(t *testing.T) {
	tests := []struct {
		name string
		val  protocol.VarInt
		want []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one", 1, []byte{0x01}},
		{"127", 127, []byte{0x7F}},
		{"128", 128, []byte{0x80, 0x01}},
		{"255", 255, []byte{0xFF, 0x01}},
		{"25565", 25565, []byte{0xDD, 0xC7, 0x01}},
		{"2097151", 2097151, []byte{0xFF, 0xFF, 0x7F}},
		{"max", 2147483647, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x07}},
		{"minus one", -1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
		{"min", -2147483648, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.val.ToBytes()
			if err != nil {
				t.Fatalf("ToBytes() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("ToBytes() = % x, want % x", got, tt.want)
			}
			if tt.val.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", tt.val.Len(), len(tt.want))
			}

			var decoded protocol.VarInt
			n, err := decoded.FromBytes(got)
			if err != nil {
				t.Fatalf("FromBytes() error = %v", err)
			}
			if n != len(got) {
				t.Errorf("FromBytes() consumed %d bytes, want %d", n, len(got))
			}
			if decoded != tt.val {
				t.Errorf("FromBytes() = %d, want %d", decoded, tt.val)
			}

			stream, err := protocol.DecodeVarInt(bytes.NewReader(got))
			if err != nil {
				t.Fatalf("DecodeVarInt() error = %v", err)
			}
			if stream != tt.val {
				t.Errorf("DecodeVarInt() = %d, want %d", stream, tt.val)
			}
		})
	}
}

func TestVarIntTooBig(t *testing.T) {
	data := protocol.ByteArray{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	var v protocol.VarInt
	_, err := v.FromBytes(data)
	if !protocol.Is(err, protocol.KindVarIntTooBig) {
		t.Fatalf("FromBytes() error = %v, want KindVarIntTooBig", err)
	}

	_, err = protocol.DecodeVarInt(bytes.NewReader(data))
	if !protocol.Is(err, protocol.KindVarIntTooBig) {
		t.Fatalf("DecodeVarInt() error = %v, want KindVarIntTooBig", err)
	}
}

func TestVarIntShortRead(t *testing.T) {
	data := protocol.ByteArray{0x80, 0x80}
	var v protocol.VarInt
	_, err := v.FromBytes(data)
	if !protocol.Is(err, protocol.KindIO) {
		t.Fatalf("FromBytes() error = %v, want KindIO", err)
	}
}

func TestVarIntSizeBound(t *testing.T) {
	samples := []protocol.VarInt{0, 1, -1, 127, 128, 25565, 2147483647, -2147483648}
	for _, v := range samples {
		if l := v.Len(); l < 1 || l > 5 {
			t.Errorf("Len(%d) = %d, out of [1,5]", v, l)
		}
	}
}
