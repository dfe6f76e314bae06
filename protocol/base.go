// Package protocol implements the Minecraft Java Edition wire codec: VarInt
// and fixed-width primitives, length-prefixed strings, JSON-wrapped values,
// the length-id-payload frame, and the per-connection protocol state
// machine.
//
// All data on the wire except VarInt (and VarLong, unused by this core) is
// big-endian.
package protocol

// ByteArray is a sequence of zero or more bytes. Its length is known from
// context; it carries no length prefix of its own.
type ByteArray []byte

func (b ByteArray) ToBytes() (ByteArray, error) {
	return b, nil
}

func (b *ByteArray) FromBytes(data ByteArray) (int, error) {
	if len(data) == 0 {
		*b = ByteArray{}
		return 0, nil
	}
	dst := make(ByteArray, len(data))
	copy(dst, data)
	*b = dst
	return len(data), nil
}
