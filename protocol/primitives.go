package protocol

import "encoding/binary"

// UnsignedShort is an integer between 0 and 65535, big-endian.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Type:Unsigned_Short
type UnsignedShort uint16

func (us UnsignedShort) ToBytes() (ByteArray, error) {
	data := make(ByteArray, 2)
	binary.BigEndian.PutUint16(data, uint16(us))
	return data, nil
}

func (us *UnsignedShort) FromBytes(data ByteArray) (int, error) {
	if len(data) < 2 {
		return 0, wrap(KindIO, errShortRead)
	}
	*us = UnsignedShort(binary.BigEndian.Uint16(data))
	return 2, nil
}

// Long is an integer between -9223372036854775808 and 9223372036854775807,
// big-endian.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Type:Long
type Long int64

func (l Long) ToBytes() (ByteArray, error) {
	data := make(ByteArray, 8)
	binary.BigEndian.PutUint64(data, uint64(l))
	return data, nil
}

func (l *Long) FromBytes(data ByteArray) (int, error) {
	if len(data) < 8 {
		return 0, wrap(KindIO, errShortRead)
	}
	*l = Long(int64(binary.BigEndian.Uint64(data)))
	return 8, nil
}

// UInt128 is a 128-bit unsigned integer, big-endian. Minecraft uses it to
// carry UUIDs on the wire (most significant bits first).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Type:UUID
type UInt128 [16]byte

func (u UInt128) ToBytes() (ByteArray, error) {
	data := make(ByteArray, 16)
	copy(data, u[:])
	return data, nil
}

func (u *UInt128) FromBytes(data ByteArray) (int, error) {
	if len(data) < 16 {
		return 0, wrap(KindIO, errShortRead)
	}
	copy(u[:], data[:16])
	return 16, nil
}
