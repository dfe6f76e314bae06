package protocol

import "io"

// RawPacket is the wire unit `VarInt length ‖ VarInt id ‖ payload`, held
// with id already decoded and payload left opaque until the registry
// resolves (state, id) to a concrete type.
type RawPacket struct {
	ID      VarInt
	Payload ByteArray
}

// DecodeFrame reads one RawPacket from r: the length prefix, the id, and
// exactly length-size(id) payload bytes.
func DecodeFrame(r io.Reader) (*RawPacket, error) {
	length, err := DecodeVarInt(r)
	if err != nil {
		return nil, err
	}

	id, err := DecodeVarInt(r)
	if err != nil {
		return nil, err
	}

	payloadLen := int(length) - id.Len()
	if payloadLen < 0 {
		return nil, wrap(KindIO, errShortRead)
	}

	payload := make(ByteArray, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, wrap(KindIO, err)
	}

	return &RawPacket{ID: id, Payload: payload}, nil
}

// EncodeFrame writes p to w as a complete frame. The id is encoded first so
// the length prefix, which covers both id and payload, is known before
// anything is written; the length, id and payload then go out as three
// writes.
func EncodeFrame(w io.Writer, p *RawPacket) error {
	idBytes, err := p.ID.ToBytes()
	if err != nil {
		return err
	}

	length := VarInt(len(idBytes) + len(p.Payload))
	if err := length.Encode(w); err != nil {
		return err
	}

	if _, err := w.Write(idBytes); err != nil {
		return wrap(KindIO, err)
	}
	if _, err := w.Write(p.Payload); err != nil {
		return wrap(KindIO, err)
	}
	return nil
}
