package protocol

import "encoding/json"

// JSON wraps any value that serializes to JSON and writes it on the wire as
// a String: a VarInt byte length followed by the UTF-8 JSON text.
//
// Unlike a fixed text-component type, this is generic so it can carry any
// response payload shape, e.g. StatusResponsePayload.
type JSON[T any] struct {
	Value T
}

func (j JSON[T]) ToBytes() (ByteArray, error) {
	raw, err := json.Marshal(j.Value)
	if err != nil {
		return nil, wrap(KindJSON, err)
	}
	return String(raw).ToBytes()
}

func (j *JSON[T]) FromBytes(data ByteArray) (int, error) {
	var s String
	bytesRead, err := s.FromBytes(data)
	if err != nil {
		return 0, err
	}

	var value T
	if err := json.Unmarshal([]byte(s), &value); err != nil {
		return 0, wrap(KindJSON, err)
	}

	j.Value = value
	return bytesRead, nil
}
