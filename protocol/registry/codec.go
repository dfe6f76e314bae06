package registry

import (
	"fmt"
	"reflect"

	"github.com/isitreallyalive/beacon/protocol"
)

// encoder and decoder are what every packet field type must implement, via
// either value or pointer receiver. protocol.VarInt, protocol.String,
// protocol.UnsignedShort and friends all satisfy it already.
type encoder interface {
	ToBytes() (protocol.ByteArray, error)
}

type decoder interface {
	FromBytes(protocol.ByteArray) (int, error)
}

// Marshal encodes v's exported fields, in declaration order, with no
// padding or framing between them. v must be a struct or a pointer to one.
// This is a deliberately small subset of what a tag-driven codec could do:
// no struct tags, no conditional fields, no slices — this protocol's
// packet set does not need them.
func Marshal(v any) (protocol.ByteArray, error) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil, fmt.Errorf("registry: cannot marshal nil pointer")
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("registry: cannot marshal %v, want struct", val.Kind())
	}

	var out protocol.ByteArray
	typ := val.Type()
	for i := range val.NumField() {
		field := val.Field(i)
		name := typ.Field(i).Name
		if !field.CanInterface() {
			continue
		}

		b, err := marshalField(field)
		if err != nil {
			return nil, fmt.Errorf("registry: field %s: %w", name, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

func marshalField(field reflect.Value) (protocol.ByteArray, error) {
	if e, ok := fieldEncoder(field); ok {
		return e.ToBytes()
	}
	return nil, fmt.Errorf("type %s does not implement ToBytes", field.Type())
}

func fieldEncoder(field reflect.Value) (encoder, bool) {
	if field.CanAddr() {
		if e, ok := field.Addr().Interface().(encoder); ok {
			return e, true
		}
	}
	e, ok := field.Interface().(encoder)
	return e, ok
}

// Unmarshal decodes data into v's exported fields in declaration order. v
// must be a non-nil pointer to a struct.
func Unmarshal(data protocol.ByteArray, v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return fmt.Errorf("registry: unmarshal requires a non-nil pointer")
	}
	elem := val.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("registry: cannot unmarshal into %v, want struct", elem.Kind())
	}

	offset := 0
	typ := elem.Type()
	for i := range elem.NumField() {
		field := elem.Field(i)
		name := typ.Field(i).Name
		if !field.CanSet() {
			continue
		}

		n, err := unmarshalField(field, data[offset:])
		if err != nil {
			return fmt.Errorf("registry: field %s at offset %d: %w", name, offset, err)
		}
		offset += n
	}
	return nil
}

func unmarshalField(field reflect.Value, data protocol.ByteArray) (int, error) {
	if !field.CanAddr() {
		return 0, fmt.Errorf("type %s is not addressable", field.Type())
	}
	d, ok := field.Addr().Interface().(decoder)
	if !ok {
		return 0, fmt.Errorf("type %s does not implement FromBytes", field.Type())
	}
	return d.FromBytes(data)
}
