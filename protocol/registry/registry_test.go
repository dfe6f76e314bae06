package registry_test

import (
	"bytes"
	"testing"

	"github.com/isitreallyalive/beacon/protocol"
	"github.com/isitreallyalive/beacon/protocol/registry"
)

type greeting struct {
	Name protocol.String
	Age  protocol.Long
}

func TestRegisterAndLookup(t *testing.T) {
	spec := registry.Register("status_request", protocol.Status, registry.Serverbound, greeting{})

	if spec.ID != 0 {
		t.Fatalf("Register() id = %d, want 0", spec.ID)
	}

	entry, ok := registry.Lookup(protocol.Status, 0)
	if !ok {
		t.Fatal("Lookup() did not find registered entry")
	}
	if entry.Spec.Resource != "status_request" {
		t.Fatalf("Lookup() resource = %q, want status_request", entry.Spec.Resource)
	}
}

func TestRegisterUnknownResourcePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Register() with unknown resource did not panic")
		}
	}()
	registry.Register("not_a_real_resource", protocol.Status, registry.Serverbound, greeting{})
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	g := greeting{Name: "dig", Age: 42}

	data, err := registry.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded greeting
	if err := registry.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded != g {
		t.Errorf("Unmarshal() = %+v, want %+v", decoded, g)
	}
}

func TestMarshalFieldOrder(t *testing.T) {
	g := greeting{Name: "x", Age: 7}
	data, err := registry.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	nameBytes, _ := protocol.String("x").ToBytes()
	if !bytes.HasPrefix(data, nameBytes) {
		t.Error("Marshal() did not encode fields in declaration order (Name before Age)")
	}
}
