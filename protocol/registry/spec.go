// Package registry associates each concrete packet type with its
// (state, resource, direction) identity, resolved at init time against an
// embedded canonical id table, and provides a reflection-based codec that
// marshals/unmarshals a packet's exported fields in declaration order.
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/isitreallyalive/beacon/protocol"
)

// Direction is which side of a connection originates a packet.
type Direction int

const (
	// Serverbound packets are decoded; they travel client to server.
	Serverbound Direction = iota
	// Clientbound packets are encoded; they travel server to client.
	Clientbound
)

func (d Direction) String() string {
	if d == Clientbound {
		return "clientbound"
	}
	return "serverbound"
}

// PacketSpec is the metadata attached to a concrete packet type: its
// protocol id, the state it is valid in, and its direction.
type PacketSpec struct {
	Resource  string
	State     protocol.State
	Direction Direction
	ID        protocol.VarInt
}

// Entry is a resolved registration: a spec paired with the Go struct type
// it decodes/encodes into.
type Entry struct {
	Spec PacketSpec
	typ  reflect.Type
}

//go:embed ids.json
var idTableJSON []byte

type idEntry struct {
	ProtocolID int `json:"protocol_id"`
}

type idTable map[string]map[string]map[string]idEntry

var table idTable

func init() {
	if err := json.Unmarshal(idTableJSON, &table); err != nil {
		panic(fmt.Sprintf("registry: malformed embedded id table: %v", err))
	}
}

var (
	mu     sync.RWMutex
	byKey  = map[key]Entry{}
	byType = map[reflect.Type]Entry{}
)

type key struct {
	state protocol.State
	id    protocol.VarInt
}

func stateName(s protocol.State) string {
	return s.String()
}

func directionName(d Direction) string {
	return d.String()
}

// resolveID looks up the protocol id for (state, resource, direction) in
// the embedded table. It panics if the entry is missing: the registry must
// fail loudly at startup rather than silently assign a wrong id.
func resolveID(resource string, state protocol.State, direction Direction) protocol.VarInt {
	states, ok := table[stateName(state)]
	if !ok {
		panic(fmt.Sprintf("registry: no id table for state %q", stateName(state)))
	}
	dirs, ok := states[directionName(direction)]
	if !ok {
		panic(fmt.Sprintf("registry: no id table for state %q direction %q", stateName(state), directionName(direction)))
	}
	entry, ok := dirs["minecraft:"+resource]
	if !ok {
		panic(fmt.Sprintf("registry: no id table entry for minecraft:%s in state %q direction %q", resource, stateName(state), directionName(direction)))
	}
	return protocol.VarInt(entry.ProtocolID)
}

// Register associates sample's concrete type with (state, resource,
// direction), resolving its protocol id from the embedded table. sample may
// be a struct value or pointer; only its type is used. Intended to be
// called from package-level var initializers in the packets package, so a
// missing table entry panics during program init.
func Register(resource string, state protocol.State, direction Direction, sample any) PacketSpec {
	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	spec := PacketSpec{
		Resource:  resource,
		State:     state,
		Direction: direction,
		ID:        resolveID(resource, state, direction),
	}
	entry := Entry{Spec: spec, typ: t}

	mu.Lock()
	defer mu.Unlock()
	byKey[key{state: state, id: spec.ID}] = entry
	byType[t] = entry

	return spec
}

// Lookup resolves (state, id) to a registered Entry.
func Lookup(state protocol.State, id protocol.VarInt) (Entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := byKey[key{state: state, id: id}]
	return e, ok
}

// SpecOf returns the PacketSpec registered for v's concrete type.
func SpecOf(v any) (PacketSpec, bool) {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	mu.RLock()
	defer mu.RUnlock()
	e, ok := byType[t]
	return e.Spec, ok
}

// New allocates a zero-value pointer to e's registered struct type, ready
// to be filled in by Unmarshal.
func New(e Entry) any {
	return reflect.New(e.typ).Interface()
}
