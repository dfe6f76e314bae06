package packets

import (
	"github.com/isitreallyalive/beacon/protocol"
	"github.com/isitreallyalive/beacon/protocol/registry"
)

// StatusRequest carries no fields; its arrival alone asks the server to
// build a StatusResponse.
type StatusRequest struct{}

var StatusRequestSpec = registry.Register("status_request", protocol.Status, registry.Serverbound, StatusRequest{})

// PingRequest echoes an opaque payload back via PongResponse, used by
// clients to measure round-trip latency.
type PingRequest struct {
	Payload protocol.Long
}

var PingRequestSpec = registry.Register("ping_request", protocol.Status, registry.Serverbound, PingRequest{})

// StatusResponse carries the server list ping payload as a JSON string.
type StatusResponse struct {
	Response protocol.JSON[StatusResponsePayload]
}

var StatusResponseSpec = registry.Register("status_response", protocol.Status, registry.Clientbound, StatusResponse{})

// PongResponse answers a PingRequest with the same payload it received.
type PongResponse struct {
	Payload protocol.Long
}

var PongResponseSpec = registry.Register("pong_response", protocol.Status, registry.Clientbound, PongResponse{})

// StatusResponsePayload is the JSON body of a StatusResponse.
type StatusResponsePayload struct {
	Version            StatusVersion     `json:"version"`
	Players            StatusPlayers     `json:"players"`
	Description        StatusDescription `json:"description"`
	Favicon            string            `json:"favicon,omitempty"`
	EnforcesSecureChat bool              `json:"enforcesSecureChat"`
}

type StatusVersion struct {
	Name     string `json:"name"`
	Protocol int    `json:"protocol"`
}

type StatusPlayers struct {
	Max    int            `json:"max"`
	Online int            `json:"online"`
	Sample []SamplePlayer `json:"sample"`
}

// SamplePlayer is one entry of the status response's player sample list.
// Always empty in this core (no player roster is tracked), kept as a
// concrete shape so a future Login/Play implementation can populate it
// without changing the wire format.
type SamplePlayer struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type StatusDescription struct {
	Text string `json:"text"`
}
