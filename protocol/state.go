package protocol

// State is the per-connection protocol state. It scopes which packet ids
// are legal at any moment.
type State int

const (
	// Handshake is the initial state of every connection.
	Handshake State = iota
	Status
	Login
	// Transfer is semantically equivalent to Login for dispatch purposes,
	// but records that the client arrived via a server-transfer redirect.
	Transfer
	Configuration
	Play
)

func (s State) String() string {
	switch s {
	case Handshake:
		return "handshake"
	case Status:
		return "status"
	case Login:
		return "login"
	case Transfer:
		return "transfer"
	case Configuration:
		return "configuration"
	case Play:
		return "play"
	default:
		return "unknown"
	}
}

// Intent is the Handshake packet's declared next state, restricted to the
// three values the protocol assigns meaning to.
type Intent VarInt

const (
	IntentStatus   Intent = 1
	IntentLogin    Intent = 2
	IntentTransfer Intent = 3
)

// State resolves an Intent to the ProtocolState it drives the connection
// into, failing with InvalidProtocolState for anything outside {1,2,3}.
func (i Intent) State() (State, error) {
	switch i {
	case IntentStatus:
		return Status, nil
	case IntentLogin:
		return Login, nil
	case IntentTransfer:
		return Transfer, nil
	default:
		return Handshake, wrap(KindInvalidProtocolState, &InvalidProtocolStateError{Value: int32(i)})
	}
}

func (i Intent) ToBytes() (ByteArray, error) {
	return VarInt(i).ToBytes()
}

func (i *Intent) FromBytes(data ByteArray) (int, error) {
	var v VarInt
	n, err := v.FromBytes(data)
	if err != nil {
		return 0, err
	}
	if _, err := Intent(v).State(); err != nil {
		return 0, err
	}
	*i = Intent(v)
	return n, nil
}
