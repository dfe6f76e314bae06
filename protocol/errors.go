package protocol

import "errors"

// Kind discriminates the error conditions the wire codec can report, matching
// the error kinds enumerated at the core boundary.
type Kind int

const (
	// KindIO covers any socket or buffer read/write failure.
	KindIO Kind = iota
	// KindVarIntTooBig means a VarInt would need a sixth continuation byte.
	KindVarIntTooBig
	// KindInvalidProtocolState means a Handshake intent was outside {1,2,3}.
	KindInvalidProtocolState
	// KindJSON means a value failed to marshal to or unmarshal from JSON.
	KindJSON
	// KindUnknownPacket means (state, id) did not resolve to a registered spec.
	KindUnknownPacket
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindVarIntTooBig:
		return "varint too big"
	case KindInvalidProtocolState:
		return "invalid protocol state"
	case KindJSON:
		return "json"
	case KindUnknownPacket:
		return "unknown packet"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind so callers can discriminate
// fatal-to-the-connection conditions from ones to log and skip.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}

// wrap constructs an *Error of the given kind, or nil if cause is nil.
func wrap(kind Kind, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Cause: cause}
}

// ErrVarIntTooBig is returned by VarInt decode when a sixth continuation
// byte would be required.
var ErrVarIntTooBig = &Error{Kind: KindVarIntTooBig, Cause: errors.New("varint is more than 5 bytes")}

// errShortRead is the underlying cause wrapped into a KindIO error whenever
// a decode runs out of bytes before a value is complete.
var errShortRead = errors.New("short read")

// errInvalidUTF8 is the underlying cause wrapped into a KindIO error when a
// decoded string is not valid UTF-8.
var errInvalidUTF8 = errors.New("invalid utf-8")

// InvalidProtocolStateError reports a Handshake intent outside {1,2,3}.
type InvalidProtocolStateError struct {
	Value int32
}

func (e *InvalidProtocolStateError) Error() string {
	return "invalid protocol state: " + itoa(int64(e.Value))
}

func itoa(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
