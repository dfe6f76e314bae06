package conn

import (
	"bufio"
	"encoding/binary"
	"strconv"
	"unicode/utf16"
)

// LegacyPeekSize is how many bytes the legacy-ping probe looks at without
// consuming them. 0xFE is not a VarInt length; the probe must run before
// any VarInt parser sees the stream.
const LegacyPeekSize = 2

// PeekLegacyPing inspects the first two bytes of r without consuming them.
// isLegacy reports whether byte 0 is the legacy ping marker 0xFE; when it
// is, v2 reports which of the two bit-incompatible dialects the client
// used (true for 1.4-1.6, false for pre-1.4).
func PeekLegacyPing(r *bufio.Reader) (isLegacy bool, v2 bool, err error) {
	peeked, err := r.Peek(LegacyPeekSize)
	if err != nil {
		// A connection that sends fewer than two bytes before EOF is a
		// malformed modern client at worst; let the normal frame decode
		// surface the error.
		return false, false, nil
	}
	if peeked[0] != 0xFE {
		return false, false, nil
	}
	return true, peeked[1] == 0x01, nil
}

// BuildLegacyResponse encodes the kick-packet payload for one of the two
// legacy Server List Ping dialects: 0xFF ‖ u16(code-unit count) ‖
// UTF-16BE(payload).
func BuildLegacyResponse(v2 bool, protocolVersion int, latestVersion, motd string, online, max int) []byte {
	var text string
	if v2 {
		text = "§1\x00" +
			strconv.Itoa(protocolVersion) + "\x00" +
			latestVersion + "\x00" +
			motd + "\x00" +
			strconv.Itoa(online) + "\x00" +
			strconv.Itoa(max)
	} else {
		text = motd + "§" + strconv.Itoa(online) + "§" + strconv.Itoa(max)
	}

	units := utf16.Encode([]rune(text))
	out := make([]byte, 3+len(units)*2)
	out[0] = 0xFF
	binary.BigEndian.PutUint16(out[1:3], uint16(len(units)))
	for i, u := range units {
		binary.BigEndian.PutUint16(out[3+i*2:], u)
	}
	return out
}
