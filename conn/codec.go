package conn

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/isitreallyalive/beacon/crypto"
	"github.com/isitreallyalive/beacon/protocol"
)

// FrameReader reads one RawPacket frame at a time. It is the seam a
// compression or encryption layer wraps: each implementation may itself
// wrap another FrameReader's underlying io.Reader.
type FrameReader interface {
	ReadFrame() (*protocol.RawPacket, error)
}

// FrameWriter writes one RawPacket frame at a time.
type FrameWriter interface {
	WriteFrame(p *protocol.RawPacket) error
}

// basicReader/basicWriter are the default, uncompressed and unencrypted
// implementations used until (and unless) a Login body calls
// EnableCompression or EnableEncryption.
type basicReader struct{ r io.Reader }

func (b *basicReader) ReadFrame() (*protocol.RawPacket, error) {
	return protocol.DecodeFrame(b.r)
}

type basicWriter struct{ w io.Writer }

func (b *basicWriter) WriteFrame(p *protocol.RawPacket) error {
	return protocol.EncodeFrame(b.w, p)
}

// cryptoReader decrypts bytes read from the underlying connection before
// handing them to the frame decoder, using a CFB8 stream cipher.
type cryptoReader struct {
	r   io.Reader
	enc *crypto.Encryption
}

func (c *cryptoReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		copy(p[:n], c.enc.Decrypt(p[:n]))
	}
	return n, err
}

// cryptoWriter encrypts bytes before they reach the underlying connection.
type cryptoWriter struct {
	w   io.Writer
	enc *crypto.Encryption
}

func (c *cryptoWriter) Write(p []byte) (int, error) {
	return c.w.Write(c.enc.Encrypt(p))
}

// wrapEncryption wraps the underlying byte stream in a cryptoReader and
// cryptoWriter, so any FrameReader/FrameWriter built on top of it sees
// bytes that have been run through CFB8.
func wrapEncryption(r io.Reader, w io.Writer, enc *crypto.Encryption) (io.Reader, io.Writer) {
	return &cryptoReader{r: r, enc: enc}, &cryptoWriter{w: w, enc: enc}
}

// compressedReader/compressedWriter implement zlib-compressed framing for
// when the Login state negotiates a compression threshold. Per-packet
// zlib streams are used (one Reader/Writer per frame) since Minecraft's
// compressed packet format has no shared compression context across
// packets; the frame payload is the zlib stream, prefixed by the
// uncompressed length as a VarInt.
type compressedReader struct {
	r         io.Reader
	threshold int
}

func (c *compressedReader) ReadFrame() (*protocol.RawPacket, error) {
	length, err := protocol.DecodeVarInt(c.r)
	if err != nil {
		return nil, err
	}

	id, err := protocol.DecodeVarInt(c.r)
	if err != nil {
		return nil, err
	}

	// dataLength == 0 means this particular packet was sent uncompressed
	// despite compression being enabled.
	if id == 0 {
		payload := make(protocol.ByteArray, int(length)-1)
		if _, err := io.ReadFull(c.r, payload); err != nil {
			return nil, err
		}
		var rawID protocol.VarInt
		n, err := rawID.FromBytes(payload)
		if err != nil {
			return nil, err
		}
		return &protocol.RawPacket{ID: rawID, Payload: payload[n:]}, nil
	}

	zr, err := zlib.NewReader(io.LimitReader(c.r, int64(length)-int64(id.Len())))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}

	var packetID protocol.VarInt
	n, err := packetID.FromBytes(raw)
	if err != nil {
		return nil, err
	}
	return &protocol.RawPacket{ID: packetID, Payload: raw[n:]}, nil
}

type compressedWriter struct {
	w         io.Writer
	threshold int
}

func (c *compressedWriter) WriteFrame(p *protocol.RawPacket) error {
	idBytes, err := p.ID.ToBytes()
	if err != nil {
		return err
	}
	raw := append(protocol.ByteArray{}, idBytes...)
	raw = append(raw, p.Payload...)

	if len(raw) < c.threshold {
		// below threshold: send uncompressed, dataLength = 0
		zero := protocol.VarInt(0)
		zeroBytes, _ := zero.ToBytes()
		length := protocol.VarInt(len(zeroBytes) + len(raw))
		if err := length.Encode(c.w); err != nil {
			return err
		}
		if _, err := c.w.Write(zeroBytes); err != nil {
			return err
		}
		_, err := c.w.Write(raw)
		return err
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	dataLength := protocol.VarInt(len(raw))
	dataLengthBytes, _ := dataLength.ToBytes()
	length := protocol.VarInt(len(dataLengthBytes) + buf.Len())
	if err := length.Encode(c.w); err != nil {
		return err
	}
	if _, err := c.w.Write(dataLengthBytes); err != nil {
		return err
	}
	_, err = c.w.Write(buf.Bytes())
	return err
}
