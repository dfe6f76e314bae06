// Package conn implements the per-connection lifecycle: the Connection
// entity's components (state, bounded queues, cancel flag), the legacy
// Server List Ping probe, and the asynchronous I/O task that bridges a
// socket to those queues.
package conn

import (
	"io"
	"net"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/google/uuid"

	"github.com/isitreallyalive/beacon/crypto"
	"github.com/isitreallyalive/beacon/protocol"
)

// QueueCapacity is the bound on both the inbound and outbound packet
// queues of every connection.
const QueueCapacity = 1024

// PlayerIdentity is the profile a Login implementation would attach to a
// connection once authentication completes. No Login body sets it in this
// core; it exists as a concrete place for one to put it.
type PlayerIdentity struct {
	Name string
	UUID uuid.UUID
}

// Connection is one accepted, non-legacy TCP socket's entity in the world:
// its protocol state, its inbound/outbound queues, and its cancel flag.
type Connection struct {
	RemoteAddr net.Addr

	state atomic.Int32

	// Inbound holds frames decoded by the I/O task, awaiting dispatch by
	// the tick loop. Outbound holds frames handlers have produced,
	// awaiting encoding by the I/O task.
	Inbound  chan *protocol.RawPacket
	Outbound chan *protocol.RawPacket

	cancel *CancelToken

	// Identity is set by a future Login implementation; nil until then.
	identityMu sync.RWMutex
	identity   *PlayerIdentity

	limiter *rate.Limiter

	codecMu              sync.Mutex
	reader               FrameReader
	writer               FrameWriter
	rawReader            io.Reader
	rawWriter            io.Writer
	encryption           *crypto.Encryption
	compressionEnabled   bool
	compressionThreshold int
}

// New wraps an accepted socket in a Connection entity, defaulting to
// Handshake state and plain (uncompressed, unencrypted) framing. limit
// bounds the socket's inbound decode rate independent of queue capacity,
// so a client that floods bytes is throttled before it ever fills the
// inbound queue.
func New(socket net.Conn, limit rate.Limit, burst int) *Connection {
	c := &Connection{
		RemoteAddr: socket.RemoteAddr(),
		Inbound:    make(chan *protocol.RawPacket, QueueCapacity),
		Outbound:   make(chan *protocol.RawPacket, QueueCapacity),
		cancel:     NewCancelToken(),
		limiter:    rate.NewLimiter(limit, burst),
		rawReader:  socket,
		rawWriter:  socket,
	}
	c.state.Store(int32(protocol.Handshake))
	c.reader = &basicReader{r: c.rawReader}
	c.writer = &basicWriter{w: c.rawWriter}
	return c
}

// NewFromReader is New, except frames are decoded from reader instead of
// socket directly. The accept loop uses this after peeking a socket for
// the legacy ping dialect through a bufio.Reader: any bytes already
// buffered by that peek must stay visible to the frame decoder.
func NewFromReader(socket net.Conn, reader io.Reader, limit rate.Limit, burst int) *Connection {
	c := New(socket, limit, burst)
	c.rawReader = reader
	c.reader = &basicReader{r: c.rawReader}
	return c
}

// State returns the connection's current protocol state.
func (c *Connection) State() protocol.State {
	return protocol.State(c.state.Load())
}

// SetState moves the connection forward. Per the state machine's
// invariant, it never moves backward; callers (the Handshake handler)
// only ever call it once, right after decoding Handshake.Intent.
func (c *Connection) SetState(s protocol.State) {
	c.state.Store(int32(s))
}

// Identity returns the connection's player identity, if Login has set one.
func (c *Connection) Identity() (PlayerIdentity, bool) {
	c.identityMu.RLock()
	defer c.identityMu.RUnlock()
	if c.identity == nil {
		return PlayerIdentity{}, false
	}
	return *c.identity, true
}

// SetIdentity records the player identity a Login implementation resolved.
func (c *Connection) SetIdentity(id PlayerIdentity) {
	c.identityMu.Lock()
	defer c.identityMu.Unlock()
	c.identity = &id
}

// Cancel marks the connection for teardown. Idempotent; safe to call from
// the I/O task, a handler, or the process-wide shutdown signal.
func (c *Connection) Cancel() {
	c.cancel.Cancel()
}

// Cancelled reports whether Cancel has been called.
func (c *Connection) Cancelled() bool {
	return c.cancel.Cancelled()
}

// Done returns a channel closed once Cancel has been called.
func (c *Connection) Done() <-chan struct{} {
	return c.cancel.Done()
}

// Limiter exposes the connection's inbound token bucket to the I/O task.
func (c *Connection) Limiter() *rate.Limiter {
	return c.limiter
}

// ReadFrame and WriteFrame delegate to whatever FrameReader/FrameWriter is
// currently installed, so EnableCompression/EnableEncryption can swap them
// out without the I/O task needing to know.
func (c *Connection) ReadFrame() (*protocol.RawPacket, error) {
	c.codecMu.Lock()
	r := c.reader
	c.codecMu.Unlock()
	return r.ReadFrame()
}

func (c *Connection) WriteFrame(p *protocol.RawPacket) error {
	c.codecMu.Lock()
	w := c.writer
	c.codecMu.Unlock()
	return w.WriteFrame(p)
}

// EnableCompression wraps the connection's framing in zlib compression for
// payloads at or above threshold bytes, per Login-state negotiation. It is
// an extension point: nothing in this core calls it, since no Login body
// is implemented, but a future one has a real seam to call into. Safe to
// call before or after EnableEncryption; either order rebuilds the framing
// on top of whatever byte-level layer (plain or encrypted) is current.
func (c *Connection) EnableCompression(threshold int) {
	c.codecMu.Lock()
	defer c.codecMu.Unlock()
	c.compressionEnabled = true
	c.compressionThreshold = threshold
	c.rebuildFraming()
}

// EnableEncryption wraps the connection's framing in AES/CFB8 encryption
// keyed by secret, as negotiated by a Login implementation's
// EncryptionResponse. Another extension point, unused by this core. Safe
// to call before or after EnableCompression: the framing layer (plain or
// compressed) already installed is rebuilt on top of the new encrypted
// byte stream rather than discarded.
func (c *Connection) EnableEncryption(secret []byte) error {
	enc := crypto.NewEncryption()
	enc.SetSharedSecret(secret)
	if err := enc.EnableEncryption(); err != nil {
		return err
	}

	c.codecMu.Lock()
	defer c.codecMu.Unlock()
	c.encryption = enc

	encReader, encWriter := wrapEncryption(c.rawReader, c.rawWriter, enc)
	c.rawReader, c.rawWriter = encReader, encWriter
	c.rebuildFraming()
	return nil
}

// rebuildFraming installs the FrameReader/FrameWriter matching the
// connection's current compression setting on top of the current
// rawReader/rawWriter. Callers must hold codecMu.
func (c *Connection) rebuildFraming() {
	if c.compressionEnabled {
		c.reader = &compressedReader{r: c.rawReader, threshold: c.compressionThreshold}
		c.writer = &compressedWriter{w: c.rawWriter, threshold: c.compressionThreshold}
		return
	}
	c.reader = &basicReader{r: c.rawReader}
	c.writer = &basicWriter{w: c.rawWriter}
}
