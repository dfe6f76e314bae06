// Package server ties the protocol codec, packet registry, and connection
// lifecycle into a running process: a socket acceptor, a per-connection
// I/O task, and a fixed-cadence tick loop that drains inbound queues,
// dispatches handlers, and reaps cancelled connections.
package server

import (
	"bufio"
	"context"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/isitreallyalive/beacon/conn"
	"github.com/isitreallyalive/beacon/internal/config"
	"github.com/isitreallyalive/beacon/internal/version"
	"github.com/isitreallyalive/beacon/world"
)

// TickRate is the nominal cadence of the world schedule: 20 Hz.
const TickRate = 20

// inboundRateLimit bounds how fast one connection's I/O task may decode
// frames off the wire, independent of (and ahead of) the inbound queue's
// own capacity.
const inboundRateLimit = rate.Limit(200)
const inboundBurst = 64

// Server owns the listener, the world, and the config manager across the
// lifetime of one process.
type Server struct {
	config  *config.Manager
	world   *world.World
	metrics *Metrics

	addrMu sync.Mutex
	addr   net.Addr
}

// New builds a Server around an already-watching config manager.
func New(cfgManager *config.Manager) *Server {
	return &Server{
		config:  cfgManager,
		world:   world.New(),
		metrics: newMetrics(),
	}
}

// Addr reports the address Run actually bound to, once listening has
// started. Mainly useful for tests that bind to port 0.
func (s *Server) Addr() net.Addr {
	s.addrMu.Lock()
	defer s.addrMu.Unlock()
	return s.addr
}

// Run binds the configured address and blocks, accepting connections and
// driving the tick loop, until ctx is cancelled. Interrupt handling is the
// caller's responsibility (see cmd/beacon), which cancels ctx on signal.
func (s *Server) Run(ctx context.Context) error {
	cfg := s.config.Current()
	listener, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return err
	}
	defer listener.Close()

	s.addrMu.Lock()
	s.addr = listener.Addr()
	s.addrMu.Unlock()

	logrus.WithField("addr", listener.Addr()).Info("listening")

	acceptCtx, stopAccept := context.WithCancel(ctx)
	defer stopAccept()
	go s.accept(acceptCtx, listener)

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	s.tick(ctx)
	return nil
}

// accept runs the acceptor task: one Accept loop, probing every new socket
// for the legacy ping dialect before handing modern clients to the world.
func (s *Server) accept(ctx context.Context, listener net.Listener) {
	for {
		socket, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logrus.WithError(err).Warn("accept failed")
			continue
		}
		go s.handleSocket(ctx, socket)
	}
}

func (s *Server) handleSocket(ctx context.Context, socket net.Conn) {
	r := bufio.NewReader(socket)
	isLegacy, v2, err := conn.PeekLegacyPing(r)
	if err != nil {
		socket.Close()
		return
	}

	if isLegacy {
		s.handleLegacyPing(socket, v2)
		return
	}

	c := conn.NewFromReader(socket, r, inboundRateLimit, inboundBurst)
	defer socket.Close()
	id := s.world.Spawn(c)
	logrus.WithFields(logrus.Fields{"remote": c.RemoteAddr, "entity": id}).Debug("connection spawned")
	conn.Serve(ctx, c)
}

// handleLegacyPing answers or silently refuses a pre-modern Server List
// Ping probe. Per §4.7, a disabled status feature closes without writing
// rather than answering with a kick packet.
func (s *Server) handleLegacyPing(socket net.Conn, v2 bool) {
	defer socket.Close()

	cfg := s.config.Current()
	if !cfg.ServerConfig.Status {
		return
	}

	response := conn.BuildLegacyResponse(
		v2,
		int(version.Protocol),
		version.Latest.String(),
		cfg.ServerConfig.MOTD,
		s.world.Len(),
		int(cfg.ServerConfig.MaxPlayers),
	)
	if _, err := socket.Write(response); err != nil {
		logrus.WithError(err).Debug("legacy ping response failed")
	}
}

// tick drives the world schedule at TickRate until ctx is cancelled. A
// missed deadline is non-fatal: the next tick runs immediately after,
// without trying to make up for lost time.
func (s *Server) tick(ctx context.Context) {
	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			s.listen()
			reap(s.world)
			s.metrics.observe(s.world)
			s.metrics.tickDuration.Observe(time.Since(start).Seconds())
		}
	}
}
