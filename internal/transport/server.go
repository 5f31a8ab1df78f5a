package transport

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/danmuck/netstring/internal/netstring"
	"github.com/danmuck/netstring/internal/observability"
)

// HandlerFunc receives every item decoded from a connection, in order.
type HandlerFunc func(remote string, item string)

// ServerConfig defines per-connection read behavior.
type ServerConfig struct {
	ReadChunk   int
	ReadTimeout time.Duration
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		ReadChunk:   netstring.DefaultReadChunk,
		ReadTimeout: 5 * time.Minute,
	}
}

type Server struct {
	cfg     ServerConfig
	codec   *netstring.Codec
	handler HandlerFunc
	logger  zerolog.Logger

	active atomic.Int64
	mu     sync.Mutex
	closed bool
	conns  map[net.Conn]struct{}
	wg     sync.WaitGroup
}

func NewServer(cfg ServerConfig, codec *netstring.Codec, handler HandlerFunc, logger zerolog.Logger) *Server {
	if handler == nil {
		handler = func(string, string) {}
	}
	return &Server{
		cfg:     cfg,
		codec:   codec,
		handler: handler,
		logger:  logger.With().Str("component", "transport.server").Logger(),
		conns:   make(map[net.Conn]struct{}),
	}
}

// Serve accepts connections on ln until ctx is done. It closes ln and all
// open connections on return and waits for their handlers.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.wg.Wait()
	defer ln.Close()
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("listening")

	go func() {
		<-ctx.Done()
		s.closeAllConns()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.closeAllConns()
			return err
		}
		s.trackConn(conn)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

// Active returns the number of open connections.
func (s *Server) Active() int64 {
	return s.active.Load()
}

func (s *Server) trackConn(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		_ = conn.Close()
		return
	}
	s.conns[conn] = struct{}{}
}

func (s *Server) untrackConn(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

func (s *Server) closeAllConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for conn := range s.conns {
		_ = conn.Close()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	defer s.untrackConn(conn)
	remote := conn.RemoteAddr().String()
	log := s.logger.With().Str("remote", remote).Logger()

	log.Info().Int64("active_clients", s.active.Add(1)).Msg("client connected")
	defer func() {
		log.Info().Int64("active_clients", s.active.Add(-1)).Msg("client disconnected")
	}()

	rd := netstring.NewReader(&deadlineReader{conn: conn, timeout: s.cfg.ReadTimeout}, s.codec, s.cfg.ReadChunk)
	for {
		item, err := rd.ReadItem()
		if err != nil {
			reason := closeReason(err)
			observability.RecordConnClosed(reason)
			switch reason {
			case "eof":
			case "io", "timeout":
				log.Debug().Err(err).Str("reason", reason).Msg("read ended")
			default:
				log.Warn().Err(err).Int("buffered", rd.Buffered()).Msg("protocol violation, dropping connection")
			}
			return
		}
		s.handler(remote, item)
	}
}

func closeReason(err error) string {
	switch {
	case errors.Is(err, io.EOF):
		return "eof"
	case netstring.IsFatal(err):
		return netstring.Kind(err)
	case errors.Is(err, os.ErrDeadlineExceeded):
		return "timeout"
	default:
		return "io"
	}
}

// deadlineReader refreshes the read deadline before every read.
type deadlineReader struct {
	conn    net.Conn
	timeout time.Duration
}

func (r *deadlineReader) Read(p []byte) (int, error) {
	if r.timeout > 0 {
		_ = r.conn.SetReadDeadline(time.Now().Add(r.timeout))
	}
	return r.conn.Read(p)
}
