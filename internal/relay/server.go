// Package relay implements the message relay between UFO Race clients.
//
// The relay does not parse what it forwards: every frame received from one
// connection is written verbatim to all other connections.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// DefaultPort is the port the relay binds when none is configured.
const DefaultPort = 8765

const shutdownTimeout = 5 * time.Second

// Options configures a relay server.
type Options struct {
	Logger *log.Logger
}

// Server is a websocket fan-out relay.
type Server struct {
	logger   *log.Logger
	upgrader websocket.Upgrader
	peers    *registry
}

// New creates a relay server.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "relay",
		})
	}
	return &Server{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		peers: newRegistry(),
	}
}

// Handler returns the HTTP handler: /healthz reports the peer count and
// every other path upgrades to a websocket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/", s.handleWS)
	return mux
}

// Count returns the number of connected peers.
func (s *Server) Count() int {
	return s.peers.count()
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("relay listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("relay: serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down relay", "peers", s.Count())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	for _, p := range s.peers.all() {
		s.drop(p)
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("relay: shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"peers":  s.Count(),
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	p := &peerConn{id: uuid.NewString(), ws: ws}
	s.peers.register(p)
	s.logger.Info("peer connected", "id", p.id, "remote", r.RemoteAddr, "peers", s.Count())

	defer func() {
		if s.peers.unregister(p.id) {
			_ = p.ws.Close()
		}
		s.logger.Info("peer disconnected", "id", p.id, "peers", s.Count())
	}()

	for {
		mt, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("peer read failed", "id", p.id, "error", err)
			}
			return
		}
		s.broadcast(p.id, mt, data)
	}
}

// broadcast forwards one frame to every peer except the sender, concurrently.
// A peer whose write fails is removed; the others are unaffected.
func (s *Server) broadcast(from string, mt int, data []byte) {
	targets := s.peers.others(from)
	if len(targets) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, t := range targets {
		wg.Add(1)
		go func(t *peerConn) {
			defer wg.Done()
			if err := t.send(mt, data); err != nil {
				s.logger.Warn("dropping peer", "id", t.id, "error", err)
				s.drop(t)
			}
		}(t)
	}
	wg.Wait()
}

// drop removes a peer and closes its connection, which ends its read loop.
func (s *Server) drop(p *peerConn) {
	if s.peers.unregister(p.id) {
		_ = p.ws.Close()
	}
}
