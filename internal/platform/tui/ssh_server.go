package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/ufo-race/internal/arena"
	"github.com/vovakirdan/ufo-race/internal/config"
	"github.com/vovakirdan/ufo-race/internal/peer"
	"github.com/vovakirdan/ufo-race/internal/storage"
)

const dialTimeout = 3 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.ufo-race/host_key.
	HostKeyPath string

	// DBPath is the path to the match log.
	DBPath string

	// RelayURL is the relay every session dials. Empty plays offline.
	RelayURL string

	// Arena is the configuration each session runs with.
	Arena config.ArenaConfig

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	arenaCfg := config.DefaultArenaConfig()
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.ufo-race/results.db",
		RelayURL:    arenaCfg.Network.RelayURL,
		Arena:       arenaCfg,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves UFO Race clients over SSH. Each SSH session is one player.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ufo-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open match log", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".ufo-race", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// RoleForUser picks the player role from the SSH user name:
// "p1", "top" and "1" play the top universe, anything else the bottom one.
func RoleForUser(user string) arena.Role {
	switch strings.ToLower(user) {
	case "p1", "top", "1", "player1":
		return arena.RoleTop
	}
	return arena.RoleBottom
}

// teaHandler creates a client model for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	role := RoleForUser(sess.User())
	logger := s.logger.WithPrefix("ufo-ssh " + role.String())

	session, err := arena.NewSession(s.config.Arena, role, time.Now().UnixNano())
	if err != nil {
		logger.Error("cannot create session", "error", err)
		return nil, nil
	}

	var link *peer.Link
	if s.config.RelayURL != "" {
		ctx, cancel := context.WithTimeout(sess.Context(), dialTimeout)
		link, err = peer.Dial(ctx, s.config.RelayURL, role, peer.Options{
			EmitHz: s.config.Arena.Network.EmitHz,
			Logger: logger,
		})
		cancel()
		if err != nil {
			logger.Warn("relay unreachable, playing offline", "url", s.config.RelayURL, "error", err)
			link = nil
		} else {
			// The link stops with the SSH session.
			link.Start(sess.Context())
		}
	}

	model := NewModel(Options{
		Session: session,
		Link:    link,
		Store:   s.store,
		Logger:  logger,
		Width:   pty.Window.Width,
		Height:  pty.Window.Height,
	})
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"role", RoleForUser(sess.User()).String(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "relay", s.config.RelayURL)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
