package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ufo-race/internal/arena"
	"github.com/vovakirdan/ufo-race/internal/peer"
	"github.com/vovakirdan/ufo-race/internal/platform/tui"
	"github.com/vovakirdan/ufo-race/internal/storage"
)

var (
	flagRole     int
	flagRelayURL string
	flagOffline  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Join a race as Player 1 (top universe) or Player 2 (bottom universe).

Controls:
  W/Up, S/Down     - Move
  A/Left, D/Right  - Fire left / right
  P                - Pause
  R                - Reset
  ?                - Toggle help
  Q/Ctrl+C         - Quit

The relay URL comes from --relay, then UFO_RELAY_URL, then the config.
If the relay cannot be reached the race runs offline.

Examples:
  ufo play --role 1
  ufo play --role 2 --relay ws://192.168.1.10:8765
  ufo play --role 1 --difficulty hard --seed 42`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagRole, "role", 1, "Player role: 1 (top) or 2 (bottom)")
	playCmd.Flags().StringVar(&flagRelayURL, "relay", "", "Relay websocket URL")
	playCmd.Flags().BoolVar(&flagOffline, "offline", false, "Do not connect to a relay")
}

func runPlay(_ *cobra.Command, _ []string) {
	role := arena.Role(flagRole)
	if !role.Valid() {
		fmt.Fprintf(os.Stderr, "Error: role must be 1 or 2, got %d\n", flagRole)
		os.Exit(1)
	}

	cfg, err := loadArenaConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger, closeLog := clientLogger(role)
	defer closeLog()

	session, err := arena.NewSession(cfg, role, seed())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	relayURL := flagRelayURL
	if relayURL == "" {
		relayURL = os.Getenv("UFO_RELAY_URL")
	}
	if relayURL == "" {
		relayURL = cfg.Network.RelayURL
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var link *peer.Link
	if !flagOffline && relayURL != "" {
		dialCtx, dialCancel := context.WithTimeout(ctx, 3*time.Second)
		link, err = peer.Dial(dialCtx, relayURL, role, peer.Options{
			EmitHz: cfg.Network.EmitHz,
			Logger: logger,
		})
		dialCancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: relay unreachable, playing offline: %v\n", err)
			link = nil
		} else {
			link.Start(ctx)
			defer link.Close()
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match log: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	runErr := tui.Run(tui.Options{
		Session: session,
		Link:    link,
		Store:   store,
		Logger:  logger,
		Width:   width,
		Height:  height,
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

// clientLogger writes to ~/.ufo-race/client.log so the alt screen stays clean.
func clientLogger(role arena.Role) (*log.Logger, func()) {
	path, err := dataPath("client.log")
	if err != nil {
		return log.New(os.Stderr), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open client log: %v\n", err)
		return log.New(os.Stderr), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          fmt.Sprintf("ufo %s", role),
	})
	return logger, func() { f.Close() }
}
