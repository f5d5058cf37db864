package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ufo-race/internal/relay"
)

var flagPort int

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Start the websocket relay",
	Long: `Start the relay both players connect to.

Every message from one connection is forwarded unchanged to all other
connections. Any path upgrades to a websocket; GET /healthz reports the
number of connected peers.

The port comes from --port, then the PORT environment variable (a .env
file in the working directory is read too), then 8765.

Examples:
  ufo relay
  ufo relay --port 9000
  PORT=9000 ufo relay`,
	Run: runRelay,
}

func init() {
	relayCmd.Flags().IntVar(&flagPort, "port", 0, "Port to listen on (default: $PORT or 8765)")
}

// relayPort resolves the listen port from the flag, the environment and the default.
func relayPort() (int, error) {
	if flagPort > 0 {
		return flagPort, nil
	}
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			return 0, fmt.Errorf("invalid PORT %q", v)
		}
		return p, nil
	}
	return relay.DefaultPort, nil
}

func runRelay(_ *cobra.Command, _ []string) {
	port, err := relayPort()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := relay.New(relay.Options{})
	if err := srv.ListenAndServe(ctx, fmt.Sprintf(":%d", port)); err != nil {
		fmt.Fprintf(os.Stderr, "Relay error: %v\n", err)
		os.Exit(1)
	}
}
