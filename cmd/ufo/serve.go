package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ufo-race/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeRelay  string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host UFO Race clients over SSH",
	Long: `Start an SSH server where each connection plays one side of a race.

The SSH user name picks the role: p1, top or 1 play the top universe,
anyone else the bottom one. Every session dials the relay on its own.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.ufo-race/host_key

Examples:
  ufo serve
  ufo serve --ssh :2222 --relay ws://localhost:8765

Players connect with:
  ssh p1@localhost -p 23234
  ssh p2@localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeRelay, "relay", "", "Relay websocket URL (default: $UFO_RELAY_URL or config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	arenaCfg, err := loadArenaConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	relayURL := flagServeRelay
	if relayURL == "" {
		relayURL = os.Getenv("UFO_RELAY_URL")
	}
	if relayURL == "" {
		relayURL = arenaCfg.Network.RelayURL
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		RelayURL:    relayURL,
		Arena:       arenaCfg,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting UFO Race SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh p1@localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
