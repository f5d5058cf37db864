// ufo is a two-player terminal racing duel played across a websocket relay.
//
// Usage:
//
//	ufo relay                - Start the relay both players connect to
//	ufo play --role 1|2      - Play in this terminal
//	ufo serve                - Host clients over SSH
//	ufo results              - Show the local match log
//	ufo config               - Print the default arena configuration
//
// Global flags:
//
//	--fps <rate>          - Override the simulation tick rate
//	--seed <value>        - Set RNG seed for reproducible hazards
//	--db <path>           - Set database path (default: ~/.ufo-race/results.db)
//	--config <path>       - Path to a custom arena YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ufo-race/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ufo",
	Short: "UFO Race - a two-player space duel in your terminal",
	Long: `UFO Race splits the screen into two universes, one per player.
Dodge meteors, collect constellation stars, dive through black holes
into your opponent's universe and shoot them down.

Both players connect to the same relay:
  ufo relay
  ufo play --role 1
  ufo play --role 2

Available commands:
  relay    - Start the websocket relay
  play     - Play in this terminal
  serve    - Host clients over SSH
  results  - View the local match log
  config   - Print the default arena configuration`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ufo-race/results.db", "Path to match log database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(relayCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadArenaConfig applies the global flags on top of the loaded configuration.
func loadArenaConfig() (config.ArenaConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, config.ParsePreset(flagDifficulty))
	if flagFPS > 0 {
		cfg.Field.TickRate = flagFPS
	}
	return cfg, cfg.Validate()
}

// seed returns the --seed flag, or a time-based seed when unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// dataPath returns a path under ~/.ufo-race, creating the directory.
func dataPath(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".ufo-race")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return filepath.Join(dir, name), nil
}
