package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ufo-race/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default arena configuration",
	Long: `Print the embedded default arena.yaml.

Save it to ~/.ufo-race/configs/arena.yaml or ./configs/arena.yaml and
edit the values you want to change; missing keys keep their defaults.

Examples:
  ufo config > ~/.ufo-race/configs/arena.yaml`,
	Run: func(_ *cobra.Command, _ []string) {
		os.Stdout.Write(config.DefaultYAML())
	},
}
