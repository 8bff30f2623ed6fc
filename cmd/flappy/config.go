package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration flappy would run with, as YAML.

The file is looked up in this order:
  1. --config <path>
  2. ~/.flappy/config.yaml
  3. ./configs/flappy.yaml
  4. built-in defaults

Global flags (--fps, --seed, --log-level, --log-file) are applied on top.

Examples:
  flappy config
  flappy config --config ./my-flappy.yaml
  flappy config > ~/.flappy/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Path != "" {
		fmt.Fprintf(out, "# loaded from %s\n", cfg.Path)
	} else {
		fmt.Fprintln(out, "# built-in defaults")
	}
	_, err = out.Write(data)
	return err
}
