package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rolling-stone/internal/config"
)

var (
	flagConfigFormat string
	flagConfigPreset bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the game would run with, after the search order
(--config, ~/.rollingstone/configs, ./configs, built-in defaults).

Examples:
  rollingstone config > ~/.rollingstone/configs/runner.yaml
  rollingstone config --format toml --with-preset --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigFormat, "format", "yaml", "Output format: yaml or toml")
	configCmd.Flags().BoolVar(&flagConfigPreset, "with-preset", false, "Apply --difficulty before printing")
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, preset, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagConfigPreset {
		config.ApplyPreset(&cfg, preset)
	}

	format := config.Format(flagConfigFormat)
	if format != config.FormatYAML && format != config.FormatTOML {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (yaml, toml)\n", flagConfigFormat)
		os.Exit(1)
	}

	out, err := config.Encode(cfg, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	//nolint:errcheck // Best-effort write
	os.Stdout.Write(out)
}
