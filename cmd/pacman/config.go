package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the game configuration",
	Long: `Inspect the game configuration.

The config is looked up in this order:
  --config <path>
  ~/.pacman/configs/pacman.yaml
  ./configs/pacman.yaml
  built-in defaults

Files only need the keys they change; everything else keeps its default.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a game would start with, after the
difficulty preset is applied. The output is a valid config file.

Examples:
  pacman config show
  pacman config show --difficulty hard
  pacman config show > ~/.pacman/configs/pacman.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Print a JSON schema describing pacman.yaml, for editor completion
and validation.

Examples:
  pacman config schema > pacman.schema.json`,
	Args: cobra.NoArgs,
	Run:  runConfigSchema,
}

func init() {
	gameFlags(configShowCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadPacman(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyPacmanPreset(&cfg, preset)

	out, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}

func runConfigSchema(_ *cobra.Command, _ []string) {
	out, err := config.SchemaJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
