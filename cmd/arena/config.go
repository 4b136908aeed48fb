package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zone-arena/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the active arena configuration",
	Long: `Print the arena configuration as YAML.

Search order: --config -> ~/.arena/configs/arena.yaml -> ./configs/arena.yaml -> built-in.
Copy the output to one of those paths and edit the keys you want to change.

Examples:
  arena config
  arena config --defaults > ~/.arena/configs/arena.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, source, err := config.LoadArena(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "# source: %s\n", source)
	os.Stdout.Write(data)
}
