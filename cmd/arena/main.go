// arena is a real-time top-down arena survival game for the terminal, SSH and
// the browser.
//
// Usage:
//
//	arena play               - Play in the terminal
//	arena serve              - Start SSH server for remote play
//	arena web                - Start the websocket server for browsers
//	arena scores [level]     - Show the best runs
//	arena classes            - Show the playable classes
//	arena config             - Print the active arena configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.arena/runs.db)
//	--config <path> - Use a custom arena YAML
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
	"github.com/vovakirdan/zone-arena/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Zone Arena - survive the shrinking zone",
	Long: `Zone Arena is a real-time top-down survival shooter. Pick a class,
fight off waves of enemies and stay inside the shrinking safe zone.

Available commands:
  play     - Play in the terminal
  serve    - Start SSH server for remote play
  web      - Start the websocket server for browser clients
  scores   - View the best runs
  classes  - Show the playable classes
  config   - Print the active configuration

Examples:
  arena play --class sniper --difficulty hard
  arena serve --ssh :2222
  arena web --addr :8080
  arena scores hard`,
	PersistentPreRun: func(*cobra.Command, []string) {
		// .env is optional; it commonly carries GEMINI_API_KEY.
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(configCmd)
}

// loadArena resolves the arena configuration and the matching runtime config.
func loadArena() (config.ArenaConfig, core.RuntimeConfig, error) {
	cfg, _, err := config.LoadArena(flagConfig)
	if err != nil {
		return config.ArenaConfig{}, core.RuntimeConfig{}, err
	}
	rt := core.RuntimeConfig{
		ArenaW:   cfg.Arena.Width,
		ArenaH:   cfg.Arena.Height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	return cfg, rt, nil
}

// newLogger returns a logger writing to --log-file, or to fallback when the
// flag is unset. The returned func closes the file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return logger, closeFn, nil
}

// openStore opens the run database. Failures are reported and the caller
// continues without history.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
