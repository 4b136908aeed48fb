package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zone-arena/internal/narrative"
	"github.com/vovakirdan/zone-arena/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arena SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the setup menu.
Runs are stored per-server (all users share the same history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arena/host_key

Examples:
  arena serve                           # Listen on :23234 with auto-generated key
  arena serve --ssh :2222               # Listen on port 2222
  arena serve --host-key ./my_host_key  # Use specific host key
  arena serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", tui.DefaultSSHServerConfig().MaxSessions, "Concurrent player limit (0 for unlimited)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, rt, err := loadArena()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger("arena-ssh", os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.Address = flagSSHAddr
	serverCfg.HostKeyPath = flagHostKey
	serverCfg.DBPath = flagDBPath
	serverCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	serverCfg.MaxSessions = flagMaxSessions

	deps := tui.Deps{
		Config:    cfg,
		Runtime:   rt,
		Narrative: narrative.FromEnv(logger),
		Logger:    logger,
	}

	server, err := tui.NewSSHServer(serverCfg, deps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting arena SSH server on %s\n", serverCfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(serverCfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
