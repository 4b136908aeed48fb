package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zone-arena/internal/narrative"
	"github.com/vovakirdan/zone-arena/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the websocket server for browser clients",
	Long: `Start an HTTP server with a websocket endpoint at /ws and a health
check at /healthz. Every websocket connection drives its own session.

Settings are read from the environment and an optional .env file:
  ARENA_WEB_ADDR         - Listen address (default :8080)
  ARENA_WEB_FRAME_EVERY  - Ticks between frame events (default 2)
  GEMINI_API_KEY         - Enables generated briefings and reports

Examples:
  arena web
  arena web --addr :9000
  ARENA_WEB_ADDR=:9000 arena web`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", "", "Listen address (overrides ARENA_WEB_ADDR)")
}

func runWeb(cmd *cobra.Command, _ []string) {
	webCfg, err := web.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cmd.Flags().Changed("addr") {
		webCfg.Addr = flagWebAddr
	}

	cfg, rt, err := loadArena()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger("arena-web", os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Metrics are left to the server so the active gauge tracks its connections.
	server := web.NewServer(webCfg, web.Deps{
		Config:    cfg,
		Runtime:   rt,
		Store:     openStore(logger),
		Narrative: narrative.FromEnv(logger),
		Logger:    logger,
	})

	fmt.Printf("Starting arena web server on %s\n", server.Addr())
	fmt.Printf("Connect a client to ws://localhost:%s/ws\n", portOf(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
