package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/games/arena"
	"github.com/vovakirdan/zone-arena/internal/narrative"
	"github.com/vovakirdan/zone-arena/internal/platform/tui"
	"github.com/vovakirdan/zone-arena/internal/telemetry"
)

var (
	flagDifficulty string
	flagClass      string
	flagGender     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Open the setup menu and play a run in the terminal.

Controls:
  WASD/Arrows  - Move (keys stay held briefly after each press)
  Mouse        - Aim, left button fires
  F            - Fire
  Space        - Dash
  E            - Grenade
  P/Esc        - Pause
  R            - Restart (after game over)
  B            - Back to the menu (paused or game over)
  Q/Ctrl+C     - Quit

The menu is preselected from --difficulty, --class and --gender.
Set GEMINI_API_KEY for generated briefings and after-action reports.

Examples:
  arena play
  arena play --class heavy --difficulty easy
  arena play --config ./my-arena.yaml --fps 30`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagClass, "class", "", "Class: assault, rusher, sniper, heavy")
	playCmd.Flags().StringVar(&flagGender, "gender", "", "Gender: male, female")
}

// parseSetup builds the initial setup from the flags. Empty values keep the defaults.
func parseSetup(difficulty, class, gender string) (arena.Setup, error) {
	setup := arena.DefaultSetup()
	var err error
	if difficulty != "" {
		if setup.Difficulty, err = config.ParseDifficulty(difficulty); err != nil {
			return arena.Setup{}, err
		}
	}
	if class != "" {
		if setup.Class, err = config.ParseClass(class); err != nil {
			return arena.Setup{}, err
		}
	}
	if gender != "" {
		if setup.Gender, err = config.ParseGender(gender); err != nil {
			return arena.Setup{}, err
		}
	}
	return setup, nil
}

func runPlay(_ *cobra.Command, _ []string) {
	setup, err := parseSetup(flagDifficulty, flagClass, flagGender)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, rt, err := loadArena()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Logs would corrupt the alternate screen, so they go nowhere unless --log-file is set.
	logger, closeLog, err := newLogger("arena", io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Continue without storage - the game still works
	store := openStore(logger)
	if store == nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database at %s\n", flagDBPath)
	}

	metrics, err := telemetry.New(nil)
	if err != nil {
		logger.Warn("metrics disabled", "error", err)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	deps := tui.Deps{
		Config:    cfg,
		Runtime:   rt,
		Store:     store,
		Narrative: narrative.FromEnv(logger),
		Metrics:   metrics,
		Logger:    logger,
	}
	runErr := tui.Run(deps, setup, width, height)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
