package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/platform/tui"
	"github.com/vovakirdan/zone-arena/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show the best runs",
	Long: `Display the best recorded runs, optionally for one difficulty.

Examples:
  arena scores
  arena scores hard
  arena scores --limit 25
  arena scores -i          # Browse in the interactive scoreboard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, args []string) {
	difficulty := ""
	if len(args) == 1 {
		d, err := config.ParseDifficulty(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		difficulty = string(d)
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	runs, err := store.TopRuns(difficulty, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	title := "all difficulties"
	if difficulty != "" {
		title = difficulty
	}
	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'arena play' to set the first score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-5s  %-8s  %-6s  %-6s  %-14s  %s\n", "#", "Score", "Kills", "Class", "Level", "Time", "Rank", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-8s  %-6s  %-6s  %-14s  %s\n", "-", "-----", "-----", "-----", "-----", "----", "----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-5d  %-8s  %-6s  %02d:%02d   %-14s  %s\n",
			i+1, r.Score, r.Kills, r.Class, r.Difficulty,
			r.SurvivedSeconds/60, r.SurvivedSeconds%60,
			r.Rank, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(difficulty); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}
