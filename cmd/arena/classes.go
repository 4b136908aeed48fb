package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/storage"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "Show the playable classes",
	Long: `Lists every class with its stats from the active configuration,
plus your record with each class when run history is available.`,
	Args: cobra.NoArgs,
	Run:  runClasses,
}

func runClasses(_ *cobra.Command, _ []string) {
	cfg, _, err := loadArena()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var history map[string]*storage.ClassStats
	if store, err := storage.Open(flagDBPath); err == nil {
		history, _ = store.GetAllClassStats()
		store.Close()
	}

	fmt.Printf("  %-8s  %-4s  %-5s  %-4s  %-7s  %-7s  %-5s  %s\n", "Class", "HP", "Speed", "Dmg", "Bullets", "Rate", "Runs", "Best")
	fmt.Printf("  %-8s  %-4s  %-5s  %-4s  %-7s  %-7s  %-5s  %s\n", "-----", "--", "-----", "---", "-------", "----", "----", "----")

	for _, c := range config.Classes {
		s := cfg.Classes.Get(c)
		runs, best := 0, 0
		if h, ok := history[string(c)]; ok {
			runs, best = h.Runs, h.HighScore
		}
		fmt.Printf("  %-8s  %-4d  %-5.1f  %-4d  %-7d  %-7s  %-5d  %d\n",
			c, s.HP, s.MoveSpeed, s.BulletDamage, s.BulletCount, s.FireRate(), runs, best)
	}
}
