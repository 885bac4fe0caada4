package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and stats",
	Long: `Display the top scores and play statistics for a game mode, or the
stats of every mode when none is named.

Examples:
  pacman scores
  pacman scores pacman
  pacman scores pacman_marathon --limit 25
  pacman scores pacman --all
  pacman scores pacman --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every recorded run")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every run of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printAllStats(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'pacman list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if flagScoresClear {
		n, err := store.ClearScores(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Removed %d runs of %s\n", n, game.Title())
		return
	}

	var runs []storage.Run
	if flagScoresAll {
		runs, err = store.AllScores(gameID)
	} else {
		runs, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'pacman play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-10s  %-8s  %s\n", "Rank", "Score", "Level", "Difficulty", "Time", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-10s  %-8s  %s\n", "----", "-----", "-----", "----------", "----", "----")

	for i, r := range runs {
		level := fmt.Sprintf("%d", r.Level)
		if r.Won {
			level += "*"
		}
		difficulty := r.Difficulty
		if difficulty == "" {
			difficulty = "-"
		}
		fmt.Printf("  %-4d  %-10d  %-6s  %-10s  %-8s  %s\n",
			i+1, r.Score, level, difficulty,
			time.Duration(r.Duration)*time.Second,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return
	}
	fmt.Println()
	printStats(stats)
}

func printStats(s *storage.GameStats) {
	fmt.Printf("Games: %d  Wins: %d  Best: %d  Best level: %d  Avg: %.0f  Played: %s\n",
		s.GamesCount, s.Wins, s.HighScore, s.BestLevel, s.AvgScore, s.PlayTime)
}

func printAllStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No games played yet.")
		return nil
	}

	for _, g := range registry.List() {
		s, ok := all[g.ID]
		if !ok {
			continue
		}
		fmt.Println(g.Title)
		fmt.Print("  ")
		printStats(s)
		if !s.LastPlayed.IsZero() {
			fmt.Printf("  Last played: %s\n", s.LastPlayed.Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}
	return nil
}
