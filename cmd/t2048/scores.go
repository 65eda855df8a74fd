package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores for a mode (classic by default).

Examples:
  t2048 scores
  t2048 scores endless
  t2048 scores campaign`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

var scoreboardCmd = &cobra.Command{
	Use:   "scoreboard",
	Short: "Browse high scores of all modes",
	Long: `Open an interactive table of high scores.

Use tab/left/right to switch modes and up/down to scroll.`,
	Args: cobra.NoArgs,
	RunE: runScoreboard,
}

func runScores(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
	}
	gameID, err := resolveMode(mode)
	if err != nil {
		return err
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	title := game.Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	// Get top scores
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first high score!\n", modeName(gameID))
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-5s  %-3s  %s\n", "Rank", "Score", "Tile", "Moves", "Size", "Won", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-5s  %-3s  %s\n", "----", "-----", "----", "-----", "----", "---", "----")

	// Print scores
	for i, entry := range scores {
		won := ""
		if entry.Won {
			won = "yes"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %-5s  %-3s  %s\n",
			i+1, entry.Score, entry.MaxTile, entry.Moves, entry.BoardSize, won, dateStr)
	}

	// Show summary
	fmt.Println()
	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Printf("Best: %d  Best tile: %d  Games: %d  Wins: %d\n",
			stats.HighScore, stats.BestTile, stats.GamesCount, stats.Wins)
	}
	return nil
}

func runScoreboard(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	cfg := runtimeConfig()
	_, err = tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
	return err
}
