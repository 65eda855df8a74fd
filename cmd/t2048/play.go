package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play 2048 full-screen",
	Long: `Start a full-screen game. Without a mode, a menu lets you pick
Classic, Endless, Campaign or a campaign level; you return to the menu
after each game.

Modes:
  classic   - Reach the goal tile (default 2048)
  endless   - No goal, play until the board locks up
  campaign  - Ten levels with rising targets

Controls:
  Arrows/WASD/hjkl - Slide tiles
  U/Z/Backspace    - Undo last move (when enabled)
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Examples:
  t2048 play
  t2048 play classic --size 5x5 --target 1024
  t2048 play endless --difficulty hard
  t2048 play campaign --level 4
  t2048 play --position ./corner.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addBoardFlags(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if err := configureBoard(cmd); err != nil {
		return err
	}

	gameID := ""
	if len(args) == 1 {
		id, err := resolveMode(args[0])
		if err != nil {
			return err
		}
		gameID = id
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "err", err)
		// Continue without storage - game still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	gameLogger, closer := tuiLogger()
	defer closer.Close()

	if gameID != "" {
		return playOnce(gameID, store, gameLogger)
	}
	return playMenu(store, gameLogger)
}

func playOnce(gameID string, store *storage.Store, gameLogger *log.Logger) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	startAt(game, flagLevel)
	gameLogger.Info("game started", "game", gameID, "seed", flagSeed)
	if err := tui.Run(game, store, gameLogger, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// playMenu alternates between the mode menu and games until the user quits.
func playMenu(store *storage.Store, gameLogger *log.Logger) error {
	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		startAt(game, menuResult.Level)

		// Fresh seed for every game unless one was requested
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		gameLogger.Info("game started", "game", game.ID(), "level", menuResult.Level)
		if err := tui.Run(game, store, gameLogger, cfg); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
	}
}
