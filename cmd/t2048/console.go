package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/console"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagNoClear bool

var consoleCmd = &cobra.Command{
	Use:   "console [mode]",
	Short: "Play 2048 with a line prompt",
	Long: `Play on stdin/stdout: the board is printed, then one move is read
per line.

Input:
  w/a/s/d  - Slide up, left, down, right
  r        - Undo last move (when enabled)
  q        - Quit

The screen is cleared between moves when stdout is a terminal.

Examples:
  t2048 console
  t2048 console endless --size 3x3
  t2048 console --seed 42 < moves.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConsole,
}

func init() {
	addBoardFlags(consoleCmd)
	consoleCmd.Flags().BoolVar(&flagNoClear, "no-clear", false, "Never clear the screen between moves")
}

func runConsole(cmd *cobra.Command, args []string) error {
	if err := configureBoard(cmd); err != nil {
		return err
	}

	mode := ""
	if len(args) == 1 {
		mode = args[0]
	}
	gameID, err := resolveMode(mode)
	if err != nil {
		return err
	}

	created, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	game, ok := created.(*t2048.Game)
	if !ok {
		return fmt.Errorf("mode %q cannot run on the console", gameID)
	}
	game.StartAt(flagLevel)
	game.Reset(core.RuntimeConfig{Seed: flagSeed})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := console.Options{
		ClearScreen: !flagNoClear && term.IsTerminal(int(os.Stdout.Fd())),
		Logger:      logger,
	}
	res := console.Run(ctx, os.Stdin, os.Stdout, game, opts)
	logger.Debug("console game finished",
		"game", gameID,
		"score", res.Score,
		"max_tile", res.MaxTile,
		"moves", res.Moves,
		"won", res.Won,
	)

	if res.Score > 0 && (res.Won || res.Lost) {
		saveConsoleScore(game)
	}
	return nil
}

func saveConsoleScore(game *t2048.Game) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		return
	}
	defer store.Close()

	entry := tui.ScoreEntryFor(game)
	if _, err := store.SaveScore(entry); err != nil {
		logger.Warn("could not save score", "err", err)
		return
	}
	logger.Info("score saved", "game", entry.GameID, "score", entry.Score)
}
