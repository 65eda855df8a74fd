package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Board flags shared by play and console.
var (
	flagSize       string
	flagTarget     int
	flagDifficulty string
	flagPosition   string
	flagLevel      int
)

func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagSize, "size", "", "Board size RxC, e.g. 4x4 or 3x5")
	cmd.Flags().IntVar(&flagTarget, "target", 0, "Winning tile value (0 = no win)")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().StringVar(&flagPosition, "position", "", "Path to a starting position YAML")
	cmd.Flags().IntVar(&flagLevel, "level", 0, "Starting campaign level (1-10)")
}

// configureBoard loads the config file, applies the preset and flag
// overrides and hands the result to the game package.
func configureBoard(cmd *cobra.Command) error {
	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		return err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyT2048Preset(&cfg, preset)

	if flagSize != "" {
		rows, cols, sizeErr := config.ParseSize(flagSize)
		if sizeErr != nil {
			return sizeErr
		}
		cfg.Board.Rows, cfg.Board.Cols = rows, cols
	}
	if cmd.Flags().Changed("target") {
		cfg.Board.WinningValue = flagTarget
	}

	settings := cfg.Settings()
	if flagPosition != "" {
		pos, posErr := config.LoadPosition(flagPosition)
		if posErr != nil {
			return posErr
		}
		settings.Start = pos
	}

	if err := t2048.Configure(settings); err != nil {
		return fmt.Errorf("invalid board settings: %w", err)
	}

	if flagLevel != 0 && (flagLevel < 1 || flagLevel > t2048.LevelCount()) {
		return fmt.Errorf("invalid --level %d: want 1-%d", flagLevel, t2048.LevelCount())
	}

	logger.Debug("board configured",
		"rows", settings.Rows,
		"cols", settings.Cols,
		"target", settings.WinningValue,
		"spawn4", settings.Spawn4Prob,
		"undo", settings.UndoEnabled,
		"preset", preset,
	)
	return nil
}

// resolveMode maps a mode name or game ID to a registered game ID.
func resolveMode(name string) (string, error) {
	switch strings.ToLower(name) {
	case "", "classic", t2048.IDClassic:
		return t2048.IDClassic, nil
	case "endless", t2048.IDEndless:
		return t2048.IDEndless, nil
	case "campaign", t2048.IDCampaign:
		return t2048.IDCampaign, nil
	}
	return "", fmt.Errorf("unknown mode %q (want classic, endless or campaign)", name)
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// modeName is the inverse of resolveMode.
func modeName(gameID string) string {
	switch gameID {
	case t2048.IDEndless:
		return "endless"
	case t2048.IDCampaign:
		return "campaign"
	default:
		return "classic"
	}
}

// startAt applies a campaign start level to games that support one.
func startAt(game registry.Game, level int) {
	if g, ok := game.(*t2048.Game); ok && level > 0 {
		g.StartAt(level)
	}
}
