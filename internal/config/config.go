// Package config provides YAML-based configuration loading for the 2048
// board, difficulty presets and predefined starting positions.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// ErrUnknownPreset is returned for a difficulty name that is not defined.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Board BoardConfig `yaml:"board"`
	Spawn SpawnConfig `yaml:"spawn"`
	Undo  UndoConfig  `yaml:"undo"`
}

// BoardConfig defines the grid size and the winning tile.
type BoardConfig struct {
	Rows         int `yaml:"rows"`
	Cols         int `yaml:"cols"`
	WinningValue int `yaml:"winning_value"` // 0 = no win check
}

// SpawnConfig defines how new tiles are chosen.
type SpawnConfig struct {
	FourProbability float64 `yaml:"four_probability"`
}

// UndoConfig toggles the one-step undo.
type UndoConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
// Normal keeps the file values.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.Rows, cfg.Board.Cols = 5, 5
		cfg.Undo.Enabled = true
		cfg.Spawn.FourProbability = 0.05
	case DifficultyHard:
		cfg.Board.Rows, cfg.Board.Cols = 4, 4
		cfg.Undo.Enabled = false
		cfg.Spawn.FourProbability = 0.25
	}
}

// ParseSize parses a "RxC" board size such as "4x4" or "3X5".
func ParseSize(s string) (rows, cols int, err error) {
	r, c, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("config: invalid size %q, want RxC", s)
	}
	rows, err = strconv.Atoi(r)
	if err != nil {
		return 0, 0, fmt.Errorf("config: invalid rows in %q: %w", s, err)
	}
	cols, err = strconv.Atoi(c)
	if err != nil {
		return 0, 0, fmt.Errorf("config: invalid cols in %q: %w", s, err)
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, fmt.Errorf("config: invalid size %q: %w", s, t2048.ErrInvalidSize)
	}
	return rows, cols, nil
}

// Settings converts the config into game settings.
func (c T2048Config) Settings() t2048.Settings {
	return t2048.Settings{
		Rows:         c.Board.Rows,
		Cols:         c.Board.Cols,
		WinningValue: c.Board.WinningValue,
		Spawn4Prob:   c.Spawn.FourProbability,
		UndoEnabled:  c.Undo.Enabled,
	}
}

// Validate reports whether a board can be built from the config.
func (c T2048Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
