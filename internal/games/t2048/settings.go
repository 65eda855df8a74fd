package t2048

import (
	"fmt"
	"sync"
)

// Position is a predefined starting grid.
type Position struct {
	Name  string
	Score int
	Cells [][]int
}

// Settings controls how new games build their board.
type Settings struct {
	Rows         int
	Cols         int
	WinningValue int     // Classic mode target
	Spawn4Prob   float64 // Endless and classic modes; campaign levels use their own
	UndoEnabled  bool
	Start        *Position // Optional starting grid; overrides Rows/Cols
}

// DefaultSettings returns the classic 4x4 game to 2048 with undo enabled.
func DefaultSettings() Settings {
	return Settings{
		Rows:         DefaultSize,
		Cols:         DefaultSize,
		WinningValue: DefaultWinningValue,
		Spawn4Prob:   DefaultSpawn4Probability,
		UndoEnabled:  true,
	}
}

// Validate checks that a board can be built from the settings.
func (s Settings) Validate() error {
	rows, cols := s.dims()
	opts := []BoardOption{
		WithWinningValue(s.WinningValue),
		WithSpawn4Probability(s.Spawn4Prob),
		WithSeed(1),
	}
	b, err := NewBoard(rows, cols, opts...)
	if err != nil {
		return err
	}
	if s.Start != nil {
		if err := b.SetCells(s.Start.Cells); err != nil {
			return fmt.Errorf("position %q: %w", s.Start.Name, err)
		}
		if s.Start.Score < 0 {
			return fmt.Errorf("position %q: %w: negative score", s.Start.Name, ErrInvalidCells)
		}
	}
	return nil
}

// dims returns the board size, taking a starting position into account.
func (s Settings) dims() (rows, cols int) {
	if s.Start != nil && len(s.Start.Cells) > 0 {
		return len(s.Start.Cells), len(s.Start.Cells[0])
	}
	return s.Rows, s.Cols
}

// Package-level configuration picked up by registered factories.
var (
	mu       sync.Mutex
	settings = DefaultSettings()
)

// Configure sets the settings used by games created afterwards.
func Configure(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	settings = s
	return nil
}

// CurrentSettings returns the settings new games will use.
func CurrentSettings() Settings {
	mu.Lock()
	defer mu.Unlock()
	return settings
}
