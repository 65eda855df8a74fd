// Package t2048 implements the 2048 sliding-tile puzzle: the board model
// and line reducer, plus classic, endless and campaign game modes.
package t2048

// Level is one campaign stage. Clearing it means building the target tile.
type Level struct {
	ID     int
	Name   string
	Target int     // Tile value that clears the level
	Spawn4 float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
	Undo   bool    // Whether undo is allowed on this level
}

// Levels is the campaign. The board and score carry over between levels,
// so targets only ever grow.
var Levels = []Level{
	{ID: 1, Name: "First Merge", Target: 64, Spawn4: 0.05, Undo: true},
	{ID: 2, Name: "Doubling Up", Target: 128, Spawn4: 0.08, Undo: true},
	{ID: 3, Name: "Corner Habit", Target: 256, Spawn4: 0.10, Undo: true},
	{ID: 4, Name: "Snake Chain", Target: 512, Spawn4: 0.10, Undo: true},
	{ID: 5, Name: "Four Digits", Target: 1024, Spawn4: 0.10, Undo: false},
	{ID: 6, Name: "The Classic", Target: 2048, Spawn4: 0.10, Undo: false},
	{ID: 7, Name: "Second Wind", Target: 4096, Spawn4: 0.12, Undo: false},
	{ID: 8, Name: "Crowded Board", Target: 8192, Spawn4: 0.15, Undo: false},
	{ID: 9, Name: "Long Haul", Target: 16384, Spawn4: 0.18, Undo: false},
	{ID: 10, Name: "Perfect Game", Target: 32768, Spawn4: 0.20, Undo: false},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based), or nil.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	names := make([]string, len(Levels))
	for i, lvl := range Levels {
		names[i] = lvl.Name
	}
	return names
}

// LevelTargets returns the targets of all levels.
func LevelTargets() []int {
	targets := make([]int, len(Levels))
	for i, lvl := range Levels {
		targets[i] = lvl.Target
	}
	return targets
}
