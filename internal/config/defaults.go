package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the default 2048 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: BoardConfig{
			Rows:         t2048.DefaultSize,
			Cols:         t2048.DefaultSize,
			WinningValue: t2048.DefaultWinningValue,
		},
		Spawn: SpawnConfig{
			FourProbability: t2048.DefaultSpawn4Probability,
		},
		Undo: UndoConfig{
			Enabled: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultT2048YAML
}
