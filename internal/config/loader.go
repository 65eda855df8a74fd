package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

const configFile = "t2048.yaml"

// LoadT2048 loads 2048 configuration. Values missing from the file keep
// their defaults.
// Search order: customPath -> ~/.t2048/configs/t2048.yaml -> ./configs/t2048.yaml -> embedded default
func LoadT2048(customPath string) (T2048Config, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultT2048Config()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if cfg, ok := readConfig(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := readConfig(filepath.Join("configs", configFile)); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultT2048Config()
	if err := yaml.Unmarshal(defaultT2048YAML, &cfg); err != nil {
		return DefaultT2048Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readConfig reads an optional config file. Missing or broken files are
// skipped so the next location is tried.
func readConfig(path string) (T2048Config, bool) {
	cfg := DefaultT2048Config()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", "configs", filename)
}

// positionFile is the YAML shape of a starting position.
type positionFile struct {
	Name  string  `yaml:"name"`
	Score int     `yaml:"score"`
	Cells [][]int `yaml:"cells"`
}

// LoadPosition reads a predefined starting grid.
// The name defaults to the file name without extension.
func LoadPosition(path string) (*t2048.Position, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read position %s: %w", path, err)
	}

	var pf positionFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("config: failed to parse position %s: %w", path, err)
	}
	if len(pf.Cells) == 0 {
		return nil, fmt.Errorf("config: position %s: %w: no cells", path, t2048.ErrInvalidCells)
	}

	name := pf.Name
	if name == "" {
		name = trimExt(filepath.Base(path))
	}
	return &t2048.Position{Name: name, Score: pf.Score, Cells: pf.Cells}, nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
