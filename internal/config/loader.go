package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "pacman.yaml"

// LoadPacman loads the game configuration.
// Search order: customPath -> ~/.pacman/configs/pacman.yaml -> ./configs/pacman.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial file only
// overrides the keys it sets.
func LoadPacman(customPath string) (PacmanConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultPacmanConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", ConfigFile)); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultPacmanConfig()
	if err := decode(defaultPacmanYAML, &cfg); err != nil {
		return DefaultPacmanConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing or broken files are
// skipped so the next location in the search order gets a chance.
func tryLoad(path string) (PacmanConfig, bool) {
	cfg := DefaultPacmanConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := decode(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

func decode(data []byte, cfg *PacmanConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pacman", "configs", filename)
}

// Marshal renders a config as YAML, as printed by `pacman config show`.
func Marshal(cfg PacmanConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// ApplyPacmanPreset modifies the config based on a difficulty preset.
// The empty preset leaves cfg untouched.
func ApplyPacmanPreset(cfg *PacmanConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Lives.Start = min(5, cfg.Lives.Max)
		cfg.Timing.Frightened = 8
	case DifficultyHard:
		cfg.Lives.Start = 2
		cfg.Timing.Frightened = 4
		cfg.Elroy.Threshold1 = 30
		cfg.Elroy.Threshold2 = 15
	}
}
