package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source names where a configuration was loaded from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// LoadArena loads the arena configuration.
// Search order: customPath -> ~/.arena/configs/arena.yaml -> ./configs/arena.yaml -> embedded default -> built-in
// Each document is decoded over the built-in defaults, so a file only needs the keys it changes.
func LoadArena(customPath string) (ArenaConfig, Source, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ArenaConfig{}, "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return ArenaConfig{}, "", fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("arena.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, SourceUser, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "arena.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, SourceLocal, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultArenaYAML)
	if err != nil {
		return DefaultArenaConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// Parse decodes a YAML document over the built-in defaults and validates the result.
func Parse(data []byte) (ArenaConfig, error) {
	cfg := DefaultArenaConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ArenaConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return ArenaConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg ArenaConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// UserConfigDir returns ~/.arena/configs, or empty if home is unavailable.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arena", "configs")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}
