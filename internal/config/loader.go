package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const starsFile = "stars.yaml"

// LoadStars loads Catch Falling Stars configuration.
// Search order: customPath -> ~/.arcade/configs/stars.yaml -> ./configs/stars.yaml -> embedded default
//
// Files may be partial: missing keys keep their default values.
func LoadStars(customPath string) (StarsConfig, error) {
	cfg, _, err := LoadStarsWithSource(customPath)
	return cfg, err
}

// LoadStarsWithSource is LoadStars that also reports the file the
// configuration came from. The source is empty for the embedded default.
func LoadStarsWithSource(customPath string) (StarsConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := LoadStarsFile(customPath)
		if err != nil {
			return cfg, "", err
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(starsFile); userCfgPath != "" {
		if cfg, err := LoadStarsFile(userCfgPath); err == nil {
			return cfg, userCfgPath, nil
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", starsFile)
	if cfg, err := LoadStarsFile(localPath); err == nil {
		return cfg, localPath, nil
	}

	// Use embedded default YAML
	cfg, err := parseStars(defaultStarsYAML)
	if err != nil {
		return DefaultStarsConfig(), "", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "", nil
}

// LoadStarsFile reads and validates a single configuration file.
func LoadStarsFile(path string) (StarsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StarsConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := parseStars(data)
	if err != nil {
		return StarsConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func parseStars(data []byte) (StarsConfig, error) {
	cfg := DefaultStarsConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
