package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const fileName = "breakout.yaml"

// Load loads the configuration and validates it.
// Search order: customPath -> ~/.breakout/configs/breakout.yaml ->
// ./configs/breakout.yaml -> embedded default -> hardcoded default.
//
// Files only need to set the keys they change; everything else keeps its
// default. Errors are returned for customPath only. Unreadable or invalid
// files further down the list are logged and skipped.
func Load(customPath string, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Custom path errors are fatal
	if customPath != "" {
		return loadFile(customPath)
	}

	// User directory, then local configs directory
	for _, path := range []string{userConfigPath(fileName), filepath.Join("configs", fileName)} {
		if path == "" {
			continue
		}
		cfg, err := loadFile(path)
		if err == nil {
			logger.Debug("loaded config", "path", path)
			return cfg, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("skipping config", "path", path, "err", err)
		}
	}

	// Embedded default YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(defaultBreakoutYAML, &cfg); err != nil {
		logger.Warn("embedded config unreadable, using built-in defaults", "err", err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a config file in the user's config directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".breakout", "configs", filename)
}
