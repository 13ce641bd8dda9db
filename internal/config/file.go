package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/vcardshell/internal/flagx"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Pointer fields let
// a file override a single value without resetting the others.
type FileConfig struct {
	CardsDir     *string `json:"cards_dir" yaml:"cards_dir"`
	DebugLogPath *string `json:"debug_log_path" yaml:"debug_log_path"`
	LogBackend   *string `json:"log_backend" yaml:"log_backend"`
	LogLevel     *string `json:"log_level" yaml:"log_level"`
	CacheDSN     *string `json:"cache_dsn" yaml:"cache_dsn"`
	WatchCards   *bool   `json:"watch_cards" yaml:"watch_cards"`
	AltScreen    *bool   `json:"alt_screen" yaml:"alt_screen"`
}

// parseFile overlays cfg with the file named by -c/--config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	fc, err := decodeFile(path, data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fc.apply(cfg)
	return nil
}

func decodeFile(path string, data []byte) (*FileConfig, error) {
	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
	}
	return &fc, nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.CardsDir, fc.CardsDir)
	setString(&cfg.DebugLogPath, fc.DebugLogPath)
	setString(&cfg.LogBackend, fc.LogBackend)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.CacheDSN, fc.CacheDSN)
	if fc.WatchCards != nil {
		cfg.WatchCards = *fc.WatchCards
	}
	if fc.AltScreen != nil {
		cfg.AltScreen = *fc.AltScreen
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
