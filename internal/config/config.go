package config

import "os"

// Config holds runtime settings for the vCard shell.
type Config struct {
	// CardsDir is the directory scanned for *.vcf files.
	CardsDir string
	// DebugLogPath is the append-only log file; the terminal belongs to the UI.
	DebugLogPath string
	// LogBackend is "zap" or "slog".
	LogBackend string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// CacheDSN is the modernc sqlite DSN of the contact cache.
	CacheDSN string
	// WatchCards enables the fsnotify watcher on CardsDir.
	WatchCards bool
	// AltScreen runs the UI in the terminal's alternate screen.
	AltScreen bool
	// ShowVersion prints build data and exits. Flag only.
	ShowVersion bool
}

const DefaultCacheDSN = "file::memory:?_pragma=foreign_keys(1)"

// LoadDefaults populates c with the defaults.
func (c *Config) LoadDefaults() {
	c.CardsDir = "cards"
	c.DebugLogPath = "debug_log.txt"
	c.LogBackend = "zap"
	c.LogLevel = "debug"
	c.CacheDSN = DefaultCacheDSN
	c.WatchCards = true
	c.AltScreen = true
}

// LoadConfig builds a Config from defaults, the optional config file and
// command-line flags, in that order.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
