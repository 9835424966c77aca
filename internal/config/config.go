package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/seabearDEV/scaf/internal/fileutil"
	"github.com/seabearDEV/scaf/internal/scaffold"
)

// Config holds persisted defaults for scaffold writes.
type Config struct {
	Colors        bool   `json:"colors"`
	Destination   string `json:"destination"`
	Encoding      string `json:"encoding"`
	Overwrite     bool   `json:"overwrite"`
	CreateParents bool   `json:"create_parents"`
	Atomic        bool   `json:"atomic"`
}

var (
	// ValidConfigKeys lists the keys accepted by GetSetting and SetSetting.
	ValidConfigKeys = []string{"colors", "destination", "encoding", "overwrite", "create_parents", "atomic"}

	mu         sync.Mutex
	cache      *Config
	cacheMtime int64
)

// Default returns the built-in configuration.
func Default() Config {
	opts := scaffold.DefaultOptions()
	return Config{
		Colors:        true,
		Destination:   opts.Destination,
		Encoding:      opts.Encoding,
		Overwrite:     opts.Overwrite,
		CreateParents: opts.CreateParents,
		Atomic:        opts.Atomic,
	}
}

// Options applies the configuration to the dashboard defaults.
func (c Config) Options() scaffold.Options {
	opts := scaffold.DefaultOptions()
	opts.Destination = c.Destination
	opts.Encoding = c.Encoding
	opts.Overwrite = c.Overwrite
	opts.CreateParents = c.CreateParents
	opts.Atomic = c.Atomic
	return opts
}

// ClearCache invalidates the config cache.
func ClearCache() {
	mu.Lock()
	defer mu.Unlock()
	cache = nil
	cacheMtime = 0
}

// Load reads config.json with mtime caching. A missing, empty or invalid
// file yields the defaults; Load never writes.
func Load() Config {
	mu.Lock()
	defer mu.Unlock()
	return loadLocked()
}

func loadLocked() Config {
	filePath := fileutil.GetConfigFilePath()

	if cache != nil && cacheMtime != 0 {
		info, err := os.Stat(filePath)
		if err != nil {
			cache = nil
			cacheMtime = 0
		} else if info.ModTime().UnixNano() == cacheMtime {
			return *cache
		}
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return Default()
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return Default()
	}

	// Keys absent from the file keep their defaults.
	cfg := Default()
	if err := json.Unmarshal([]byte(trimmed), &cfg); err != nil {
		return Default()
	}
	if cfg.Destination == "" {
		cfg.Destination = Default().Destination
	}
	if _, err := scaffold.ResolveEncoding(cfg.Encoding); err != nil {
		cfg.Encoding = Default().Encoding
	}

	info, err := os.Stat(filePath)
	if err == nil {
		c := cfg
		cache = &c
		cacheMtime = info.ModTime().UnixNano()
	}

	return cfg
}

// Save writes config.json.
func Save(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()
	return saveLocked(cfg)
}

func saveLocked(cfg Config) error {
	if _, err := fileutil.EnsureDataDirectoryExists(); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	filePath := fileutil.GetConfigFilePath()

	content, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	if err := fileutil.SaveLocked(filePath, content, 0600); err != nil {
		return err
	}

	info, err := os.Stat(filePath)
	if err == nil {
		c := cfg
		cache = &c
		cacheMtime = info.ModTime().UnixNano()
	}
	return nil
}

// GetSetting returns a config value by key name, or nil for unknown keys.
func GetSetting(key string) any {
	cfg := Load()
	switch key {
	case "colors":
		return cfg.Colors
	case "destination":
		return cfg.Destination
	case "encoding":
		return cfg.Encoding
	case "overwrite":
		return cfg.Overwrite
	case "create_parents":
		return cfg.CreateParents
	case "atomic":
		return cfg.Atomic
	default:
		return nil
	}
}

// SetSetting validates and sets a config value.
func SetSetting(key string, value string) error {
	mu.Lock()
	defer mu.Unlock()

	cfg := loadLocked()

	switch key {
	case "colors":
		cfg.Colors = parseBool(value)
	case "overwrite":
		cfg.Overwrite = parseBool(value)
	case "create_parents":
		cfg.CreateParents = parseBool(value)
	case "atomic":
		cfg.Atomic = parseBool(value)

	case "destination":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("destination cannot be empty")
		}
		cfg.Destination = value

	case "encoding":
		name, err := scaffold.ResolveEncoding(value)
		if err != nil {
			return err
		}
		cfg.Encoding = name

	default:
		return fmt.Errorf("unknown configuration key: %s. Must be one of: %s", key, strings.Join(ValidConfigKeys, ", "))
	}
	return saveLocked(cfg)
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && b
}
