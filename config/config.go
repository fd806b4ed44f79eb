package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment variables consulted by Load.
const (
	EnvConfigPath = "PALCONV_CONFIG"
	EnvLogLevel   = "PALCONV_LOG_LEVEL"
)

// ErrNotFound is returned by Load when no config file exists in any of the
// searched locations.
var ErrNotFound = errors.New("no config file found; using defaults")

type Config struct {
	Log     LogSection    `toml:"log"`
	Export  ExportSection `toml:"export"`
	Watch   WatchSection  `toml:"watch"`
	Show    ShowSection   `toml:"show"`
	source  string        // file the config was read from, if any
	unknown []string      // keys present in the file but not in Config
}

type LogSection struct {
	Level  string `toml:"level"`  // debug|info|warn|error (default info)
	Format string `toml:"format"` // text|json (default text)
}

type ExportSection struct {
	Dir       string `toml:"dir"`       // output directory; empty writes next to the input
	Overwrite bool   `toml:"overwrite"` // replace existing .gpl files
}

type WatchSection struct {
	Dir        string `toml:"dir"`         // directory to watch (default ".")
	DebounceMs int    `toml:"debounce_ms"` // settle time per file (default 200)
}

type ShowSection struct {
	SwatchWidth int `toml:"swatch_width"` // cells per swatch (default 4)
}

func Defaults() *Config {
	return &Config{
		Log:   LogSection{Level: "info", Format: "text"},
		Watch: WatchSection{Dir: ".", DebounceMs: 200},
		Show:  ShowSection{SwatchWidth: 4},
	}
}

// Load loads configuration from explicit path, $PALCONV_CONFIG, or the first
// existing search path, in that order.
// Missing file yields defaults and an error; parse errors also return defaults + error.
func Load(path string) (*Config, error) {
	defaults := Defaults()
	chosen := path
	if chosen == "" {
		chosen = os.Getenv(EnvConfigPath)
	}
	if chosen == "" {
		for _, p := range searchPaths() {
			if _, err := os.Stat(p); err == nil {
				chosen = p
				break
			}
		}
	}
	if chosen == "" { // no file found
		defaults.applyEnv()
		defaults.normalize()
		return defaults, ErrNotFound
	}
	data, err := os.ReadFile(chosen)
	if err != nil {
		defaults.applyEnv()
		defaults.normalize()
		return defaults, fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), defaults) // decode overlays onto defaults
	if err != nil {
		fresh := Defaults()
		fresh.applyEnv()
		fresh.normalize()
		return fresh, fmt.Errorf("parse config %s: %w", chosen, err)
	}
	defaults.source = chosen
	for _, k := range md.Undecoded() {
		defaults.unknown = append(defaults.unknown, k.String())
	}
	defaults.applyEnv()
	defaults.normalize()
	return defaults, nil
}

func searchPaths() []string {
	var out []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		out = append(out, filepath.Join(xdg, "palconv", "config.toml"))
	}
	if home, _ := os.UserHomeDir(); home != "" {
		out = append(out, filepath.Join(home, ".config", "palconv", "config.toml"))
	}
	return out
}

// Source returns the path the configuration was read from, or "".
func (c *Config) Source() string { return c.source }

// UnknownKeys returns a copy of the keys the file set that palconv does not use.
func (c *Config) UnknownKeys() []string {
	if len(c.unknown) == 0 {
		return nil
	}
	out := make([]string, len(c.unknown))
	copy(out, c.unknown)
	return out
}

func (c *Config) applyEnv() {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.Log.Level = lvl
	}
}

// normalize clamps and validates config values after decoding.
func (c *Config) normalize() {
	c.normalizeLog()
	c.normalizeWatch()
	c.Show.SwatchWidth = clampInt(c.Show.SwatchWidth, 1, 16, 4)
}

func (c *Config) normalizeLog() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if !ValidLogLevel(c.Log.Level) {
		c.Log.Level = "info"
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format != "json" {
		c.Log.Format = "text"
	}
}

func (c *Config) normalizeWatch() {
	if c.Watch.Dir == "" {
		c.Watch.Dir = "."
	}
	if c.Watch.DebounceMs < 0 {
		c.Watch.DebounceMs = 0
	}
	if c.Watch.DebounceMs > 5000 {
		c.Watch.DebounceMs = 5000
	}
}

func clampInt(val, min, max, fallback int) int {
	if val == 0 && fallback != 0 { // allow zero to trigger fallback when min>0
		val = fallback
	}
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ValidLogLevel reports whether l is one of debug, info, warn, error.
func ValidLogLevel(l string) bool {
	switch l {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
