// Package config loads erdcanvas configuration from a TOML file.
//
// The config file lives at $XDG_CONFIG_HOME/erdcanvas/config.toml and is
// entirely optional: a missing file yields the defaults. Only the keys
// present in the file override them, so partial configs work:
//
//	[layout]
//	table_width = 260
//	gap_x = 100
//
//	[remote]
//	endpoint = "https://api.erdcanvas.example"
//
//	[cache]
//	disabled = true
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/erdcanvas/erdcanvas/pkg/errors"
	"github.com/erdcanvas/erdcanvas/pkg/layout"
)

// Config is the top-level configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Remote RemoteConfig `toml:"remote"`
	Cache  CacheConfig  `toml:"cache"`
}

// LayoutConfig overrides the geometry used by the layout engine.
// Zero values fall back to the engine defaults.
type LayoutConfig struct {
	TableWidth  float64 `toml:"table_width"`
	TableHeight float64 `toml:"table_height"`
	GapX        float64 `toml:"gap_x"`
	GapY        float64 `toml:"gap_y"`
}

// RemoteConfig configures the diagram publishing client.
type RemoteConfig struct {
	Endpoint string   `toml:"endpoint"`
	Timeout  duration `toml:"timeout"`
}

// CacheConfig configures the local result cache.
type CacheConfig struct {
	Dir      string   `toml:"dir"`
	TTL      duration `toml:"ttl"`
	Disabled bool     `toml:"disabled"`
}

// duration wraps time.Duration for TOML strings like "30s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default durations.
const (
	DefaultRemoteTimeout = 30 * time.Second
	DefaultCacheTTL      = 24 * time.Hour
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Remote: RemoteConfig{Timeout: duration{DefaultRemoteTimeout}},
		Cache:  CacheConfig{TTL: duration{DefaultCacheTTL}},
	}
}

// DefaultPath returns the standard config file location,
// $XDG_CONFIG_HOME/erdcanvas/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "erdcanvas", "config.toml"), nil
}

// Load reads the config file at path. A missing file is not an error; the
// defaults are returned. A malformed or invalid file is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Remote.Endpoint != "" {
		if err := errors.ValidateURL(c.Remote.Endpoint); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "remote.endpoint")
		}
	}
	if c.Layout.TableWidth < 0 || c.Layout.TableHeight < 0 ||
		c.Layout.GapX < 0 || c.Layout.GapY < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout geometry must be non-negative")
	}
	return nil
}

// LayoutOptions converts the layout overrides into engine options, leaving
// unset values to the engine defaults.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{
		TableWidth:  c.Layout.TableWidth,
		TableHeight: c.Layout.TableHeight,
		GapX:        c.Layout.GapX,
		GapY:        c.Layout.GapY,
	}
}

// RemoteTimeout returns the configured publish timeout.
func (c Config) RemoteTimeout() time.Duration {
	if c.Remote.Timeout.Duration <= 0 {
		return DefaultRemoteTimeout
	}
	return c.Remote.Timeout.Duration
}

// CacheTTL returns the configured cache entry lifetime.
func (c Config) CacheTTL() time.Duration {
	if c.Cache.TTL.Duration <= 0 {
		return DefaultCacheTTL
	}
	return c.Cache.TTL.Duration
}
