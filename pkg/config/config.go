// Package config loads archdiagram settings.
//
// Sources are layered, later ones winning:
//
//  1. built-in defaults
//  2. archdiagram.toml (optional)
//  3. ARCHDIAGRAM_* environment variables, including those from a .env file
//  4. command-line flags that were set explicitly
//
// Keys use the flag spelling: output, formats, no-cache, cache-dir, verify,
// watch, verbose. ARCHDIAGRAM_NO_CACHE maps to no-cache.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/razor-app/archdiagram/pkg/errors"
	"github.com/razor-app/archdiagram/pkg/render"
)

const (
	// DefaultFile is the config file looked up in the working directory.
	DefaultFile = "archdiagram.toml"

	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "ARCHDIAGRAM_"
)

// Config holds all settings for a run.
type Config struct {
	Output   string   `koanf:"output"`
	Formats  []string `koanf:"formats"`
	NoCache  bool     `koanf:"no-cache"`
	CacheDir string   `koanf:"cache-dir"`
	Verify   bool     `koanf:"verify"`
	Watch    bool     `koanf:"watch"`
	Verbose  bool     `koanf:"verbose"`
}

// Load reads configuration from defaults, the config file, the environment
// and flags. An empty path means DefaultFile, which may be absent; an
// explicit path must exist. A .env file next to the config file is loaded
// into the environment without overriding variables that are already set.
// A missing .env is fine; an unreadable or malformed one is ErrCodeInvalidInput.
func Load(path string, f *pflag.FlagSet) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "load %s", envPath)
	}

	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(makeMapProvider(defaults()), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// 2. Config file
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
		}
	} else if explicit {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config")
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaults() map[string]any {
	return map[string]any{
		"output":    ".",
		"formats":   []string{render.DefaultFormat},
		"no-cache":  false,
		"cache-dir": "",
		"verify":    false,
		"watch":     false,
		"verbose":   false,
	}
}

// envKey maps ARCHDIAGRAM_NO_CACHE to no-cache.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", "-")
}

// normalize cleans up the format list and validates it.
func (c *Config) normalize() error {
	c.Formats = render.ParseFormats(strings.Join(c.Formats, ","))
	if err := render.ValidateFormats(c.Formats); err != nil {
		return err
	}
	if c.Output == "" {
		c.Output = "."
	}
	return errors.ValidatePath(c.Output)
}

// mapProvider feeds a plain map to koanf.
type mapProvider struct {
	m map[string]any
}

func makeMapProvider(m map[string]any) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]any, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
