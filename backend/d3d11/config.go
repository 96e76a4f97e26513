// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrConfig is returned for a malformed factory configuration file.
var ErrConfig = errors.New("gfx: invalid factory config")

// Config is the file form of the factory options.
//
//	typed_formats = true
//	state_cache   = 64
//	hash_key      = "my-app shaders"
//	log_level     = "debug"
type Config struct {
	TypedFormats bool   `toml:"typed_formats"`
	StateCache   int    `toml:"state_cache"`
	HashKey      string `toml:"hash_key"`
	LogLevel     string `toml:"log_level"`
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("gfx: read config: %w", err)
	}
	return ParseConfig(bytes.NewReader(data))
}

// ParseConfig decodes a TOML configuration. Unknown keys are rejected.
func ParseConfig(r io.Reader) (Config, error) {
	var c Config
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&c); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if c.StateCache < 0 {
		return Config{}, fmt.Errorf("%w: negative state_cache %d", ErrConfig, c.StateCache)
	}
	if _, err := c.Level(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Level returns the slog level named by LogLevel. An empty name is Info.
func (c Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: unknown log_level %q", ErrConfig, c.LogLevel)
}

// Options converts the configuration into factory options.
func (c Config) Options() []Option {
	opts := []Option{WithTypedFormats(c.TypedFormats)}
	if c.StateCache > 0 {
		opts = append(opts, WithStateCache(c.StateCache))
	}
	if c.HashKey != "" {
		opts = append(opts, WithHashKey([]byte(c.HashKey)))
	}
	return opts
}
