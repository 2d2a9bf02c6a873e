// Package config resolves the tool's runtime settings: compiled-in defaults
// overridden by CVFORGE_* environment variables. There is no persisted
// configuration; the tool keeps no state between runs.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cvforge/cvforge/internal/filter"
)

type Config struct {
	Server ServerConfig
	Build  BuildConfig
}

type ServerConfig struct {
	Port int
}

type BuildConfig struct {
	Mode string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4400,
		},
		Build: BuildConfig{
			Mode: string(filter.ModeAny),
		},
	}
}

type keyType int

const (
	kString keyType = iota
	kInt
)

type keySpec struct {
	key      string
	typ      keyType
	env      string
	apply    func(cfg *Config, v any)
	extract  func(cfg Config) any
	validate func(v any) error
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "CVFORGE_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
		validate: func(v any) error {
			if p := v.(int); p < 1 || p > 65535 {
				return fmt.Errorf("port %d out of range", p)
			}
			return nil
		},
	},
	{
		key: "build.mode", typ: kString, env: "CVFORGE_BUILD_MODE",
		apply:   func(cfg *Config, v any) { cfg.Build.Mode = v.(string) },
		extract: func(cfg Config) any { return cfg.Build.Mode },
		validate: func(v any) error {
			_, err := filter.ParseMode(v.(string))
			return err
		},
	},
}

// Load resolves the effective configuration. Environment variables override
// defaults; an unparseable or invalid override is an error rather than a
// silent fallback.
func Load() (Config, error) {
	cfg := defaults()

	for _, s := range specs {
		raw, ok := os.LookupEnv(s.env)
		if !ok || raw == "" {
			continue
		}

		var v any
		switch s.typ {
		case kString:
			v = raw
		case kInt:
			i, err := strconv.Atoi(raw)
			if err != nil {
				return Config{}, fmt.Errorf("%s: invalid integer %q", s.env, raw)
			}
			v = i
		}

		if s.validate != nil {
			if err := s.validate(v); err != nil {
				return Config{}, fmt.Errorf("%s: %w", s.env, err)
			}
		}
		s.apply(&cfg, v)
	}

	return cfg, nil
}

// KeyInfo describes a config key for display purposes.
type KeyInfo struct {
	Key    string
	EnvVar string
	Value  string
}

// ShowAll returns all config key/value pairs from the given config.
func ShowAll(cfg Config) []KeyInfo {
	result := make([]KeyInfo, 0, len(specs))
	for _, s := range specs {
		result = append(result, KeyInfo{
			Key:    s.key,
			EnvVar: s.env,
			Value:  fmt.Sprintf("%v", s.extract(cfg)),
		})
	}
	return result
}
