package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/papg/internal/server"
	"github.com/matzehuels/papg/pkg/cache"
	perrors "github.com/matzehuels/papg/pkg/errors"
	"github.com/matzehuels/papg/pkg/solver"
)

// Cache backends accepted in the config file.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// configFile is the name of the config file inside [configDir].
const configFile = "config.toml"

// Config holds the defaults read from the TOML config file:
//
//	strategy    = "recursive"
//	seed        = 42
//	lock_policy = "safe"
//
//	[cache]
//	backend    = "file"       # file | redis | none
//	ttl        = "168h"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr         = ":8080"
//	max_priority = 4096
type Config struct {
	Strategy   string       `toml:"strategy"`
	Seed       int64        `toml:"seed"`
	LockPolicy string       `toml:"lock_policy"`
	Cache      CacheConfig  `toml:"cache"`
	Server     ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the solution cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`

	// Namespace prefixes every key, separating deployments that share a
	// backend.
	Namespace string `toml:"namespace"`
}

// ServerConfig configures papg serve.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
	MaxVertices     int      `toml:"max_vertices"`
	MaxPriority     int      `toml:"max_priority"`
	MaxMeasureCells int64    `toml:"max_measure_cells"`
	Timeout         Duration `toml:"timeout"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Strategy:   string(solver.DefaultStrategy),
		LockPolicy: solver.LockSafe.String(),
		Cache: CacheConfig{
			Backend:   BackendFile,
			TTL:       Duration{cache.DefaultTTL},
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{
			Addr:            server.DefaultAddr,
			MaxBodyBytes:    server.DefaultMaxBodyBytes,
			MaxPriority:     server.DefaultMaxPriority,
			MaxMeasureCells: server.DefaultMaxMeasureCells,
		},
	}
}

// LoadConfig reads the config file at path over [DefaultConfig]. An empty
// path selects the default location, which may be absent; an explicit path
// must exist. Unknown keys and invalid values return INVALID_CONFIG.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return cfg, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return DefaultConfig(), nil
		}
		return cfg, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, perrors.New(perrors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks names and ranges.
func (c Config) Validate() error {
	if _, err := solver.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if _, err := solver.ParseLockPolicy(c.LockPolicy); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return perrors.New(perrors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Server.MaxVertices < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "server max_vertices must not be negative")
	}
	if c.Server.MaxPriority < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "server max_priority must not be negative")
	}
	if c.Server.MaxMeasureCells < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "server max_measure_cells must not be negative")
	}
	if c.Cache.TTL.Duration < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return nil
}
