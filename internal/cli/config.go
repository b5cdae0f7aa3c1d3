package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/otelviz/pkg/cache"
	"github.com/matzehuels/otelviz/pkg/errors"
	"github.com/matzehuels/otelviz/pkg/pipeline"
	"github.com/matzehuels/otelviz/pkg/runtime"
)

// Cache backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// envPrefix scopes environment overrides, e.g. OTELVIZ_CACHE_BACKEND.
const envPrefix = "OTELVIZ"

// Config is the merged configuration: defaults, then the config file, then
// OTELVIZ_* environment variables. Command flags override it.
type Config struct {
	Cache   CacheConfig
	Redis   RedisConfig
	Runtime RuntimeConfig
	Serve   ServeConfig
	Render  RenderConfig
}

// CacheConfig selects and sizes the artifact cache.
type CacheConfig struct {
	Backend   string
	Dir       string        // file backend; empty means the user cache dir
	TTL       time.Duration // upper bound on memory cache entries
	Size      int           // memory cache entries
	Namespace string        // key scope, so several projects can share a cache
}

// RedisConfig is used when Cache.Backend is redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RuntimeConfig configures the snippet runtime.
type RuntimeConfig struct {
	Python  string
	Timeout time.Duration
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Addr string
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Formats []string
	Engine  string
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache.backend", BackendFile)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.ttl", cache.DefaultMemoryTTL)
	v.SetDefault("cache.size", cache.DefaultMemoryEntries)
	v.SetDefault("cache.namespace", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("runtime.python", "")
	v.SetDefault("runtime.timeout", runtime.DefaultPythonTimeout)
	v.SetDefault("serve.addr", "localhost:8080")
	v.SetDefault("render.formats", []string{pipeline.FormatSVG})
	v.SetDefault("render.engine", pipeline.EngineNative)
}

// LoadConfig reads path, or config.{yaml,toml,json} from the config
// directory when path is empty. A missing default file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Cache: CacheConfig{
			Backend:   strings.ToLower(v.GetString("cache.backend")),
			Dir:       v.GetString("cache.dir"),
			TTL:       v.GetDuration("cache.ttl"),
			Size:      v.GetInt("cache.size"),
			Namespace: v.GetString("cache.namespace"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Runtime: RuntimeConfig{
			Python:  v.GetString("runtime.python"),
			Timeout: v.GetDuration("runtime.timeout"),
		},
		Serve: ServeConfig{
			Addr: v.GetString("serve.addr"),
		},
		Render: RenderConfig{
			// Environment values arrive as one comma-separated string.
			Formats: splitList(v.GetStringSlice("render.formats")),
			Engine:  v.GetString("render.engine"),
		},
	}
}

// Validate checks every setting that can be wrong independently of a command.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendMemory, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid cache.backend: %q (must be one of: file, memory, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.Cache.Size <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.size must be positive, got %d", c.Cache.Size)
	}
	if c.Runtime.Timeout <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "runtime.timeout must be positive, got %s", c.Runtime.Timeout)
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.formats")
	}
	if err := pipeline.ValidateEngine(c.Render.Engine); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.engine")
	}
	return nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/otelviz/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// configHint is the default config location shown in --help.
func configHint() string {
	return filepath.Join("$XDG_CONFIG_HOME", appName, "config.yaml")
}
