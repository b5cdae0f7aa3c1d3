// Package cli implements the otelviz command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/otelviz/pkg/buildinfo"
	"github.com/matzehuels/otelviz/pkg/cache"
	"github.com/matzehuels/otelviz/pkg/pipeline"
	"github.com/matzehuels/otelviz/pkg/runtime"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "otelviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config

	configFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "otelviz renders observability diagrams and runs guide snippets",
		Long:         `otelviz turns small declarative diagram descriptions into laid-out SVG for documentation pages, and runs the code snippets that accompany them.`,
		Version:      buildinfo.Current(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configFile)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default "+configHint()+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.playgroundCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config returns the loaded configuration, or the defaults when no command
// hook has run yet.
func (c *CLI) config() *Config {
	if c.Config == nil {
		c.Config = DefaultConfig()
	}
	return c.Config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, c.config().Cache.Namespace)
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache opens the configured artifact cache. A file cache whose
// directory cannot be determined degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.config()
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch cfg.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendMemory:
		return cache.NewMemoryCache(cfg.Cache.Size, cfg.Cache.TTL), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   appName + ":",
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			d, err := cache.DefaultDir()
			if err != nil {
				c.Logger.Warn("no cache directory, caching disabled", "error", err)
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}

// loader installs a snippet runtime built from the config as the
// process-wide default and returns it.
func (c *CLI) loader() *runtime.Loader {
	cfg := c.config()
	runtime.SetDefault(runtime.NewPythonLoader(runtime.Python{
		Path:    cfg.Runtime.Python,
		Timeout: cfg.Runtime.Timeout,
	}, runtime.WithLogger(c.Logger)))
	return runtime.Default()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return splitList([]string{s})
}

// splitList flattens comma-separated entries and drops blanks.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
