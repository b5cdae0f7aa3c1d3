package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/otelviz/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch backend := c.config().Cache.Backend; backend {
			case BackendNone, BackendMemory:
				printInfo("Nothing to clear (backend %s keeps no state between runs)", backend)
				return nil
			}

			cc, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				return fmt.Errorf("%T cannot be cleared", cc)
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %s cache", c.config().Cache.Backend)
			if fc, ok := cc.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached artifacts live",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			switch cfg.Cache.Backend {
			case BackendFile:
				dir := cfg.Cache.Dir
				if dir == "" {
					d, err := cache.DefaultDir()
					if err != nil {
						return fmt.Errorf("get cache dir: %w", err)
					}
					dir = d
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
			case BackendRedis:
				printKeyValue("backend", BackendRedis)
				printKeyValue("addr", cfg.Redis.Addr)
				printKeyValue("db", fmt.Sprint(cfg.Redis.DB))
			default:
				printKeyValue("backend", cfg.Cache.Backend)
			}
			return nil
		},
	}
}
