package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/otelviz/pkg/cache"
	"github.com/matzehuels/otelviz/pkg/observability"
	"github.com/matzehuels/otelviz/pkg/pipeline"
)

const shutdownTimeout = 5 * time.Second

type serveOpts struct {
	addr    string
	dir     string
	noCache bool
	preload bool
}

// serveCommand creates the serve command for the preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered diagrams and run snippets over HTTP",
		Long: `Serve renders the descriptions in --dir on request and caches the
artifacts in memory (or Redis, with cache.backend=redis).

Routes:
  GET  /healthz                     liveness and runtime status
  GET  /metrics                     Prometheus metrics
  GET  /diagrams                    list diagrams and their URLs
  GET  /diagrams/{name}.{format}    render one diagram
  POST /render                      render a posted document
  POST /run                         execute a snippet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				opts.addr = c.config().Serve.Addr
			}
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from serve.addr)")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "directory of diagram descriptions")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.preload, "preload", false, "acquire the snippet runtime at startup")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	observability.NewPrometheusHooks(registry).Register()
	defer observability.Reset()

	cc, err := c.serveCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer cc.Close()

	loader := c.loader()
	if opts.preload {
		go func() {
			if _, err := loader.Load(ctx); err != nil {
				logger.Warn("snippet runtime unavailable", "error", err)
			}
		}()
	}

	s := &server{
		dir:      opts.dir,
		runner:   pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, c.config().Cache.Namespace), logger),
		loader:   loader,
		registry: registry,
		logger:   logger,
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	printSuccess("Serving %s", StyleLink.Render("http://"+opts.addr+"/diagrams"))
	printDetail("Directory: %s", opts.dir)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	printInfo("Server stopped")
	return nil
}

// serveCache keeps artifacts in memory unless Redis is configured; the file
// cache is meant for the CLI.
func (c *CLI) serveCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.config()
	switch {
	case noCache || cfg.Cache.Backend == BackendNone:
		return cache.NewNullCache(), nil
	case cfg.Cache.Backend == BackendRedis:
		return c.newCache(ctx, false)
	default:
		return cache.NewMemoryCache(cfg.Cache.Size, cfg.Cache.TTL), nil
	}
}
