package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/otelviz/pkg/cache"
	"github.com/matzehuels/otelviz/pkg/diagram"
	"github.com/matzehuels/otelviz/pkg/errors"
	"github.com/matzehuels/otelviz/pkg/observability"
	"github.com/matzehuels/otelviz/pkg/scene"
)

// Runner renders documents with artifact caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Render produces every requested format for doc, serving cached artifacts
// where possible.
func (r *Runner) Render(ctx context.Context, doc diagram.Document, opts Options) (res *Result, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, doc.Name, opts.Formats)
	defer func() {
		hooks.OnRenderComplete(ctx, doc.Name, opts.Formats, time.Since(start), err)
	}()

	docHash, err := cache.HashJSON(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash %s", doc.Name)
	}

	res = &Result{
		Name:      doc.Name,
		Kind:      doc.Kind,
		DocHash:   docHash,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}

	var formats []string
	for _, f := range opts.Formats {
		if Applies(doc, f) {
			formats = append(formats, f)
		} else {
			res.Skipped = append(res.Skipped, f)
		}
	}
	if len(formats) == 0 {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"none of the formats %v apply to %s diagram %q", opts.Formats, doc.Kind, doc.Name)
	}
	if len(res.Skipped) > 0 {
		opts.Logger.Warn("skipping formats", "diagram", doc.Name, "kind", doc.Kind, "formats", res.Skipped)
	}

	var misses []string
	for _, f := range formats {
		if data, ok := r.cached(ctx, doc, f, docHash, opts); ok {
			res.Artifacts[f] = data
			res.CacheInfo.Hits++
			continue
		}
		misses = append(misses, f)
	}
	res.CacheInfo.Misses = len(misses)
	res.CacheInfo.RenderHit = len(misses) == 0

	if len(misses) == 0 {
		opts.Logger.Debug("served from cache", "diagram", doc.Name, "formats", formats)
		return res, nil
	}

	layout := r.layoutOnce(ctx, doc, res)

	renderStart := time.Now()
	for _, f := range misses {
		data, err := renderFormat(ctx, doc, f, opts, layout)
		if err != nil {
			return nil, fmt.Errorf("render %s %s: %w", doc.Name, f, err)
		}
		res.Artifacts[f] = data
		r.store(ctx, doc, f, docHash, opts, data)
	}
	res.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered diagram",
		"diagram", doc.Name,
		"kind", doc.Kind,
		"formats", misses,
		"cached", res.CacheInfo.Hits,
		"duration", res.Stats.LayoutTime+res.Stats.RenderTime)

	return res, nil
}

// RenderAll renders docs concurrently. Layout is re-entrant and documents
// share no state, so each gets its own goroutine, bounded by GOMAXPROCS.
// The first error cancels the remaining renders.
func (r *Runner) RenderAll(ctx context.Context, docs []diagram.Document, opts Options) ([]*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	results := make([]*Result, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, doc := range docs {
		g.Go(func() error {
			res, err := r.Render(ctx, doc, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// layoutOnce returns a sceneFunc that builds the scene on first call and
// records layout stats on res.
func (r *Runner) layoutOnce(ctx context.Context, doc diagram.Document, res *Result) sceneFunc {
	var (
		once sync.Once
		sc   scene.Scene
		err  error
	)
	return func() (scene.Scene, error) {
		once.Do(func() {
			hooks := observability.Pipeline()
			hooks.OnLayoutStart(ctx, string(doc.Kind))
			start := time.Now()

			sc, err = doc.Scene()

			res.Stats.LayoutTime = time.Since(start)
			res.Stats.ShapeCount = len(sc.Shapes)
			res.Stats.Width, res.Stats.Height = sc.Width, sc.Height
			hooks.OnLayoutComplete(ctx, string(doc.Kind), len(sc.Shapes), res.Stats.LayoutTime, err)
		})
		return sc, err
	}
}

func (r *Runner) cached(ctx context.Context, doc diagram.Document, format, docHash string, opts Options) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(doc, format))
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, format)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, format)
	return data, true
}

func (r *Runner) store(ctx context.Context, doc diagram.Document, format, docHash string, opts Options, data []byte) {
	ttl := cache.TTLArtifact
	if format == FormatJSON {
		ttl = cache.TTLScene
	}
	key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(doc, format))
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, format, len(data))
}
