// Package observability provides hooks for metrics and logging.
//
// Library packages emit events through the hook interfaces defined here and
// never import a metrics backend directly. The binary registers concrete
// implementations at startup (see [NewPrometheusHooks]); everything else
// falls back to no-op hooks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    hooks := observability.NewPrometheusHooks(registry)
//	    observability.SetPipelineHooks(hooks)
//	    observability.SetCacheHooks(hooks)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLayoutStart(ctx, kind)
//	// ... build the scene ...
//	observability.Pipeline().OnLayoutComplete(ctx, kind, shapes, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the diagram pipeline.
type PipelineHooks interface {
	// Layout events
	OnLayoutStart(ctx context.Context, kind string)
	OnLayoutComplete(ctx context.Context, kind string, shapeCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, name string, formats []string)
	OnRenderComplete(ctx context.Context, name string, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Runtime Hooks
// =============================================================================

// RuntimeHooks receives events from the snippet runtime.
type RuntimeHooks interface {
	// OnAcquireStart fires once per acquisition, not once per waiter.
	OnAcquireStart(ctx context.Context, runtime string)
	OnAcquireComplete(ctx context.Context, runtime string, duration time.Duration, err error)

	// OnExec records a finished snippet. failed is true when the snippet
	// itself raised; err is set only for infrastructure failures.
	OnExec(ctx context.Context, runtime string, failed bool, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the preview server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)

	// OnError records a handler error.
	OnError(ctx context.Context, method, route string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, string) {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, []string) {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopRuntimeHooks is a no-op implementation of RuntimeHooks.
type NoopRuntimeHooks struct{}

func (NoopRuntimeHooks) OnAcquireStart(context.Context, string)                          {}
func (NoopRuntimeHooks) OnAcquireComplete(context.Context, string, time.Duration, error) {}
func (NoopRuntimeHooks) OnExec(context.Context, string, bool, time.Duration, error)      {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	runtimeHooks  RuntimeHooks  = NoopRuntimeHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetRuntimeHooks registers custom runtime hooks.
func SetRuntimeHooks(h RuntimeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		runtimeHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Runtime returns the registered runtime hooks.
func Runtime() RuntimeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return runtimeHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	runtimeHooks = NoopRuntimeHooks{}
	httpHooks = NoopHTTPHooks{}
}
