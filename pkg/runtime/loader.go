package runtime

import (
	"context"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/otelviz/pkg/errors"
	"github.com/matzehuels/otelviz/pkg/observability"
)

// flightKey scopes in-flight acquisitions to a generation, so callers that
// arrive after a Reset never join a flight whose result will not be kept.
func flightKey(gen uint64) string {
	return "acquire-" + strconv.FormatUint(gen, 10)
}

// Loader memoizes runtime acquisition. The zero value is not usable; use
// [NewLoader].
type Loader struct {
	name    string
	acquire AcquireFunc
	logger  *log.Logger

	group singleflight.Group

	mu  sync.Mutex
	rt  Runtime
	gen uint64 // bumped by Reset so stale flights do not repopulate the memo

	testHookBeforeFlight func() // nil outside tests
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for acquisition events.
func WithLogger(l *log.Logger) LoaderOption {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// NewLoader returns a loader that acquires through fn. name labels log
// lines and metrics.
func NewLoader(name string, fn AcquireFunc, opts ...LoaderOption) *Loader {
	l := &Loader{
		name:    name,
		acquire: fn,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name returns the loader's runtime label.
func (l *Loader) Name() string { return l.name }

// Ready reports whether a runtime has been acquired.
func (l *Loader) Ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rt != nil
}

// Load returns the memoized runtime, acquiring it if needed.
func (l *Loader) Load(ctx context.Context) (Runtime, error) {
	l.mu.Lock()
	if l.rt != nil {
		rt := l.rt
		l.mu.Unlock()
		return rt, nil
	}
	gen := l.gen
	l.mu.Unlock()

	if l.testHookBeforeFlight != nil {
		l.testHookBeforeFlight()
	}

	// The acquisition outlives any single waiter.
	actx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(flightKey(gen), func() (any, error) {
		return l.run(actx, gen)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(Runtime), nil
	}
}

func (l *Loader) run(ctx context.Context, gen uint64) (Runtime, error) {
	// A flight that finished between the memo check and DoChan already
	// stored its runtime.
	l.mu.Lock()
	if l.rt != nil && l.gen == gen {
		rt := l.rt
		l.mu.Unlock()
		return rt, nil
	}
	l.mu.Unlock()

	hooks := observability.Runtime()
	hooks.OnAcquireStart(ctx, l.name)
	l.logger.Debug("acquiring runtime", "runtime", l.name)

	start := time.Now()
	rt, err := l.acquire(ctx)
	if err == nil && rt == nil {
		err = errors.New(errors.ErrCodeInternal, "acquire %s: no runtime returned", l.name)
	}
	hooks.OnAcquireComplete(ctx, l.name, time.Since(start), err)

	if err != nil {
		l.logger.Warn("runtime acquisition failed", "runtime", l.name, "error", err)
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeRuntimeUnavailable, err, "acquire %s", l.name)
		}
		return nil, err
	}

	l.mu.Lock()
	if l.gen == gen {
		l.rt = rt
	}
	l.mu.Unlock()

	l.logger.Info("runtime ready", "runtime", l.name, "duration", time.Since(start))
	return rt, nil
}

// Exec acquires the runtime if needed and runs code.
func (l *Loader) Exec(ctx context.Context, code string) (Result, error) {
	rt, err := l.Load(ctx)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	res, err := rt.Exec(ctx, code)
	if res.Duration == 0 {
		res.Duration = time.Since(start)
	}
	observability.Runtime().OnExec(ctx, l.name, res.Failed, res.Duration, err)
	return res, err
}

// Reset drops the memoized runtime. An acquisition already in flight still
// completes for its waiters but is not cached.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rt = nil
	l.gen++
}

// =============================================================================
// Process-wide loader
// =============================================================================

var (
	defaultMu     sync.RWMutex
	defaultLoader *Loader
)

// Default returns the process-wide loader, creating a Python loader on
// first use.
func Default() *Loader {
	defaultMu.RLock()
	l := defaultLoader
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLoader == nil {
		defaultLoader = NewPythonLoader(Python{})
	}
	return defaultLoader
}

// SetDefault replaces the process-wide loader. nil is ignored.
func SetDefault(l *Loader) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if l != nil {
		defaultLoader = l
	}
}

// ResetDefault discards the process-wide loader; the next Default call
// builds a fresh one.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLoader = nil
}
