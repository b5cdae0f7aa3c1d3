package runtime

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/otelviz/pkg/errors"
)

type fakeRuntime struct {
	id  int
	res Result
	err error
}

func (f *fakeRuntime) Name() string { return "fake" }

func (f *fakeRuntime) Exec(context.Context, string) (Result, error) {
	return f.res, f.err
}

// countingAcquire returns a fresh *fakeRuntime per call and counts calls.
func countingAcquire(calls *atomic.Int32) AcquireFunc {
	return func(context.Context) (Runtime, error) {
		n := calls.Add(1)
		return &fakeRuntime{id: int(n)}, nil
	}
}

func TestLoaderConcurrentCallersShareHandle(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{}, 1)

	l := NewLoader("fake", func(ctx context.Context) (Runtime, error) {
		calls.Add(1)
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return &fakeRuntime{id: 1}, nil
	})

	const n = 16
	results := make([]Runtime, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rt, err := l.Load(context.Background())
			if err != nil {
				t.Errorf("Load: %v", err)
				return
			}
			results[i] = rt
		}(i)
	}

	<-started
	if l.Ready() {
		t.Error("Ready() = true before acquisition resolved")
	}
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("acquire called %d times, want 1", got)
	}
	for i, rt := range results {
		if rt != results[0] {
			t.Errorf("caller %d got a different handle", i)
		}
	}
	if !l.Ready() {
		t.Error("Ready() = false after acquisition")
	}
}

func TestLoaderMemoizesResolvedHandle(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader("fake", countingAcquire(&calls))

	first, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first != second {
		t.Error("second Load returned a different handle")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("acquire called %d times, want 1", got)
	}
}

func TestLoaderRetriesAfterFailure(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader("fake", func(context.Context) (Runtime, error) {
		if calls.Add(1) == 1 {
			return nil, stderrors.New("network unreachable")
		}
		return &fakeRuntime{id: 2}, nil
	})

	_, err := l.Load(context.Background())
	if err == nil {
		t.Fatal("first Load should fail")
	}
	if !errors.Is(err, errors.ErrCodeRuntimeUnavailable) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeRuntimeUnavailable)
	}
	if l.Ready() {
		t.Error("failed acquisition must not be memoized")
	}

	rt, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if rt.(*fakeRuntime).id != 2 {
		t.Errorf("got handle %d, want 2", rt.(*fakeRuntime).id)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("acquire called %d times, want 2", got)
	}
}

func TestLoaderKeepsCodedErrors(t *testing.T) {
	l := NewLoader("fake", func(context.Context) (Runtime, error) {
		return nil, errors.New(errors.ErrCodeTimeout, "slow")
	})
	_, err := l.Load(context.Background())
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("error code = %q, want TIMEOUT", errors.GetCode(err))
	}
}

func TestLoaderNilRuntimeIsError(t *testing.T) {
	l := NewLoader("fake", func(context.Context) (Runtime, error) { return nil, nil })
	if _, err := l.Load(context.Background()); err == nil {
		t.Error("nil runtime without error should fail")
	}
}

func TestLoaderWaiterCancellation(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})

	l := NewLoader("fake", func(ctx context.Context) (Runtime, error) {
		calls.Add(1)
		close(started)
		<-release
		if ctx.Err() != nil {
			t.Error("acquisition context was cancelled with the waiter")
		}
		return &fakeRuntime{id: 1}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := l.Load(ctx)
		errc <- err
	}()

	<-started
	cancel()
	if err := <-errc; !stderrors.Is(err, context.Canceled) {
		t.Errorf("cancelled waiter err = %v, want context.Canceled", err)
	}

	close(release)
	rt, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rt == nil {
		t.Fatal("nil runtime")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("acquire called %d times, want 1", got)
	}
}

func TestLoaderReset(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader("fake", countingAcquire(&calls))

	first, _ := l.Load(context.Background())
	l.Reset()
	if l.Ready() {
		t.Error("Ready() = true after Reset")
	}
	second, _ := l.Load(context.Background())

	if first == second {
		t.Error("Reset should force a fresh acquisition")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("acquire called %d times, want 2", got)
	}
}

func TestLoaderResetBeforeFlightStarts(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	l := NewLoader("fake", func(context.Context) (Runtime, error) {
		n := calls.Add(1)
		if n == 1 {
			close(started)
			<-release
		}
		return &fakeRuntime{id: int(n)}, nil
	})

	// The first caller reads the generation, then a Reset lands before its
	// flight begins.
	var once sync.Once
	l.testHookBeforeFlight = func() { once.Do(l.Reset) }

	stale := make(chan Runtime, 1)
	go func() {
		rt, _ := l.Load(context.Background())
		stale <- rt
	}()
	<-started

	fresh := make(chan Runtime, 1)
	go func() {
		rt, _ := l.Load(context.Background())
		fresh <- rt
	}()

	var current Runtime
	select {
	case current = <-fresh:
	case <-time.After(2 * time.Second):
		close(release)
		t.Fatal("a caller after Reset joined the acquisition started before it")
	}
	if got := current.(*fakeRuntime).id; got != 2 {
		t.Errorf("fresh caller got runtime %d, want 2", got)
	}
	if !l.Ready() {
		t.Error("the post-Reset acquisition should be memoized")
	}

	close(release)
	if got := (<-stale).(*fakeRuntime).id; got != 1 {
		t.Errorf("stale caller got runtime %d, want 1", got)
	}
	again, _ := l.Load(context.Background())
	if again != current {
		t.Error("the stale flight must not replace the memoized runtime")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("acquire called %d times, want 2", got)
	}
}

func TestLoaderExec(t *testing.T) {
	want := Result{Stdout: "hi\n"}
	l := NewLoader("fake", func(context.Context) (Runtime, error) {
		return &fakeRuntime{res: want}, nil
	})

	res, err := l.Exec(context.Background(), `print("hi")`)
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if res.Stdout != want.Stdout {
		t.Errorf("Stdout = %q, want %q", res.Stdout, want.Stdout)
	}
	if res.Duration <= 0 {
		t.Error("Duration should be filled in")
	}
}

func TestLoaderExecAcquireFailure(t *testing.T) {
	l := NewLoader("fake", func(context.Context) (Runtime, error) {
		return nil, stderrors.New("no interpreter")
	})
	if _, err := l.Exec(context.Background(), "1"); err == nil {
		t.Error("Exec should surface acquisition errors")
	}
}

func TestResultOutput(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"stdout", Result{Stdout: "42\n"}, "42\n"},
		{"empty", Result{}, NoOutput},
		{"failed", Result{Stdout: "partial", Stderr: "Traceback", Failed: true}, "Traceback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.Output(); got != tt.want {
				t.Errorf("Output() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultLoader(t *testing.T) {
	ResetDefault()
	defer ResetDefault()

	d := Default()
	if d == nil {
		t.Fatal("Default() returned nil")
	}
	if Default() != d {
		t.Error("Default() should be stable")
	}
	if d.Name() != "python" {
		t.Errorf("default runtime = %q, want python", d.Name())
	}

	custom := NewLoader("fake", func(context.Context) (Runtime, error) { return &fakeRuntime{}, nil })
	SetDefault(custom)
	if Default() != custom {
		t.Error("SetDefault should replace the default loader")
	}
	SetDefault(nil)
	if Default() != custom {
		t.Error("SetDefault(nil) should be ignored")
	}

	ResetDefault()
	if Default() == custom {
		t.Error("ResetDefault should discard the custom loader")
	}
}

func TestLoaderLoadAfterResolveIsFast(t *testing.T) {
	l := NewLoader("fake", func(context.Context) (Runtime, error) { return &fakeRuntime{}, nil })
	if _, err := l.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	time.Sleep(2 * time.Millisecond)
	// Memo hits do not consult the context.
	if _, err := l.Load(ctx); err != nil {
		t.Errorf("memoized Load with expired ctx: %v", err)
	}
}
