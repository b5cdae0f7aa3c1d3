package runtime

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/matzehuels/otelviz/pkg/errors"
)

// DefaultPythonTimeout bounds a single snippet when Python.Timeout is zero.
const DefaultPythonTimeout = 30 * time.Second

// Python acquires a local Python interpreter.
type Python struct {
	// Path is the interpreter binary. Empty means python3, then python.
	Path string

	// Timeout bounds each Exec. Zero uses DefaultPythonTimeout.
	Timeout time.Duration
}

// NewPythonLoader returns a loader that acquires p.
func NewPythonLoader(p Python, opts ...LoaderOption) *Loader {
	return NewLoader("python", p.Acquire, opts...)
}

// Acquire locates the interpreter and checks that it starts.
func (p Python) Acquire(ctx context.Context) (Runtime, error) {
	candidates := []string{"python3", "python"}
	if p.Path != "" {
		candidates = []string{p.Path}
	}

	var path string
	for _, c := range candidates {
		if found, err := exec.LookPath(c); err == nil {
			path = found
			break
		}
	}
	if path == "" {
		return nil, errors.New(errors.ErrCodeRuntimeUnavailable,
			"python interpreter not found (tried %s)", strings.Join(candidates, ", "))
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRuntimeUnavailable, err, "probe %s", path)
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultPythonTimeout
	}
	return &pythonRuntime{
		path:    path,
		version: strings.TrimSpace(out.String()),
		timeout: timeout,
	}, nil
}

type pythonRuntime struct {
	path    string
	version string
	timeout time.Duration
}

func (r *pythonRuntime) Name() string { return r.version }

func (r *pythonRuntime) Exec(ctx context.Context, code string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// "-" reads the program from stdin; -u keeps output unbuffered.
	cmd := exec.CommandContext(ctx, r.path, "-u", "-")
	cmd.Stdin = strings.NewReader(code)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	switch cerr := ctx.Err(); {
	case stderrors.Is(cerr, context.DeadlineExceeded):
		return res, errors.Wrap(errors.ErrCodeTimeout, cerr, "snippet did not finish within %s", r.timeout)
	case cerr != nil:
		return res, cerr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !stderrors.As(err, &exitErr) {
			return res, errors.Wrap(errors.ErrCodeExecutionFailed, err, "run %s", r.path)
		}
		res.Failed = true
		if strings.TrimSpace(res.Stderr) == "" {
			res.Stderr = fmt.Sprintf("%s exited: %v", r.version, err)
		}
	}
	return res, nil
}
