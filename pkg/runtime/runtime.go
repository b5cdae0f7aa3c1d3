package runtime

import (
	"context"
	"time"
)

// NoOutput is shown for a successful snippet that printed nothing.
const NoOutput = "(No output)"

// Result is the captured outcome of one snippet.
type Result struct {
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr,omitempty"`
	Failed   bool          `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// Output returns the text to display: the error stream for a failed
// snippet, otherwise stdout or [NoOutput].
func (r Result) Output() string {
	if r.Failed {
		return r.Stderr
	}
	if r.Stdout == "" {
		return NoOutput
	}
	return r.Stdout
}

// Runtime executes snippets.
//
// Exec reports a snippet that raised as a Result with Failed set. The
// returned error is reserved for infrastructure failures (the interpreter
// could not be started, the context expired).
type Runtime interface {
	Name() string
	Exec(ctx context.Context, code string) (Result, error)
}

// AcquireFunc produces a ready Runtime.
type AcquireFunc func(ctx context.Context) (Runtime, error)
