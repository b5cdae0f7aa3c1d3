package runtime

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/otelviz/pkg/errors"
)

func requirePython(t *testing.T) Runtime {
	t.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		if _, err := exec.LookPath("python"); err != nil {
			t.Skip("python not installed")
		}
	}
	rt, err := Python{Timeout: 10 * time.Second}.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	return rt
}

func TestPythonMissingInterpreter(t *testing.T) {
	_, err := Python{Path: "definitely-not-a-python-binary"}.Acquire(context.Background())
	if !errors.Is(err, errors.ErrCodeRuntimeUnavailable) {
		t.Errorf("error code = %q, want RUNTIME_UNAVAILABLE", errors.GetCode(err))
	}
}

func TestPythonExec(t *testing.T) {
	rt := requirePython(t)
	if !strings.HasPrefix(rt.Name(), "Python") {
		t.Errorf("Name() = %q, want version string", rt.Name())
	}

	tests := []struct {
		name       string
		code       string
		wantFailed bool
		wantOut    string
	}{
		{"print", "print('hello')", false, "hello\n"},
		{"silent", "x = 1", false, NoOutput},
		{"raise", "raise ValueError('boom')", true, "ValueError: boom"},
		{"exit without stderr", "import sys; sys.exit(3)", true, "exited"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := rt.Exec(context.Background(), tt.code)
			if err != nil {
				t.Fatalf("Exec: %v", err)
			}
			if res.Failed != tt.wantFailed {
				t.Errorf("Failed = %v, want %v (stderr %q)", res.Failed, tt.wantFailed, res.Stderr)
			}
			if !strings.Contains(res.Output(), tt.wantOut) {
				t.Errorf("Output() = %q, want it to contain %q", res.Output(), tt.wantOut)
			}
		})
	}
}

func TestPythonExecTimeout(t *testing.T) {
	requirePython(t)
	rt, err := Python{Timeout: 200 * time.Millisecond}.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	_, err = rt.Exec(context.Background(), "import time; time.sleep(5)")
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("error code = %q, want TIMEOUT", errors.GetCode(err))
	}
}
