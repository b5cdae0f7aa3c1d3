package errors

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "collector-pipeline", false},
		{"dots and underscores", "signals_v1.2", false},
		{"digit first", "3-layers", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"traversal", "a..b", true},
		{"slash", "a/b", true},
		{"leading dot", ".hidden", true},
		{"space", "two words", true},
		{"control char", "a\x01b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "diagrams/flow.yaml", false},
		{"valid nested", "docs/concepts/signals/traces.yaml", false},
		{"valid filename only", "README.md", false},
		{"valid with dots", "v1.2.3/bundle.toml", false},
		{"dots inside a segment", "collector..v2.svg", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"path traversal trailing", "signals/..", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	allowed := []string{"svg", "json", "png"}

	tests := []struct {
		name    string
		input   []string
		wantErr bool
	}{
		{"none", nil, false},
		{"subset", []string{"svg", "png"}, false},
		{"unknown", []string{"svg", "gif"}, true},
		{"case sensitive", []string{"SVG"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.input, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("ValidateFormats(%v) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidKind,
		ErrCodeInvalidPath,
		ErrCodeInvalidConfig,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeRuntimeUnavailable,
		ErrCodeExecutionFailed,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
