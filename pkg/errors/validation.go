package errors

import (
	"path"
	"regexp"
	"strings"
	"unicode"
)

// nameRegex matches diagram names usable as output file stems and URL segments.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateName validates a diagram name for safety.
// Names become file stems under the output directory and path segments of the
// preview server, so they must not carry separators or traversal sequences.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 128 characters
//   - No control characters
//   - No ".." sequences
//   - Only letters, digits, '.', '_' and '-', starting with a letter or digit
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "diagram name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "diagram name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "diagram name contains invalid control characters")
		}
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "diagram name cannot contain %q", "..")
	}

	if !nameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid diagram name: %q", name)
	}

	return nil
}

// maxPathLength bounds paths taken from requests.
const maxPathLength = 500

// ValidatePath checks a request-supplied path before it is resolved under a
// served directory. The path must be slash-separated, relative and free of
// ".." segments, so it cannot name anything outside that directory.
func ValidatePath(p string) error {
	switch {
	case p == "":
		return New(ErrCodeInvalidPath, "path cannot be empty")
	case len(p) > maxPathLength:
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	case strings.ContainsFunc(p, unicode.IsControl):
		return New(ErrCodeInvalidPath, "path contains control characters")
	case strings.ContainsRune(p, '\\'):
		return New(ErrCodeInvalidPath, "path must use forward slashes: %q", p)
	case path.IsAbs(p):
		return New(ErrCodeInvalidPath, "path must be relative: %q", p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path escapes the served directory: %q", p)
		}
	}
	return nil
}

// ValidateFormats checks every requested format against the allowed set.
// Matching is case-sensitive; callers lower-case user input first.
func ValidateFormats(formats []string, allowed []string) error {
	set := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		set[f] = true
	}
	for _, f := range formats {
		if !set[f] {
			return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", f, strings.Join(allowed, ", "))
		}
	}
	return nil
}
