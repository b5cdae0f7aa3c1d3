package sink

import (
	"strings"
	"testing"
)

func TestRenderHTML(t *testing.T) {
	page := string(RenderHTML("Signals & Collectors", "<svg></svg>"))

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Signals &amp; Collectors</title>",
		"<svg></svg>",
		`class="diagram-container"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}
