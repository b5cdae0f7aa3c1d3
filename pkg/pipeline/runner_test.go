package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/otelviz/pkg/cache"
	"github.com/matzehuels/otelviz/pkg/diagram"
	"github.com/matzehuels/otelviz/pkg/errors"
	"github.com/matzehuels/otelviz/pkg/observability"
	"github.com/matzehuels/otelviz/pkg/widget"
)

func flowDoc() diagram.Document {
	return diagram.Document{
		Name:  "collector",
		Kind:  diagram.KindFlow,
		Title: "Collector pipeline",
		Flow:  &diagram.FlowSpec{Steps: []string{"Receive", "Process", "Export"}},
	}
}

func compositeDoc() diagram.Document {
	return diagram.Document{
		Name: "widgets",
		Kind: diagram.KindComposite,
		Composite: &widget.Node{
			Type:     widget.NodeRow,
			Children: []widget.Node{{Type: widget.NodeBox, Label: "SDK"}},
		},
	}
}

func TestRunnerRenderSVG(t *testing.T) {
	r := NewRunner(cache.NewMemoryCache(16, time.Hour), nil, nil)

	res, err := r.Render(context.Background(), flowDoc(), Options{Formats: []string{"svg", "json"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	svg := string(res.Artifacts["svg"])
	if !strings.HasPrefix(svg, "<svg") {
		t.Errorf("svg artifact does not start with <svg: %.40q", svg)
	}
	if !strings.Contains(svg, "<title>Collector pipeline</title>") {
		t.Error("svg should carry the document title")
	}
	if !json.Valid(res.Artifacts["json"]) {
		t.Error("json artifact is not valid JSON")
	}

	w, h := diagram.FlowSize(3, false)
	if res.Stats.Width != w || res.Stats.Height != h {
		t.Errorf("stats size = %vx%v, want %vx%v", res.Stats.Width, res.Stats.Height, w, h)
	}
	if res.Stats.ShapeCount == 0 {
		t.Error("ShapeCount should be recorded")
	}
	if res.CacheInfo.Misses != 2 || res.CacheInfo.Hits != 0 || res.CacheInfo.RenderHit {
		t.Errorf("first render cache info = %+v", res.CacheInfo)
	}
	if len(res.DocHash) != 64 {
		t.Errorf("DocHash = %q", res.DocHash)
	}
}

func TestRunnerRenderUsesCache(t *testing.T) {
	r := NewRunner(cache.NewMemoryCache(16, time.Hour), nil, nil)
	ctx := context.Background()
	opts := Options{Formats: []string{"svg"}}

	first, err := r.Render(ctx, flowDoc(), opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Render(ctx, flowDoc(), opts)
	if err != nil {
		t.Fatal(err)
	}

	if !second.CacheInfo.RenderHit || second.CacheInfo.Hits != 1 {
		t.Errorf("second render should hit cache: %+v", second.CacheInfo)
	}
	if string(first.Artifacts["svg"]) != string(second.Artifacts["svg"]) {
		t.Error("cached artifact differs from fresh render")
	}
	if second.Stats.ShapeCount != 0 {
		t.Error("fully cached render should not lay out")
	}

	// A changed document misses.
	doc := flowDoc()
	doc.Flow.Steps = append(doc.Flow.Steps, "Store")
	third, _ := r.Render(ctx, doc, opts)
	if third.CacheInfo.RenderHit {
		t.Error("changed document should miss the cache")
	}

	// Refresh bypasses the cache.
	fourth, _ := r.Render(ctx, flowDoc(), Options{Formats: []string{"svg"}, Refresh: true})
	if fourth.CacheInfo.Hits != 0 {
		t.Error("Refresh should ignore cached artifacts")
	}
}

func TestRunnerRenderOptionsChangeKey(t *testing.T) {
	r := NewRunner(cache.NewMemoryCache(16, time.Hour), nil, nil)
	ctx := context.Background()

	plain, _ := r.Render(ctx, flowDoc(), Options{})
	responsive, _ := r.Render(ctx, flowDoc(), Options{Responsive: true})

	if responsive.CacheInfo.RenderHit {
		t.Error("responsive render should not reuse the fixed-size artifact")
	}
	if string(plain.Artifacts["svg"]) == string(responsive.Artifacts["svg"]) {
		t.Error("responsive SVG should differ")
	}
	if !strings.Contains(string(responsive.Artifacts["svg"]), "width:100%") {
		t.Error("responsive SVG should use fluid width")
	}
}

func TestRunnerRenderComposite(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	res, err := r.Render(ctx, compositeDoc(), Options{Formats: []string{"svg", "html"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(res.Artifacts["html"]), "SDK") {
		t.Error("html should contain the widget markup")
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != "svg" {
		t.Errorf("Skipped = %v, want [svg]", res.Skipped)
	}

	_, err = r.Render(ctx, compositeDoc(), Options{Formats: []string{"svg"}})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("composite svg-only code = %q, want UNSUPPORTED", errors.GetCode(err))
	}
}

func TestRunnerRenderDOT(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	res, err := r.Render(context.Background(), flowDoc(), Options{Formats: []string{"dot"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	dot := string(res.Artifacts["dot"])
	if !strings.HasPrefix(dot, "digraph G {") || !strings.Contains(dot, `"step0" -> "step1"`) {
		t.Errorf("unexpected DOT:\n%s", dot)
	}
}

func TestRunnerRenderInvalidDocument(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Render(context.Background(), diagram.Document{Name: "x", Kind: "spiral"}, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("code = %q, want INVALID_KIND", errors.GetCode(err))
	}
}

func TestRunnerRenderAll(t *testing.T) {
	r := NewRunner(cache.NewMemoryCache(64, time.Hour), nil, nil)

	docs := []diagram.Document{
		flowDoc(),
		compositeDoc(),
		{Name: "tree", Kind: diagram.KindTree, Tree: &diagram.TreeSpec{Root: diagram.TreeNode{Label: "root"}}},
		{Name: "signals", Kind: diagram.KindSignal, Signal: &diagram.SignalSpec{From: "App", To: "Backend"}},
	}
	results, err := r.RenderAll(context.Background(), docs, Options{Formats: []string{"svg", "html"}})
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if len(results) != len(docs) {
		t.Fatalf("got %d results, want %d", len(results), len(docs))
	}
	for i, res := range results {
		if res.Name != docs[i].Name {
			t.Errorf("results[%d] = %s, want input order", i, res.Name)
		}
		if len(res.Artifacts["html"]) == 0 {
			t.Errorf("%s: missing html", res.Name)
		}
	}
}

func TestRunnerRenderAllStopsOnError(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	docs := []diagram.Document{flowDoc(), {Name: "bad", Kind: "spiral"}}
	if _, err := r.RenderAll(context.Background(), docs, Options{}); err == nil {
		t.Error("RenderAll should surface the failing document")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu      sync.Mutex
	layouts []string
	renders int
	hits    int
	misses  int
	sets    int
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, kind string, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts = append(h.layouts, kind)
}

func (h *recordingHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders++
}

func (h *recordingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *recordingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *recordingHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets++
}

func TestRunnerFiresHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	r := NewRunner(cache.NewMemoryCache(16, time.Hour), nil, nil)
	ctx := context.Background()
	opts := Options{Formats: []string{"svg", "json"}}

	_, _ = r.Render(ctx, flowDoc(), opts)
	_, _ = r.Render(ctx, flowDoc(), opts)

	if len(hooks.layouts) != 1 || hooks.layouts[0] != "flow" {
		t.Errorf("layouts = %v, want one flow layout", hooks.layouts)
	}
	if hooks.renders != 2 {
		t.Errorf("renders = %d, want 2", hooks.renders)
	}
	if hooks.misses != 2 || hooks.sets != 2 || hooks.hits != 2 {
		t.Errorf("cache events: misses %d sets %d hits %d, want 2/2/2", hooks.misses, hooks.sets, hooks.hits)
	}
}
