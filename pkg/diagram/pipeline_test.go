package diagram

import (
	"testing"

	"github.com/matzehuels/otelviz/pkg/palette"
)

func TestPipelinePaletteCycles(t *testing.T) {
	stages := make([]Stage, 7)
	for i := range stages {
		stages[i].Label = "stage"
	}
	stages[3].Color = "#000000"

	sc := Pipeline(PipelineSpec{Stages: stages})
	groups := sc.Groups("stage")
	if len(groups) != len(stages) {
		t.Fatalf("got %d stages, want %d", len(groups), len(stages))
	}
	for i, g := range groups {
		want := palette.Stages[i%len(palette.Stages)]
		if i == 3 {
			want = "#000000"
		}
		if got := rectOf(g).Fill; got != want {
			t.Errorf("stage %d fill = %q, want %q", i, got, want)
		}
	}
}

func TestPipelineSize(t *testing.T) {
	tests := []struct {
		name  string
		spec  PipelineSpec
		wantW float64
		wantH float64
	}{
		{
			name:  "three stages",
			spec:  PipelineSpec{Stages: []Stage{{Label: "a"}, {Label: "b"}, {Label: "c"}}},
			wantW: 580,
			wantH: 140,
		},
		{
			name:  "with title",
			spec:  PipelineSpec{Stages: []Stage{{Label: "a"}}, Title: "Collector"},
			wantW: 200,
			wantH: 170,
		},
		{
			name:  "tallest stage wins",
			spec:  PipelineSpec{Stages: []Stage{{Label: "a"}, {Label: "b", Items: []string{"x", "y", "z"}}}},
			wantW: 390,
			wantH: 188,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := PipelineSize(tt.spec)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("PipelineSize() = %vx%v, want %vx%v", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPipelineItemsAndTitle(t *testing.T) {
	sc := Pipeline(PipelineSpec{
		Title:  "Collector pipeline",
		Stages: []Stage{{Label: "Receive", Items: []string{"otlp", "jaeger"}}, {Label: "Export"}},
	})
	groups := sc.Groups("stage")
	texts := textsOf(groups[0])
	want := []string{"Receive", "• otlp", "• jaeger"}
	if len(texts) != len(want) {
		t.Fatalf("texts = %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("text %d = %q, want %q", i, texts[i], want[i])
		}
	}
	if got := rectOf(groups[0]).Y; got != StagePadding+titleOffset {
		t.Errorf("stage y = %v, want %v", got, StagePadding+titleOffset)
	}
	if got := len(linesOf(groups[1])); got != 0 {
		t.Errorf("last stage has %d arrow lines, want 0", got)
	}
}
