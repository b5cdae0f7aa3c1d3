package diagram

import "testing"

func TestProcessSize(t *testing.T) {
	steps := make([]ProcessStep, 3)
	w, h := ProcessSize(ProcessSpec{Steps: steps})
	if w != 3*160+2*36+40 || h != 104 {
		t.Errorf("horizontal = %vx%v", w, h)
	}
	w, h = ProcessSize(ProcessSpec{Steps: steps, Direction: "vertical"})
	if w != 200 || h != 3*64+2*36+40 {
		t.Errorf("vertical = %vx%v", w, h)
	}
}

func TestProcessBadges(t *testing.T) {
	sc := Process(ProcessSpec{Steps: []ProcessStep{
		{Title: "Instrument", Description: "add the SDK"},
		{Title: "Export", Icon: "📤"},
		{Title: "Analyze"},
	}})

	steps := sc.Groups("step")
	if len(steps) != 3 {
		t.Fatalf("got %d steps, want 3", len(steps))
	}
	wantBadges := []string{"1", "📤", "3"}
	for i, g := range steps {
		texts := textsOf(g)
		if texts[0] != wantBadges[i] {
			t.Errorf("step %d badge = %q, want %q", i, texts[0], wantBadges[i])
		}
	}
	if got := textsOf(steps[0]); len(got) != 3 || got[2] != "add the SDK" {
		t.Errorf("step 0 texts = %v", got)
	}
	if got := len(sc.Groups("arrow")); got != 2 {
		t.Errorf("got %d connectors, want 2", got)
	}
}
