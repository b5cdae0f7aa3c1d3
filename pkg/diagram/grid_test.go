package diagram

import (
	"testing"

	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/scene"
)

func TestCardsGrid(t *testing.T) {
	cards := []Card{
		{Title: "Traces", Icon: "🔍", Description: "requests", Items: []string{"spans", "links"}},
		{Title: "Metrics"},
		{Title: "Logs"},
		{Title: "Baggage", Color: "pink"},
	}

	tests := []struct {
		columns int
		wantW   float64
		rows    int
	}{
		{0, 3*200 + 2*16 + 40, 2},
		{2, 2*200 + 16 + 40, 2},
		{4, 4*200 + 3*16 + 40, 1},
	}
	for _, tt := range tests {
		spec := CardGridSpec{Cards: cards, Columns: tt.columns}
		sc := Cards(spec)
		if sc.Width != tt.wantW {
			t.Errorf("columns=%d: width = %v, want %v", tt.columns, sc.Width, tt.wantW)
		}
		if got := len(spec.rowHeights()); got != tt.rows {
			t.Errorf("columns=%d: rows = %d, want %d", tt.columns, got, tt.rows)
		}
		if got := len(sc.Groups("card")); got != len(cards) {
			t.Errorf("columns=%d: %d cards", tt.columns, got)
		}
	}

	sc := Cards(CardGridSpec{Cards: cards})
	groups := sc.Groups("card")
	first, second := rectOf(groups[0]), rectOf(groups[1])
	if first.H != second.H || first.H != cards[0].Height() {
		t.Errorf("row not sized to tallest card: %v, %v", first.H, second.H)
	}
	stripe := groups[3].Shapes[1].(scene.Rect)
	if stripe.Fill != palette.Pink {
		t.Errorf("stripe = %q, want pink", stripe.Fill)
	}
}

func TestStack(t *testing.T) {
	spec := StackSpec{
		Title: "OpenTelemetry",
		Layers: []Layer{
			{Label: "Instrumentation", Items: []string{"auto", "manual"}},
			{Label: "SDK"},
		},
	}
	w, h := StackSize(spec)
	if w != 460 || h != 40+30+74+8+44 {
		t.Errorf("StackSize() = %vx%v", w, h)
	}

	sc := Stack(spec)
	layers := sc.Groups("layer")
	if len(layers) != 2 {
		t.Fatalf("got %d layers, want 2", len(layers))
	}
	if got := textsOf(layers[0]); len(got) != 3 {
		t.Errorf("layer 0 texts = %v, want label plus two chips", got)
	}
	if got := rectOf(layers[0]).Fill; got != palette.WithAlpha(palette.Blue, 0x15) {
		t.Errorf("tint = %q", got)
	}
	if rectOf(layers[0]).Y >= rectOf(layers[1]).Y {
		t.Error("layers are not top-down in input order")
	}
}

func TestTable(t *testing.T) {
	spec := ComparisonTableSpec{Items: []ComparisonItem{
		{Label: "Agents", Before: "one per vendor", After: "one collector"},
		{Label: "Format", Before: "proprietary", After: "OTLP"},
	}}
	sc := Table(spec)
	if sc.Width != 600 || sc.Height != 36+2*32+40 {
		t.Errorf("size = %vx%v", sc.Width, sc.Height)
	}

	header := sc.Groups("header")[0]
	if got := textsOf(header); got[0] != "Before" || got[1] != "After" {
		t.Errorf("header = %v", got)
	}
	rows := sc.Groups("row")
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if got := textsOf(rows[1]); got[2] != "OTLP" {
		t.Errorf("row texts = %v", got)
	}
}
