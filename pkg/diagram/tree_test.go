package diagram

import "testing"

func TestTreeLayout(t *testing.T) {
	spec := TreeSpec{Root: TreeNode{
		Label: "Telemetry",
		Children: []TreeNode{
			{Label: "Traces"},
			{Label: "Metrics", Children: []TreeNode{{Label: "Counter"}, {Label: "Gauge"}, {Label: "Histogram"}}},
			{Label: "Logs"},
		},
	}}
	sc := Tree(spec)

	// Metrics subtree: 3·120 + 2·16 = 392; root: 120 + 392 + 120 + 2·16 = 664.
	if sc.Width != 664+2*TreePadding {
		t.Errorf("width = %v, want %v", sc.Width, 664+2*TreePadding)
	}
	if want := float64(3*TreeBoxHeight + 2*TreeLevelGap + 2*TreePadding); sc.Height != want {
		t.Errorf("height = %v, want %v", sc.Height, want)
	}

	nodes := map[string]float64{}
	for _, g := range sc.Groups("node") {
		nodes[g.Key] = rectOf(g).Bounds().CenterX()
	}
	if len(nodes) != 7 {
		t.Fatalf("got %d nodes, want 7", len(nodes))
	}
	if got := len(sc.Groups("branch")); got != 6 {
		t.Errorf("got %d branches, want 6", got)
	}

	// Parents are centered over their children.
	if got, want := nodes["0.1"], (nodes["0.1.0"]+nodes["0.1.2"])/2; got != want {
		t.Errorf("metrics center = %v, want %v", got, want)
	}
	if got, want := nodes["0"], (nodes["0.0"]+nodes["0.2"])/2; got != want {
		t.Errorf("root center = %v, want %v", got, want)
	}
}

func TestTreeCompact(t *testing.T) {
	sc := Tree(TreeSpec{Root: TreeNode{Label: "root"}, Compact: true})
	r := rectOf(sc.Groups("node")[0])
	if r.W != TreeCompactBoxWidth || r.H != TreeCompactBoxHeight {
		t.Errorf("compact box = %vx%v", r.W, r.H)
	}
}

func TestTreeEmpty(t *testing.T) {
	sc := Tree(TreeSpec{})
	if !sc.Empty() {
		t.Errorf("empty tree rendered %d shapes", len(sc.Shapes))
	}
}
