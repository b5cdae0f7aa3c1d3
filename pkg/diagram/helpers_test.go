package diagram

import "github.com/matzehuels/otelviz/pkg/scene"

// rectOf returns the first rectangle directly inside g.
func rectOf(g scene.Group) scene.Rect {
	for _, sh := range g.Shapes {
		if r, ok := sh.(scene.Rect); ok {
			return r
		}
	}
	return scene.Rect{}
}

// textsOf returns the text contents directly inside g.
func textsOf(g scene.Group) []string {
	var out []string
	for _, sh := range g.Shapes {
		if t, ok := sh.(scene.Text); ok {
			out = append(out, t.Content)
		}
	}
	return out
}

// linesOf returns every line inside g at any depth.
func linesOf(g scene.Group) []scene.Line {
	var out []scene.Line
	scene.Scene{Shapes: g.Shapes}.Walk(func(sh scene.Shape) {
		if l, ok := sh.(scene.Line); ok {
			out = append(out, l)
		}
	})
	return out
}
