package diagram

import (
	"sort"

	"github.com/matzehuels/otelviz/pkg/errors"
	"github.com/matzehuels/otelviz/pkg/scene"
	"github.com/matzehuels/otelviz/pkg/widget"
)

// Kind names a diagram variant.
type Kind string

// Diagram kinds.
const (
	KindFlow         Kind = "flow"
	KindArchitecture Kind = "architecture"
	KindPipeline     Kind = "pipeline"
	KindLayer        Kind = "layer"
	KindSignal       Kind = "signal"
	KindConnection   Kind = "connection"
	KindHub          Kind = "hub"
	KindComparison   Kind = "comparison"
	KindProcess      Kind = "process"
	KindTree         Kind = "tree"
	KindCards        Kind = "cards"
	KindStack        Kind = "stack"
	KindTable        Kind = "table"
	KindComposite    Kind = "composite"
)

// Document is a named diagram: its kind plus the description for that kind.
// Only the body matching Kind is read.
type Document struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Kind  Kind   `json:"kind" yaml:"kind" toml:"kind"`
	Title string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`

	Flow         *FlowSpec            `json:"flow,omitempty" yaml:"flow,omitempty" toml:"flow,omitempty"`
	Architecture *ArchitectureSpec    `json:"architecture,omitempty" yaml:"architecture,omitempty" toml:"architecture,omitempty"`
	Pipeline     *PipelineSpec        `json:"pipeline,omitempty" yaml:"pipeline,omitempty" toml:"pipeline,omitempty"`
	Layer        *LayerSpec           `json:"layer,omitempty" yaml:"layer,omitempty" toml:"layer,omitempty"`
	Signal       *SignalSpec          `json:"signal,omitempty" yaml:"signal,omitempty" toml:"signal,omitempty"`
	Connection   *ConnectionSpec      `json:"connection,omitempty" yaml:"connection,omitempty" toml:"connection,omitempty"`
	Comparison   *ComparisonSpec      `json:"comparison,omitempty" yaml:"comparison,omitempty" toml:"comparison,omitempty"`
	Process      *ProcessSpec         `json:"process,omitempty" yaml:"process,omitempty" toml:"process,omitempty"`
	Tree         *TreeSpec            `json:"tree,omitempty" yaml:"tree,omitempty" toml:"tree,omitempty"`
	Cards        *CardGridSpec        `json:"cards,omitempty" yaml:"cards,omitempty" toml:"cards,omitempty"`
	Stack        *StackSpec           `json:"stack,omitempty" yaml:"stack,omitempty" toml:"stack,omitempty"`
	Table        *ComparisonTableSpec `json:"table,omitempty" yaml:"table,omitempty" toml:"table,omitempty"`
	Composite    *widget.Node         `json:"composite,omitempty" yaml:"composite,omitempty" toml:"composite,omitempty"`
}

// renderers maps each scene-producing kind to its variant. A nil body
// renders the zero description.
var renderers = map[Kind]func(Document) scene.Scene{
	KindFlow:         func(d Document) scene.Scene { return Flow(deref(d.Flow)) },
	KindArchitecture: func(d Document) scene.Scene { return Architecture(deref(d.Architecture)) },
	KindPipeline:     func(d Document) scene.Scene { return Pipeline(deref(d.Pipeline)) },
	KindLayer:        func(d Document) scene.Scene { return LayerDiagram(deref(d.Layer)) },
	KindSignal:       func(d Document) scene.Scene { return Signal(deref(d.Signal)) },
	KindConnection:   func(d Document) scene.Scene { return ConnectionDiagram(deref(d.Connection)) },
	KindHub: func(d Document) scene.Scene {
		spec := deref(d.Connection)
		spec.Layout = LayoutHub
		return ConnectionDiagram(spec)
	},
	KindComparison: func(d Document) scene.Scene { return Comparison(deref(d.Comparison)) },
	KindProcess:    func(d Document) scene.Scene { return Process(deref(d.Process)) },
	KindTree:       func(d Document) scene.Scene { return Tree(deref(d.Tree)) },
	KindCards:      func(d Document) scene.Scene { return Cards(deref(d.Cards)) },
	KindStack:      func(d Document) scene.Scene { return Stack(deref(d.Stack)) },
	KindTable:      func(d Document) scene.Scene { return Table(deref(d.Table)) },
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Kinds returns every supported kind in sorted order, composite included.
func Kinds() []Kind {
	out := make([]Kind, 0, len(renderers)+1)
	for k := range renderers {
		out = append(out, k)
	}
	out = append(out, KindComposite)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsComposite reports whether the document is widget markup rather than a scene.
func (d Document) IsComposite() bool { return d.Kind == KindComposite }

// Scene lays out the document. Composite documents have no scene and
// return an UNSUPPORTED error; use [Document.HTML] for them.
func (d Document) Scene() (scene.Scene, error) {
	if d.IsComposite() {
		return scene.Scene{}, errors.New(errors.ErrCodeUnsupported, "composite diagram %q has no scene", d.Name)
	}
	render, ok := renderers[d.Kind]
	if !ok {
		return scene.Scene{}, errors.New(errors.ErrCodeInvalidKind, "unknown diagram kind: %q", d.Kind)
	}
	return render(d), nil
}

// HTML renders a composite document's widget tree.
func (d Document) HTML() (widget.HTML, error) {
	if !d.IsComposite() {
		return "", errors.New(errors.ErrCodeUnsupported, "diagram %q of kind %s is not composite", d.Name, d.Kind)
	}
	if d.Composite == nil {
		return "", nil
	}
	return d.Composite.Render(), nil
}

// Validate checks the name and kind without laying anything out.
func (d Document) Validate() error {
	if err := errors.ValidateName(d.Name); err != nil {
		return err
	}
	if _, ok := renderers[d.Kind]; !ok && !d.IsComposite() {
		return errors.New(errors.ErrCodeInvalidKind, "unknown diagram kind: %q", d.Kind)
	}
	return nil
}
