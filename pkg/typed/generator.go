package typed

import (
	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/dukex/nfgrapher/pkg/typecheck"
)

var noiseKind = KindSpec{
	Kind:        "com.nativeformat.plugin.noise.noise",
	Name:        "Noise",
	Description: "Generates white noise.",
	Fields:      []FieldSpec{whenField(), durationField(false)},
	Params:      []ParamSpec{},
	Inputs:      map[string]score.ContentType{},
	Outputs:     audioPorts,
}

var silenceKind = KindSpec{
	Kind:        "com.nativeformat.plugin.noise.silence",
	Name:        "Silence",
	Description: "Generates silence.",
	Fields:      []FieldSpec{whenField(), durationField(false)},
	Params:      []ParamSpec{},
	Inputs:      map[string]score.ContentType{},
	Outputs:     audioPorts,
}

var sineKind = KindSpec{
	Kind:        "com.nativeformat.plugin.wave.sine",
	Name:        "Sine",
	Description: "Generates a sine wave.",
	Fields: []FieldSpec{
		{Name: "frequency", Type: typecheck.KindFloat, Default: 0.0, Description: "Frequency in Hz"},
		whenField(),
		durationField(false),
	},
	Params:  []ParamSpec{},
	Inputs:  map[string]score.ContentType{},
	Outputs: audioPorts,
}

// generator is the timing shared by the source-only kinds.
type generator struct {
	base

	When     score.Time
	Duration score.Time
}

func (g *generator) Config() map[string]any {
	return map[string]any{
		"when":     float64(g.When),
		"duration": float64(g.Duration),
	}
}

func (g *generator) Params() map[string][]score.Command { return map[string][]score.Command{} }

func (g *generator) Validate() error {
	if err := checkConfig(g.spec, g.Config()); err != nil {
		return err
	}

	return g.checkTimes()
}

func (g *generator) checkTimes() error {
	if err := checkTime(g.Kind(), "when", g.When); err != nil {
		return err
	}

	return checkTime(g.Kind(), "duration", g.Duration)
}

// NoiseNode generates white noise from When for Duration.
type NoiseNode struct{ generator }

func NewNoiseNode(when, duration score.Time, opts ...score.Option) *NoiseNode {
	return &NoiseNode{generator{base: newBase(&noiseKind, opts), When: when, Duration: duration}}
}

func (n *NoiseNode) Lower() (*score.Node, error) { return lower(n) }

func (n *NoiseNode) Connect(target TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(n, target, opts...)
}

func (n *NoiseNode) ConnectToSource(source TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(source, n, opts...)
}

func (n *NoiseNode) Link(target score.Vertex, opts ...score.Option) (*score.Edge, error) {
	return link(n, target, opts)
}

// SilenceNode generates silence from When for Duration.
type SilenceNode struct{ generator }

func NewSilenceNode(when, duration score.Time, opts ...score.Option) *SilenceNode {
	return &SilenceNode{generator{base: newBase(&silenceKind, opts), When: when, Duration: duration}}
}

func (n *SilenceNode) Lower() (*score.Node, error) { return lower(n) }

func (n *SilenceNode) Connect(target TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(n, target, opts...)
}

func (n *SilenceNode) ConnectToSource(source TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(source, n, opts...)
}

func (n *SilenceNode) Link(target score.Vertex, opts ...score.Option) (*score.Edge, error) {
	return link(n, target, opts)
}

// SineNode generates a sine wave at Frequency.
type SineNode struct {
	generator

	Frequency float64
}

func NewSineNode(frequency float64, when, duration score.Time, opts ...score.Option) *SineNode {
	return &SineNode{
		generator: generator{base: newBase(&sineKind, opts), When: when, Duration: duration},
		Frequency: frequency,
	}
}

func (n *SineNode) Config() map[string]any {
	c := n.generator.Config()
	c["frequency"] = n.Frequency

	return c
}

func (n *SineNode) Validate() error {
	if err := checkConfig(n.spec, n.Config()); err != nil {
		return err
	}

	if err := checkFinite(n.Kind(), "frequency", n.Frequency); err != nil {
		return err
	}

	if n.Frequency < 0 {
		return &DomainError{Kind: n.Kind(), Property: "frequency", Msg: "must not be negative"}
	}

	return n.checkTimes()
}

func (n *SineNode) Lower() (*score.Node, error) { return lower(n) }

func (n *SineNode) Connect(target TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(n, target, opts...)
}

func (n *SineNode) ConnectToSource(source TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(source, n, opts...)
}

func (n *SineNode) Link(target score.Vertex, opts ...score.Option) (*score.Edge, error) {
	return link(n, target, opts)
}
