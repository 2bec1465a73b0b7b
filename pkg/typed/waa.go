package typed

import "github.com/dukex/nfgrapher/pkg/score"

var delayKind = KindSpec{
	Kind:        "com.nativeformat.plugin.waa.delay",
	Name:        "Delay",
	Description: "Delays its input.",
	Fields:      []FieldSpec{},
	Params: []ParamSpec{
		{Name: "delayTime", Default: 0, Description: "Delay applied to the input"},
	},
	Inputs:  audioPorts,
	Outputs: audioPorts,
}

var gainKind = KindSpec{
	Kind:        "com.nativeformat.plugin.waa.gain",
	Name:        "Gain",
	Description: "Scales the amplitude of its input.",
	Fields:      []FieldSpec{},
	Params: []ParamSpec{
		{Name: "gain", Default: 1, Description: "Linear amplitude multiplier"},
	},
	Inputs:  audioPorts,
	Outputs: audioPorts,
}

// DelayNode delays its input by DelayTime.
type DelayNode struct {
	base

	DelayTime *AudioParam
}

func NewDelayNode(opts ...score.Option) *DelayNode {
	return &DelayNode{base: newBase(&delayKind, opts), DelayTime: delayKind.newParam("delayTime")}
}

func (n *DelayNode) Config() map[string]any { return map[string]any{} }

func (n *DelayNode) Params() map[string][]score.Command {
	return map[string][]score.Command{"delayTime": commandsOf(n.DelayTime)}
}

func (n *DelayNode) Validate() error { return checkConfig(n.spec, n.Config()) }

func (n *DelayNode) Lower() (*score.Node, error) { return lower(n) }

func (n *DelayNode) Connect(target TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(n, target, opts...)
}

func (n *DelayNode) ConnectToSource(source TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(source, n, opts...)
}

func (n *DelayNode) Link(target score.Vertex, opts ...score.Option) (*score.Edge, error) {
	return link(n, target, opts)
}

// GainNode scales its input by Gain.
type GainNode struct {
	base

	Gain *AudioParam
}

func NewGainNode(opts ...score.Option) *GainNode {
	return &GainNode{base: newBase(&gainKind, opts), Gain: gainKind.newParam("gain")}
}

func (n *GainNode) Config() map[string]any { return map[string]any{} }

func (n *GainNode) Params() map[string][]score.Command {
	return map[string][]score.Command{"gain": commandsOf(n.Gain)}
}

func (n *GainNode) Validate() error { return checkConfig(n.spec, n.Config()) }

func (n *GainNode) Lower() (*score.Node, error) { return lower(n) }

func (n *GainNode) Connect(target TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(n, target, opts...)
}

func (n *GainNode) ConnectToSource(source TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(source, n, opts...)
}

func (n *GainNode) Link(target score.Vertex, opts ...score.Option) (*score.Edge, error) {
	return link(n, target, opts)
}
