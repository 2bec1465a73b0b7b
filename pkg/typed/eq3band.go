package typed

import "github.com/dukex/nfgrapher/pkg/score"

var eq3bandKind = KindSpec{
	Kind:        "com.nativeformat.plugin.eq.eq3band",
	Name:        "Eq3band",
	Description: "Three band equaliser with low, mid and high gain stages.",
	Fields:      []FieldSpec{},
	Params: []ParamSpec{
		{Name: "lowCutoff", Default: 264, Description: "Upper edge of the low band in Hz"},
		{Name: "midFrequency", Default: 1000, Description: "Centre of the mid band in Hz"},
		{Name: "highCutoff", Default: 3300, Description: "Lower edge of the high band in Hz"},
		{Name: "lowGain", Default: 0, Description: "Low band gain in dB"},
		{Name: "midGain", Default: 0, Description: "Mid band gain in dB"},
		{Name: "highGain", Default: 0, Description: "High band gain in dB"},
	},
	Inputs:  audioPorts,
	Outputs: audioPorts,
}

// Eq3bandNode is a three band equaliser.
type Eq3bandNode struct {
	base

	LowCutoff    *AudioParam
	MidFrequency *AudioParam
	HighCutoff   *AudioParam
	LowGain      *AudioParam
	MidGain      *AudioParam
	HighGain     *AudioParam
}

func NewEq3bandNode(opts ...score.Option) *Eq3bandNode {
	return &Eq3bandNode{
		base:         newBase(&eq3bandKind, opts),
		LowCutoff:    eq3bandKind.newParam("lowCutoff"),
		MidFrequency: eq3bandKind.newParam("midFrequency"),
		HighCutoff:   eq3bandKind.newParam("highCutoff"),
		LowGain:      eq3bandKind.newParam("lowGain"),
		MidGain:      eq3bandKind.newParam("midGain"),
		HighGain:     eq3bandKind.newParam("highGain"),
	}
}

func (n *Eq3bandNode) Config() map[string]any { return map[string]any{} }

func (n *Eq3bandNode) Params() map[string][]score.Command {
	return map[string][]score.Command{
		"lowCutoff":    commandsOf(n.LowCutoff),
		"midFrequency": commandsOf(n.MidFrequency),
		"highCutoff":   commandsOf(n.HighCutoff),
		"lowGain":      commandsOf(n.LowGain),
		"midGain":      commandsOf(n.MidGain),
		"highGain":     commandsOf(n.HighGain),
	}
}

func (n *Eq3bandNode) Validate() error { return checkConfig(n.spec, n.Config()) }

func (n *Eq3bandNode) Lower() (*score.Node, error) { return lower(n) }

func (n *Eq3bandNode) Connect(target TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(n, target, opts...)
}

func (n *Eq3bandNode) ConnectToSource(source TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(source, n, opts...)
}

func (n *Eq3bandNode) Link(target score.Vertex, opts ...score.Option) (*score.Edge, error) {
	return link(n, target, opts)
}
