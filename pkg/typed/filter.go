package typed

import (
	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/dukex/nfgrapher/pkg/typecheck"
)

var filterKind = KindSpec{
	Kind:        "com.nativeformat.plugin.eq.filter",
	Name:        "Filter",
	Description: "Low, high or band pass filter.",
	Fields: []FieldSpec{
		{Name: "filterType", Type: typecheck.KindString, Default: string(FilterBandPass), Enum: filterTypes(),
			Description: "Filter response"},
	},
	Params: []ParamSpec{
		{Name: "lowCutoff", Default: 0, Description: "Lower cutoff in Hz"},
		{Name: "highCutoff", Default: 22050, Description: "Upper cutoff in Hz"},
	},
	Inputs:  audioPorts,
	Outputs: audioPorts,
}

// FilterNode filters its input. An unrecognised FilterType is written as-is;
// use FilterType.Normalize to apply the band pass fallback.
type FilterNode struct {
	base

	FilterType FilterType
	LowCutoff  *AudioParam
	HighCutoff *AudioParam
}

func NewFilterNode(opts ...score.Option) *FilterNode {
	return &FilterNode{
		base:       newBase(&filterKind, opts),
		FilterType: FilterBandPass,
		LowCutoff:  filterKind.newParam("lowCutoff"),
		HighCutoff: filterKind.newParam("highCutoff"),
	}
}

func (n *FilterNode) Config() map[string]any {
	return map[string]any{"filterType": string(n.FilterType)}
}

func (n *FilterNode) Params() map[string][]score.Command {
	return map[string][]score.Command{
		"lowCutoff":  commandsOf(n.LowCutoff),
		"highCutoff": commandsOf(n.HighCutoff),
	}
}

func (n *FilterNode) Validate() error { return checkConfig(n.spec, n.Config()) }

func (n *FilterNode) Lower() (*score.Node, error) { return lower(n) }

func (n *FilterNode) Connect(target TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(n, target, opts...)
}

func (n *FilterNode) ConnectToSource(source TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(source, n, opts...)
}

func (n *FilterNode) Link(target score.Vertex, opts ...score.Option) (*score.Edge, error) {
	return link(n, target, opts)
}
