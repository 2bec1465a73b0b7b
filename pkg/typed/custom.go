package typed

import (
	"maps"

	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/dukex/nfgrapher/pkg/typecheck"
)

// CustomNode builds a typed node for a plugin kind outside the catalog.
// Declared fields are type-checked on lowering; undeclared values pass through.
type CustomNode struct {
	base

	kind   KindSpec
	values map[string]any
	params map[string]*AudioParam
}

func NewCustomNode(kind string, opts ...score.Option) *CustomNode {
	n := &CustomNode{
		kind: KindSpec{
			Kind:    kind,
			Name:    kind,
			Fields:  []FieldSpec{},
			Params:  []ParamSpec{},
			Inputs:  map[string]score.ContentType{},
			Outputs: map[string]score.ContentType{},
		},
		values: map[string]any{},
		params: map[string]*AudioParam{},
	}
	n.base = newBase(&n.kind, opts)

	return n
}

// Declare adds a typed configuration field.
func (n *CustomNode) Declare(f FieldSpec) *CustomNode {
	n.kind.Fields = append(n.kind.Fields, f)

	return n
}

// Set stores a configuration value under name.
func (n *CustomNode) Set(name string, value any) *CustomNode {
	n.values[name] = value

	return n
}

// Param returns the AudioParam called name, creating it at initial when absent.
func (n *CustomNode) Param(name string, initial float64) *AudioParam {
	if p, ok := n.params[name]; ok {
		return p
	}

	p := NewAudioParam(initial)
	n.params[name] = p
	n.kind.Params = append(n.kind.Params, ParamSpec{Name: name, Default: initial})

	return p
}

func (n *CustomNode) WithInput(port string, contentType score.ContentType) *CustomNode {
	n.kind.Inputs[port] = contentType

	return n
}

func (n *CustomNode) WithOutput(port string, contentType score.ContentType) *CustomNode {
	n.kind.Outputs[port] = contentType

	return n
}

// Config returns the set values plus the defaults of unset declared fields.
func (n *CustomNode) Config() map[string]any {
	config := maps.Clone(n.values)

	for _, f := range n.kind.Fields {
		if _, ok := config[f.Name]; !ok && f.Default != nil {
			config[f.Name] = f.Default
		}
	}

	return config
}

func (n *CustomNode) Params() map[string][]score.Command {
	out := make(map[string][]score.Command, len(n.params))
	for name, p := range n.params {
		out[name] = commandsOf(p)
	}

	return out
}

func (n *CustomNode) Validate() error {
	config := n.Config()

	for _, f := range n.kind.Fields {
		v, ok := config[f.Name]
		if !ok {
			if f.Required {
				return &DomainError{Kind: n.Kind(), Property: f.Name, Msg: "is required"}
			}

			continue
		}

		if err := typecheck.Check(f.Type, v, f.Name); err != nil {
			return err
		}
	}

	return nil
}

func (n *CustomNode) Lower() (*score.Node, error) { return lower(n) }

func (n *CustomNode) Connect(target TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(n, target, opts...)
}

func (n *CustomNode) ConnectToSource(source TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(source, n, opts...)
}

func (n *CustomNode) Link(target score.Vertex, opts ...score.Option) (*score.Edge, error) {
	return link(n, target, opts)
}
