// Package typed provides validated builders for the known audio plugin kinds.
//
// A typed node is a construction-time convenience: it carries strongly typed
// configuration and AudioParam automation, enforces port-aware connection
// rules, and lowers itself to a generic score.Node when the graph is encoded.
// Validation is lazy. Building an invalid node never fails; lowering it does.
package typed

import (
	"maps"
	"math"

	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/dukex/nfgrapher/pkg/typecheck"
)

// Port names shared by the built-in kinds.
const (
	PortAudio     = "audio"
	PortSidechain = "sidechain"
)

// TypedNode is the capability set every typed node kind fulfils.
type TypedNode interface {
	score.Vertex
	score.Lowerer
	score.Linker

	// Kind returns the plugin identifier.
	Kind() string
	LoadingPolicy() score.LoadingPolicy
	// Config returns the non-time-varying configuration keyed by wire name.
	Config() map[string]any
	// Params returns the automation commands of every AudioParam keyed by wire name.
	Params() map[string][]score.Command
	Inputs() map[string]score.ContentType
	Outputs() map[string]score.ContentType
	// Validate checks the node's fields. It runs when the node is lowered.
	Validate() error
	// Connect creates an edge from this node to target, enforcing port presence.
	Connect(target TypedNode, opts ...score.Option) (*score.Edge, error)
}

// base carries the identity shared by every typed node.
type base struct {
	id     string
	policy score.LoadingPolicy
	spec   *KindSpec
}

func newBase(spec *KindSpec, opts []score.Option) base {
	s := score.Resolve(opts...)

	return base{id: s.ID, policy: s.LoadingPolicy, spec: spec}
}

func (b *base) NodeID() string { return b.id }

func (b *base) Kind() string { return b.spec.Kind }

func (b *base) LoadingPolicy() score.LoadingPolicy { return b.policy }

func (b *base) Inputs() map[string]score.ContentType { return maps.Clone(b.spec.Inputs) }

func (b *base) Outputs() map[string]score.ContentType { return maps.Clone(b.spec.Outputs) }

// Spec describes the node's kind.
func (b *base) Spec() KindSpec { return b.spec.clone() }

// lower validates n and collapses it into a generic node.
func lower(n TypedNode) (*score.Node, error) {
	if err := n.Validate(); err != nil {
		return nil, &LowerError{NodeID: n.NodeID(), Kind: n.Kind(), Err: err}
	}

	return &score.Node{
		ID:            n.NodeID(),
		Kind:          n.Kind(),
		Config:        n.Config(),
		Params:        n.Params(),
		LoadingPolicy: n.LoadingPolicy(),
	}, nil
}

// Connect creates an edge from source to target. It fails when source has no
// outputs, when target has no inputs, or when both are the same node.
func Connect(source, target TypedNode, opts ...score.Option) (*score.Edge, error) {
	if len(source.Outputs()) == 0 {
		return nil, &ConnectionError{Source: source.NodeID(), Target: target.NodeID(), Reason: ReasonNoOutputs}
	}

	if len(target.Inputs()) == 0 {
		return nil, &ConnectionError{Source: source.NodeID(), Target: target.NodeID(), Reason: ReasonNoInputs}
	}

	if source.NodeID() == target.NodeID() {
		return nil, &ConnectionError{Source: source.NodeID(), Target: target.NodeID(), Reason: ReasonSelfConnection}
	}

	return score.NewEdge(source.NodeID(), target.NodeID(), opts...), nil
}

// ConnectFrom is Connect with the arguments reversed: it feeds source into target.
func ConnectFrom(target, source TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(source, target, opts...)
}

// link adapts Connect to arbitrary graph vertices. Generic nodes declare no
// ports and therefore cannot be targets.
func link(source TypedNode, target score.Vertex, opts []score.Option) (*score.Edge, error) {
	t, ok := target.(TypedNode)
	if !ok {
		return nil, &ConnectionError{Source: source.NodeID(), Target: target.NodeID(), Reason: ReasonNoInputs}
	}

	return Connect(source, t, opts...)
}

// checkConfig runs the type assertions declared by spec over config.
func checkConfig(spec *KindSpec, config map[string]any) error {
	for _, f := range spec.Fields {
		if err := typecheck.Check(f.Type, config[f.Name], f.Name); err != nil {
			return err
		}
	}

	return nil
}

func checkTime(kind, property string, t score.Time) error {
	if !t.Valid() {
		return &DomainError{Kind: kind, Property: property, Msg: "must be a finite, non-negative time"}
	}

	return nil
}

func checkFinite(kind, property string, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &DomainError{Kind: kind, Property: property, Msg: "must be finite"}
	}

	return nil
}

func checkFrequencies(kind, property string, values []float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return &DomainError{Kind: kind, Property: property, Msg: "must contain positive, finite frequencies"}
		}
	}

	return nil
}

func commandsOf(p *AudioParam) []score.Command {
	if p == nil {
		return []score.Command{}
	}

	return p.Commands()
}

var (
	_ TypedNode = (*Eq3bandNode)(nil)
	_ TypedNode = (*FileNode)(nil)
	_ TypedNode = (*NoiseNode)(nil)
	_ TypedNode = (*SilenceNode)(nil)
	_ TypedNode = (*LoopNode)(nil)
	_ TypedNode = (*StretchNode)(nil)
	_ TypedNode = (*DelayNode)(nil)
	_ TypedNode = (*GainNode)(nil)
	_ TypedNode = (*SineNode)(nil)
	_ TypedNode = (*FilterNode)(nil)
	_ TypedNode = (*CompressorNode)(nil)
	_ TypedNode = (*ExpanderNode)(nil)
	_ TypedNode = (*CompanderNode)(nil)
	_ TypedNode = (*CustomNode)(nil)
)
