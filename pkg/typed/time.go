package typed

import (
	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/dukex/nfgrapher/pkg/typecheck"
)

// LoopForever is the LoopNode count that repeats without end.
const LoopForever = -1

var loopKind = KindSpec{
	Kind:        "com.nativeformat.plugin.time.loop",
	Name:        "Loop",
	Description: "Repeats a window of its input.",
	Fields: []FieldSpec{
		whenField(),
		durationField(true),
		{Name: "loopCount", Type: typecheck.KindInt, Default: LoopForever,
			Description: "Number of repetitions, -1 to loop forever"},
	},
	Params:  []ParamSpec{},
	Inputs:  audioPorts,
	Outputs: audioPorts,
}

var stretchKind = KindSpec{
	Kind:        "com.nativeformat.plugin.time.stretch",
	Name:        "Stretch",
	Description: "Time stretches and pitch shifts its input.",
	Fields:      []FieldSpec{},
	Params: []ParamSpec{
		{Name: "pitchRatio", Default: 1, Description: "Pitch multiplier"},
		{Name: "stretch", Default: 1, Description: "Duration multiplier"},
		{Name: "formantRatio", Default: 1, Description: "Formant multiplier"},
	},
	Inputs:  audioPorts,
	Outputs: audioPorts,
}

// LoopNode repeats the window [When, When+Duration) of its input LoopCount times.
type LoopNode struct {
	base

	When      score.Time
	Duration  score.Time
	LoopCount int
}

func NewLoopNode(when, duration score.Time, opts ...score.Option) *LoopNode {
	return &LoopNode{base: newBase(&loopKind, opts), When: when, Duration: duration, LoopCount: LoopForever}
}

func (n *LoopNode) Config() map[string]any {
	return map[string]any{
		"when":      float64(n.When),
		"duration":  float64(n.Duration),
		"loopCount": n.LoopCount,
	}
}

func (n *LoopNode) Params() map[string][]score.Command { return map[string][]score.Command{} }

func (n *LoopNode) Validate() error {
	if err := checkConfig(n.spec, n.Config()); err != nil {
		return err
	}

	if err := checkTime(n.Kind(), "when", n.When); err != nil {
		return err
	}

	if err := checkTime(n.Kind(), "duration", n.Duration); err != nil {
		return err
	}

	if n.LoopCount < LoopForever {
		return &DomainError{Kind: n.Kind(), Property: "loopCount", Msg: "must be -1 or a non-negative count"}
	}

	return nil
}

func (n *LoopNode) Lower() (*score.Node, error) { return lower(n) }

func (n *LoopNode) Connect(target TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(n, target, opts...)
}

func (n *LoopNode) ConnectToSource(source TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(source, n, opts...)
}

func (n *LoopNode) Link(target score.Vertex, opts ...score.Option) (*score.Edge, error) {
	return link(n, target, opts)
}

// StretchNode changes the duration and pitch of its input independently.
type StretchNode struct {
	base

	PitchRatio   *AudioParam
	Stretch      *AudioParam
	FormantRatio *AudioParam
}

func NewStretchNode(opts ...score.Option) *StretchNode {
	return &StretchNode{
		base:         newBase(&stretchKind, opts),
		PitchRatio:   stretchKind.newParam("pitchRatio"),
		Stretch:      stretchKind.newParam("stretch"),
		FormantRatio: stretchKind.newParam("formantRatio"),
	}
}

func (n *StretchNode) Config() map[string]any { return map[string]any{} }

func (n *StretchNode) Params() map[string][]score.Command {
	return map[string][]score.Command{
		"pitchRatio":   commandsOf(n.PitchRatio),
		"stretch":      commandsOf(n.Stretch),
		"formantRatio": commandsOf(n.FormantRatio),
	}
}

func (n *StretchNode) Validate() error { return checkConfig(n.spec, n.Config()) }

func (n *StretchNode) Lower() (*score.Node, error) { return lower(n) }

func (n *StretchNode) Connect(target TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(n, target, opts...)
}

func (n *StretchNode) ConnectToSource(source TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(source, n, opts...)
}

func (n *StretchNode) Link(target score.Vertex, opts ...score.Option) (*score.Edge, error) {
	return link(n, target, opts)
}
