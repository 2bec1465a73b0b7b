package typed

import (
	"slices"

	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/dukex/nfgrapher/pkg/typecheck"
)

func dynamicsFields() []FieldSpec {
	return []FieldSpec{
		{Name: "detectionMode", Type: typecheck.KindString, Default: string(DetectionMax), Enum: detectionModes(),
			Description: "Level detection"},
		{Name: "kneeMode", Type: typecheck.KindString, Default: string(KneeHard), Enum: kneeModes(),
			Description: "Knee shape"},
		{Name: "cutoffs", Type: typecheck.KindFloatList, Default: []float64{},
			Description: "Crossover frequencies in Hz splitting the signal into bands"},
	}
}

func singleStageParams() []ParamSpec {
	return []ParamSpec{
		{Name: "thresholdDb", Default: -24, Description: "Threshold in dB"},
		{Name: "kneeDb", Default: 30, Description: "Knee width in dB"},
		{Name: "ratioDb", Default: 12, Description: "Ratio"},
		{Name: "attack", Default: 0.0003, Description: "Attack in seconds"},
		{Name: "release", Default: 0.25, Description: "Release in seconds"},
	}
}

var compressorKind = KindSpec{
	Kind:        "com.nativeformat.plugin.compressor.compressor",
	Name:        "Compressor",
	Description: "Reduces the dynamic range above a threshold.",
	Fields:      dynamicsFields(),
	Params:      singleStageParams(),
	Inputs:      dynamicsInputs,
	Outputs:     audioPorts,
}

var expanderKind = KindSpec{
	Kind:        "com.nativeformat.plugin.compressor.expander",
	Name:        "Expander",
	Description: "Increases the dynamic range below a threshold.",
	Fields:      dynamicsFields(),
	Params:      singleStageParams(),
	Inputs:      dynamicsInputs,
	Outputs:     audioPorts,
}

var companderKind = KindSpec{
	Kind:        "com.nativeformat.plugin.compressor.compander",
	Name:        "Compander",
	Description: "Compressor and expander sharing one detector.",
	Fields:      dynamicsFields(),
	Params: []ParamSpec{
		{Name: "compressorThresholdDb", Default: -24, Description: "Compressor threshold in dB"},
		{Name: "compressorKneeDb", Default: 30, Description: "Compressor knee width in dB"},
		{Name: "compressorRatioDb", Default: 12, Description: "Compressor ratio"},
		{Name: "expanderThresholdDb", Default: -24, Description: "Expander threshold in dB"},
		{Name: "expanderKneeDb", Default: 30, Description: "Expander knee width in dB"},
		{Name: "expanderRatioDb", Default: 12, Description: "Expander ratio"},
		{Name: "attack", Default: 0.0003, Description: "Attack in seconds"},
		{Name: "release", Default: 0.25, Description: "Release in seconds"},
	},
	Inputs:  dynamicsInputs,
	Outputs: audioPorts,
}

// dynamics holds the configuration shared by the compressor family. Modes
// outside the recognised set are written as-is.
type dynamics struct {
	base

	DetectionMode DetectionMode
	KneeMode      KneeMode
	Cutoffs       []float64
}

func newDynamics(spec *KindSpec, opts []score.Option) dynamics {
	return dynamics{
		base:          newBase(spec, opts),
		DetectionMode: DetectionMax,
		KneeMode:      KneeHard,
		Cutoffs:       []float64{},
	}
}

func (d *dynamics) Config() map[string]any {
	cutoffs := slices.Clone(d.Cutoffs)
	if cutoffs == nil {
		cutoffs = []float64{}
	}

	return map[string]any{
		"detectionMode": string(d.DetectionMode),
		"kneeMode":      string(d.KneeMode),
		"cutoffs":       cutoffs,
	}
}

func (d *dynamics) Validate() error {
	if err := checkConfig(d.spec, d.Config()); err != nil {
		return err
	}

	return checkFrequencies(d.Kind(), "cutoffs", d.Cutoffs)
}

// CompressorNode compresses its audio input, keyed by the optional sidechain.
type CompressorNode struct {
	dynamics

	ThresholdDb *AudioParam
	KneeDb      *AudioParam
	RatioDb     *AudioParam
	Attack      *AudioParam
	Release     *AudioParam
}

func NewCompressorNode(opts ...score.Option) *CompressorNode {
	return &CompressorNode{
		dynamics:    newDynamics(&compressorKind, opts),
		ThresholdDb: compressorKind.newParam("thresholdDb"),
		KneeDb:      compressorKind.newParam("kneeDb"),
		RatioDb:     compressorKind.newParam("ratioDb"),
		Attack:      compressorKind.newParam("attack"),
		Release:     compressorKind.newParam("release"),
	}
}

func (n *CompressorNode) Params() map[string][]score.Command {
	return map[string][]score.Command{
		"thresholdDb": commandsOf(n.ThresholdDb),
		"kneeDb":      commandsOf(n.KneeDb),
		"ratioDb":     commandsOf(n.RatioDb),
		"attack":      commandsOf(n.Attack),
		"release":     commandsOf(n.Release),
	}
}

func (n *CompressorNode) Lower() (*score.Node, error) { return lower(n) }

func (n *CompressorNode) Connect(target TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(n, target, opts...)
}

func (n *CompressorNode) ConnectToSource(source TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(source, n, opts...)
}

func (n *CompressorNode) Link(target score.Vertex, opts ...score.Option) (*score.Edge, error) {
	return link(n, target, opts)
}

// ExpanderNode expands its audio input below the threshold.
type ExpanderNode struct {
	dynamics

	ThresholdDb *AudioParam
	KneeDb      *AudioParam
	RatioDb     *AudioParam
	Attack      *AudioParam
	Release     *AudioParam
}

func NewExpanderNode(opts ...score.Option) *ExpanderNode {
	return &ExpanderNode{
		dynamics:    newDynamics(&expanderKind, opts),
		ThresholdDb: expanderKind.newParam("thresholdDb"),
		KneeDb:      expanderKind.newParam("kneeDb"),
		RatioDb:     expanderKind.newParam("ratioDb"),
		Attack:      expanderKind.newParam("attack"),
		Release:     expanderKind.newParam("release"),
	}
}

func (n *ExpanderNode) Params() map[string][]score.Command {
	return map[string][]score.Command{
		"thresholdDb": commandsOf(n.ThresholdDb),
		"kneeDb":      commandsOf(n.KneeDb),
		"ratioDb":     commandsOf(n.RatioDb),
		"attack":      commandsOf(n.Attack),
		"release":     commandsOf(n.Release),
	}
}

func (n *ExpanderNode) Lower() (*score.Node, error) { return lower(n) }

func (n *ExpanderNode) Connect(target TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(n, target, opts...)
}

func (n *ExpanderNode) ConnectToSource(source TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(source, n, opts...)
}

func (n *ExpanderNode) Link(target score.Vertex, opts ...score.Option) (*score.Edge, error) {
	return link(n, target, opts)
}

// CompanderNode applies a compressor and an expander stage.
type CompanderNode struct {
	dynamics

	CompressorThresholdDb *AudioParam
	CompressorKneeDb      *AudioParam
	CompressorRatioDb     *AudioParam
	ExpanderThresholdDb   *AudioParam
	ExpanderKneeDb        *AudioParam
	ExpanderRatioDb       *AudioParam
	Attack                *AudioParam
	Release               *AudioParam
}

func NewCompanderNode(opts ...score.Option) *CompanderNode {
	return &CompanderNode{
		dynamics:              newDynamics(&companderKind, opts),
		CompressorThresholdDb: companderKind.newParam("compressorThresholdDb"),
		CompressorKneeDb:      companderKind.newParam("compressorKneeDb"),
		CompressorRatioDb:     companderKind.newParam("compressorRatioDb"),
		ExpanderThresholdDb:   companderKind.newParam("expanderThresholdDb"),
		ExpanderKneeDb:        companderKind.newParam("expanderKneeDb"),
		ExpanderRatioDb:       companderKind.newParam("expanderRatioDb"),
		Attack:                companderKind.newParam("attack"),
		Release:               companderKind.newParam("release"),
	}
}

func (n *CompanderNode) Params() map[string][]score.Command {
	return map[string][]score.Command{
		"compressorThresholdDb": commandsOf(n.CompressorThresholdDb),
		"compressorKneeDb":      commandsOf(n.CompressorKneeDb),
		"compressorRatioDb":     commandsOf(n.CompressorRatioDb),
		"expanderThresholdDb":   commandsOf(n.ExpanderThresholdDb),
		"expanderKneeDb":        commandsOf(n.ExpanderKneeDb),
		"expanderRatioDb":       commandsOf(n.ExpanderRatioDb),
		"attack":                commandsOf(n.Attack),
		"release":               commandsOf(n.Release),
	}
}

func (n *CompanderNode) Lower() (*score.Node, error) { return lower(n) }

func (n *CompanderNode) Connect(target TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(n, target, opts...)
}

func (n *CompanderNode) ConnectToSource(source TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(source, n, opts...)
}

func (n *CompanderNode) Link(target score.Vertex, opts ...score.Option) (*score.Edge, error) {
	return link(n, target, opts)
}
