package typed

import (
	"math"
	"testing"

	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/dukex/nfgrapher/pkg/typecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_Legality(t *testing.T) {
	f := NewFileNode("track.mp3", score.WithID("f"))
	g := NewGainNode(score.WithID("g"))

	_, err := f.Connect(f)
	require.ErrorIs(t, err, ErrConnection)

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, ReasonNoInputs, connErr.Reason)

	_, err = g.Connect(f)
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, ReasonNoInputs, connErr.Reason)

	_, err = g.Connect(g)
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, ReasonSelfConnection, connErr.Reason)

	edge, err := f.Connect(g)
	require.NoError(t, err)
	assert.Equal(t, "f", edge.Source)
	assert.Equal(t, "g", edge.Target)
	assert.NotEmpty(t, edge.ID)
}

func TestConnect_SourceWithoutOutputs(t *testing.T) {
	sink := NewCustomNode("com.example.sink", score.WithID("sink")).WithInput(PortAudio, score.ContentTypeAudio)
	g := NewGainNode(score.WithID("g"))

	_, err := sink.Connect(g)

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, ReasonNoOutputs, connErr.Reason)
}

func TestConnectToSource(t *testing.T) {
	f := NewFileNode("track.mp3", score.WithID("f"))
	c := NewCompressorNode(score.WithID("c"))

	edge, err := c.ConnectToSource(f, score.WithTargetPort(PortSidechain))
	require.NoError(t, err)
	assert.Equal(t, "f", edge.Source)
	assert.Equal(t, "c", edge.Target)
	assert.Equal(t, PortSidechain, edge.TargetPort)

	edge, err = ConnectFrom(c, f)
	require.NoError(t, err)
	assert.Equal(t, "f", edge.Source)
}

func TestLink_GenericTarget(t *testing.T) {
	f := NewFileNode("track.mp3", score.WithID("f"))
	generic := score.NewNode("com.example.any", nil, nil, score.WithID("x"))

	g := score.NewGraph()

	_, err := g.Connect(f, generic)
	require.ErrorIs(t, err, ErrConnection)

	gain := NewGainNode(score.WithID("g"))

	edge, err := g.Connect(f, gain)
	require.NoError(t, err)
	assert.Equal(t, []*score.Edge{edge}, g.Edges)
}

func TestAudioParam_CommandOrder(t *testing.T) {
	g := NewGainNode(score.WithID("g"))

	require.NoError(t, g.Gain.SetValueAtTime(0, score.TimeZero))
	require.NoError(t, g.Gain.LinearRampToValueAtTime(1, score.Seconds(2)))

	node, err := g.Lower()
	require.NoError(t, err)

	commands := node.Params["gain"]
	require.Len(t, commands, 2)
	assert.Equal(t, CommandSetValueAtTime, commands[0].Name)
	assert.Equal(t, map[string]any{"value": 0.0, "startTime": 0.0}, commands[0].Args)
	assert.Equal(t, CommandLinearRampToValueAtTime, commands[1].Name)
	assert.Equal(t, map[string]any{"value": 1.0, "endTime": 2e9}, commands[1].Args)
}

func TestAudioParam_AllCommands(t *testing.T) {
	p := NewAudioParam(1)

	curve := []float64{0, 0.5, 1}

	require.NoError(t, p.ExponentialRampToValueAtTime(0.5, score.Seconds(1)))
	require.NoError(t, p.SetTargetAtTime(0.2, score.Seconds(1), 0.1))
	require.NoError(t, p.SetValueCurveAtTime(curve, score.Seconds(2), score.Seconds(1)))

	curve[0] = 9

	commands := p.Commands()
	require.Len(t, commands, 3)
	assert.Equal(t, CommandExponentialRampToValueAtTime, commands[0].Name)
	assert.Equal(t, 0.1, commands[1].Args["timeConstant"])
	assert.Equal(t, []float64{0, 0.5, 1}, commands[2].Args["values"])

	commands[0].Name = "changed"
	assert.Equal(t, CommandExponentialRampToValueAtTime, p.Commands()[0].Name)
	assert.Equal(t, 1.0, p.InitialValue)
}

func TestAudioParam_RejectsInvalidArgs(t *testing.T) {
	p := NewAudioParam(0)

	assert.ErrorIs(t, p.SetValueAtTime(math.NaN(), score.TimeZero), ErrDomainValidation)
	assert.ErrorIs(t, p.SetValueAtTime(1, score.Time(-1)), ErrDomainValidation)
	assert.ErrorIs(t, p.LinearRampToValueAtTime(math.Inf(1), score.Seconds(1)), ErrDomainValidation)
	assert.ErrorIs(t, p.SetValueCurveAtTime([]float64{1, math.NaN()}, 0, score.Seconds(1)), ErrDomainValidation)
	assert.Empty(t, p.Commands())
}

func TestCheckCommand(t *testing.T) {
	ok := score.NewCommand(CommandSetValueCurveAtTime, map[string]any{
		"values":    []any{0.0, 1.0},
		"startTime": 0.0,
		"duration":  1e9,
	})
	assert.NoError(t, CheckCommand(ok))

	missing := score.NewCommand(CommandSetValueAtTime, map[string]any{"value": 1.0})
	assert.ErrorIs(t, CheckCommand(missing), typecheck.ErrTypeMismatch)

	wrong := score.NewCommand(CommandSetTargetAtTime, map[string]any{
		"target": "loud", "startTime": 0.0, "timeConstant": 1.0,
	})
	assert.ErrorIs(t, CheckCommand(wrong), typecheck.ErrTypeMismatch)

	negative := score.NewCommand(CommandSetValueAtTime, map[string]any{"value": 1.0, "startTime": -1.0})
	assert.ErrorIs(t, CheckCommand(negative), ErrDomainValidation)

	assert.NoError(t, CheckCommand(score.NewCommand("vendorCommand", nil)))
}

func TestLower_Defaults(t *testing.T) {
	tests := []struct {
		name   string
		node   TypedNode
		kind   string
		config map[string]any
		params []string
	}{
		{
			name:   "eq3band",
			node:   NewEq3bandNode(),
			kind:   "com.nativeformat.plugin.eq.eq3band",
			config: map[string]any{},
			params: []string{"lowCutoff", "midFrequency", "highCutoff", "lowGain", "midGain", "highGain"},
		},
		{
			name:   "file",
			node:   NewFileNode("spotify:track:abc"),
			kind:   "com.nativeformat.plugin.file.file",
			config: map[string]any{"file": "spotify:track:abc", "when": 0.0, "duration": 0.0, "offset": 0.0},
		},
		{
			name:   "noise",
			node:   NewNoiseNode(score.Seconds(1), score.Seconds(2)),
			kind:   "com.nativeformat.plugin.noise.noise",
			config: map[string]any{"when": 1e9, "duration": 2e9},
		},
		{
			name:   "silence",
			node:   NewSilenceNode(0, score.Seconds(2)),
			kind:   "com.nativeformat.plugin.noise.silence",
			config: map[string]any{"when": 0.0, "duration": 2e9},
		},
		{
			name:   "loop",
			node:   NewLoopNode(0, score.Seconds(4)),
			kind:   "com.nativeformat.plugin.time.loop",
			config: map[string]any{"when": 0.0, "duration": 4e9, "loopCount": -1},
		},
		{
			name:   "stretch",
			node:   NewStretchNode(),
			kind:   "com.nativeformat.plugin.time.stretch",
			config: map[string]any{},
			params: []string{"pitchRatio", "stretch", "formantRatio"},
		},
		{
			name:   "delay",
			node:   NewDelayNode(),
			kind:   "com.nativeformat.plugin.waa.delay",
			config: map[string]any{},
			params: []string{"delayTime"},
		},
		{
			name:   "sine",
			node:   NewSineNode(440, 0, score.Seconds(1)),
			kind:   "com.nativeformat.plugin.wave.sine",
			config: map[string]any{"frequency": 440.0, "when": 0.0, "duration": 1e9},
		},
		{
			name:   "filter",
			node:   NewFilterNode(),
			kind:   "com.nativeformat.plugin.eq.filter",
			config: map[string]any{"filterType": "bandPass"},
			params: []string{"lowCutoff", "highCutoff"},
		},
		{
			name:   "compressor",
			node:   NewCompressorNode(),
			kind:   "com.nativeformat.plugin.compressor.compressor",
			config: map[string]any{"detectionMode": "max", "kneeMode": "hard", "cutoffs": []float64{}},
			params: []string{"thresholdDb", "kneeDb", "ratioDb", "attack", "release"},
		},
		{
			name:   "expander",
			node:   NewExpanderNode(),
			kind:   "com.nativeformat.plugin.compressor.expander",
			config: map[string]any{"detectionMode": "max", "kneeMode": "hard", "cutoffs": []float64{}},
			params: []string{"thresholdDb", "kneeDb", "ratioDb", "attack", "release"},
		},
		{
			name:   "compander",
			node:   NewCompanderNode(),
			kind:   "com.nativeformat.plugin.compressor.compander",
			config: map[string]any{"detectionMode": "max", "kneeMode": "hard", "cutoffs": []float64{}},
			params: []string{
				"compressorThresholdDb", "compressorKneeDb", "compressorRatioDb",
				"expanderThresholdDb", "expanderKneeDb", "expanderRatioDb",
				"attack", "release",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := tt.node.Lower()
			require.NoError(t, err)

			assert.Equal(t, tt.node.NodeID(), node.ID)
			assert.Equal(t, tt.kind, node.Kind)
			assert.Equal(t, tt.config, node.Config)
			assert.Equal(t, score.AllContentPlaythrough, node.LoadingPolicy)
			assert.Len(t, node.Params, len(tt.params))

			for _, name := range tt.params {
				assert.Equal(t, []score.Command{}, node.Params[name], name)
			}
		})
	}
}

func TestParamDefaults(t *testing.T) {
	assert.Equal(t, 1.0, NewGainNode().Gain.InitialValue)
	assert.Equal(t, 264.0, NewEq3bandNode().LowCutoff.InitialValue)
	assert.Equal(t, 22050.0, NewFilterNode().HighCutoff.InitialValue)
	assert.Equal(t, -24.0, NewCompressorNode().ThresholdDb.InitialValue)
	assert.Equal(t, 0.0003, NewExpanderNode().Attack.InitialValue)
	assert.Equal(t, 0.25, NewCompanderNode().Release.InitialValue)
	assert.Equal(t, 1.0, NewStretchNode().FormantRatio.InitialValue)
}

func TestLower_Options(t *testing.T) {
	n := NewGainNode(score.WithID("gain-1"), score.WithLoadingPolicy(score.SomeContentPlaythrough))

	node, err := n.Lower()
	require.NoError(t, err)
	assert.Equal(t, "gain-1", node.ID)
	assert.Equal(t, score.SomeContentPlaythrough, node.LoadingPolicy)
}

func TestValidate_DomainFailures(t *testing.T) {
	badFile := NewFileNode(" ")

	badTime := NewFileNode("track.mp3")
	badTime.When = score.Time(math.NaN())

	badOffset := NewFileNode("track.mp3")
	badOffset.Offset = score.Time(-5)

	badLoop := NewLoopNode(0, score.Seconds(1))
	badLoop.LoopCount = -2

	badSine := NewSineNode(math.Inf(1), 0, 0)
	negativeSine := NewSineNode(-1, 0, 0)
	badNoise := NewNoiseNode(score.Time(-1), 0)

	badCutoffs := NewCompressorNode()
	badCutoffs.Cutoffs = []float64{200, 0}

	for name, n := range map[string]TypedNode{
		"empty file":        badFile,
		"nan when":          badTime,
		"negative offset":   badOffset,
		"loop count":        badLoop,
		"infinite freq":     badSine,
		"negative freq":     negativeSine,
		"negative when":     badNoise,
		"non-positive band": badCutoffs,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := n.Lower()
			require.ErrorIs(t, err, ErrDomainValidation)

			var lowerErr *LowerError
			require.ErrorAs(t, err, &lowerErr)
			assert.Equal(t, n.NodeID(), lowerErr.NodeID)
			assert.Equal(t, n.Kind(), lowerErr.Kind)
		})
	}
}

func TestValidate_LazyConstruction(t *testing.T) {
	n := NewLoopNode(0, score.Time(math.Inf(1)))

	assert.NotNil(t, n)
	assert.Error(t, n.Validate())
}

func TestModes_PassThrough(t *testing.T) {
	c := NewCompressorNode()
	c.DetectionMode = "peak"
	c.KneeMode = "round"
	c.Cutoffs = nil

	node, err := c.Lower()
	require.NoError(t, err)
	assert.Equal(t, "peak", node.Config["detectionMode"])
	assert.Equal(t, "round", node.Config["kneeMode"])
	assert.Equal(t, []float64{}, node.Config["cutoffs"])

	assert.Equal(t, DetectionMax, c.DetectionMode.Normalize())
	assert.Equal(t, KneeHard, c.KneeMode.Normalize())
	assert.Equal(t, DetectionRMS, DetectionRMS.Normalize())
	assert.Equal(t, FilterBandPass, FilterType("notch").Normalize())
	assert.Equal(t, FilterLowPass, FilterLowPass.Normalize())
}

func TestCustomNode(t *testing.T) {
	n := NewCustomNode("com.example.reverb", score.WithID("rev")).
		WithInput(PortAudio, score.ContentTypeAudio).
		WithOutput(PortAudio, score.ContentTypeAudio).
		Declare(FieldSpec{Name: "room", Type: typecheck.KindString, Default: "hall"}).
		Declare(FieldSpec{Name: "size", Type: typecheck.KindFloat}).
		Set("size", 0.8).
		Set("vendor", map[string]any{"x": 1})

	mix := n.Param("mix", 0.5)
	require.NoError(t, mix.SetValueAtTime(1, score.Seconds(1)))
	assert.Same(t, mix, n.Param("mix", 0))

	node, err := n.Lower()
	require.NoError(t, err)
	assert.Equal(t, "com.example.reverb", node.Kind)
	assert.Equal(t, "hall", node.Config["room"])
	assert.Equal(t, 0.8, node.Config["size"])
	assert.Contains(t, node.Config, "vendor")
	assert.Len(t, node.Params["mix"], 1)

	spec := n.Spec()
	_, ok := spec.Param("mix")
	assert.True(t, ok)
	assert.Equal(t, map[string]score.ContentType{PortAudio: score.ContentTypeAudio}, spec.Inputs)
}

func TestCustomNode_TypeMismatchSurfacesOnLower(t *testing.T) {
	n := NewCustomNode(fileKind.Kind).
		WithOutput(PortAudio, score.ContentTypeAudio).
		Declare(FieldSpec{Name: "file", Type: typecheck.KindString, Required: true}).
		Declare(FieldSpec{Name: "when", Type: typecheck.KindTime}).
		Set("file", 42)

	_, err := n.Lower()
	require.ErrorIs(t, err, typecheck.ErrTypeMismatch)

	var mismatch *typecheck.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "file", mismatch.Property)

	n.Set("file", "track.mp3").Set("when", "soon")
	_, err = n.Lower()
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "when", mismatch.Property)

	missing := NewCustomNode("com.example.x").Declare(FieldSpec{Name: "file", Type: typecheck.KindString, Required: true})
	_, err = missing.Lower()
	assert.ErrorIs(t, err, ErrDomainValidation)
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 13)

	seen := map[string]bool{}
	for _, k := range kinds {
		assert.False(t, seen[k.Kind], k.Kind)
		seen[k.Kind] = true
		assert.NotEmpty(t, k.Name)
		assert.NotNil(t, k.Inputs)
		assert.NotEmpty(t, k.Outputs, k.Kind)
	}

	spec, ok := Spec("com.nativeformat.plugin.compressor.compander")
	require.True(t, ok)
	assert.Len(t, spec.Inputs, 2)
	assert.Len(t, spec.Params, 8)

	field, ok := spec.Field("detectionMode")
	require.True(t, ok)
	assert.Equal(t, []string{"max", "rms"}, field.Enum)

	spec.Inputs["extra"] = score.ContentTypeAudio
	again, _ := Spec("com.nativeformat.plugin.compressor.compander")
	assert.Len(t, again.Inputs, 2)

	_, ok = Spec("com.example.unknown")
	assert.False(t, ok)

	loop, _ := Spec(loopKind.Kind)
	duration, _ := loop.Field("duration")
	assert.True(t, duration.Required)
}

func TestPorts(t *testing.T) {
	assert.Empty(t, NewFileNode("a").Inputs())
	assert.Equal(t, map[string]score.ContentType{PortAudio: score.ContentTypeAudio}, NewFileNode("a").Outputs())
	assert.Contains(t, NewExpanderNode().Inputs(), PortSidechain)

	g := NewGainNode()
	in := g.Inputs()
	in["other"] = score.ContentTypeAudio
	assert.Len(t, g.Inputs(), 1)
}
