package typed

import (
	"maps"
	"slices"

	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/dukex/nfgrapher/pkg/typecheck"
)

// FieldSpec describes one configuration field of a node kind.
type FieldSpec struct {
	Name        string         `json:"name"`
	Type        typecheck.Kind `json:"-"`
	Description string         `json:"description,omitempty"`
	Required    bool           `json:"required,omitempty"`
	Default     any            `json:"default,omitempty"`
	Enum        []string       `json:"enum,omitempty"`
}

// ParamSpec describes one AudioParam of a node kind.
type ParamSpec struct {
	Name        string  `json:"name"`
	Default     float64 `json:"default"`
	Description string  `json:"description,omitempty"`
}

// KindSpec is the catalog entry of a node kind: its fields, params and ports.
type KindSpec struct {
	Kind        string                       `json:"kind"`
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	Fields      []FieldSpec                  `json:"fields"`
	Params      []ParamSpec                  `json:"params"`
	Inputs      map[string]score.ContentType `json:"inputs"`
	Outputs     map[string]score.ContentType `json:"outputs"`
}

// Field looks up a configuration field by wire name.
func (s KindSpec) Field(name string) (FieldSpec, bool) {
	i := slices.IndexFunc(s.Fields, func(f FieldSpec) bool { return f.Name == name })
	if i < 0 {
		return FieldSpec{}, false
	}

	return s.Fields[i], true
}

// Param looks up an AudioParam by wire name.
func (s KindSpec) Param(name string) (ParamSpec, bool) {
	i := slices.IndexFunc(s.Params, func(p ParamSpec) bool { return p.Name == name })
	if i < 0 {
		return ParamSpec{}, false
	}

	return s.Params[i], true
}

func (s KindSpec) clone() KindSpec {
	s.Fields = slices.Clone(s.Fields)
	s.Params = slices.Clone(s.Params)
	s.Inputs = maps.Clone(s.Inputs)
	s.Outputs = maps.Clone(s.Outputs)

	if s.Inputs == nil {
		s.Inputs = map[string]score.ContentType{}
	}

	if s.Outputs == nil {
		s.Outputs = map[string]score.ContentType{}
	}

	return s
}

// newParam builds the AudioParam named name at its catalog default.
func (s *KindSpec) newParam(name string) *AudioParam {
	p, ok := s.Param(name)
	if !ok {
		panic("typed: " + s.Kind + " declares no param " + name)
	}

	return NewAudioParam(p.Default)
}

var (
	audioPorts = map[string]score.ContentType{PortAudio: score.ContentTypeAudio}

	dynamicsInputs = map[string]score.ContentType{
		PortAudio:     score.ContentTypeAudio,
		PortSidechain: score.ContentTypeAudio,
	}
)

func whenField() FieldSpec {
	return FieldSpec{Name: "when", Type: typecheck.KindTime, Default: 0.0,
		Description: "Time at which the node starts producing output"}
}

func durationField(required bool) FieldSpec {
	return FieldSpec{Name: "duration", Type: typecheck.KindTime, Default: 0.0, Required: required,
		Description: "Length of the node's output"}
}

// builtins lists the catalog in a stable order.
var builtins = []*KindSpec{
	&eq3bandKind,
	&fileKind,
	&noiseKind,
	&silenceKind,
	&loopKind,
	&stretchKind,
	&delayKind,
	&gainKind,
	&sineKind,
	&filterKind,
	&compressorKind,
	&expanderKind,
	&companderKind,
}

// Kinds returns the catalog entries of every built-in node kind.
func Kinds() []KindSpec {
	out := make([]KindSpec, 0, len(builtins))
	for _, s := range builtins {
		out = append(out, s.clone())
	}

	return out
}

// Spec returns the catalog entry of a built-in kind.
func Spec(kind string) (KindSpec, bool) {
	for _, s := range builtins {
		if s.Kind == kind {
			return s.clone(), true
		}
	}

	return KindSpec{}, false
}
