package typed

import (
	"strings"

	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/dukex/nfgrapher/pkg/typecheck"
)

var fileKind = KindSpec{
	Kind:        "com.nativeformat.plugin.file.file",
	Name:        "File",
	Description: "Plays back an audio file or track URI.",
	Fields: []FieldSpec{
		{Name: "file", Type: typecheck.KindString, Required: true, Description: "Path, URL or track URI of the audio"},
		whenField(),
		durationField(false),
		{Name: "offset", Type: typecheck.KindTime, Default: 0.0, Description: "Position in the file where playback begins"},
	},
	Params:  []ParamSpec{},
	Inputs:  map[string]score.ContentType{},
	Outputs: audioPorts,
}

// FileNode is a source that plays audio from File.
type FileNode struct {
	base

	File     string
	When     score.Time
	Duration score.Time
	Offset   score.Time
}

func NewFileNode(file string, opts ...score.Option) *FileNode {
	return &FileNode{base: newBase(&fileKind, opts), File: file}
}

func (n *FileNode) Config() map[string]any {
	return map[string]any{
		"file":     n.File,
		"when":     float64(n.When),
		"duration": float64(n.Duration),
		"offset":   float64(n.Offset),
	}
}

func (n *FileNode) Params() map[string][]score.Command { return map[string][]score.Command{} }

func (n *FileNode) Validate() error {
	if err := checkConfig(n.spec, n.Config()); err != nil {
		return err
	}

	if strings.TrimSpace(n.File) == "" {
		return &DomainError{Kind: n.Kind(), Property: "file", Msg: "must not be empty"}
	}

	for _, f := range []struct {
		name string
		t    score.Time
	}{{"when", n.When}, {"duration", n.Duration}, {"offset", n.Offset}} {
		if err := checkTime(n.Kind(), f.name, f.t); err != nil {
			return err
		}
	}

	return nil
}

func (n *FileNode) Lower() (*score.Node, error) { return lower(n) }

func (n *FileNode) Connect(target TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(n, target, opts...)
}

func (n *FileNode) ConnectToSource(source TypedNode, opts ...score.Option) (*score.Edge, error) {
	return Connect(source, n, opts...)
}

func (n *FileNode) Link(target score.Vertex, opts ...score.Option) (*score.Edge, error) {
	return link(n, target, opts)
}
