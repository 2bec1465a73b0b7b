// Package score defines the generic, serialization-ready representation of an
// audio graph: scores, graphs, nodes, edges, scripts and automation commands.
package score

import (
	"errors"
	"fmt"
)

// LoadingPolicy controls how much content must be resident before playback starts.
type LoadingPolicy string

const (
	SomeContentPlaythrough LoadingPolicy = "someContentPlaythrough"
	AllContentPlaythrough  LoadingPolicy = "allContentPlaythrough"
)

// Valid reports whether p is one of the known loading policies.
func (p LoadingPolicy) Valid() bool {
	return p == SomeContentPlaythrough || p == AllContentPlaythrough
}

// ContentType is the semantic kind of content flowing through a port.
type ContentType string

const ContentTypeAudio ContentType = "com.nativeformat.content.audio"

// ErrUnsupportedVertex is returned when a graph holds a vertex that is neither a
// generic Node nor something that can lower itself to one.
var ErrUnsupportedVertex = errors.New("unsupported vertex")

// Vertex is anything that can sit in a Graph's node list.
type Vertex interface {
	NodeID() string
}

// Lowerer is implemented by builder nodes that convert themselves to a generic Node.
type Lowerer interface {
	Lower() (*Node, error)
}

// Linker is implemented by vertices that enforce their own connection rules.
type Linker interface {
	Link(target Vertex, opts ...Option) (*Edge, error)
}

// Script is a named piece of code shipped with a graph.
type Script struct {
	Name string
	Code string
}

// NewScript creates a script.
func NewScript(name, code string) *Script {
	return &Script{Name: name, Code: code}
}

// Edge routes audio from one node to another.
type Edge struct {
	ID         string
	Source     string
	Target     string
	SourcePort string
	TargetPort string
}

// NewEdge creates an edge between two node ids. The edge id is generated unless
// WithID is given.
func NewEdge(source, target string, opts ...Option) *Edge {
	s := Resolve(opts...)

	return &Edge{
		ID:         s.ID,
		Source:     source,
		Target:     target,
		SourcePort: s.SourcePort,
		TargetPort: s.TargetPort,
	}
}

// Command is one automation instruction applied to a param over time.
type Command struct {
	Name string
	Args map[string]any
}

// NewCommand creates a command, never leaving Args nil.
func NewCommand(name string, args map[string]any) Command {
	if args == nil {
		args = map[string]any{}
	}

	return Command{Name: name, Args: args}
}

// Node is the wire-level representation of a processing unit.
type Node struct {
	ID            string
	Kind          string
	Config        map[string]any
	Params        map[string][]Command
	LoadingPolicy LoadingPolicy
}

// NewNode creates a generic node of the given plugin kind.
func NewNode(kind string, config map[string]any, params map[string][]Command, opts ...Option) *Node {
	s := Resolve(opts...)

	if config == nil {
		config = map[string]any{}
	}

	if params == nil {
		params = map[string][]Command{}
	}

	return &Node{
		ID:            s.ID,
		Kind:          kind,
		Config:        config,
		Params:        params,
		LoadingPolicy: s.LoadingPolicy,
	}
}

// NodeID returns the node id.
func (n *Node) NodeID() string {
	return n.ID
}

// Connect creates an edge with n as source and target as target. Neither node
// is modified.
func (n *Node) Connect(target Vertex, opts ...Option) *Edge {
	return NewEdge(n.ID, target.NodeID(), opts...)
}

// Score is the top-level versioned document wrapping one graph.
type Score struct {
	Graph   *Graph
	Version string
}

// New creates a score for graph at CurrentVersion.
func New(graph *Graph, opts ...Option) *Score {
	s := Resolve(opts...)

	version := s.Version
	if version == "" {
		version = CurrentVersion
	}

	return &Score{Graph: graph, Version: version}
}

// Lower returns a copy of the score whose graph holds only generic nodes.
func (s *Score) Lower() (*Score, error) {
	if s == nil || s.Graph == nil {
		return nil, fmt.Errorf("score has no graph")
	}

	graph, err := s.Graph.Lower()
	if err != nil {
		return nil, err
	}

	return &Score{Graph: graph, Version: s.Version}, nil
}
