package codec

import (
	"github.com/dukex/nfgrapher/pkg/score"
)

// The wire structs mirror score.schema.json. Field names are the camelCase
// keys of the document; generic entities are converted to and from them.

type wireScore struct {
	Version string     `json:"version" validate:"required"`
	Graph   *wireGraph `json:"graph"   validate:"required"`
}

type wireGraph struct {
	ID            string       `json:"id"                      validate:"required"`
	Nodes         []wireNode   `json:"nodes"                   validate:"dive"`
	Edges         []wireEdge   `json:"edges"                   validate:"dive"`
	Scripts       []wireScript `json:"scripts"                 validate:"dive"`
	LoadingPolicy string       `json:"loadingPolicy,omitempty" validate:"omitempty,oneof=someContentPlaythrough allContentPlaythrough"`
}

type wireNode struct {
	ID            string                   `json:"id"                      validate:"required"`
	Kind          string                   `json:"kind"                    validate:"required"`
	Config        map[string]any           `json:"config"`
	Params        map[string][]wireCommand `json:"params"                  validate:"dive,dive"`
	LoadingPolicy string                   `json:"loadingPolicy,omitempty" validate:"omitempty,oneof=someContentPlaythrough allContentPlaythrough"`
}

type wireCommand struct {
	Name string         `json:"name" validate:"required"`
	Args map[string]any `json:"args"`
}

type wireEdge struct {
	ID         string `json:"id"                   validate:"required"`
	Source     string `json:"source"               validate:"required"`
	Target     string `json:"target"               validate:"required"`
	SourcePort string `json:"sourcePort,omitempty"`
	TargetPort string `json:"targetPort,omitempty"`
}

type wireScript struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required"`
}

// toWire converts a lowered score. Every vertex must be a *score.Node.
func toWire(s *score.Score) (*wireScore, error) {
	nodes, ok := s.Graph.GenericNodes()
	if !ok {
		return nil, score.ErrUnsupportedVertex
	}

	g := s.Graph
	w := &wireGraph{
		ID:            g.ID,
		Nodes:         make([]wireNode, 0, len(nodes)),
		Edges:         make([]wireEdge, 0, len(g.Edges)),
		Scripts:       make([]wireScript, 0, len(g.Scripts)),
		LoadingPolicy: string(g.LoadingPolicy),
	}

	for _, n := range nodes {
		w.Nodes = append(w.Nodes, nodeToWire(n))
	}

	for _, e := range g.Edges {
		w.Edges = append(w.Edges, wireEdge{
			ID:         e.ID,
			Source:     e.Source,
			Target:     e.Target,
			SourcePort: e.SourcePort,
			TargetPort: e.TargetPort,
		})
	}

	for _, sc := range g.Scripts {
		w.Scripts = append(w.Scripts, wireScript{Name: sc.Name, Code: sc.Code})
	}

	return &wireScore{Version: s.Version, Graph: w}, nil
}

func nodeToWire(n *score.Node) wireNode {
	config := n.Config
	if config == nil {
		config = map[string]any{}
	}

	params := make(map[string][]wireCommand, len(n.Params))

	for name, commands := range n.Params {
		wc := make([]wireCommand, 0, len(commands))
		for _, c := range commands {
			args := c.Args
			if args == nil {
				args = map[string]any{}
			}

			wc = append(wc, wireCommand{Name: c.Name, Args: args})
		}

		params[name] = wc
	}

	return wireNode{
		ID:            n.ID,
		Kind:          n.Kind,
		Config:        config,
		Params:        params,
		LoadingPolicy: string(n.LoadingPolicy),
	}
}

func fromWire(w *wireScore) *score.Score {
	g := &score.Graph{
		ID:            w.Graph.ID,
		Nodes:         make([]score.Vertex, 0, len(w.Graph.Nodes)),
		Edges:         make([]*score.Edge, 0, len(w.Graph.Edges)),
		Scripts:       make([]*score.Script, 0, len(w.Graph.Scripts)),
		LoadingPolicy: policy(w.Graph.LoadingPolicy),
	}

	for _, n := range w.Graph.Nodes {
		g.Nodes = append(g.Nodes, nodeFromWire(n))
	}

	for _, e := range w.Graph.Edges {
		g.Edges = append(g.Edges, &score.Edge{
			ID:         e.ID,
			Source:     e.Source,
			Target:     e.Target,
			SourcePort: e.SourcePort,
			TargetPort: e.TargetPort,
		})
	}

	for _, sc := range w.Graph.Scripts {
		g.Scripts = append(g.Scripts, score.NewScript(sc.Name, sc.Code))
	}

	return &score.Score{Graph: g, Version: w.Version}
}

func nodeFromWire(w wireNode) *score.Node {
	params := make(map[string][]score.Command, len(w.Params))

	for name, commands := range w.Params {
		out := make([]score.Command, 0, len(commands))
		for _, c := range commands {
			out = append(out, score.NewCommand(c.Name, c.Args))
		}

		params[name] = out
	}

	config := w.Config
	if config == nil {
		config = map[string]any{}
	}

	return &score.Node{
		ID:            w.ID,
		Kind:          w.Kind,
		Config:        config,
		Params:        params,
		LoadingPolicy: policy(w.LoadingPolicy),
	}
}

func policy(s string) score.LoadingPolicy {
	if s == "" {
		return score.AllContentPlaythrough
	}

	return score.LoadingPolicy(s)
}
