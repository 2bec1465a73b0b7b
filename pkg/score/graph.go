package score

import "fmt"

// Graph is a node/edge/script collection describing one audio pipeline.
// Nodes may be generic *Node values or builder nodes implementing Lowerer;
// Lower collapses the latter into generic nodes.
type Graph struct {
	ID            string
	Nodes         []Vertex
	Edges         []*Edge
	Scripts       []*Script
	LoadingPolicy LoadingPolicy
}

// NewGraph creates an empty graph.
func NewGraph(opts ...Option) *Graph {
	s := Resolve(opts...)

	return &Graph{
		ID:            s.ID,
		Nodes:         []Vertex{},
		Edges:         []*Edge{},
		Scripts:       []*Script{},
		LoadingPolicy: s.LoadingPolicy,
	}
}

// AddNode appends nodes to the graph.
func (g *Graph) AddNode(nodes ...Vertex) *Graph {
	g.Nodes = append(g.Nodes, nodes...)

	return g
}

// AddEdge appends edges to the graph.
func (g *Graph) AddEdge(edges ...*Edge) *Graph {
	g.Edges = append(g.Edges, edges...)

	return g
}

// AddScript appends scripts to the graph.
func (g *Graph) AddScript(scripts ...*Script) *Graph {
	g.Scripts = append(g.Scripts, scripts...)

	return g
}

// Connect creates an edge from source to target and appends it. When source
// enforces connection rules (Linker) they apply and any violation is returned.
func (g *Graph) Connect(source, target Vertex, opts ...Option) (*Edge, error) {
	var edge *Edge

	if linker, ok := source.(Linker); ok {
		e, err := linker.Link(target, opts...)
		if err != nil {
			return nil, err
		}

		edge = e
	} else {
		edge = NewEdge(source.NodeID(), target.NodeID(), opts...)
	}

	g.Edges = append(g.Edges, edge)

	return edge, nil
}

// Node returns the first vertex with the given id.
func (g *Graph) Node(id string) (Vertex, bool) {
	for _, n := range g.Nodes {
		if n.NodeID() == id {
			return n, true
		}
	}

	return nil, false
}

// GenericNodes returns the graph's nodes when all of them are generic.
func (g *Graph) GenericNodes() ([]*Node, bool) {
	nodes := make([]*Node, 0, len(g.Nodes))

	for _, v := range g.Nodes {
		n, ok := v.(*Node)
		if !ok {
			return nil, false
		}

		nodes = append(nodes, n)
	}

	return nodes, true
}

// Lower returns a copy of g in which every Lowerer has been replaced by its
// generic Node. The first lowering failure is returned. g is not modified.
func (g *Graph) Lower() (*Graph, error) {
	nodes := make([]Vertex, 0, len(g.Nodes))

	for i, v := range g.Nodes {
		switch n := v.(type) {
		case *Node:
			nodes = append(nodes, n)
		case Lowerer:
			lowered, err := n.Lower()
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, lowered)
		default:
			return nil, fmt.Errorf("%w: nodes[%d] is %T", ErrUnsupportedVertex, i, v)
		}
	}

	return &Graph{
		ID:            g.ID,
		Nodes:         nodes,
		Edges:         g.Edges,
		Scripts:       g.Scripts,
		LoadingPolicy: g.LoadingPolicy,
	}, nil
}
