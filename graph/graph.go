// Package graph provides a weighted directed graph as a search.Problem, plus the
// policies that only make sense for explicit graphs: a table heuristic and a
// negative-cycle guard for priority functions.
package graph

import (
	"errors"
	"fmt"

	"github.com/pdrpinto/search"
)

// ErrNegativeCycle is returned by a CycleGuard priority function when a path grows
// longer than the graph has nodes.
var ErrNegativeCycle = errors.New("negative cycle detected")

// Edge is a directed, weighted edge. It is the action recorded on search nodes.
type Edge[N comparable] struct {
	From N
	To   N
	Cost float64
}

// Graph is a weighted directed graph. Edges keep their insertion order so that
// searches over it are deterministic.
type Graph[N comparable] struct {
	edges map[N][]Edge[N]
	nodes []N
}

// New returns an empty graph.
func New[N comparable]() *Graph[N] {
	return &Graph[N]{edges: make(map[N][]Edge[N])}
}

// AddNode adds n if it is not already present.
func (g *Graph[N]) AddNode(n N) {
	if _, ok := g.edges[n]; ok {
		return
	}
	g.edges[n] = nil
	g.nodes = append(g.nodes, n)
}

// AddEdge adds a directed edge; both endpoints are added as nodes.
func (g *Graph[N]) AddEdge(from, to N, cost float64) {
	g.AddNode(from)
	g.AddNode(to)
	g.edges[from] = append(g.edges[from], Edge[N]{From: from, To: to, Cost: cost})
}

// AddUndirected adds an edge in both directions with the same cost.
func (g *Graph[N]) AddUndirected(a, b N, cost float64) {
	g.AddEdge(a, b, cost)
	g.AddEdge(b, a, cost)
}

// Neighbors returns the outgoing edges of n in insertion order.
func (g *Graph[N]) Neighbors(n N) []Edge[N] { return g.edges[n] }

// Nodes returns every node in insertion order.
func (g *Graph[N]) Nodes() []N { return g.nodes }

// Len returns the number of nodes.
func (g *Graph[N]) Len() int { return len(g.nodes) }

// Problem searches for a path from Start to Goal in Graph.
type Problem[N comparable] struct {
	Graph *Graph[N]
	Start N
	Goal  N
}

var _ search.Problem[string] = Problem[string]{}

func (p Problem[N]) InitialState() N    { return p.Start }
func (p Problem[N]) IsGoal(state N) bool { return state == p.Goal }

func (p Problem[N]) Successors(state N) ([]search.Successor[N], error) {
	edges := p.Graph.Neighbors(state)
	successors := make([]search.Successor[N], 0, len(edges))
	for _, edge := range edges {
		successors = append(successors, search.Successor[N]{
			State:  edge.To,
			Action: edge,
			Cost:   edge.Cost,
		})
	}
	return successors, nil
}

// TableHeuristic looks estimates up in a map; missing nodes estimate 0.
// The flags are taken on trust.
type TableHeuristic[N comparable] struct {
	Values       map[N]float64
	IsAdmissible bool
	IsConsistent bool
}

func (h TableHeuristic[N]) H(state N) float64 { return h.Values[state] }
func (h TableHeuristic[N]) Admissible() bool  { return h.IsAdmissible }
func (h TableHeuristic[N]) Consistent() bool  { return h.IsConsistent }

// CycleGuard wraps a priority function so that it fails with ErrNegativeCycle as soon
// as a node's path holds more states than the graph has nodes. Revisiting graph
// search only builds simple paths unless a negative cycle is reachable.
func CycleGuard[N comparable](base search.PriorityFunc[N], maxNodes int) search.PriorityFunc[N] {
	return func(node *search.Node[N], heuristic search.Heuristic[N]) (float64, error) {
		if pathLength := node.Depth() + 1; pathLength > maxNodes {
			return 0, fmt.Errorf("%w: path length %d exceeds %d nodes at %v",
				ErrNegativeCycle, pathLength, maxNodes, node.State())
		}
		return base(node, heuristic)
	}
}
