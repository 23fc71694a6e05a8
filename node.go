package search

import "slices"

// Node is an entry of the search tree. It pairs a state with the path that reached it
// through a chain of parent references. Nodes are never modified after construction.
type Node[S comparable] struct {
	state    S
	parent   *Node[S]
	action   any
	pathCost float64
	depth    int
}

// NewRoot returns the node for the initial state: no parent, no action, cost 0, depth 0.
func NewRoot[S comparable](state S) *Node[S] {
	return &Node[S]{state: state}
}

// NewChild returns the node reached from parent by taking action at stepCost.
func NewChild[S comparable](parent *Node[S], state S, action any, stepCost float64) *Node[S] {
	return &Node[S]{
		state:    state,
		parent:   parent,
		action:   action,
		pathCost: parent.pathCost + stepCost,
		depth:    parent.depth + 1,
	}
}

func (n *Node[S]) State() S          { return n.state }
func (n *Node[S]) Parent() *Node[S]  { return n.parent }
func (n *Node[S]) Action() any       { return n.action }
func (n *Node[S]) PathCost() float64 { return n.pathCost }
func (n *Node[S]) Depth() int        { return n.depth }

// IsRoot reports whether n has no parent.
func (n *Node[S]) IsRoot() bool { return n.parent == nil }

// Path walks the parent chain back to the root and returns the visited states and
// the actions taken, both ordered from the initial state to n.
// len(actions) is always len(states)-1.
func (n *Node[S]) Path() ([]S, []any) {
	states := make([]S, 0, n.depth+1)
	actions := make([]any, 0, n.depth)
	for current := n; current != nil; current = current.parent {
		states = append(states, current.state)
		if current.parent != nil {
			actions = append(actions, current.action)
		}
	}
	slices.Reverse(states)
	slices.Reverse(actions)
	return states, actions
}
