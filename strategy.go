package search

// PriorityFunc computes the priority of a node; lower values are expanded first.
// The value must be finite. A non-nil error aborts the search and is returned to
// the caller of Search unchanged.
type PriorityFunc[S comparable] func(node *Node[S], heuristic Heuristic[S]) (float64, error)

// BreadthFirst orders by depth, shallowest first.
func BreadthFirst[S comparable](node *Node[S], _ Heuristic[S]) (float64, error) {
	return float64(node.depth), nil
}

// DepthFirst orders by negated depth, deepest first.
func DepthFirst[S comparable](node *Node[S], _ Heuristic[S]) (float64, error) {
	return -float64(node.depth), nil
}

// UniformCost orders by path cost g(n).
func UniformCost[S comparable](node *Node[S], _ Heuristic[S]) (float64, error) {
	return node.pathCost, nil
}

// AStar orders by f(n) = g(n) + h(n).
func AStar[S comparable](node *Node[S], heuristic Heuristic[S]) (float64, error) {
	return node.pathCost + heuristic.H(node.state), nil
}

// Greedy orders by h(n) alone.
func Greedy[S comparable](node *Node[S], heuristic Heuristic[S]) (float64, error) {
	return heuristic.H(node.state), nil
}

// NewBreadthFirst returns an engine running breadth-first search over a Queue.
func NewBreadthFirst[S comparable](problem Problem[S], options ...Option) *Engine[S] {
	return NewEngine(problem, NewQueue[S](), BreadthFirst[S], nil, options...)
}

// NewDepthFirst returns an engine running depth-first search over a Stack.
func NewDepthFirst[S comparable](problem Problem[S], options ...Option) *Engine[S] {
	return NewEngine(problem, NewStack[S](), DepthFirst[S], nil, options...)
}

// NewUniformCost returns an engine running uniform-cost search over a PriorityQueue.
func NewUniformCost[S comparable](problem Problem[S], options ...Option) *Engine[S] {
	return NewEngine(problem, NewPriorityQueue[S](), UniformCost[S], nil, options...)
}

// NewAStar returns an engine running A* over a PriorityQueue.
func NewAStar[S comparable](problem Problem[S], heuristic Heuristic[S], options ...Option) *Engine[S] {
	return NewEngine(problem, NewPriorityQueue[S](), AStar[S], heuristic, options...)
}

// NewGreedy returns an engine running greedy best-first search over a PriorityQueue.
func NewGreedy[S comparable](problem Problem[S], heuristic Heuristic[S], options ...Option) *Engine[S] {
	return NewEngine(problem, NewPriorityQueue[S](), Greedy[S], heuristic, options...)
}
