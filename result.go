package search

// Stats counts the work done by one run.
type Stats struct {
	NodesExpanded   int
	NodesGenerated  int
	MaxFrontierSize int
}

// Result contains the outcome of a search.
type Result[S comparable] struct {
	Found bool
	// Goal is the goal node that ended the search, nil when nothing was found.
	Goal *Node[S]
	// Path lists the states from the initial state to the goal.
	Path []S
	// Actions lists the actions taken along Path; it has one element fewer.
	Actions   []any
	TotalCost float64

	Stats
}

// Depth returns the number of steps of the solution, or -1 when nothing was found.
func (r Result[S]) Depth() int {
	if !r.Found {
		return -1
	}
	return len(r.Path) - 1
}
