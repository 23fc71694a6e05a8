package search

// Successor is one outgoing transition of a state. Cost may be negative.
type Successor[S comparable] struct {
	State  S
	Action any
	Cost   float64
}

// Problem defines the state space being searched.
// S must be comparable so it can be used in maps.
//
// A non-nil error from Successors aborts the search; the engine returns it unchanged.
type Problem[S comparable] interface {
	InitialState() S
	IsGoal(state S) bool
	Successors(state S) ([]Successor[S], error)
}

// Heuristic estimates the remaining cost from a state to the nearest goal.
// Admissible and Consistent describe the heuristic; they are not checked at runtime.
type Heuristic[S comparable] interface {
	H(state S) float64
	Admissible() bool
	Consistent() bool
}

// NullHeuristic returns 0 for every state. It is the default for uninformed strategies.
type NullHeuristic[S comparable] struct{}

func (NullHeuristic[S]) H(S) float64      { return 0 }
func (NullHeuristic[S]) Admissible() bool { return true }
func (NullHeuristic[S]) Consistent() bool { return true }

// HeuristicFunc adapts a plain function to the Heuristic interface.
// It makes no admissibility or consistency claim.
type HeuristicFunc[S comparable] func(state S) float64

func (f HeuristicFunc[S]) H(state S) float64 { return f(state) }
func (HeuristicFunc[S]) Admissible() bool    { return false }
func (HeuristicFunc[S]) Consistent() bool    { return false }
