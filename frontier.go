package search

import "fmt"

// Frontier stores generated but not yet expanded nodes and decides which one is
// expanded next. A state is held at most once; variants differ in which entry wins.
type Frontier[S comparable] interface {
	Push(node *Node[S], priority float64)
	// Pop removes and returns the next node. It fails with ErrEmptyFrontier when empty.
	Pop() (*Node[S], error)
	IsEmpty() bool
	Len() int
	Contains(state S) bool
}

// resetter is implemented by frontiers that can drop their contents in one call.
type resetter interface {
	Reset()
}

// Stack is a LIFO frontier. Priorities are ignored and the first occurrence of a
// state wins: pushing a state that is already present does nothing.
type Stack[S comparable] struct {
	nodes   []*Node[S]
	members map[S]struct{}
}

// NewStack returns an empty Stack.
func NewStack[S comparable]() *Stack[S] {
	return &Stack[S]{members: make(map[S]struct{})}
}

func (s *Stack[S]) Push(node *Node[S], _ float64) {
	if _, ok := s.members[node.state]; ok {
		return
	}
	s.nodes = append(s.nodes, node)
	s.members[node.state] = struct{}{}
}

func (s *Stack[S]) Pop() (*Node[S], error) {
	n := len(s.nodes)
	if n == 0 {
		return nil, fmt.Errorf("stack: %w", ErrEmptyFrontier)
	}
	node := s.nodes[n-1]
	s.nodes[n-1] = nil
	s.nodes = s.nodes[:n-1]
	delete(s.members, node.state)
	return node, nil
}

func (s *Stack[S]) IsEmpty() bool { return len(s.nodes) == 0 }
func (s *Stack[S]) Len() int      { return len(s.nodes) }

func (s *Stack[S]) Contains(state S) bool {
	_, ok := s.members[state]
	return ok
}

// Reset empties the stack.
func (s *Stack[S]) Reset() {
	clear(s.nodes)
	s.nodes = s.nodes[:0]
	clear(s.members)
}

// Queue is a FIFO frontier. Priorities are ignored and the first occurrence of a
// state wins, as for Stack.
type Queue[S comparable] struct {
	nodes   []*Node[S]
	head    int
	members map[S]struct{}
}

// NewQueue returns an empty Queue.
func NewQueue[S comparable]() *Queue[S] {
	return &Queue[S]{members: make(map[S]struct{})}
}

func (q *Queue[S]) Push(node *Node[S], _ float64) {
	if _, ok := q.members[node.state]; ok {
		return
	}
	q.nodes = append(q.nodes, node)
	q.members[node.state] = struct{}{}
}

func (q *Queue[S]) Pop() (*Node[S], error) {
	if q.head == len(q.nodes) {
		return nil, fmt.Errorf("queue: %w", ErrEmptyFrontier)
	}
	node := q.nodes[q.head]
	q.nodes[q.head] = nil
	q.head++
	// compact once the consumed prefix dominates the backing array
	if q.head > 32 && q.head*2 >= len(q.nodes) {
		q.nodes = append(q.nodes[:0], q.nodes[q.head:]...)
		q.head = 0
	}
	delete(q.members, node.state)
	return node, nil
}

func (q *Queue[S]) IsEmpty() bool { return q.Len() == 0 }
func (q *Queue[S]) Len() int      { return len(q.nodes) - q.head }

func (q *Queue[S]) Contains(state S) bool {
	_, ok := q.members[state]
	return ok
}

// Reset empties the queue.
func (q *Queue[S]) Reset() {
	clear(q.nodes)
	q.nodes = q.nodes[:0]
	q.head = 0
	clear(q.members)
}
