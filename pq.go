package search

import (
	"container/heap"
	"fmt"
)

type priorityQueueItem[S comparable] struct {
	node     *Node[S]
	priority float64
	sequence uint64
}

// priorityHeap is the container/heap backing of PriorityQueue. It may hold stale
// entries that were superseded by a better push.
type priorityHeap[S comparable] []*priorityQueueItem[S]

func (h priorityHeap[S]) Len() int { return len(h) }
func (h priorityHeap[S]) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].sequence < h[j].sequence
}
func (h priorityHeap[S]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *priorityHeap[S]) Push(x any) {
	*h = append(*h, x.(*priorityQueueItem[S]))
}

func (h *priorityHeap[S]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// PriorityQueue is a min-first frontier. Equal priorities pop in insertion order.
//
// Pushing a state that is already present replaces it only when the new priority is
// strictly lower. The replaced entry is left in the heap and skipped when it surfaces
// (lazy deletion), so Len counts live entries, not heap slots.
type PriorityQueue[S comparable] struct {
	entries  priorityHeap[S]
	live     map[S]*priorityQueueItem[S]
	sequence uint64
}

// NewPriorityQueue returns an empty PriorityQueue.
func NewPriorityQueue[S comparable]() *PriorityQueue[S] {
	return &PriorityQueue[S]{live: make(map[S]*priorityQueueItem[S])}
}

func (q *PriorityQueue[S]) Push(node *Node[S], priority float64) {
	if current, ok := q.live[node.state]; ok && priority >= current.priority {
		return
	}
	item := &priorityQueueItem[S]{node: node, priority: priority, sequence: q.sequence}
	q.sequence++
	q.live[node.state] = item
	heap.Push(&q.entries, item)
}

func (q *PriorityQueue[S]) Pop() (*Node[S], error) {
	for q.entries.Len() > 0 {
		item := heap.Pop(&q.entries).(*priorityQueueItem[S])
		if q.live[item.node.state] != item {
			continue
		}
		delete(q.live, item.node.state)
		return item.node, nil
	}
	return nil, fmt.Errorf("priority queue: %w", ErrEmptyFrontier)
}

func (q *PriorityQueue[S]) IsEmpty() bool { return len(q.live) == 0 }
func (q *PriorityQueue[S]) Len() int      { return len(q.live) }

func (q *PriorityQueue[S]) Contains(state S) bool {
	_, ok := q.live[state]
	return ok
}

// Priority returns the live priority recorded for state.
func (q *PriorityQueue[S]) Priority(state S) (float64, bool) {
	item, ok := q.live[state]
	if !ok {
		return 0, false
	}
	return item.priority, true
}

// Reset empties the queue, stale entries included.
func (q *PriorityQueue[S]) Reset() {
	clear(q.entries)
	q.entries = q.entries[:0]
	clear(q.live)
	q.sequence = 0
}
