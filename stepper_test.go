package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/graph"
	"github.com/pdrpinto/search/grid"
)

func TestStepper_MatchesSearch(t *testing.T) {
	start, goal := grid.Point{X: 0, Y: 0}, grid.Point{X: 6, Y: 4}
	walls := map[grid.Point]bool{{X: 3, Y: 0}: true, {X: 3, Y: 1}: true, {X: 3, Y: 2}: true, {X: 3, Y: 3}: true}
	problem := grid.Problem{Grid: grid.Grid{Width: 8, Height: 6, Walls: walls}, Start: start, Goal: goal}
	engine := search.NewAStar[grid.Point](problem, grid.Manhattan{Goal: goal})

	want, err := engine.Search(context.Background())
	require.NoError(t, err)

	stepper, err := engine.Stepper(context.Background())
	require.NoError(t, err)
	defer stepper.Close()

	var last search.StepSnapshot[grid.Point]
	for i := 1; !stepper.Done(); i++ {
		last, err = stepper.Step()
		require.NoError(t, err)
		require.Equal(t, i, last.StepIndex)
		require.GreaterOrEqual(t, last.Stats.NodesGenerated, last.Stats.NodesExpanded)
	}

	require.True(t, last.Done)
	require.True(t, last.Found)
	require.NotNil(t, last.Result)
	assert.Equal(t, goal, last.Current)
	assert.Equal(t, want.Path, last.Result.Path)
	assert.Equal(t, want.Actions, last.Result.Actions)
	assert.Equal(t, want.Stats, last.Result.Stats)
}

// listFrontier is a FIFO without de-duplication, so a state can be queued twice.
type listFrontier[S comparable] struct {
	nodes []*search.Node[S]
}

func (l *listFrontier[S]) Push(node *search.Node[S], _ float64) { l.nodes = append(l.nodes, node) }

func (l *listFrontier[S]) Pop() (*search.Node[S], error) {
	if len(l.nodes) == 0 {
		return nil, search.ErrEmptyFrontier
	}
	node := l.nodes[0]
	l.nodes = l.nodes[1:]
	return node, nil
}

func (l *listFrontier[S]) IsEmpty() bool { return len(l.nodes) == 0 }
func (l *listFrontier[S]) Len() int      { return len(l.nodes) }

func (l *listFrontier[S]) Contains(state S) bool {
	for _, node := range l.nodes {
		if node.State() == state {
			return true
		}
	}
	return false
}

func TestStepper_ReportsSkippedPops(t *testing.T) {
	g := newGraph(t,
		"A", "B", 1,
		"A", "C", 1,
		"B", "D", 1,
		"C", "D", 1,
		"D", "G", 1,
	)
	problem := graph.Problem[string]{Graph: g, Start: "A", Goal: "G"}
	engine := search.NewEngine[string](problem, &listFrontier[string]{}, search.BreadthFirst[string], nil)

	stepper, err := engine.Stepper(context.Background())
	require.NoError(t, err)

	var popped, skipped []string
	for !stepper.Done() {
		snapshot, err := stepper.Step()
		require.NoError(t, err)
		popped = append(popped, snapshot.Current)
		if snapshot.Skipped {
			skipped = append(skipped, snapshot.Current)
		}
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "D", "G"}, popped)
	assert.Equal(t, []string{"D"}, skipped)
}

func TestSearch_DrainsFrontierWithoutReset(t *testing.T) {
	g := newGraph(t,
		"A", "B", 1,
		"A", "C", 1,
		"A", "G", 1,
	)
	problem := graph.Problem[string]{Graph: g, Start: "A", Goal: "B"}
	frontier := &listFrontier[string]{}
	engine := search.NewEngine[string](problem, frontier, search.BreadthFirst[string], nil)

	first, err := engine.Search(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, frontier.Len(), "C and G are left behind")

	second, err := engine.Search(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.Stats, second.Stats)
}

func TestStepper_EmptyFrontierFinishes(t *testing.T) {
	g := newGraph(t, "A", "B", 1)
	g.AddNode("Z")
	problem := graph.Problem[string]{Graph: g, Start: "A", Goal: "Z"}

	stepper, err := search.NewBreadthFirst[string](problem).Stepper(context.Background())
	require.NoError(t, err)

	first, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, "A", first.Current)
	assert.Equal(t, 1, first.FrontierSize)
	assert.False(t, first.Done)

	second, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, "B", second.Current)
	assert.False(t, second.Done)

	final, err := stepper.Step()
	require.NoError(t, err)
	assert.True(t, final.Done)
	assert.False(t, final.Found)
	require.NotNil(t, final.Result)
	assert.Equal(t, 2, final.Result.NodesExpanded)

	again, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, final, again)
}

func TestStepper_Close(t *testing.T) {
	g := newGraph(t, "A", "B", 1, "B", "C", 1)
	problem := graph.Problem[string]{Graph: g, Start: "A", Goal: "C"}

	stepper, err := search.NewBreadthFirst[string](problem).Stepper(context.Background())
	require.NoError(t, err)

	_, err = stepper.Step()
	require.NoError(t, err)

	stepper.Close()
	_, err = stepper.Step()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStepper_FailureEndsRun(t *testing.T) {
	g := newGraph(t, "A", "B", 1, "B", "C", 1)
	problem := graph.Problem[string]{Graph: g, Start: "A", Goal: "C"}
	engine := search.NewBreadthFirst[string](problem, search.WithMaxExpansions(1))

	stepper, err := engine.Stepper(context.Background())
	require.NoError(t, err)
	defer stepper.Close()

	_, err = stepper.Step()
	require.NoError(t, err)
	assert.False(t, stepper.Done())

	_, first := stepper.Step()
	require.ErrorIs(t, first, search.ErrExpansionLimit)
	assert.True(t, stepper.Done())

	for range 3 {
		snapshot, err := stepper.Step()
		assert.Equal(t, first, err)
		assert.Nil(t, snapshot.Result)
		assert.False(t, snapshot.Found)
	}
}

func TestStepper_ProblemErrorEndsRun(t *testing.T) {
	g := newGraph(t, "A", "B", 1, "B", "C", 1, "C", "G", 1)
	problem := failingProblem{Problem: graph.Problem[string]{Graph: g, Start: "A", Goal: "G"}, failAt: "B"}
	stepper, err := search.NewBreadthFirst[string](problem).Stepper(context.Background())
	require.NoError(t, err)
	defer stepper.Close()

	var steps int
	for !stepper.Done() {
		_, err = stepper.Step()
		steps++
		require.Less(t, steps, 10)
	}
	assert.Same(t, errAborted, err)

	_, err = stepper.Step()
	assert.Same(t, errAborted, err)
}

func TestStepper_CloseAfterDone(t *testing.T) {
	g := newGraph(t, "A", "B", 1)
	problem := graph.Problem[string]{Graph: g, Start: "A", Goal: "B"}

	stepper, err := search.NewBreadthFirst[string](problem).Stepper(context.Background())
	require.NoError(t, err)

	var final search.StepSnapshot[string]
	for !stepper.Done() {
		final, err = stepper.Step()
		require.NoError(t, err)
	}
	stepper.Close()

	again, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, final, again)
	assert.True(t, again.Found)
}
