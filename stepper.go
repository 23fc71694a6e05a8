package search

import "context"

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[S comparable] struct {
	// Current is the state popped by this step. Zero when the step found the frontier empty.
	Current S
	// Skipped is set when Current was popped but not expanded because a visited
	// check rejected it.
	Skipped      bool
	Done         bool
	Found        bool
	StepIndex    int
	FrontierSize int
	Stats        Stats
	// Result is set once Done is true.
	Result *Result[S]
}

// Stepper drives an engine run one frontier pop at a time
type Stepper[S comparable] struct {
	cancel context.CancelFunc
	run    *run[S]
}

// Stepper seeds a new run and returns a Stepper over it. It shares the engine's
// frontier, so no other run may start before the Stepper is finished or closed.
// The run is traced and measured like Search; its span ends when the run
// finishes, fails or is closed.
func (e *Engine[S]) Stepper(parent context.Context) (*Stepper[S], error) {
	ctx, cancel := context.WithCancel(parent)
	r, err := e.startRun(ctx, "search.Engine.Stepper")
	if err != nil {
		cancel()
		return nil, err
	}
	return &Stepper[S]{cancel: cancel, run: r}, nil
}

// Close abandons an unfinished run: later calls to Step return context.Canceled.
// A finished run is unaffected and keeps returning its final snapshot.
func (s *Stepper[S]) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.run.fail(context.Canceled)
}

// Step advances the search by one pop and returns a snapshot.
// Once the run is done every further Step returns the final snapshot again.
// Once a Step has failed every further Step returns the same error.
func (s *Stepper[S]) Step() (StepSnapshot[S], error) {
	return s.run.step()
}

// Done reports whether the run has finished or failed.
func (s *Stepper[S]) Done() bool { return s.run.done || s.run.err != nil }

func (r *run[S]) snapshot() StepSnapshot[S] {
	snapshot := StepSnapshot[S]{Done: r.done}
	if r.result != nil {
		snapshot.Found = r.result.Found
		snapshot.Result = r.result
	}
	return r.fill(snapshot)
}

func (r *run[S]) fill(snapshot StepSnapshot[S]) StepSnapshot[S] {
	snapshot.StepIndex = r.steps
	snapshot.FrontierSize = r.engine.frontier.Len()
	snapshot.Stats = r.stats
	return snapshot
}
