package search

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Options defines parameters for the search.
type Options struct {
	// GraphSearch tracks visited states. When false the engine runs tree search.
	GraphSearch bool
	// AllowRevisit re-expands a state whenever a strictly cheaper path to it is popped.
	// Needed for optimal results with negative edge costs. Only used with GraphSearch.
	AllowRevisit bool
	// MaxExpansions aborts a run with ErrExpansionLimit once that many nodes were
	// expanded. Zero means unlimited.
	MaxExpansions int

	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithGraphSearch toggles visited-state tracking. Enabled by default.
func WithGraphSearch(enabled bool) Option {
	return func(options *Options) { options.GraphSearch = enabled }
}

// WithRevisit toggles best-cost tracking in place of a plain closed set.
func WithRevisit(enabled bool) Option {
	return func(options *Options) { options.AllowRevisit = enabled }
}

// WithMaxExpansions bounds the number of expansions per run.
func WithMaxExpansions(limit int) Option {
	return func(options *Options) { options.MaxExpansions = limit }
}

// WithLogger sets the logger used for run-level records.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithTracerProvider sets where search spans are sent. Defaults to the global provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(options *Options) { options.TracerProvider = provider }
}

// WithMeterProvider sets where search metrics are sent. Defaults to the global provider.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(options *Options) { options.MeterProvider = provider }
}

// Engine runs a search over an injected Problem, Frontier, PriorityFunc and Heuristic.
//
// An Engine owns its frontier: runs must not overlap. Serialized calls to Search
// or Stepper are safe because every run starts from a reset frontier and empty
// visited state.
type Engine[S comparable] struct {
	problem   Problem[S]
	frontier  Frontier[S]
	priority  PriorityFunc[S]
	heuristic Heuristic[S]
	options   Options
	telemetry *telemetry
}

// NewEngine wires a search engine. A nil heuristic means NullHeuristic.
func NewEngine[S comparable](
	problem Problem[S],
	frontier Frontier[S],
	priority PriorityFunc[S],
	heuristic Heuristic[S],
	options ...Option,
) *Engine[S] {
	// --- Apply options ---
	engineOptions := Options{GraphSearch: true}
	for _, option := range options {
		option(&engineOptions)
	}
	if engineOptions.Logger == nil {
		engineOptions.Logger = slog.Default()
	}
	if engineOptions.TracerProvider == nil {
		engineOptions.TracerProvider = otel.GetTracerProvider()
	}
	if engineOptions.MeterProvider == nil {
		engineOptions.MeterProvider = otel.GetMeterProvider()
	}
	if heuristic == nil {
		heuristic = NullHeuristic[S]{}
	}

	return &Engine[S]{
		problem:   problem,
		frontier:  frontier,
		priority:  priority,
		heuristic: heuristic,
		options:   engineOptions,
		telemetry: newTelemetry(engineOptions),
	}
}

// Options returns the resolved configuration of the engine.
func (e *Engine[S]) Options() Options { return e.options }

// Search runs the loop until a goal is popped or the frontier is exhausted.
//
// Not finding a goal is not an error: the Result has Found == false and an
// infinite TotalCost. Errors raised by the Problem or the priority function are
// returned unchanged, without a partial result.
func (e *Engine[S]) Search(ctx context.Context) (Result[S], error) {
	r, err := e.startRun(ctx, "search.Engine.Search")
	if err != nil {
		return Result[S]{}, err
	}
	if err := r.drain(); err != nil {
		return Result[S]{}, err
	}
	return *r.result, nil
}

// run holds the state of one search invocation.
type run[S comparable] struct {
	ctx    context.Context
	engine *Engine[S]

	logger   *slog.Logger
	span     trace.Span
	started  time.Time
	reported bool

	closed   map[S]struct{}
	bestCost map[S]float64

	stats  Stats
	steps  int
	done   bool
	err    error
	result *Result[S]
}

// startRun opens the span and run-scoped logger, resets the frontier and seeds it
// with the root node.
func (e *Engine[S]) startRun(ctx context.Context, spanName string) (*run[S], error) {
	runID := uuid.NewString()
	ctx, span := e.telemetry.startSearchSpan(ctx, spanName, runID, e.options, e.frontier)

	r := &run[S]{
		ctx:      ctx,
		engine:   e,
		logger:   e.options.Logger.With(slog.String("run_id", runID)),
		span:     span,
		started:  time.Now(),
		closed:   make(map[S]struct{}),
		bestCost: make(map[S]float64),
	}
	r.logger.Debug("search started",
		slog.Bool("graph_search", e.options.GraphSearch),
		slog.Bool("allow_revisit", e.options.AllowRevisit),
	)

	if err := r.seed(); err != nil {
		r.fail(err)
		return nil, err
	}
	return r, nil
}

func (r *run[S]) seed() error {
	e := r.engine
	if rs, ok := e.frontier.(resetter); ok {
		rs.Reset()
	} else {
		for !e.frontier.IsEmpty() {
			if _, err := e.frontier.Pop(); err != nil {
				return err
			}
		}
	}

	initial := e.problem.InitialState()
	root := NewRoot(initial)
	priority, err := e.prioritize(root)
	if err != nil {
		return err
	}
	e.frontier.Push(root, priority)
	r.stats.NodesGenerated = 1

	if e.options.AllowRevisit {
		r.bestCost[initial] = 0
	}
	return nil
}

// drain steps the run until it is done.
func (r *run[S]) drain() error {
	for !r.done {
		if _, err := r.step(); err != nil {
			return err
		}
	}
	return nil
}

// step advances the run by one iteration. The first error ends the run and is
// returned by every later call.
func (r *run[S]) step() (StepSnapshot[S], error) {
	if r.err != nil {
		return StepSnapshot[S]{}, r.err
	}
	snapshot, err := r.advance()
	switch {
	case err != nil:
		r.fail(err)
	case r.done:
		r.report()
	}
	return snapshot, err
}

// fail latches err as the outcome of the run.
func (r *run[S]) fail(err error) {
	if r.err != nil || r.done {
		return
	}
	r.err = err
	r.report()
}

// report ends the span, records metrics and logs the outcome. Only the first call
// has any effect.
func (r *run[S]) report() {
	if r.reported {
		return
	}
	r.reported = true
	defer r.span.End()

	found := r.found()
	var totalCost float64
	if found {
		totalCost = r.result.TotalCost
	}
	r.engine.telemetry.finishSearch(r.ctx, r.span, time.Since(r.started), r.stats, found, totalCost, r.err)

	if r.err != nil {
		r.logger.Warn("search aborted",
			slog.Any("error", r.err),
			slog.Int("nodes_expanded", r.stats.NodesExpanded),
			slog.Int("nodes_generated", r.stats.NodesGenerated),
		)
		return
	}
	r.logger.Debug("search finished",
		slog.Bool("found", found),
		slog.Int("nodes_expanded", r.stats.NodesExpanded),
		slog.Int("nodes_generated", r.stats.NodesGenerated),
		slog.Int("max_frontier_size", r.stats.MaxFrontierSize),
		slog.Float64("total_cost", r.result.TotalCost),
	)
}

// advance performs one iteration of the loop: pop, goal test, visited check, expand.
func (r *run[S]) advance() (StepSnapshot[S], error) {
	if r.done {
		return r.snapshot(), nil
	}
	if err := r.ctx.Err(); err != nil {
		return StepSnapshot[S]{}, err
	}

	e := r.engine
	if e.frontier.IsEmpty() {
		r.finish(r.failureResult())
		return r.snapshot(), nil
	}

	r.stats.MaxFrontierSize = max(r.stats.MaxFrontierSize, e.frontier.Len())
	current, err := e.frontier.Pop()
	if err != nil {
		return StepSnapshot[S]{}, err
	}
	r.steps++

	if e.problem.IsGoal(current.state) {
		r.finish(r.successResult(current))
		snapshot := r.snapshot()
		snapshot.Current = current.state
		return snapshot, nil
	}

	snapshot := StepSnapshot[S]{Current: current.state}
	if !r.visit(current) {
		snapshot.Skipped = true
		return r.fill(snapshot), nil
	}

	if limit := e.options.MaxExpansions; limit > 0 && r.stats.NodesExpanded >= limit {
		return StepSnapshot[S]{}, fmt.Errorf("%w: %d nodes expanded", ErrExpansionLimit, r.stats.NodesExpanded)
	}
	if err := r.expand(current); err != nil {
		return StepSnapshot[S]{}, err
	}
	return r.fill(snapshot), nil
}

// visit applies graph-search bookkeeping to a popped node and reports whether it
// should be expanded.
func (r *run[S]) visit(node *Node[S]) bool {
	options := r.engine.options
	if !options.GraphSearch {
		return true
	}
	if options.AllowRevisit {
		if node.pathCost > r.best(node.state) {
			return false
		}
		r.bestCost[node.state] = node.pathCost
		return true
	}
	if _, ok := r.closed[node.state]; ok {
		return false
	}
	r.closed[node.state] = struct{}{}
	return true
}

func (r *run[S]) expand(node *Node[S]) error {
	e := r.engine
	r.stats.NodesExpanded++

	successors, err := e.problem.Successors(node.state)
	if err != nil {
		return err
	}

	for _, successor := range successors {
		if e.options.GraphSearch {
			if e.options.AllowRevisit {
				// best cost is only recorded on pop so competing paths can share the frontier
				if node.pathCost+successor.Cost >= r.best(successor.State) {
					continue
				}
			} else if _, ok := r.closed[successor.State]; ok {
				continue
			}
		}

		child := NewChild(node, successor.State, successor.Action, successor.Cost)
		priority, err := e.prioritize(child)
		if err != nil {
			return err
		}
		e.frontier.Push(child, priority)
		r.stats.NodesGenerated++
	}
	return nil
}

func (r *run[S]) best(state S) float64 {
	if cost, ok := r.bestCost[state]; ok {
		return cost
	}
	return math.Inf(1)
}

func (e *Engine[S]) prioritize(node *Node[S]) (float64, error) {
	priority, err := e.priority(node, e.heuristic)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(priority) || math.IsInf(priority, 0) {
		return 0, fmt.Errorf("%w: got %v for state %v", ErrInvalidPriority, priority, node.state)
	}
	return priority, nil
}

func (r *run[S]) finish(result Result[S]) {
	r.done = true
	r.result = &result
}

func (r *run[S]) found() bool {
	return r != nil && r.result != nil && r.result.Found
}

func (r *run[S]) successResult(goal *Node[S]) Result[S] {
	path, actions := goal.Path()
	return Result[S]{
		Found:     true,
		Goal:      goal,
		Path:      path,
		Actions:   actions,
		TotalCost: goal.pathCost,
		Stats:     r.stats,
	}
}

func (r *run[S]) failureResult() Result[S] {
	return Result[S]{
		Path:      []S{},
		Actions:   []any{},
		TotalCost: math.Inf(1),
		Stats:     r.stats,
	}
}
