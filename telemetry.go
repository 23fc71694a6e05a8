package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/pdrpinto/search"

// telemetry holds the tracer and instruments of one engine.
type telemetry struct {
	tracer trace.Tracer

	runs      metric.Int64Counter
	expanded  metric.Int64Counter
	generated metric.Int64Counter
	duration  metric.Float64Histogram
}

// newTelemetry creates the instruments. An instrument that cannot be created is
// replaced by a no-op and reported once through the logger.
func newTelemetry(options Options) *telemetry {
	meter := options.MeterProvider.Meter(instrumentationName)
	t := &telemetry{tracer: options.TracerProvider.Tracer(instrumentationName)}

	var initErrors []string
	var err error

	t.runs, err = meter.Int64Counter("search_runs_total",
		metric.WithDescription("Number of completed search runs by outcome"),
	)
	if err != nil {
		initErrors = append(initErrors, "runs: "+err.Error())
		t.runs = noop.Int64Counter{}
	}

	t.expanded, err = meter.Int64Counter("search_nodes_expanded_total",
		metric.WithDescription("Nodes expanded across all search runs"),
	)
	if err != nil {
		initErrors = append(initErrors, "nodes_expanded: "+err.Error())
		t.expanded = noop.Int64Counter{}
	}

	t.generated, err = meter.Int64Counter("search_nodes_generated_total",
		metric.WithDescription("Nodes generated across all search runs"),
	)
	if err != nil {
		initErrors = append(initErrors, "nodes_generated: "+err.Error())
		t.generated = noop.Int64Counter{}
	}

	t.duration, err = meter.Float64Histogram("search_duration_seconds",
		metric.WithDescription("Wall time of a search run"),
		metric.WithUnit("s"),
	)
	if err != nil {
		initErrors = append(initErrors, "duration: "+err.Error())
		t.duration = noop.Float64Histogram{}
	}

	if len(initErrors) > 0 {
		options.Logger.Error("failed to initialize some search metrics (observability degraded)",
			slog.Int("failed_count", len(initErrors)),
			slog.Any("errors", initErrors),
		)
	}
	return t
}

// startSearchSpan creates the span covering one run, driven by Search or a Stepper.
func (t *telemetry) startSearchSpan(ctx context.Context, name, runID string, options Options, frontier any) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.String("search.run_id", runID),
			attribute.String("search.frontier", fmt.Sprintf("%T", frontier)),
			attribute.Bool("search.graph_search", options.GraphSearch),
			attribute.Bool("search.allow_revisit", options.AllowRevisit),
		),
	)
}

// finishSearch sets the result attributes on the span and records the run metrics.
func (t *telemetry) finishSearch(ctx context.Context, span trace.Span, elapsed time.Duration, stats Stats, found bool, totalCost float64, err error) {
	span.SetAttributes(
		attribute.Int("search.nodes_expanded", stats.NodesExpanded),
		attribute.Int("search.nodes_generated", stats.NodesGenerated),
		attribute.Int("search.max_frontier_size", stats.MaxFrontierSize),
	)

	outcome := "not_found"
	switch {
	case err != nil:
		outcome = "aborted"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case found:
		outcome = "found"
		span.SetAttributes(
			attribute.Bool("search.found", true),
			attribute.Float64("search.total_cost", totalCost),
		)
	default:
		span.SetAttributes(attribute.Bool("search.found", false))
	}

	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	t.runs.Add(ctx, 1, attrs)
	t.expanded.Add(ctx, int64(stats.NodesExpanded))
	t.generated.Add(ctx, int64(stats.NodesGenerated))
	t.duration.Record(ctx, elapsed.Seconds(), attrs)
}
