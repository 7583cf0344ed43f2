// Package telemetry provides hierarchical timing collection for ledger
// operations. Spans form a tree, so a snapshot load reports its parse and
// resolve phases nested under the file read that triggered them.
//
// Collectors travel through context so instrumentation never changes a
// function signature. Code paths that run without a collector get a no-op
// implementation and pay nothing.
//
// Example usage:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := telemetry.FromContext(ctx).Start("backup.load")
//	defer timer.End()
//
//	parse := timer.Child("backup.parse")
//	// ... work ...
//	parse.End()
//
//	collector.Report(os.Stderr)
package telemetry

import (
	"context"
	"io"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector accumulates timing spans for a single command invocation.
type Collector interface {
	// Start opens a top-level span. The returned timer must be ended with
	// End() when the operation completes.
	Start(name string) Timer

	// Report writes the collected spans to w as an indented tree.
	Report(w io.Writer)
}

// Timer tracks one span. Spans nest via Child.
type Timer interface {
	// End closes the span and records its duration.
	End()

	// Child opens a span nested under this one.
	Child(name string) Timer
}

// WithCollector attaches a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext extracts the collector from a context. When none is present a
// no-op collector is returned, never nil.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}
