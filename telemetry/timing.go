package telemetry

import (
	"io"
	"sync"
	"time"
)

// TimingCollector records spans as a tree of wall-clock durations.
type TimingCollector struct {
	mu    sync.Mutex
	roots []*span
}

// span is a single timed operation.
type span struct {
	name     string
	start    time.Time
	end      time.Time
	children []*span
}

// NewTimingCollector creates an empty timing collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start opens a top-level span.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &span{name: name, start: time.Now()}
	c.roots = append(c.roots, s)
	return &timingTimer{collector: c, span: s}
}

// Report writes every recorded span tree to w.
func (c *TimingCollector) Report(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, root := range c.roots {
		formatSpanTree(w, root)
	}
}

// timingTimer is a Timer recording into a TimingCollector.
type timingTimer struct {
	collector *TimingCollector
	span      *span
}

// End closes the span. Ending twice keeps the first recorded duration.
func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	if t.span.end.IsZero() {
		t.span.end = time.Now()
	}
}

// Child opens a span nested under this one.
func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	s := &span{name: name, start: time.Now()}
	t.span.children = append(t.span.children, s)
	return &timingTimer{collector: t.collector, span: s}
}
