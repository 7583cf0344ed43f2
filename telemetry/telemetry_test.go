package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestNoOpCollector(t *testing.T) {
	collector := noOpCollector{}

	timer := collector.Start("backup.load")
	child := timer.Child("backup.parse")
	child.End()
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf)

	if buf.Len() != 0 {
		t.Errorf("no-op collector should produce no output, got: %s", buf.String())
	}
}

func TestFromContextReturnsNoOpWhenMissing(t *testing.T) {
	collector := FromContext(context.Background())
	if collector == nil {
		t.Fatal("FromContext should never return nil")
	}
	if _, ok := collector.(noOpCollector); !ok {
		t.Errorf("FromContext should return noOpCollector when none present, got: %T", collector)
	}
}

func TestWithCollector(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	retrieved, ok := FromContext(ctx).(*TimingCollector)
	if !ok || retrieved != collector {
		t.Error("FromContext should return the same collector that was added")
	}
}

func TestTimingCollectorBasic(t *testing.T) {
	collector := NewTimingCollector()

	timer := collector.Start("backup.load")
	time.Sleep(10 * time.Millisecond)
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	output := buf.String()

	if !strings.Contains(output, "backup.load") {
		t.Errorf("output should contain span name, got: %s", output)
	}
	if !strings.Contains(output, "ms") {
		t.Errorf("output should contain duration, got: %s", output)
	}
}

func TestTimingCollectorHierarchical(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("backup.load")
	parse := root.Child("backup.parse")
	parse.End()
	resolve := root.Child("backup.resolve")
	resolve.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	output := buf.String()

	for _, want := range []string{"backup.load", "backup.parse", "backup.resolve"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
	if !strings.Contains(output, "├─") || !strings.Contains(output, "└─") {
		t.Errorf("output should contain tree structure, got: %s", output)
	}
}

func TestTimingCollectorDeepNesting(t *testing.T) {
	collector := NewTimingCollector()

	t1 := collector.Start("web.reload")
	t2 := t1.Child("backup.load")
	t3 := t2.Child("backup.parse")
	t3.End()
	t2.End()
	t1.End()

	var buf bytes.Buffer
	collector.Report(&buf)

	found := false
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "backup.parse") {
			found = true
			if !strings.Contains(line, "   ") && !strings.Contains(line, "│  ") {
				t.Errorf("nested span should be indented, got: %s", line)
			}
		}
	}
	if !found {
		t.Error("should find nested span in output")
	}
}

func TestTimingCollectorMultipleRoots(t *testing.T) {
	collector := NewTimingCollector()

	first := collector.Start("backup.load")
	first.End()
	second := collector.Start("budget.render")
	second.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	output := buf.String()

	if !strings.Contains(output, "backup.load") || !strings.Contains(output, "budget.render") {
		t.Errorf("output should contain both root spans, got: %s", output)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{1 * time.Millisecond, "1ms"},
		{10 * time.Millisecond, "10ms"},
		{999 * time.Millisecond, "999ms"},
		{1 * time.Second, "1.00s"},
		{1500 * time.Millisecond, "1.50s"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.duration); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.duration, got, tt.want)
		}
	}
}

func TestTimingCollectorEmptyReport(t *testing.T) {
	collector := NewTimingCollector()

	var buf bytes.Buffer
	collector.Report(&buf)

	if buf.Len() != 0 {
		t.Errorf("empty collector should produce no output, got: %s", buf.String())
	}
}
