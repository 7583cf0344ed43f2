package telemetry

import (
	"fmt"
	"io"
	"time"
)

// formatSpanTree writes one span tree in a hierarchical layout.
// Example output:
//
//	backup.load budget.json: 125ms
//	├─ backup.parse: 85ms
//	└─ backup.resolve: 40ms
func formatSpanTree(w io.Writer, root *span) {
	_, _ = fmt.Fprintf(w, "%s: %s\n", root.name, formatDuration(root.duration()))
	for i, child := range root.children {
		formatSpan(w, child, "", i == len(root.children)-1)
	}
}

func formatSpan(w io.Writer, s *span, prefix string, isLast bool) {
	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, s.name, formatDuration(s.duration()))

	childPrefix := prefix + extension
	for i, child := range s.children {
		formatSpan(w, child, childPrefix, i == len(s.children)-1)
	}
}

func (s *span) duration() time.Duration {
	if s.end.IsZero() {
		return 0
	}
	return s.end.Sub(s.start)
}

// formatDuration shows milliseconds below one second, seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}
