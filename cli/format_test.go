package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTableAlignment(t *testing.T) {
	tbl := newTable(
		column{title: "Category"},
		column{title: "Available", rightAlign: true},
	)
	tbl.addRow("🛒 Groceries", "220.00")
	tbl.addRow("Rent", "1200.00")

	var buf bytes.Buffer
	tbl.render(&buf)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	assert.Equal(t, 4, len(lines))
	assert.Contains(t, lines[0], "Category")
	assert.Contains(t, lines[2], "🛒 Groceries")
	// Right-aligned numbers end at the same column.
	assert.True(t, strings.HasSuffix(lines[2], "220.00"))
	assert.True(t, strings.HasSuffix(lines[3], "1200.00"))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", pad("ab", 5, false))
	assert.Equal(t, "   ab", pad("ab", 5, true))
	assert.Equal(t, "abcdef", pad("abcdef", 5, false))
	// Emoji occupy two columns, so only two spaces are added.
	assert.Equal(t, "🛒  ", pad("🛒", 4, false))
}
