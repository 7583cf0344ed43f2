package budget

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Month
		wantErr bool
	}{
		{name: "valid month", input: "2026-02", want: NewMonth(2026, time.February)},
		{name: "single digit month", input: "2025-7", wantErr: true},
		{name: "missing month", input: "2025", wantErr: true},
		{name: "garbage", input: "not-a-month", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonth_Normalization(t *testing.T) {
	// Any timestamp inside the month maps to the same value, so equality is
	// plain comparison rather than range containment.
	a := MonthOf(time.Date(2026, time.February, 14, 23, 59, 0, 0, time.UTC))
	b := MonthOf(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, a, b)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), a.Start())
}

func TestMonth_NextPrevYearBoundary(t *testing.T) {
	dec := NewMonth(2025, time.December)
	jan := NewMonth(2026, time.January)

	assert.Equal(t, jan, dec.Next())
	assert.Equal(t, dec, jan.Prev())
	assert.True(t, dec.Before(jan))
	assert.True(t, jan.After(dec))
	assert.False(t, jan.Before(jan))
}

func TestMonth_Contains(t *testing.T) {
	m := NewMonth(2026, time.January)
	assert.True(t, m.Contains(time.Date(2026, time.January, 31, 12, 0, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)))
}

func TestMonth_String(t *testing.T) {
	assert.Equal(t, "2026-02", NewMonth(2026, time.February).String())
	assert.Equal(t, "2025-12", NewMonth(2025, time.December).String())
}
