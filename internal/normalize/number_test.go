package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"9500", 9500},
		{"9,500", 9500},
		{"4,000,000 lbs", 4000000},
		{"21 000.5", 21000.5},
		{"-12.5", -12.5},
		{"approx 300 bbl", 300},
	}
	for _, tt := range tests {
		got, ok := FirstNumber(tt.in)
		require.True(t, ok, "input %q", tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "input %q", tt.in)
	}
}

func TestFirstNumberAbsent(t *testing.T) {
	for _, in := range []string{"", "none", "sand frac"} {
		_, ok := FirstNumber(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestExpandShorthand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"423k", "423000"},
		{"1.5K", "1500"},
		{"3.2M", "3200000"},
		{"2 m", "2000000"},
		{"1,250", "1250"},
		{"350000", "350000"},
		{"12.5", "12.5"},
	}
	for _, tt := range tests {
		got, ok := ExpandShorthand(tt.in)
		require.True(t, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestExpandShorthandUnparseable(t *testing.T) {
	for _, in := range []string{"lots", "12 barrels", ""} {
		got, ok := ExpandShorthand(in)
		assert.False(t, ok, "input %q", in)
		assert.Equal(t, in, got)
	}
}

func TestExpandShorthandIdempotent(t *testing.T) {
	once, ok := ExpandShorthand("423k")
	require.True(t, ok)
	twice, ok := ExpandShorthand(once)
	require.True(t, ok)
	assert.Equal(t, once, twice)
}
