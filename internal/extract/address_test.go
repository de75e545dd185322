package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAddress(t *testing.T) {
	text := `Field Address of Operator
1200 17TH STREET, SUITE 1000, DENVER, CO 80202
Name of Surface Owner
John Smith, Watford City, ND 58854`

	got := ExtractAddress(text)
	assert.Equal(t, "1200 17TH STREET, SUITE 1000, DENVER, CO 80202", got)
}

func TestExtractAddressStopsAtSurfaceOwner(t *testing.T) {
	text := `Name of Surface Owner
Field Address of Operator
123 MAIN ST, BISMARCK, ND 58501`

	assert.Equal(t, "", ExtractAddress(text),
		"address labels after the surface-owner section are not operator addresses")
}

func TestExtractAddressHeaderRow(t *testing.T) {
	text := `Address City State Zip Code
123 MAIN ST BISMARCK ND 58501`

	assert.Equal(t, "123 MAIN ST BISMARCK ND 58501", ExtractAddress(text))
}

func TestNormalizeAddressSpacing(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123 MAIN ST,DENVER,CO 80202", "123 MAIN ST, DENVER, CO 80202"},
		{"P. 0. BOX 1360, HOUSTON, TX 77251", "P.O. BOX 1360, HOUSTON, TX 77251"},
		{"Suite1000, DENVER, CO 80202", "Suite 1000, DENVER, CO 80202"},
		{"  123  MAIN   ST  ", "123 MAIN ST"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeAddressSpacing(tt.in), "input %q", tt.in)
	}
}
