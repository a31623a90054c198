package textfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{name: "short unchanged", input: "Shop Theft", n: 40, want: "Shop Theft"},
		{name: "exact width unchanged", input: "abcdef", n: 6, want: "abcdef"},
		{name: "long cut with ellipsis", input: "abcdefghij", n: 6, want: "abc..."},
		{name: "empty", input: "", n: 10, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.n))
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "Theft     ", Pad("Theft", 10))
	assert.Equal(t, "Vandalism", Pad("Vandalism", 4))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  []string
	}{
		{name: "fits", input: "hello world", width: 20, want: []string{"hello world"}},
		{name: "wraps on words", input: "hello world test", width: 10, want: []string{"hello", "world test"}},
		{name: "collapses spaces", input: "  a   b  ", width: 10, want: []string{"a b"}},
		{name: "empty", input: "", width: 10, want: nil},
		{name: "hyphen splits long word", input: "abcdefghijkl", width: 5, want: []string{"abcd-", "efgh-", "ijkl"}},
		{name: "long word after short", input: "hi abcdefgh", width: 5, want: []string{"hi", "abcd-", "efgh"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.input, tt.width))
		})
	}
}

func TestWrapLinesNeverExceedWidth(t *testing.T) {
	input := strings.Repeat("lorem ipsum dolorsitametconsectetur ", 20)
	for _, line := range Wrap(input, 12) {
		assert.LessOrEqual(t, len(line), 12, line)
	}
}

func TestCap(t *testing.T) {
	lines := []string{"one", "two", "three", "four"}
	assert.Equal(t, lines, Cap(lines, 5, 10))
	assert.Equal(t, []string{"one", "two..."}, Cap(lines, 2, 10))
	assert.Equal(t, []string{"abcd..."}, Cap([]string{"abcdefgh", "x"}, 1, 7))
}

func TestHang(t *testing.T) {
	got := Hang("Info", 6, []string{"first", "second"})
	assert.Equal(t, []string{"Info  : first", "        second"}, got)
	assert.Nil(t, Hang("Info", 6, nil))
}
