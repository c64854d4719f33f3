package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTSV(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    [][]string
	}{
		{name: "empty", content: "", want: [][]string{}},
		{name: "single row no newline", content: "a\tb\tc", want: [][]string{{"a", "b", "c"}}},
		{name: "trailing newline", content: "a\tb\n1\t2\n", want: [][]string{{"a", "b"}, {"1", "2"}}},
		{name: "crlf", content: "a\tb\r\n1\t2\r\n", want: [][]string{{"a", "b"}, {"1", "2"}}},
		{name: "empty cells kept", content: "a\t\t\tb", want: [][]string{{"a", "", "", "b"}}},
		{name: "blank line in middle", content: "a\n\nb\n", want: [][]string{{"a"}, {""}, {"b"}}},
		{name: "quotes literal", content: "\"x\ty\"\t'z'", want: [][]string{{`"x`, `y"`, `'z'`}}},
		{name: "bare cr", content: "a\tb\r1\t2\r", want: [][]string{{"a", "b"}, {"1", "2"}}},
		{name: "bare cr no trailing", content: "a\rb", want: [][]string{{"a"}, {"b"}}},
		{name: "crlf first wins", content: "a\r\nb\rc\n", want: [][]string{{"a"}, {"b\rc"}}},
		{name: "ragged rows", content: "a\tb\tc\nd\n", want: [][]string{{"a", "b", "c"}, {"d"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTSV(tt.content))
		})
	}
}
