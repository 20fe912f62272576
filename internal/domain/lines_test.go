package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: nil},
		{name: "single line without terminator", text: "fn a() {}", want: []string{"fn a() {}"}},
		{name: "keeps terminators", text: "a\nb\r\n", want: []string{"a\n", "b\r\n"}},
		{name: "unterminated tail", text: "a\nb", want: []string{"a\n", "b"}},
		{name: "blank lines", text: "\n\n", want: []string{"\n", "\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, JoinLines(got))
		})
	}
}

func TestSplitLine(t *testing.T) {
	indent, body, terminator := splitLine("\t    with_state(|s| x);\r\n")
	assert.Equal(t, "\t    ", indent)
	assert.Equal(t, "with_state(|s| x);", body)
	assert.Equal(t, "\r\n", terminator)

	indent, body, terminator = splitLine("   ")
	assert.Equal(t, "   ", indent)
	assert.Empty(t, body)
	assert.Empty(t, terminator)
}
