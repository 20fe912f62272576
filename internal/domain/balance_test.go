package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "mender.dev/pkg/mender/internal/model"
)

func TestBalanceValidator_Validate(t *testing.T) {
	validator := NewBalanceValidator()

	t.Run("balanced text", func(t *testing.T) {
		report := validator.Validate("fn main() {\n    if x { y(); }\n}\n")
		assert.True(t, report.Balanced())
	})

	t.Run("empty text", func(t *testing.T) {
		assert.True(t, validator.Validate("").Balanced())
	})

	t.Run("orphaned closer reported immediately", func(t *testing.T) {
		report := validator.Validate("a}\n{b}")
		require.Len(t, report.Orphaned, 1)
		assert.Empty(t, report.Unclosed)

		orphan := report.Orphaned[0]
		assert.Equal(t, m.OrphanedCloser, orphan.Kind)
		assert.Equal(t, '}', orphan.Delimiter)
		assert.Equal(t, 1, orphan.Offset)
		assert.Equal(t, 1, orphan.Line)
		assert.Equal(t, "extra closing '}' at index 1", orphan.Message)
	})

	t.Run("unclosed openers in push order", func(t *testing.T) {
		report := validator.Validate("{\n  {\n    {}\n")
		assert.Empty(t, report.Orphaned)
		require.Len(t, report.Unclosed, 2)

		assert.Equal(t, 0, report.Unclosed[0].Offset)
		assert.Equal(t, 1, report.Unclosed[0].Line)
		assert.Equal(t, 4, report.Unclosed[1].Offset)
		assert.Equal(t, 2, report.Unclosed[1].Line)
	})

	t.Run("orphan before any opener is not cancelled by a later opener", func(t *testing.T) {
		report := validator.Validate("}{")
		require.Len(t, report.Orphaned, 1)
		require.Len(t, report.Unclosed, 1)
		assert.Equal(t, 0, report.Orphaned[0].Offset)
		assert.Equal(t, 1, report.Unclosed[0].Offset)
	})

	t.Run("orphans listed in encounter order", func(t *testing.T) {
		report := validator.Validate("}\n}\n")
		require.Len(t, report.Orphaned, 2)
		assert.Equal(t, 1, report.Orphaned[0].Line)
		assert.Equal(t, 2, report.Orphaned[1].Line)
	})
}

func TestBalanceValidator_CountsAgree(t *testing.T) {
	inputs := []string{
		"{{}}}",
		"}}{{{",
		"fn a() {\n}\n}\nfn b() {\n",
		"no braces at all",
	}

	for _, input := range inputs {
		report := NewBalanceValidator().Validate(input)
		opens := strings.Count(input, "{")
		closes := strings.Count(input, "}")

		assert.Equal(t, opens-closes, len(report.Unclosed)-len(report.Orphaned), input)
	}
}

func TestBalanceValidator_Context(t *testing.T) {
	before := strings.Repeat("a", 30)
	after := strings.Repeat("b", 60)
	content := before + "\n{" + after

	report := NewBalanceValidator().Validate(content)
	require.Len(t, report.Unclosed, 1)

	diag := report.Unclosed[0]
	assert.Equal(t, 2, diag.Line)
	assert.Equal(t, 31, diag.Offset)
	assert.Equal(t, strings.Repeat("a", 19)+`\n`+"{"+strings.Repeat("b", 49), diag.Context)
}

func TestBalanceValidator_ContextClippedAtEdges(t *testing.T) {
	report := NewBalanceValidator().Validate("x\r\n}")
	require.Len(t, report.Orphaned, 1)
	assert.Equal(t, `x\r\n}`, report.Orphaned[0].Context)
	assert.Equal(t, 2, report.Orphaned[0].Line)
}

func TestBalanceValidator_CustomPairs(t *testing.T) {
	validator := NewBalanceValidator(
		DelimiterPair{Open: '{', Close: '}'},
		DelimiterPair{Open: '(', Close: ')'},
	)

	report := validator.Validate("f(a, {b)")
	assert.Empty(t, report.Orphaned)
	require.Len(t, report.Unclosed, 1)
	assert.Equal(t, '{', report.Unclosed[0].Delimiter)
	assert.Equal(t, 5, report.Unclosed[0].Offset)
}
