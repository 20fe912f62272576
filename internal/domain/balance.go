package domain

import (
	"fmt"
	"sort"
	"strings"

	m "mender.dev/pkg/mender/internal/model"
)

const (
	contextBefore = 20
	contextAfter  = 50
)

// DelimiterPair is an opener and its matching closer.
type DelimiterPair struct {
	Open  rune
	Close rune
}

// DefaultDelimiters only tracks curly braces.
var DefaultDelimiters = []DelimiterPair{{Open: '{', Close: '}'}}

// BalanceValidator detects nesting-delimiter mismatches in raw text.
type BalanceValidator interface {
	Validate(content string) m.BalanceReport
}

type balanceValidator struct {
	pairs []DelimiterPair
}

// NewBalanceValidator builds a validator for the given delimiter pairs, or
// DefaultDelimiters when none are given.
func NewBalanceValidator(pairs ...DelimiterPair) BalanceValidator {
	if len(pairs) == 0 {
		pairs = DefaultDelimiters
	}

	return &balanceValidator{pairs: pairs}
}

type openEntry struct {
	offset int
	open   rune
}

// Validate walks content once. Closers with an empty stack are reported
// right away; openers still on a stack at the end are reported in push
// order. Each pair has its own stack.
func (v *balanceValidator) Validate(content string) m.BalanceReport {
	openers := make(map[rune]int, len(v.pairs))
	closers := make(map[rune]int, len(v.pairs))

	for i, pair := range v.pairs {
		openers[pair.Open] = i
		closers[pair.Close] = i
	}

	stacks := make([][]openEntry, len(v.pairs))
	report := m.BalanceReport{}

	for offset, char := range content {
		if i, ok := openers[char]; ok {
			stacks[i] = append(stacks[i], openEntry{offset: offset, open: char})
			continue
		}

		i, ok := closers[char]
		if !ok {
			continue
		}

		if len(stacks[i]) == 0 {
			report.Orphaned = append(report.Orphaned, newDiagnostic(content, m.OrphanedCloser, char, offset))
			continue
		}

		stacks[i] = stacks[i][:len(stacks[i])-1]
	}

	var remaining []openEntry
	for _, stack := range stacks {
		remaining = append(remaining, stack...)
	}

	sort.Slice(remaining, func(a, b int) bool {
		return remaining[a].offset < remaining[b].offset
	})

	for _, entry := range remaining {
		report.Unclosed = append(report.Unclosed, newDiagnostic(content, m.UnclosedOpener, entry.open, entry.offset))
	}

	return report
}

func newDiagnostic(content string, kind m.DiagnosticKind, delimiter rune, offset int) m.Diagnostic {
	var message string

	switch kind {
	case m.OrphanedCloser:
		message = fmt.Sprintf("extra closing %q at index %d", delimiter, offset)
	default:
		message = fmt.Sprintf("unclosed %q at index %d", delimiter, offset)
	}

	return m.Diagnostic{
		Kind:      kind,
		Delimiter: delimiter,
		Line:      strings.Count(content[:offset], "\n") + 1,
		Offset:    offset,
		Message:   message,
		Context:   contextSnippet(content, offset),
	}
}

// contextSnippet returns up to contextBefore characters before offset and
// contextAfter characters from offset on, with line breaks made visible.
func contextSnippet(content string, offset int) string {
	before := []rune(content[:offset])
	if len(before) > contextBefore {
		before = before[len(before)-contextBefore:]
	}

	after := []rune(content[offset:])
	if len(after) > contextAfter {
		after = after[:contextAfter]
	}

	snippet := string(before) + string(after)

	return visibleBreaks.Replace(snippet)
}

var visibleBreaks = strings.NewReplacer("\r", `\r`, "\n", `\n`)
