package domain

import (
	"fmt"
	"log/slog"

	"mender.dev/pkg/mender/internal/domain/rules"
	m "mender.dev/pkg/mender/internal/model"
)

// Engine applies an ordered rule set to the lines of one file.
type Engine interface {
	Apply(lines []string) m.Outcome
	Rules() []m.Rule
}

type engine struct {
	rules []m.Rule
}

// NewEngine validates set and returns an engine that tries the rules in the
// given order.
func NewEngine(set []m.Rule) (Engine, error) {
	if err := rules.Validate(set); err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	return &engine{rules: append([]m.Rule(nil), set...)}, nil
}

func (e *engine) Rules() []m.Rule {
	return append([]m.Rule(nil), e.rules...)
}

// Apply runs one pass over lines. The input slice is never modified; the
// returned Lines always has the same length as the input and differs only
// in rewritten lines.
func (e *engine) Apply(lines []string) m.Outcome {
	out := m.Outcome{Lines: make([]string, len(lines))}
	copy(out.Lines, lines)

	for i, line := range lines {
		indent, body, terminator := splitLine(line)
		if body == "" {
			continue
		}

		for _, rule := range e.rules {
			if !isCandidate(rule, body) {
				continue
			}

			scan := Scan(lines, i, rule.Window())
			match := m.MatchResult{Line: i, Rule: rule.ID, Found: scan.Found, Scanned: scan.Scanned}

			if !scan.Found {
				slog.Debug("candidate not confirmed", "rule", rule.ID, "line", i+1, "scanned", scan.Scanned)
				out.Matches = append(out.Matches, match)

				continue
			}

			rewritten, ok := rules.Rewrite(rule.Action, indent, body, terminator)
			if !ok || rewritten == line || reapplies(rule, lines, i, rewritten) {
				match.Found = false
				out.Matches = append(out.Matches, match)

				continue
			}

			out.Lines[i] = rewritten
			out.Changed = true
			out.Matches = append(out.Matches, match)

			break
		}
	}

	return out
}

// reapplies reports whether rule would fire again on its own output at
// line i. Such a rewrite is refused so a second pass stays a no-op.
func reapplies(rule m.Rule, lines []string, i int, rewritten string) bool {
	_, body, _ := splitLine(rewritten)
	if !isCandidate(rule, body) {
		return false
	}

	next := make([]string, len(lines))
	copy(next, lines)
	next[i] = rewritten

	if Scan(next, i, rule.Window()).Found {
		slog.Warn("rewrite refused, rule would apply again", "rule", rule.ID, "line", i+1)
		return true
	}

	return false
}

func isCandidate(rule m.Rule, body string) bool {
	return hasAnyPrefix(body, rule.Triggers) && !hasAnyPrefix(body, rule.Exemptions)
}
