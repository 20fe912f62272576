package rules

import (
	"strings"

	m "mender.dev/pkg/mender/internal/model"
)

// Rewrite applies action to a line already split into indent, body and
// terminator. Indent and terminator are always re-emitted untouched. The
// second result is false when the action does not apply to body.
func Rewrite(action m.Action, indent, body, terminator string) (string, bool) {
	var out string

	switch action.Kind {
	case m.ActionInsertKeyword:
		out = action.Keyword + " " + body

	case m.ActionStripKeyword:
		prefix := action.Keyword + " "
		if !strings.HasPrefix(body, prefix) {
			return "", false
		}

		out = strings.TrimLeft(body[len(prefix):], " \t")

	case m.ActionReplacePrefix:
		if !strings.HasPrefix(body, action.From) {
			return "", false
		}

		out = action.To + body[len(action.From):]

	case m.ActionWrapBlock:
		statement := strings.TrimRight(body, " \t\r")
		if !strings.HasSuffix(statement, ";") {
			return "", false
		}

		out = strings.TrimSuffix(statement, ";") + " { " + action.Body + " }"

	default:
		return "", false
	}

	return indent + out + terminator, true
}
