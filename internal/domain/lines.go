package domain

import (
	"strings"
	"unicode"
)

// SplitLines splits text after every "\n", keeping the terminator on each
// line. A final line without terminator is kept as is, so joining the
// result always reproduces text byte for byte.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "")
}

// splitLine breaks a line into leading whitespace, body and terminator.
func splitLine(line string) (indent, body, terminator string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		terminator = "\r\n"
	case strings.HasSuffix(line, "\n"):
		terminator = "\n"
	}

	content := line[:len(line)-len(terminator)]
	body = strings.TrimLeftFunc(content, unicode.IsSpace)
	indent = content[:len(content)-len(body)]

	return indent, body, terminator
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}
