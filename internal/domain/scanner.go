package domain

import (
	"strings"
	"unicode"

	m "mender.dev/pkg/mender/internal/model"
)

// Scan inspects lines[start:] for at most window.Max lines (start included)
// and reports the first line that carries one of window.Markers.
//
// A line whose left-trimmed form starts with one of window.StopPrefixes ends
// the scan with Found=false, so a rule cannot leak past a definition
// boundary. Markers are tested before stop prefixes on every line. A
// non-positive window.Max scans until a stop line or the end of input.
func Scan(lines []string, start int, window m.Window) m.ScanResult {
	if start < 0 || start >= len(lines) {
		return m.ScanResult{}
	}

	end := len(lines)
	if window.Max > 0 && start+window.Max < end {
		end = start + window.Max
	}

	scanned := 0

	for i := start; i < end; i++ {
		line := lines[i]
		scanned++

		if lineHasMarker(line, window.Markers, window.Mode) {
			return m.ScanResult{Found: true, Offset: i - start, Scanned: scanned}
		}

		if hasAnyPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), window.StopPrefixes) {
			break
		}
	}

	return m.ScanResult{Found: false, Offset: 0, Scanned: scanned}
}

func lineHasMarker(line string, markers []string, mode m.MatchMode) bool {
	if mode == m.MatchSuffix {
		trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
		for _, marker := range markers {
			if strings.HasSuffix(trimmed, marker) {
				return true
			}
		}

		return false
	}

	for _, marker := range markers {
		if strings.Contains(line, marker) {
			return true
		}
	}

	return false
}
