package model

import "time"

// MatchResult records one candidate line and whether its rule confirmed.
// Unconfirmed results are the no-op events callers can use to notice a
// heuristic that stopped matching.
type MatchResult struct {
	Line    int // 0-based line index
	Rule    RuleID
	Found   bool
	Scanned int
}

// Outcome is what the engine returns for one pass over a file.
type Outcome struct {
	Lines   []string
	Changed bool
	Matches []MatchResult
}

// Rewrites returns only the confirmed matches.
func (o Outcome) Rewrites() []MatchResult {
	var out []MatchResult

	for _, match := range o.Matches {
		if match.Found {
			out = append(out, match)
		}
	}

	return out
}

// FileStatus is the per-file result of a batch run.
type FileStatus int

const (
	// Unchanged means the engine found nothing to rewrite.
	Unchanged FileStatus = iota
	// Fixed means at least one line was rewritten.
	Fixed
	// Skipped means the target does not exist.
	Skipped
	// Failed means reading or writing the target failed.
	Failed
)

func (s FileStatus) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Fixed:
		return "fixed"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Rewrite is the persisted form of a confirmed match.
type Rewrite struct {
	Line int    `yaml:"line"` // 1-based
	Rule RuleID `yaml:"rule"`
}

// FileResult holds the outcome of processing one target.
type FileResult struct {
	Path     Path
	Status   FileStatus
	Rewrites []Rewrite
	NoOps    int
	Diff     string
	Err      error
}

// Changed reports whether the file content differs after the pass.
func (r FileResult) Changed() bool {
	return r.Status == Fixed
}

// RunReport summarizes one batch run.
type RunReport struct {
	ID      string
	Started time.Time
	DryRun  bool
	Files   []FileResult
}

// Count returns how many files ended with the given status.
func (r RunReport) Count(status FileStatus) int {
	n := 0

	for _, file := range r.Files {
		if file.Status == status {
			n++
		}
	}

	return n
}
