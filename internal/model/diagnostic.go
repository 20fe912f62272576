package model

// DiagnosticKind classifies a balance diagnostic.
type DiagnosticKind string

const (
	// OrphanedCloser is a closing delimiter with nothing open.
	OrphanedCloser DiagnosticKind = "orphaned-closer"
	// UnclosedOpener is an opening delimiter never closed by end of input.
	UnclosedOpener DiagnosticKind = "unclosed-opener"
)

// Diagnostic describes one structural imbalance.
type Diagnostic struct {
	Kind      DiagnosticKind
	Delimiter rune
	Line      int // 1-based
	Offset    int // byte offset into the file text
	Message   string
	Context   string
}

// BalanceReport is the validator output for a single text.
type BalanceReport struct {
	Path     Path
	Orphaned []Diagnostic
	Unclosed []Diagnostic
}

// Balanced reports whether no diagnostics were produced.
func (r BalanceReport) Balanced() bool {
	return len(r.Orphaned) == 0 && len(r.Unclosed) == 0
}
