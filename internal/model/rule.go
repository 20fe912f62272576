package model

// RuleID identifies a rule in the catalog and in reports.
type RuleID string

// ActionKind selects how a confirmed candidate line is rewritten.
type ActionKind string

const (
	// ActionInsertKeyword re-emits the line as indent + Keyword + " " + body.
	ActionInsertKeyword ActionKind = "insert-keyword"
	// ActionStripKeyword removes a leading Keyword + " " from the body.
	ActionStripKeyword ActionKind = "strip-keyword"
	// ActionReplacePrefix swaps the leading From prefix of the body for To.
	ActionReplacePrefix ActionKind = "replace-prefix"
	// ActionWrapBlock drops a trailing ";" and appends " { Body }".
	ActionWrapBlock ActionKind = "wrap-block"
)

// Action is the tagged rewrite variant of a rule. Only the fields relevant
// to Kind are read.
type Action struct {
	Kind    ActionKind `mapstructure:"kind" yaml:"kind" validate:"required,oneof=insert-keyword strip-keyword replace-prefix wrap-block"`
	Keyword string     `mapstructure:"keyword" yaml:"keyword,omitempty"`
	From    string     `mapstructure:"from" yaml:"from,omitempty"`
	To      string     `mapstructure:"to" yaml:"to,omitempty"`
	Body    string     `mapstructure:"body" yaml:"body,omitempty"`
}

// MatchMode controls how markers are tested against a scanned line.
type MatchMode string

const (
	// MatchContains confirms when the line contains a marker anywhere.
	MatchContains MatchMode = "contains"
	// MatchSuffix confirms when the right-trimmed line ends with a marker.
	MatchSuffix MatchMode = "suffix"
)

// Rule is an immutable description of one defect shape and its repair.
type Rule struct {
	ID          RuleID    `mapstructure:"id" yaml:"id" validate:"required"`
	Description string    `mapstructure:"description" yaml:"description,omitempty"`
	Triggers    []string  `mapstructure:"triggers" yaml:"triggers" validate:"required,min=1,dive,required"`
	Exemptions  []string  `mapstructure:"exemptions" yaml:"exemptions,omitempty" validate:"dive,required"`
	Markers     []string  `mapstructure:"markers" yaml:"markers" validate:"required,min=1,dive,required"`
	Mode        MatchMode `mapstructure:"mode" yaml:"mode,omitempty" validate:"omitempty,oneof=contains suffix"`
	// Lookahead is the maximum number of lines scanned, the candidate line
	// included. Zero or less scans until a stop prefix or end of file.
	Lookahead    int      `mapstructure:"lookahead" yaml:"lookahead"`
	StopPrefixes []string `mapstructure:"stop_prefixes" yaml:"stop_prefixes,omitempty" validate:"dive,required"`
	Action       Action   `mapstructure:"action" yaml:"action"`
}

// Window returns the scan parameters the rule uses for lookahead.
func (r Rule) Window() Window {
	mode := r.Mode
	if mode == "" {
		mode = MatchContains
	}

	return Window{
		Max:          r.Lookahead,
		Markers:      r.Markers,
		Mode:         mode,
		StopPrefixes: r.StopPrefixes,
	}
}

// Window bounds a forward scan over a line sequence.
type Window struct {
	Max          int
	Markers      []string
	Mode         MatchMode
	StopPrefixes []string
}

// ScanResult is the outcome of a window scan. Offset is relative to the
// start line and only meaningful when Found is true.
type ScanResult struct {
	Found   bool
	Offset  int
	Scanned int
}
