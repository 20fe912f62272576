// Package rules holds the built-in defect catalog, the rewrite actions and
// rule-set validation.
package rules

import (
	"fmt"

	m "mender.dev/pkg/mender/internal/model"
)

// Built-in rule identifiers.
const (
	MissingIf        m.RuleID = "missing-if"
	UnhandledErr     m.RuleID = "unhandled-err"
	StrayIfCall      m.RuleID = "stray-if-call"
	UnusedErrBinding m.RuleID = "unused-err-binding"
)

// DefaultLookahead is the window used by missing-if.
const DefaultLookahead = 100

// DefinitionBoundaries are the trimmed line prefixes that end a lookahead.
var DefinitionBoundaries = []string{
	"fn ",
	"pub fn ",
	"pub(crate) fn ",
	"async fn ",
	"pub async fn ",
}

var stateAccessors = []string{
	"with_state",
	"with_podcast_state",
	"with_save_state",
	"with_import_state",
	"with_marker_state",
	"with_help_state",
	"with_find_state",
	"with_options_state",
	"with_batch_state",
	"with_progress_state",
	"with_prompt_state",
}

func stateAccessorCalls() []string {
	calls := make([]string, 0, len(stateAccessors))
	for _, name := range stateAccessors {
		calls = append(calls, name+"(")
	}

	return calls
}

// Builtin returns the full catalog in priority order. The slices are fresh
// copies, callers may keep them.
func Builtin() []m.Rule {
	return []m.Rule{
		{
			ID:          MissingIf,
			Description: "state accessor used as a condition without its leading if",
			Triggers:    stateAccessorCalls(),
			Exemptions: []string{
				"if ", "let ", "return ", "match ", "unsafe ", "pub ", "fn ",
				"Some(", "None", "Ok(", "Err(",
			},
			Markers:      []string{").is_none() {", "}.is_none() {"},
			Mode:         m.MatchContains,
			Lookahead:    DefaultLookahead,
			StopPrefixes: append([]string(nil), DefinitionBoundaries...),
			Action:       m.Action{Kind: m.ActionInsertKeyword, Keyword: "if"},
		},
		{
			ID:          UnhandledErr,
			Description: "if let Err(e) binding terminated by a semicolon instead of a block",
			Triggers:    []string{"if let Err(e) = "},
			Markers:     []string{");"},
			Mode:        m.MatchSuffix,
			Lookahead:   1,
			Action: m.Action{
				Kind: m.ActionWrapBlock,
				Body: `crate::log_debug(&format!("Error: {:?}", e));`,
			},
		},
		{
			ID:          StrayIfCall,
			Description: "plain call statement prefixed with a stray if",
			Triggers:    []string{"if MessageBoxW("},
			Markers:     []string{");"},
			Mode:        m.MatchSuffix,
			Lookahead:   1,
			Action:      m.Action{Kind: m.ActionStripKeyword, Keyword: "if"},
		},
		{
			ID:          UnusedErrBinding,
			Description: "rename an unused error binding to _e; superseded, breaks blocks that use e",
			Triggers:    []string{"if let Err(e) ="},
			Markers:     []string{" {"},
			Mode:        m.MatchContains,
			Lookahead:   1,
			Action:      m.Action{Kind: m.ActionReplacePrefix, From: "if let Err(e) =", To: "if let Err(_e) ="},
		},
	}
}

// DefaultEnabled lists the rules active when the configuration names none.
// unused-err-binding is a superseded variant and stays opt-in.
func DefaultEnabled() []m.RuleID {
	return []m.RuleID{MissingIf, UnhandledErr, StrayIfCall}
}

// Select picks rules from catalog by id, in the order ids are given.
func Select(catalog []m.Rule, ids []m.RuleID) ([]m.Rule, error) {
	byID := make(map[m.RuleID]m.Rule, len(catalog))
	for _, rule := range catalog {
		byID[rule.ID] = rule
	}

	selected := make([]m.Rule, 0, len(ids))

	for _, id := range ids {
		rule, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown rule %q", ErrInvalidRule, id)
		}

		selected = append(selected, rule)
	}

	return selected, nil
}
