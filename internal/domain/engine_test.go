package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mender.dev/pkg/mender/internal/domain/rules"
	m "mender.dev/pkg/mender/internal/model"
)

func newDefaultEngine(t *testing.T) Engine {
	t.Helper()

	set, err := rules.Select(rules.Builtin(), rules.DefaultEnabled())
	require.NoError(t, err)

	engine, err := NewEngine(set)
	require.NoError(t, err)

	return engine
}

func TestEngine_MissingIf(t *testing.T) {
	engine := newDefaultEngine(t)

	lines := SplitLines(strings.Join([]string{
		"fn on_close(hwnd: HWND) {",
		"    with_state(hwnd, |state| {",
		"        state.closing",
		"    }).is_none() {",
		"        return;",
		"    }",
		"}",
		"",
	}, "\n"))

	outcome := engine.Apply(lines)

	require.True(t, outcome.Changed)
	assert.Equal(t, "    if with_state(hwnd, |state| {\n", outcome.Lines[1])
	assert.Equal(t, len(lines), len(outcome.Lines))

	for i := range lines {
		if i != 1 {
			assert.Equal(t, lines[i], outcome.Lines[i], "line %d", i)
		}
	}

	rewrites := outcome.Rewrites()
	require.Len(t, rewrites, 1)
	assert.Equal(t, m.MatchResult{Line: 1, Rule: rules.MissingIf, Found: true, Scanned: 3}, rewrites[0])
}

func TestEngine_MissingIfExemptions(t *testing.T) {
	engine := newDefaultEngine(t)

	lines := []string{
		"    let x = with_state(hwnd, |s| s.x);\n",
		"    if with_state(hwnd, |s| s.ok).is_none() {\n",
		"    return with_state(hwnd, |s| s.y).is_none() {\n",
	}

	outcome := engine.Apply(lines)
	assert.False(t, outcome.Changed)
	assert.Empty(t, outcome.Matches)
}

func TestEngine_UnconfirmedCandidateIsNoOp(t *testing.T) {
	engine := newDefaultEngine(t)

	lines := []string{
		"    with_state(hwnd, |state| {\n",
		"        state.count += 1;\n",
		"    });\n",
	}

	outcome := engine.Apply(lines)

	assert.False(t, outcome.Changed)
	assert.Equal(t, lines, outcome.Lines)
	require.Len(t, outcome.Matches, 1)
	assert.False(t, outcome.Matches[0].Found)
	assert.Equal(t, rules.MissingIf, outcome.Matches[0].Rule)
	assert.Empty(t, outcome.Rewrites())
}

func TestEngine_StopsAtDefinitionBoundary(t *testing.T) {
	engine := newDefaultEngine(t)

	lines := []string{
		"    with_state(hwnd, |state| state.refresh());\n",
		"}\n",
		"pub fn other(hwnd: HWND) {\n",
		"    if with_state(hwnd, |s| s.x).is_none() {\n",
		"    }\n",
		"}\n",
	}

	outcome := engine.Apply(lines)
	assert.False(t, outcome.Changed)
}

func TestEngine_WindowExhaustion(t *testing.T) {
	engine := newDefaultEngine(t)

	lines := []string{"    with_state(hwnd, |state| {\n"}
	for i := 0; i < rules.DefaultLookahead; i++ {
		lines = append(lines, "        state.step();\n")
	}

	lines = append(lines, "    }).is_none() {\n")

	outcome := engine.Apply(lines)
	assert.False(t, outcome.Changed)
	require.Len(t, outcome.Matches, 1)
	assert.Equal(t, rules.DefaultLookahead, outcome.Matches[0].Scanned)
}

func TestEngine_UnhandledErr(t *testing.T) {
	engine := newDefaultEngine(t)

	lines := []string{
		"\tif let Err(e) = save_file(&path);\r\n",
		"\tif let Err(e) = save_file(&path) {\r\n",
	}

	outcome := engine.Apply(lines)

	require.True(t, outcome.Changed)
	assert.Equal(t,
		"\tif let Err(e) = save_file(&path) { crate::log_debug(&format!(\"Error: {:?}\", e)); }\r\n",
		outcome.Lines[0])
	assert.Equal(t, lines[1], outcome.Lines[1])
}

func TestEngine_StrayIfCall(t *testing.T) {
	engine := newDefaultEngine(t)

	lines := []string{
		"        if MessageBoxW(hwnd, text, title, MB_OK);\n",
		"        if MessageBoxW(hwnd, text, title, MB_YESNO) == IDYES {\n",
	}

	outcome := engine.Apply(lines)

	require.True(t, outcome.Changed)
	assert.Equal(t, "        MessageBoxW(hwnd, text, title, MB_OK);\n", outcome.Lines[0])
	assert.Equal(t, lines[1], outcome.Lines[1])
}

func TestEngine_UnusedErrBindingOptIn(t *testing.T) {
	set, err := rules.Select(rules.Builtin(), []m.RuleID{rules.UnusedErrBinding})
	require.NoError(t, err)

	engine, err := NewEngine(set)
	require.NoError(t, err)

	outcome := engine.Apply([]string{"    if let Err(e) = run() {\n"})
	require.True(t, outcome.Changed)
	assert.Equal(t, "    if let Err(_e) = run() {\n", outcome.Lines[0])
}

func TestEngine_Idempotent(t *testing.T) {
	inputs := map[string][]string{
		"missing-if": {
			"    with_podcast_state(hwnd, |s| {\n",
			"    }).is_none() {\n",
		},
		"unhandled-err": {
			"  if let Err(e) = write(x);\n",
		},
		"stray-if-call": {
			"if MessageBoxW(h, t, c, 0);\n",
		},
		"unused-err-binding": {
			"    if let Err(e) = run() {\n",
		},
		"custom strip-keyword": {
			"    unsafe release(handle);\n",
		},
		"mixed crlf": {
			"\twith_state(h, |s| s.x).is_none() {\r\n",
			"\tif MessageBoxW(h, t, c, 0);\r\n",
			"\tif let Err(e) = write(x);\r\n",
		},
	}

	set := append(rules.Builtin()[:3:3], stripUnsafeRule())

	for name, lines := range inputs {
		t.Run(name, func(t *testing.T) {
			ruleSet := set
			if name == "unused-err-binding" {
				selected, err := rules.Select(rules.Builtin(), []m.RuleID{rules.UnusedErrBinding})
				require.NoError(t, err)

				ruleSet = selected
			}

			engine, err := NewEngine(ruleSet)
			require.NoError(t, err)

			first := engine.Apply(lines)
			require.True(t, first.Changed)

			second := engine.Apply(first.Lines)
			assert.False(t, second.Changed)
			assert.Equal(t, first.Lines, second.Lines)
		})
	}
}

func TestEngine_CustomRules(t *testing.T) {
	first := m.Rule{
		ID:       "first",
		Triggers: []string{"call("},
		Markers:  []string{";"},
		Mode:     m.MatchSuffix,
		Action:   m.Action{Kind: m.ActionInsertKeyword, Keyword: "first"},
	}
	second := m.Rule{
		ID:       "second",
		Triggers: []string{"other("},
		Markers:  []string{";"},
		Mode:     m.MatchSuffix,
		Action:   m.Action{Kind: m.ActionInsertKeyword, Keyword: "second"},
	}

	engine, err := NewEngine([]m.Rule{first, second})
	require.NoError(t, err)

	outcome := engine.Apply([]string{"call(1);\n", "other(2);\n", "call(3)\n"})
	assert.Equal(t, []string{"first call(1);\n", "second other(2);\n", "call(3)\n"}, outcome.Lines)
}

func TestEngine_RejectsConflictingRules(t *testing.T) {
	set, err := rules.Select(rules.Builtin(), []m.RuleID{rules.UnhandledErr, rules.UnusedErrBinding})
	require.NoError(t, err)

	_, err = NewEngine(set)
	require.ErrorIs(t, err, rules.ErrInvalidRule)
}

func TestEngine_DoesNotMutateInput(t *testing.T) {
	engine := newDefaultEngine(t)

	lines := []string{"if MessageBoxW(h, t, c, 0);\n"}
	before := append([]string(nil), lines...)

	engine.Apply(lines)
	assert.Equal(t, before, lines)
}

func stripUnsafeRule() m.Rule {
	return m.Rule{
		ID:       "strip-unsafe",
		Triggers: []string{"unsafe "},
		Markers:  []string{");"},
		Mode:     m.MatchSuffix,
		Action:   m.Action{Kind: m.ActionStripKeyword, Keyword: "unsafe"},
	}
}

func TestEngine_RefusesRewriteThatWouldApplyAgain(t *testing.T) {
	engine, err := NewEngine([]m.Rule{stripUnsafeRule()})
	require.NoError(t, err)

	lines := []string{
		"    unsafe release(handle);\n",
		"    unsafe unsafe release(handle);\n",
	}

	first := engine.Apply(lines)
	require.True(t, first.Changed)
	assert.Equal(t, "    release(handle);\n", first.Lines[0])
	assert.Equal(t, lines[1], first.Lines[1])
	require.Len(t, first.Matches, 2)
	assert.False(t, first.Matches[1].Found)

	second := engine.Apply(first.Lines)
	assert.False(t, second.Changed)
	assert.Equal(t, first.Lines, second.Lines)
}

func TestEngine_RejectsSelfRepeatingCustomRule(t *testing.T) {
	rule := m.Rule{
		ID:       "add-ctx",
		Triggers: []string{"call("},
		Markers:  []string{");"},
		Mode:     m.MatchSuffix,
		Action:   m.Action{Kind: m.ActionReplacePrefix, From: "call(", To: "call(ctx, "},
	}

	_, err := NewEngine([]m.Rule{rule})
	require.ErrorIs(t, err, rules.ErrInvalidRule)
}
