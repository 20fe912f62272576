package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	m "mender.dev/pkg/mender/internal/model"
)

// ErrInvalidRule is returned for rule definitions the engine cannot run.
var ErrInvalidRule = errors.New("invalid rule")

var ruleValidate = validator.New()

// Validate checks a rule set before it is handed to the engine.
//
// Per rule: struct constraints, action fields required by the action kind,
// and no exemption that would also make a trigger exempt. Across rules:
// ids are unique and no two rules share an overlapping trigger, so at most
// one rule can claim a line.
func Validate(set []m.Rule) error {
	seen := make(map[m.RuleID]struct{}, len(set))

	for i, rule := range set {
		if err := validateRule(rule); err != nil {
			return err
		}

		if _, dup := seen[rule.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidRule, rule.ID)
		}

		seen[rule.ID] = struct{}{}

		for _, other := range set[:i] {
			if trigger, otherTrigger, ok := overlappingTriggers(rule, other); ok {
				return fmt.Errorf("%w: %q trigger %q overlaps %q trigger %q",
					ErrInvalidRule, rule.ID, trigger, other.ID, otherTrigger)
			}
		}
	}

	return nil
}

func validateRule(rule m.Rule) error {
	if err := ruleValidate.Struct(rule); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidRule, rule.ID, err)
	}

	if err := validateAction(rule.Action); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidRule, rule.ID, err)
	}

	if err := validateProgress(rule); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidRule, rule.ID, err)
	}

	for _, trigger := range rule.Triggers {
		for _, exemption := range rule.Exemptions {
			if strings.HasPrefix(trigger, exemption) || strings.HasPrefix(exemption, trigger) {
				return fmt.Errorf("%w: %q exemption %q overlaps trigger %q",
					ErrInvalidRule, rule.ID, exemption, trigger)
			}
		}
	}

	return nil
}

func validateAction(action m.Action) error {
	switch action.Kind {
	case m.ActionInsertKeyword, m.ActionStripKeyword:
		if strings.TrimSpace(action.Keyword) == "" {
			return fmt.Errorf("%s action needs a keyword", action.Kind)
		}
	case m.ActionReplacePrefix:
		if action.From == "" || action.To == "" {
			return fmt.Errorf("%s action needs from and to", action.Kind)
		}
	case m.ActionWrapBlock:
		if strings.TrimSpace(action.Body) == "" {
			return fmt.Errorf("%s action needs a body", action.Kind)
		}
	default:
		return fmt.Errorf("unknown action kind %q", action.Kind)
	}

	return nil
}

// validateProgress rejects actions whose output still starts the way the
// input did, which would make the rule fire again on the next pass.
func validateProgress(rule m.Rule) error {
	switch rule.Action.Kind {
	case m.ActionReplacePrefix:
		if strings.HasPrefix(rule.Action.To, rule.Action.From) {
			return fmt.Errorf("replacement %q keeps prefix %q", rule.Action.To, rule.Action.From)
		}

		for _, trigger := range rule.Triggers {
			if strings.HasPrefix(rule.Action.To, trigger) && !hasPrefixIn(rule.Action.To, rule.Exemptions) {
				return fmt.Errorf("replacement %q still starts with trigger %q", rule.Action.To, trigger)
			}
		}
	case m.ActionInsertKeyword:
		inserted := rule.Action.Keyword + " "
		for _, trigger := range rule.Triggers {
			if strings.HasPrefix(inserted, trigger) {
				return fmt.Errorf("inserted %q starts with trigger %q", inserted, trigger)
			}
		}
	}

	return nil
}

func hasPrefixIn(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func overlappingTriggers(a, b m.Rule) (string, string, bool) {
	for _, ta := range a.Triggers {
		for _, tb := range b.Triggers {
			if strings.HasPrefix(ta, tb) || strings.HasPrefix(tb, ta) {
				return ta, tb, true
			}
		}
	}

	return "", "", false
}
