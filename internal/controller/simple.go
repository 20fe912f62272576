package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "mender.dev/pkg/mender/internal/model"
)

var (
	fixedLabel   = color.New(color.FgGreen).SprintFunc()
	skippedLabel = color.New(color.FgYellow).SprintFunc()
	failedLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd    *cobra.Command
	dryRun bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := &StartConfig{}
	for _, option := range options {
		option(cfg)
	}

	s.dryRun = cfg.dryRun
	if cfg.mode == ModeFix && cfg.dryRun {
		s.printf("Dry run: no files will be written\n")
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// DisplayFileResult prints one line per processed target, followed by the
// diff when one was computed.
func (s *SimpleUI) DisplayFileResult(ctx context.Context, result m.FileResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	switch result.Status {
	case m.Fixed:
		verb := "Fixed"
		if s.dryRun {
			verb = "Would fix"
		}

		s.printf("%s %s (%d rewrite(s))\n", fixedLabel(verb), result.Path, len(result.Rewrites))
	case m.Unchanged:
		s.printf("No changes for %s\n", result.Path)
	case m.Skipped:
		s.printf("%s %s (not found)\n", skippedLabel("Skipped"), result.Path)
	case m.Failed:
		s.printf("%s %s: %v\n", failedLabel("Failed"), result.Path, result.Err)
	}

	if result.Diff != "" {
		s.printf("%s", result.Diff)
	}
}

// DisplayRunSummary prints the per-file table and totals.
func (s *SimpleUI) DisplayRunSummary(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderSummaryTable(report))

	return nil
}

func renderSummaryTable(report m.RunReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Status", "Rewrites", "Unconfirmed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	rewrites := 0

	for _, file := range report.Files {
		table.Append([]string{
			string(file.Path),
			file.Status.String(),
			fmt.Sprintf("%d", len(file.Rewrites)),
			fmt.Sprintf("%d", file.NoOps),
		})

		rewrites += len(file.Rewrites)
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(report.Files)),
		fmt.Sprintf("%d fixed", report.Count(m.Fixed)),
		fmt.Sprintf("%d", rewrites),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayBalanceReport prints orphaned closers in encounter order, then the
// unclosed openers or a confirmation line.
func (s *SimpleUI) DisplayBalanceReport(ctx context.Context, report m.BalanceReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", FormatBalanceReport(report))

	return nil
}

// FormatBalanceReport renders a balance report as plain text.
func FormatBalanceReport(report m.BalanceReport) string {
	var b strings.Builder

	if report.Path != "" {
		fmt.Fprintf(&b, "%s:\n", report.Path)
	}

	for _, d := range report.Orphaned {
		fmt.Fprintf(&b, "Extra closing brace at index %d (line %d)\n", d.Offset, d.Line)
	}

	if len(report.Unclosed) == 0 {
		b.WriteString("All braces are balanced.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Total unclosed braces: %d\n", len(report.Unclosed))

	for _, d := range report.Unclosed {
		fmt.Fprintf(&b, "Unclosed brace at line %d (index %d)\n", d.Line, d.Offset)
		fmt.Fprintf(&b, "  Context: %s\n", d.Context)
	}

	return b.String()
}

// DisplayRules prints the active rule set.
func (s *SimpleUI) DisplayRules(ctx context.Context, rules []m.Rule) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderRulesTable(rules))

	return nil
}

func renderRulesTable(rules []m.Rule) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "Rule", "Action", "Lookahead", "Triggers"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for i, rule := range rules {
		lookahead := "until boundary"
		if rule.Lookahead > 0 {
			lookahead = fmt.Sprintf("%d", rule.Lookahead)
		}

		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			string(rule.ID),
			string(rule.Action.Kind),
			lookahead,
			fmt.Sprintf("%d", len(rule.Triggers)),
		})
	}

	table.Render()

	return tableBuffer.String()
}

// DisplayWatching announces the watched targets.
func (s *SimpleUI) DisplayWatching(ctx context.Context, targets []m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Watching %d target(s), press Ctrl+C to stop\n", len(targets))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
