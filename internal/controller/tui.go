package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "mender.dev/pkg/mender/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	statusStyles = map[m.FileStatus]lipgloss.Style{
		m.Fixed:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		m.Unchanged: lipgloss.NewStyle().Faint(true),
		m.Skipped:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		m.Failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

// TUI shows per-file progress like SimpleUI and pages long summaries with
// Bubble Tea.
type TUI struct {
	*SimpleUI
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd), output: cmd.OutOrStdout()}
}

// DisplayRunSummary prints the summary, or opens a pager when it does not
// fit on screen.
func (p *TUI) DisplayRunSummary(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newSummaryModel(report)

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Quit     key.Binding
}

var summaryKeys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "u"), key.WithHelp("u", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "d"), key.WithHelp("d", "page down")),
	Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// summaryModel is the Bubble Tea model for the run summary.
type summaryModel struct {
	report   m.RunReport
	height   int
	width    int
	offset   int
	quitting bool
}

func newSummaryModel(report m.RunReport) summaryModel {
	return summaryModel{report: report}
}

func (sm summaryModel) Init() tea.Cmd {
	return nil
}

func (sm summaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		sm.height = msg.Height
		sm.width = msg.Width
		sm.offset = sm.clamp(sm.offset)

		return sm, nil

	case tea.KeyMsg:
		return sm.handleKeyPress(msg)
	}

	return sm, nil
}

func (sm summaryModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, summaryKeys.Quit):
		sm.quitting = true
		return sm, tea.Quit
	case key.Matches(msg, summaryKeys.Down):
		sm.offset = sm.clamp(sm.offset + 1)
	case key.Matches(msg, summaryKeys.Up):
		sm.offset = sm.clamp(sm.offset - 1)
	case key.Matches(msg, summaryKeys.PageDown):
		sm.offset = sm.clamp(sm.offset + sm.itemsPerPage())
	case key.Matches(msg, summaryKeys.PageUp):
		sm.offset = sm.clamp(sm.offset - sm.itemsPerPage())
	case key.Matches(msg, summaryKeys.Top):
		sm.offset = 0
	case key.Matches(msg, summaryKeys.Bottom):
		sm.offset = sm.maxOffset()
	}

	return sm, nil
}

// itemsPerPage leaves room for the title box, the totals and the help line.
func (sm summaryModel) itemsPerPage() int {
	if sm.height == 0 {
		return 10
	}

	available := sm.height - 9
	if available < 1 {
		return 1
	}

	return available
}

func (sm summaryModel) maxOffset() int {
	maxOff := len(sm.report.Files) - sm.itemsPerPage()
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

func (sm summaryModel) clamp(offset int) int {
	if offset < 0 {
		return 0
	}

	if maxOff := sm.maxOffset(); offset > maxOff {
		return maxOff
	}

	return offset
}

func (sm summaryModel) needsPagination() bool {
	return sm.height > 0 && len(sm.report.Files) > sm.itemsPerPage()
}

func (sm summaryModel) View() string {
	if sm.quitting {
		return ""
	}

	var b strings.Builder

	title := "mender - repair summary"
	if sm.report.DryRun {
		title += " (dry run)"
	}

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if len(sm.report.Files) == 0 {
		b.WriteString("  No targets configured\n")
		return b.String()
	}

	start := sm.offset
	end := start + sm.itemsPerPage()

	if !sm.needsPagination() {
		start, end = 0, len(sm.report.Files)
	}

	if end > len(sm.report.Files) {
		end = len(sm.report.Files)
	}

	for _, file := range sm.report.Files[start:end] {
		status := statusStyles[file.Status].Render(fmt.Sprintf("%-9s", file.Status))
		fmt.Fprintf(&b, "  %s %s", status, file.Path)

		if n := len(file.Rewrites); n > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %d rewrite(s)", n)))
		}

		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n  %d file(s): %d fixed, %d unchanged, %d skipped, %d failed\n",
		len(sm.report.Files),
		sm.report.Count(m.Fixed),
		sm.report.Count(m.Unchanged),
		sm.report.Count(m.Skipped),
		sm.report.Count(m.Failed),
	)

	if sm.needsPagination() {
		fmt.Fprintf(&b, "\n  %s\n", dimStyle.Render(fmt.Sprintf(
			"%d-%d of %d  %s  %s  %s  %s",
			start+1, end, len(sm.report.Files),
			summaryKeys.Down.Help().Key+" "+summaryKeys.Down.Help().Desc,
			summaryKeys.Up.Help().Key+" "+summaryKeys.Up.Help().Desc,
			summaryKeys.PageDown.Help().Key+" "+summaryKeys.PageDown.Help().Desc,
			summaryKeys.Quit.Help().Key+" "+summaryKeys.Quit.Help().Desc,
		)))
	}

	return b.String()
}
