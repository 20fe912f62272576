package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	m "mender.dev/pkg/mender/internal/model"
)

func reportWithFiles(n int) m.RunReport {
	report := m.RunReport{}
	for i := 0; i < n; i++ {
		report.Files = append(report.Files, m.FileResult{Path: m.Path(fmt.Sprintf("src/file_%02d.rs", i)), Status: m.Unchanged})
	}

	return report
}

func TestTUI_DisplayRunSummary_SmallList(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(newTestCmd(&buf))

	report := m.RunReport{Files: []m.FileResult{
		{Path: "src/main.rs", Status: m.Fixed, Rewrites: []m.Rewrite{{Line: 2}}},
		{Path: "src/gone.rs", Status: m.Skipped},
	}}

	if err := tui.DisplayRunSummary(context.Background(), report); err != nil {
		t.Fatalf("DisplayRunSummary() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"repair summary", "src/main.rs", "src/gone.rs", "1 fixed", "1 skipped"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q, got: %s", want, output)
		}
	}
}

func TestTUI_DisplayRunSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(newTestCmd(&buf))

	if err := tui.DisplayRunSummary(context.Background(), m.RunReport{}); err != nil {
		t.Fatalf("DisplayRunSummary() error = %v", err)
	}

	if !strings.Contains(buf.String(), "No targets configured") {
		t.Errorf("expected empty message, got: %s", buf.String())
	}
}

func TestSummaryModel_Pagination(t *testing.T) {
	model := newSummaryModel(reportWithFiles(30))
	model.height = 15

	if !model.needsPagination() {
		t.Fatal("expected pagination for 30 files in 15 rows")
	}

	perPage := model.itemsPerPage()
	if perPage != 6 {
		t.Fatalf("itemsPerPage() = %d, want 6", perPage)
	}

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	model = updated.(summaryModel)

	if model.offset != 1 {
		t.Fatalf("offset after j = %d, want 1", model.offset)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	model = updated.(summaryModel)

	if model.offset != model.maxOffset() {
		t.Fatalf("offset after G = %d, want %d", model.offset, model.maxOffset())
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	model = updated.(summaryModel)

	if model.offset != model.maxOffset() {
		t.Fatalf("offset should stay clamped at %d, got %d", model.maxOffset(), model.offset)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	model = updated.(summaryModel)

	if model.offset != 0 {
		t.Fatalf("offset after g = %d, want 0", model.offset)
	}

	view := model.View()
	if !strings.Contains(view, "src/file_00.rs") || strings.Contains(view, "src/file_29.rs") {
		t.Errorf("unexpected first page: %s", view)
	}

	if !strings.Contains(view, "1-6 of 30") {
		t.Errorf("expected page indicator, got: %s", view)
	}
}

func TestSummaryModel_Quit(t *testing.T) {
	model := newSummaryModel(reportWithFiles(3))

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	if !updated.(summaryModel).quitting {
		t.Fatal("expected quitting state")
	}
}

func TestSummaryModel_WindowSize(t *testing.T) {
	model := newSummaryModel(reportWithFiles(3))

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	model = updated.(summaryModel)

	if model.width != 80 || model.height != 40 {
		t.Fatalf("size = %dx%d, want 80x40", model.width, model.height)
	}

	if model.needsPagination() {
		t.Fatal("3 files should fit in 40 rows")
	}
}
