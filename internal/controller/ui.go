// Package controller provides the output side of the CLI: plain text for
// pipes and logs, and an interactive pager for terminals.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "mender.dev/pkg/mender/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeFix StartMode = iota
	ModeCheck
	ModeWatch
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode   StartMode
	dryRun bool
}

// WithFixMode sets the UI to repair mode.
func WithFixMode(dryRun bool) StartOption {
	return func(c *StartConfig) {
		c.mode = ModeFix
		c.dryRun = dryRun
	}
}

// WithCheckMode sets the UI to balance-check mode.
func WithCheckMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCheck
	}
}

// WithWatchMode sets the UI to watch mode.
func WithWatchMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeWatch
	}
}

// UI defines how workflow progress and results are shown.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayFileResult(ctx context.Context, result m.FileResult)
	DisplayRunSummary(ctx context.Context, report m.RunReport) error
	DisplayBalanceReport(ctx context.Context, report m.BalanceReport) error
	DisplayRules(ctx context.Context, rules []m.Rule) error
	DisplayWatching(ctx context.Context, targets []m.Path)
}

// NewUI picks the interactive UI for terminals and the plain one otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
