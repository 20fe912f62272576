// Package domain contains the repair engine, the balance validator and the
// workflows that drive them over configured targets.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"mender.dev/pkg/mender/internal/adapter"
	"mender.dev/pkg/mender/internal/controller"
	m "mender.dev/pkg/mender/internal/model"
)

// ErrNoTargets is returned when a run is started without any target.
var ErrNoTargets = errors.New("no targets configured")

// FixArgs contains the arguments for a repair run.
type FixArgs struct {
	Targets []m.Path
	Reports m.Path
	Threads int
	DryRun  bool
	Diff    bool
}

// CheckArgs contains the arguments for a balance check.
type CheckArgs struct {
	Paths []m.Path
}

// WatchArgs contains the arguments for watch mode. Every pass uses the
// embedded FixArgs with Targets narrowed to the files that changed.
type WatchArgs struct {
	FixArgs
}

// ReportArgs contains the arguments for showing the last saved run.
type ReportArgs struct {
	Reports m.Path
}

// Workflow is the entry point used by the CLI commands.
type Workflow interface {
	Fix(ctx context.Context, args FixArgs) error
	Check(ctx context.Context, args CheckArgs) error
	Watch(ctx context.Context, args WatchArgs) error
	ListRules(ctx context.Context) error
	ShowReport(ctx context.Context, args ReportArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	adapter.FileWatcher
	controller.UI
	Orchestrator
	engine    Engine
	validator BalanceValidator
	now       func() time.Time
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	watcher adapter.FileWatcher,
	ui controller.UI,
	engine Engine,
	validator BalanceValidator,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		FileWatcher:     watcher,
		UI:              ui,
		Orchestrator:    NewOrchestrator(fsAdapter, engine),
		engine:          engine,
		validator:       validator,
		now:             time.Now,
	}
}

// Fix repairs every target, saves the run report and shows the summary.
// The returned error joins the per-file I/O failures.
func (w *workflow) Fix(ctx context.Context, args FixArgs) error {
	if len(args.Targets) == 0 {
		return ErrNoTargets
	}

	if err := w.Start(ctx, controller.WithFixMode(args.DryRun)); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	report, runErr := w.runFix(ctx, args)

	if args.Reports != "" {
		if err := w.SaveReport(ctx, args.Reports, report); err != nil {
			slog.Error("Failed to save report", "reports", args.Reports, "error", err)
			return errors.Join(runErr, fmt.Errorf("save report: %w", err))
		}
	}

	if err := w.DisplayRunSummary(ctx, report); err != nil {
		return errors.Join(runErr, fmt.Errorf("display: %w", err))
	}

	return runErr
}

func (w *workflow) runFix(ctx context.Context, args FixArgs) (m.RunReport, error) {
	report := m.RunReport{
		ID:      uuid.NewString(),
		Started: w.now(),
		DryRun:  args.DryRun,
	}

	slog.Info("repair run started", "run", report.ID, "targets", len(args.Targets), "dryRun", args.DryRun)

	files, err := w.Repair(ctx, args.Targets, RepairOptions{
		Threads: args.Threads,
		DryRun:  args.DryRun,
		Diff:    args.Diff,
		OnResult: func(result m.FileResult) {
			w.DisplayFileResult(ctx, result)
		},
	})
	report.Files = files

	slog.Info("repair run finished", "run", report.ID,
		"fixed", report.Count(m.Fixed), "skipped", report.Count(m.Skipped), "failed", report.Count(m.Failed))

	return report, err
}

// Check validates delimiter balance for each path. Missing paths are
// skipped; read failures are returned.
func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	if len(args.Paths) == 0 {
		return ErrNoTargets
	}

	if err := w.Start(ctx, controller.WithCheckMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	var errs []error

	for _, path := range args.Paths {
		content, err := w.ReadFile(ctx, path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				slog.Info("check target missing, skipped", "path", path)
				continue
			}

			errs = append(errs, fmt.Errorf("%s: %w", path, err))

			continue
		}

		report := w.validator.Validate(string(content))
		report.Path = path

		slog.Debug("balance checked", "path", path, "orphaned", len(report.Orphaned), "unclosed", len(report.Unclosed))

		if err := w.DisplayBalanceReport(ctx, report); err != nil {
			return err
		}
	}

	return errors.Join(errs...)
}

// Watch runs one repair pass, then repairs targets again whenever they
// change, until ctx is cancelled. Rewrites made by the pass itself trigger
// a second pass which is a no-op, so no self-write filtering is needed.
func (w *workflow) Watch(ctx context.Context, args WatchArgs) error {
	if len(args.Targets) == 0 {
		return ErrNoTargets
	}

	if err := w.Start(ctx, controller.WithWatchMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	if _, err := w.runFix(ctx, args.FixArgs); err != nil {
		slog.Warn("initial pass had failures", "error", err)
	}

	w.DisplayWatching(ctx, args.Targets)

	return w.FileWatcher.Watch(ctx, args.Targets, func(ctx context.Context, changed []m.Path) {
		pass := args.FixArgs
		pass.Targets = changed

		if _, err := w.runFix(ctx, pass); err != nil {
			slog.Warn("watch pass had failures", "error", err)
		}
	})
}

// ListRules shows the engine's active rules in priority order.
func (w *workflow) ListRules(ctx context.Context) error {
	return w.DisplayRules(ctx, w.engine.Rules())
}

// ShowReport displays the last saved run.
func (w *workflow) ShowReport(ctx context.Context, args ReportArgs) error {
	report, err := w.LoadReport(ctx, args.Reports)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	return w.DisplayRunSummary(ctx, report)
}
