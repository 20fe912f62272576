package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"mender.dev/pkg/mender/internal/adapter"
	m "mender.dev/pkg/mender/internal/model"
)

// RepairOptions tunes one batch run.
type RepairOptions struct {
	// Threads bounds how many files are processed at once; <= 1 is sequential.
	Threads int
	// DryRun computes results without writing any file.
	DryRun bool
	// Diff attaches a unified diff to every changed result.
	Diff bool
	// OnResult, when set, is called once per target as soon as it is done.
	OnResult func(m.FileResult)
}

// Orchestrator drives the read, repair, conditional write cycle over an
// ordered list of targets.
type Orchestrator interface {
	RepairFile(ctx context.Context, target m.Path, opts RepairOptions) m.FileResult
	Repair(ctx context.Context, targets []m.Path, opts RepairOptions) ([]m.FileResult, error)
}

type orchestrator struct {
	fsAdapter adapter.SourceFSAdapter
	engine    Engine
}

// NewOrchestrator constructs an Orchestrator backed by the provided
// filesystem adapter and rule engine.
func NewOrchestrator(fsAdapter adapter.SourceFSAdapter, engine Engine) Orchestrator {
	return &orchestrator{
		fsAdapter: fsAdapter,
		engine:    engine,
	}
}

// Repair processes every target and returns the results in target order.
// Missing targets are skipped. Read and write failures do not stop the
// batch; they are returned joined once every target has been handled.
func (o *orchestrator) Repair(ctx context.Context, targets []m.Path, opts RepairOptions) ([]m.FileResult, error) {
	results := make([]m.FileResult, len(targets))

	var (
		group    errgroup.Group
		resultMu sync.Mutex
	)

	if opts.Threads > 1 {
		group.SetLimit(opts.Threads)
	} else {
		group.SetLimit(1)
	}

	for i, target := range targets {
		i, target := i, target
		group.Go(func() error {
			result := o.RepairFile(ctx, target, opts)
			results[i] = result

			if opts.OnResult != nil {
				resultMu.Lock()
				opts.OnResult(result)
				resultMu.Unlock()
			}

			return nil
		})
	}

	_ = group.Wait()

	var errs []error

	for _, result := range results {
		if result.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", result.Path, result.Err))
		}
	}

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}

	return results, errors.Join(errs...)
}

// RepairFile runs a single target through the engine.
func (o *orchestrator) RepairFile(ctx context.Context, target m.Path, opts RepairOptions) m.FileResult {
	result := m.FileResult{Path: target}

	info, err := o.fsAdapter.FileInfo(ctx, target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("target missing, skipped", "path", target)

			result.Status = m.Skipped

			return result
		}

		return o.failed(result, "stat", err)
	}

	if info.IsDir() {
		return o.failed(result, "stat", fmt.Errorf("%s is a directory", target))
	}

	content, err := o.fsAdapter.ReadFile(ctx, target)
	if err != nil {
		return o.failed(result, "read", err)
	}

	source := m.SourceFile{Path: target, Lines: SplitLines(string(content))}
	outcome := o.engine.Apply(source.Lines)

	for _, match := range outcome.Matches {
		if match.Found {
			result.Rewrites = append(result.Rewrites, m.Rewrite{Line: match.Line + 1, Rule: match.Rule})
		} else {
			result.NoOps++
		}
	}

	if !outcome.Changed {
		slog.Debug("no changes", "path", target, "unconfirmed", result.NoOps)

		result.Status = m.Unchanged

		return result
	}

	repaired := m.SourceFile{Path: target, Lines: outcome.Lines}

	if opts.Diff {
		result.Diff = unifiedDiff(source, repaired)
	}

	if !opts.DryRun {
		if err := o.fsAdapter.WriteFile(ctx, target, []byte(repaired.Content()), info.Mode().Perm()); err != nil {
			return o.failed(result, "write", err)
		}
	}

	slog.Info("target repaired", "path", target, "rewrites", len(result.Rewrites), "dryRun", opts.DryRun)

	result.Status = m.Fixed

	return result
}

func (o *orchestrator) failed(result m.FileResult, op string, err error) m.FileResult {
	slog.Error("target failed", "path", result.Path, "op", op, "error", err)

	result.Status = m.Failed
	result.Err = fmt.Errorf("%s: %w", op, err)
	result.Rewrites = nil

	return result
}

func unifiedDiff(before, after m.SourceFile) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        before.Lines,
		B:        after.Lines,
		FromFile: string(before.Path),
		ToFile:   string(after.Path),
		Context:  2,
	})
	if err != nil {
		slog.Warn("diff failed", "path", before.Path, "error", err)
		return ""
	}

	return diff
}
