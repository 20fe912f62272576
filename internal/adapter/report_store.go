package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	m "mender.dev/pkg/mender/internal/model"
)

// LastRunFile is the report file name inside the reports directory.
const LastRunFile = "last-run.yaml"

// ErrNoReport is returned by LoadReport when no run has been saved yet.
var ErrNoReport = errors.New("no saved report")

// ReportStore persists run reports.
type ReportStore interface {
	SaveReport(ctx context.Context, dir m.Path, report m.RunReport) error
	LoadReport(ctx context.Context, dir m.Path) (m.RunReport, error)
}

type yamlReportStore struct{}

// NewReportStore returns a ReportStore writing YAML files.
func NewReportStore() ReportStore {
	return &yamlReportStore{}
}

type runReportDoc struct {
	ID      string          `yaml:"id"`
	Started time.Time       `yaml:"started"`
	DryRun  bool            `yaml:"dry_run"`
	Files   []fileResultDoc `yaml:"files"`
}

type fileResultDoc struct {
	Path     string      `yaml:"path"`
	Status   string      `yaml:"status"`
	Rewrites []m.Rewrite `yaml:"rewrites,omitempty"`
	NoOps    int         `yaml:"noops,omitempty"`
	Error    string      `yaml:"error,omitempty"`
}

func (s *yamlReportStore) SaveReport(ctx context.Context, dir m.Path, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(toDoc(report))
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	target := filepath.Join(string(dir), LastRunFile)
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

func (s *yamlReportStore) LoadReport(ctx context.Context, dir m.Path) (m.RunReport, error) {
	if err := ctx.Err(); err != nil {
		return m.RunReport{}, err
	}

	// #nosec G304 - reports dir is configured by the user
	data, err := os.ReadFile(filepath.Join(string(dir), LastRunFile))
	if err != nil {
		if os.IsNotExist(err) {
			return m.RunReport{}, ErrNoReport
		}

		return m.RunReport{}, fmt.Errorf("read report: %w", err)
	}

	var doc runReportDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return m.RunReport{}, fmt.Errorf("decode report: %w", err)
	}

	return fromDoc(doc), nil
}

func toDoc(report m.RunReport) runReportDoc {
	doc := runReportDoc{
		ID:      report.ID,
		Started: report.Started.UTC(),
		DryRun:  report.DryRun,
		Files:   make([]fileResultDoc, 0, len(report.Files)),
	}

	for _, file := range report.Files {
		entry := fileResultDoc{
			Path:     string(file.Path),
			Status:   file.Status.String(),
			Rewrites: file.Rewrites,
			NoOps:    file.NoOps,
		}
		if file.Err != nil {
			entry.Error = file.Err.Error()
		}

		doc.Files = append(doc.Files, entry)
	}

	return doc
}

func fromDoc(doc runReportDoc) m.RunReport {
	report := m.RunReport{
		ID:      doc.ID,
		Started: doc.Started,
		DryRun:  doc.DryRun,
		Files:   make([]m.FileResult, 0, len(doc.Files)),
	}

	for _, entry := range doc.Files {
		file := m.FileResult{
			Path:     m.Path(entry.Path),
			Status:   parseStatus(entry.Status),
			Rewrites: entry.Rewrites,
			NoOps:    entry.NoOps,
		}
		if entry.Error != "" {
			file.Err = errors.New(entry.Error)
		}

		report.Files = append(report.Files, file)
	}

	return report
}

func parseStatus(s string) m.FileStatus {
	for _, status := range []m.FileStatus{m.Unchanged, m.Fixed, m.Skipped, m.Failed} {
		if status.String() == s {
			return status
		}
	}

	return m.Unchanged
}
