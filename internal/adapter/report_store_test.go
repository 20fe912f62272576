package adapter

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "mender.dev/pkg/mender/internal/model"
)

func TestReportStore_SaveAndLoad(t *testing.T) {
	store := NewReportStore()
	dir := m.Path(filepath.Join(t.TempDir(), "reports"))

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	report := m.RunReport{
		ID:      "run-1",
		Started: started,
		DryRun:  true,
		Files: []m.FileResult{
			{Path: "src/main.rs", Status: m.Fixed, Rewrites: []m.Rewrite{{Line: 12, Rule: "missing-if"}}, NoOps: 1},
			{Path: "src/search.rs", Status: m.Skipped},
			{Path: "src/locked.rs", Status: m.Failed, Err: errors.New("permission denied")},
		},
	}

	require.NoError(t, store.SaveReport(context.Background(), dir, report))

	loaded, err := store.LoadReport(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "run-1", loaded.ID)
	assert.True(t, loaded.Started.Equal(started))
	assert.True(t, loaded.DryRun)
	require.Len(t, loaded.Files, 3)
	assert.Equal(t, m.Fixed, loaded.Files[0].Status)
	assert.Equal(t, []m.Rewrite{{Line: 12, Rule: "missing-if"}}, loaded.Files[0].Rewrites)
	assert.Equal(t, 1, loaded.Files[0].NoOps)
	assert.Equal(t, m.Skipped, loaded.Files[1].Status)
	require.Error(t, loaded.Files[2].Err)
	assert.Equal(t, "permission denied", loaded.Files[2].Err.Error())
}

func TestReportStore_LoadMissing(t *testing.T) {
	store := NewReportStore()

	_, err := store.LoadReport(context.Background(), m.Path(t.TempDir()))
	require.ErrorIs(t, err, ErrNoReport)
}
