package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mender.dev/pkg/mender/internal/domain"
	m "mender.dev/pkg/mender/internal/model"
)

func TestWatchCmd_PassesFixArgs(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd := newTestRootCmd(newWatchCmd())

	mockWorkflow.On("Watch", mock.Anything, mock.MatchedBy(func(args domain.WatchArgs) bool {
		return len(args.Targets) == 1 &&
			args.Targets[0] == m.Path("src/main.rs") &&
			args.DryRun
	})).Return(nil)

	cmd.SetArgs([]string{"watch", "--dry-run", "src/main.rs"})
	require.NoError(t, cmd.Execute())
}

func TestWatchCmd_CancellationIsNotAnError(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd := newTestRootCmd(newWatchCmd())

	mockWorkflow.On("Watch", mock.Anything, mock.Anything).Return(context.Canceled)

	cmd.SetArgs([]string{"watch"})
	require.NoError(t, cmd.Execute())
}
