package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRulesCmd(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd := newTestRootCmd(newRulesCmd())

	mockWorkflow.On("ListRules", mock.Anything).Return(nil)

	cmd.SetArgs([]string{"rules"})
	require.NoError(t, cmd.Execute())
}

func TestRulesCmd_RejectsArgs(t *testing.T) {
	withMockWorkflow(t)
	cmd := newTestRootCmd(newRulesCmd())

	cmd.SetArgs([]string{"rules", "missing-if"})
	require.Error(t, cmd.Execute())
}
