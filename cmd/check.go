package cmd

import (
	"github.com/spf13/cobra"

	"mender.dev/pkg/mender/internal/domain"
)

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "Report unbalanced braces",
		Long: `Report closing braces with nothing open and opening braces never closed,
with line numbers and surrounding context. The check is advisory: it never
changes a file and never influences "fix".

Without arguments the paths under "check.paths" in mender.yaml are checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := parsePaths(args)
			if len(paths) == 0 {
				paths = configuredPaths(checkPathsConfigKey)
			}

			return workflow.Check(cmd.Context(), domain.CheckArgs{Paths: paths})
		},
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
