package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mender.dev/pkg/mender/internal/domain"
	m "mender.dev/pkg/mender/internal/model"
)

// fixCmd represents the fix command.
var fixCmd = newFixCmd()

func newFixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fix [files...]",
		Short: "Repair generated source files in place",
		Long:  fixLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args)
		},
	}
}

func init() {
	rootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	return workflow.Fix(cmd.Context(), fixArgs(args))
}

// fixArgs resolves targets from args, falling back to the configured list.
func fixArgs(args []string) domain.FixArgs {
	targets := parsePaths(args)
	if len(targets) == 0 {
		targets = configuredPaths(targetsConfigKey)
	}

	return domain.FixArgs{
		Targets: targets,
		Reports: m.Path(viper.GetString(outputFlagName)),
		Threads: viper.GetInt(runParallelConfigKey),
		DryRun:  viper.GetBool(dryRunConfigKey),
		Diff:    viper.GetBool(diffConfigKey),
	}
}
