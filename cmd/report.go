package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mender.dev/pkg/mender/internal/domain"
	m "mender.dev/pkg/mender/internal/model"
)

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the last saved run",
		Long:  "Show the per-file results of the last fix run saved in the output directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			return workflow.ShowReport(cmd.Context(), domain.ReportArgs{Reports: reportsPath})
		},
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
