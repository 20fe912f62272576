package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mender.dev/pkg/mender/internal/domain"
)

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [files...]",
		Short: "Repair targets again whenever they change",
		Long: `Run one repair pass, then watch the targets and repair each file again
after the generator rewrites it. Stop with Ctrl+C.

` + targetsHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := workflow.Watch(ctx, domain.WatchArgs{FixArgs: fixArgs(args)})
			if errors.Is(err, context.Canceled) {
				return nil
			}

			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
