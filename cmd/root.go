// Package cmd provides the root command and CLI setup for mender.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mender.dev/pkg/mender/internal/adapter"
	"mender.dev/pkg/mender/internal/controller"
	"mender.dev/pkg/mender/internal/domain"
	m "mender.dev/pkg/mender/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var fileWatcher adapter.FileWatcher
var engine domain.Engine
var validator domain.BalanceValidator
var workflow domain.Workflow
var ui controller.UI

// setupErr holds a configuration error found while wiring dependencies.
// It is reported when a command runs so that help and init keep working.
var setupErr error

// skipSetupCheck marks commands that must run even when setupErr is set.
const skipSetupCheck = "skip-setup-check"

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// verboseFlag switches the log file to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	fileWatcher = adapter.NewFileWatcher(time.Duration(viper.GetInt(watchDebounceConfigKey)) * time.Millisecond)
	validator = domain.NewBalanceValidator()

	set, err := configuredRules()
	if err == nil {
		engine, err = domain.NewEngine(set)
	}

	if err != nil {
		setupErr = errors.Join(setupErr, fmt.Errorf("rules: %w", err))
		return
	}

	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		fileWatcher,
		ui,
		engine,
		validator,
	)
}

const targetsHelp = `Targets are the explicit file list under "targets" in mender.yaml, or the
paths given on the command line. Patterns are not expanded and missing
files are skipped.`

const rootLongDescription = `Mender repairs recurring syntax defects in generated source files.

It scans each target line by line for a fixed catalog of defect shapes,
confirms every candidate by looking ahead for a marker, and rewrites only
the offending lines. Running it on the root command is the same as "fix".

` + targetsHelp

const fixLongDescription = `Repair the configured targets in place.

` + targetsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mender",
		Short:        "Heuristic repair for generated source files",
		Long:         rootLongDescription,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFix(cmd, nil)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

		if _, ok := cmd.Annotations[skipSetupCheck]; ok {
			return nil
		}

		return setupErr
	}

	return cmd
}

// newRootCmd builds a fresh root command with its flags, for tests and
// embedding.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			defaultReportsDir,
			"output directory for run reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().IntP(runParallelFlagName, "p", defaultRunParallel, "number of files repaired in parallel")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.PersistentFlags().Bool(dryRunFlagName, defaultDryRun, "compute repairs without writing any file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(dryRunFlagName), dryRunConfigKey)

	cmd.PersistentFlags().Bool(diffFlagName, defaultDiff, "print a unified diff for every repaired file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(diffFlagName), diffConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
