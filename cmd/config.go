package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"mender.dev/pkg/mender/internal/domain/rules"
	m "mender.dev/pkg/mender/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "mender"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName      = "output"
	verboseFlagName     = "verbose"
	runParallelFlagName = "parallel"
	dryRunFlagName      = "dry-run"
	diffFlagName        = "diff"

	targetsConfigKey       = "targets"
	runParallelConfigKey   = "run.parallel"
	dryRunConfigKey        = "run.dry_run"
	diffConfigKey          = "run.diff"
	checkPathsConfigKey    = "check.paths"
	rulesEnabledConfigKey  = "rules.enabled"
	rulesCustomConfigKey   = "rules.custom"
	watchDebounceConfigKey = "watch.debounce_ms"

	defaultReportsDir    = ".mender"
	defaultRunParallel   = 1
	defaultDryRun        = false
	defaultDiff          = false
	defaultWatchDebounce = 200

	envPrefix = "MENDER"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".mender.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// defaultTargets is the generator's output layout. Targets are listed
// explicitly and never globbed.
var defaultTargets = []string{
	"src/main.rs",
	"src/search.rs",
	"src/tts_engine.rs",
	"src/editor_manager.rs",
	"src/audio_player.rs",
	"src/mf_encoder.rs",
	"src/sapi5_engine.rs",
	"src/app_windows/youtube_transcript_window.rs",
	"src/app_windows/prompt_window.rs",
	"src/app_windows/podcast_window.rs",
	"src/app_windows/podcast_save_window.rs",
	"src/app_windows/podcasts_window.rs",
	"src/app_windows/options_window.rs",
	"src/app_windows/marker_select_window.rs",
	"src/app_windows/help_window.rs",
	"src/app_windows/find_in_files_window.rs",
	"src/app_windows/dictionary_window.rs",
	"src/app_windows/bookmarks_window.rs",
	"src/app_windows/batch_audiobooks_window.rs",
	"src/app_windows/audiobook_window.rs",
	"src/app_windows/rss_window.rs",
	"src/app_windows/wiktionary_window.rs",
}

var defaultCheckPaths = []string{"src/main.rs"}

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(targetsConfigKey, defaultTargets)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(dryRunConfigKey, defaultDryRun)
	viper.SetDefault(diffConfigKey, defaultDiff)
	viper.SetDefault(checkPathsConfigKey, defaultCheckPaths)
	viper.SetDefault(rulesEnabledConfigKey, ruleIDStrings(rules.DefaultEnabled()))
	viper.SetDefault(rulesCustomConfigKey, []m.Rule{})
	viper.SetDefault(watchDebounceConfigKey, defaultWatchDebounce)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	setupErr = readConfig()
}

// readConfig loads mender.yaml. A missing file is not an error; a file that
// cannot be parsed is, so a typo never silently falls back to defaults.
func readConfig() error {
	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("read %s: %w", configFileName, err)
}

func ruleIDStrings(ids []m.RuleID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}

	return out
}

// configuredRules resolves the active rule set: the enabled built-ins in
// configured order followed by every custom rule.
func configuredRules() ([]m.Rule, error) {
	enabled := viper.GetStringSlice(rulesEnabledConfigKey)

	ids := make([]m.RuleID, 0, len(enabled))
	for _, id := range enabled {
		ids = append(ids, m.RuleID(strings.TrimSpace(id)))
	}

	set, err := rules.Select(rules.Builtin(), ids)
	if err != nil {
		return nil, err
	}

	var custom []m.Rule
	if err := viper.UnmarshalKey(rulesCustomConfigKey, &custom); err != nil {
		return nil, err
	}

	return append(set, custom...), nil
}

func configuredPaths(key string) []m.Path {
	return parsePaths(viper.GetStringSlice(key))
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels are accepted as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger points the default slog logger at a rotating log file.
//
// It logs at the configured level, or Debug when verbose is set.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
