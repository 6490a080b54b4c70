// Package commands implements the CLI commands for cpp-scaffold.
package commands

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AstroAir/create-cpp-project-sub000/internal/config"
	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
	"github.com/AstroAir/create-cpp-project-sub000/internal/logging"
)

// version is set at build time via ldflags.
// Default to a development version for local builds.
const version = "0.1.0"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configDir holds the value of the --config-dir flag.
var configDir string

// projectDir holds the value of the --project-dir flag.
var projectDir string

// engineOnce guards lazy engine construction; commands that never touch
// configuration (help, version) must not fail on a broken config directory.
var (
	engineOnce sync.Once
	engineInst *config.Engine
	engineErr  error
)

func init() {
	cobra.OnInitialize(initViper)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"override the configuration directory")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project-dir", ".",
		"directory holding the project-scope document")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("cpp-scaffold version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// initViper wires presentation defaults (log format, color) so they can come
// from the environment as well as flags. The engine owns everything else.
func initViper() {
	viper.SetEnvPrefix("CPP_SCAFFOLD")
	viper.AutomaticEnv()
	viper.SetDefault("log_format", string(logging.FormatText))
}

var rootCmd = &cobra.Command{
	Use:   "cpp-scaffold",
	Short: "C++ project scaffolding with layered configuration",
	Long: `cpp-scaffold generates C++ project skeletons from templates and manages
the layered configuration behind them.

Settings resolve across a fixed precedence order: command-line flags beat
environment variables, which beat the current wizard session, the project
document, user defaults and the global configuration, in that order. Saved
profiles capture a complete settings snapshot outside that hierarchy.`,
	Example: `  # Start the interactive wizard
  cpp-scaffold new my-app

  # Inspect the effective value of a key
  cpp-scaffold config get defaults.buildSystem

  # Save current defaults as a named profile
  cpp-scaffold profile save embedded-work

  # Check a configuration before generating
  cpp-scaffold validate`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		if v == 0 {
			if val, ok := os.LookupEnv("CPP_SCAFFOLD_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 1
				case "2":
					v = 2
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format := logFormat
	if format == "" {
		format = viper.GetString("log_format")
	}

	opts := &slog.HandlerOptions{Level: level}

	var primaryHandler slog.Handler
	switch logging.Format(format) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// engine returns the shared configuration engine, constructing it on first
// use so help and version never pay for (or fail on) config loading.
func engine() (*config.Engine, error) {
	engineOnce.Do(func() {
		opts := []config.Option{
			config.WithLogger(slog.Default()),
			config.WithProjectDir(projectDir),
		}
		if configDir != "" {
			opts = append(opts, config.WithConfigRoot(configDir))
		}
		engineInst, engineErr = config.New(opts...)
	})
	if engineErr != nil {
		return nil, errors.NewSystemError(engineErr, "check the configuration directory and its permissions")
	}
	return engineInst, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
