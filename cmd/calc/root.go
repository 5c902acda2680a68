package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"calc/internal/config"
	"calc/internal/evaluator"
	"calc/internal/telemetry"
	"calc/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// Set up by initConfig for the command being executed.
var (
	settings config.Settings
	metrics  *telemetry.Metrics
	closeLog = func() error { return nil }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "Evaluate one arithmetic operation on two numbers",
	Long: `calc prompts for a number, an operator (+, -, *, /) and a second number,
then prints the result with six decimal places.

Division by zero, an unknown operator or a malformed number print an error
line and exit with status 1.`,
	Args:              cobra.NoArgs,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := newSession(cmd).Run()
		return reported(err)
	},
}

// reportedError marks an error whose message has already been printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Wrap Execute in panic recovery for graceful shutdown
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if code := execute(rootCmd); code != 0 {
		exit(code)
	}
}

// execute runs cmd and maps the outcome to an exit status.
func execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	flushTelemetry()
	if err == nil {
		return 0
	}

	var rep *reportedError
	if errors.As(err, &rep) {
		return 1
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	fmt.Fprintln(cmd.ErrOrStderr(), "Run 'calc --help' for usage.")
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./calc.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Also append JSON logs to this file")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this file on exit")
	rootCmd.PersistentFlags().String("color", ui.ColorAuto, "Colorize the result line: auto, always or never")
}

// initConfig reads in config file and ENV variables if set, then sets up
// logging and metrics.
func initConfig(cmd *cobra.Command, args []string) error {
	viper.Reset()
	if err := config.Load(cfgFile, cmd.Flags()); err != nil {
		return err
	}
	settings = config.Current()

	level, err := telemetry.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	if settings.Verbose {
		level = slog.LevelDebug
	}
	_, closeLog = telemetry.InitLogger(cmd.ErrOrStderr(), level, settings.LogFile)
	metrics = telemetry.NewMetrics()

	if used := config.ConfigFileUsed(); used != "" {
		slog.Debug("using config file", "path", used)
	}
	return nil
}

func flushTelemetry() {
	if metrics != nil && settings.MetricsFile != "" {
		if err := metrics.WriteTextfile(settings.MetricsFile); err != nil {
			slog.Warn("failed to write metrics file", "path", settings.MetricsFile, "error", err)
		}
	}
	if err := closeLog(); err != nil {
		slog.Warn("failed to close log file", "error", err)
	}
	metrics = nil
	closeLog = func() error { return nil }
}

func newSession(cmd *cobra.Command) *evaluator.Session {
	out := cmd.OutOrStdout()
	return evaluator.NewSession(cmd.InOrStdin(), out,
		evaluator.WithStyles(ui.NewStyles(out, settings.Color)),
		evaluator.WithMetrics(metrics),
		evaluator.WithLogger(slog.Default()),
	)
}
