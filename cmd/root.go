// Package cmd implements the CLI for unorm using Cobra.
// It parses flags, sets up logging, runs the pipeline and maps the outcome
// to a process exit code.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/unorm/core"
	"github.com/gaurav-prasanna/unorm/core/input"
	"github.com/gaurav-prasanna/unorm/core/normalize"
	"github.com/gaurav-prasanna/unorm/core/output"
	"github.com/gaurav-prasanna/unorm/core/pipeline"
	"github.com/gaurav-prasanna/unorm/logger"
)

// Process exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// options holds the parsed flag values for one invocation.
type options struct {
	form     string
	logLevel string
	logJSON  bool
}

// app carries everything a single run needs.
type app struct {
	fs     afero.Fs
	stderr io.Writer
	opts   options
	log    logger.Logger
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unorm <input_file> <output_file>",
		Short: "unorm — normalize Unicode text files",
		Long: `unorm reads a UTF-8 text file, rewrites it into a Unicode normalization
form (NFC, NFD, NFKC or NFKD) and writes the result to the output file.

Examples:
  unorm input.txt output.txt
  unorm input.txt output.txt --form NFKD --log_level DEBUG`,
		Args:              exactPaths(2),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setupLogger,
		RunE:              a.runNormalize,
	}

	cmd.Flags().StringVar(&a.opts.form, "form", string(core.DefaultForm),
		fmt.Sprintf("Unicode normalization form: %s", joinForms()))
	cmd.Flags().StringVar(&a.opts.logLevel, "log_level", string(logger.InfoLevel),
		"Log level: DEBUG|INFO|WARNING|ERROR|CRITICAL")
	cmd.Flags().BoolVar(&a.opts.logJSON, "log_json", false, "Emit log lines as JSON")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return core.Wrap(core.InvalidArgument, "parse flags", "", err)
	})
	return cmd
}

// Run executes the CLI with args and returns the exit code.
func Run(args []string, stdout, stderr io.Writer, fs afero.Fs) int {
	if args == nil {
		args = []string{}
	}
	a := &app{fs: fs, stderr: stderr}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		a.logger().Error("Normalization failed", "kind", core.KindOf(err).String(), "err", err)
		return ExitFailure
	}
	return ExitSuccess
}

// Execute runs the root command against the real filesystem and exits.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr, afero.NewOsFs()))
}

func (a *app) setupLogger(_ *cobra.Command, _ []string) error {
	level, err := logger.ParseLevel(a.opts.logLevel)
	if err != nil {
		return core.Wrap(core.InvalidArgument, "parse flags", "", err)
	}
	a.log = a.newLogger(level)
	return nil
}

// logger returns the configured logger. Failures raised before setupLogger
// ran still get reported, at the requested level when it is valid.
func (a *app) logger() logger.Logger {
	if a.log != nil {
		return a.log
	}
	level, err := logger.ParseLevel(a.opts.logLevel)
	if err != nil {
		level = logger.InfoLevel
	}
	a.log = a.newLogger(level)
	return a.log
}

func (a *app) newLogger(level logger.Level) logger.Logger {
	return logger.NewLogger(&logger.Config{
		Level:      level,
		Output:     a.stderr,
		JSON:       a.opts.logJSON,
		TimeFormat: logger.DefaultTimeFormat,
	})
}

func (a *app) runNormalize(_ *cobra.Command, args []string) error {
	p := pipeline.New(input.New(a.fs), normalize.New(), output.New(a.fs), a.log)
	res, err := p.Run(args[0], args[1], a.opts.form)
	if err != nil {
		return err
	}
	a.log.Debug("Run complete", "bytes_read", res.BytesRead, "bytes_written", res.BytesWritten)
	return nil
}

// exactPaths wraps cobra.ExactArgs so a wrong argument count is reported as
// an invalid argument.
func exactPaths(n int) cobra.PositionalArgs {
	check := cobra.ExactArgs(n)
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return core.Wrap(core.InvalidArgument, "parse arguments", "", err)
		}
		return nil
	}
}

func joinForms() string {
	names := make([]string, len(core.Forms))
	for i, f := range core.Forms {
		names[i] = f.String()
	}
	return strings.Join(names, "|")
}
