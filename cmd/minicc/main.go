// Command minicc parses a single C-subset source file and prints the
// resulting syntax tree on standard output. Diagnostics go to standard
// error; the exit code does not reflect the diagnostic count.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/mstoykov/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"minicc/pkg/compiler"
	"minicc/pkg/diag"
)

// options hold the driver settings. Environment variables with the
// MINICC_ prefix provide defaults; flags override them.
type options struct {
	Verbose bool `split_words:"true"`
	NoColor bool `split_words:"true"`
}

func main() {
	cmd := newRootCmd(afero.NewOsFs(), os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(fs afero.Fs, stdout, stderr io.Writer) *cobra.Command {
	var opts options
	if err := envconfig.Process("minicc", &opts); err != nil {
		fmt.Fprintln(stderr, "minicc:", err)
	}

	logger := logrus.New()
	logger.SetOutput(stderr)

	cmd := &cobra.Command{
		Use:          "minicc <source-file>",
		Short:        "Parse a C-subset source file and dump its syntax tree",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
			return run(fs, logger, stdout, stderr, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "enable debug logging, including a token trace")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", opts.NoColor, "disable colored diagnostics")
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd
}

func run(fs afero.Fs, logger *logrus.Logger, stdout, stderr io.Writer, path string, opts options) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.Wrapf(err, "could not read %s", path)
	}

	if opts.Verbose {
		// Trace pass over a throwaway reporter so each diagnostic is
		// still emitted exactly once, by the parse below.
		trace := diag.NewReporter(io.Discard, false)
		for _, tok := range compiler.Lex(bytes.NewReader(data), path, trace) {
			logger.Debug(tok.String())
		}
	}

	rep := diag.NewReporter(stderr, !opts.NoColor)
	lx := compiler.NewLexer(bytes.NewReader(data), path, rep)
	defer lx.Close()

	program := compiler.NewParser(lx, rep).ParseProgram()

	fmt.Fprintln(stdout, path)
	compiler.Fprint(stdout, program)

	if n := rep.Count(); n > 0 {
		logger.Warnf("%d diagnostics emitted while parsing %s", n, path)
	}
	return nil
}
