// File: root.go
// Title: Root Command
// Description: Root of the vc2pseudo command tree. Loads the configuration,
//              applies flag overrides, and prepares the logger, parser and
//              terminal renderer shared by all subcommands.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial root command

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/msto63/vc2pseudo/internal/tui"
	"github.com/msto63/vc2pseudo/pkg/core/config"
	vcerrors "github.com/msto63/vc2pseudo/pkg/core/errors"
	vclog "github.com/msto63/vc2pseudo/pkg/core/log"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/parser"
)

// app carries state shared by the subcommands of one invocation
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string
	color     string

	cfg      *config.Config
	logger   *vclog.Logger
	parser   *parser.Parser
	renderer tui.Renderer // for diagnostics on stderr
}

// NewRootCmd builds the complete command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "vc2pseudo",
		Short: "Pseudocode parser and label resolver",
		Long: `vc2pseudo parses pseudocode listings into a syntax tree and resolves
which names are variables and which are labels.

Names that are assigned (or are function parameters) are variables; names
that are only ever read are labels. Using a name as both, or subscripting
a label, is reported with the offending source line.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $"+config.EnvConfigPath+" or ./vc2pseudo.toml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: console, text, json")
	flags.StringVar(&a.color, "color", "", "colour output: auto, always, never")

	rootCmd.AddCommand(
		newParseCmd(a),
		newCheckCmd(a),
		newViewCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line and returns the process exit status
func Execute() int {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var reported *reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return exitStatus(err)
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		a.cfg.Log.Format = a.logFormat
	}
	if a.color != "" {
		a.cfg.Output.Color = a.color
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	logConfig := a.cfg.LoggerConfig()
	logConfig.Output = cmd.ErrOrStderr()
	a.logger = vclog.NewWithConfig(logConfig).
		WithNewCorrelationID().
		WithField("command", cmd.Name())

	a.parser = a.parserWith(a.logger, 0)
	a.renderer = tui.Renderer{Color: colorEnabled(a.cfg.Output.Color, cmd.ErrOrStderr())}

	a.logger.Debug("configuration loaded", vclog.Fields{
		"max_input_length": a.cfg.Parser.MaxInputLength,
		"output_format":    a.cfg.Output.Format,
	})
	return nil
}

// parserWith creates a parser configured from the loaded config. The cache
// holds at least minCache results.
func (a *app) parserWith(logger *vclog.Logger, minCache int) *parser.Parser {
	cacheSize := a.cfg.Parser.CacheSize
	if cacheSize < minCache {
		cacheSize = minCache
	}
	return parser.New(parser.Options{
		Logger:         logger,
		MaxInputLength: a.cfg.Parser.MaxInputLength,
		TraceRules:     a.cfg.Parser.TraceRules,
		CacheSize:      cacheSize,
		CacheTTL:       a.cfg.Parser.CacheTTL.Duration,
	})
}

// colorEnabled resolves a colour mode for output written to w
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// reportedError marks an error whose details were already printed
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// exitStatus maps an error onto a process exit status
func exitStatus(err error) int {
	code := vcerrors.CodeOf(err)
	if code == "" {
		// cobra's own usage errors
		return 2
	}
	return code.ExitStatus()
}
