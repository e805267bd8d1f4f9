// File: parse.go
// Title: Parse Command
// Description: Prints the syntax tree of a listing as YAML, JSON or an
//              indented outline.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial parse command

package cmd

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/msto63/vc2pseudo/pkg/core/config"
	vcerrors "github.com/msto63/vc2pseudo/pkg/core/errors"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/ast"
)

type parseOptions struct {
	format     string
	unresolved bool
	trivia     bool
	offsets    bool
}

func newParseCmd(a *app) *cobra.Command {
	opts := &parseOptions{}

	parseCmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the syntax tree of a listing",
		Long: `Parses a listing and prints its syntax tree. Use "-" to read from
standard input.

Examples:
  vc2pseudo parse prog.pseudo
  vc2pseudo parse --format yaml --trivia prog.pseudo
  cat prog.pseudo | vc2pseudo parse --format json -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(cmd, args[0], opts)
		},
	}

	parseCmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: tree, yaml, json (default from config)")
	parseCmd.Flags().BoolVar(&opts.unresolved, "unresolved", false, "skip label resolution")
	parseCmd.Flags().BoolVar(&opts.trivia, "trivia", false, "include comments, line ends and empty lines")
	parseCmd.Flags().BoolVar(&opts.offsets, "offsets", false, "show source offsets in the tree format")
	return parseCmd
}

func (a *app) runParse(cmd *cobra.Command, path string, opts *parseOptions) error {
	format := opts.format
	if format == "" {
		format = a.cfg.Output.Format
	}

	listing, err := a.parseFile(cmd, path, opts.unresolved)
	if err != nil {
		a.report(cmd.ErrOrStderr(), path, err)
		return &reportedError{err}
	}
	return writeListing(cmd.OutOrStdout(), listing, format, opts)
}

func writeListing(w io.Writer, listing *ast.Listing, format string, opts *parseOptions) error {
	switch format {
	case config.OutputTree:
		_, err := io.WriteString(w, ast.RenderOutline(ast.Outline(listing, ast.OutlineOptions{
			IncludeTrivia: opts.trivia,
			ShowOffsets:   opts.offsets,
		})))
		return err

	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ast.NewDumper(opts.trivia).Dump(listing)); err != nil {
			return vcerrors.Wrap(err, "encoding yaml").WithCode(vcerrors.CodeInternal)
		}
		return enc.Close()

	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ast.NewDumper(opts.trivia).Dump(listing)); err != nil {
			return vcerrors.Wrap(err, "encoding json").WithCode(vcerrors.CodeInternal)
		}
		return nil
	}
	return vcerrors.Newf("unknown output format %q", format).WithCode(vcerrors.CodeInvalidInput)
}
