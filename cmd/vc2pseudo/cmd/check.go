// File: check.go
// Title: Check Command
// Description: Parses and resolves one or more listings and reports syntax
//              errors and name conflicts. Optionally lists the labels found
//              in each function.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial check command

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	vclog "github.com/msto63/vc2pseudo/pkg/core/log"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/resolver"
)

type checkOptions struct {
	labels bool
	quiet  bool
}

func newCheckCmd(a *app) *cobra.Command {
	opts := &checkOptions{}

	checkCmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Check listings for syntax errors and name conflicts",
		Long: `Parses each listing and resolves its labels. Problems are printed with
the offending source line. The exit status is 1 when any listing has an
error.

Examples:
  vc2pseudo check prog.pseudo lib.pseudo
  vc2pseudo check --labels prog.pseudo`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, args, opts)
		},
	}

	checkCmd.Flags().BoolVar(&opts.labels, "labels", false, "list the labels of each function")
	checkCmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print errors only")
	return checkCmd
}

func (a *app) runCheck(cmd *cobra.Command, paths []string, opts *checkOptions) error {
	out := cmd.OutOrStdout()
	var firstErr error
	failed := 0

	for _, path := range paths {
		labels, err := a.checkFile(cmd, path, opts.labels)
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			fmt.Fprintf(out, "%s %s\n", a.renderer.Status(false, "FAIL"), path)
			a.report(cmd.ErrOrStderr(), path, err)
			continue
		}
		if opts.quiet {
			continue
		}
		fmt.Fprintf(out, "%s   %s\n", a.renderer.Status(true, "ok"), path)
		writeLabels(out, labels)
	}

	stats := a.parser.CacheStats()
	a.logger.Info("check finished", vclog.Fields{"files": len(paths), "failed": failed, "cache_hits": stats.Hits})
	if !opts.quiet || failed > 0 {
		fmt.Fprintf(out, "checked %d file(s), %d failed\n", len(paths), failed)
	}
	if firstErr != nil {
		return &reportedError{firstErr}
	}
	return nil
}

// functionLabels pairs a function name with its sorted label names
type functionLabels struct {
	function string
	labels   []string
}

// checkFile parses and resolves path. With withLabels set, functions are
// resolved one at a time to collect their labels.
func (a *app) checkFile(cmd *cobra.Command, path string, withLabels bool) ([]functionLabels, error) {
	if !withLabels {
		_, err := a.parseFile(cmd, path, false)
		return nil, err
	}

	source, err := readSource(cmd, path)
	if err != nil {
		return nil, err
	}
	listing, err := a.parseSource(path, source, true)
	if err != nil {
		return nil, err
	}

	r := resolver.New(source)
	result := make([]functionLabels, 0, len(listing.Functions))
	for _, f := range listing.Functions {
		if _, err := r.Function(f); err != nil {
			return nil, classify(err)
		}
		result = append(result, functionLabels{function: f.Name, labels: r.Labels()})
	}
	return result, nil
}

func writeLabels(w io.Writer, functions []functionLabels) {
	for _, f := range functions {
		labels := "-"
		if len(f.labels) > 0 {
			labels = strings.Join(f.labels, ", ")
		}
		fmt.Fprintf(w, "  %s: %s\n", f.function, labels)
	}
}
