// File: source.go
// Title: Source Loading
// Description: Reads listings from files or standard input, runs the parser
//              and turns parse failures into coded, printable errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial source loading

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	vcerrors "github.com/msto63/vc2pseudo/pkg/core/errors"
	vclog "github.com/msto63/vc2pseudo/pkg/core/log"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/ast"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/diag"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/peg"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/resolver"
)

const stdinName = "-"

// readSource reads path, or standard input for "-"
func readSource(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinName {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", vcerrors.Wrap(err, "reading "+path).WithCode(vcerrors.CodeIO)
	}
	return string(data), nil
}

// parseFile reads and parses path. Label resolution is skipped when
// unresolved is set.
func (a *app) parseFile(cmd *cobra.Command, path string, unresolved bool) (*ast.Listing, error) {
	source, err := readSource(cmd, path)
	if err != nil {
		return nil, err
	}
	return a.parseSource(path, source, unresolved)
}

// parseSource parses source read from path. Failures are returned coded
// and logged at debug level only, since the caller reports them.
func (a *app) parseSource(path, source string, unresolved bool) (*ast.Listing, error) {
	logger := a.logger.WithField("file", path)
	logger.Debug("parsing", vclog.Fields{"bytes": len(source), "unresolved": unresolved})

	var (
		listing *ast.Listing
		err     error
	)
	if unresolved {
		listing, err = a.parser.BuildTree(source)
	} else {
		listing, err = a.parser.Parse(source)
	}
	if err != nil {
		err = classify(err)
		logger.Debug("parse failed", vclog.Fields{"error_code": string(vcerrors.CodeOf(err))})
		return nil, err
	}
	return listing, nil
}

// classify attaches an error code to parser failures
func classify(err error) error {
	if vcerrors.CodeOf(err) != "" {
		return err
	}
	var parseErr *peg.ParseError
	var nameErr resolver.ASTConstructionError
	switch {
	case errors.As(err, &parseErr):
		return vcerrors.Wrap(err, "syntax error").WithCode(vcerrors.CodeSyntax)
	case errors.As(err, &nameErr):
		return vcerrors.Wrap(err, "name conflict").WithCode(vcerrors.CodeNameConflict)
	}
	return vcerrors.Wrap(err, "parsing").WithCode(vcerrors.CodeInternal)
}

// report prints err for file name to w. Diagnostics are rendered with their
// source line and caret.
func (a *app) report(w io.Writer, name string, err error) {
	var d diag.Diagnostic
	if errors.As(err, &d) {
		fmt.Fprintln(w, a.renderer.Diagnostic(name, d))
		return
	}
	fmt.Fprintln(w, a.renderer.Error(name, err))
}
