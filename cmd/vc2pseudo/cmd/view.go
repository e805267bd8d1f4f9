// File: view.go
// Title: View Command
// Description: Opens the interactive syntax tree viewer for a listing.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial view command

package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/vc2pseudo/internal/tui/astviewer"
)

func newViewCmd(a *app) *cobra.Command {
	var unresolved bool

	viewCmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Browse the syntax tree of a listing interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return astviewer.Run(a.viewerConfig(args[0], unresolved))
		},
	}

	viewCmd.Flags().BoolVar(&unresolved, "unresolved", false, "start with the tree before label resolution")
	return viewCmd
}

// viewerCache covers the raw and resolved tree of the current file
const viewerCache = 2

func (a *app) viewerConfig(path string, unresolved bool) astviewer.Config {
	// the viewer owns the terminal
	quiet := a.logger.WithOutput(io.Discard)
	return astviewer.Config{
		Path:        path,
		Parser:      a.parserWith(quiet, viewerCache),
		ShowOffsets: a.cfg.Viewer.ShowOffsets,
		ShowTrivia:  a.cfg.Viewer.ShowTrivia,
		Unresolved:  unresolved,
	}
}
