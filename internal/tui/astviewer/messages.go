// File: messages.go
// Title: AST Viewer Messages
// Description: Message types for asynchronous operations of the viewer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial message types

package astviewer

import (
	"time"

	"github.com/msto63/vc2pseudo/pkg/pseudocode/ast"
)

// listingLoadedMsg is sent when the source file was read and parsed
type listingLoadedMsg struct {
	source   string
	listing  *ast.Listing
	err      error
	duration time.Duration
}

// reloadMsg requests the file to be read again
type reloadMsg struct{}
