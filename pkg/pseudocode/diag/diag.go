// File: diag.go
// Title: Source Positions and Diagnostics
// Description: Maps byte offsets onto 1-based line/column positions, captures
//              the source line around an offset and renders positioned
//              diagnostics with a caret under the offending column. All
//              user-facing errors of the pseudocode pipeline are formatted
//              through Format.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial position mapping and diagnostic rendering

package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Diagnostic is a positioned, user-facing problem report
type Diagnostic interface {
	Line() int    // 1-based
	Column() int  // 1-based
	Snippet() string
	Explanation() string
}

// Location is a captured source position. Embed it in error types to
// provide the positional half of Diagnostic.
type Location struct {
	line    int
	column  int
	snippet string
}

// At captures the line, column and full source line for offset
func At(source string, offset int) Location {
	line, column := Position(source, offset)
	return Location{line: line, column: column, snippet: LineText(source, offset)}
}

// Line returns the 1-based line number
func (l Location) Line() int { return l.line }

// Column returns the 1-based column number
func (l Location) Column() int { return l.column }

// Snippet returns the source line containing the location
func (l Location) Snippet() string { return l.snippet }

// Position returns the 1-based line and column of offset. "\n", "\r\n" and
// "\r" all end a line. Columns count characters, not bytes. Offsets beyond
// the end of source are clamped.
func Position(source string, offset int) (line, column int) {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		offset = 0
	}
	start := lineStart(source, offset)
	line = 1
	for i := 0; i < start; i++ {
		switch source[i] {
		case '\n':
			line++
		case '\r':
			if i+1 >= len(source) || source[i+1] != '\n' {
				line++
			}
		}
	}
	return line, utf8.RuneCountInString(source[start:offset]) + 1
}

// LineText returns the source line containing offset, without its line
// terminator
func LineText(source string, offset int) string {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		offset = 0
	}
	start := lineStart(source, offset)
	end := strings.IndexAny(source[start:], "\r\n")
	if end < 0 {
		return source[start:]
	}
	return source[start : start+end]
}

// lineStart returns the offset of the first character on offset's line
func lineStart(source string, offset int) int {
	if idx := strings.LastIndexAny(source[:offset], "\r\n"); idx >= 0 {
		return idx + 1
	}
	return 0
}

// Format renders a diagnostic as
//
//	<line>:<column>: <source line>
//	                 ^
//	<explanation>
func Format(d Diagnostic) string {
	header := fmt.Sprintf("%d:%d: ", d.Line(), d.Column())
	return header + d.Snippet() + "\n" +
		strings.Repeat(" ", utf8.RuneCountInString(header)) + caretPadding(d.Snippet(), d.Column()) + "^\n" +
		d.Explanation()
}

// caretPadding reproduces the whitespace preceding column so that tabs in
// the source line keep the caret aligned
func caretPadding(snippet string, column int) string {
	var b strings.Builder
	n := 0
	for _, r := range snippet {
		if n >= column-1 {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
		n++
	}
	for ; n < column-1; n++ {
		b.WriteRune(' ')
	}
	return b.String()
}
