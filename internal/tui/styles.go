// File: styles.go
// Title: Terminal Styles
// Description: Shared colour palette and lipgloss styles for terminal output
//              and the interactive viewer, plus rendering of source
//              diagnostics with a highlighted caret line.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial styles and diagnostic rendering

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/vc2pseudo/pkg/pseudocode/diag"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray
	ColorBgPanel   = lipgloss.Color("#1E293B") // Slate 800
	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	LocationStyle = lipgloss.NewStyle().
			Bold(true)

	CaretStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	ExplanationStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ColorError)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Renderer applies the styles, or passes text through when colour is off
type Renderer struct {
	Color bool
}

func (r Renderer) render(style lipgloss.Style, text string) string {
	if !r.Color {
		return text
	}
	return style.Render(text)
}

// Diagnostic renders d as produced by diag.Format, prefixed with name when
// it is not empty. With colour on, the location, caret and explanation are
// highlighted.
func (r Renderer) Diagnostic(name string, d diag.Diagnostic) string {
	parts := strings.SplitN(diag.Format(d), "\n", 3)
	prefix := ""
	if name != "" {
		prefix = name + ":"
	}
	if len(parts) != 3 {
		return prefix + diag.Format(d)
	}

	// the caret line is indented to match the unprefixed header
	header, snippet, _ := strings.Cut(parts[0], " ")
	caret := strings.Repeat(" ", len(prefix)) + parts[1]
	return r.render(LocationStyle, prefix+header) + " " + snippet + "\n" +
		r.render(CaretStyle, caret) + "\n" +
		r.render(ExplanationStyle, parts[2])
}

// Error renders a plain error message
func (r Renderer) Error(name string, err error) string {
	prefix := ""
	if name != "" {
		prefix = name + ": "
	}
	return r.render(ErrorMessageStyle, prefix+err.Error())
}

// Status renders a one-word status such as "ok" or "failed"
func (r Renderer) Status(ok bool, text string) string {
	if ok {
		return r.render(StatusOKStyle, text)
	}
	return r.render(StatusErrorStyle, text)
}

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}
