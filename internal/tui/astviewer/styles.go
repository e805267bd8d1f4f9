// File: styles.go
// Title: AST Viewer Styles
// Description: Styles for the AST viewer. Node lines are coloured by kind.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial styles

package astviewer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/vc2pseudo/internal/tui"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/ast"
)

var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(tui.ColorPrimary).
			Bold(true)

	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(tui.ColorPrimary).
			Padding(0, 2)

	TreePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(tui.ColorDimmed).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Background(tui.ColorBgPanel).
			Foreground(tui.ColorText).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(tui.ColorMuted).
			MarginTop(1)

	FilterActiveStyle = lipgloss.NewStyle().
				Foreground(tui.ColorSuccess).
				Bold(true)

	FilterInactiveStyle = lipgloss.NewStyle().
				Foreground(tui.ColorMuted)
)

// Node styles by kind
var kindStyles = map[ast.Kind]lipgloss.Style{
	ast.KindTrivia:     lipgloss.NewStyle().Foreground(tui.ColorMuted).Italic(true),
	ast.KindFunction:   lipgloss.NewStyle().Foreground(tui.ColorPrimary).Bold(true),
	ast.KindStatement:  lipgloss.NewStyle().Foreground(tui.ColorText).Bold(true),
	ast.KindExpression: lipgloss.NewStyle().Foreground(tui.ColorText),
	ast.KindVariable:   lipgloss.NewStyle().Foreground(tui.ColorSecondary),
	ast.KindLabel:      lipgloss.NewStyle().Foreground(tui.ColorAccent).Bold(true),
	ast.KindLiteral:    lipgloss.NewStyle().Foreground(tui.ColorSuccess),
}

// Logo
const Logo = "vc2pseudo AST"

// RenderNode renders one outline line's text in its kind's style
func RenderNode(line ast.OutlineLine) string {
	style, ok := kindStyles[line.Kind]
	if !ok {
		return line.Text
	}
	return style.Render(line.Text)
}

// RenderFilterStatus renders a toggle indicator
func RenderFilterStatus(name string, active bool) string {
	if active {
		return FilterActiveStyle.Render(name)
	}
	return FilterInactiveStyle.Render(name)
}
