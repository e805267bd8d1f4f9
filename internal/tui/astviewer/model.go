// File: model.go
// Title: AST Viewer Model
// Description: Bubbletea model which shows the syntax tree of a pseudocode
//              file as a scrollable outline. The file can be reloaded, the
//              display toggled between the resolved and the raw tree, and
//              offsets and trivia nodes switched on and off. Parse errors
//              are shown as formatted diagnostics.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial viewer model

package astviewer

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/vc2pseudo/internal/tui"
	vcerrors "github.com/msto63/vc2pseudo/pkg/core/errors"
	"github.com/msto63/vc2pseudo/pkg/core/version"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/ast"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/diag"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/parser"
)

// Config holds viewer configuration
type Config struct {
	Path        string
	Parser      *parser.Parser
	ShowOffsets bool
	ShowTrivia  bool
	Unresolved  bool
}

// Model is the Bubbletea model of the viewer
type Model struct {
	// State
	width   int
	height  int
	ready   bool
	loading bool

	// Components
	viewport viewport.Model
	spinner  spinner.Model

	// Document
	path     string
	parser   *parser.Parser
	source   string
	listing  *ast.Listing
	err      error
	duration time.Duration
	lines    []ast.OutlineLine

	// Display options
	options    ast.OutlineOptions
	unresolved bool
}

// New creates a viewer model for cfg.Path
func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(tui.ColorPrimary)

	p := cfg.Parser
	if p == nil {
		p = parser.New(parser.Options{})
	}

	return Model{
		spinner: sp,
		loading: true,
		path:    cfg.Path,
		parser:  p,
		options: ast.OutlineOptions{
			IncludeTrivia: cfg.ShowTrivia,
			ShowOffsets:   cfg.ShowOffsets,
		},
		unresolved: cfg.Unresolved,
	}
}

// Init starts loading the file
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Title panel + filter line
		footerHeight := 4 // Status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case listingLoadedMsg:
		m.loading = false
		m.source = msg.source
		m.listing = msg.listing
		m.err = msg.err
		m.duration = msg.duration
		m.rebuild()
		m.viewport.GotoTop()

	case reloadMsg:
		m.loading = true
		cmds = append(cmds, m.load, m.spinner.Tick)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit

		case "r":
			return m, func() tea.Msg { return reloadMsg{} }

		case "c":
			m.parser.ClearCache()
			return m, func() tea.Msg { return reloadMsg{} }

		case "u":
			m.unresolved = !m.unresolved
			return m, func() tea.Msg { return reloadMsg{} }

		case "o":
			m.options.ShowOffsets = !m.options.ShowOffsets
			m.rebuild()
			return m, nil

		case "t":
			m.options.IncludeTrivia = !m.options.IncludeTrivia
			m.rebuild()
			return m, nil

		case "g":
			m.viewport.GotoTop()
			return m, nil

		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil

	case tea.KeyUp:
		m.viewport.LineUp(1)
		return m, nil

	case tea.KeyDown:
		m.viewport.LineDown(1)
		return m, nil
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading " + m.path + "..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(TreePanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHeader() string {
	var status string
	switch {
	case m.loading:
		status = m.spinner.View() + " parsing"
	case m.err != nil:
		status = tui.StatusErrorStyle.Render("error")
	default:
		status = tui.StatusOKStyle.Render("ok")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render(Logo),
		strings.Repeat(" ", 3),
		tui.SubtitleStyle.Render(m.path),
		strings.Repeat(" ", 3),
		status,
	)
	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

func (m Model) renderFilterBar() string {
	mode := "resolved"
	if m.unresolved {
		mode = "raw tree"
	}
	return strings.Join([]string{
		RenderFilterStatus("["+mode+"]", true),
		RenderFilterStatus("offsets", m.options.ShowOffsets),
		RenderFilterStatus("trivia", m.options.IncludeTrivia),
	}, "  ")
}

func (m Model) renderStatusBar() string {
	left := fmt.Sprintf("bytes: %d  functions: %d  nodes: %d  labels: %d",
		len(m.source), m.functionCount(), len(m.lines), len(m.Labels()))
	right := fmt.Sprintf("cached: %d  %s  v%s",
		m.parser.CacheStats().Entries, m.duration.Round(time.Microsecond), version.Tool)

	space := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if space < 2 {
		space = 2
	}
	return StatusBarStyle.Width(m.width - 2).Render(left + strings.Repeat(" ", space) + right)
}

func (m Model) renderHelpBar() string {
	items := []string{
		tui.RenderKeyHint("r", "reload"),
		tui.RenderKeyHint("c", "clear cache"),
		tui.RenderKeyHint("u", "raw/resolved"),
		tui.RenderKeyHint("o", "offsets"),
		tui.RenderKeyHint("t", "trivia"),
		tui.RenderKeyHint("g/G", "top/bottom"),
		tui.RenderKeyHint("q", "quit"),
	}
	return HelpStyle.Render(strings.Join(items, "  "))
}

// rebuild recomputes the outline and refreshes the viewport
func (m *Model) rebuild() {
	m.lines = nil
	if m.listing != nil {
		m.lines = ast.Outline(m.listing, m.options)
	}
	m.updateViewportContent()
}

// updateViewportContent renders the outline or the error into the viewport
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.Content(true))
}

// Content renders the viewport text; styled selects lipgloss output
func (m Model) Content(styled bool) string {
	if m.err != nil {
		var d diag.Diagnostic
		if errors.As(m.err, &d) {
			return tui.Renderer{Color: styled}.Diagnostic(m.path, d)
		}
		return tui.Renderer{Color: styled}.Error(m.path, m.err)
	}

	var b strings.Builder
	for _, line := range m.lines {
		b.WriteString(strings.Repeat("  ", line.Depth))
		if styled {
			b.WriteString(RenderNode(line))
		} else {
			b.WriteString(line.Text)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Labels returns the distinct label names of the current tree
func (m Model) Labels() []string {
	if m.listing == nil {
		return nil
	}
	seen := map[string]bool{}
	var names []string
	ast.Walk(m.listing, func(n ast.Node) bool {
		if l, ok := n.(*ast.Label); ok && !seen[l.Name] {
			seen[l.Name] = true
			names = append(names, l.Name)
		}
		return true
	})
	return names
}

func (m Model) functionCount() int {
	if m.listing == nil {
		return 0
	}
	return len(m.listing.Functions)
}

// load reads and parses the file
func (m Model) load() tea.Msg {
	start := time.Now()
	data, err := os.ReadFile(m.path)
	if err != nil {
		return listingLoadedMsg{err: vcerrors.Wrap(err, "reading source").WithCode(vcerrors.CodeIO)}
	}
	source := string(data)

	var listing *ast.Listing
	if m.unresolved {
		listing, err = m.parser.BuildTree(source)
	} else {
		listing, err = m.parser.Parse(source)
	}
	return listingLoadedMsg{source: source, listing: listing, err: err, duration: time.Since(start)}
}

// Run starts the viewer
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
