// ============================================================================
// rair - Reverse Engineering Shell
// ============================================================================
//
// Package:     shell
// Description: Full-screen Bubbletea front end for the shell
// Author:      msto63
// Created:     2025-03-02
// License:     MIT
// ============================================================================

package shell

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	rairlog "github.com/msto63/rair/foundation/core/log"
	"github.com/msto63/rair/internal/rcore/core"
	"github.com/msto63/rair/pkg/core/version"
)

// Config holds the front end settings
type Config struct {
	// HistoryFile is loaded at startup and receives every entered line.
	// Empty keeps the history in memory only.
	HistoryFile  string
	HistoryLimit int
}

// Model is the Bubbletea model of the full-screen shell
type Model struct {
	// State
	width  int
	height int
	ready  bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Session
	core       *core.Core
	transcript *strings.Builder
	lines      []string
	historyIdx int
	cfg        Config
	logger     *rairlog.Logger
}

// New creates the model around c. The history file is loaded best-effort.
func New(c *core.Core, cfg Config) Model {
	logger := c.Logger().WithField("component", "tui")

	lines, err := loadHistory(cfg.HistoryFile, cfg.HistoryLimit)
	if err != nil {
		logger.Debug("History not loaded", rairlog.Fields{
			"path":  cfg.HistoryFile,
			"error": err.Error(),
		})
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "command (Tab completes, name? shows help)"
	ti.ShowSuggestions = true
	ti.SetSuggestions(c.Commands().Names())
	ti.Focus()

	return Model{
		input:      ti,
		core:       c,
		transcript: &strings.Builder{},
		lines:      lines,
		historyIdx: -1,
		cfg:        cfg,
		logger:     logger,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 1
		footerHeight := 5
		viewportHeight := max(msg.Height-headerHeight-footerHeight, 1)

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 20
		m.viewport.SetContent(m.transcript.String())
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		return m, tea.Quit

	case tea.KeyEnter:
		line := m.input.Value()
		m.input.Reset()
		m.historyIdx = -1
		m.execute(line)
		if m.core.ShouldQuit() {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyUp:
		if len(m.lines) > 0 && m.historyIdx < len(m.lines)-1 {
			m.historyIdx++
			m.input.SetValue(m.lines[len(m.lines)-1-m.historyIdx])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.historyIdx > 0 {
			m.historyIdx--
			m.input.SetValue(m.lines[len(m.lines)-1-m.historyIdx])
			m.input.CursorEnd()
		} else if m.historyIdx == 0 {
			m.historyIdx = -1
			m.input.Reset()
		}
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// execute runs line on the core and appends its output to the transcript
func (m *Model) execute(line string) {
	var stdout, stderr bytes.Buffer
	prev, prevErr := m.core.Out(), m.core.Err()
	m.core.SetOutput(&stdout, &stderr)
	m.transcript.WriteString(PromptStyle.Render(prompt(m.core)) + line + "\n")
	m.core.Exec(line)
	m.core.SetOutput(prev, prevErr)

	if strings.TrimSpace(line) != "" {
		m.remember(line)
	}
	if stdout.Len() > 0 {
		m.transcript.WriteString(OutputStyle.Render(strings.TrimRight(stdout.String(), "\n")) + "\n")
	}
	if stderr.Len() > 0 {
		m.transcript.WriteString(ErrorOutputStyle.Render(strings.TrimRight(stderr.String(), "\n")) + "\n")
	}

	if m.ready {
		m.viewport.SetContent(m.transcript.String())
		m.viewport.GotoBottom()
	}
}

// remember adds line to the in-memory history and the history file
func (m *Model) remember(line string) {
	m.lines = append(m.lines, line)
	if limit := m.cfg.HistoryLimit; limit > 0 && len(m.lines) > limit {
		m.lines = m.lines[len(m.lines)-limit:]
	}

	if err := appendHistory(m.cfg.HistoryFile, line); err != nil {
		m.logger.Debug("History not saved", rairlog.Fields{
			"path":  m.cfg.HistoryFile,
			"error": err.Error(),
		})
	}
}

// Transcript returns everything shown in the transcript so far
func (m Model) Transcript() string {
	return m.transcript.String()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading rair..."
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("rair " + version.Version))
	b.WriteString("\n")
	b.WriteString(TranscriptStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(PromptStyle.Render(prompt(m.core)) + m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("Enter: run • ↑/↓: history • PgUp/PgDn: scroll • Ctrl+C: quit"))

	return b.String()
}

func (m Model) renderStatusBar() string {
	status := fmt.Sprintf("loc 0x%x • mode %s • %d commands", m.core.Loc(), m.core.Mode(), m.core.Commands().Len())
	return StatusBarStyle.Width(m.width).Render(status)
}

func prompt(c *core.Core) string {
	return fmt.Sprintf("[0x%08x]> ", c.Loc())
}

// Run starts the full-screen shell
func Run(c *core.Core, cfg Config) error {
	p := tea.NewProgram(New(c, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
