package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zxdeck/zx"
)

const defaultSource = `OPENQASM 2.0;
include "qelib1.inc";

qreg q[2];
creg c[2];

h q[0];
cx q[0], q[1];
measure q -> c;
`

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
)

// view selects which side of the pass the circuit panel shows.
type view int

const (
	viewOriginal view = iota
	viewOptimized
)

// sourceChangedMsg carries new QASM read from the watched file.
type sourceChangedMsg struct {
	src string
}

// watchErrMsg reports a failure of the file watcher.
type watchErrMsg struct {
	err error
}

// Model represents the TUI application state.
type Model struct {
	analyzer  *analyzer
	result    *analysis
	original  *Circuit
	optimized *Circuit
	view      view

	cursorQubit int
	cursorStep  int
	width       int
	height      int
	qasmEditor  textarea.Model
	focus       focus
	lastQASM    string
	statusMsg   string // transient status message (e.g. save confirmation)
	showProbs   bool
	path        string // file the source came from, if any

	// Menu state
	menuItem  int
	menuLevel int
	menuRules zx.Rule
}

func initialModel(a *analyzer, src, path string, showProbs bool) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.KeyMap.InsertNewline.SetEnabled(true)

	if src == "" {
		src = defaultSource
	}
	m := Model{
		analyzer:   a,
		qasmEditor: ta,
		focus:      focusCircuit,
		view:       viewOptimized,
		showProbs:  showProbs,
		path:       path,
	}
	m.setSource(src)
	return m
}

// setSource replaces the editor content and re-runs the pass.
func (m *Model) setSource(src string) {
	m.qasmEditor.SetValue(src)
	m.lastQASM = src
	m.reanalyze()
}

// reanalyze runs the pass over the current source and rebuilds both views.
func (m *Model) reanalyze() {
	m.result = m.analyzer.analyze(m.lastQASM)
	m.original = NewCircuit(m.result.original)
	m.optimized = NewCircuit(m.result.optimized)
	m.clampCursor()
}

func (m *Model) parseQASMInput() {
	src := m.qasmEditor.Value()
	if src != m.lastQASM {
		m.lastQASM = src
		m.reanalyze()
	}
}

// currentCircuit returns the view shown in the circuit panel. When the pass
// failed the optimized view falls back to the original.
func (m Model) currentCircuit() *Circuit {
	if m.view == viewOptimized && m.result != nil && m.result.err == nil {
		return m.optimized
	}
	return m.original
}

func (m Model) gateUnderCursor() *Gate {
	c := m.currentCircuit()
	if c == nil {
		return nil
	}
	return c.GetGateAt(m.cursorStep, m.cursorQubit)
}

func (m *Model) clampCursor() {
	c := m.currentCircuit()
	if c == nil || c.NumQubits == 0 {
		m.cursorQubit, m.cursorStep = 0, 0
		return
	}
	m.cursorQubit = min(m.cursorQubit, c.NumQubits-1)
	m.cursorStep = min(m.cursorStep, max(c.MaxSteps-1, 0))
}

// outputPath is where the optimized circuit is saved.
func (m Model) outputPath() string {
	if m.path == "" {
		return "circuit.opt.qasm"
	}
	return strings.TrimSuffix(m.path, filepath.Ext(m.path)) + ".opt.qasm"
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		ctrlH := 6
		circH := msg.Height - ctrlH - 4
		editorH := max(circH/2-4, 4)
		m.qasmEditor.SetHeight(editorH)

	case sourceChangedMsg:
		m.setSource(msg.src)
		m.statusMsg = "Reloaded " + m.path

	case watchErrMsg:
		m.statusMsg = fmt.Sprintf("Watch error: %v", msg.err)

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "o":
				if m.view == viewOriginal {
					m.view = viewOptimized
				} else {
					m.view = viewOriginal
				}
				m.clampCursor()
			case "r":
				m.openMenu()
			case "p":
				m.showProbs = !m.showProbs
			case "a":
				if m.result == nil || m.result.err != nil {
					m.statusMsg = "Nothing to apply"
					break
				}
				m.setSource(m.result.output)
				m.statusMsg = "Optimized circuit loaded into editor"
			case "ctrl+s":
				if m.result == nil || m.result.err != nil {
					m.statusMsg = "Nothing to save"
					break
				}
				path := m.outputPath()
				if err := os.WriteFile(path, []byte(m.result.output), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved " + path
				}
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if c := m.currentCircuit(); c != nil && m.cursorQubit < c.NumQubits-1 {
					m.cursorQubit++
				}
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
				}
			case "right", "l":
				if c := m.currentCircuit(); c != nil && m.cursorStep < c.MaxSteps-1 {
					m.cursorStep++
				}
			}

		case focusMenu:
			m.menuKey(key)

		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sideWidth := m.width / 3
	circuitWidth := m.width - sideWidth - 4
	controlsHeight := 6
	circuitHeight := max(m.height-controlsHeight-2, 6)
	qasmHeight := circuitHeight / 2
	statsHeight := circuitHeight - qasmHeight - 2

	circuitPanel := m.renderCircuitPanel(circuitWidth, circuitHeight)
	qasmPanel := m.renderQASMPanel(sideWidth, qasmHeight)
	statsPanel := m.renderStatsPanel(sideWidth, statsHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	side := lipgloss.JoinVertical(lipgloss.Left, qasmPanel, statsPanel)
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, side)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}
	return frame
}
