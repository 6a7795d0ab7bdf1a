// Package tui is the interactive terminal view over a shell session.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NERVsystems/nathterm/internal/shell"
)

const (
	refreshInterval = 50 * time.Millisecond
	inputHeight     = 2
)

// dispatchedMsg reports that a submitted line finished dispatching.
type dispatchedMsg struct{}

// refreshMsg re-renders live content.
type refreshMsg struct{}

// Model is the bubbletea model for one shell session.
type Model struct {
	session    *shell.Session
	dispatcher *shell.Dispatcher
	ctx        context.Context

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   Styles
	renderer *Renderer

	// busy gates input from Enter until the dispatch command returns.
	busy       bool
	refreshing bool
	ready      bool
	width      int
	height     int
}

// New creates a view over s. The view owns s and closes it on quit.
func New(ctx context.Context, s *shell.Session, d *shell.Dispatcher) Model {
	styles := NewStyles()

	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "type a command"
	in.CharLimit = 512
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Warning

	return Model{
		session:    s,
		dispatcher: d,
		ctx:        ctx,
		input:      in,
		spinner:    sp,
		styles:     styles,
		renderer:   NewRenderer(styles, 80),
	}
}

// Init starts the cursor blink and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) dispatch(line string) tea.Cmd {
	return func() tea.Msg {
		m.dispatcher.Run(m.ctx, m.session, line)
		return dispatchedMsg{}
	}
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

// Update handles keys, resizes and refresh ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := msg.Height - inputHeight
		if h < 1 {
			h = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		m.input.Width = msg.Width - len(m.session.Prompt()) - 1
		m.renderer.SetWidth(msg.Width)
		m.syncViewport()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			m.session.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			line := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(line) == "" {
				return m, nil
			}
			m.busy = true
			m.input.Blur()
			return m, m.dispatch(line)
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		if !m.busy {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

	case dispatchedMsg:
		m.busy = false
		cmds = append(cmds, m.input.Focus())
		m.syncViewport()
		if !m.refreshing && !m.session.Settled() {
			m.refreshing = true
			cmds = append(cmds, refresh())
		}

	case refreshMsg:
		m.syncViewport()
		if m.session.Settled() {
			m.refreshing = false
		} else {
			cmds = append(cmds, refresh())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.busy {
			m.syncViewport()
		}

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// syncViewport re-renders the scrollback and follows the bottom.
func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderScrollback())
	m.viewport.GotoBottom()
}

func (m Model) renderScrollback() string {
	spin := m.spinner.View()
	var blocks []string
	for _, e := range m.session.Scrollback() {
		blocks = append(blocks, m.renderer.Entry(e, spin))
	}
	if m.session.Processing() {
		blocks = append(blocks, m.styles.Warning.Render("PROCESSING..."))
	}
	return strings.Join(blocks, "\n")
}

// View renders the scrollback above the input line.
func (m Model) View() string {
	if !m.ready {
		return "initializing..."
	}
	prompt := m.styles.Prompt.Render(m.session.Prompt())
	return m.viewport.View() + "\n" + prompt + m.input.View()
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, s *shell.Session, d *shell.Dispatcher) error {
	p := tea.NewProgram(New(ctx, s, d), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	s.Close()
	return err
}
