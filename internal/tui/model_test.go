package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NERVsystems/nathterm/internal/shell"
	"github.com/NERVsystems/nathterm/internal/vfs"
)

type stubUplink struct{}

func (stubUplink) ExplainConcept(context.Context, string) (string, error) {
	return "", errors.New("offline")
}
func (stubUplink) AnalyzeProfile(context.Context) (string, error)       { return "report", nil }
func (stubUplink) Chat(context.Context, string, string) (string, error) { return "ack", nil }
func (stubUplink) Forget(string)                                        {}

func newModel(t *testing.T) (Model, *shell.Session) {
	t.Helper()
	tpl, err := vfs.DefaultTemplate()
	require.NoError(t, err)
	s, err := shell.NewSession(tpl.Build(), shell.Options{TimeScale: 0.001}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(s.Close)

	m := New(context.Background(), s, shell.NewDispatcher(shell.DefaultRegistry(stubUplink{})))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), s
}

func typeLine(t *testing.T, m Model, line string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	m = next.(Model)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	next, _ = m.Update(cmd())
	return next.(Model)
}

func TestViewBeforeResize(t *testing.T) {
	tpl, err := vfs.DefaultTemplate()
	require.NoError(t, err)
	s, err := shell.NewSession(tpl.Build(), shell.Options{}, nil)
	require.NoError(t, err)
	defer s.Close()

	m := New(context.Background(), s, shell.NewDispatcher(shell.NewRegistry()))
	assert.Equal(t, "initializing...", m.View())
}

func TestSubmitLine(t *testing.T) {
	m, s := newModel(t)

	m = typeLine(t, m, "pwd")
	assert.False(t, m.busy)

	view := m.View()
	assert.Contains(t, view, "US-CYBERCOM TERMINAL ACCESS [UNCLASSIFIED]")
	assert.Contains(t, view, "[guest@US-CYBERCOM] guest$ pwd")
	assert.Contains(t, view, "/home/guest")
	assert.Len(t, s.Scrollback(), 3)
}

func TestBlankLineIsIgnored(t *testing.T) {
	m, s := newModel(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("   ")})
	next, cmd := next.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, next.(Model).busy)
	assert.Len(t, s.Scrollback(), 2)
}

func TestLiveContentRefreshes(t *testing.T) {
	m, s := newModel(t)
	m = typeLine(t, m, "explain xss")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))

	next, _ := m.Update(refreshMsg{})
	m = next.(Model)
	assert.False(t, m.refreshing)
	assert.Contains(t, m.View(), "Error: Unable to access Knowledge Base.")
}

func TestProcessingIndicatorFollowsSession(t *testing.T) {
	release := make(chan struct{})
	reg := shell.NewRegistry()
	reg.MustRegister(shell.Command{Name: "hold", Kind: shell.KindSync, Sync: func(*shell.Call) shell.Content {
		<-release
		return shell.Text("released")
	}})

	tpl, err := vfs.DefaultTemplate()
	require.NoError(t, err)
	s, err := shell.NewSession(tpl.Build(), shell.Options{}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(s.Close)

	var m tea.Model = New(context.Background(), s, shell.NewDispatcher(reg))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hold")})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- cmd() }()

	require.Eventually(t, s.Processing, 5*time.Second, 5*time.Millisecond)
	m, _ = m.Update(spinner.TickMsg{})
	assert.Contains(t, m.View(), "PROCESSING...")

	close(release)
	m, _ = m.Update(<-msgs)
	assert.False(t, s.Processing())
	view := m.View()
	assert.NotContains(t, view, "PROCESSING...")
	assert.Contains(t, view, "released")
}

func TestQuitClosesSession(t *testing.T) {
	m, s := newModel(t)
	m = typeLine(t, m, "msfconsole")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, s.Settled())
}

func TestRenderContent(t *testing.T) {
	r := NewRenderer(NewStyles(), 80)

	out := r.Content(shell.Listing{{Name: "bin", Dir: true}, {Name: "notes.txt"}}, "*")
	assert.Contains(t, out, "bin/")
	assert.Contains(t, out, "notes.txt")

	scan := shell.NewScan("10.0.0.1", shell.Vulnerabilities)
	out = r.Content(scan, "*")
	assert.Contains(t, out, "TARGET: 10.0.0.1")
	assert.Contains(t, out, "PORT SCAN")

	scan.Run(context.Background(), 0)
	out = r.Content(scan, "*")
	assert.Contains(t, out, "CVE-2024-8821")
	assert.Contains(t, out, "VULNERABILITY REPORT")
	assert.Contains(t, out, "[CRITICAL]")

	out = r.Content(shell.Document{Name: "notes.md", Body: "# Title\n\nbody text"}, "*")
	assert.Contains(t, out, "body text")
}
