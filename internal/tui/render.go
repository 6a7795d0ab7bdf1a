package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/NERVsystems/nathterm/internal/shell"
)

// Renderer turns shell content into styled text.
type Renderer struct {
	styles Styles
	md     *glamour.TermRenderer
}

// NewRenderer creates a renderer wrapping markdown at width.
func NewRenderer(styles Styles, width int) *Renderer {
	r := &Renderer{styles: styles}
	r.SetWidth(width)
	return r
}

// SetWidth rebuilds the markdown renderer for a new wrap width.
func (r *Renderer) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		r.md = nil
		return
	}
	r.md = md
}

// Entry renders one scrollback entry.
func (r *Renderer) Entry(e shell.Entry, spin string) string {
	var parts []string
	if e.Prompt != "" || e.Input != "" {
		parts = append(parts, r.styles.Prompt.Render(e.Prompt)+r.styles.Input.Render(e.Input))
	}
	if e.Output != nil {
		if out := r.Content(e.Output, spin); out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n")
}

// Content renders c. spin is shown next to content that is still live.
func (r *Renderer) Content(c shell.Content, spin string) string {
	st := r.styles
	switch v := c.(type) {
	case shell.Text:
		if strings.HasPrefix(string(v), "ERR:") || strings.Contains(string(v), "No such file") {
			return st.Error.Render(string(v))
		}
		return st.Output.Render(string(v))

	case shell.Listing:
		names := make([]string, len(v))
		for i, it := range v {
			if it.Dir {
				names[i] = st.Dir.Render(it.Name + "/")
			} else {
				names[i] = st.File.Render(it.Name)
			}
		}
		return strings.Join(names, "  ")

	case shell.Document:
		if strings.HasSuffix(v.Name, ".md") && r.md != nil {
			if out, err := r.md.Render(v.Body); err == nil {
				return strings.TrimRight(out, "\n")
			}
		}
		return st.Output.Render(strings.Trim(v.Body, "\n"))

	case shell.Panel:
		body := st.Output.Render(strings.Join(v.Lines, "\n"))
		if v.Title != "" {
			body = st.Header.Render(v.Title) + "\n" + body
		}
		return body

	case shell.Table:
		return r.table(v)

	case shell.Group:
		parts := make([]string, 0, len(v))
		for _, c := range v {
			parts = append(parts, r.Content(c, spin))
		}
		return strings.Join(parts, "\n\n")

	case *shell.Stream:
		return r.stream(v, spin)

	case *shell.Scan:
		return r.scan(v, spin)

	case *shell.Pending:
		body, ok := v.Reply()
		if !ok {
			body = spin + " " + v.Placeholder()
		}
		out := st.Panel.Render(st.Output.Render(body))
		if v.Header != "" {
			out = st.Warning.Render(v.Header) + "\n" + out
		}
		return out

	default:
		return st.Output.Render(c.String())
	}
}

func (r *Renderer) table(t shell.Table) string {
	st := r.styles
	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(st.Header.Render(t.Title))
		if t.Badge != "" {
			sb.WriteString("  " + st.Error.Render("["+t.Badge+"]"))
		}
		sb.WriteString("\n")
	}

	widths := t.Widths()
	severity := -1
	for i, c := range t.Columns {
		if c == "SEVERITY" {
			severity = i
		}
	}
	cell := func(i int, s string, style lipgloss.Style) string {
		if i == len(widths)-1 {
			return style.Render(s)
		}
		return style.Render(fmt.Sprintf("%-*s", widths[i], s)) + "  "
	}

	if len(t.Columns) > 0 {
		for i, c := range t.Columns {
			sb.WriteString(cell(i, c, st.Dim))
		}
		sb.WriteString("\n")
	}
	for _, row := range t.Rows {
		for i, c := range row {
			style := st.Output
			if i == severity {
				style = r.severity(c)
			}
			sb.WriteString(cell(i, c, style))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *Renderer) severity(s string) lipgloss.Style {
	switch s {
	case "CRITICAL":
		return r.styles.Critical
	case "HIGH":
		return r.styles.High
	case "MEDIUM":
		return r.styles.Medium
	default:
		return r.styles.Output
	}
}

func (r *Renderer) stream(s *shell.Stream, spin string) string {
	st := r.styles
	var lines []string
	if s.Title != "" {
		lines = append(lines, st.Header.Render(s.Title))
	}
	revealed := s.Lines()
	if len(revealed) == 0 && s.Placeholder != "" {
		lines = append(lines, st.Warning.Render(spin+" "+s.Placeholder))
	}
	for _, l := range revealed {
		lines = append(lines, st.Dim.Render(l))
	}
	if s.Complete() {
		if s.Footer != "" {
			lines = append(lines, st.Output.Render(s.Footer))
		}
		if s.Final != "" {
			lines = append(lines, st.Critical.Render(s.Final))
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) scan(s *shell.Scan, spin string) string {
	st := s.State()
	if st.Done() {
		return r.table(s.Report())
	}
	return strings.Join([]string{
		r.styles.Header.Render("TARGET: " + s.Target),
		r.styles.Warning.Render(fmt.Sprintf("%s %s... %d%%", spin, strings.ReplaceAll(string(st.Stage), "_", " "), st.Progress)),
		r.styles.Output.Render(shell.Bar(st.Progress, 40)),
	}, "\n")
}
