package shell

import (
	"fmt"
	"strings"
)

// Content is the output attached to a scrollback entry. String renders a
// plain-text snapshot; views may type-switch for richer rendering.
type Content interface {
	String() string
}

// Live is content that keeps changing after its handler returned. Done is
// closed once the content stops changing.
type Live interface {
	Content
	Done() <-chan struct{}
}

// Text is a plain line or block of text.
type Text string

func (t Text) String() string { return string(t) }

// Item is one entry of a directory listing.
type Item struct {
	Name string
	Dir  bool
}

// Listing is the output of ls.
type Listing []Item

func (l Listing) String() string {
	names := make([]string, len(l))
	for i, it := range l {
		names[i] = it.Name
		if it.Dir {
			names[i] += "/"
		}
	}
	return strings.Join(names, "  ")
}

// Document is file content shown by cat.
type Document struct {
	Name string
	Body string
}

func (d Document) String() string { return d.Body }

// Panel is a titled block of lines.
type Panel struct {
	Title string
	Lines []string
}

func (p Panel) String() string {
	if p.Title == "" {
		return strings.Join(p.Lines, "\n")
	}
	return strings.Join(append([]string{p.Title}, p.Lines...), "\n")
}

// Table is tabular output with an optional title and badge.
type Table struct {
	Title   string
	Badge   string
	Columns []string
	Rows    [][]string
}

// Widths returns the display width of each column.
func (t Table) Widths() []int {
	n := len(t.Columns)
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	widths := make([]int, n)
	for i, c := range t.Columns {
		widths[i] = len(c)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func (t Table) String() string {
	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(t.Title)
		if t.Badge != "" {
			sb.WriteString("  " + t.Badge)
		}
		sb.WriteString("\n")
	}
	widths := t.Widths()
	writeRow := func(cells []string) {
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == len(widths)-1 {
				sb.WriteString(cell)
			} else {
				sb.WriteString(fmt.Sprintf("%-*s  ", w, cell))
			}
		}
		sb.WriteString("\n")
	}
	if len(t.Columns) > 0 {
		writeRow(t.Columns)
	}
	for _, row := range t.Rows {
		writeRow(row)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Group stacks several contents vertically.
type Group []Content

func (g Group) String() string {
	parts := make([]string, 0, len(g))
	for _, c := range g {
		if s := c.String(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}
