package tui

import "github.com/charmbracelet/lipgloss"

// Styles for the terminal view.
type Styles struct {
	Prompt   lipgloss.Style
	Input    lipgloss.Style
	Output   lipgloss.Style
	Error    lipgloss.Style
	Dir      lipgloss.Style
	File     lipgloss.Style
	Header   lipgloss.Style
	Warning  lipgloss.Style
	Dim      lipgloss.Style
	Panel    lipgloss.Style
	Critical lipgloss.Style
	High     lipgloss.Style
	Medium   lipgloss.Style
}

// NewStyles returns the green-on-black terminal palette.
func NewStyles() Styles {
	return Styles{
		Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		Input:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		Output:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Dir:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		File:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Panel:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("22")).Padding(0, 1),
		Critical: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		High:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		Medium:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}
