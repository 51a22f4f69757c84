package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/karankrtech-08/Nova-Task-Pro/internal/task"
)

const (
	boxChecked   = "[x]"
	boxUnchecked = "[ ]"
)

// Theme bundles the lipgloss styles for one palette. Light and dark
// variants differ only in the base foreground choices.
type Theme struct {
	Name string

	Title    lipgloss.Style
	Header   lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Overdue  lipgloss.Style
	Badge    lipgloss.Style
	Panel    lipgloss.Style

	priorities map[task.Priority]lipgloss.Style
}

func newTheme(name string) Theme {
	base := lipgloss.NewStyle()
	if name == "dark" {
		base = base.Foreground(lipgloss.Color("252"))
	}
	return Theme{
		Name:     name,
		Title:    base.Bold(true),
		Header:   base.Bold(true).Foreground(lipgloss.Color("12")),
		Selected: base.Bold(true).Reverse(true),
		Done:     base.Faint(true).Strikethrough(true),
		Muted:    base.Faint(true),
		Help:     base.Faint(true),
		Error:    base.Foreground(lipgloss.Color("9")).Bold(true),
		Success:  base.Foreground(lipgloss.Color("42")),
		Overdue:  base.Foreground(lipgloss.Color("9")),
		Badge:    base.Foreground(lipgloss.Color("214")),
		Panel: base.Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
		priorities: map[task.Priority]lipgloss.Style{
			task.PriorityUrgent: base.Foreground(lipgloss.Color("9")).Bold(true),
			task.PriorityHigh:   base.Foreground(lipgloss.Color("208")),
			task.PriorityMedium: base.Foreground(lipgloss.Color("11")),
			task.PriorityLow:    base.Foreground(lipgloss.Color("42")),
		},
	}
}

func (t Theme) Priority(p task.Priority) lipgloss.Style {
	if s, ok := t.priorities[p]; ok {
		return s
	}
	return t.Muted
}
