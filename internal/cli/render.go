package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	DangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	BarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// Header renders a section title.
func Header(title string) string {
	return HeaderStyle.Render(title)
}

// Card renders lines inside a bordered box.
func Card(lines ...string) string {
	return CardStyle.Render(strings.Join(lines, "\n"))
}

// Bar renders value as a horizontal bar scaled against maxValue over width cells.
func Bar(value, maxValue, width int) string {
	if maxValue <= 0 || value <= 0 {
		return ""
	}
	n := value * width / maxValue
	if n == 0 {
		n = 1
	}
	return BarStyle.Render(strings.Repeat("█", n))
}

// Row renders a label, a bar and a count.
func Row(label string, value, maxValue int) string {
	bar := lipgloss.NewStyle().Width(21).Render(Bar(value, maxValue, 20))
	return fmt.Sprintf("%-7s %s%d", label, bar, value)
}

// Plural formats n with a singular or plural noun.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
