package timeline

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	danger    = lipgloss.AdaptiveColor{Light: "#E0465A", Dark: "#F25D6F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666", Dark: "#AAA"})

	tickStyle = lipgloss.NewStyle().
			Foreground(subtle)

	cellStyle = lipgloss.NewStyle().
			Background(highlight).
			Foreground(lipgloss.AdaptiveColor{Light: "#FFF", Dark: "#FFF"})

	cellFocusStyle = cellStyle.
			Background(special).
			Foreground(lipgloss.AdaptiveColor{Light: "#111", Dark: "#111"}).
			Bold(true)

	// Style for the trailing resize region of a cell
	handleStyle = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#5A36C9", Dark: "#5B3FC0"})

	playheadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#F2A900", Dark: "#FFC233"})

	menuButtonStyle = lipgloss.NewStyle().
			Background(highlight).
			Foreground(lipgloss.AdaptiveColor{Light: "#FFF", Dark: "#FFF"}).
			Margin(0, 1, 0, 0).
			Padding(0, 1)

	menuDeleteStyle = menuButtonStyle.
			Background(danger).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Background(subtle).
			Foreground(lipgloss.AdaptiveColor{Light: "#666", Dark: "#AAA"}).
			Height(1)

	debugStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999", Dark: "#666"})
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}
