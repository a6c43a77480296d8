package context

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type Styles struct {
	Title        lipgloss.Style
	ActiveTab    lipgloss.Style
	InactiveTab  lipgloss.Style
	Selected     lipgloss.Style
	Faint        lipgloss.Style
	Error        lipgloss.Style
	ErrorPanel   lipgloss.Style
	Prompt       lipgloss.Style
	StatusBar    lipgloss.Style
	TableHeader  lipgloss.Style
	TableCursor  lipgloss.Style
	TreeBranch   lipgloss.Style
	SuccessColor lipgloss.AdaptiveColor
	ErrorColor   lipgloss.AdaptiveColor
}

// InitStyles builds the styles for the terminal's color profile.
func InitStyles(profile termenv.Profile) Styles {
	lipgloss.SetColorProfile(profile)

	primary := lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	faint := lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"}
	errColor := lipgloss.AdaptiveColor{Light: "#D30000", Dark: "#FF5F5F"}
	okColor := lipgloss.AdaptiveColor{Light: "#02A15A", Dark: "#02BF87"}

	s := Styles{}
	s.Title = lipgloss.NewStyle().Bold(true).Foreground(primary)
	s.ActiveTab = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(primary)
	s.InactiveTab = lipgloss.NewStyle().Padding(0, 1).Foreground(faint)
	s.Selected = lipgloss.NewStyle().Foreground(okColor)
	s.Faint = lipgloss.NewStyle().Foreground(faint)
	s.Error = lipgloss.NewStyle().Foreground(errColor)
	s.ErrorPanel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(errColor).
		Padding(1, 2)
	s.Prompt = lipgloss.NewStyle().Bold(true).Foreground(errColor)
	s.StatusBar = lipgloss.NewStyle().Foreground(faint)
	s.TableHeader = lipgloss.NewStyle().
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(faint)
	s.TableCursor = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(primary)
	s.TreeBranch = lipgloss.NewStyle().Foreground(faint)
	s.SuccessColor = okColor
	s.ErrorColor = errColor

	return s
}
