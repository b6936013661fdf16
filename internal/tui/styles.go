package tui

import "github.com/charmbracelet/lipgloss"

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	warningStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	criticalStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	heroAccentColor        = lipgloss.Color("#ff8c00")
	heroEmberColor         = lipgloss.Color("#2b1400")
	heroTextColor          = lipgloss.Color("#fff4d0")
	heroSecondaryTextColor = lipgloss.Color("#ffb347")

	positiveColor = lipgloss.Color("#a3be8c")
	negativeColor = lipgloss.Color("#bf616a")
	neutralColor  = lipgloss.Color("#8ecae6")

	taglineStyle     = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	heroSummaryStyle = lipgloss.NewStyle().PaddingLeft(2)
	resultBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	statusBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	disabledKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e6a86")).Background(lipgloss.Color("#26233a")).Padding(0, 1)
	keyDescStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2)
	chipStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Padding(0, 1).MarginRight(1)
	generatedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4")).Italic(true)

	logoFaceStyle      = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroEmberColor)
	logoShadowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#110600"))
	logoContainerStyle = lipgloss.NewStyle().Padding(0, 1)
	logoArtLines       = []string{
		"╭───────╮",
		"│ ◕   ◕ │",
		"│   ◡   │",
		"╰───────╯",
	}
)

func classColor(class string) lipgloss.Color {
	switch class {
	case "positive":
		return positiveColor
	case "negative":
		return negativeColor
	default:
		return neutralColor
	}
}
