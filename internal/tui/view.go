package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/moodscope/internal/input"
	"github.com/csheth/moodscope/internal/session"
)

func (m *model) View() string {
	m.refreshViewportIfDirty()
	return joinNonEmpty([]string{m.renderStackedDisplay(), m.composerPanel(), m.footerView()})
}

func (m *model) renderStackedDisplay() string {
	parts := []string{m.heroView(), m.viewport.View()}
	if m.snapshot.Phase == session.PhaseError && m.snapshot.Error != "" {
		parts = append(parts, errorStyle.Render("⚠ "+m.snapshot.Error))
	}
	if message := m.statusMessage(); message != "" {
		parts = append(parts, helperStyle.Render(message))
	}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView())
	}
	return joinNonEmpty(parts)
}

func (m *model) statusMessage() string {
	if m.snapshot.Loading() {
		verb := "Analyzing…"
		if pending := m.snapshot.Pending; pending != nil && pending.Kind == session.KindGenerate {
			verb = "Generating and analyzing…"
		}
		return fmt.Sprintf("%s %s", m.spinner.View(), verb)
	}
	return m.infoMessage
}

func (m *model) heroView() string {
	tagline := lipgloss.JoinVertical(
		lipgloss.Left,
		sectionHeaderStyle.Render("MoodScope"),
		taglineStyle.Render(heroTagline),
	)
	return lipgloss.JoinHorizontal(lipgloss.Center, renderLogo(), heroSummaryStyle.Render(tagline))
}

func (m *model) composerPanel() string {
	header := sectionHeaderStyle.Render(fmt.Sprintf("Composer · %s", m.composerMode))
	return joinNonEmpty([]string{
		header,
		m.composer.View(),
		m.composerStatusLine(),
	})
}

func (m *model) composerStatusLine() string {
	stats := m.snapshot.Input
	counter := fmt.Sprintf("%d / %d", stats.Count, input.MaxChars)
	switch stats.Tier {
	case input.TierCritical:
		counter = criticalStyle.Render(counter)
	case input.TierWarning:
		counter = warningStyle.Render(counter)
	default:
		counter = helperStyle.Render(counter)
	}

	action := "analyze"
	if m.composerMode == composerModePrompt {
		action = "generate"
	}
	submit := keyStyle.Render("Ctrl+S") + keyDescStyle.Render(" "+action)
	if !m.snapshot.SubmitEnabled {
		submit = disabledKeyStyle.Render("Ctrl+S") + helperStyle.Render(" waiting…")
	}
	hints := helperStyle.Render("Tab: mode • Ctrl+N: sample • Ctrl+L: clear • F1: help")
	return strings.Join([]string{counter, submit, hints}, "   ")
}

func (m *model) footerView() string {
	m.refreshLogIfDirty()
	return joinNonEmpty([]string{
		m.sessionMeterView(),
		joinNonEmpty([]string{
			sectionHeaderStyle.Render("Session Log"),
			strings.TrimRight(m.logViewport.View(), "\n "),
		}),
	})
}

func (m *model) sessionMeterView() string {
	stats := []string{
		fmt.Sprintf("Mode %s", m.composerMode),
		fmt.Sprintf("State %s", m.snapshot.Phase),
		fmt.Sprintf("Requests %d", len(m.log)),
	}
	if m.config.Client != nil {
		stats = append(stats, "Endpoint "+m.config.Client.Name())
	}
	stats = append(stats, m.jobStatusBadges()...)
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) jobStatusBadges() []string {
	badges := make([]string, 0, len(m.running))
	for _, job := range m.running {
		badges = append(badges, fmt.Sprintf("%s %s", job.Kind, job.Status))
	}
	return badges
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"Ctrl+S", "Submit"},
		{"Tab", "Text / prompt mode"},
		{"Ctrl+N", "Next sample"},
		{"Ctrl+L", "Clear composer"},
		{"PgUp/PgDn", "Scroll result"},
		{"F1", "Toggle help"},
		{"Esc", "Close help or quit"},
		{"Ctrl+C", "Quit"},
	}
	rows := []string{sectionHeaderStyle.Render("Key Cheatsheet")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := keyStyle.Render(hint.Key)
			desc := keyDescStyle.Render(" " + hint.Description + "  ")
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func renderLogo() string {
	if len(logoArtLines) == 0 {
		return ""
	}
	width := 0
	lineRunes := make([][]rune, len(logoArtLines))
	for i, line := range logoArtLines {
		runes := []rune(line)
		lineRunes[i] = runes
		if len(runes) > width {
			width = len(runes)
		}
	}
	width++
	height := len(logoArtLines) + 1

	type cell struct {
		r     rune
		style lipgloss.Style
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' && y+1 < height && x+1 < width {
				grid[y+1][x+1] = cell{r: r, style: logoShadowStyle}
			}
		}
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' {
				grid[y][x] = cell{r: r, style: logoFaceStyle}
			}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[y] = b.String()
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}
