package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/moodscope/internal/present"
	"github.com/csheth/moodscope/internal/session"
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
	logHeight      int
	composerHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		viewportWidth:  80,
		viewportHeight: 12,
		logHeight:      4,
		composerHeight: 3,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	l.composerHeight = 5
	if height < 30 {
		l.composerHeight = 3
	}
	const chrome = 10
	usable := height - chrome - l.composerHeight
	if usable < 12 {
		usable = 12
	}
	l.logHeight = usable / 4
	if l.logHeight < 3 {
		l.logHeight = 3
	}
	l.viewportHeight = usable - l.logHeight
	if l.viewportHeight < 6 {
		l.viewportHeight = 6
	}
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}

func (cb *contentBuilder) section(title string) {
	if cb.Line() > 0 {
		cb.WriteRune('\n')
	}
	cb.WriteString(sectionHeaderStyle.Render(title))
	cb.WriteRune('\n')
}

func (m *model) buildDisplayContent() string {
	cb := &contentBuilder{}
	snap := m.snapshot
	switch {
	case snap.Phase == session.PhaseSuccess && snap.Result != nil:
		m.writeResult(cb, *snap.Result)
	case snap.Loading():
		cb.section("Analyzing")
		cb.WriteString(helperStyle.Render(fmt.Sprintf("%s Waiting for the classifier…", m.spinner.View())))
		cb.WriteRune('\n')
	default:
		cb.section("Paste text in the Composer")
		cb.WriteString(helperStyle.Render("Ctrl+S analyzes the composer. Tab switches to prompt mode, where a short prompt is turned into text first."))
		cb.WriteRune('\n')
		cb.WriteString(helperStyle.Render("Ctrl+N loads a sample, Ctrl+L clears, F1 shows every key."))
		cb.WriteRune('\n')
	}
	return cb.String()
}

func (m *model) writeResult(cb *contentBuilder, res present.Model) {
	wrap := m.wrapWidth(4)
	accent := lipgloss.NewStyle().Bold(true).Foreground(classColor(res.Class))

	headline := accent.Render(fmt.Sprintf("%s  %s", res.Emoji, res.Label))
	detail := helperStyle.Render(fmt.Sprintf("%s · %d%% confidence, %s", res.DetailedLabel, res.ConfidencePercent, res.StrengthLabel))
	card := strings.Join([]string{headline, detail, m.confidence.View()}, "\n")
	cb.WriteString(resultBoxStyle.BorderForeground(classColor(res.Class)).Render(card))
	cb.WriteRune('\n')

	if res.GeneratedText != "" {
		cb.section("Generated Text")
		cb.WriteString(indentMultiline(generatedStyle.Render(wordwrap.String(res.GeneratedText, wrap)), "  "))
		cb.WriteRune('\n')
	}

	cb.section("Explanation")
	if strings.TrimSpace(res.Explanation) == "" {
		cb.WriteString(helperStyle.Render("  No explanation provided."))
	} else {
		cb.WriteString(indentMultiline(wordwrap.String(res.Explanation, wrap), "  "))
	}
	cb.WriteRune('\n')

	cb.section("Keywords")
	cb.WriteString("  ")
	cb.WriteString(m.keywordChips(res))
	cb.WriteRune('\n')

	cb.section("Distribution")
	cb.WriteString(m.chartView(res.ChartSeries))
}

func (m *model) keywordChips(res present.Model) string {
	if len(res.Keywords) == 0 {
		return helperStyle.Render("No keywords returned.")
	}
	visible := m.revealed
	if visible > len(res.Keywords) {
		visible = len(res.Keywords)
	}
	style := chipStyle.Background(classColor(res.Class))
	chips := make([]string, 0, visible)
	for _, tag := range res.Keywords[:visible] {
		chips = append(chips, style.Render(tag.Text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

var chartLabels = [3]string{"Positive", "Neutral", "Negative"}

func newChartBars() [3]progress.Model {
	colors := [3]string{string(positiveColor), string(neutralColor), string(negativeColor)}
	var bars [3]progress.Model
	for i, color := range colors {
		bars[i] = progress.New(
			progress.WithSolidFill(color),
			progress.WithoutPercentage(),
			progress.WithWidth(chartBarWidth),
		)
	}
	return bars
}

func (m *model) chartView(series [3]float64) string {
	rows := make([]string, 0, len(series))
	for i, value := range series {
		fraction := value / 100
		if fraction > 1 {
			fraction = 1
		}
		label := fmt.Sprintf("  %-8s ", chartLabels[i])
		rows = append(rows, label+m.chart[i].ViewAs(fraction)+fmt.Sprintf(" %5.1f%%", value))
	}
	return strings.Join(rows, "\n")
}

func (m *model) buildLogContent() string {
	if len(m.log) == 0 {
		return helperStyle.Render("Finished requests will appear here.")
	}
	lines := make([]string, 0, len(m.log))
	for i := len(m.log) - 1; i >= 0; i-- {
		entry := m.log[i]
		status := errorStyle.Render(entry.Err)
		if entry.Err == "" {
			status = fmt.Sprintf("%s %d%%", entry.Label, entry.Percent)
		}
		line := fmt.Sprintf("%s  %-8s  %s", entry.At.Format("15:04:05"), entry.Kind, status)
		if entry.Preview != "" {
			line += "  " + helperStyle.Render("“"+entry.Preview+"”")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func (m *model) wrapWidth(padding int) int {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}

// previewText collapses whitespace and truncates to limit terminal cells.
func previewText(value string, limit int) string {
	value = strings.Join(strings.Fields(value), " ")
	if limit <= 0 {
		return value
	}
	return runewidth.Truncate(value, limit, "…")
}
