package tui

import "time"

type composerMode int

const (
	composerModeText composerMode = iota
	composerModePrompt
)

func (c composerMode) String() string {
	if c == composerModePrompt {
		return "PROMPT"
	}
	return "TEXT"
}

const (
	composerTextPlaceholder   = "Type or paste text to analyze…"
	composerPromptPlaceholder = "Describe what to write; the result is analyzed too…"
)

const heroTagline = "Read the mood of any text with MoodScope."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	logPreviewLimit           = 60
	maxLogEntries             = 50
	chartBarWidth             = 24
)

// logEntry is one finished request in the in-session log. Entries are never persisted.
type logEntry struct {
	At      time.Time
	Kind    string
	Label   string
	Percent int
	Err     string
	Preview string
}

type keywordRevealMsg struct {
	requestID string
	count     int
}
