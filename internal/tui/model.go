package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/moodscope/internal/analysis"
	"github.com/csheth/moodscope/internal/samples"
	"github.com/csheth/moodscope/internal/session"
)

// Config wires runtime options into the TUI program. A zero Timeout uses
// analysis.DefaultTimeout.
type Config struct {
	Client      analysis.Client
	Samples     []samples.Sample
	InitialText string
	Timeout     time.Duration
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	composer := textarea.New()
	composer.Placeholder = composerTextPlaceholder
	// The controller rejects oversized text; the composer must hold all of it.
	composer.CharLimit = 0
	composer.MaxHeight = 0
	composer.ShowLineNumbers = false
	composer.SetWidth(76)
	composer.SetHeight(3)
	composer.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 12)
	vp.MouseWheelEnabled = true

	m := &model{
		config:        config,
		layout:        newPageLayout(),
		jobs:          newJobBus(),
		running:       map[string]jobSnapshot{},
		composer:      composer,
		composerMode:  composerModeText,
		spinner:       spin,
		viewport:      vp,
		logViewport:   viewport.New(80, 4),
		confidence:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		chart:         newChartBars(),
		samples:       samples.NewCycler(config.Samples),
		now:           time.Now,
		infoMessage:   "Type some text and press Ctrl+S to analyze it.",
		viewportDirty: true,
		logDirty:      true,
	}
	m.session = session.New(m)
	if config.InitialText != "" {
		m.composer.SetValue(config.InitialText)
		m.syncInput()
	}
	return m
}

type model struct {
	config   Config
	layout   pageLayout
	session  *session.Controller
	snapshot session.Snapshot
	jobs     *jobBus
	running  map[string]jobSnapshot

	composer     textarea.Model
	composerMode composerMode
	lastText     string
	spinner      spinner.Model
	viewport     viewport.Model
	logViewport  viewport.Model
	confidence   progress.Model
	chart        [3]progress.Model

	samples  *samples.Cycler
	resultID string
	revealed int
	log      []logEntry
	now      func() time.Time

	infoMessage   string
	helpVisible   bool
	viewportDirty bool
	logDirty      bool
}

// Render implements session.Renderer. It only records the snapshot; View paints it.
func (m *model) Render(snap session.Snapshot) {
	m.snapshot = snap
	m.viewportDirty = true
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case spinner.TickMsg:
		if m.snapshot.Loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.viewportDirty = true
			return m, cmd
		}
		return m, nil
	case progress.FrameMsg:
		updated, cmd := m.confidence.Update(msg)
		if bar, ok := updated.(progress.Model); ok {
			m.confidence = bar
		}
		m.viewportDirty = true
		return m, cmd
	case jobSignalMsg:
		m.running[msg.Snapshot.ID] = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		delete(m.running, msg.Snapshot.ID)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case analysisResultMsg:
		return m, m.handleAnalysisResult(msg)
	case keywordRevealMsg:
		return m, m.handleKeywordReveal(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		if m.helpVisible {
			m.helpVisible = false
			return m, nil
		}
		return m, tea.Quit
	case tea.KeyF1:
		m.helpVisible = !m.helpVisible
		return m, nil
	case tea.KeyCtrlS:
		return m, m.submit()
	case tea.KeyTab:
		m.toggleComposerMode()
		return m, nil
	case tea.KeyCtrlN:
		m.loadNextSample()
		return m, nil
	case tea.KeyCtrlL:
		m.composer.Reset()
		m.syncInput()
		m.infoMessage = "Composer cleared."
		return m, nil
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(key)
		return m, cmd
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(key)
	m.syncInput()
	return m, cmd
}

// syncInput feeds composer edits to the input tracker.
func (m *model) syncInput() {
	value := m.composer.Value()
	if value == m.lastText {
		return
	}
	m.lastText = value
	m.session.TextChanged(value)
}

func (m *model) submit() tea.Cmd {
	value := m.composer.Value()
	var (
		req session.Request
		ok  bool
	)
	if m.composerMode == composerModePrompt {
		req, ok = m.session.SubmitPrompt(value)
	} else {
		req, ok = m.session.Submit(value)
	}
	if !ok {
		return nil
	}
	m.resultID = ""
	m.revealed = 0
	m.infoMessage = ""
	return tea.Batch(
		m.jobs.Start(req.ID, jobKindFor(req.Kind), analysisJob(m.config.Client, req, m.config.Timeout)),
		m.spinner.Tick,
		m.confidence.SetPercent(0),
	)
}

func (m *model) handleAnalysisResult(msg analysisResultMsg) tea.Cmd {
	pending := m.snapshot.Pending
	if !m.session.Complete(msg.requestID, msg.outcome) {
		return nil
	}
	m.appendLog(pending)
	result := m.snapshot.Result
	if result == nil {
		m.infoMessage = "Press Ctrl+S to try again."
		return nil
	}
	m.resultID = msg.requestID
	m.revealed = 0
	m.infoMessage = ""
	cmds := []tea.Cmd{m.confidence.SetPercent(float64(result.ConfidencePercent) / 100)}
	if cmd := revealKeywordCmd(msg.requestID, result.Keywords, 1); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *model) handleKeywordReveal(msg keywordRevealMsg) tea.Cmd {
	result := m.snapshot.Result
	if msg.requestID != m.resultID || result == nil {
		return nil
	}
	m.revealed = msg.count
	m.viewportDirty = true
	return revealKeywordCmd(msg.requestID, result.Keywords, msg.count+1)
}

func (m *model) appendLog(req *session.Request) {
	entry := logEntry{At: m.now(), Kind: string(jobKindAnalyze)}
	if req != nil {
		entry.Kind = string(jobKindFor(req.Kind))
		entry.Preview = previewText(req.Text, logPreviewLimit)
	}
	if result := m.snapshot.Result; result != nil {
		entry.Label = result.Label
		entry.Percent = result.ConfidencePercent
	} else {
		entry.Err = m.snapshot.Error
	}
	m.log = append(m.log, entry)
	if len(m.log) > maxLogEntries {
		m.log = m.log[len(m.log)-maxLogEntries:]
	}
	m.logDirty = true
}

func (m *model) toggleComposerMode() {
	if m.composerMode == composerModeText {
		m.composerMode = composerModePrompt
		m.composer.Placeholder = composerPromptPlaceholder
		m.infoMessage = fmt.Sprintf("Prompt mode: Ctrl+S writes text from your prompt (max %d characters) and analyzes it.", session.MaxPromptChars)
		return
	}
	m.composerMode = composerModeText
	m.composer.Placeholder = composerTextPlaceholder
	m.infoMessage = "Text mode: Ctrl+S analyzes the composer."
}

func (m *model) loadNextSample() {
	sample := m.samples.Next()
	if m.composerMode != composerModeText {
		m.toggleComposerMode()
	}
	m.composer.SetValue(sample.Text)
	m.syncInput()
	m.infoMessage = fmt.Sprintf("Loaded sample %q. Press Ctrl+S to analyze.", sample.Label)
}

func (m *model) resize(width, height int) {
	m.layout.Update(width, height)
	m.viewport.Width = m.layout.viewportWidth
	m.viewport.Height = m.layout.viewportHeight
	m.logViewport.Width = m.layout.viewportWidth
	m.logViewport.Height = m.layout.logHeight
	m.composer.SetWidth(m.layout.viewportWidth)
	m.composer.SetHeight(m.layout.composerHeight)
	barWidth := m.layout.viewportWidth - 10
	if barWidth > 40 {
		barWidth = 40
	}
	m.confidence.Width = barWidth
	m.viewportDirty = true
	m.logDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if !m.viewportDirty {
		return
	}
	m.viewport.SetContent(m.buildDisplayContent())
	m.viewportDirty = false
}

func (m *model) refreshLogIfDirty() {
	if !m.logDirty {
		return
	}
	m.logViewport.SetContent(m.buildLogContent())
	m.logViewport.GotoTop()
	m.logDirty = false
}
