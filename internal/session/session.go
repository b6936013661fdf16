// Package session owns the request lifecycle behind the composer.
//
// A Controller moves between Idle, Loading, Success and Error. It accepts at
// most one request at a time and hands an immutable Snapshot to its Renderer
// after every transition. The network call itself is not made here: Submit
// returns a Request for the caller to run, and Complete applies the Outcome.
package session

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/csheth/moodscope/internal/analysis"
	"github.com/csheth/moodscope/internal/input"
	"github.com/csheth/moodscope/internal/present"
)

const (
	MessageEmptyText   = "please enter text to analyze"
	MessageTextTooLong = "text is too long (max 5000 characters)"
	MessageEmptyPrompt = "please enter a prompt"
	MessagePromptLong  = "prompt is too long (max 500 characters)"
)

// MaxPromptChars caps generate-and-analyze prompts.
const MaxPromptChars = 500

// Phase is the active UI state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// RequestKind selects which endpoint a Request targets.
type RequestKind int

const (
	KindAnalyze RequestKind = iota
	KindGenerate
)

func (k RequestKind) String() string {
	if k == KindGenerate {
		return "generate"
	}
	return "analyze"
}

// Request is the single in-flight submission.
type Request struct {
	ID   string
	Kind RequestKind
	Text string
}

// Snapshot is a copy of the controller state. Result is set only in
// PhaseSuccess and Error only in PhaseError.
type Snapshot struct {
	Phase         Phase
	Result        *present.Model
	Error         string
	Input         input.Stats
	SubmitEnabled bool
	Pending       *Request
}

// Loading reports whether a request is in flight.
func (s Snapshot) Loading() bool { return s.Phase == PhaseLoading }

// Renderer paints snapshots. It never writes back to the controller.
type Renderer interface {
	Render(Snapshot)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Snapshot)

func (f RendererFunc) Render(s Snapshot) { f(s) }

// Controller is the only writer of UI state. It is not safe for concurrent use;
// callers drive it from a single event loop.
type Controller struct {
	renderer Renderer
	newID    func() string

	phase   Phase
	result  *present.Model
	errMsg  string
	stats   input.Stats
	pending *Request
}

// Option customizes a Controller.
type Option func(*Controller)

// WithIDSource replaces the request id generator.
func WithIDSource(next func() string) Option {
	return func(c *Controller) {
		if next != nil {
			c.newID = next
		}
	}
}

// New returns an idle Controller. A nil renderer discards snapshots.
func New(renderer Renderer, opts ...Option) *Controller {
	if renderer == nil {
		renderer = RendererFunc(func(Snapshot) {})
	}
	c := &Controller{
		renderer: renderer,
		newID:    uuid.NewString,
		phase:    PhaseIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.render()
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:         c.phase,
		Error:         c.errMsg,
		Input:         c.stats,
		SubmitEnabled: c.pending == nil,
	}
	if c.result != nil {
		model := *c.result
		model.Keywords = append([]present.Tag(nil), c.result.Keywords...)
		snap.Result = &model
	}
	if c.pending != nil {
		req := *c.pending
		snap.Pending = &req
	}
	return snap
}

// TextChanged runs the input tracker and re-renders. It never changes the phase.
func (c *Controller) TextChanged(text string) input.Stats {
	c.stats = input.Track(text)
	c.render()
	return c.stats
}

// Submit validates text and, when accepted, moves to Loading and returns the
// request to run. While a request is pending Submit is a no-op.
func (c *Controller) Submit(text string) (Request, bool) {
	trimmed := strings.TrimSpace(text)
	switch {
	case c.pending != nil:
		slog.Debug("[session] submit ignored while loading")
		return Request{}, false
	case trimmed == "":
		c.fail(MessageEmptyText)
		return Request{}, false
	case utf8.RuneCountInString(trimmed) > input.MaxChars:
		c.fail(MessageTextTooLong)
		return Request{}, false
	}
	return c.start(KindAnalyze, trimmed), true
}

// SubmitPrompt is Submit for the generate-and-analyze endpoint.
func (c *Controller) SubmitPrompt(prompt string) (Request, bool) {
	trimmed := strings.TrimSpace(prompt)
	switch {
	case c.pending != nil:
		slog.Debug("[session] prompt ignored while loading")
		return Request{}, false
	case trimmed == "":
		c.fail(MessageEmptyPrompt)
		return Request{}, false
	case utf8.RuneCountInString(trimmed) > MaxPromptChars:
		c.fail(MessagePromptLong)
		return Request{}, false
	}
	return c.start(KindGenerate, trimmed), true
}

// Complete applies the outcome of the pending request. Outcomes for any
// other request id are discarded and false is returned.
func (c *Controller) Complete(id string, outcome analysis.Outcome) bool {
	if c.pending == nil || c.pending.ID != id {
		slog.Debug("[session] stale outcome discarded", slog.String("id", id))
		return false
	}
	c.pending = nil
	switch outcome.Kind {
	case analysis.OutcomeSuccess:
		model := present.Build(outcome.Response)
		c.phase = PhaseSuccess
		c.result = &model
		c.errMsg = ""
	default:
		message := outcome.Message
		if message == "" {
			message = analysis.TransportMessage
		}
		c.phase = PhaseError
		c.result = nil
		c.errMsg = message
	}
	slog.Info("[session] request finished",
		slog.String("id", id),
		slog.String("outcome", outcome.Kind.String()),
		slog.String("phase", c.phase.String()))
	c.render()
	return true
}

func (c *Controller) start(kind RequestKind, text string) Request {
	req := Request{ID: c.newID(), Kind: kind, Text: text}
	c.pending = &req
	c.phase = PhaseLoading
	c.result = nil
	c.errMsg = ""
	slog.Info("[session] request started", slog.String("id", req.ID), slog.String("kind", kind.String()))
	c.render()
	return req
}

func (c *Controller) fail(message string) {
	c.phase = PhaseError
	c.result = nil
	c.errMsg = message
	c.render()
}

func (c *Controller) render() {
	c.renderer.Render(c.Snapshot())
}
