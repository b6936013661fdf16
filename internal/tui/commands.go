package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/moodscope/internal/analysis"
	"github.com/csheth/moodscope/internal/present"
	"github.com/csheth/moodscope/internal/session"
)

var errNoClient = errors.New("no analysis client configured")

type analysisResultMsg struct {
	requestID string
	outcome   analysis.Outcome
}

func analysisJob(client analysis.Client, req session.Request, timeout time.Duration) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		if client == nil {
			return analysisResultMsg{requestID: req.ID, outcome: analysis.NewOutcome(analysis.Response{}, errNoClient)}, errNoClient
		}
		if timeout <= 0 {
			timeout = analysis.DefaultTimeout
		}
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		var (
			resp analysis.Response
			err  error
		)
		switch req.Kind {
		case session.KindGenerate:
			resp, err = client.Generate(ctx, req.Text)
		default:
			resp, err = client.Analyze(ctx, req.Text)
		}
		return analysisResultMsg{requestID: req.ID, outcome: analysis.NewOutcome(resp, err)}, err
	}
}

func jobKindFor(kind session.RequestKind) jobKind {
	if kind == session.KindGenerate {
		return jobKindGenerate
	}
	return jobKindAnalyze
}

// revealKeywordCmd schedules the next keyword chip after the stagger between
// tag count-1 and tag count.
func revealKeywordCmd(requestID string, tags []present.Tag, count int) tea.Cmd {
	if count <= 0 || count > len(tags) {
		return nil
	}
	delay := tags[count-1].Delay
	if count > 1 {
		delay -= tags[count-2].Delay
	}
	if delay <= 0 {
		return func() tea.Msg {
			return keywordRevealMsg{requestID: requestID, count: count}
		}
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return keywordRevealMsg{requestID: requestID, count: count}
	})
}
