package tuitest

import (
	"strings"
	"testing"
)

func TestParseFramesSplitsOnClear(t *testing.T) {
	raw := []byte("\x1b[2J\x1b[Hfirst frame  \r\n\x1b[2J\x1b[H\x1b[1mMood\x1b[0m: Positive\r\n\r\n")
	frames := parseFrames(raw)
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d: %#v", len(frames), frames)
	}
	if frames[0].Plain != "first frame" {
		t.Fatalf("first frame not normalized: %q", frames[0].Plain)
	}
	if frames[1].Plain != "Mood: Positive" {
		t.Fatalf("second frame not stripped: %q", frames[1].Plain)
	}
	if frames[1].Index != 1 {
		t.Fatalf("frame index mismatch: %d", frames[1].Index)
	}
}

func TestParseFramesWithoutSeparators(t *testing.T) {
	frames := parseFrames([]byte("plain output\n"))
	if len(frames) != 1 || frames[0].Plain != "plain output" {
		t.Fatalf("unexpected frames: %#v", frames)
	}
}

func TestStripANSIRemovesOSC(t *testing.T) {
	got := stripANSI("\x1b]0;title\x07hello\x1b[31m red\x1b[0m")
	if got != "hello red" {
		t.Fatalf("unexpected strip result: %q", got)
	}
}

func TestRecordingContains(t *testing.T) {
	rec := &Recording{Raw: []byte("\x1b[2J\x1b[H😊 Positive\r\n\x1b[2K typed")}
	rec.Frames = parseFrames(rec.Raw)
	if !rec.Contains("Positive") {
		t.Fatal("expected frame text to be found")
	}
	if !strings.Contains(rec.PlainText(), "typed") {
		t.Fatalf("plain text missing content: %q", rec.PlainText())
	}
	var empty *Recording
	if empty.Contains("x") || empty.PlainText() != "" {
		t.Fatal("nil recording should be empty")
	}
	if _, ok := empty.FinalFrame(); ok {
		t.Fatal("nil recording has no frames")
	}
}

type recordingWriter struct {
	writes []string
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, string(p))
	return len(p), nil
}

func TestTerminalResponderAnswersQueries(t *testing.T) {
	w := &recordingWriter{}
	responder := newTerminalResponder(w)
	responder.Process([]byte("junk\x1b[6"))
	responder.Process([]byte("n more \x1b]11;?\x07"))
	if len(w.writes) != 2 {
		t.Fatalf("expected 2 responses, got %d: %q", len(w.writes), w.writes)
	}
	if w.writes[0] != "\x1b[1;1R" {
		t.Fatalf("cursor report mismatch: %q", w.writes[0])
	}
	if !strings.HasPrefix(w.writes[1], "\x1b]11;rgb:") {
		t.Fatalf("background report mismatch: %q", w.writes[1])
	}
}
