package main

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/csheth/moodscope/internal/tuitest"
)

func TestMoodScopeDemoAnalyzesSample(t *testing.T) {
	if testing.Short() {
		t.Skip("builds and drives the binary in a PTY")
	}
	t.Parallel()

	cmdDir := moduleDir(t)
	binary := buildBinary(t, cmdDir)
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "-demo", "-no-alt-screen", "-config", filepath.Join(t.TempDir(), "none.toml")},
		Dir:     t.TempDir(),
		Env:     []string{"MOODSCOPE_ENDPOINT=", "MOODSCOPE_LOG="},
		Width:   110,
		Height:  44,
		Steps: []tuitest.Step{
			tuitest.Pause(time.Second),
			tuitest.Press(tuitest.KeyCtrlN),
			tuitest.Pause(300 * time.Millisecond),
			tuitest.Press(tuitest.KeyCtrlS),
			tuitest.Pause(1500 * time.Millisecond),
			tuitest.Press(tuitest.KeyCtrlC),
		},
		Timeout:        10 * time.Second,
		AllowInterrupt: true,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}

	for _, want := range []string{"MoodScope", "Loaded sample", "confidence", "Session Log"} {
		if !rec.Contains(want) {
			t.Fatalf("output missing %q\n---- plain ----\n%s", want, rec.PlainText())
		}
	}
}

func TestMoodScopeHelpOverlay(t *testing.T) {
	if testing.Short() {
		t.Skip("builds and drives the binary in a PTY")
	}
	t.Parallel()

	cmdDir := moduleDir(t)
	binary := buildBinary(t, cmdDir)
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "-demo", "-no-alt-screen", "-config", filepath.Join(t.TempDir(), "none.toml")},
		Dir:     t.TempDir(),
		Width:   110,
		Height:  44,
		Steps: []tuitest.Step{
			tuitest.Pause(time.Second),
			tuitest.Press(tuitest.KeyF1),
			tuitest.Pause(500 * time.Millisecond),
			tuitest.Press(tuitest.KeyCtrlC),
		},
		Timeout:        8 * time.Second,
		AllowInterrupt: true,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}
	if !rec.Contains("Key Cheatsheet") {
		t.Fatalf("help overlay not rendered\n%s", rec.PlainText())
	}
	frame, ok := rec.FinalFrame()
	if !ok {
		t.Fatal("no frames captured")
	}
	if strings.TrimSpace(frame.Plain) == "" {
		t.Fatal("final frame is empty")
	}
}

func moduleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	return filepath.Dir(file)
}

func buildBinary(t *testing.T, cmdDir string) string {
	t.Helper()
	tmp := t.TempDir()
	name := "moodscope-integration"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(tmp, name)
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = cmdDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build CLI: %v\n%s", err, output)
	}
	return binPath
}
