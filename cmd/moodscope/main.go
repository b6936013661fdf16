package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/moodscope/internal/analysis"
	"github.com/csheth/moodscope/internal/config"
	"github.com/csheth/moodscope/internal/devserver"
	"github.com/csheth/moodscope/internal/logging"
	"github.com/csheth/moodscope/internal/source"
	"github.com/csheth/moodscope/internal/tui"
)

type options struct {
	configPath  string
	endpoint    string
	logFile     string
	inputFile   string
	demo        bool
	ollama      bool
	ollamaModel string
	noAltScreen bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "moodscope.toml", "path to the TOML config file")
	flag.StringVar(&opts.endpoint, "endpoint", "", "classifier base URL (eg. http://localhost:5000)")
	timeout := flag.Duration("timeout", 0, "per-request timeout (eg. 15s)")
	flag.StringVar(&opts.logFile, "log", "", "append structured logs to this file")
	flag.StringVar(&opts.inputFile, "file", "", "pre-fill the composer from a .txt, .md or .pdf file")
	flag.BoolVar(&opts.demo, "demo", false, "serve a built-in classifier on a loopback port and use it")
	flag.BoolVar(&opts.ollama, "ollama", false, "with -demo, write generate-and-analyze text with Ollama (OLLAMA_HOST)")
	flag.StringVar(&opts.ollamaModel, "ollama-model", "", "override the default Ollama model (ministral-3:latest)")
	flag.BoolVar(&opts.noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	flag.Parse()

	if err := run(opts, *timeout); err != nil {
		fmt.Println("moodscope:", err)
		os.Exit(1)
	}
}

func run(opts options, timeout time.Duration) error {
	config.LoadEnv(".env")
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.endpoint != "" {
		cfg.Endpoint = opts.endpoint
	}
	if timeout > 0 {
		cfg.Timeout = config.Duration{Duration: timeout}
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if opts.noAltScreen {
		cfg.AltScreen = false
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	closer, err := logging.Init(cfg.LogFile, level)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closer.Close()

	if opts.demo {
		demoOpts := devserver.Options{RatePerSecond: 5, Burst: 10}
		if opts.ollama {
			generator := devserver.NewOllamaGenerator("", opts.ollamaModel, nil)
			slog.Info("[main] demo generator", slog.String("generator", generator.Name()))
			demoOpts.Generator = generator
		}
		srv, err := devserver.Start(demoOpts)
		if err != nil {
			return fmt.Errorf("start demo classifier: %w", err)
		}
		defer srv.Close()
		cfg.Endpoint = srv.URL
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var initial string
	if opts.inputFile != "" {
		initial, err = source.Load(opts.inputFile)
		if err != nil {
			return err
		}
	}

	client, err := analysis.New(analysis.Config{Endpoint: cfg.Endpoint, Timeout: cfg.Timeout.Duration})
	if err != nil {
		return err
	}
	slog.Info("[main] starting",
		slog.String("endpoint", client.Name()),
		slog.Duration("timeout", cfg.Timeout.Duration),
		slog.Bool("demo", opts.demo))

	programOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Client:      client,
			Samples:     cfg.Samples,
			InitialText: initial,
			Timeout:     cfg.Timeout.Duration,
		}),
		programOpts...,
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
