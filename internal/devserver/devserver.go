// Package devserver is a local stand-in for the remote sentiment service.
//
// It speaks the same JSON contract as the production endpoint so the TUI can
// run offline (-demo) and end-to-end tests have something to talk to. Labels
// come from VADER polarity scores rather than a language model.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/jonreiter/govader"
	"golang.org/x/time/rate"

	"github.com/csheth/moodscope/internal/analysis"
)

const (
	maxTextChars   = 5000
	maxPromptChars = 500
	maxKeywords    = 5

	positiveAbove = 0.20
	negativeBelow = -0.20
)

const (
	errEmptyText     = "please enter text"
	errTextTooLong   = "text too long"
	errEmptyPrompt   = "please enter a prompt"
	errPromptTooLong = "prompt too long"
	errForbidden     = "invalid content"
	errBadRequest    = "invalid request body"
	errRateLimited   = "too many requests"
	errGenerate      = "could not generate content"
	errUnsafeOutput  = "invalid AI response"
)

var forbiddenKeywords = []string{
	"ignore previous",
	"system prompt",
	"api key",
	"server config",
	"reveal",
	"override",
	"password",
	".env",
	"return system",
	"print config",
}

var sensitiveOutput = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:sk|rk|pk|AIza)[A-Za-z0-9_\-]{16,}\b`),
	regexp.MustCompile(`"(?:api_key|access_token|secret|password)"\s*:\s*"[A-Za-z0-9_\-]{8,}"`),
	regexp.MustCompile(`\b(?:GEMINI_API_KEY|OPENAI_API_KEY|DATABASE_URL|FLASK_ENV|SECRET_KEY)\s*=\s*.+`),
}

// Generator writes text for a generate-and-analyze prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// EchoGenerator returns the prompt itself as the generated text.
var EchoGenerator = GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
	return prompt, nil
})

// Options tunes the stand-in service.
type Options struct {
	// RatePerSecond limits accepted requests; zero or less disables the limit.
	RatePerSecond float64
	Burst         int
	Generator     Generator
}

type server struct {
	mu        sync.Mutex
	analyzer  *govader.SentimentIntensityAnalyzer
	limiter   *rate.Limiter
	generator Generator
}

type result struct {
	Success       bool                   `json:"success"`
	Sentiment     analysis.Sentiment     `json:"sentiment,omitempty"`
	Confidence    float64                `json:"confidence,omitempty"`
	Distribution  *analysis.Distribution `json:"distribution,omitempty"`
	Explanation   string                 `json:"explanation,omitempty"`
	Keywords      []string               `json:"keywords,omitempty"`
	GeneratedText string                 `json:"generated_text,omitempty"`
	Error         string                 `json:"error,omitempty"`
}

func failure(message string) result {
	return result{Success: false, Error: message}
}

// New returns the HTTP handler serving /analyze and /generate_and_analyze.
func New(opts Options) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}
	generator := opts.Generator
	if generator == nil {
		generator = EchoGenerator
	}
	s := &server{
		analyzer:  govader.NewSentimentIntensityAnalyzer(),
		limiter:   rate.NewLimiter(limit, burst),
		generator: generator,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	engine.POST("/analyze", s.handleAnalyze)
	engine.POST("/generate_and_analyze", s.handleGenerate)
	return engine
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		slog.Info("[devserver] request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(started)))
	}
}

func (s *server) handleAnalyze(c *gin.Context) {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusOK, failure(errBadRequest))
		return
	}
	text := strings.TrimSpace(body.Text)
	switch {
	case text == "":
		c.JSON(http.StatusOK, failure(errEmptyText))
		return
	case utf8.RuneCountInString(text) > maxTextChars:
		c.JSON(http.StatusOK, failure(errTextTooLong))
		return
	case containsAnyKeyword(text, forbiddenKeywords):
		c.JSON(http.StatusOK, failure(errForbidden))
		return
	case !s.limiter.Allow():
		c.JSON(http.StatusOK, failure(errRateLimited))
		return
	}
	c.JSON(http.StatusOK, s.classify(text))
}

func (s *server) handleGenerate(c *gin.Context) {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusOK, failure(errBadRequest))
		return
	}
	prompt := strings.TrimSpace(body.Prompt)
	switch {
	case prompt == "":
		c.JSON(http.StatusOK, failure(errEmptyPrompt))
		return
	case utf8.RuneCountInString(prompt) > maxPromptChars:
		c.JSON(http.StatusOK, failure(errPromptTooLong))
		return
	case containsAnyKeyword(prompt, forbiddenKeywords):
		c.JSON(http.StatusOK, failure(errForbidden))
		return
	case !s.limiter.Allow():
		c.JSON(http.StatusOK, failure(errRateLimited))
		return
	}
	generated, err := s.generator.Generate(c.Request.Context(), prompt)
	if err != nil {
		slog.Error("[devserver] generate failed", slog.String("error", err.Error()))
		c.JSON(http.StatusOK, failure(errGenerate))
		return
	}
	generated = strings.TrimSpace(generated)
	switch {
	case generated == "":
		c.JSON(http.StatusOK, failure(errGenerate))
		return
	case matchesAny(generated, sensitiveOutput):
		slog.Warn("[devserver] generated text withheld")
		c.JSON(http.StatusOK, failure(errUnsafeOutput))
		return
	}
	res := s.classify(generated)
	res.GeneratedText = generated
	c.JSON(http.StatusOK, res)
}

func (s *server) classify(text string) result {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores := s.analyzer.PolarityScores(text)
	dist := normalize(scores.Positive, scores.Neutral, scores.Negative)

	label := analysis.Neutral
	confidence := dist.Neutral
	switch {
	case scores.Compound >= positiveAbove:
		label, confidence = analysis.Positive, dist.Positive
	case scores.Compound <= negativeBelow:
		label, confidence = analysis.Negative, dist.Negative
	}

	keywords := s.keywords(text)
	explanation := fmt.Sprintf("Compound polarity **%.2f**; %d sentiment-bearing word(s) found.", scores.Compound, len(keywords))
	return result{
		Success:      true,
		Sentiment:    label,
		Confidence:   confidence,
		Distribution: &dist,
		Explanation:  explanation,
		Keywords:     keywords,
	}
}

func normalize(pos, neu, neg float64) analysis.Distribution {
	total := pos + neu + neg
	if total <= 0 {
		return analysis.Distribution{Neutral: 100}
	}
	factor := 100 / total
	return analysis.Distribution{
		Positive: pos * factor,
		Neutral:  neu * factor,
		Negative: neg * factor,
	}
}

// keywords must be called with s.mu held.
func (s *server) keywords(text string) []string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	seen := map[string]bool{}
	found := []string{}
	for _, word := range words {
		lower := strings.ToLower(word)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		if s.analyzer.PolarityScores(lower).Compound == 0 {
			continue
		}
		found = append(found, lower)
		if len(found) == maxKeywords {
			break
		}
	}
	return found
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

func containsAnyKeyword(text string, keywords []string) bool {
	haystack := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}

// Server is a running stand-in bound to a loopback port.
type Server struct {
	URL string
	srv *http.Server
}

// Start listens on a random loopback port and serves New(opts) in the background.
func Start(opts Options) (*Server, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	srv := &http.Server{
		Handler:           New(opts),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[devserver] serve failed", slog.String("error", err.Error()))
		}
	}()
	url := "http://" + listener.Addr().String()
	slog.Info("[devserver] listening", slog.String("url", url))
	return &Server{URL: url, srv: srv}, nil
}

// Close stops the server, waiting briefly for in-flight requests.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
