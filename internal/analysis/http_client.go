package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

type httpClient struct {
	base   string
	client *http.Client
}

type wireResponse struct {
	Success       bool          `json:"success"`
	Sentiment     Sentiment     `json:"sentiment"`
	Confidence    float64       `json:"confidence"`
	Explanation   string        `json:"explanation"`
	Keywords      []string      `json:"keywords"`
	Distribution  *Distribution `json:"distribution"`
	Probabilities *Distribution `json:"probabilities"`
	GeneratedText string        `json:"generated_text"`
	Error         string        `json:"error"`
}

func (c *httpClient) Name() string {
	return c.base
}

func (c *httpClient) Analyze(ctx context.Context, text string) (Response, error) {
	return c.post(ctx, analyzePath, map[string]string{"text": text})
}

func (c *httpClient) Generate(ctx context.Context, prompt string) (Response, error) {
	return c.post(ctx, generatePath, map[string]string{"prompt": prompt})
}

func (c *httpClient) post(ctx context.Context, path string, payload map[string]string) (Response, error) {
	started := time.Now()
	buf, err := json.Marshal(payload)
	if err != nil {
		return Response{}, transportFailure(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(buf))
	if err != nil {
		return Response{}, transportFailure(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("[analysis] request failed", slog.String("path", path), slog.String("error", err.Error()))
		return Response{}, transportFailure(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, transportFailure(err)
	}

	var parsed *wireResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		slog.Warn("[analysis] undecodable response",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("error", err.Error()))
		return Response{}, transportFailure(fmt.Errorf("decode %s response (%s): %w", path, resp.Status, err))
	}
	if parsed == nil {
		return Response{}, transportFailure(fmt.Errorf("empty %s response (%s)", path, resp.Status))
	}
	if !parsed.Success {
		slog.Info("[analysis] server reported failure", slog.String("path", path), slog.String("error", parsed.Error))
		return Response{}, logicalFailure(parsed.Error)
	}
	if resp.StatusCode >= 400 {
		return Response{}, transportFailure(fmt.Errorf("server error: %s", resp.Status))
	}

	slog.Debug("[analysis] response received",
		slog.String("path", path),
		slog.String("sentiment", string(parsed.Sentiment)),
		slog.Duration("duration", time.Since(started)))
	return parsed.toResponse(), nil
}

func (w wireResponse) toResponse() Response {
	dist := w.Distribution
	if dist == nil {
		dist = w.Probabilities
	}
	return Response{
		Success:       w.Success,
		Sentiment:     w.Sentiment,
		Confidence:    w.Confidence,
		Explanation:   w.Explanation,
		Keywords:      append([]string(nil), w.Keywords...),
		Distribution:  dist,
		GeneratedText: w.GeneratedText,
		Error:         w.Error,
	}
}
