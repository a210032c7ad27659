// Package jina is a client for the Jina reader API used as the remote
// summarization backend.
//
// The response schema is not pinned down: the summary is looked up at a
// configurable dotted path inside a JSON object, and JSON string or plain
// text bodies are accepted as the summary itself.
package jina

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultEndpoint = "https://r.jina.ai/"
	DefaultField    = "summary"

	maxResponseBytes = 1 << 20
)

var ErrNoSummary = errors.New("response carries no summary")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("jina: unexpected status %d", e.StatusCode)
}

type Config struct {
	APIKey   string
	Endpoint string
	// Field is a dotted path such as "summary" or "data.content".
	Field   string
	Timeout time.Duration
}

type Client struct {
	apiKey   string
	endpoint string
	field    []string
	http     *http.Client
}

func NewClient(cfg Config) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	field := cfg.Field
	if field == "" {
		field = DefaultField
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		field:    strings.Split(field, "."),
		http:     &http.Client{Timeout: timeout},
	}
}

type summarizeRequest struct {
	URL string `json:"url"`
}

// Summarize asks the remote service for a summary of url. The returned text
// is not trimmed or length-limited.
func (c *Client) Summarize(ctx context.Context, url string) (string, error) {
	payload, err := json.Marshal(summarizeRequest{URL: url})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("jina request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return "", &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return c.extract(body)
}

func (c *Client) extract(body []byte) (string, error) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		if text := string(body); strings.TrimSpace(text) != "" {
			return text, nil
		}
		return "", ErrNoSummary
	}

	switch v := decoded.(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			return v, nil
		}
	case map[string]any:
		if s, ok := lookup(v, c.field); ok && strings.TrimSpace(s) != "" {
			return s, nil
		}
	}
	return "", ErrNoSummary
}

func lookup(obj map[string]any, path []string) (string, bool) {
	var cur any = obj
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		if cur, ok = m[key]; !ok {
			return "", false
		}
	}
	s, ok := cur.(string)
	return s, ok
}
