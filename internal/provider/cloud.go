package provider

// #region imports
import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// #endregion

// #region config

// CloudConfig configures a chat-completions cloud backend.
type CloudConfig struct {
	Name       string
	APIKey     string
	BaseURL    string // e.g. https://openrouter.ai/api/v1
	Model      string
	Timeout    time.Duration
	MaxRetries int
	RatePerSec float64 // client-side request budget, 0 = unlimited
}

// #endregion

// #region cloud-client

// CloudClient implements Provider against an OpenAI-style
// chat-completions endpoint.
type CloudClient struct {
	cfg     CloudConfig
	client  *http.Client
	limiter *rate.Limiter
}

// NewCloudClient creates a cloud provider client.
func NewCloudClient(cfg CloudConfig) *CloudClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	var limiter *rate.Limiter
	if cfg.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1)
	}
	return &CloudClient{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
	}
}

// Name returns the provider name.
func (c *CloudClient) Name() string {
	return c.cfg.Name
}

// #endregion

// #region wire-types

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	MaxTok   int           `json:"max_tokens,omitempty"`
	Temp     *float64      `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// #endregion

// #region generate

// Generate posts a chat-completions request with bounded retries and
// exponential backoff. Transport failures surface as StatusProviderError
// after the last retry; a well-formed reply with no content is
// StatusEmpty so the caller's fallback branch stays explicit.
func (c *CloudClient) Generate(ctx context.Context, req Request) Result {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Result{Status: StatusProviderError, Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	var msgs []chatMessage
	if req.System != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: req.System})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: req.Prompt})

	body := chatRequest{Model: c.cfg.Model, Messages: msgs, MaxTok: req.MaxTokens}
	if req.Temperature >= 0 {
		t := req.Temperature
		body.Temp = &t
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Result{Status: StatusProviderError, Err: fmt.Errorf("marshal request: %w", err)}
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Result{Status: StatusProviderError, Err: ctx.Err()}
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
		if err != nil {
			return Result{Status: StatusProviderError, Err: fmt.Errorf("build request: %w", err)}
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

		resp, err := c.client.Do(httpReq)
		if err != nil {
			lastErr = fmt.Errorf("request: %w", err)
			continue
		}
		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
			continue
		}

		var parsed chatResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			lastErr = fmt.Errorf("parse response: %w", err)
			continue
		}
		if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
			return Result{Status: StatusEmpty}
		}
		return Result{Status: StatusSuccess, Text: parsed.Choices[0].Message.Content}
	}

	return Result{Status: StatusProviderError, Err: lastErr}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// #endregion
