// Package livedata fetches current-information snippets for turns whose
// route mandates data access. The fetched block is injected into the
// execution graph as turn context; a fetch failure degrades the turn to
// model knowledge instead of failing it.
package livedata

// #region imports
import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// #endregion

// #region types

// Snippet is one fetched search result.
type Snippet struct {
	Title   string `json:"title"`
	Summary string `json:"snippet"`
	URL     string `json:"url"`
}

// Config configures the snippet fetcher.
type Config struct {
	Endpoint    string // search endpoint returning {"results": [...]}
	APIKey      string
	MaxSnippets int
	Timeout     time.Duration
	Enabled     bool
}

// DefaultConfig returns the standard fetcher limits. The endpoint is
// deployment-specific and stays empty here.
func DefaultConfig() Config {
	return Config{
		MaxSnippets: 3,
		Timeout:     10 * time.Second,
		Enabled:     true,
	}
}

// #endregion

// #region fetcher

// Fetcher retrieves snippets over HTTP.
type Fetcher struct {
	cfg    Config
	client *http.Client
}

// NewFetcher creates a Fetcher. A zero timeout uses the default.
func NewFetcher(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxSnippets <= 0 {
		cfg.MaxSnippets = DefaultConfig().MaxSnippets
	}
	return &Fetcher{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

// Enabled reports whether the fetcher is configured and switched on.
func (f *Fetcher) Enabled() bool {
	return f.cfg.Enabled && f.cfg.Endpoint != ""
}

type searchResponse struct {
	Results []Snippet `json:"results"`
}

// Fetch queries the endpoint for the message and returns at most
// MaxSnippets results. An empty result set is not an error.
func (f *Fetcher) Fetch(ctx context.Context, query string) ([]Snippet, error) {
	if !f.Enabled() {
		return nil, nil
	}

	u := fmt.Sprintf("%s?q=%s&count=%d", f.cfg.Endpoint, url.QueryEscape(query), f.cfg.MaxSnippets)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	if f.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.cfg.APIKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}
	if len(parsed.Results) > f.cfg.MaxSnippets {
		parsed.Results = parsed.Results[:f.cfg.MaxSnippets]
	}
	return parsed.Results, nil
}

// #endregion

// #region format

// FormatForContext renders snippets as a context block for the graph's
// generation prompts. Empty input renders to the empty string.
func FormatForContext(snippets []Snippet) string {
	if len(snippets) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Current information (fetched just now):\n")
	for i, s := range snippets {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Title)
		if s.Summary != "" {
			fmt.Fprintf(&b, "   %s\n", s.Summary)
		}
		if s.URL != "" {
			fmt.Fprintf(&b, "   Source: %s\n", s.URL)
		}
	}
	return b.String()
}

// #endregion
