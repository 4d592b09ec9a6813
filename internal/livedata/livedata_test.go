package livedata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "weather in oslo today" {
			t.Errorf("query: got %q", got)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer k1" {
			t.Errorf("auth header: got %q", auth)
		}
		w.Write([]byte(`{"results": [
			{"title": "Oslo weather", "snippet": "Light rain, 14C", "url": "https://example.com/oslo"},
			{"title": "Forecast", "snippet": "Clearing tonight", "url": "https://example.com/fc"},
			{"title": "Extra 1", "snippet": "", "url": ""},
			{"title": "Extra 2", "snippet": "", "url": ""}
		]}`))
	}))
	defer srv.Close()

	f := NewFetcher(Config{Endpoint: srv.URL, APIKey: "k1", MaxSnippets: 3, Enabled: true})
	got, err := f.Fetch(context.Background(), "weather in oslo today")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d snippets, want the 3-snippet cap", len(got))
	}
	if got[0].Title != "Oslo weather" || got[0].Summary != "Light rain, 14C" {
		t.Errorf("snippet: got %+v", got[0])
	}
}

func TestFetch_Disabled(t *testing.T) {
	f := NewFetcher(Config{Enabled: false, Endpoint: "http://example.invalid"})
	got, err := f.Fetch(context.Background(), "anything")
	if err != nil || got != nil {
		t.Errorf("disabled fetcher: got %v, %v; want nil, nil", got, err)
	}

	// Enabled without an endpoint is still off.
	f = NewFetcher(Config{Enabled: true})
	if f.Enabled() {
		t.Error("fetcher with no endpoint reports enabled")
	}
}

func TestFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewFetcher(Config{Endpoint: srv.URL, Enabled: true})
	if _, err := f.Fetch(context.Background(), "q"); err == nil {
		t.Error("server error surfaced as success")
	}
}

func TestFormatForContext(t *testing.T) {
	if got := FormatForContext(nil); got != "" {
		t.Errorf("nil snippets: got %q, want empty", got)
	}

	out := FormatForContext([]Snippet{
		{Title: "Oslo weather", Summary: "Light rain, 14C", URL: "https://example.com/oslo"},
		{Title: "Forecast", Summary: "", URL: ""},
	})
	if !strings.Contains(out, "Current information") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "1. Oslo weather") || !strings.Contains(out, "2. Forecast") {
		t.Errorf("missing numbered entries: %q", out)
	}
	if !strings.Contains(out, "Source: https://example.com/oslo") {
		t.Errorf("missing source line: %q", out)
	}
	if strings.Count(out, "Source:") != 1 {
		t.Errorf("source line rendered for empty URL: %q", out)
	}
}
