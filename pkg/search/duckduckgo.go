package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultBaseURL = "https://api.duckduckgo.com/"

// Reference is one corroborating web reference for an article.
type Reference struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// Searcher finds web references for a query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Reference, error)
}

// DuckDuckGo queries the DuckDuckGo Instant Answer API.
type DuckDuckGo struct {
	baseURL    string
	httpClient *http.Client
}

// NewDuckDuckGo creates a DuckDuckGo searcher.
func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second, Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

type relatedTopic struct {
	Text     string         `json:"Text"`
	FirstURL string         `json:"FirstURL"`
	Topics   []relatedTopic `json:"Topics"`
}

type instantAnswer struct {
	Heading       string         `json:"Heading"`
	AbstractText  string         `json:"AbstractText"`
	AbstractURL   string         `json:"AbstractURL"`
	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

// Search returns up to limit references for the query.
func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]Reference, error) {
	endpoint, err := url.Parse(d.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call API: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("search failed with status %d", resp.StatusCode)
	}

	var answer instantAnswer
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answer: %w", err)
	}

	var refs []Reference

	if answer.AbstractURL != "" {
		refs = append(refs, Reference{Title: answer.Heading, URL: answer.AbstractURL, Snippet: answer.AbstractText})
	}

	refs = append(refs, flatten(answer.RelatedTopics)...)

	if limit > 0 && len(refs) > limit {
		refs = refs[:limit]
	}

	return refs, nil
}

func flatten(topics []relatedTopic) []Reference {
	var refs []Reference

	for _, topic := range topics {
		if topic.FirstURL != "" {
			refs = append(refs, Reference{Title: topic.Text, URL: topic.FirstURL})
		}

		refs = append(refs, flatten(topic.Topics)...)
	}

	return refs
}
