package wporg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultBaseURL is the public plugin registry API endpoint.
const DefaultBaseURL = "https://api.wordpress.org/plugins/info/1.0/"

const (
	actionQueryPlugins      = "query_plugins"
	actionPluginInformation = "plugin_information"
)

const (
	maxAttempts = 4
	backoffBase = 300 * time.Millisecond
)

// ErrExhausted is returned when every retry attempt failed.
var ErrExhausted = errors.New("retries exhausted")

// APIError an API error.
type APIError struct {
	StatusCode int
	Message    string
}

func (a *APIError) Error() string {
	return fmt.Sprintf("%d: %s", a.StatusCode, a.Message)
}

var summaryFields = []string{"active_installs", "rating", "tested", "last_updated", "short_description"}

var detailFields = []string{
	"active_installs", "rating", "num_ratings", "ratings", "tested", "requires",
	"last_updated", "short_description", "sections", "tags",
	"support_threads", "support_threads_resolved", "homepage", "download_link",
}

// Client for the plugin registry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sleep      func(ctx context.Context, d time.Duration) error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a registry client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second, Transport: otelhttp.NewTransport(http.DefaultTransport)},
		sleep:      sleepContext,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SearchRequest is a page of a query_plugins call.
// Search and Browse are mutually exclusive: free-text search or a browse dimension.
type SearchRequest struct {
	Search  string
	Browse  string
	Page    int
	PerPage int
}

// QueryPlugins fetches one page of plugin summary records.
func (c *Client) QueryPlugins(ctx context.Context, req SearchRequest) ([]Plugin, error) {
	params := url.Values{}
	params.Set("action", actionQueryPlugins)

	if req.Search != "" {
		params.Set("request[search]", req.Search)
	}

	if req.Browse != "" {
		params.Set("request[browse]", req.Browse)
	}

	params.Set("request[page]", strconv.Itoa(req.Page))
	params.Set("request[per_page]", strconv.Itoa(req.PerPage))

	for _, field := range summaryFields {
		params.Set("request[fields]["+field+"]", "1")
	}

	body, err := c.Fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	doc, err := decodeBody(body)
	if err != nil {
		return nil, err
	}

	payload, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected response shape for %s", actionQueryPlugins)
	}

	rawPlugins, _ := payload["plugins"].([]interface{})

	plugins := make([]Plugin, 0, len(rawPlugins))

	for _, raw := range rawPlugins {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		p, err := pluginFromMap(entry)
		if err != nil {
			return nil, err
		}

		plugins = append(plugins, p)
	}

	return plugins, nil
}

// PluginInformation fetches the detail record for one plugin.
func (c *Client) PluginInformation(ctx context.Context, slug string) (*Plugin, error) {
	params := url.Values{}
	params.Set("action", actionPluginInformation)
	params.Set("request[slug]", slug)

	for _, field := range detailFields {
		params.Set("request[fields]["+field+"]", "1")
	}

	body, err := c.Fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	doc, err := decodeBody(body)
	if err != nil {
		return nil, err
	}

	payload, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected response shape for %s", actionPluginInformation)
	}

	p, err := pluginFromMap(payload)
	if err != nil {
		return nil, err
	}

	// The detail payload does not always carry the slug it was asked for.
	p.Slug = slug

	return &p, nil
}

// Fetch performs a GET against the registry, retrying transient failures
// (429, 5xx, transport errors) with exponential backoff.
func (c *Client) Fetch(ctx context.Context, params url.Values) ([]byte, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	endpoint.RawQuery = params.Encode()

	var lastErr error

	delay := backoffBase

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}

			delay *= 2
		}

		body, retry, err := c.do(ctx, endpoint.String())
		if err == nil {
			return body, nil
		}

		if !retry {
			return nil, err
		}

		lastErr = err
	}

	return nil, fmt.Errorf("%w after %d attempts: %s", ErrExhausted, maxAttempts, lastErr)
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("failed to call API: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode/100 == 2 {
		return body, false, nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(body)}

	retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode/100 == 5

	return nil, retry, apiErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
