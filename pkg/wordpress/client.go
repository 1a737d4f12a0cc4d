package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const postsPerPage = 100

// DateLayout is the timestamp layout the posts endpoint expects.
const DateLayout = "2006-01-02T15:04:05"

// StatusFuture schedules a post instead of publishing it immediately.
const StatusFuture = "future"

// APIError an API error.
type APIError struct {
	StatusCode int
	Message    string
}

func (a *APIError) Error() string {
	return fmt.Sprintf("%d: %s", a.StatusCode, a.Message)
}

// RenderedText is the rendered form the REST API uses for text fields.
type RenderedText struct {
	Rendered string `json:"rendered"`
}

// Post is a content-store post as returned by the REST API.
type Post struct {
	ID     int          `json:"id,omitempty"`
	Slug   string       `json:"slug,omitempty"`
	Title  RenderedText `json:"title"`
	Date   string       `json:"date,omitempty"`
	Status string       `json:"status,omitempty"`
	Link   string       `json:"link,omitempty"`
}

// NewPost is the request payload for creating a post.
type NewPost struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
	Date    string `json:"date,omitempty"`
	Slug    string `json:"slug,omitempty"`
}

// Client for the content-store REST API.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// New creates a content-store client. Credentials are optional and sent as
// HTTP basic auth (application passwords) when present.
func New(baseURL, username, password string) *Client {
	return &Client{
		baseURL:    baseURL,
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: 15 * time.Second, Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

// RecentPosts lists the posts published within the lookback window,
// paginating until a short page.
func (c *Client) RecentPosts(ctx context.Context, lookback time.Duration) ([]Post, error) {
	after := time.Now().Add(-lookback).Format(DateLayout)

	var all []Post

	for page := 1; ; page++ {
		posts, err := c.listPage(ctx, after, page)
		if err != nil {
			// The API answers 400 (rest_post_invalid_page_number) past the last page.
			apiErr := &APIError{}
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest && page > 1 {
				break
			}

			return nil, err
		}

		all = append(all, posts...)

		if len(posts) < postsPerPage {
			break
		}
	}

	return all, nil
}

func (c *Client) listPage(ctx context.Context, after string, page int) ([]Post, error) {
	endpoint, err := c.endpoint("/wp-json/wp/v2/posts")
	if err != nil {
		return nil, err
	}

	query := endpoint.Query()
	query.Set("per_page", strconv.Itoa(postsPerPage))
	query.Set("page", strconv.Itoa(page))
	query.Set("after", after)
	query.Set("_fields", "id,slug,title,date")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	body, err := c.call(req)
	if err != nil {
		return nil, err
	}

	var posts []Post
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posts: %w", err)
	}

	return posts, nil
}

// CreatePost creates a post, typically with StatusFuture and a schedule date.
func (c *Client) CreatePost(ctx context.Context, p NewPost) (*Post, error) {
	endpoint, err := c.endpoint("/wp-json/wp/v2/posts")
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	body, err := c.call(req)
	if err != nil {
		return nil, err
	}

	var created Post
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created post: %w", err)
	}

	return &created, nil
}

func (c *Client) endpoint(apiPath string) (*url.URL, error) {
	baseURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	return baseURL.Parse(apiPath)
}

func (c *Client) call(req *http.Request) ([]byte, error) {
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call API: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	return body, nil
}
