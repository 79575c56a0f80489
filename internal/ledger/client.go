package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/ledgerdeck/internal/tablestate"
)

// RecordStore defines the generic REST contract every accounting resource
// exposes. It is implemented by *Client and can be used for testing.
type RecordStore interface {
	List(ctx context.Context, resource string, query tablestate.ListQuery) (ListResponse, error)
	Get(ctx context.Context, resource, id string) (tablestate.Map, error)
	Create(ctx context.Context, resource string, record tablestate.Map) (tablestate.Map, error)
	Update(ctx context.Context, resource, id string, record tablestate.Map) (tablestate.Map, error)
	Delete(ctx context.Context, resource, id string) error
}

// Ensure Client implements RecordStore at compile time.
var _ RecordStore = (*Client)(nil)

// Client talks to the accounting backend's HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     string
}

const (
	defaultAPIURL    = "http://127.0.0.1:8080"
	defaultUserAgent = "ledgerdeck/0.1"
	requestTimeout   = 10 * time.Second
)

// Options tune a Client. Zero values use defaults.
type Options struct {
	Token   string
	Timeout time.Duration
}

// NewClient builds a Client for the API rooted at apiURL.
func NewClient(apiURL string, opts Options) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
		token:     strings.TrimSpace(opts.Token),
	}, nil
}

// List fetches one page of resource matching query.
func (c *Client) List(ctx context.Context, resource string, query tablestate.ListQuery) (ListResponse, error) {
	if c == nil {
		return ListResponse{}, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: resourcePath(resource), RawQuery: query.Values().Encode()}
	var payload ListResponse
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return ListResponse{}, err
	}
	return payload, nil
}

// Get fetches a single record.
func (c *Client) Get(ctx context.Context, resource, id string) (tablestate.Map, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("record id required")
	}
	var payload tablestate.Map
	if err := c.do(ctx, http.MethodGet, resourcePath(resource, id), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Create posts a new record and returns the stored version.
func (c *Client) Create(ctx context.Context, resource string, record tablestate.Map) (tablestate.Map, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload tablestate.Map
	if err := c.do(ctx, http.MethodPost, resourcePath(resource), record, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Update replaces a record and returns the stored version.
func (c *Client) Update(ctx context.Context, resource, id string, record tablestate.Map) (tablestate.Map, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("record id required")
	}
	var payload tablestate.Map
	if err := c.do(ctx, http.MethodPut, resourcePath(resource, id), record, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, resource, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("record id required")
	}
	return c.do(ctx, http.MethodDelete, resourcePath(resource, id), nil, nil)
}

func resourcePath(resource string, id ...string) string {
	parts := []string{"/api", url.PathEscape(strings.Trim(resource, "/"))}
	for _, p := range id {
		parts = append(parts, url.PathEscape(p))
	}
	return strings.Join(parts, "/")
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return newAPIError(rel.Path, resp)
	}
	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", apiURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
