package blogapi

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
)

// Fetcher reads published blogs. Implemented by *Client.
type Fetcher interface {
	ListBlogs(ctx context.Context) ([]Blog, error)
	GetBlog(ctx context.Context, id string) (Blog, error)
}

// Generator asks the backend to write a new blog post.
type Generator interface {
	Generate(ctx context.Context, secret string) (GenerateResponse, error)
}

var (
	_ Fetcher   = (*Client)(nil)
	_ Generator = (*Client)(nil)
)

// ErrNotFound is returned by GetBlog when the backend has no such blog.
var ErrNotFound = errors.New("blog not found")

// StatusError reports a non-2xx response.
type StatusError struct {
	Path   string
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Code, e.Detail)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

// Client talks to the blog content service.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultBaseURL is the public backend used when nothing is configured.
	DefaultBaseURL = "https://autoblog-x3m1.onrender.com"

	defaultUserAgent = "knowledgehub/0.1"
	adminKeyHeader   = "X-Admin-Key"
	requestIDHeader  = "X-Request-ID"

	// The backend sleeps when idle; the first request after a quiet period
	// can take several seconds.
	requestTimeout = 15 * time.Second

	// Generation runs a multi-step LLM pipeline server side.
	generateTimeout = 3 * time.Minute
)

type requestIDKey struct{}

// WithRequestID attaches a request id that is sent as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// NewClient builds a Client for the given base URL. A missing scheme defaults
// to https.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalised backend address.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// ListBlogs returns every published blog, newest first as served.
func (c *Client) ListBlogs(ctx context.Context) ([]Blog, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Blog
	if err := c.do(ctx, http.MethodGet, &url.URL{Path: "/blogs"}, nil, "", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetBlog returns a single blog. A 404 maps to ErrNotFound.
func (c *Client) GetBlog(ctx context.Context, id string) (Blog, error) {
	if c == nil {
		return Blog{}, fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Blog{}, fmt.Errorf("blog id required")
	}
	rel := &url.URL{Path: "/blogs/" + id, RawPath: "/blogs/" + url.PathEscape(id)}
	var payload Blog
	err := c.do(ctx, http.MethodGet, rel, nil, "", &payload)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
		return Blog{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Blog{}, err
	}
	return payload, nil
}

// Generate triggers server-side generation of a new blog. The secret is sent
// verbatim in X-Admin-Key; the backend is the only party that enforces it.
func (c *Client) Generate(ctx context.Context, secret string) (GenerateResponse, error) {
	if c == nil {
		return GenerateResponse{}, fmt.Errorf("client is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	var payload GenerateResponse
	body := []byte("{}")
	if err := c.do(ctx, http.MethodPost, &url.URL{Path: "/admin/generate-blog"}, body, secret, &payload); err != nil {
		return GenerateResponse{}, err
	}
	return payload, nil
}

// Health calls the backend root endpoint.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	if c == nil {
		return HealthResponse{}, fmt.Errorf("client is nil")
	}
	var payload HealthResponse
	if err := c.do(ctx, http.MethodGet, &url.URL{Path: "/"}, nil, "", &payload); err != nil {
		return HealthResponse{}, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body []byte, adminKey string, dest any) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, requestTimeout)
		defer cancel()
	}

	reqURL := c.baseURL.ResolveReference(rel)
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
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
	if adminKey != "" {
		req.Header.Set(adminKeyHeader, adminKey)
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set(requestIDHeader, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Path:   rel.Path,
			Code:   resp.StatusCode,
			Detail: readDetail(resp.Body),
		}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return ""
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
