package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultUserAgent     = "RetailAnalyst/1.0"
	defaultBackoffBase   = 1 * time.Second
	maxResponseSizeBytes = 4 << 20
)

type Config struct {
	BaseURL    string  `envconfig:"BACKEND_API_URL" default:"http://localhost:8000"`
	Timeout    Seconds `envconfig:"REQUEST_TIMEOUT" default:"30"`
	MaxRetries int     `envconfig:"MAX_RETRIES" default:"3"`
}

// Seconds is a duration that decodes from a bare number of seconds, so
// REQUEST_TIMEOUT=30 means 30 seconds. Go duration strings ("45s", "2m")
// are accepted too.
type Seconds time.Duration

func (s *Seconds) Decode(value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		*s = Seconds(time.Duration(n) * time.Second)
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", value, err)
	}
	*s = Seconds(d)
	return nil
}

// Option customizes Client.
type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBackoffBase overrides the base delay of the linear retry backoff.
func WithBackoffBase(base time.Duration) Option {
	return func(c *Client) {
		if base > 0 {
			c.backoffBase = base
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(ua)
		if trimmed != "" {
			c.userAgent = trimmed
		}
	}
}

// Client talks to the retail-analytics backend. Transient failures are
// retried with linear backoff before a terminal *FetchError is surfaced.
// The zero number of retries is rejected at construction; every call makes
// at least one attempt.
type Client struct {
	baseURL     string
	timeout     time.Duration
	maxRetries  int
	backoffBase time.Duration
	userAgent   string

	// The transport is built lazily on first use so a wired-but-unused
	// client never opens a connection pool.
	httpClient *http.Client
	initOnce   sync.Once

	now   func() time.Time
	sleep func(time.Duration)
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base url is required", ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.MaxRetries < 1 {
		return nil, fmt.Errorf("%w: max retries must be >= 1, got %d", ErrInvalidConfig, cfg.MaxRetries)
	}

	timeout := time.Duration(cfg.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &Client{
		baseURL:     baseURL,
		timeout:     timeout,
		maxRetries:  cfg.MaxRetries,
		backoffBase: defaultBackoffBase,
		userAgent:   defaultUserAgent,
		now:         time.Now,
		sleep:       time.Sleep,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

func MustNew(cfg Config, opts ...Option) *Client {
	client, err := NewClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// session returns the shared transport, building it on first use.
func (c *Client) session() *http.Client {
	c.initOnce.Do(func() {
		if c.httpClient == nil {
			c.httpClient = &http.Client{
				Timeout: c.timeout,
			}
		}
	})
	return c.httpClient
}

// fetchJSON performs the request up to maxRetries times. A 4xx/5xx status,
// an undecodable body, and any transport error all count as retryable
// failures; the delay before attempt k+1 is backoffBase*k.
func (c *Client) fetchJSON(ctx context.Context, endpoint string, params map[string]string, method string) (json.RawMessage, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, ErrEmptyEndpoint
	}
	if method == "" {
		method = http.MethodGet
	}

	var lastKind FailureKind
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		payload, kind, err := c.attempt(ctx, endpoint, params, method)
		if err == nil {
			return payload, nil
		}

		lastKind = kind
		lastErr = err

		if attempt == c.maxRetries {
			break
		}

		log.Warn().
			Str("endpoint", endpoint).
			Int("attempt", attempt).
			Str("kind", string(kind)).
			Err(err).
			Msg("backend request failed, retrying")
		c.sleep(c.backoffBase * time.Duration(attempt))
	}

	return nil, &FetchError{
		Kind:     lastKind,
		Endpoint: endpoint,
		Attempts: c.maxRetries,
		Err:      lastErr,
	}
}

// fetchOnce is the single-attempt path used by the concurrent batch fetch.
func (c *Client) fetchOnce(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, ErrEmptyEndpoint
	}
	payload, kind, err := c.attempt(ctx, endpoint, params, http.MethodGet)
	if err != nil {
		return nil, &FetchError{
			Kind:     kind,
			Endpoint: endpoint,
			Attempts: 1,
			Err:      err,
		}
	}
	return payload, nil
}

func (c *Client) attempt(ctx context.Context, endpoint string, params map[string]string, method string) (json.RawMessage, FailureKind, error) {
	req, err := c.buildRequest(ctx, endpoint, params, method)
	if err != nil {
		return nil, KindTransport, err
	}

	resp, err := c.session().Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, KindTimeout, err
		}
		return nil, KindTransport, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, KindTransport, fmt.Errorf("read response body: %w", err)
	}

	// Error statuses go through the same retry policy as connection
	// failures, never returned as "success with an error body".
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, KindTransport, fmt.Errorf("http status=%d body=%s", resp.StatusCode, truncate(raw, 256))
	}

	var payload json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, KindDecode, fmt.Errorf("decode response: %w", err)
	}
	return payload, "", nil
}

func (c *Client) buildRequest(ctx context.Context, endpoint string, params map[string]string, method string) (*http.Request, error) {
	target := c.baseURL + endpoint

	var body io.Reader
	if method == http.MethodPost && len(params) > 0 {
		encoded, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	if method == http.MethodGet && len(params) > 0 {
		query := req.URL.Query()
		for k, v := range params {
			query.Set(k, v)
		}
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func truncate(raw []byte, limit int) string {
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}
