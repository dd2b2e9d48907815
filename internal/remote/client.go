// Package remote is the HTTP client of the records API. Every call returns a
// Result classifying the outcome and updates the connectivity tracker.
package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/sighc/sighc/internal/connectivity"
)

const (
	// DefaultTimeout is short enough that falling back is not perceived as a hang.
	DefaultTimeout = 2 * time.Second

	defaultRejectionMessage = "Error en el servidor"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// WithLogger sets the logger used for call outcomes.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
		c.http.SetLogger(restyLogger{l})
	}
}

// WithTransport replaces the HTTP transport, mainly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.SetTransport(rt) }
}

// Client calls the records API. It is safe for concurrent use.
type Client struct {
	http    *resty.Client
	tracker *connectivity.Tracker
	logger  zerolog.Logger

	mu    sync.RWMutex
	token string
}

// NewClient creates a client for the API rooted at baseURL (for example
// "http://localhost:5000/api"). Calls never retry.
func NewClient(baseURL string, tracker *connectivity.Tracker, opts ...Option) *Client {
	hc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(DefaultTimeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	c := &Client{
		http:    hc,
		tracker: tracker,
		logger:  zerolog.Nop(),
	}
	hc.SetLogger(restyLogger{c.logger})
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetToken sets the bearer token sent with every call. An empty token
// removes the header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Tracker returns the connectivity tracker this client writes to.
func (c *Client) Tracker() *connectivity.Tracker {
	return c.tracker
}

// Get is Call with GET and no body.
func (c *Client) Get(ctx context.Context, path string) Result {
	return c.Call(ctx, http.MethodGet, path, nil)
}

// Post is Call with POST.
func (c *Client) Post(ctx context.Context, path string, body interface{}) Result {
	return c.Call(ctx, http.MethodPost, path, body)
}

// Call performs one request. A nil body sends no payload.
func (c *Client) Call(ctx context.Context, method, path string, body interface{}) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if tok := c.currentToken(); tok != "" {
		req.SetAuthToken(tok)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	latency := time.Since(start)

	if err != nil {
		c.tracker.Set(false)
		c.logger.Warn().Err(err).
			Str("method", method).
			Str("path", path).
			Dur("latency", latency).
			Msg("records api unreachable")
		return Result{Kind: KindNetworkUnavailable, Err: err}
	}

	c.tracker.Set(true)
	status := resp.StatusCode()
	raw := resp.Body()

	if status >= 200 && status < 300 {
		c.logger.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Msg("records api call")
		return Result{Kind: KindOK, Status: status, Body: raw}
	}

	msg := rejectionMessage(raw)
	c.logger.Warn().
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Str("message", msg).
		Dur("latency", latency).
		Msg("records api rejected request")
	return Result{Kind: KindRejected, Status: status, Body: raw, Message: msg}
}

// rejectionMessage extracts the message field of an error payload. Plain-text
// bodies are used as they are.
func rejectionMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return defaultRejectionMessage
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return defaultRejectionMessage
}

// restyLogger routes resty's internal messages to zerolog.
type restyLogger struct {
	l zerolog.Logger
}

func (r restyLogger) Errorf(format string, v ...interface{}) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...interface{})  { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...interface{}) { r.l.Debug().Msgf(format, v...) }
