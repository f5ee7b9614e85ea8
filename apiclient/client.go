// Package apiclient talks to the Aromanza REST backend. Every call carries the
// caller's context, idempotent calls retry transient failures a bounded number
// of times, and a circuit breaker fails fast while the backend is down.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-faster/errors"
	"github.com/sony/gobreaker/v2"

	"github.com/aromanza/gateway/utils"
)

const maxErrorBody = 512

// Config tunes the upstream client
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	MaxRetries      int
	RetryInterval   time.Duration
	BreakerFailures uint32
	BreakerOpenFor  time.Duration
	HTTPClient      *http.Client
}

// Client is the low level upstream client shared by the typed resource clients
type Client struct {
	base          *url.URL
	http          *http.Client
	maxRetries    uint64
	retryInterval time.Duration
	breaker       *gobreaker.CircuitBreaker[*http.Response]
}

// New creates a Client. Zero values in cfg fall back to sensible defaults.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("backend base url is empty")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
	if err != nil {
		return nil, errors.Wrapf(err, "parse backend url %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 200 * time.Millisecond
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerOpenFor <= 0 {
		cfg.BreakerOpenFor = 30 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	failures := cfg.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "aromanza-backend",
		Timeout: cfg.BreakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			utils.LogInfo("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &Client{
		base:          base,
		http:          httpClient,
		maxRetries:    uint64(cfg.MaxRetries),
		retryInterval: cfg.RetryInterval,
		breaker:       breaker,
	}, nil
}

// Request describes one call to the backend
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}
}

// Get decodes the JSON body of a GET into out
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
	return err
}

// Post sends body as JSON and decodes the reply into out
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
	return err
}

// Put sends body as JSON and decodes the reply into out
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
	return err
}

// Delete issues a DELETE and ignores the reply body
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, nil)
	return err
}

// Do performs req and decodes a 2xx JSON reply into out when out is not nil.
// The response header is returned so callers can relay Set-Cookie.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) (http.Header, error) {
	var payload []byte
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		payload = b
	}

	target := c.base.ResolveReference(&url.URL{
		Path:     strings.TrimLeft(req.Path, "/"),
		RawQuery: req.Query.Encode(),
	})

	var (
		header http.Header
		body   []byte
	)
	attempt := 0
	op := func() error {
		attempt++
		resp, err := c.breaker.Execute(func() (*http.Response, error) {
			return c.send(ctx, req.Method, target.String(), payload)
		})
		if err != nil {
			return c.classify(ctx, req.Method, err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return c.classify(ctx, req.Method, errors.Wrap(err, "read response body"))
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return backoff.Permanent(newStatusError(resp.StatusCode, raw))
		}
		header = resp.Header
		body = raw
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	policy.MaxElapsedTime = 0
	var retries uint64
	if idempotent(req.Method) {
		retries = c.maxRetries
	}
	notify := func(err error, wait time.Duration) {
		utils.LogDebug("Retrying %s %s after attempt %d failed: %v (waiting %s)", req.Method, req.Path, attempt, err, wait)
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(policy, retries), ctx), notify); err != nil {
		return nil, err
	}

	if out != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return header, errors.Wrapf(err, "decode %s %s", req.Method, req.Path)
		}
	}
	return header, nil
}

func (c *Client) send(ctx context.Context, method, target string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if id := RequestIDFrom(ctx); id != "" {
		httpReq.Header.Set(utils.RequestIDHeader, id)
	}
	for _, ck := range CookiesFrom(ctx) {
		httpReq.AddCookie(ck)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	// 5xx counts against the breaker; the body is buffered so it can still be
	// reported to the caller.
	if resp.StatusCode >= 500 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(raw))
		return resp, newStatusError(resp.StatusCode, raw)
	}
	return resp, nil
}

// classify decides whether a failed attempt may be retried
func (c *Client) classify(ctx context.Context, method string, err error) error {
	if ctx.Err() != nil {
		return backoff.Permanent(ctx.Err())
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		utils.LogDebug("Backend call rejected: %v", err)
		return backoff.Permanent(ErrBackendUnavailable)
	}
	var serr *StatusError
	if errors.As(err, &serr) {
		if retryableStatus(serr.Status) && idempotent(method) {
			return serr
		}
		return backoff.Permanent(serr)
	}
	if !idempotent(method) {
		return backoff.Permanent(err)
	}
	return err
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
