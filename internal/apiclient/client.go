package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/park285/draughts-server/pkg/draughtsdto"
)

// HeaderProvider allows injecting per-request headers
type HeaderProvider func() map[string]string

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status int
	draughtsdto.DomainError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("draughts api error: status=%d code=%s: %s", e.Status, e.Code, e.Message)
}

// Client talks to the /api routes of a draughts server.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	headers HeaderProvider

	defaultTimeout time.Duration
	retryMax       int
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func WithMaxConnsPerHost(n int) Option {
	return func(c *Client) { c.http.MaxConnsPerHost = n }
}

func WithHeaderProvider(h HeaderProvider) Option {
	return func(c *Client) { c.headers = h }
}

func WithRetry(max int) Option {
	return func(c *Client) { c.retryMax = max }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 64},
		defaultTimeout: 10 * time.Second,
		retryMax:       3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, fasthttp.MethodGet, "/health", nil, nil, true)
}

func (c *Client) CreateGame(ctx context.Context, req draughtsdto.CreateGameRequest) (*draughtsdto.SessionState, error) {
	var st draughtsdto.SessionState
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/api/games", req, &st, false); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *Client) State(ctx context.Context, id string) (*draughtsdto.SessionState, error) {
	var st draughtsdto.SessionState
	if err := c.doJSON(ctx, fasthttp.MethodGet, gamePath(id), nil, &st, true); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *Client) At(ctx context.Context, id string, row, col int) (string, error) {
	var resp draughtsdto.CellResponse
	if err := c.doJSON(ctx, fasthttp.MethodGet, gamePath(id)+"/at?"+squareQuery(row, col), nil, &resp, true); err != nil {
		return "", err
	}
	return resp.Cell, nil
}

func (c *Client) LegalMoves(ctx context.Context, id string, row, col int) ([]draughtsdto.Move, error) {
	var resp draughtsdto.MovesResponse
	if err := c.doJSON(ctx, fasthttp.MethodGet, gamePath(id)+"/moves?"+squareQuery(row, col), nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Moves, nil
}

// Apply posts one move. Moves are never retried.
func (c *Client) Apply(ctx context.Context, id string, req draughtsdto.ApplyMoveRequest) (*draughtsdto.MoveSummary, error) {
	var sum draughtsdto.MoveSummary
	if err := c.doJSON(ctx, fasthttp.MethodPost, gamePath(id)+"/moves", req, &sum, false); err != nil {
		return nil, err
	}
	return &sum, nil
}

func (c *Client) ApplyNotation(ctx context.Context, id, text string) (*draughtsdto.MoveSummary, error) {
	return c.Apply(ctx, id, draughtsdto.ApplyMoveRequest{Notation: text})
}

func (c *Client) Close(ctx context.Context, id string) error {
	return c.doJSON(ctx, fasthttp.MethodDelete, gamePath(id), nil, nil, true)
}

func gamePath(id string) string { return "/api/games/" + url.PathEscape(strings.TrimSpace(id)) }

func squareQuery(row, col int) string {
	v := url.Values{}
	v.Set("row", strconv.Itoa(row))
	v.Set("col", strconv.Itoa(col))
	return v.Encode()
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any, retry bool) error {
	var decode func([]byte) error
	if out != nil {
		decode = func(b []byte) error {
			if err := json.Unmarshal(b, out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			return nil
		}
	}
	return c.do(ctx, method, path, in, decode, retry)
}

func (c *Client) do(ctx context.Context, method, path string, in any, decode func([]byte) error, retry bool) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	req.Header.SetContentType("application/json")

	if c.headers != nil {
		for k, v := range c.headers() {
			if strings.TrimSpace(k) != "" && strings.TrimSpace(v) != "" {
				req.Header.Set(k, v)
			}
		}
	}

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		req.SetBody(payload)
	}

	attempts := 1
	if retry {
		attempts = c.retryMax
		if attempts <= 0 {
			attempts = 1
		}
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		deadline := c.computeDeadline(ctx)
		err := c.http.DoDeadline(req, resp, deadline)
		if err != nil {
			if attempt == attempts || !retry {
				return fmt.Errorf("request failed: %w", err)
			}
			lastErr = err
			if sleepErr := c.sleepWithContext(ctx, backoffDuration(attempt)); sleepErr != nil {
				return lastErr
			}
			continue
		}

		status := resp.StatusCode()
		if status < 200 || status >= 300 {
			err := apiError(status, resp.Body())
			if attempt == attempts || !retry || !shouldRetryStatus(status) {
				return err
			}
			lastErr = err
			if sleepErr := c.sleepWithContext(ctx, backoffDuration(attempt)); sleepErr != nil {
				return lastErr
			}
			continue
		}

		if decode != nil {
			return decode(resp.Body())
		}
		return nil
	}

	if lastErr == nil {
		lastErr = errors.New("unknown error")
	}
	return lastErr
}

func apiError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	if err := json.Unmarshal(body, &e.DomainError); err != nil || e.Code == "" {
		e.Code = draughtsdto.CodeInternal
		e.Message = truncate(string(body), 512)
	}
	return e
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	if dl, ok := ctx.Deadline(); ok {
		clientDL := time.Now().Add(c.defaultTimeout)
		if dl.Before(clientDL) {
			return dl
		}
		return clientDL
	}
	return time.Now().Add(c.defaultTimeout)
}

func (c *Client) sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func backoffDuration(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 6 {
		attempt = 6
	}
	base := 100 * time.Millisecond
	return time.Duration(1<<uint(attempt-1)) * base // 100ms, 200ms ...
}

func shouldRetryStatus(code int) bool {
	switch code {
	case 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
