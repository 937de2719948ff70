// Package backend is the typed client for the inventory REST backend.
package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds every backend request when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// ErrRequestFailed matches every *RequestError.
var ErrRequestFailed = errors.New("backend request failed")

// RequestError reports a failed backend call. Status is zero when no response
// was received.
type RequestError struct {
	Resource string
	Status   int
	Message  string
	Err      error
}

func (e *RequestError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Resource, ErrRequestFailed)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrRequestFailed) hold for every RequestError.
func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	return 0
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls the backend. A Client is safe for concurrent use; WithToken
// derives per-session clients sharing the same connection pool.
type Client struct {
	http  *resty.Client
	token string
}

// New builds a backend client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout).
		SetRetryCount(0)

	return &Client{http: restyClient}
}

// WithToken returns a client that sends token as the bearer credential.
func (c *Client) WithToken(token string) *Client {
	return &Client{http: c.http, token: token}
}

// apiError is the error body the backend sends with non-2xx responses.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e *apiError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// do performs one request. result may be nil when the body is not needed.
func (c *Client) do(ctx context.Context, method, resource, path string, query url.Values, body, result any) error {
	apiErr := new(apiError)

	req := c.http.R().
		SetContext(ctx).
		SetError(apiErr)
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return &RequestError{Resource: resource, Err: err}
	}
	if !resp.IsSuccess() {
		return &RequestError{Resource: resource, Status: resp.StatusCode(), Message: apiErr.text()}
	}
	return nil
}

func list[T any](ctx context.Context, c *Client, resource, path string, query url.Values) ([]T, error) {
	var out []T
	if err := c.do(ctx, http.MethodGet, resource, path, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func create[T any](ctx context.Context, c *Client, resource, path string, body any) (*T, error) {
	out := new(T)
	if err := c.do(ctx, http.MethodPost, resource, path, nil, body, out); err != nil {
		return nil, err
	}
	return out, nil
}
