// Package apiclient is the HTTP layer of the people manager client. It issues
// JSON requests against the backend, attaches the bearer credential from the
// session store, and normalizes every response into either a decoded value or
// a typed error.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "peoplectl/internal/errors"
	"peoplectl/session"
)

// Client wraps an http.Client with the conventions every backend call shares:
// JSON bodies, bearer authorization, and detail-or-raw-text error parsing.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   session.Store
	log        zerolog.Logger
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client (primarily for testing).
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout on the underlying http.Client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a Client rooted at baseURL. The session store supplies the
// bearer credential for authenticated calls and is cleared whenever one of
// them comes back 401.
func New(baseURL string, sessions session.Store, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		sessions:   sessions,
		log:        zerolog.Nop(),
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// Do issues method path against the backend. A non-nil body is marshalled to
// JSON. When authenticated is true and the session store holds a token, an
// Authorization: Bearer header is attached.
//
// The response body is always read in full before interpretation: non-2xx
// statuses become an *APIError carrying the server's detail field (or the raw
// body text when the body is not the expected JSON shape); a 2xx body that
// cannot be decoded into out becomes a *DecodeError, never a panic; transport
// failures become a *RequestError. A 401 on an authenticated call clears the
// session store and returns apperrors.ErrSessionExpired, uniformly for every
// operation.
func (c *Client) Do(ctx context.Context, method, path string, body any, out any, authenticated bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrapf(err, "[Client Do] marshalling request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperrors.Wrapf(err, "[Client Do] building request")
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		if token, ok := c.sessions.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token.AccessToken)
		}
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("request_id", requestID).Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return &RequestError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Err: err}
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("request completed")

	if resp.StatusCode == http.StatusUnauthorized && authenticated {
		if err := c.sessions.Clear(); err != nil {
			c.log.Warn().Err(err).Msg("clearing session after 401")
		}
		return apperrors.ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{RawText: string(data), Err: err}
	}
	return nil
}

// APIError is a non-2xx response from the backend. Detail carries the
// server's {"detail": ...} message when the body had that shape; otherwise
// RawText carries the body verbatim.
type APIError struct {
	StatusCode int
	Detail     string
	RawText    string
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != "" {
		apiErr.Detail = envelope.Detail
		return apiErr
	}

	apiErr.RawText = string(body)
	return apiErr
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if text := strings.TrimSpace(e.RawText); text != "" {
		return text
	}
	return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// DecodeError is a 2xx response whose body could not be decoded into the
// caller's target. The raw body is preserved so callers always receive a
// structured value instead of a crash.
type DecodeError struct {
	RawText string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unexpected response body: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RequestError is a transport-level failure: the request never completed.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
