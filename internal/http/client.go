// Package http is the transport layer under every API call: request
// assembly, session-token attachment with a single re-logon retry on
// rejection, transient-failure retries, and the mapping from HTTP status
// classes to the client's error taxonomy.
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/hmc-client/internal/auth"
	"github.com/fivetwenty-io/hmc-client/internal/constants"
	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

const maxErrorDetailBytes = 512

// Request represents one API request.
type Request struct {
	Method string
	// Path is resolved against the base URL unless it is already absolute;
	// canonical locations returned by the console are absolute.
	Path    string
	Query   url.Values
	Headers map[string]string
	// ContentType is set alongside Body; requests without a body omit it.
	ContentType string
	Body        []byte
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Client performs HTTP requests against the console.
type Client struct {
	baseURL   string
	session   auth.SessionManager
	retryable *retryablehttp.Client
	logger    hmc.Logger
	debug     bool
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger.
func WithLogger(logger hmc.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables transport-level retries for transient failures
// (5xx, 429, connection errors). Client errors are never retried here.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryable.RetryMax = retryMax
		c.retryable.RetryWaitMin = waitMin
		c.retryable.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the underlying HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.retryable.HTTPClient.Timeout = timeout
	}
}

// WithSkipTLSVerify disables certificate verification.
func WithSkipTLSVerify(skip bool) Option {
	return func(c *Client) {
		if !skip {
			return
		}

		transport, ok := c.retryable.HTTPClient.Transport.(*nethttp.Transport)
		if !ok {
			transport = nethttp.DefaultTransport.(*nethttp.Transport).Clone()
		}

		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}

		transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec // consoles commonly run self-signed certificates
		c.retryable.HTTPClient.Transport = transport
	}
}

// NewClient creates a new HTTP client for the given console endpoint. The
// session manager may be nil for unauthenticated use in tests.
func NewClient(baseURL string, session auth.SessionManager, opts ...Option) *Client {
	retryable := retryablehttp.NewClient()
	retryable.RetryMax = 0
	retryable.RetryWaitMin = constants.DefaultRetryWaitMin
	retryable.RetryWaitMax = constants.DefaultRetryWaitMax
	retryable.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryable.Logger = nil

	client := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		session:   session,
		retryable: retryable,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// StdClient exposes the underlying net/http client, sharing transport
// settings with collaborators that must bypass the session-retry path (the
// logon exchange itself).
func (c *Client) StdClient() *nethttp.Client {
	return c.retryable.HTTPClient
}

// Do performs the request. On the first authentication rejection of a call
// made with a real token, the session is refreshed and the request replayed
// exactly once; a second rejection is surfaced as *hmc.AuthenticationError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	resp, token, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == nethttp.StatusUnauthorized && c.session != nil && token != "" {
		err = c.session.Refresh(ctx)
		if err != nil {
			return nil, fmt.Errorf("refreshing session: %w", err)
		}

		resp, _, err = c.send(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	return resp, c.responseError(req, resp)
}

// send performs one HTTP exchange and returns the token that was attached,
// so Do can tell a rejected real token from a request that never carried
// one.
func (c *Client) send(ctx context.Context, req *Request) (*Response, string, error) {
	target, err := c.resolveURL(req)
	if err != nil {
		return nil, "", err
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", constants.ContentTypeAtom+"; charset=UTF-8")
	httpReq.Header.Set(constants.TransactionHeader, uuid.NewString())

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	var token string

	if c.session != nil {
		token, err = c.session.Token(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("acquiring session token: %w", err)
		}

		httpReq.Header.Set(constants.SessionHeader, token)
	}

	c.logRequest(req, target)

	httpResp, err := c.retryable.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("%s %s: %w", req.Method, target, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       data,
	}

	c.logResponse(req, resp)

	return resp, token, nil
}

// responseError maps a non-2xx response to the error taxonomy: 412 is a
// version conflict the mutator may retry, 401 at this point has already
// survived the single re-logon, everything else is a plain API error.
func (c *Client) responseError(req *Request, resp *Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case nethttp.StatusPreconditionFailed:
		return &hmc.ConflictError{Location: req.Path, Attempts: 1}
	case nethttp.StatusUnauthorized:
		return &hmc.AuthenticationError{Endpoint: c.baseURL}
	default:
		return &hmc.APIError{
			StatusCode: resp.StatusCode,
			Reason:     nethttp.StatusText(resp.StatusCode),
			Detail:     errorDetail(resp.Body),
		}
	}
}

func (c *Client) resolveURL(req *Request) (string, error) {
	target := req.Path
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		if !strings.HasPrefix(target, "/") {
			target = "/" + target
		}

		target = c.baseURL + target
	}

	if len(req.Query) > 0 {
		parsed, err := url.Parse(target)
		if err != nil {
			return "", fmt.Errorf("parsing request URL: %w", err)
		}

		parsed.RawQuery = req.Query.Encode()
		target = parsed.String()
	}

	return target, nil
}

func errorDetail(body []byte) string {
	detail := strings.TrimSpace(string(body))
	if len(detail) > maxErrorDetailBytes {
		detail = detail[:maxErrorDetailBytes]
	}

	return detail
}

func (c *Client) logRequest(req *Request, target string) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"url":    target,
		"bytes":  len(req.Body),
	})
}

func (c *Client) logResponse(req *Request, resp *Response) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Response", map[string]interface{}{
		"method": req.Method,
		"path":   req.Path,
		"status": resp.StatusCode,
		"bytes":  len(resp.Body),
	})
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path, contentType string, body []byte, headers map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:      nethttp.MethodPut,
		Path:        path,
		ContentType: contentType,
		Body:        body,
		Headers:     headers,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path})
}
