// Package client is a typed HTTP client for the Grabovoi CRM API. It covers
// the full surface the acceptance suites exercise: authentication and
// account lifecycle, contacts, courses, products, CRM products, orders,
// enrollments, imports, messaging, inbound webhooks, WooCommerce sync,
// dashboard aggregates and admin user management.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to one CRM backend. It is safe for concurrent use once the
// token is set.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTPClient.Timeout = d }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken installs the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current bearer token, if any.
func (c *Client) Token() string { return c.token }

// Response is the raw outcome of one API call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Elapsed    time.Duration
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Map returns the body as a generic JSON object. Non-JSON or non-object
// bodies yield an empty map.
func (r *Response) Map() map[string]any {
	out := map[string]any{}
	if len(r.Body) == 0 {
		return out
	}
	if err := json.Unmarshal(r.Body, &out); err != nil {
		return map[string]any{}
	}
	return out
}

type requestOptions struct {
	query       url.Values
	headers     map[string]string
	noAuth      bool
	rawBody     []byte
	contentType string
}

// RequestOption customizes one request.
type RequestOption func(*requestOptions)

// WithQuery attaches query parameters.
func WithQuery(values url.Values) RequestOption {
	return func(o *requestOptions) { o.query = values }
}

// WithHeader sets an extra header.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = map[string]string{}
		}
		o.headers[key] = value
	}
}

// WithoutAuth suppresses the Authorization header even when a token is set.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) { o.noAuth = true }
}

// WithRawBody sends body bytes verbatim under the given content type,
// bypassing JSON marshaling. Webhook tests need byte-exact bodies so the
// signature matches.
func WithRawBody(contentType string, body []byte) RequestOption {
	return func(o *requestOptions) {
		o.contentType = contentType
		o.rawBody = body
	}
}

// Do executes one request against the API and returns the raw response.
// Transport failures return an error; HTTP error statuses do not, so that
// callers can assert on them.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	ro := &requestOptions{}
	for _, opt := range opts {
		opt(ro)
	}

	var reqBody io.Reader
	contentType := "application/json"
	switch {
	case ro.rawBody != nil:
		reqBody = bytes.NewReader(ro.rawBody)
		if ro.contentType != "" {
			contentType = ro.contentType
		}
	case body != nil:
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBytes)
	}

	fullURL := c.BaseURL + path
	if len(ro.query) > 0 {
		fullURL += "?" + ro.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if reqBody != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" && !ro.noAuth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range ro.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBytes,
		Elapsed:    elapsed,
	}, nil
}

// DoMultipart uploads a single file as multipart/form-data.
func (c *Client) DoMultipart(ctx context.Context, method, path, field, filename string, data []byte) (*Response, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return c.Do(ctx, method, path, nil, WithRawBody(writer.FormDataContentType(), buf.Bytes()))
}

// decodeExpected runs a request and decodes the body into result when the
// status matches want; any other status becomes an error carrying the body.
func (c *Client) decodeExpected(ctx context.Context, method, path string, body, result any, want int, opts ...RequestOption) error {
	resp, err := c.Do(ctx, method, path, body, opts...)
	if err != nil {
		return err
	}
	if resp.StatusCode != want {
		return &APIError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}
	if result != nil {
		return resp.Decode(result)
	}
	return nil
}

// APIError is an unexpected HTTP status returned by the backend.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Body)
}
