package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mekedron/city-discovery/internal/result"
)

const (
	// DefaultBaseURL is the development backend address.
	DefaultBaseURL = "http://192.168.1.46:5001/api"
	// DefaultTimeout bounds every request including body transfer.
	DefaultTimeout = 30 * time.Second
)

// ErrUpstream indicates a City Discovery API failure.
var ErrUpstream = errors.New("[api] error when trying to get response from city discovery api")

// HTTPClient is implemented by http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource yields the bearer token attached to each request. An empty token sends no header.
type TokenSource interface {
	AccessToken() string
}

// Response describes a successful call.
type Response struct {
	StatusCode int
	// Text holds the raw body when the server did not answer with JSON.
	Text string
}

// Client performs JSON requests against the City Discovery backend.
type Client struct {
	httpClient     HTTPClient
	baseURL        string
	timeout        time.Duration
	tokens         TokenSource
	metrics        *Metrics
	verboseOutput  io.Writer
	verboseOutputM sync.RWMutex
}

// Option applies Client options.
type Option func(*Client)

// WithHTTPClient replaces default HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets the API root every path is appended to.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// WithTimeout sets the per-request deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithTokenSource injects the session that supplies bearer tokens.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithMetrics records request counters and latencies.
func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// WithVerboseOutput enables per-request trace output for API calls.
func WithVerboseOutput(out io.Writer) Option {
	return func(c *Client) {
		c.SetVerboseOutput(out)
	}
}

// NewClient creates an API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetVerboseOutput sets destination for verbose HTTP request trace lines.
func (c *Client) SetVerboseOutput(out io.Writer) {
	c.verboseOutputM.Lock()
	c.verboseOutput = out
	c.verboseOutputM.Unlock()
}

// Get issues a GET request and decodes a JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) (Response, error) {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, out any) (Response, error) {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, out any) (Response, error) {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH request with an optional JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any, out any) (Response, error) {
	return c.doJSON(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) (Response, error) {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, out)
}

// PostMultipart uploads one file part under fieldName.
func (c *Client) PostMultipart(ctx context.Context, path, fieldName, fileName string, content io.Reader, out any) (Response, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return Response{}, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return Response{}, fmt.Errorf("build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Response{}, fmt.Errorf("build multipart body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, &buf, writer.FormDataContentType(), out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any) (Response, error) {
	if body == nil {
		return c.do(ctx, method, path, query, nil, "", out)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("marshal request body: %w", err)
	}
	return c.do(ctx, method, path, query, bytes.NewReader(payload), "application/json", out)
}

func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	body io.Reader,
	contentType string,
	out any,
) (Response, error) {
	rawURL := c.baseURL + path
	if len(query) > 0 {
		rawURL = rawURL + "?" + query.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := strings.TrimSpace(c.tokens.AccessToken()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	bodyBytes := 0
	if sized, ok := body.(interface{ Len() int }); ok {
		bodyBytes = sized.Len()
	}
	startedAt := time.Now()
	c.traceRequestStart(method, rawURL, bodyBytes)

	res, err := c.httpClient.Do(req)
	if err != nil {
		upstreamErr := &UpstreamRequestError{
			Method:  method,
			URL:     rawURL,
			Timeout: isTimeout(ctx, err),
			Cause:   err,
		}
		c.finish(method, rawURL, 0, 0, startedAt, upstreamErr)
		return Response{}, upstreamErr
	}
	defer func() {
		_ = res.Body.Close()
	}()

	rawResponse, err := io.ReadAll(res.Body)
	if err != nil {
		upstreamErr := &UpstreamRequestError{
			Method:     method,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Timeout:    isTimeout(ctx, err),
			ErrorKind:  result.NetworkFailure,
			Cause:      fmt.Errorf("read response body: %w", err),
		}
		c.finish(method, rawURL, res.StatusCode, 0, startedAt, upstreamErr)
		return Response{}, upstreamErr
	}

	ok := res.StatusCode >= 200 && res.StatusCode < 300
	if !isJSONContent(res.Header.Get("Content-Type")) {
		if !ok {
			upstreamErr := &UpstreamRequestError{
				Method:     method,
				URL:        rawURL,
				StatusCode: res.StatusCode,
				Body:       string(rawResponse),
				Message:    statusText(res.StatusCode),
				ErrorKind:  result.NetworkFailure,
			}
			c.finish(method, rawURL, res.StatusCode, len(rawResponse), startedAt, upstreamErr)
			return Response{}, upstreamErr
		}
		c.finish(method, rawURL, res.StatusCode, len(rawResponse), startedAt, nil)
		return Response{StatusCode: res.StatusCode, Text: string(rawResponse)}, nil
	}

	if !ok {
		upstreamErr := &UpstreamRequestError{
			Method:     method,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Body:       string(rawResponse),
			Message:    errorMessageFromBody(rawResponse),
		}
		c.finish(method, rawURL, res.StatusCode, len(rawResponse), startedAt, upstreamErr)
		return Response{}, upstreamErr
	}

	if out != nil && len(bytes.TrimSpace(rawResponse)) > 0 {
		if err := json.Unmarshal(rawResponse, out); err != nil {
			upstreamErr := &UpstreamRequestError{
				Method:     method,
				URL:        rawURL,
				StatusCode: res.StatusCode,
				Body:       string(rawResponse),
				ErrorKind:  result.UnknownFailure,
				Message:    "Unexpected response from server.",
				Cause:      fmt.Errorf("decode response body: %w", err),
			}
			c.finish(method, rawURL, res.StatusCode, len(rawResponse), startedAt, upstreamErr)
			return Response{}, upstreamErr
		}
	}

	c.finish(method, rawURL, res.StatusCode, len(rawResponse), startedAt, nil)
	return Response{StatusCode: res.StatusCode}, nil
}

func (c *Client) finish(method, rawURL string, statusCode int, responseBytes int, startedAt time.Time, reqErr error) {
	c.traceRequestDone(method, rawURL, statusCode, responseBytes, startedAt, reqErr)
	c.metrics.observe(method, statusCode, time.Since(startedAt))
}

func (c *Client) traceRequestStart(method, rawURL string, bodyBytes int) {
	if bodyBytes > 0 {
		c.tracef("[http] -> %s %s body_bytes=%d", method, rawURL, bodyBytes)
		return
	}
	c.tracef("[http] -> %s %s", method, rawURL)
}

func (c *Client) traceRequestDone(method, rawURL string, statusCode int, responseBytes int, startedAt time.Time, reqErr error) {
	duration := time.Since(startedAt).Round(time.Millisecond)
	if reqErr != nil {
		c.tracef("[http] <- %s %s status=%d error=%v duration=%s", method, rawURL, statusCode, reqErr, duration)
		return
	}
	c.tracef(
		"[http] <- %s %s status=%d duration=%s bytes=%d",
		method,
		rawURL,
		statusCode,
		duration,
		responseBytes,
	)
}

func (c *Client) tracef(format string, args ...any) {
	c.verboseOutputM.RLock()
	out := c.verboseOutput
	c.verboseOutputM.RUnlock()
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, format+"\n", args...)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isJSONContent(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "application/json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func errorMessageFromBody(raw []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		if value, ok := payload[key].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
