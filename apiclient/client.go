package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

var routeParamRegexp = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

// Envelope is the wrapper shape every remote API response uses. Data is
// extracted on success; Message carries the failure description.
type Envelope struct {
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	ErrorCode  string          `json:"error_code,omitempty"`
	StatusCode int             `json:"statusCode,omitempty"`
}

// Error is the normalized failure result of a dispatch. StatusCode is zero
// when no HTTP response was received (transport failure).
type Error struct {
	Message    string
	StatusCode int
	ErrorCode  string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// Options carries the per-call inputs of a dispatch.
type Options struct {
	RouteParams map[string]string
	QueryParams url.Values
	Body        any
	Headers     map[string]string
}

// Client dispatches registered operations against the remote API. It is
// stateless and safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a Client. baseURL is the remote API origin plus base path,
// e.g. "http://localhost:3001/api".
func New(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        log,
	}
}

// WithHTTPClient overrides the underlying transport, mainly for tests.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// Dispatch resolves name against the registry, performs the HTTP call and
// returns the envelope data on 2xx. Every failure, transport included,
// comes back as an *Error.
func (c *Client) Dispatch(ctx context.Context, name OperationName, opts Options) (json.RawMessage, error) {
	op := MustResolve(name)

	path, err := expandRouteParams(op.URLTemplate, opts.RouteParams)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}

	fullURL := c.baseURL + path
	if len(opts.QueryParams) > 0 {
		fullURL += "?" + opts.QueryParams.Encode()
	}

	var body io.Reader
	if carriesBody(op.Method) && opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("failed to encode request body: %v", err)}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, op.Method, fullURL, body)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to build request: %v", err)}
	}

	// Defaults first, caller headers win.
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Str("operation", string(name)).Err(err).Msg("dispatch transport failure")
		return nil, &Error{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	return c.classify(name, resp)
}

// classify maps the HTTP response onto success data or an *Error.
func (c *Client) classify(name OperationName, resp *http.Response) (json.RawMessage, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to read response: %v", err), StatusCode: resp.StatusCode}
	}

	var env Envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return nil, &Error{Message: fmt.Sprintf("failed to decode response: %v", err), StatusCode: resp.StatusCode}
			}
			// Non-JSON error body; fall through to the status text.
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return env.Data, nil
	}

	message := env.Message
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	if message == "" {
		message = "request failed"
	}

	c.log.Debug().
		Str("operation", string(name)).
		Int("status", resp.StatusCode).
		Str("message", message).
		Msg("dispatch failed")

	return nil, &Error{Message: message, StatusCode: resp.StatusCode, ErrorCode: env.ErrorCode}
}

// expandRouteParams substitutes each ":key" placeholder in template. A
// placeholder without a matching param, or an empty param value, is an
// error. Repeated separators are collapsed and a trailing separator is
// stripped after substitution.
func expandRouteParams(template string, params map[string]string) (string, error) {
	if len(params) == 0 {
		if m := routeParamRegexp.FindString(template); m != "" {
			return "", fmt.Errorf("missing route parameter %q", strings.TrimPrefix(m, ":"))
		}
		return template, nil
	}

	path := template
	for key, value := range params {
		if value == "" {
			return "", fmt.Errorf("route parameter %q must not be empty", key)
		}
		path = strings.ReplaceAll(path, ":"+key, url.PathEscape(value))
	}

	if m := routeParamRegexp.FindString(path); m != "" {
		return "", fmt.Errorf("missing route parameter %q", strings.TrimPrefix(m, ":"))
	}

	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return path, nil
}

func carriesBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// Call dispatches name and decodes the envelope data into T. An empty
// data payload leaves T at its zero value.
func Call[T any](ctx context.Context, c *Client, name OperationName, opts Options) (T, error) {
	var out T

	data, err := c.Dispatch(ctx, name, opts)
	if err != nil {
		return out, err
	}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &Error{Message: fmt.Sprintf("unexpected response shape: %v", err)}
	}
	return out, nil
}

// BearerHeader builds the Authorization header map for an authenticated
// call.
func BearerHeader(accessToken string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + accessToken}
}
