// Package alma is a minimal client for the Ex Libris Alma REST API,
// covering the configuration sets and acquisitions PO line endpoints
// that porenew needs. Authentication is a static API key sent as an
// "apikey" Authorization header on every request.
package alma

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"porenew/internal/logging"
)

const (
	basePath = "/almaws/v1"

	// PathSets and PathPOLines are the two endpoint roots this tool touches.
	// Both are probed by CanAccess before a bulk run starts.
	PathSets    = "/conf/sets"
	PathPOLines = "/acq/po-lines"
)

// Config holds the settings needed to construct a Client.
type Config struct {
	// Domain is the Alma API gateway host, e.g. api-ca.hosted.exlibrisgroup.com.
	Domain string

	// APIKey is the Alma API key. Required.
	APIKey string

	// BaseURL overrides the https://<Domain> base entirely when set.
	// Used by tests to point the client at a local server.
	BaseURL string

	// Timeout applies to each HTTP request.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for the given domain and key.
func DefaultConfig(domain, apiKey string) Config {
	return Config{
		Domain:  domain,
		APIKey:  apiKey,
		Timeout: 90 * time.Second,
	}
}

// Client talks to the Alma REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Alma client.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://" + cfg.Domain
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(base, "/") + basePath,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError is a non-2xx response from Alma, carrying the status code and
// an excerpt of the response body for per-record reporting.
type APIError struct {
	Status int
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("alma: %s returned status %d: %s", e.Path, e.Status, body)
}

// newRequest builds a request against the Alma base path with auth and
// content negotiation headers applied.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body []byte) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "apikey "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do executes the request and reads the full body.
func (c *Client) do(req *http.Request) (int, []byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.APIError("%s %s failed: %v", req.Method, req.URL.Path, err)
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}

	logging.APIDebug("%s %s -> %d (%d bytes, %v)",
		req.Method, req.URL.Path, resp.StatusCode, len(body), time.Since(start))
	return resp.StatusCode, body, nil
}

// getJSON performs a GET and requires a 200 response.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &APIError{Status: status, Path: path, Body: string(body)}
	}
	return body, nil
}

// CanAccess probes an endpoint with a single-record GET and reports
// whether the API key can reach it. Used as a preflight before a bulk
// run so a bad key or unauthorized role fails up front.
func (c *Client) CanAccess(ctx context.Context, path string) bool {
	query := url.Values{"limit": {"1"}}
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return false
	}
	status, _, err := c.do(req)
	if err != nil {
		return false
	}
	if status != http.StatusOK {
		logging.APIWarn("preflight %s returned status %d", path, status)
		return false
	}
	return true
}
