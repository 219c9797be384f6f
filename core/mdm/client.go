package mdm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNotFound is returned when the remote source answers 404. Callers that
// have a fallback page (e.g. selection packs vs secret packs) branch on it.
var ErrNotFound = fmt.Errorf("remote source: not found")

// Client defines the interface for fetching remote documents and payloads.
// It is the only place where network time bounds are applied; everything
// above it consumes parsed documents and decoded payloads.
type Client interface {
	// GetDocument fetches a URL and parses the response body as HTML.
	GetDocument(ctx context.Context, url string) (*goquery.Document, error)
	// GetJSON fetches a URL and decodes the JSON response into v.
	GetJSON(ctx context.Context, url string, v any) error
	// GetBytes fetches a URL and returns the raw response body.
	GetBytes(ctx context.Context, url string) ([]byte, error)
	// BaseURL returns the configured site root, for resolving relative links.
	BaseURL() string
}

type httpClient struct {
	base      string
	userAgent string
	client    *http.Client
}

// NewClient creates a new HTTP-backed client based on the configuration.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Create custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration, // Connection setup timeout
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		base:      cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}
}

func (h *httpClient) BaseURL() string {
	return h.base
}

func (h *httpClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request to %s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	return body, nil
}

func (h *httpClient) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := h.get(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document from %s: %w", url, err)
	}
	return doc, nil
}

func (h *httpClient) GetJSON(ctx context.Context, url string, v any) error {
	body, err := h.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode JSON from %s: %w", url, err)
	}
	return nil
}

func (h *httpClient) GetBytes(ctx context.Context, url string) ([]byte, error) {
	return h.get(ctx, url)
}
