package http

import (
	"context"
	"io"
	"net/http"
	"time"
)

// userAgent is sent with every request. Some image hosts reject requests
// identifying as a generic Go client.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/42.0.2311.135 Safari/537.36 Edge/12.246"

const (
	probeTimeout = 1 * time.Second
	fetchTimeout = 60 * time.Second
)

// Client wraps HTTP operations for resource downloads.
type Client struct {
	fetchClient *http.Client
	probeClient *http.Client
}

// NewClient creates a new Client with the probe and fetch timeouts.
func NewClient() *Client {
	return &Client{
		fetchClient: &http.Client{Timeout: fetchTimeout},
		probeClient: &http.Client{Timeout: probeTimeout},
	}
}

// FinalHost requests url with the short probe timeout, follows redirects,
// and returns the host the request finally landed on. The body is
// discarded; only the redirect target matters.
func (c *Client) FinalHost(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.probeClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.Request.URL.Host, nil
}

// Get fetches url with the long timeout and returns the final status code
// and body. Status classification is left to the caller; only transport
// failures produce an error.
func (c *Client) Get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.fetchClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}
