package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient(10 * time.Second)
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a new HTTPClient with its own connection pool,
// JSON accept header and the given per-request timeout (zero disables it).
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return configure(resty.New(), timeout)
}

// NewHTTPClientWith wraps an existing *http.Client, e.g. one produced by
// oauth2.NewClient that injects the Authorization header.
func NewHTTPClientWith(hc *http.Client, timeout time.Duration) *HTTPClient {
	return configure(resty.NewWithClient(hc), timeout)
}

func configure(c *resty.Client, timeout time.Duration) *HTTPClient {
	c.SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &HTTPClient{Client: c}
}
