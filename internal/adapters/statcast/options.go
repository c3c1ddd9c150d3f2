package statcast

import (
	"net/http"
	"time"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithStatsAPIURL sets the base URL of the people search API.
func WithStatsAPIURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.statsAPIURL = u
		}
	}
}

// WithSavantURL sets the base URL of the pitch search.
func WithSavantURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.savantURL = u
		}
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout bounds each request when the default client is used.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithSportIDs restricts identity search to the given levels.
func WithSportIDs(ids string) Option {
	return func(c *Client) {
		if ids != "" {
			c.sportIDs = ids
		}
	}
}
