package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"profilescraper/pkg/errors"
	"profilescraper/pkg/logger"
)

// Client fetches public profile pages from the external host. Each fetch
// is a single GET with a browser-realistic header set, a bounded timeout
// and a bounded redirect count; failed fetches are never retried here.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  logger.Logger
}

// Options configures a Client
type Options struct {
	BaseURL      string
	UserAgent    string
	Timeout      time.Duration
	MaxRedirects int
}

// NewClient creates a profile page client
func NewClient(opts Options, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(opts.MaxRedirects))
	client.SetHeaders(map[string]string{
		"User-Agent":      opts.UserAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
		"Accept-Encoding": "gzip, deflate",
		"Cache-Control":   "no-cache",
	})

	return &Client{
		http:    client,
		baseURL: opts.BaseURL,
		logger:  log,
	}
}

// SetTransport replaces the underlying HTTP transport. Tests use this to
// intercept requests.
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.http.GetClient().Transport = rt
}

// FetchProfilePage performs a single GET against the public profile URL
// for identifier and returns the raw page body
func (c *Client) FetchProfilePage(ctx context.Context, identifier string) (string, error) {
	url := ProfileURL(c.baseURL, identifier)

	start := time.Now()
	c.logger.DebugWithFields("fetching profile page", map[string]interface{}{
		"identifier": identifier,
		"url":        url,
	})

	resp, err := c.http.R().SetContext(ctx).Get(url)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("profile page request failed", map[string]interface{}{
			"identifier": identifier,
			"url":        url,
			"error":      err.Error(),
			"duration":   duration,
		})
		return "", errors.New(errors.ErrorTypeNetwork, fmt.Sprintf("network error: %v", err), 0)
	}

	if err := c.checkResponseStatus(resp, identifier); err != nil {
		return "", err
	}

	c.logger.DebugWithFields("profile page fetched", map[string]interface{}{
		"identifier": identifier,
		"url":        url,
		"status":     resp.StatusCode(),
		"size":       len(resp.Body()),
		"duration":   duration,
	})

	return resp.String(), nil
}

// checkResponseStatus maps non-2xx responses to typed errors
func (c *Client) checkResponseStatus(resp *resty.Response, identifier string) error {
	code := resp.StatusCode()
	if code >= 200 && code < 300 {
		return nil
	}

	fields := map[string]interface{}{
		"identifier": identifier,
		"status":     code,
		"headers":    resp.Header(),
	}

	switch {
	case code == http.StatusNotFound:
		c.logger.WarnWithFields("profile not found", fields)
		return errors.New(errors.ErrorTypeNotFound, "profile not found", code)
	case code == http.StatusTooManyRequests:
		c.logger.WarnWithFields("rate limited by profile host", fields)
		return errors.New(errors.ErrorTypeRateLimit, "rate limit exceeded", code)
	case code >= 500:
		c.logger.ErrorWithFields("profile host server error", fields)
		return errors.New(errors.ErrorTypeServerError, "server error", code)
	default:
		c.logger.ErrorWithFields("unexpected response status", fields)
		return errors.New(errors.ErrorTypeNetwork, fmt.Sprintf("unexpected status code: %d", code), code)
	}
}
