package charpage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/config"
	"go.uber.org/zap"
)

// voidMarker appears on the placeholder page served for inactive or
// nonexistent characters.
const voidMarker = "is wandering in the Void"

// Client fetches character pages from the upstream site. The HTTP client is
// injected so its lifetime is owned by the caller, not a package global.
type Client struct {
	http      *http.Client
	pageURL   string // fmt template, %s = username
	userAgent string
	log       *zap.Logger
}

func NewClient(cfg config.Upstream, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.FetchTimeout}
	}
	return &Client{
		http:      httpClient,
		pageURL:   cfg.PageURL,
		userAgent: cfg.UserAgent,
		log:       log,
	}
}

// FetchPage retrieves the raw character page HTML for a username.
// 404 and the void placeholder both map to ErrNotFound; other non-200
// statuses map to ErrUpstream; transport failures map to ErrNetwork.
// No retries here; retry policy belongs to the caller.
func (c *Client) FetchPage(ctx context.Context, username string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", fmt.Errorf("%w: empty username", ErrNotFound)
	}

	reqURL := fmt.Sprintf(c.pageURL, url.QueryEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrNotFound, username)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}

	c.log.Debug("character page fetched",
		zap.String("username", username),
		zap.Int("bytes", len(body)),
	)
	return string(body), nil
}

// fetchJSON issues a GET against a CharPage API endpoint and returns the body.
func (c *Client) fetchJSON(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// apiBase derives the scheme://host prefix of the configured page URL, used
// for the Badges/Inventory endpoints that live beside the character page.
func (c *Client) apiBase() (string, error) {
	u, err := url.Parse(fmt.Sprintf(c.pageURL, "x"))
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}
	return u.Scheme + "://" + u.Host, nil
}
