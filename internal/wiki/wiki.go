// Package wiki looks up items and shops on the community wiki. Pages are
// hand-edited, so every parser here treats structure as advisory and
// extracts what it can.
package wiki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/config"
	"go.uber.org/zap"
)

var (
	// ErrNotFound means the wiki has no usable page under the derived slug.
	ErrNotFound = errors.New("wiki: page not found")
	// ErrUnavailable means the wiki itself could not be reached.
	ErrUnavailable = errors.New("wiki: unavailable")
)

// Client fetches wiki pages. Lookups are read-only GETs keyed by slug.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	log       *zap.Logger
}

func NewClient(cfg config.Wiki, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.FetchTimeout}
	}
	return &Client{
		http:      httpClient,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		log:       log,
	}
}

var slugJunk = regexp.MustCompile(`[^a-zA-Z0-9-]`)
var slugDashes = regexp.MustCompile(`-+`)

// Slugify derives the wiki URL slug for a display name. Apostrophes and
// spaces become dashes, everything else non-alphanumeric is dropped, and
// dash runs collapse.
func Slugify(name string) string {
	slug := strings.ReplaceAll(name, "'", "-")
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugJunk.ReplaceAllString(slug, "")
	slug = strings.ToLower(slug)
	slug = slugDashes.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// fetch retrieves one wiki page by slug and returns the body plus the
// canonical page URL.
func (c *Client) fetch(ctx context.Context, slug string) (string, string, error) {
	if slug == "" {
		return "", "", fmt.Errorf("%w: empty slug", ErrNotFound)
	}
	pageURL := c.baseURL + "/" + slug

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", "", fmt.Errorf("%w: %s", ErrNotFound, slug)
	case resp.StatusCode != http.StatusOK:
		return "", "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.log.Debug("wiki page fetched",
		zap.String("slug", slug),
		zap.Int("bytes", len(body)),
	)
	return string(body), pageURL, nil
}
