// Package ics reads iCalendar feeds and turns their events into day plans.
package ics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// cacheEntry holds HTTP cache metadata for a single feed URL.
type cacheEntry struct {
	UpdatedAt    time.Time `json:"updated_at"`
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
}

// Fetcher loads feed bodies from local files or over HTTP. HTTP responses
// are cached on disk and revalidated with ETag / Last-Modified; the cached
// body is used when the server is unreachable.
type Fetcher struct {
	client   *http.Client
	logger   *slog.Logger
	cacheDir string
}

// NewFetcher creates a new Fetcher. An empty cacheDir disables the disk cache.
func NewFetcher(cacheDir string, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger:   logger,
		cacheDir: cacheDir,
	}
}

// WithClient returns a copy of the fetcher using client for HTTP requests.
func (f *Fetcher) WithClient(client *http.Client) *Fetcher {
	c := *f
	c.client = client
	return &c
}

// Fetch returns the feed body behind uri: an http(s) URL, a file:// URL
// or a local path.
func (f *Fetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	if uri == "" {
		return nil, errors.New("feed uri is empty")
	}
	switch {
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return f.fetchHTTP(ctx, uri)
	case strings.HasPrefix(uri, "file://"):
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", uri, err)
		}
		return os.ReadFile(filepath.FromSlash(u.Path))
	default:
		return os.ReadFile(uri)
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	var cachePath string
	var meta cacheEntry
	var cachedBody []byte
	if f.cacheDir != "" {
		cachePath = f.cachePathForURL(rawURL)
		if err := os.MkdirAll(cachePath, 0o700); err != nil {
			return nil, err
		}
		meta, _ = f.loadCacheMeta(cachePath)
		cachedBody, _ = f.loadCacheBody(cachePath)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if len(cachedBody) > 0 {
		if meta.ETag != "" {
			req.Header.Set("If-None-Match", meta.ETag)
		}
		if meta.LastModified != "" {
			req.Header.Set("If-Modified-Since", meta.LastModified)
		}
	}

	log := f.logger.With("url", redactURL(rawURL))
	log.Debug("ics fetch start")

	resp, err := f.client.Do(req)
	if err != nil {
		if len(cachedBody) > 0 {
			log.Warn("ics fetch failed, using cached body", "error", err)
			return cachedBody, nil
		}
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if cachePath != "" {
			entry := cacheEntry{
				URL:          rawURL,
				ETag:         resp.Header.Get("ETag"),
				LastModified: resp.Header.Get("Last-Modified"),
			}
			if err := f.saveCache(cachePath, entry, body); err != nil {
				log.Warn("ics cache save failed", "error", err)
			}
		}
		log.Debug("ics fetch success", "bytes", len(body))
		return body, nil

	case http.StatusNotModified:
		if len(cachedBody) == 0 {
			return nil, errors.New("received 304 Not Modified but no cached body available")
		}
		log.Debug("ics fetch not modified, using cache")
		return cachedBody, nil

	default:
		if len(cachedBody) > 0 {
			log.Warn("ics fetch non-OK, using cached body", "status", resp.StatusCode)
			return cachedBody, nil
		}
		return nil, fmt.Errorf("fetch %s: %s", redactURL(rawURL), resp.Status)
	}
}

func (f *Fetcher) cachePathForURL(u string) string {
	sum := sha256.Sum256([]byte(u))
	return filepath.Join(f.cacheDir, hex.EncodeToString(sum[:8]))
}

func (f *Fetcher) loadCacheMeta(cachePath string) (cacheEntry, error) {
	var meta cacheEntry
	data, err := os.ReadFile(filepath.Join(cachePath, "meta.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return cacheEntry{}, err
	}
	return meta, nil
}

func (f *Fetcher) loadCacheBody(cachePath string) ([]byte, error) {
	return os.ReadFile(filepath.Join(cachePath, "body.ics"))
}

func (f *Fetcher) saveCache(cachePath string, meta cacheEntry, body []byte) error {
	// Body first so meta never points at a missing body.
	if err := os.WriteFile(filepath.Join(cachePath, "body.ics"), body, 0o600); err != nil {
		return err
	}

	meta.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cachePath, "meta.json"), data, 0o600)
}

// redactURL hides the path and query of a feed URL, which often carry
// private tokens, e.g. "https://example.com/...(redacted)".
func redactURL(u string) string {
	i := strings.Index(u, "://")
	if i < 0 {
		return "ics://...(redacted)"
	}
	rest := u[i+3:]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		rest = rest[:j]
	}
	return u[:i+3] + rest + "/...(redacted)"
}
