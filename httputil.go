package eportfolio

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// contains http utils to fetch quotes from remote services

// diskCache implements a simple disk cache for HTTP responses.
// Keys include the day, so the cache expires every day.
type diskCache struct {
	base http.RoundTripper
	dir  string
	log  zerolog.Logger
	now  func() time.Time
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%s %s %s", c.now().Format(time.DateOnly), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if cached, err := c.get(key, req); err == nil {
		c.log.Debug().Str("url", req.URL.String()).Msg("quotes from cache")
		return cached, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("status", resp.Status).Msg("http")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		c.log.Warn().Err(err).Msg("cache write error (ignored)")
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores a response on disk. The response body remains readable.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0644)
}

// NewQuotesClient returns an HTTP client whose successful responses are
// cached in dir for the day. An empty dir disables the cache.
func NewQuotesClient(dir string, log zerolog.Logger) *http.Client {
	client := &http.Client{Timeout: 30 * time.Second}
	if dir != "" {
		client.Transport = &diskCache{base: http.DefaultTransport, dir: dir, log: log, now: time.Now}
	}
	return client
}

// FetchQuotes gets the JSON quotes document at addr. See ApplyQuotes.
func FetchQuotes(ctx context.Context, client *http.Client, addr string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid quotes address %q: %w", addr, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot get quotes: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return DecodeQuotes(resp.Body)
}
