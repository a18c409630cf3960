// Package collyfetcher implements crawler.Fetcher using gocolly.
package collyfetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/amaan-bhati/sitemap-generator/internal/crawler"
)

const defaultTimeout = 10 * time.Second

// Config controls collector behavior.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Fetcher performs one bounded-timeout GET per call using a cloned Colly
// collector. A fetch succeeds only for an HTTP 200 response whose content
// type contains text/html; every other outcome, including transport
// errors and timeouts, is surfaced as crawler.ErrNoContent. No retries.
type Fetcher struct {
	cfg       Config
	transport http.RoundTripper
	base      *colly.Collector
}

// New builds a Fetcher.
func New(cfg Config) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	c := colly.NewCollector(colly.Async(false))
	c.IgnoreRobotsTxt = true
	transport := newHTTPTransport()
	c.WithTransport(transport)
	return &Fetcher{
		cfg:       cfg,
		transport: transport,
		base:      c,
	}
}

// Fetch executes a single HTTP GET and returns the HTML body.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	collector := f.base.Clone()
	collector.WithTransport(f.transport)
	collector.IgnoreRobotsTxt = true
	// The engine dedups URLs itself; the collector must not keep its own
	// visited state across cloned fetches.
	collector.AllowURLRevisit = true
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	collector.SetRequestTimeout(f.cfg.Timeout)

	var (
		status      int
		contentType string
		body        []byte
		fetchErr    error
	)
	collector.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		contentType = r.Headers.Get("Content-Type")
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(rawURL)
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", crawler.ErrNoContent, ctx.Err())
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("%w: %v", crawler.ErrNoContent, err)
		}
	}
	if fetchErr != nil {
		return nil, fmt.Errorf("%w: %v", crawler.ErrNoContent, fetchErr)
	}
	if status != http.StatusOK || !strings.Contains(contentType, "text/html") {
		return nil, fmt.Errorf("%w: status %d, content-type %q", crawler.ErrNoContent, status, contentType)
	}
	return body, nil
}

// newHTTPTransport builds the pooled transport shared by all fetches.
// Certificate validation is disabled so sites with broken TLS chains can
// still be mapped; the crawler never submits credentials.
func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: true}, // #nosec G402
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
