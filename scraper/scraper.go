// Package scraper fetches target pages and extracts their metadata. It is
// the scraping collaborator of the analyzer engine: the engine consumes the
// HTML and metadata produced here and never fetches the page itself.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/temoto/robotstxt"

	"github.com/ai-ready/backend/analyzer"
)

const defaultUserAgent = "AIReadyBot/1.0 (+https://ai-ready.dev/bot)"

// Scraper fetches pages over plain HTTP with a pooled client. Extracted
// metadata strings are sanitized before leaving this package.
type Scraper struct {
	client    *http.Client
	policy    *bluemonday.Policy
	userAgent string
	maxBytes  int64

	// robots.txt verdicts per host, advisory only
	robotsMu    sync.RWMutex
	robotsCache map[string]*robotstxt.RobotsData
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithTimeout overrides the fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) { s.client.Timeout = d }
}

// WithMaxBytes overrides the response body size limit.
func WithMaxBytes(n int64) Option {
	return func(s *Scraper) { s.maxBytes = n }
}

// New creates a Scraper with connection pooling and sane limits.
func New(opts ...Option) *Scraper {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	s := &Scraper{
		client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("stopped after 5 redirects")
				}
				return nil
			},
		},
		policy:      bluemonday.StrictPolicy(),
		userAgent:   defaultUserAgent,
		maxBytes:    6 << 20,
		robotsCache: make(map[string]*robotstxt.RobotsData),
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch retrieves the page at the given URL and extracts its metadata. It
// satisfies the engine's Fetcher contract.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (*analyzer.Page, error) {
	if allowed := s.robotsAllowed(ctx, rawURL); !allowed {
		// Advisory: the auditor analyzes the page anyway, but a disallow is
		// worth noting in the server log.
		log.Printf("robots.txt disallows fetching %s; proceeding for analysis", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	page := &analyzer.Page{
		HTML:     string(body),
		FinalURL: resp.Request.URL.String(),
	}
	page.Metadata = s.extractMetadata(body)
	return page, nil
}

// extractMetadata pulls page metadata from the document head. Failures here
// are not fatal; the analyzers fall back to their own raw-markup signals.
func (s *Scraper) extractMetadata(body []byte) analyzer.PageMetadata {
	var meta analyzer.PageMetadata

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return meta
	}

	meta.Title = s.clean(doc.Find("title").First().Text())

	doc.Find("meta").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		content, ok := sel.Attr("content")
		if !ok || content == "" {
			return true
		}
		name, _ := sel.Attr("name")
		property, _ := sel.Attr("property")

		switch {
		case strings.EqualFold(name, "description") && meta.Description == "":
			meta.Description = s.clean(content)
		case strings.EqualFold(property, "og:title") && meta.OGTitle == "":
			meta.OGTitle = s.clean(content)
		case strings.EqualFold(property, "og:description") && meta.OGDescription == "":
			meta.OGDescription = s.clean(content)
		case strings.EqualFold(name, "author") && meta.Author == "":
			meta.Author = s.clean(content)
		}
		return true
	})

	return meta
}

// clean strips any markup from an extracted metadata string.
func (s *Scraper) clean(value string) string {
	return strings.TrimSpace(s.policy.Sanitize(value))
}

// robotsAllowed reports whether robots.txt permits fetching the URL. Any
// failure to fetch or parse robots.txt counts as allowed.
func (s *Scraper) robotsAllowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}

	data := s.robotsFor(ctx, u)
	if data == nil {
		return true
	}
	return data.TestAgent(u.Path, s.userAgent)
}

func (s *Scraper) robotsFor(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	s.robotsMu.RLock()
	data, exists := s.robotsCache[u.Host]
	s.robotsMu.RUnlock()
	if exists {
		return data
	}

	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil
	}

	data, err = robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil
	}

	s.robotsMu.Lock()
	s.robotsCache[u.Host] = data
	s.robotsMu.Unlock()
	return data
}
