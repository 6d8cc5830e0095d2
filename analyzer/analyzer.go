package analyzer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ai-ready/backend/stats"
)

// Fetcher is the external scraping collaborator: it supplies already-fetched
// page HTML plus page metadata. The engine never scrapes the page itself.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// Page is what the scraping collaborator hands the engine.
type Page struct {
	HTML     string
	Metadata PageMetadata
	FinalURL string
}

// Analyzer runs the full analysis pipeline for a URL: scrape, HTML metric
// checks, auxiliary file probes and score aggregation. Each call is a pure
// function of its inputs plus the probe side effects; there is no shared
// mutable state between concurrent requests beyond the result cache.
type Analyzer struct {
	fetcher Fetcher
	prober  *Prober
	cfg     *Config
	cache   *gocache.Cache
	stats   *stats.Storage
}

// New creates an Analyzer. statsStorage may be nil to disable usage counters.
func New(fetcher Fetcher, cfg *Config, statsStorage *stats.Storage) *Analyzer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Analyzer{
		fetcher: fetcher,
		prober:  NewProber(cfg),
		cfg:     cfg,
		cache:   gocache.New(30*time.Minute, 5*time.Minute),
		stats:   statsStorage,
	}
}

// Config exposes the engine's scoring configuration.
func (a *Analyzer) Config() *Config { return a.cfg }

// Analyze produces a complete AnalysisReport for the given URL. HTML-stage
// failures abort the request; auxiliary probe failures degrade per-file.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*AnalysisReport, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	cacheKey := reportCacheKey(normalized)
	if cached, found := a.cache.Get(cacheKey); found {
		a.recordAnalysis(true)
		return cached.(*AnalysisReport), nil
	}
	a.recordAnalysis(false)

	page, err := a.fetcher.Fetch(ctx, normalized)
	if err != nil {
		a.recordFailure()
		return nil, fmt.Errorf("fetch %s: %w", normalized, err)
	}
	if page == nil || strings.TrimSpace(page.HTML) == "" {
		a.recordFailure()
		return nil, &NoContentError{URL: normalized}
	}

	htmlChecks := a.cfg.AnalyzePage(page.HTML, page.Metadata)
	fileChecks := a.prober.ProbeFiles(ctx, normalized)
	a.recordProbeMisses(fileChecks)

	report := a.cfg.BuildReport(normalized, fileChecks, htmlChecks, page.Metadata)
	a.cache.Set(cacheKey, report, gocache.DefaultExpiration)
	return report, nil
}

// AnalyzePage runs the eight HTML metric analyzers. Each analyzer is fault
// isolated: a panic inside one degrades that metric to a fail placeholder
// instead of killing the whole report.
func (c *Config) AnalyzePage(html string, meta PageMetadata) []CheckResult {
	text := ExtractText(html)

	return []CheckResult{
		safeCheck(CheckHeadingStructure, "Heading Structure", func() CheckResult {
			return c.analyzeHeadingStructure(html)
		}),
		safeCheck(CheckReadability, "Readability", func() CheckResult {
			return c.analyzeReadability(text)
		}),
		safeCheck(CheckMetaTags, "Meta Tags", func() CheckResult {
			return c.analyzeMetaTags(html, meta)
		}),
		safeCheck(CheckSemanticHTML, "Semantic HTML", func() CheckResult {
			return c.analyzeSemanticHTML(html)
		}),
		safeCheck(CheckAccessibility, "Accessibility", func() CheckResult {
			return c.analyzeAccessibility(html)
		}),
		safeCheck(CheckFAQStructure, "FAQ Structure", func() CheckResult {
			return c.analyzeFAQStructure(html)
		}),
		safeCheck(CheckContentStructure, "Content Structure", func() CheckResult {
			return c.analyzeContentStructure(html)
		}),
		safeCheck(CheckTopicalAuthority, "Topical Authority", func() CheckResult {
			return c.analyzeTopicalAuthority(html, text, meta)
		}),
	}
}

// BuildReport assembles the fixed check order, aggregates the overall score
// and stamps the capture-time metadata.
func (c *Config) BuildReport(pageURL string, files FileChecks, htmlChecks []CheckResult, meta PageMetadata) *AnalysisReport {
	checks := make([]CheckResult, 0, 3+len(htmlChecks))
	checks = append(checks, files.Llms, files.Robots, files.Sitemap)
	checks = append(checks, htmlChecks...)

	return &AnalysisReport{
		URL:          pageURL,
		OverallScore: c.AggregateScore(checks, pageURL),
		Checks:       checks,
		Metadata: ReportMetadata{
			Title:       meta.Title,
			Description: meta.Description,
			AnalyzedAt:  time.Now().UTC(),
		},
	}
}

// NormalizeURL prefixes a missing protocol and validates that the result
// parses to a URL with a host.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &InvalidURLError{URL: raw, Err: fmt.Errorf("empty URL")}
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", &InvalidURLError{URL: raw, Err: err}
	}
	if u.Host == "" {
		return "", &InvalidURLError{URL: raw, Err: fmt.Errorf("missing host")}
	}
	return u.String(), nil
}

func safeCheck(id, label string, fn func() CheckResult) (result CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("analyzer %s panicked: %v", id, r)
			rec, items := recommend(id, recoData{})
			result = CheckResult{
				ID:             id,
				Label:          label,
				Status:         StatusFail,
				Score:          0,
				Details:        "Analyzer could not evaluate this page",
				Recommendation: rec,
				ActionItems:    items,
			}
		}
	}()
	return fn()
}

func reportCacheKey(url string) string {
	hash := md5.Sum([]byte(url))
	return hex.EncodeToString(hash[:])
}

func (a *Analyzer) recordAnalysis(cacheHit bool) {
	if a.stats != nil {
		a.stats.RecordAnalysis(cacheHit)
	}
}

func (a *Analyzer) recordFailure() {
	if a.stats != nil {
		a.stats.RecordFailure()
	}
}

func (a *Analyzer) recordProbeMisses(files FileChecks) {
	if a.stats == nil {
		return
	}
	misses := 0
	for _, check := range []CheckResult{files.Llms, files.Robots, files.Sitemap} {
		if check.Status == StatusFail {
			misses++
		}
	}
	if misses > 0 {
		a.stats.RecordProbeMisses(misses)
	}
}
