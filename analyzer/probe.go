package analyzer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	proberUserAgent = "AIReadyBot/1.0"
	maxProbeBytes   = 512 * 1024
)

var (
	userAgentLineRe = regexp.MustCompile(`(?im)^\s*user-agent\s*:`)
	sitemapLineRe   = regexp.MustCompile(`(?im)^\s*sitemap\s*:\s*(\S+)`)
)

// llmsVariants are probed concurrently; the first declared variant that
// validates wins regardless of completion order.
var llmsVariants = []string{"llms.txt", "LLMs.txt", "llms-full.txt"}

// wellKnownSitemaps are tried after any sitemap URLs referenced in
// robots.txt, in this order.
var wellKnownSitemaps = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/sitemap-index.xml",
	"/sitemaps/sitemap.xml",
	"/sitemap/sitemap.xml",
}

var sitemapTokens = []string{"<?xml", "<urlset", "<sitemapindex", "<url>", "<sitemap>"}

// Prober fetches the three auxiliary well-known files. Every fetch has its
// own bounded timeout; a failed or hung probe degrades to the default
// "not found" result without affecting the others.
type Prober struct {
	client *http.Client
	cfg    *Config
}

// NewProber creates a Prober sharing one pooled transport across probes.
func NewProber(cfg *Config) *Prober {
	return &Prober{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 6,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cfg: cfg,
	}
}

// ProbeFiles checks robots.txt, llms.txt variants and sitemap candidates for
// the origin of the given URL. The robots and llms fetches run concurrently;
// sitemap candidates are probed sequentially afterwards so that sitemap URLs
// referenced from robots.txt are tried first.
func (p *Prober) ProbeFiles(ctx context.Context, rawURL string) FileChecks {
	checks := FileChecks{
		Robots:  defaultFileCheck(CheckRobotsTxt, "robots.txt", "No robots.txt file found"),
		Llms:    defaultFileCheck(CheckLlmsTxt, "llms.txt", "No llms.txt file found"),
		Sitemap: defaultFileCheck(CheckSitemap, "Sitemap", "No sitemap found"),
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return checks
	}
	origin := u.Scheme + "://" + u.Host

	var robotsSitemaps []string
	llmsBodies := make([]string, len(llmsVariants))

	g := new(errgroup.Group)
	g.Go(func() error {
		checks.Robots, robotsSitemaps = p.probeRobots(ctx, origin)
		return nil
	})
	for i, variant := range llmsVariants {
		i, variant := i, variant
		g.Go(func() error {
			status, body, err := p.fetch(ctx, origin+"/"+variant)
			if err == nil && status >= 200 && status < 300 {
				llmsBodies[i] = body
			}
			return nil
		})
	}
	g.Wait()

	// Deterministic tie-break: the earliest declared variant that validates
	// wins, whatever order the fetches finished in.
	for i, body := range llmsBodies {
		if validLlmsBody(body) {
			checks.Llms = p.llmsCheck(llmsVariants[i])
			break
		}
	}

	checks.Sitemap = p.probeSitemaps(ctx, origin, robotsSitemaps)
	return checks
}

// probeRobots fetches {origin}/robots.txt and scores it on the presence of a
// User-agent line (60) and at least one Sitemap directive (40). It also
// returns any referenced sitemap URLs for the sitemap probe.
func (p *Prober) probeRobots(ctx context.Context, origin string) (CheckResult, []string) {
	check := defaultFileCheck(CheckRobotsTxt, "robots.txt", "No robots.txt file found")

	status, body, err := p.fetch(ctx, origin+"/robots.txt")
	if err != nil || status < 200 || status >= 300 {
		return check, nil
	}

	hasUserAgent := userAgentLineRe.MatchString(body)
	var sitemaps []string
	for _, m := range sitemapLineRe.FindAllStringSubmatch(body, -1) {
		sitemaps = append(sitemaps, m[1])
	}

	score := 0.0
	if hasUserAgent {
		score += 60
	}
	if len(sitemaps) > 0 {
		score += 40
	}

	details := "robots.txt found"
	if hasUserAgent {
		details += " with User-agent rules"
	}
	if len(sitemaps) > 0 {
		details += fmt.Sprintf(", %d sitemap reference(s)", len(sitemaps))
	}

	check.Score = clampScore(score)
	check.Status = p.cfg.statusFor(CheckRobotsTxt, check.Score)
	check.Details = details
	return check, sitemaps
}

// probeSitemaps tries robots-referenced sitemap URLs first, then the
// well-known paths, stopping at the first candidate that looks like XML.
func (p *Prober) probeSitemaps(ctx context.Context, origin string, fromRobots []string) CheckResult {
	check := defaultFileCheck(CheckSitemap, "Sitemap", "No sitemap found")

	seen := make(map[string]bool)
	type candidate struct {
		url        string
		fromRobots bool
	}
	var candidates []candidate
	for _, sm := range fromRobots {
		if !seen[sm] {
			seen[sm] = true
			candidates = append(candidates, candidate{sm, true})
		}
	}
	for _, path := range wellKnownSitemaps {
		full := origin + path
		if !seen[full] {
			seen[full] = true
			candidates = append(candidates, candidate{full, false})
		}
	}

	for _, cand := range candidates {
		status, body, err := p.fetch(ctx, cand.url)
		if err != nil || status < 200 || status >= 300 {
			continue
		}
		if !validSitemapBody(body) {
			continue
		}

		details := "Sitemap found at " + cand.url
		if cand.fromRobots {
			details += " (referenced from robots.txt)"
		}
		check.Score = 100
		check.Status = StatusPass
		check.Details = details
		return check
	}
	return check
}

func (p *Prober) llmsCheck(variant string) CheckResult {
	rec, items := recommend(CheckLlmsTxt, recoData{Score: 100})
	return CheckResult{
		ID:             CheckLlmsTxt,
		Label:          "llms.txt",
		Status:         StatusPass,
		Score:          100,
		Details:        "Found /" + variant,
		Recommendation: rec,
		ActionItems:    items,
	}
}

// fetch performs one bounded GET. Its timeout is independent of the other
// probes; a hung upstream stalls nothing beyond its own window.
func (p *Prober) fetch(ctx context.Context, target string) (int, string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("User-Agent", proberUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBytes))
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(body), nil
}

// validLlmsBody accepts content that is long enough and does not look like
// an HTML document or a soft-404 page. HTTP 200 alone is not enough.
func validLlmsBody(body string) bool {
	if len(body) <= 10 {
		return false
	}
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype") {
		return false
	}
	if strings.Contains(lower, "not found") || strings.Contains(lower, "404") {
		return false
	}
	return true
}

func validSitemapBody(body string) bool {
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<!doctype html") {
		return false
	}
	for _, token := range sitemapTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func defaultFileCheck(id, label, details string) CheckResult {
	rec, items := recommend(id, recoData{})
	return CheckResult{
		ID:             id,
		Label:          label,
		Status:         StatusFail,
		Score:          0,
		Details:        details,
		Recommendation: rec,
		ActionItems:    items,
	}
}
