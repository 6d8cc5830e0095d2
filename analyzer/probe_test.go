package analyzer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestProbeFiles_RobotsWithSitemapDirective(t *testing.T) {
	var base string
	var wellKnownHit bool

	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "User-agent: *\nDisallow: /admin\nSitemap: %s/custom-sitemap.xml\n", base)
	})
	mux.HandleFunc("/custom-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?><urlset></urlset>`)
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		wellKnownHit = true
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()
	base = srv.URL

	checks := NewProber(DefaultConfig()).ProbeFiles(context.Background(), base)

	if checks.Robots.Score != 100 || checks.Robots.Status != StatusPass {
		t.Errorf("Expected robots 100/pass, got %f/%s", checks.Robots.Score, checks.Robots.Status)
	}
	if !strings.Contains(checks.Robots.Details, "User-agent rules") {
		t.Errorf("Unexpected robots details: %q", checks.Robots.Details)
	}
	if !strings.Contains(checks.Robots.Details, "1 sitemap reference(s)") {
		t.Errorf("Unexpected robots details: %q", checks.Robots.Details)
	}

	if checks.Sitemap.Score != 100 || checks.Sitemap.Status != StatusPass {
		t.Errorf("Expected sitemap 100/pass, got %f/%s", checks.Sitemap.Score, checks.Sitemap.Status)
	}
	if !strings.Contains(checks.Sitemap.Details, "(referenced from robots.txt)") {
		t.Errorf("Unexpected sitemap details: %q", checks.Sitemap.Details)
	}
	if wellKnownHit {
		t.Error("Well-known sitemap path probed even though robots.txt referenced one")
	}

	if checks.Llms.Status != StatusFail || checks.Llms.Score != 0 {
		t.Errorf("Expected llms fail/0, got %s/%f", checks.Llms.Status, checks.Llms.Score)
	}
}

func TestProbeFiles_RobotsWithoutSitemapDirective(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /admin\n")
	})
	// A 200 HTML error page must not count as a sitemap.
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<!DOCTYPE html><html><body>oops</body></html>")
	})
	mux.HandleFunc("/sitemap_index.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?><sitemapindex></sitemapindex>`)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	checks := NewProber(DefaultConfig()).ProbeFiles(context.Background(), srv.URL)

	if checks.Robots.Score != 60 || checks.Robots.Status != StatusWarning {
		t.Errorf("Expected robots 60/warning, got %f/%s", checks.Robots.Score, checks.Robots.Status)
	}
	if checks.Sitemap.Score != 100 {
		t.Errorf("Expected sitemap found at fallback path, got %f", checks.Sitemap.Score)
	}
	if !strings.Contains(checks.Sitemap.Details, "/sitemap_index.xml") {
		t.Errorf("Unexpected sitemap details: %q", checks.Sitemap.Details)
	}
	if strings.Contains(checks.Sitemap.Details, "robots.txt") {
		t.Errorf("Fallback sitemap wrongly attributed to robots.txt: %q", checks.Sitemap.Details)
	}
}

func TestProbeFiles_LlmsSoft404Rejected(t *testing.T) {
	mux := http.NewServeMux()
	// 200 response whose body is an HTML error page.
	mux.HandleFunc("/llms.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>404 Not Found</body></html>")
	})
	mux.HandleFunc("/llms-full.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "# Acme\nAcme builds industrial widgets and ships them worldwide.\n")
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	checks := NewProber(DefaultConfig()).ProbeFiles(context.Background(), srv.URL)

	if checks.Llms.Score != 100 || checks.Llms.Status != StatusPass {
		t.Errorf("Expected llms 100/pass, got %f/%s", checks.Llms.Score, checks.Llms.Status)
	}
	if checks.Llms.Details != "Found /llms-full.txt" {
		t.Errorf("Expected the full variant to win, got %q", checks.Llms.Details)
	}
}

func TestProbeFiles_LlmsVariantPriority(t *testing.T) {
	body := "# Acme\nAcme builds industrial widgets and ships them worldwide.\n"

	mux := http.NewServeMux()
	mux.HandleFunc("/llms.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	})
	mux.HandleFunc("/llms-full.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	checks := NewProber(DefaultConfig()).ProbeFiles(context.Background(), srv.URL)

	if checks.Llms.Details != "Found /llms.txt" {
		t.Errorf("Expected the first declared variant to win, got %q", checks.Llms.Details)
	}
}

func TestProbeFiles_NothingPublished(t *testing.T) {
	srv := httptest.NewServer(http.NewServeMux())
	defer srv.Close()

	checks := NewProber(DefaultConfig()).ProbeFiles(context.Background(), srv.URL)

	for _, check := range []CheckResult{checks.Llms, checks.Robots, checks.Sitemap} {
		if check.Status != StatusFail || check.Score != 0 {
			t.Errorf("Expected %s fail/0, got %s/%f", check.ID, check.Status, check.Score)
		}
		if check.Recommendation == "" || len(check.ActionItems) == 0 {
			t.Errorf("Expected default recommendation for %s", check.ID)
		}
	}
	if checks.Robots.Details != "No robots.txt file found" {
		t.Errorf("Unexpected robots details: %q", checks.Robots.Details)
	}
	if checks.Llms.Details != "No llms.txt file found" {
		t.Errorf("Unexpected llms details: %q", checks.Llms.Details)
	}
	if checks.Sitemap.Details != "No sitemap found" {
		t.Errorf("Unexpected sitemap details: %q", checks.Sitemap.Details)
	}
}

func TestProbeFiles_UnparseableURL(t *testing.T) {
	checks := NewProber(DefaultConfig()).ProbeFiles(context.Background(), "not a url")
	if checks.Robots.Status != StatusFail || checks.Sitemap.Status != StatusFail || checks.Llms.Status != StatusFail {
		t.Error("Expected all probes to degrade to defaults for an unparseable URL")
	}
}
