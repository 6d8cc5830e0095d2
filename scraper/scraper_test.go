package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const testPage = `<html lang="en"><head>
<title> Widget Guide </title>
<meta name="description" content="All about <b>widgets</b>">
<meta property="og:title" content="Widget Guide OG">
<meta property="og:description" content="OG description">
<meta name="author" content="Jane Doe">
</head><body><h1>Widgets</h1></body></html>`

func TestFetch_ExtractsMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "AIReadyBot") {
			t.Errorf("Unexpected User-Agent: %q", ua)
		}
		fmt.Fprint(w, testPage)
	}))
	defer srv.Close()

	page, err := New().Fetch(context.Background(), srv.URL+"/guide")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if !strings.Contains(page.HTML, "<h1>Widgets</h1>") {
		t.Error("Expected raw HTML to be preserved")
	}
	if page.FinalURL != srv.URL+"/guide" {
		t.Errorf("Unexpected final URL: %q", page.FinalURL)
	}

	meta := page.Metadata
	if meta.Title != "Widget Guide" {
		t.Errorf("Expected trimmed title, got %q", meta.Title)
	}
	// Markup inside metadata values must not survive extraction.
	if meta.Description != "All about widgets" {
		t.Errorf("Expected sanitized description, got %q", meta.Description)
	}
	if meta.OGTitle != "Widget Guide OG" {
		t.Errorf("Unexpected og:title: %q", meta.OGTitle)
	}
	if meta.OGDescription != "OG description" {
		t.Errorf("Unexpected og:description: %q", meta.OGDescription)
	}
	if meta.Author != "Jane Doe" {
		t.Errorf("Unexpected author: %q", meta.Author)
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, err := New().Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Expected an error for a non-2xx response")
	}
	if !strings.Contains(err.Error(), "unexpected status") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestFetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", http.NotFound)
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testPage)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	page, err := New().Fetch(context.Background(), srv.URL+"/old")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if page.FinalURL != srv.URL+"/new" {
		t.Errorf("Expected final URL after redirect, got %q", page.FinalURL)
	}
}

func TestFetch_RespectsBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, strings.Repeat("x", 4096))
	}))
	defer srv.Close()

	page, err := New(WithMaxBytes(1024)).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(page.HTML) != 1024 {
		t.Errorf("Expected body truncated to 1024 bytes, got %d", len(page.HTML))
	}
}

func TestFetch_DisallowedByRobotsStillFetches(t *testing.T) {
	var pageFetched bool

	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pageFetched = true
		fmt.Fprint(w, testPage)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	// The robots verdict is advisory for an audit tool; the page is analyzed
	// regardless.
	if _, err := New().Fetch(context.Background(), srv.URL+"/private"); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !pageFetched {
		t.Error("Expected the page to be fetched despite the disallow rule")
	}
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, testPage)
	}))
	defer srv.Close()

	_, err := New(WithTimeout(50 * time.Millisecond)).Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Expected a timeout error")
	}
}
