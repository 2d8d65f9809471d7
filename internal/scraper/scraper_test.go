package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// testSite serves a small linked page tree and counts requests per path.
type testSite struct {
	mu    sync.Mutex
	hits  map[string]int
	pages map[string]string
}

func newTestSite(pages map[string]string) *testSite {
	return &testSite{hits: make(map[string]int), pages: pages}
}

func (s *testSite) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	s.mu.Unlock()

	page, ok := s.pages[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, page)
}

func (s *testSite) hitCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func page(title, body string, links ...string) string {
	var anchors strings.Builder
	for _, l := range links {
		fmt.Fprintf(&anchors, `<a href=%q>%s</a>`, l, l)
	}
	return fmt.Sprintf(`<html><head><title>%s</title></head><body><p>%s</p>%s</body></html>`,
		title, body, anchors.String())
}

func runScraper(t *testing.T, baseURL, outDir string, maxDepth, maxPages int) int {
	t.Helper()
	s, err := New(Config{
		BaseURL:  baseURL,
		OutDir:   outDir,
		MaxDepth: maxDepth,
		MaxPages: maxPages,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	saved, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return saved
}

func TestNewRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"relative url", Config{BaseURL: "docs/guide", MaxPages: 10}},
		{"ftp scheme", Config{BaseURL: "ftp://example.com", MaxPages: 10}},
		{"zero max pages", Config{BaseURL: "http://example.com", MaxPages: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.cfg); err == nil {
				t.Error("New succeeded, want error")
			}
		})
	}
}

func TestRunCrawlsLinkedPages(t *testing.T) {
	site := newTestSite(map[string]string{
		"/":      page("Home", "Welcome to the docs.", "/guide", "/api"),
		"/guide": page("Guide", "The guide explains everything."),
		"/api":   page("API", "The API reference."),
	})
	srv := httptest.NewServer(site)
	defer srv.Close()

	outDir := t.TempDir()
	saved := runScraper(t, srv.URL, outDir, 2, 50)
	if saved != 3 {
		t.Errorf("saved = %d, want 3", saved)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d files, want 3", len(entries))
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".txt") {
			t.Errorf("unexpected output file %s", e.Name())
		}
	}
}

func TestRunSavedFileFormat(t *testing.T) {
	site := newTestSite(map[string]string{
		"/": page("Home", "Paris is the capital of France."),
	})
	srv := httptest.NewServer(site)
	defer srv.Close()

	outDir := t.TempDir()
	runScraper(t, srv.URL, outDir, 0, 10)

	data, err := os.ReadFile(filepath.Join(outDir, "home.txt"))
	if err != nil {
		t.Fatalf("reading saved page: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "Source URL: "+srv.URL) {
		t.Errorf("saved file does not open with the source url:\n%s", content)
	}
	if !strings.Contains(content, "Paris is the capital of France.") {
		t.Errorf("page text missing:\n%s", content)
	}
}

func TestRunRespectsDepthLimit(t *testing.T) {
	site := newTestSite(map[string]string{
		"/":         page("Home", "root", "/l1"),
		"/l1":       page("L1", "level one", "/l1/l2"),
		"/l1/l2":    page("L2", "level two", "/l1/l2/l3"),
		"/l1/l2/l3": page("L3", "level three"),
	})
	srv := httptest.NewServer(site)
	defer srv.Close()

	saved := runScraper(t, srv.URL, t.TempDir(), 1, 50)
	if saved != 2 {
		t.Errorf("saved = %d, want 2 (root + depth 1)", saved)
	}
	if site.hitCount("/l1/l2") != 0 {
		t.Error("crawler followed links beyond the depth limit")
	}
}

func TestRunRespectsPageCap(t *testing.T) {
	pages := map[string]string{}
	var links []string
	for i := 0; i < 20; i++ {
		links = append(links, fmt.Sprintf("/p%d", i))
	}
	pages["/"] = page("Home", "hub", links...)
	for i := 0; i < 20; i++ {
		pages[fmt.Sprintf("/p%d", i)] = page("P", "leaf page")
	}
	site := newTestSite(pages)
	srv := httptest.NewServer(site)
	defer srv.Close()

	saved := runScraper(t, srv.URL, t.TempDir(), 3, 5)
	if saved != 5 {
		t.Errorf("saved = %d, want page cap 5", saved)
	}
}

func TestRunVisitsEachPageOnce(t *testing.T) {
	// Pages link to each other in a cycle.
	site := newTestSite(map[string]string{
		"/":  page("Home", "root", "/a", "/b"),
		"/a": page("A", "page a", "/b", "/"),
		"/b": page("B", "page b", "/a", "/", "/b#section"),
	})
	srv := httptest.NewServer(site)
	defer srv.Close()

	runScraper(t, srv.URL, t.TempDir(), 5, 50)
	for _, path := range []string{"/", "/a", "/b"} {
		if got := site.hitCount(path); got != 1 {
			t.Errorf("%s fetched %d times, want 1", path, got)
		}
	}
}

func TestRunDeduplicatesBareHostLinks(t *testing.T) {
	// httptest base URLs carry no trailing slash; pages commonly link back to
	// the root as "/" or as the absolute bare host. All three spellings are
	// one page.
	var mu sync.Mutex
	var baseURL string
	hits := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.URL.Path]++
		base := baseURL
		mu.Unlock()

		w.Header().Set("Content-Type", "text/html")
		if r.URL.Path == "/" {
			fmt.Fprintf(w, `<html><body><a href=%q>bare</a><a href="/">slash</a><a href="/child">child</a></body></html>`, base)
			return
		}
		fmt.Fprint(w, `<html><body><p>child page</p></body></html>`)
	}))
	defer srv.Close()
	mu.Lock()
	baseURL = srv.URL
	mu.Unlock()

	saved := runScraper(t, srv.URL, t.TempDir(), 3, 50)
	if saved != 2 {
		t.Errorf("saved = %d, want 2 (root + child)", saved)
	}
	mu.Lock()
	defer mu.Unlock()
	if hits["/"] != 1 {
		t.Errorf("root fetched %d times, want 1", hits["/"])
	}
}

func TestRunStaysInScope(t *testing.T) {
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("crawler left the base host")
	}))
	defer other.Close()

	site := newTestSite(map[string]string{
		"/docs/":      page("Docs", "docs home", "/docs/guide", "/blog/post", other.URL+"/external"),
		"/docs/guide": page("Guide", "the guide"),
		"/blog/post":  page("Blog", "off-scope sibling"),
	})
	srv := httptest.NewServer(site)
	defer srv.Close()

	saved := runScraper(t, srv.URL+"/docs/", t.TempDir(), 3, 50)
	if saved != 2 {
		t.Errorf("saved = %d, want 2", saved)
	}
	if site.hitCount("/blog/post") != 0 {
		t.Error("crawler left the base path")
	}
}

func TestRunSkipsFailedPages(t *testing.T) {
	site := newTestSite(map[string]string{
		"/":   page("Home", "root", "/ok", "/missing"),
		"/ok": page("OK", "fine page"),
	})
	srv := httptest.NewServer(site)
	defer srv.Close()

	// The 404 page is skipped; the crawl still completes.
	saved := runScraper(t, srv.URL, t.TempDir(), 2, 50)
	if saved != 2 {
		t.Errorf("saved = %d, want 2", saved)
	}
}
