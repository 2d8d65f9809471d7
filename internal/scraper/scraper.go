// Package scraper crawls a documentation site and saves each page's visible
// text as a .txt file, making crawl output an ordinary ingestion root. The
// crawl is bounded: a visited set, a depth limit, a page cap, and a scope
// check keep it from wandering off the target section.
package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/html"

	"docchat/internal/extract"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Scraper crawls pages under a base URL breadth-first.
type Scraper struct {
	baseURL  *url.URL
	outDir   string
	maxDepth int
	maxPages int
	delay    time.Duration
	client   *http.Client
}

// Config controls crawl bounds.
type Config struct {
	BaseURL  string
	OutDir   string
	MaxDepth int
	MaxPages int
	Delay    time.Duration
}

// New creates a Scraper for the given base URL.
func New(cfg Config) (*Scraper, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("scraper: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("scraper: base url must be http(s), got %q", cfg.BaseURL)
	}
	// Normalize so "http://host" and "http://host/" are the same page and
	// the visited set deduplicates them.
	if base.Path == "" {
		base.Path = "/"
	}
	if cfg.MaxPages <= 0 {
		return nil, fmt.Errorf("scraper: max pages must be positive, got %d", cfg.MaxPages)
	}
	return &Scraper{
		baseURL:  base,
		outDir:   cfg.OutDir,
		maxDepth: cfg.MaxDepth,
		maxPages: cfg.MaxPages,
		delay:    cfg.Delay,
		client:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Run crawls breadth-first from the base URL and returns the number of pages
// saved. Fetch failures for individual pages are logged and skipped.
func (s *Scraper) Run(ctx context.Context) (int, error) {
	if err := os.MkdirAll(s.outDir, 0755); err != nil {
		return 0, fmt.Errorf("scraper: create output dir: %w", err)
	}

	type item struct {
		url   string
		depth int
	}

	visited := map[string]bool{s.baseURL.String(): true}
	queue := []item{{url: s.baseURL.String(), depth: 0}}
	saved := 0

	for len(queue) > 0 && saved < s.maxPages {
		if err := ctx.Err(); err != nil {
			return saved, err
		}

		cur := queue[0]
		queue = queue[1:]

		log.Printf("scraper: fetching %s (depth %d)", cur.url, cur.depth)
		root, err := s.fetch(ctx, cur.url)
		if err != nil {
			log.Printf("scraper: %v", err)
			continue
		}

		text := extract.HTMLText(root)
		if err := s.save(cur.url, text); err != nil {
			log.Printf("scraper: save %s: %v", cur.url, err)
		} else {
			saved++
		}

		if cur.depth >= s.maxDepth {
			continue
		}

		for _, link := range pageLinks(root, cur.url) {
			if visited[link] || !s.inScope(link) {
				continue
			}
			visited[link] = true
			queue = append(queue, item{url: link, depth: cur.depth + 1})
		}

		if s.delay > 0 && len(queue) > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return saved, ctx.Err()
			}
		}
	}

	return saved, nil
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	root, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return root, nil
}

// inScope reports whether a link stays on the base host under the base path.
func (s *Scraper) inScope(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	if u.Host != s.baseURL.Host {
		return false
	}
	return strings.HasPrefix(u.Path, s.baseURL.Path)
}

// pageLinks collects the resolved href targets of all anchors on the page,
// with fragments stripped so the visited set deduplicates properly.
func pageLinks(root *html.Node, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var links []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				ref, err := url.Parse(attr.Val)
				if err != nil {
					continue
				}
				resolved := base.ResolveReference(ref)
				resolved.Fragment = ""
				if resolved.Path == "" {
					resolved.Path = "/"
				}
				links = append(links, resolved.String())
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return links
}

// save writes the page text under a filename derived from the URL, with the
// source URL recorded on the first line.
func (s *Scraper) save(pageURL, text string) error {
	name := strings.TrimPrefix(pageURL, s.baseURL.String())
	name = strings.Trim(strings.ReplaceAll(name, "/", "_"), "_")
	if name == "" {
		name = "home"
	}
	name = sanitizeFilename(name) + ".txt"

	content := fmt.Sprintf("Source URL: %s\n\n%s", pageURL, text)
	return os.WriteFile(filepath.Join(s.outDir, name), []byte(content), 0644)
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
