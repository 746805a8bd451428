package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/quaderno-ai/quaderno-backend/internal/platform/envutil"
	"github.com/quaderno-ai/quaderno-backend/internal/platform/logger"
)

// SearchResult is one entry from the results page, optionally enriched
// with the fetched page content.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
	Content string
}

// Service performs a web search and returns enriched results.
type Service interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

type duckDuckGo struct {
	log          *logger.Logger
	http         *http.Client
	fetch        *http.Client
	baseURL      string
	userAgent    string
	maxFetch     int
	contentLimit int
}

// NewDuckDuckGo builds the search client. No API key is required; the
// HTML endpoint is scraped directly.
func NewDuckDuckGo(log *logger.Logger) Service {
	searchTimeout := time.Duration(envutil.Int("SEARCH_TIMEOUT_SECONDS", 15)) * time.Second
	fetchTimeout := time.Duration(envutil.Int("SEARCH_FETCH_TIMEOUT_SECONDS", 10)) * time.Second
	return &duckDuckGo{
		log:          log,
		http:         &http.Client{Timeout: searchTimeout},
		fetch:        &http.Client{Timeout: fetchTimeout},
		baseURL:      envutil.String("SEARCH_BASE_URL", "https://html.duckduckgo.com/html/"),
		userAgent:    "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		maxFetch:     envutil.Int("SEARCH_MAX_FETCH", 3),
		contentLimit: envutil.Int("SEARCH_CONTENT_LIMIT", 4000),
	}
}

func (d *duckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 {
		maxResults = 5
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", d.userAgent)
	resp, err := d.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request: status %d", resp.StatusCode)
	}
	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	results := parseResults(doc, maxResults)
	d.log.Info("web search completed", "query", query, "results", len(results))
	if len(results) == 0 {
		return results, nil
	}
	d.enrich(ctx, results)
	return results, nil
}

// enrich fetches page content for the top results in parallel. Fetch
// failures leave Content empty; the snippet still serves.
func (d *duckDuckGo) enrich(ctx context.Context, results []SearchResult) {
	n := d.maxFetch
	if n > len(results) {
		n = len(results)
	}
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			content, err := d.fetchPage(ctx, results[i].URL)
			if err != nil {
				d.log.Warn("page fetch failed", "url", results[i].URL, "error", err)
				return nil
			}
			results[i].Content = content
			return nil
		})
	}
	_ = g.Wait()
}

func (d *duckDuckGo) fetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", d.userAgent)
	resp, err := d.fetch.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", err
	}
	text := extractText(doc)
	if len(text) > d.contentLimit {
		text = text[:d.contentLimit]
	}
	return text, nil
}

// ---- HTML extraction ----

func parseResults(doc *html.Node, max int) []SearchResult {
	var results []SearchResult
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(results) >= max {
			return
		}
		if n.Type == html.ElementNode && hasClass(n, "result") {
			if r, ok := parseResult(n); ok {
				results = append(results, r)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results
}

func parseResult(n *html.Node) (SearchResult, bool) {
	var r SearchResult
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode {
			switch {
			case hasClass(c, "result__title"):
				if a := findAnchor(c); a != nil {
					r.Title = strings.TrimSpace(nodeText(a))
					r.URL = unwrapRedirect(attr(a, "href"))
				}
			case hasClass(c, "result__snippet"):
				r.Snippet = strings.TrimSpace(nodeText(c))
			}
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	walk(n)
	return r, r.Title != "" && r.URL != ""
}

// unwrapRedirect resolves DuckDuckGo's /l/?uddg= redirect links to the
// destination URL.
func unwrapRedirect(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		if dest, err := url.QueryUnescape(target); err == nil {
			return dest
		}
	}
	if u.Scheme == "" {
		return "https:" + href
	}
	return href
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findAnchor(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "a" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if a := findAnchor(c); a != nil {
			return a
		}
	}
	return nil
}

// nodeText concatenates the text nodes under n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	walk(n)
	return b.String()
}

// extractText pulls visible text from a page, skipping script and style
// blocks, collapsing whitespace.
func extractText(doc *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "nav", "footer", "header":
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(strings.Fields(b.String()), " ")
}
