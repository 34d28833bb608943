package services

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	// SummaryMaxLen is the hard character cap on the extracted summary.
	SummaryMaxLen = 2000

	scraperUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
)

var (
	citationRegex = regexp.MustCompile(`\[\d+\]`)
	editRegex     = regexp.MustCompile(`(?i)\[edit\]`)
)

// Headings that carry no article content, compared case-insensitively.
var skippedSections = map[string]bool{
	"contents":        true,
	"references":      true,
	"external links":  true,
	"see also":        true,
	"notes":           true,
	"bibliography":    true,
	"further reading": true,
}

// FetchError reports a failed page fetch. StatusCode is zero for transport
// errors.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch page: %v", e.Err)
	}
	return fmt.Sprintf("Failed to fetch page. Status code: %d", e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractedArticle is the normalized form of a scraped page.
type ExtractedArticle struct {
	Title    string
	Summary  string
	Sections []string
}

// Scraper fetches Wikipedia pages and extracts title, summary and second-level
// section headings.
type Scraper struct {
	client *http.Client
}

func NewScraper() *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch retrieves the raw HTML for url. Any transport failure or non-2xx
// status is returned as a *FetchError; the caller never sees a raw client
// error.
func (s *Scraper) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	req.Header.Set("User-Agent", scraperUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	return doc, nil
}

// Extract normalizes a parsed document. It never fails: a degenerate page
// yields the sentinel title and empty sections, and the pipeline proceeds.
func (s *Scraper) Extract(doc *goquery.Document) ExtractedArticle {
	title := "No title found"
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		if text := strings.TrimSpace(h1.Text()); text != "" {
			title = text
		}
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	summary := citationRegex.ReplaceAllString(strings.Join(paragraphs, " "), "")
	// The cap counts characters, not bytes; a byte cut could land mid-rune
	// and shortchange non-Latin articles.
	if runes := []rune(summary); len(runes) > SummaryMaxLen {
		summary = string(runes[:SummaryMaxLen])
	}

	sections := []string{}
	doc.Find("h2").Each(func(_ int, h2 *goquery.Selection) {
		text := strings.TrimSpace(editRegex.ReplaceAllString(headingText(h2), ""))
		if text == "" {
			return
		}
		if skippedSections[strings.ToLower(text)] {
			return
		}
		sections = append(sections, text)
	})

	return ExtractedArticle{
		Title:    title,
		Summary:  summary,
		Sections: sections,
	}
}

// headingText joins a heading's text nodes with single spaces, so text split
// across nested elements keeps its word boundaries.
func headingText(s *goquery.Selection) string {
	var parts []string
	for _, node := range s.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			*parts = append(*parts, text)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// ScrapeArticle fetches and extracts a page in one step.
func (s *Scraper) ScrapeArticle(ctx context.Context, url string) (ExtractedArticle, error) {
	doc, err := s.Fetch(ctx, url)
	if err != nil {
		return ExtractedArticle{}, err
	}
	return s.Extract(doc), nil
}
