// Package fetch provides generic URL fetching and HTML cleanup shared by the
// resume and job extractors.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultMaxBytes caps how much of a response body is read.
const DefaultMaxBytes = 25 << 20

// BrowserUserAgent is a desktop browser user agent; some job boards refuse bot agents.
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultUserAgent is the user agent string for non-scraping requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; MindWise/1.0)"

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	Body        []byte
	ContentType string
	StatusCode  int
}

// HTML returns the body as a string.
func (r *Result) HTML() string {
	return string(r.Body)
}

// IsHTML reports whether the response declared an HTML content type.
func (r *Result) IsHTML() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "text/html")
}

// IsPDF reports whether the response is a PDF, by content type or by the %PDF magic prefix.
func (r *Result) IsPDF() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "application/pdf") ||
		bytes.HasPrefix(r.Body, []byte("%PDF"))
}

// Error represents an error during URL fetching.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	MaxBytes  int64
	// Client overrides the HTTP client, e.g. to share a cookie jar across requests.
	Client *http.Client
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		MaxBytes:  DefaultMaxBytes,
	}
}

// URL retrieves the content at urlStr. Non-200 responses return both the Result and an *Error.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         resp.Request.URL.String(),
		Body:        bodyBytes,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return result, &Error{
			URL:        urlStr,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	return result, nil
}

// baseNoise is removed from every page before text extraction.
const baseNoise = "script, style, noscript, nav, header, footer, aside, iframe, svg"

// ParseHTML parses html and strips scripts, styles and page chrome (nav, header, footer, aside),
// plus any extra noise selectors.
func ParseHTML(html string, noiseSelectors ...string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(baseNoise).Remove()
	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	return doc, nil
}

// RawSelectionText returns the text of a selection with one trimmed line per text node.
// goquery's Text() would run adjacent blocks together.
func RawSelectionText(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		collectText(s, &parts)
	})
	return strings.Join(parts, "\n")
}

func collectText(s *goquery.Selection, parts *[]string) {
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		if goquery.NodeName(child) == "#text" {
			if text := strings.TrimSpace(child.Text()); text != "" {
				*parts = append(*parts, text)
			}
			return
		}
		collectText(child, parts)
	})
}

// InlineText returns the text of the first node in sel collapsed onto a single line.
func InlineText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.First().Text()), " ")
}

// CleanText trims every line, drops blank lines and collapses consecutive duplicate lines.
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		if len(cleaned) > 0 && cleaned[len(cleaned)-1] == line {
			continue
		}
		cleaned = append(cleaned, line)
	}
	return strings.Join(cleaned, "\n")
}
